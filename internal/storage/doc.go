// Package storage persists one snapshot per event ID as a JSON file under
// the data directory. Writes go through a temp file and an atomic rename so
// a crash mid-write never corrupts the committed snapshot; unreadable or
// corrupt snapshots degrade to "no prior snapshot".
package storage
