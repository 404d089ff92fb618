// Package event defines the domain records for tracked club events: the
// event itself, its registered participants, the persisted snapshot of one
// observation, the roster diff between observations, and the admission rules
// that decide which events are actively monitored.
package event
