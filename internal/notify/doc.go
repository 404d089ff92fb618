// Package notify delivers cycle reports to external sinks: email, Telegram,
// and Twitter. Each sink decides independently whether a cycle is worth
// delivering; the monitor hands every sink the same report list.
package notify
