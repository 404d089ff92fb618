// Package calendar renders tracked events as an iCalendar feed so a club
// member can subscribe to the events currently under monitoring.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/openchess/entrywatch/internal/event"
)

// Generate renders one VCALENDAR holding a VEVENT for every known date of
// every non-expired snapshot. Expired snapshots are skipped rather than
// relying on the store sweep having already run.
func Generate(snaps []*event.Snapshot, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//entrywatch//entrywatch//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, snap := range snaps {
		eventDates := snap.DatesParsed()
		if event.Expired(eventDates, now) {
			continue
		}
		for i, day := range eventDates {
			writeEvent(&ics, snap, day, i, now)
		}
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, snap *event.Snapshot, day time.Time, seq int, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(ics, "UID:%s-%s@entrywatch\r\n", snap.EventID, day.Format("20060102"))
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", formatICSTime(now))

	// All-day entries: DTEND is the exclusive next day.
	fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102"))
	fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102"))

	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(snap.EventName))

	description := fmt.Sprintf("Entries: %d", snap.Count)
	if snap.RosterURL != "" {
		description += "\nEntry list: " + snap.RosterURL
	}
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(description))

	if snap.DetailURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", snap.DetailURL)
	} else if snap.RosterURL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", snap.RosterURL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	fmt.Fprintf(ics, "SEQUENCE:%d\r\n", seq)
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
