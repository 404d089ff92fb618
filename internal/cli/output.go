package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/openchess/entrywatch/internal/event"
	"github.com/openchess/entrywatch/internal/notify"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time       `json:"checked_at"`
	EventCount int             `json:"event_count"`
	Events     []*event.Report `json:"events"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No events within the monitoring window matched the rules.")
		return nil
	}

	fmt.Fprintf(w, "Entry list updates (%s)\n", result.CheckedAt.Format("2006-01-02"))
	for _, r := range result.Events {
		fmt.Fprintf(w, "\n%s %s\n", r.Name, notify.DeltaTag(r))
		fmt.Fprintf(w, "  Date: %s\n", notify.DateDisplay(r.Dates))
		fmt.Fprintf(w, "  Participants: %d\n", r.Count)
		if len(r.Added) > 0 {
			fmt.Fprintln(w, "  New:")
			for _, p := range r.Added {
				fmt.Fprintf(w, "    + %s\n", notify.ParticipantLine(p))
			}
		}
		if len(r.Removed) > 0 {
			fmt.Fprintln(w, "  Withdrawn:")
			for _, p := range r.Removed {
				fmt.Fprintf(w, "    - %s\n", notify.ParticipantLine(p))
			}
		}
		fmt.Fprintf(w, "  Entry list: %s\n", r.RosterURL)
		if verbose && r.DetailURL != "" {
			fmt.Fprintf(w, "  Details: %s\n", r.DetailURL)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events tracked\n", result.EventCount)
	return nil
}
