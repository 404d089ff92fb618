package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/openchess/entrywatch/internal/event"
)

// Digest renders one cycle's reports as a plain-text summary shared by the
// email text part, the Telegram message, and dry runs.
func Digest(reports []*event.Report, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entry list updates (%s)\n", now.Format("2006-01-02"))

	for _, r := range reports {
		fmt.Fprintf(&b, "\n%s\n", r.Name)
		fmt.Fprintf(&b, "  Date: %s\n", DateDisplay(r.Dates))
		fmt.Fprintf(&b, "  Participants: %d %s\n", r.Count, DeltaTag(r))
		if len(r.Added) > 0 {
			b.WriteString("  New:\n")
			for _, p := range r.Added {
				fmt.Fprintf(&b, "    - %s\n", ParticipantLine(p))
			}
		}
		if len(r.Removed) > 0 {
			b.WriteString("  Withdrawn:\n")
			for _, p := range r.Removed {
				fmt.Fprintf(&b, "    - %s\n", ParticipantLine(p))
			}
		}
		fmt.Fprintf(&b, "  Entry list: %s\n", r.RosterURL)
	}
	return b.String()
}

// DateDisplay renders a report's ISO dates for humans: "TBD" when unknown,
// the date itself for one, a comma pair for two, and a collapsed
// "first to last" range for three or more.
func DateDisplay(isoDates []string) string {
	switch {
	case len(isoDates) == 0:
		return "TBD"
	case len(isoDates) == 1:
		return isoDates[0]
	case len(isoDates) == 2:
		return strings.Join(isoDates, ", ")
	default:
		return fmt.Sprintf("%s to %s", isoDates[0], isoDates[len(isoDates)-1])
	}
}

// DeltaTag renders the "(+n -m)" change marker for a report.
func DeltaTag(r *event.Report) string {
	if !r.HasChanges() {
		return "(no changes)"
	}
	return fmt.Sprintf("(+%d -%d)", len(r.Added), len(r.Removed))
}

// ParticipantLine renders one participant with rating and section when known.
func ParticipantLine(p event.Participant) string {
	line := p.Name
	if p.Rating != "" {
		line += fmt.Sprintf(" (%s)", p.Rating)
	}
	if p.Section != "" {
		line += fmt.Sprintf(" [%s]", p.Section)
	}
	return line
}
