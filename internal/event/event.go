package event

import (
	"strings"
	"time"
)

// Record is one event discovered on the listing page, possibly enriched from
// its detail and entry-list pages. ID is the sole join key across runs; two
// records with the same non-empty ID are the same real-world event even when
// the name drifts between sources.
type Record struct {
	ID        string      `json:"event_id"`
	Name      string      `json:"event_name"`
	Dates     []time.Time `json:"event_dates"`
	DetailURL string      `json:"event_detail_url,omitempty"`
	RosterURL string      `json:"entry_list_url,omitempty"`
}

// Participant is one entry-list row. Identity within a roster is the
// whitespace-normalized name.
type Participant struct {
	Name    string `json:"name"`
	Rating  string `json:"rating,omitempty"`
	USCFID  string `json:"uscf_id,omitempty"`
	Section string `json:"section,omitempty"`
	Byes    string `json:"byes,omitempty"`
}

// Details is an open string-to-string map of fields scraped from a detail
// page (entry fee, time control, rounds, and whatever else the page lists).
// No keys are required.
type Details map[string]string

// NormalizeName collapses internal whitespace and trims.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NormalizeRoster normalizes every participant name, drops entries whose
// name is empty after normalization, and collapses duplicate names to the
// first occurrence, preserving order and first-seen metadata.
func NormalizeRoster(roster []Participant) []Participant {
	seen := make(map[string]bool, len(roster))
	out := make([]Participant, 0, len(roster))
	for _, p := range roster {
		p.Name = NormalizeName(p.Name)
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out
}

// Expired reports whether every known date is strictly before now's calendar
// date. An event with no known dates is treated as already expired.
func Expired(dates []time.Time, now time.Time) bool {
	today := truncateToDay(now)
	for _, d := range dates {
		if !truncateToDay(d).Before(today) {
			return false
		}
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
