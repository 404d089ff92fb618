package event

import (
	"strings"
	"time"
)

// Rules decides which events are admitted for active monitoring: keyword
// include/exclude filtering on the event name plus a forward-looking date
// window. Name matching is case-insensitive substring matching, and must be
// applied only after the name has been corrected from the best available
// source (detail page, then entry-list page title).
type Rules struct {
	Include    []string
	Exclude    []string
	WindowDays int
}

// NewRules builds Rules from comma-separated include/exclude keyword lists.
// Blank keywords are dropped; matching is case-insensitive.
func NewRules(include, exclude string, windowDays int) *Rules {
	return &Rules{
		Include:    splitKeywords(include),
		Exclude:    splitKeywords(exclude),
		WindowDays: windowDays,
	}
}

// MatchName reports whether the event name passes the keyword rules. A
// non-empty include list requires at least one hit; any exclude hit rejects.
func (r *Rules) MatchName(name string) bool {
	lower := strings.ToLower(name)
	if len(r.Include) > 0 {
		hit := false
		for _, k := range r.Include {
			if strings.Contains(lower, k) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, k := range r.Exclude {
		if strings.Contains(lower, k) {
			return false
		}
	}
	return true
}

// WithinWindow reports whether at least one date falls in
// [today, today+WindowDays] inclusive, at calendar-date granularity.
func (r *Rules) WithinWindow(eventDates []time.Time, now time.Time) bool {
	today := truncateToDay(now)
	cutoff := today.AddDate(0, 0, r.WindowDays)
	for _, d := range eventDates {
		day := truncateToDay(d)
		if !day.Before(today) && !day.After(cutoff) {
			return true
		}
	}
	return false
}

// Admit reports whether the record passes both the keyword rules and the
// monitoring window.
func (r *Rules) Admit(rec *Record, now time.Time) bool {
	return r.MatchName(rec.Name) && r.WithinWindow(rec.Dates, now)
}

func splitKeywords(s string) []string {
	var keywords []string
	for _, k := range strings.Split(s, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
