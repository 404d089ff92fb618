package event

import "time"

const isoDate = "2006-01-02"

// Snapshot is the durable record of one observation of one event: identity,
// known dates, detail-page extras, and the full roster at observation time.
// Exactly one snapshot exists per event ID; every successful cycle replaces
// it wholesale.
type Snapshot struct {
	EventID      string        `json:"event_id"`
	EventName    string        `json:"event_name"`
	Dates        []string      `json:"event_dates"`
	DetailURL    string        `json:"event_detail_url,omitempty"`
	RosterURL    string        `json:"entry_list_url"`
	Details      Details       `json:"event_details,omitempty"`
	LastChecked  string        `json:"last_checked"`
	Participants []Participant `json:"participants"`
	Count        int           `json:"count"`
}

// NewSnapshot captures the current observation of an event.
func NewSnapshot(rec *Record, details Details, roster []Participant, now time.Time) *Snapshot {
	return &Snapshot{
		EventID:      rec.ID,
		EventName:    rec.Name,
		Dates:        FormatDates(rec.Dates),
		DetailURL:    rec.DetailURL,
		RosterURL:    rec.RosterURL,
		Details:      details,
		LastChecked:  now.UTC().Format(time.RFC3339),
		Participants: roster,
		Count:        len(roster),
	}
}

// DatesParsed returns the snapshot's dates as calendar dates, silently
// dropping any entry that no longer parses.
func (s *Snapshot) DatesParsed() []time.Time {
	parsed := make([]time.Time, 0, len(s.Dates))
	for _, d := range s.Dates {
		if t, err := time.Parse(isoDate, d); err == nil {
			parsed = append(parsed, t)
		}
	}
	return parsed
}

// FormatDates renders calendar dates in ISO form for persistence.
func FormatDates(eventDates []time.Time) []string {
	out := make([]string, 0, len(eventDates))
	for _, d := range eventDates {
		out = append(out, d.Format(isoDate))
	}
	return out
}
