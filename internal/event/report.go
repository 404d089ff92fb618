package event

// Report is the per-event outcome of one monitoring cycle, produced for
// every admitted event in listing-encounter order, including events with
// zero participants or zero changes.
type Report struct {
	Name      string        `json:"name"`
	Dates     []string      `json:"dates"`
	DetailURL string        `json:"detail_url,omitempty"`
	RosterURL string        `json:"entry_list_url"`
	Count     int           `json:"count"`
	Added     []Participant `json:"added"`
	Removed   []Participant `json:"removed"`
}

// HasChanges reports whether this event saw any additions or withdrawals.
func (r *Report) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}

// AnyChanges reports whether any report in the cycle carries changes.
func AnyChanges(reports []*Report) bool {
	for _, r := range reports {
		if r.HasChanges() {
			return true
		}
	}
	return false
}
