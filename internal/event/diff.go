package event

import "sort"

// Diff is the membership delta between two observations of one event's
// roster. Both sides are sorted ascending by normalized name.
type Diff struct {
	Added   []Participant `json:"added"`
	Removed []Participant `json:"removed"`
}

// HasChanges reports whether the diff carries any additions or removals.
func (d *Diff) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// DiffRosters compares a prior roster against the current one by normalized
// name. Added entries carry current-side metadata, removed entries carry
// prior-side metadata. Diffing a roster against itself yields an empty diff;
// an empty prior yields every current participant as added.
func DiffRosters(previous, current []Participant) *Diff {
	prevNames := nameSet(previous)
	currNames := nameSet(current)

	diff := &Diff{
		Added:   make([]Participant, 0),
		Removed: make([]Participant, 0),
	}
	for _, p := range current {
		if !prevNames[NormalizeName(p.Name)] {
			diff.Added = append(diff.Added, p)
		}
	}
	for _, p := range previous {
		if !currNames[NormalizeName(p.Name)] {
			diff.Removed = append(diff.Removed, p)
		}
	}

	sortByName(diff.Added)
	sortByName(diff.Removed)
	return diff
}

func nameSet(roster []Participant) map[string]bool {
	names := make(map[string]bool, len(roster))
	for _, p := range roster {
		names[NormalizeName(p.Name)] = true
	}
	return names
}

func sortByName(roster []Participant) {
	sort.Slice(roster, func(i, j int) bool {
		return NormalizeName(roster[i].Name) < NormalizeName(roster[j].Name)
	})
}
