package event

import (
	"testing"
)

func TestDiffRosters(t *testing.T) {
	alice := Participant{Name: "Alice Adams", Rating: "1800"}
	bob := Participant{Name: "Bob Baker", Rating: "1650"}
	carol := Participant{Name: "Carol Clark", Rating: "1900"}

	t.Run("identical rosters yield empty diff", func(t *testing.T) {
		roster := []Participant{alice, bob}
		diff := DiffRosters(roster, roster)

		if diff.HasChanges() {
			t.Errorf("expected no changes, got added=%v removed=%v", diff.Added, diff.Removed)
		}
	})

	t.Run("empty prior yields all current as added", func(t *testing.T) {
		diff := DiffRosters(nil, []Participant{bob, alice})

		if len(diff.Removed) != 0 {
			t.Errorf("expected no removals, got %v", diff.Removed)
		}
		if len(diff.Added) != 2 {
			t.Fatalf("expected 2 additions, got %d", len(diff.Added))
		}
		// Sorted ascending by normalized name.
		if diff.Added[0].Name != "Alice Adams" || diff.Added[1].Name != "Bob Baker" {
			t.Errorf("expected sorted additions, got %v", diff.Added)
		}
	})

	t.Run("empty current yields all prior as removed", func(t *testing.T) {
		diff := DiffRosters([]Participant{alice, bob}, nil)

		if len(diff.Added) != 0 {
			t.Errorf("expected no additions, got %v", diff.Added)
		}
		if len(diff.Removed) != 2 {
			t.Fatalf("expected 2 removals, got %d", len(diff.Removed))
		}
	})

	t.Run("membership change across cycles", func(t *testing.T) {
		cycle1 := []Participant{alice, bob}
		cycle2 := []Participant{bob, carol}

		diff := DiffRosters(cycle1, cycle2)

		if len(diff.Added) != 1 || diff.Added[0].Name != "Carol Clark" {
			t.Errorf("expected Carol added, got %v", diff.Added)
		}
		if len(diff.Removed) != 1 || diff.Removed[0].Name != "Alice Adams" {
			t.Errorf("expected Alice removed, got %v", diff.Removed)
		}
	})

	t.Run("whitespace variants are the same participant", func(t *testing.T) {
		prior := []Participant{{Name: "John  Smith"}}
		current := []Participant{{Name: "John Smith"}}

		diff := DiffRosters(prior, current)

		if diff.HasChanges() {
			t.Errorf("expected no changes, got added=%v removed=%v", diff.Added, diff.Removed)
		}
	})

	t.Run("metadata sides", func(t *testing.T) {
		prior := []Participant{{Name: "Alice Adams", Rating: "1700"}}
		current := []Participant{{Name: "Bob Baker", Rating: "1650", Section: "Open"}}

		diff := DiffRosters(prior, current)

		if diff.Added[0].Rating != "1650" || diff.Added[0].Section != "Open" {
			t.Errorf("additions must carry current-side metadata, got %+v", diff.Added[0])
		}
		if diff.Removed[0].Rating != "1700" {
			t.Errorf("removals must carry prior-side metadata, got %+v", diff.Removed[0])
		}
	})
}
