package notify

import (
	"strings"
	"testing"

	"github.com/openchess/entrywatch/internal/event"
)

func TestNewTwitterNotifierRequiresCredentials(t *testing.T) {
	for _, v := range []string{"TWITTER_API_KEY", "TWITTER_API_SECRET", "TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET"} {
		t.Setenv(v, "")
	}
	if _, err := NewTwitterNotifier(); err == nil {
		t.Error("expected an error without credentials")
	}
}

func TestFormatTweet(t *testing.T) {
	r := &event.Report{
		Name:      "Spring Open",
		Dates:     []string{"2025-06-12"},
		RosterURL: "https://example.org/tournament/entries/123",
		Count:     2,
		Added:     []event.Participant{{Name: "Alice Adams"}},
	}

	tweet := formatTweet(r)

	for _, want := range []string{
		"Spring Open (+1 -0)",
		"Date: 2025-06-12",
		"Entries: 2",
		"https://example.org/tournament/entries/123",
	} {
		if !strings.Contains(tweet, want) {
			t.Errorf("tweet missing %q:\n%s", want, tweet)
		}
	}
}

func TestFormatTweetTruncates(t *testing.T) {
	r := &event.Report{
		Name:      strings.Repeat("Very Long Event Name ", 20),
		RosterURL: "https://example.org/tournament/entries/123",
		Added:     []event.Participant{{Name: "Alice Adams"}},
	}

	tweet := formatTweet(r)
	if len(tweet) > 280 {
		t.Errorf("tweet exceeds 280 characters: %d", len(tweet))
	}
	if !strings.HasSuffix(tweet, "...") {
		t.Errorf("truncated tweet must end with an ellipsis: %q", tweet)
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf strings.Builder
	n := NewDryRunNotifier(&buf)

	reports := []*event.Report{{Name: "Spring Open", Count: 3}}
	if err := n.Notify(reports); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "dry run") || !strings.Contains(buf.String(), "Spring Open") {
		t.Errorf("unexpected dry-run output:\n%s", buf.String())
	}
}
