package notify

import (
	"strings"
	"testing"

	"github.com/openchess/entrywatch/internal/config"
	"github.com/openchess/entrywatch/internal/event"
)

func TestNewTelegramNotifierValidation(t *testing.T) {
	if _, err := NewTelegramNotifier(config.Telegram{ChatID: "42"}); err == nil {
		t.Error("expected an error without a bot token")
	}
	if _, err := NewTelegramNotifier(config.Telegram{BotToken: "abc"}); err == nil {
		t.Error("expected an error without a chat ID")
	}
	if _, err := NewTelegramNotifier(config.Telegram{BotToken: "abc", ChatID: "42"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTelegramNotifierSkipsUnchangedCycles(t *testing.T) {
	n, err := NewTelegramNotifier(config.Telegram{BotToken: "abc", ChatID: "42"})
	if err != nil {
		t.Fatal(err)
	}

	// No change anywhere: Notify must return before touching the network.
	reports := []*event.Report{{Name: "Spring Open", Count: 3}}
	if err := n.Notify(reports); err != nil {
		t.Errorf("unchanged cycle must be skipped, got %v", err)
	}
}

func TestFormatTelegramMessage(t *testing.T) {
	reports := []*event.Report{
		{
			Name:      "Spring <Open>",
			Dates:     []string{"2025-06-12"},
			RosterURL: "https://example.org/tournament/entries/123",
			Count:     2,
			Added:     []event.Participant{{Name: "Alice Adams", Rating: "1800"}},
		},
		{Name: "Quiet Event", Count: 5},
	}

	msg := formatTelegramMessage(reports)

	for _, want := range []string{
		"<b>Entry list updates</b>",
		"<b>Spring &lt;Open&gt;</b> (+1 -0)",
		"Date: 2025-06-12",
		"+ Alice Adams (1800)",
		`<a href="https://example.org/tournament/entries/123">Entry list</a>`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Quiet Event") {
		t.Error("unchanged events must not appear in the message")
	}
}
