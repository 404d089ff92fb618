package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openchess/entrywatch/internal/config"
	"github.com/openchess/entrywatch/internal/event"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second
)

// TelegramNotifier posts the cycle summary to one chat via the Bot API.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewTelegramNotifier builds the Telegram sink from its config section.
func NewTelegramNotifier(cfg config.Telegram) (*TelegramNotifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if cfg.ChatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}
	return &TelegramNotifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

func (n *TelegramNotifier) Name() string { return "telegram" }

// Notify sends one HTML message summarizing the events that changed this
// cycle. Cycles with no changes are skipped.
func (n *TelegramNotifier) Notify(reports []*event.Report) error {
	if !event.AnyChanges(reports) {
		return nil
	}
	return n.sendMessage(formatTelegramMessage(reports))
}

func (n *TelegramNotifier) sendMessage(text string) error {
	apiURL := fmt.Sprintf("%s%s/sendMessage", telegramAPIBaseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}
	return nil
}

func formatTelegramMessage(reports []*event.Report) string {
	var b strings.Builder
	b.WriteString("<b>Entry list updates</b>\n")
	for _, r := range reports {
		if !r.HasChanges() {
			continue
		}
		fmt.Fprintf(&b, "\n<b>%s</b> %s\n", html.EscapeString(r.Name), DeltaTag(r))
		fmt.Fprintf(&b, "Date: %s\n", html.EscapeString(DateDisplay(r.Dates)))
		for _, p := range r.Added {
			fmt.Fprintf(&b, "+ %s\n", html.EscapeString(ParticipantLine(p)))
		}
		for _, p := range r.Removed {
			fmt.Fprintf(&b, "- %s\n", html.EscapeString(ParticipantLine(p)))
		}
		fmt.Fprintf(&b, "<a href=%q>Entry list</a>\n", r.RosterURL)
	}
	return b.String()
}
