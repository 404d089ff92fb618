package notify

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"time"

	"github.com/openchess/entrywatch/internal/config"
	"github.com/openchess/entrywatch/internal/event"
	"github.com/openchess/entrywatch/internal/logger"
)

// EmailNotifier sends cycle reports as a multipart plain-text + HTML email
// over SMTP with STARTTLS.
type EmailNotifier struct {
	cfg config.Email
}

// NewEmailNotifier builds the email sink from its config section.
func NewEmailNotifier(cfg config.Email) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) Name() string { return "email" }

// Notify sends the cycle summary. With only_changes set, cycles without any
// roster change are skipped silently.
func (n *EmailNotifier) Notify(reports []*event.Report) error {
	if n.cfg.OnlyChanges && !event.AnyChanges(reports) {
		logger.Info("no changes this cycle, skipping email", nil)
		return nil
	}

	now := time.Now()
	msg := n.buildMessage(reports, now)

	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPServer, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.SMTPServer)
	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{n.cfg.To}, msg); err != nil {
		return fmt.Errorf("sending email to %s: %w", n.cfg.To, err)
	}

	logger.Info("email notification sent", logger.Fields{"to": n.cfg.To})
	return nil
}

// buildMessage assembles a multipart/alternative message with text and HTML
// renderings of the reports.
func (n *EmailNotifier) buildMessage(reports []*event.Report, now time.Time) []byte {
	const boundary = "entrywatch-alt-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", n.cfg.To)
	fmt.Fprintf(&b, "Subject: Entry list updates - %s\r\n", now.Format("2006-01-02"))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(strings.ReplaceAll(textBody(reports, now), "\n", "\r\n"))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(htmlBody(reports, now))
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func textBody(reports []*event.Report, now time.Time) string {
	var b strings.Builder
	if len(reports) == 0 {
		fmt.Fprintf(&b, "Entry list updates (%s)\n\n", now.Format("2006-01-02"))
		b.WriteString("No events found within the monitoring window.\n")
	} else {
		b.WriteString(Digest(reports, now))
	}
	b.WriteString("\nThis is an automated message from entrywatch.\n")
	return b.String()
}

func htmlBody(reports []*event.Report, now time.Time) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<p><strong>Entry list updates</strong><br/>%s</p><hr/>",
		now.Format("2006-01-02 15:04:05"))

	if len(reports) == 0 {
		b.WriteString("<p>No events found within the monitoring window.</p>")
	}
	for _, r := range reports {
		name := html.EscapeString(r.Name)
		if r.DetailURL != "" {
			fmt.Fprintf(&b, "<p><a href=%q>%s</a></p>", r.DetailURL, name)
		} else {
			fmt.Fprintf(&b, "<p>%s</p>", name)
		}
		fmt.Fprintf(&b, "<div>Date: %s</div>", html.EscapeString(DateDisplay(r.Dates)))
		fmt.Fprintf(&b, "<div>Participants: %d %s</div>", r.Count, DeltaTag(r))
		writeParticipantList(&b, "New participants:", r.Added)
		writeParticipantList(&b, "Withdrawn participants:", r.Removed)
		fmt.Fprintf(&b, "<div>Entry list: <a href=%q>%s</a></div>", r.RosterURL, html.EscapeString(r.RosterURL))
	}

	b.WriteString("<hr/><div>This is an automated message from entrywatch.</div></body></html>")
	return b.String()
}

func writeParticipantList(b *strings.Builder, label string, roster []event.Participant) {
	if len(roster) == 0 {
		return
	}
	fmt.Fprintf(b, "<div>%s</div><ul>", label)
	for _, p := range roster {
		fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(ParticipantLine(p)))
	}
	b.WriteString("</ul>")
}
