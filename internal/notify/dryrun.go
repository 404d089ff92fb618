package notify

import (
	"fmt"
	"io"
	"time"

	"github.com/openchess/entrywatch/internal/event"
)

// DryRunNotifier prints what would be delivered without sending anything.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run sink writing to out.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

func (n *DryRunNotifier) Name() string { return "dry-run" }

// Notify prints the digest that the real sinks would deliver.
func (n *DryRunNotifier) Notify(reports []*event.Report) error {
	fmt.Fprintln(n.out, "--- dry run: notification digest ---")
	fmt.Fprint(n.out, Digest(reports, time.Now()))
	return nil
}
