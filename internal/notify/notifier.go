package notify

import (
	"github.com/openchess/entrywatch/internal/event"
)

// Notifier delivers one cycle's reports to a destination.
type Notifier interface {
	// Name identifies the sink in logs.
	Name() string
	// Notify delivers the reports. A sink may decide the cycle is not
	// worth delivering and return nil without sending.
	Notify(reports []*event.Report) error
}
