// Package monitor runs one observation cycle: scrape the events listing,
// enrich and admit each discovered event, diff its entry list against the
// stored snapshot, persist the new snapshot, and sweep expired snapshots.
package monitor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/openchess/entrywatch/internal/config"
	"github.com/openchess/entrywatch/internal/event"
	"github.com/openchess/entrywatch/internal/logger"
	"github.com/openchess/entrywatch/internal/scraper"
	"github.com/openchess/entrywatch/internal/storage"
)

// ErrListingUnavailable wraps a failed listing fetch, the only failure that
// aborts a whole run.
var ErrListingUnavailable = errors.New("events listing unavailable")

// Monitor wires the scraper, the snapshot store, and the admission rules
// into one sequential cycle. Events are processed in listing order; a fetch
// or persistence failure on one event never aborts the run.
type Monitor struct {
	scraper *scraper.Scraper
	store   *storage.Store
	rules   *event.Rules
	debug   bool

	// Now is the clock used for window and expiry decisions.
	Now func() time.Time
}

// New builds a Monitor from the run configuration.
func New(cfg *config.Config, sc *scraper.Scraper, store *storage.Store) *Monitor {
	return &Monitor{
		scraper: sc,
		store:   store,
		rules:   event.NewRules(cfg.Include, cfg.Exclude, cfg.DaysBefore),
		debug:   cfg.Debug,
		Now:     time.Now,
	}
}

// Run executes one cycle and returns the per-event reports in
// listing-encounter order. Only a failed listing fetch is fatal.
func (m *Monitor) Run() ([]*event.Report, error) {
	records, err := m.scraper.FetchListing()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListingUnavailable, err)
	}
	logger.Info("parsed events listing", logger.Fields{"events": len(records)})

	reports := make([]*event.Report, 0, len(records))
	for _, rec := range records {
		if report := m.processEvent(rec); report != nil {
			reports = append(reports, report)
		}
	}

	m.sweepExpired()
	return reports, nil
}

// processEvent runs the full per-event sequence. It returns nil when the
// event is skipped: roster unavailable, or rejected by the admission rules
// once the best available name and dates are known.
func (m *Monitor) processEvent(rec *event.Record) *event.Report {
	details := m.enrichFromDetail(rec)

	page, err := m.scraper.FetchRoster(rec.RosterURL)
	if err != nil {
		logger.Warn("entry list unavailable, skipping event", logger.Fields{
			"event_id": rec.ID,
			"url":      rec.RosterURL,
		})
		return nil
	}

	// The entry-list page title is the most specific name source.
	if page.EventName != "" && !scraper.IsGenericTitle(page.EventName) {
		rec.Name = page.EventName
	}

	// Admission is deferred until the name and dates are as good as they
	// will get.
	if !m.rules.MatchName(rec.Name) {
		logger.Info("event filtered out by keyword rules", logger.Fields{
			"event_id": rec.ID,
			"name":     rec.Name,
		})
		return nil
	}
	now := m.Now()
	if !m.rules.WithinWindow(rec.Dates, now) {
		logger.Debug("event outside monitoring window", logger.Fields{
			"event_id": rec.ID,
			"name":     rec.Name,
		})
		return nil
	}

	if len(page.Participants) == 0 {
		logger.Debug("no participants extracted", logger.Fields{
			"event_id": rec.ID,
			"url":      rec.RosterURL,
		})
		if m.debug {
			m.dumpRosterHTML(rec.ID, page.HTML)
		}
	}

	previous, err := m.store.Load(rec.ID)
	if err != nil {
		// Degrade to first-observation semantics.
		logger.Warn("could not read prior snapshot", logger.Fields{"event_id": rec.ID})
		previous = nil
	}
	var prevRoster []event.Participant
	if previous != nil {
		prevRoster = previous.Participants
	}

	diff := event.DiffRosters(prevRoster, page.Participants)

	snap := event.NewSnapshot(rec, details, page.Participants, now)
	if err := m.store.Save(rec.ID, snap); err != nil {
		logger.Error("could not save snapshot", logger.Fields{"event_id": rec.ID}, err)
	}

	return &event.Report{
		Name:      rec.Name,
		Dates:     event.FormatDates(rec.Dates),
		DetailURL: rec.DetailURL,
		RosterURL: rec.RosterURL,
		Count:     len(page.Participants),
		Added:     diff.Added,
		Removed:   diff.Removed,
	}
}

// enrichFromDetail augments the record's name and dates from its detail
// page. A detail fetch failure leaves the record as-is.
func (m *Monitor) enrichFromDetail(rec *event.Record) event.Details {
	if rec.DetailURL == "" {
		return nil
	}

	details, err := m.scraper.FetchDetail(rec.DetailURL)
	if err != nil {
		logger.Warn("detail page unavailable", logger.Fields{
			"event_id": rec.ID,
			"url":      rec.DetailURL,
		})
		return nil
	}

	if name := details[scraper.EventNameKey]; name != "" && !scraper.IsGenericTitle(name) {
		rec.Name = name
	}
	if len(rec.Dates) == 0 {
		rec.Dates = scraper.DetailDates(details)
	}
	return details
}

func (m *Monitor) sweepExpired() {
	removed, err := m.store.SweepExpired(m.Now())
	if err != nil {
		logger.Warn("expiry sweep failed", nil)
		return
	}
	for _, id := range removed {
		logger.Info("removed expired snapshot", logger.Fields{"event_id": id})
	}
}

// dumpRosterHTML saves the fetched entry-list HTML for offline inspection
// when an admitted event yields no participants.
func (m *Monitor) dumpRosterHTML(eventID, html string) {
	path := filepath.Join(m.store.Dir(), "debug_entry_"+eventID+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		logger.Warn("could not write debug HTML", logger.Fields{"event_id": eventID})
		return
	}
	logger.Debug("saved entry-list HTML", logger.Fields{"path": path})
}
