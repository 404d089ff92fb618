package scraper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/openchess/entrywatch/internal/dates"
	"github.com/openchess/entrywatch/internal/event"
)

// EventNameKey is the Details key under which the detail page's own idea of
// the event name is stored when one is found.
const EventNameKey = "event_name"

// detailNameKeys are table/definition keys that carry the event name.
var detailNameKeys = map[string]bool{
	"name":            true,
	"event name":      true,
	"tournament name": true,
	"title":           true,
}

// DetailDateKeys are Details keys consulted, in order, when the listing page
// yielded no dates for an event.
var DetailDateKeys = []string{"date", "event date", "tournament date"}

// FetchDetail fetches and parses one event detail page.
func (s *Scraper) FetchDetail(pageURL string) (event.Details, error) {
	html, err := s.Get(pageURL)
	if err != nil {
		return nil, err
	}
	return ParseDetail(strings.NewReader(html))
}

// ParseDetail extracts the open key/value detail fields from an event detail
// page: every two-cell table row and every dt/dd pair, keys lowercased. When
// the page names the event (heading, title, or a name-ish key), the name is
// stored under EventNameKey.
func ParseDetail(r io.Reader) (event.Details, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing detail HTML: %w", err)
	}

	details := make(event.Details)
	var eventName string

	if title := doc.Find("title").First(); title.Length() > 0 {
		text := dates.Normalize(title.Text())
		if text != "" && !strings.Contains(text, "•") {
			eventName = text
		}
	}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		text := dates.Normalize(h1.Text())
		if text != "" && !genericSectionTitles[strings.ToLower(text)] {
			eventName = text
		}
	}

	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		key := strings.ToLower(dates.Normalize(cells.First().Text()))
		value := dates.Normalize(cells.Eq(1).Text())
		if key == "" || value == "" {
			return
		}
		details[key] = value
		if detailNameKeys[key] {
			eventName = value
		}
	})

	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		dd := dt.NextFiltered("dd")
		if dd.Length() == 0 {
			return
		}
		key := strings.ToLower(dates.Normalize(dt.Text()))
		value := dates.Normalize(dd.Text())
		if key == "" || value == "" {
			return
		}
		details[key] = value
		if detailNameKeys[key] {
			eventName = value
		}
	})

	if eventName != "" {
		details[EventNameKey] = eventName
	}
	return details, nil
}

// DetailDates extracts dates from a detail map by consulting the known date
// keys in order.
func DetailDates(details event.Details) []time.Time {
	for _, key := range DetailDateKeys {
		if value := details[key]; value != "" {
			if parsed := dates.ParseMany(value); len(parsed) > 0 {
				return parsed
			}
		}
	}
	return nil
}
