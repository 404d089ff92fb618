package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/openchess/entrywatch/internal/dates"
	"github.com/openchess/entrywatch/internal/event"
)

// FallbackName is used when no heuristic yields an event name.
const FallbackName = "Unknown Event"

const headingSelector = "h1, h2, h3, h4, h5"

// Link shapes the site uses for event pages. The entries link doubles as the
// event ID source and the roster URL.
var (
	entriesLinkPattern = regexp.MustCompile(`^/tournament/entries/(\d+)$`)
	detailLinkPattern  = regexp.MustCompile(`^/events/(\d+)`)
	eventIDPattern     = regexp.MustCompile(`/events/(\d+)|/tournament/register/(\d+)|/tournament/entries/(\d+)`)
	numericOnlyPattern = regexp.MustCompile(`^\d+$`)
)

// genericSectionTitles are headings that name a section of the site rather
// than an individual event.
var genericSectionTitles = map[string]bool{
	"events":          true,
	"upcoming events": true,
	"tournaments":     true,
	"chess events":    true,
}

// inlineTextStoplist extends genericSectionTitles with boilerplate strings
// that show up in event blocks but are never event names.
var inlineTextStoplist = map[string]bool{
	"events":              true,
	"upcoming events":     true,
	"tournaments":         true,
	"chess events":        true,
	"register online now": true,
	"date":                true,
	"time":                true,
	"location":            true,
}

// IsGenericTitle reports whether a candidate event name is really a generic
// section title and must not override a more specific one.
func IsGenericTitle(name string) bool {
	return genericSectionTitles[strings.ToLower(dates.Normalize(name))]
}

// FetchListing fetches and parses the events listing page.
func (s *Scraper) FetchListing() ([]*event.Record, error) {
	html, err := s.Get(s.ListingURL())
	if err != nil {
		return nil, err
	}
	return ParseListing(strings.NewReader(html), s.baseURL)
}

// ParseListing extracts event records from the listing document. Each direct
// child of the #events container is treated as one candidate event block;
// blocks that yield no event ID are discarded, and duplicate IDs collapse to
// the first occurrence.
func ParseListing(r io.Reader, baseURL string) ([]*event.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	records := make([]*event.Record, 0)
	doc.Find("#events").First().Children().Each(func(_ int, block *goquery.Selection) {
		if rec := extractRecord(block, baseURL); rec != nil {
			records = append(records, rec)
		}
	})

	seen := make(map[string]bool, len(records))
	unique := make([]*event.Record, 0, len(records))
	for _, rec := range records {
		if seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		unique = append(unique, rec)
	}
	return unique, nil
}

// extractRecord pulls one event out of a listing block, or nil when the
// block carries no identifiable event.
func extractRecord(block *goquery.Selection, baseURL string) *event.Record {
	var name, id string
	var detailLink, entryLink *goquery.Selection

	// Name resolution: a detail-shaped link inside the title region first,
	// then any title link, then the nearest-heading heuristic.
	title := block.Find("div.title").First()
	if title.Length() > 0 {
		title.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if detailLinkPattern.MatchString(href) {
				detailLink = a
				name = dates.Normalize(a.Text())
				return false
			}
			return true
		})
		if name == "" {
			if a := title.Find("a[href]").First(); a.Length() > 0 {
				name = dates.Normalize(a.Text())
			}
		}
	}

	block.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if id == "" {
			if m := eventIDPattern.FindStringSubmatch(href); m != nil {
				id = firstSubmatch(m)
			}
		}
		if entryLink == nil && entriesLinkPattern.MatchString(href) {
			entryLink = a
		}
	})

	if name == "" {
		name = nearestHeadingText(block)
	}
	if name == "" {
		name = FallbackName
	}

	// No ID means no way to join this block across runs or reach its
	// entry list; the block is unusable.
	if id == "" {
		return nil
	}

	rec := &event.Record{
		ID:    id,
		Name:  name,
		Dates: findEventDates(block),
	}
	if detailLink != nil {
		href, _ := detailLink.Attr("href")
		rec.DetailURL = resolveURL(baseURL, href)
	}
	if entryLink != nil {
		href, _ := entryLink.Attr("href")
		rec.RosterURL = resolveURL(baseURL, href)
	} else {
		rec.RosterURL = resolveURL(baseURL, "/tournament/entries/"+id)
	}
	return rec
}

// nearestHeadingText finds the most plausible event name near a block when
// its title region yields nothing: first a non-generic heading inside or
// before the block, then a sufficiently specific inline text, then any
// heading or emphasized text at all.
func nearestHeadingText(block *goquery.Selection) string {
	var found string
	for _, set := range []*goquery.Selection{
		block.Find(headingSelector),
		block.PrevAll().Find(headingSelector),
	} {
		set.EachWithBreak(func(_ int, h *goquery.Selection) bool {
			text := dates.Normalize(h.Text())
			if text != "" && !genericSectionTitles[strings.ToLower(text)] {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	block.Find("span, div, p, strong, b").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := dates.Normalize(sel.Text())
		if len(text) > 5 &&
			!inlineTextStoplist[strings.ToLower(text)] &&
			!strings.HasPrefix(text, "http") &&
			!numericOnlyPattern.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	if found != "" {
		return found
	}

	if h := block.Find(headingSelector + ", strong").First(); h.Length() > 0 {
		return dates.Normalize(h.Text())
	}
	return ""
}

// findEventDates runs the date cascade over an event block: a labeled
// "Date" table row, then a "Date" label's trailing text, then the whole
// flattened block text.
func findEventDates(block *goquery.Selection) []time.Time {
	if block.Length() == 0 {
		return nil
	}

	var found []time.Time
	block.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td, th")
		if cells.Length() < 2 {
			return true
		}
		if !strings.EqualFold(dates.Normalize(cells.First().Text()), "date") {
			return true
		}
		if parsed := dates.ParseMany(cells.Eq(1).Text()); len(parsed) > 0 {
			found = parsed
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	block.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.EqualFold(dates.Normalize(sel.Text()), "date") {
			return true
		}
		sibling := sel.Next()
		if sibling.Length() == 0 {
			sibling = sel.Parent().Next()
		}
		if parsed := dates.ParseMany(sibling.Text()); len(parsed) > 0 {
			found = parsed
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	return dates.ParseMany(dates.Normalize(block.Text()))
}

// firstSubmatch returns the first non-empty capture group.
func firstSubmatch(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
