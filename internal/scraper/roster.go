package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/openchess/entrywatch/internal/dates"
	"github.com/openchess/entrywatch/internal/event"
)

// rosterHeaderKeywords mark a table header row as entry-list-shaped.
var rosterHeaderKeywords = []string{"name", "player", "entrant", "entry", "participant"}

// columnLabelWords are header-cell strings that leak into data rows on
// badly-built tables and must never be taken as participant names.
var columnLabelWords = map[string]bool{
	"name":    true,
	"player":  true,
	"entrant": true,
	"entry":   true,
	"#":       true,
	"no":      true,
	"yes":     true,
}

// navigationWords reject site-chrome strings that generic table scanning
// would otherwise pick up as names.
var navigationWords = []string{
	"home", "about", "contact", "login", "register", "search", "menu", "navigation",
}

var registrationTitlePattern = regexp.MustCompile(`Registration List[^•]*•\s*([^•]+)\s*•`)

// RosterPage is a parsed entry-list document: the deduplicated roster, the
// event name the page title carries (may be empty), and the raw HTML for
// debug dumps.
type RosterPage struct {
	Participants []event.Participant
	EventName    string
	HTML         string
}

// FetchRoster fetches and parses one entry-list page.
func (s *Scraper) FetchRoster(pageURL string) (*RosterPage, error) {
	html, err := s.Get(pageURL)
	if err != nil {
		return nil, err
	}
	page, err := ParseRoster(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	page.HTML = html
	return page, nil
}

// ParseRoster extracts the participant roster from an entry-list document.
// The site's own members table layout is tried first; failing that, any
// table whose header looks entry-list-shaped is scanned with rejection
// filters against navigation chrome. Names are whitespace-normalized and
// duplicates collapse to the first occurrence.
func ParseRoster(r io.Reader) (*RosterPage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing roster HTML: %w", err)
	}

	page := &RosterPage{
		EventName: rosterPageEventName(doc),
	}

	roster := parseMembersTable(doc)
	if len(roster) == 0 {
		roster = parseGenericTables(doc)
	}
	page.Participants = event.NormalizeRoster(roster)
	return page, nil
}

// rosterPageEventName pulls the event name out of a page title like
// "Registration List • Spring Open • Some Chess Club".
func rosterPageEventName(doc *goquery.Document) string {
	title := dates.Normalize(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	if strings.Contains(title, "•") {
		parts := strings.Split(title, "•")
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	if strings.Contains(title, "Registration List") {
		if m := registrationTitlePattern.FindStringSubmatch(title); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// parseMembersTable reads the site's conventional members table: a header
// row followed by rows of #, name, rating, USCF ID, section, byes.
func parseMembersTable(doc *goquery.Document) []event.Participant {
	var roster []event.Participant
	doc.Find("table#members tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := cellTexts(tr)
		if len(cells) < 6 {
			return
		}
		if strings.TrimSpace(cells[1]) == "" {
			return
		}
		roster = append(roster, event.Participant{
			Name:    cells[1],
			Rating:  cells[2],
			USCFID:  cells[3],
			Section: cells[4],
			Byes:    cells[5],
		})
	})
	return roster
}

// parseGenericTables scans every table whose header row mentions a roster
// keyword and harvests plausible name rows.
func parseGenericTables(doc *goquery.Document) []event.Participant {
	var roster []event.Participant
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}
		header := strings.ToLower(strings.Join(cellTexts(rows.First()), " "))
		if !containsAny(header, rosterHeaderKeywords) {
			return
		}
		rows.Slice(1, rows.Length()).Each(func(_ int, tr *goquery.Selection) {
			cells := cellTexts(tr)
			if len(cells) < 2 {
				return
			}
			name := cells[1]
			if name == "" {
				name = cells[0]
			}
			if !plausibleName(name) {
				return
			}
			p := event.Participant{Name: name}
			if len(cells) > 2 {
				p.Rating = cells[2]
			}
			if len(cells) > 3 {
				p.USCFID = cells[3]
			}
			if len(cells) > 4 {
				p.Section = cells[4]
			}
			if len(cells) > 5 {
				p.Byes = cells[5]
			}
			roster = append(roster, p)
		})
	})
	return roster
}

// plausibleName applies the rejection filters for generic-table name cells.
func plausibleName(name string) bool {
	if len(name) <= 1 {
		return false
	}
	lower := strings.ToLower(name)
	if columnLabelWords[lower] {
		return false
	}
	if numericOnlyPattern.MatchString(name) {
		return false
	}
	if len(strings.Fields(name)) > 4 {
		return false
	}
	return !containsAny(lower, navigationWords)
}

func cellTexts(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("td, th").Each(func(_ int, c *goquery.Selection) {
		cells = append(cells, dates.Normalize(c.Text()))
	})
	return cells
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
