package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// singleLayouts are tried in order by ParseSingle; first match wins.
var singleLayouts = []string{
	"Monday, January 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
}

var (
	looseNumericPattern   = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	yearPattern           = regexp.MustCompile(`\b(\d{4})\b`)
	dayNumberPattern      = regexp.MustCompile(`\b(\d{1,2})\b`)
	leadingWeekdayPattern = regexp.MustCompile(`^[A-Za-z]+,\s*`)
	wordAndPattern        = regexp.MustCompile(`\band\b`)
	wordPattern           = regexp.MustCompile(`[A-Za-z]+`)
)

// Normalize collapses runs of whitespace to single spaces and trims.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseSingle parses one calendar date from text. It tries the exact layouts
// first, then a loose YYYY-M-D / YYYY/M/D scan, then a best-effort parse of
// anything dateparse recognizes. Returns the zero time if nothing matches.
func ParseSingle(text string) time.Time {
	cleaned := Normalize(text)
	if cleaned == "" {
		return time.Time{}
	}

	for _, layout := range singleLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return Day(t.Year(), t.Month(), t.Day())
		}
	}

	if m := looseNumericPattern.FindStringSubmatch(cleaned); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= daysIn(year, time.Month(month)) {
			return Day(year, time.Month(month), day)
		}
	}

	if t, err := dateparse.ParseAny(cleaned); err == nil {
		return Day(t.Year(), t.Month(), t.Day())
	}

	return time.Time{}
}

// ParseMany parses text that may hold a date range, a day list within one
// stated month and year, or a single date. Results are ascending and
// deduplicated; an empty slice means no dates were found.
//
// Rule order is range > "and"-list > comma-list > single, keyed on the first
// punctuation cue present. A rule that matches its cue but yields nothing
// falls through only to the single-date fallback, never to the other rules.
func ParseMany(text string) []time.Time {
	cleaned := Normalize(text)
	if cleaned == "" {
		return nil
	}

	month, year, ok := extractMonthYear(cleaned)
	if !ok {
		return singleFallback(cleaned)
	}

	if strings.Contains(cleaned, "-") {
		if days := expandRange(cleaned, month, year); days != nil {
			return days
		}
	} else if wordAndPattern.MatchString(cleaned) {
		parts := strings.Split(wordAndPattern.ReplaceAllString(cleaned, ","), ",")
		if days := dayList(parts, month, year); len(days) > 0 {
			return days
		}
	} else if strings.Contains(cleaned, ",") {
		if days := dayList(strings.Split(cleaned, ","), month, year); len(days) > 0 {
			return days
		}
	}

	return singleFallback(cleaned)
}

// Day builds a date-only time.Time in UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// extractMonthYear finds the first word token that names a month, and the
// first 4-digit year anywhere in the text.
func extractMonthYear(text string) (time.Month, int, bool) {
	var month time.Month
	found := false
	for _, word := range wordPattern.FindAllString(text, -1) {
		if m, ok := monthByName(word); ok {
			month = m
			found = true
			break
		}
	}
	if !found {
		return 0, 0, false
	}

	ym := yearPattern.FindStringSubmatch(text)
	if ym == nil {
		return 0, 0, false
	}
	year, _ := strconv.Atoi(ym[1])
	return month, year, true
}

func monthByName(word string) (time.Month, bool) {
	if t, err := time.Parse("January", word); err == nil {
		return t.Month(), true
	}
	if t, err := time.Parse("Jan", word); err == nil {
		return t.Month(), true
	}
	return 0, false
}

// expandRange interprets text as "start - end" within the extracted month
// and year, and returns every day from start through end inclusive. Returns
// nil when either half fails to parse so the caller can fall back.
func expandRange(text string, month time.Month, year int) []time.Time {
	halves := strings.SplitN(text, "-", 2)
	if len(halves) != 2 {
		return nil
	}

	start := leadingWeekdayPattern.ReplaceAllString(strings.TrimSpace(halves[0]), "")
	end := leadingWeekdayPattern.ReplaceAllString(strings.TrimSpace(halves[1]), "")

	yearStr := strconv.Itoa(year)
	if !strings.Contains(start, yearStr) {
		start = start + ", " + yearStr
	}
	if !strings.Contains(end, yearStr) {
		end = end + ", " + yearStr
	}
	if !strings.Contains(strings.ToLower(end), strings.ToLower(month.String())) {
		end = month.String() + " " + end
	}

	startDate := ParseSingle(start)
	endDate := ParseSingle(end)
	if startDate.IsZero() || endDate.IsZero() {
		return nil
	}

	days := make([]time.Time, 0, 8)
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// dayList pulls every 1-2 digit day number out of the fragments and maps
// each to a date in the extracted month and year.
func dayList(fragments []string, month time.Month, year int) []time.Time {
	seen := make(map[int]bool)
	days := make([]time.Time, 0, len(fragments))
	for _, fragment := range fragments {
		for _, m := range dayNumberPattern.FindAllStringSubmatch(fragment, -1) {
			day, _ := strconv.Atoi(m[1])
			if day < 1 || day > daysIn(year, month) || day == year || seen[day] {
				continue
			}
			seen[day] = true
			days = append(days, Day(year, month, day))
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func singleFallback(text string) []time.Time {
	if d := ParseSingle(text); !d.IsZero() {
		return []time.Time{d}
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
