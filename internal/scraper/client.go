package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the club site monitored unless configured otherwise.
	DefaultBaseURL = "https://boylstonchess.org"
	// ListingPath is the events listing page under the base URL.
	ListingPath = "/events"

	UserAgent = "entrywatch/1.0 (+https://github.com/openchess/entrywatch)"
	Timeout   = 20 * time.Second
)

// ErrFetch marks transport failures (timeout, connection error, non-2xx
// status). Callers skip the affected document and continue; only a listing
// fetch failure is fatal to the run.
var ErrFetch = errors.New("fetch failed")

// Scraper fetches and parses club pages. A single fixed-timeout HTTP client
// is shared across the run; there are no retries.
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a Scraper for the given base URL. An empty baseURL selects
// DefaultBaseURL.
func New(baseURL string) *Scraper {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: baseURL,
	}
}

// BaseURL returns the configured site root.
func (s *Scraper) BaseURL() string {
	return s.baseURL
}

// ListingURL returns the absolute URL of the events listing page.
func (s *Scraper) ListingURL() string {
	return resolveURL(s.baseURL, ListingPath)
}

// Get fetches one document. Any failure is wrapped with ErrFetch.
func (s *Scraper) Get(pageURL string) (string, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrFetch, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s: unexpected status %d", ErrFetch, pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrFetch, pageURL, err)
	}
	return string(body), nil
}

// resolveURL resolves href against base, returning href unchanged when it is
// already absolute or base does not parse.
func resolveURL(base, href string) string {
	baseParsed, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseParsed.ResolveReference(ref).String()
}
