// Package scraper fetches and parses the club website: the events listing,
// per-event detail pages, and entry-list pages. The pages carry no stable
// schema, so every extractor is a cascade of heuristics tried in a fixed
// priority order with the first non-empty result winning.
package scraper
