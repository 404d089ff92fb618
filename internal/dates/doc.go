// Package dates parses the free-text date expressions found on the club
// website: single dates, day ranges ("Monday, June 2 - Friday, June 6, 2025"),
// and day lists within one month ("June 3, 10, and 17, 2025").
package dates
