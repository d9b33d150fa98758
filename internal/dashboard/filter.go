// Package dashboard provides shared view-model logic for the scan dashboard:
// row filtering, truncation, and display formatting, used by the TUI client.
package dashboard

import (
	"strings"

	"scandash/internal/artifact"
)

// DefaultTopN is the initial row cap for the ranking table.
const DefaultTopN = 50

// FilterEntries returns the entries matching the free-text query, preserving
// artifact order. A row matches when the lowercased query is a substring of
// "<ticker> <explanation>" lowercased; an empty query matches everything.
func FilterEntries(entries []artifact.RankedEntry, query string) []artifact.RankedEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var matched []artifact.RankedEntry
	for _, e := range entries {
		text := strings.ToLower(e.Ticker + " " + e.Explanation)
		if strings.Contains(text, q) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Truncate returns the first n entries in order. n <= 0 yields no rows.
func Truncate(entries []artifact.RankedEntry, n int) []artifact.RankedEntry {
	if n <= 0 {
		return nil
	}
	if n >= len(entries) {
		return entries
	}
	return entries[:n]
}
