// Package discovery holds the pure stages of the facility pipeline:
// deduplication, enrichment and ranking.
package discovery

import "github.com/UnknownOlympus/creche/internal/models"

// Dedupe keeps the first candidate seen for each ID, in encounter order.
// Later duplicates are discarded, not merged. Candidates without a usable
// location are dropped.
func Dedupe(candidates []models.RawCandidate) []models.RawCandidate {
	seen := make(map[int64]struct{}, len(candidates))
	out := make([]models.RawCandidate, 0, len(candidates))

	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}

		if _, ok := c.Location.Point(); !ok {
			continue
		}
		out = append(out, c)
	}

	return out
}
