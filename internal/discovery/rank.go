package discovery

import (
	"sort"

	"github.com/UnknownOlympus/creche/internal/models"
)

// MaxResults bounds how many facilities are handed to the presentation layer.
const MaxResults = 300

// Rank returns facilities sorted by ascending distance, keeping encounter
// order between equal distances, truncated to MaxResults. The input is not modified.
func Rank(facilities []models.Facility) []models.Facility {
	ranked := make([]models.Facility, len(facilities))
	copy(ranked, facilities)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})

	if len(ranked) > MaxResults {
		ranked = ranked[:MaxResults]
	}

	return ranked
}
