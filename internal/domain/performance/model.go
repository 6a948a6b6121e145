package performance

import "math"

// Summary is the derived aggregate over all match logs for the tracked club.
// It is regenerated wholly on every recompute and never patched in place.
type Summary struct {
	Matches            int
	TotalSaves         int
	TotalGoalsConceded int
	CleanSheets        int
	SavePercentage     float64
	Won                int
	Drawn              int
	Lost               int
	// UnattributedMatches counts rows where the configured club is on
	// neither team sheet; they contribute to no other field.
	UnattributedMatches int
	Series              []SeriesPoint
}

// SeriesPoint is one month of the saves/conceded chart series.
type SeriesPoint struct {
	Period   string // "2026-01"
	Saves    int
	Conceded int
}

// SavePercentage computes saves / (saves + conceded) * 100 rounded to one
// decimal, zero when no shots were faced.
func SavePercentage(saves, conceded int) float64 {
	shots := saves + conceded
	if shots == 0 {
		return 0
	}
	return math.Round(float64(saves)/float64(shots)*1000) / 10
}
