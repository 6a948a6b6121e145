package leaguetable

import "sort"

// Rank orders rows by points descending, tie-break on goal difference
// descending, and reassigns Position as a dense 1..N sequence. The input
// slice is not modified.
func Rank(rows []TeamData) []TeamData {
	out := make([]TeamData, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].GoalDifference() > out[j].GoalDifference()
	})

	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
