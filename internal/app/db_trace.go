package app

import "strings"

// Spans carry the statement for debugging, collapsed to one line and capped
// so large inserts do not bloat the trace payload.
const maxTracedQueryLength = 512

func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) > maxTracedQueryLength {
		return normalized[:maxTracedQueryLength] + "..."
	}
	return normalized
}
