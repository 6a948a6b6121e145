package videoanalysis

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

var (
	// ErrNoJSONFound means the model response contains no {...} span at all.
	ErrNoJSONFound = errors.New("no JSON object found in model output")
	// ErrMalformedJSON means a {...} span exists but does not parse.
	ErrMalformedJSON = errors.New("malformed JSON in model output")
)

type rawResult struct {
	Saves   any `json:"saves"`
	Goals   any `json:"goals"`
	Summary any `json:"summary"`
	Events  any `json:"events"`
}

// Extract parses free-text model output into a validated, sorted Result.
//
// The model is prompted to answer with a JSON object but routinely wraps it
// in prose or markdown fences, so the parser takes the widest {...} span and
// recovers per-field: missing or non-numeric counts coerce to zero, a
// non-array events field becomes empty, malformed event entries are dropped
// and a missing summary is rebuilt from the final counts. Only the total
// absence of a JSON span or an unparseable span is
// reported as an error, always alongside a zeroed Result so callers can
// degrade without nil checks.
func Extract(raw string) (Result, error) {
	span, ok := jsonSpan(raw)
	if !ok {
		return Result{}, ErrNoJSONFound
	}

	var parsed rawResult
	if err := sonic.Unmarshal([]byte(span), &parsed); err != nil {
		return Result{}, ErrMalformedJSON
	}

	// A non-array events field is replaced with an empty list, not an error.
	rawEvents, _ := parsed.Events.([]any)

	events := make([]Event, 0, len(rawEvents))
	for _, item := range rawEvents {
		event, ok := coerceEvent(item)
		if !ok {
			continue
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return TimestampSeconds(events[i].Timestamp) < TimestampSeconds(events[j].Timestamp)
	})

	result := Result{
		Saves:  coerceCount(parsed.Saves),
		Goals:  coerceCount(parsed.Goals),
		Events: events,
	}

	// The persisted counts must agree with the event list whenever the model
	// produced one; the claimed numbers only stand in when it did not.
	if len(events) > 0 {
		result.Saves = 0
		result.Goals = 0
		for _, e := range events {
			switch e.Type {
			case EventTypeSave:
				result.Saves++
			case EventTypeGoal:
				result.Goals++
			}
		}
	}

	summary, _ := parsed.Summary.(string)
	result.Summary = strings.TrimSpace(summary)
	if result.Summary == "" {
		result.Summary = countsSummary(result.Saves, result.Goals)
	}

	return result, nil
}

// countsSummary stands in when the model omits its own summary line.
func countsSummary(saves, goals int) string {
	return fmt.Sprintf("The goalkeeper made %s and conceded %s.",
		pluralize(saves, "save"), pluralize(goals, "goal"))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// jsonSpan returns the widest brace-delimited span: first '{' through the
// last '}' after it.
func jsonSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, '}')
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

func coerceEvent(item any) (Event, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Event{}, false
	}

	eventType, ok := obj["type"].(string)
	if !ok || (eventType != EventTypeSave && eventType != EventTypeGoal) {
		return Event{}, false
	}
	timestamp, ok := obj["timestamp"].(string)
	if !ok {
		return Event{}, false
	}
	description, ok := obj["description"].(string)
	if !ok {
		return Event{}, false
	}

	return Event{
		Type:        eventType,
		Timestamp:   strings.TrimSpace(timestamp),
		Description: strings.TrimSpace(description),
	}, true
}

func coerceCount(value any) int {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case int64:
		if v < 0 {
			return 0
		}
		return int(v)
	default:
		return 0
	}
}

// TimestampSeconds converts an "MM:SS" timestamp to total seconds.
// Hour-long footage occasionally yields "H:MM:SS"; every segment is folded
// in base 60. Unparseable segments count as zero rather than failing.
func TimestampSeconds(ts string) int {
	total := 0
	for _, part := range strings.Split(strings.TrimSpace(ts), ":") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			n = 0
		}
		total = total*60 + n
	}
	return total
}
