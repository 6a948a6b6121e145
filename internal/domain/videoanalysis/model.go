package videoanalysis

import (
	"fmt"
	"strings"
	"time"
)

const (
	EventTypeSave = "save"
	EventTypeGoal = "goal"
)

// Event is one in-video occurrence extracted from model output.
type Event struct {
	Type        string
	Timestamp   string
	Description string
}

// TimedNote is a timestamp/description pair kept in the per-type child tables.
type TimedNote struct {
	Timestamp   string
	Description string
}

// Result is the structured outcome of one analysis run.
type Result struct {
	Saves    int
	Goals    int
	Events   []Event
	RawText  string
	Summary  string
	VideoURL string
}

// VideoAnalysis is one analyzed video with its persisted result bundle.
type VideoAnalysis struct {
	ID          string
	Date        time.Time
	Title       string
	Description string
	Saves       int
	Goals       int
	Result      Result
	SaveNotes   []TimedNote
	GoalNotes   []TimedNote
	CreatedAt   time.Time
}

func (v VideoAnalysis) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("video analysis id is required")
	}
	if strings.TrimSpace(v.Title) == "" {
		return fmt.Errorf("video analysis title is required")
	}
	return nil
}

// NotesFromEvents splits events into per-type timestamp/description pairs,
// preserving event order.
func NotesFromEvents(events []Event) (saves, goals []TimedNote) {
	for _, e := range events {
		note := TimedNote{Timestamp: e.Timestamp, Description: e.Description}
		switch e.Type {
		case EventTypeSave:
			saves = append(saves, note)
		case EventTypeGoal:
			goals = append(goals, note)
		}
	}
	return saves, goals
}
