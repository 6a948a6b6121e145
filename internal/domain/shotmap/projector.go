// Package shotmap projects extracted video events onto a 2D goal-mouth
// diagram. The projection is a render-time aid only: coordinates are never
// persisted and carry bounded random jitter so stacked markers stay legible.
package shotmap

import (
	"math/rand"
	"strings"

	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
)

// The goal mouth is a normalized 100x100 plane; (0,0) is the top-left
// corner as a viewer faces the goal.
const (
	PlaneWidth  = 100
	PlaneHeight = 100
	jitterRange = 3
)

type Zone struct {
	Name string
	X    float64
	Y    float64
}

// zones is the fixed five-entry lookup; order matters because the first
// matching name wins on substring lookup.
var zones = []Zone{
	{Name: "top-left", X: 20, Y: 22},
	{Name: "top-right", X: 80, Y: 22},
	{Name: "bottom-left", X: 20, Y: 78},
	{Name: "bottom-right", X: 80, Y: 78},
	{Name: "center", X: 50, Y: 50},
}

var centerZone = zones[4]

type Marker struct {
	Type        string
	Timestamp   string
	Description string
	Zone        string
	X           float64
	Y           float64
}

// Projection is the full render payload for one video's events.
type Projection struct {
	Saves   int
	Goals   int
	Other   int
	Markers []Marker
}

// Projector maps events to jittered marker coordinates. The random source
// is injected so tests can pin the jitter; production seeds from the clock.
type Projector struct {
	rng *rand.Rand
}

func NewProjector(rng *rand.Rand) *Projector {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Projector{rng: rng}
}

func (p *Projector) Project(events []videoanalysis.Event) Projection {
	out := Projection{Markers: make([]Marker, 0, len(events))}

	for _, e := range events {
		switch e.Type {
		case videoanalysis.EventTypeSave:
			out.Saves++
		case videoanalysis.EventTypeGoal:
			out.Goals++
		default:
			out.Other++
		}

		zone := resolveZone(e.Description)
		out.Markers = append(out.Markers, Marker{
			Type:        e.Type,
			Timestamp:   e.Timestamp,
			Description: e.Description,
			Zone:        zone.Name,
			X:           clamp(zone.X + p.jitter()),
			Y:           clamp(zone.Y + p.jitter()),
		})
	}
	return out
}

func (p *Projector) jitter() float64 {
	return (p.rng.Float64()*2 - 1) * jitterRange
}

// resolveZone matches the lower-cased description against the zone table;
// anything that names no zone lands in the center.
func resolveZone(description string) Zone {
	needle := strings.ToLower(description)
	for _, z := range zones {
		if strings.Contains(needle, z.Name) {
			return z
		}
	}
	// Descriptions like "top left" without the hyphen still deserve a slot.
	for _, z := range zones {
		if strings.Contains(needle, strings.ReplaceAll(z.Name, "-", " ")) {
			return z
		}
	}
	return centerZone
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > PlaneWidth {
		return PlaneWidth
	}
	return v
}
