package matchlog

import (
	"fmt"
	"strings"
	"time"
)

// MatchLog is one played match recorded from the tracked keeper's point of view.
type MatchLog struct {
	ID         string
	Date       time.Time
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Venue      string
	Saves      int
	CleanSheet bool
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m MatchLog) Validate() error {
	if strings.TrimSpace(m.HomeTeam) == "" {
		return fmt.Errorf("home team is required")
	}
	if strings.TrimSpace(m.AwayTeam) == "" {
		return fmt.Errorf("away team is required")
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	if m.Saves < 0 {
		return fmt.Errorf("saves cannot be negative")
	}
	return nil
}

// Update carries a partial mutation; nil fields are left untouched.
type Update struct {
	Date       *time.Time
	HomeTeam   *string
	AwayTeam   *string
	HomeScore  *int
	AwayScore  *int
	Venue      *string
	Saves      *int
	CleanSheet *bool
	Notes      *string
}

func (u Update) Apply(m MatchLog) MatchLog {
	if u.Date != nil {
		m.Date = *u.Date
	}
	if u.HomeTeam != nil {
		m.HomeTeam = *u.HomeTeam
	}
	if u.AwayTeam != nil {
		m.AwayTeam = *u.AwayTeam
	}
	if u.HomeScore != nil {
		m.HomeScore = *u.HomeScore
	}
	if u.AwayScore != nil {
		m.AwayScore = *u.AwayScore
	}
	if u.Venue != nil {
		m.Venue = *u.Venue
	}
	if u.Saves != nil {
		m.Saves = *u.Saves
	}
	if u.CleanSheet != nil {
		m.CleanSheet = *u.CleanSheet
	}
	if u.Notes != nil {
		m.Notes = *u.Notes
	}
	return m
}
