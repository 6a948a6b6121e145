package memory

import (
	"time"

	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/domain/settings"
)

const SeedClubTeam = "Riverton Rovers"

// Seed data backs local development without a database.
func SeedSettings() settings.UserSettings {
	return settings.UserSettings{ClubTeam: SeedClubTeam}
}

func SeedMatchLogs() []matchlog.MatchLog {
	date := func(day int) time.Time {
		return time.Date(2026, time.March, day, 15, 0, 0, 0, time.UTC)
	}
	return []matchlog.MatchLog{
		{
			ID:         "match-0001",
			Date:       date(7),
			HomeTeam:   SeedClubTeam,
			AwayTeam:   "Harborview United",
			HomeScore:  2,
			AwayScore:  0,
			Venue:      "Riverton Park",
			Saves:      5,
			CleanSheet: true,
			Notes:      "Two strong low saves in the second half.",
		},
		{
			ID:        "match-0002",
			Date:      date(14),
			HomeTeam:  "Eastgate Albion",
			AwayTeam:  SeedClubTeam,
			HomeScore: 2,
			AwayScore: 1,
			Venue:     "Eastgate Arena",
			Saves:     7,
			Notes:     "Busy afternoon, beaten twice from close range.",
		},
		{
			ID:        "match-0003",
			Date:      date(21),
			HomeTeam:  SeedClubTeam,
			AwayTeam:  "Millbrook City",
			HomeScore: 1,
			AwayScore: 1,
			Venue:     "Riverton Park",
			Saves:     4,
		},
	}
}

func SeedLeagueTable() []leaguetable.TeamData {
	return []leaguetable.TeamData{
		{Position: 1, Team: "Millbrook City", Played: 3, Won: 2, Drawn: 1, Lost: 0, GoalsFor: 6, GoalsAgainst: 2, Points: 7},
		{Position: 2, Team: SeedClubTeam, Played: 3, Won: 1, Drawn: 1, Lost: 1, GoalsFor: 4, GoalsAgainst: 3, Points: 4},
		{Position: 3, Team: "Eastgate Albion", Played: 3, Won: 1, Drawn: 1, Lost: 1, GoalsFor: 3, GoalsAgainst: 4, Points: 4},
		{Position: 4, Team: "Harborview United", Played: 3, Won: 0, Drawn: 1, Lost: 2, GoalsFor: 1, GoalsAgainst: 5, Points: 1},
	}
}
