package matchlog

import "strings"

// Side tells which side of a match the tracked club played.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	// SideNone means the club appears on neither team sheet; such rows are
	// excluded from derived stats instead of being treated as away games.
	SideNone Side = "none"
)

// ResolveClubSide is the single source of truth for "which side is the
// tracked club". Comparison is case-insensitive on trimmed team names.
func ResolveClubSide(m MatchLog, clubTeam string) Side {
	club := strings.TrimSpace(clubTeam)
	if club == "" {
		return SideNone
	}
	if strings.EqualFold(strings.TrimSpace(m.HomeTeam), club) {
		return SideHome
	}
	if strings.EqualFold(strings.TrimSpace(m.AwayTeam), club) {
		return SideAway
	}
	return SideNone
}

// ClubView is the match reduced to the tracked club's perspective.
type ClubView struct {
	Side          Side
	GoalsScored   int
	GoalsConceded int
}

func ViewForClub(m MatchLog, clubTeam string) (ClubView, bool) {
	side := ResolveClubSide(m, clubTeam)
	switch side {
	case SideHome:
		return ClubView{Side: side, GoalsScored: m.HomeScore, GoalsConceded: m.AwayScore}, true
	case SideAway:
		return ClubView{Side: side, GoalsScored: m.AwayScore, GoalsConceded: m.HomeScore}, true
	default:
		return ClubView{Side: SideNone}, false
	}
}
