package httpapi

import (
	"fmt"
	"time"

	"github.com/glovework/keeper-stats/internal/domain/analysisjob"
	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/domain/performance"
	"github.com/glovework/keeper-stats/internal/domain/settings"
	"github.com/glovework/keeper-stats/internal/domain/shotmap"
	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
	"github.com/glovework/keeper-stats/internal/usecase"
)

const matchDateLayout = "2006-01-02"

type matchLogDTO struct {
	ID         string `json:"id"`
	MatchDate  string `json:"matchDate"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	Venue      string `json:"venue,omitempty"`
	Saves      int    `json:"saves"`
	CleanSheet bool   `json:"cleanSheet"`
	Notes      string `json:"notes,omitempty"`
}

type createMatchLogRequest struct {
	MatchDate  string `json:"matchDate" validate:"required"`
	HomeTeam   string `json:"homeTeam" validate:"required,max=100"`
	AwayTeam   string `json:"awayTeam" validate:"required,max=100"`
	HomeScore  int    `json:"homeScore" validate:"gte=0"`
	AwayScore  int    `json:"awayScore" validate:"gte=0"`
	Venue      string `json:"venue" validate:"omitempty,max=200"`
	Saves      int    `json:"saves" validate:"gte=0"`
	CleanSheet bool   `json:"cleanSheet"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
}

type patchMatchLogRequest struct {
	MatchDate  *string `json:"matchDate" validate:"omitempty"`
	HomeTeam   *string `json:"homeTeam" validate:"omitempty,max=100"`
	AwayTeam   *string `json:"awayTeam" validate:"omitempty,max=100"`
	HomeScore  *int    `json:"homeScore" validate:"omitempty,gte=0"`
	AwayScore  *int    `json:"awayScore" validate:"omitempty,gte=0"`
	Venue      *string `json:"venue" validate:"omitempty,max=200"`
	Saves      *int    `json:"saves" validate:"omitempty,gte=0"`
	CleanSheet *bool   `json:"cleanSheet"`
	Notes      *string `json:"notes" validate:"omitempty,max=2000"`
}

type eventDTO struct {
	Type        string `json:"type"`
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

type timedNoteDTO struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
}

type analysisResultDTO struct {
	Saves    int        `json:"saves"`
	Goals    int        `json:"goals"`
	Events   []eventDTO `json:"events"`
	Summary  string     `json:"summary,omitempty"`
	VideoURL string     `json:"videoUrl,omitempty"`
}

type videoAnalysisDTO struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Saves       int            `json:"saves"`
	Goals       int            `json:"goals"`
	Result      analysisResultDTO `json:"result"`
	SaveNotes   []timedNoteDTO `json:"saveNotes"`
	GoalNotes   []timedNoteDTO `json:"goalNotes"`
}

type uploadResultDTO struct {
	VideoID   string `json:"videoId"`
	PublicURL string `json:"publicUrl"`
}

type jobStatusDTO struct {
	VideoID       string             `json:"videoId"`
	Status        string             `json:"status"`
	FailureReason string             `json:"failureReason,omitempty"`
	SubmittedAt   string             `json:"submittedAt"`
	FinishedAt    string             `json:"finishedAt,omitempty"`
	Data          *analysisResultDTO `json:"data,omitempty"`
}

type shotMapMarkerDTO struct {
	Type        string  `json:"type"`
	Timestamp   string  `json:"timestamp"`
	Description string  `json:"description"`
	Zone        string  `json:"zone"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

type shotMapDTO struct {
	Saves   int                `json:"saves"`
	Goals   int                `json:"goals"`
	Other   int                `json:"other"`
	Markers []shotMapMarkerDTO `json:"markers"`
}

type leagueRowDTO struct {
	Position     int    `json:"position"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDifference"`
	Points       int    `json:"points"`
}

type leagueRowRequest struct {
	Team         string `json:"team" validate:"required,max=100"`
	Played       int    `json:"played" validate:"gte=0"`
	Won          int    `json:"won" validate:"gte=0"`
	Drawn        int    `json:"drawn" validate:"gte=0"`
	Lost         int    `json:"lost" validate:"gte=0"`
	GoalsFor     int    `json:"goalsFor" validate:"gte=0"`
	GoalsAgainst int    `json:"goalsAgainst" validate:"gte=0"`
}

type updateLeagueRowRequest struct {
	Played       int `json:"played" validate:"gte=0"`
	Won          int `json:"won" validate:"gte=0"`
	Drawn        int `json:"drawn" validate:"gte=0"`
	Lost         int `json:"lost" validate:"gte=0"`
	GoalsFor     int `json:"goalsFor" validate:"gte=0"`
	GoalsAgainst int `json:"goalsAgainst" validate:"gte=0"`
}

type seriesPointDTO struct {
	Period   string `json:"period"`
	Saves    int    `json:"saves"`
	Conceded int    `json:"conceded"`
}

type performanceDTO struct {
	Matches             int              `json:"matches"`
	TotalSaves          int              `json:"totalSaves"`
	TotalGoalsConceded  int              `json:"totalGoalsConceded"`
	CleanSheets         int              `json:"cleanSheets"`
	SavePercentage      float64          `json:"savePercentage"`
	Won                 int              `json:"won"`
	Drawn               int              `json:"drawn"`
	Lost                int              `json:"lost"`
	UnattributedMatches int              `json:"unattributedMatches"`
	Series              []seriesPointDTO `json:"series"`
}

type settingsDTO struct {
	ClubTeam string `json:"clubTeam"`
}

type saveSettingsRequest struct {
	ClubTeam string `json:"clubTeam" validate:"required,max=100"`
}

func matchLogToDTO(m matchlog.MatchLog) matchLogDTO {
	return matchLogDTO{
		ID:         m.ID,
		MatchDate:  m.Date.Format(matchDateLayout),
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		Venue:      m.Venue,
		Saves:      m.Saves,
		CleanSheet: m.CleanSheet,
		Notes:      m.Notes,
	}
}

func parseMatchDate(value string) (time.Time, error) {
	parsed, err := time.Parse(matchDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: match date must be YYYY-MM-DD: %v", usecase.ErrInvalidInput, err)
	}
	return parsed, nil
}

func eventsToDTO(events []videoanalysis.Event) []eventDTO {
	out := make([]eventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, eventDTO{Type: e.Type, Timestamp: e.Timestamp, Description: e.Description})
	}
	return out
}

func notesToDTO(notes []videoanalysis.TimedNote) []timedNoteDTO {
	out := make([]timedNoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, timedNoteDTO{Timestamp: n.Timestamp, Description: n.Description})
	}
	return out
}

func resultToDTO(result videoanalysis.Result) analysisResultDTO {
	return analysisResultDTO{
		Saves:    result.Saves,
		Goals:    result.Goals,
		Events:   eventsToDTO(result.Events),
		Summary:  result.Summary,
		VideoURL: result.VideoURL,
	}
}

func videoAnalysisToDTO(v videoanalysis.VideoAnalysis) videoAnalysisDTO {
	return videoAnalysisDTO{
		ID:          v.ID,
		Date:        v.Date.UTC().Format(time.RFC3339),
		Title:       v.Title,
		Description: v.Description,
		Saves:       v.Saves,
		Goals:       v.Goals,
		Result:      resultToDTO(v.Result),
		SaveNotes:   notesToDTO(v.SaveNotes),
		GoalNotes:   notesToDTO(v.GoalNotes),
	}
}

func jobToStatusDTO(job analysisjob.Job) jobStatusDTO {
	out := jobStatusDTO{
		VideoID:       job.VideoID,
		Status:        string(job.Status),
		FailureReason: string(job.FailureReason),
		SubmittedAt:   job.SubmittedAt.UTC().Format(time.RFC3339),
	}
	if !job.FinishedAt.IsZero() {
		out.FinishedAt = job.FinishedAt.UTC().Format(time.RFC3339)
	}
	if job.Terminal() {
		result := resultToDTO(job.Result)
		out.Data = &result
	}
	return out
}

func projectionToDTO(p shotmap.Projection) shotMapDTO {
	markers := make([]shotMapMarkerDTO, 0, len(p.Markers))
	for _, m := range p.Markers {
		markers = append(markers, shotMapMarkerDTO{
			Type:        m.Type,
			Timestamp:   m.Timestamp,
			Description: m.Description,
			Zone:        m.Zone,
			X:           m.X,
			Y:           m.Y,
		})
	}
	return shotMapDTO{
		Saves:   p.Saves,
		Goals:   p.Goals,
		Other:   p.Other,
		Markers: markers,
	}
}

func leagueRowToDTO(row leaguetable.TeamData) leagueRowDTO {
	return leagueRowDTO{
		Position:     row.Position,
		Team:         row.Team,
		Played:       row.Played,
		Won:          row.Won,
		Drawn:        row.Drawn,
		Lost:         row.Lost,
		GoalsFor:     row.GoalsFor,
		GoalsAgainst: row.GoalsAgainst,
		GoalDiff:     row.GoalDifference(),
		Points:       row.Points,
	}
}

func performanceToDTO(summary performance.Summary) performanceDTO {
	series := make([]seriesPointDTO, 0, len(summary.Series))
	for _, point := range summary.Series {
		series = append(series, seriesPointDTO{
			Period:   point.Period,
			Saves:    point.Saves,
			Conceded: point.Conceded,
		})
	}
	return performanceDTO{
		Matches:             summary.Matches,
		TotalSaves:          summary.TotalSaves,
		TotalGoalsConceded:  summary.TotalGoalsConceded,
		CleanSheets:         summary.CleanSheets,
		SavePercentage:      summary.SavePercentage,
		Won:                 summary.Won,
		Drawn:               summary.Drawn,
		Lost:                summary.Lost,
		UnattributedMatches: summary.UnattributedMatches,
		Series:              series,
	}
}

func settingsToDTO(s settings.UserSettings) settingsDTO {
	return settingsDTO{ClubTeam: s.ClubTeam}
}
