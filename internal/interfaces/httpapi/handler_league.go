package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/usecase"
)

func (h *Handler) ListLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueTable")
	defer span.End()

	rows, err := h.leagueService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list league table failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leagueRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddLeagueTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddLeagueTeam")
	defer span.End()

	var req leagueRowRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	added, err := h.leagueService.AddTeam(ctx, leaguetable.TeamData{
		Team:         req.Team,
		Played:       req.Played,
		Won:          req.Won,
		Drawn:        req.Drawn,
		Lost:         req.Lost,
		GoalsFor:     req.GoalsFor,
		GoalsAgainst: req.GoalsAgainst,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add league team failed", "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueRowToDTO(added))
}

func (h *Handler) UpdateLeagueTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateLeagueTeam")
	defer span.End()

	teamName := r.PathValue("teamName")

	var req updateLeagueRowRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.leagueService.UpdateTeam(ctx, teamName, leaguetable.TeamData{
		Played:       req.Played,
		Won:          req.Won,
		Drawn:        req.Drawn,
		Lost:         req.Lost,
		GoalsFor:     req.GoalsFor,
		GoalsAgainst: req.GoalsAgainst,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update league team failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueRowToDTO(updated))
}

func (h *Handler) DeleteLeagueTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteLeagueTeam")
	defer span.End()

	teamName := r.PathValue("teamName")
	if err := h.leagueService.DeleteTeam(ctx, teamName); err != nil {
		h.logger.WarnContext(ctx, "delete league team failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": teamName})
}
