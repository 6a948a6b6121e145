package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/usecase"
)

func (h *Handler) ListMatchLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchLogs")
	defer span.End()

	logs, err := h.matchLogService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list match logs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchLogDTO, 0, len(logs))
	for _, m := range logs {
		items = append(items, matchLogToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreateMatchLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchLog")
	defer span.End()

	var req createMatchLogRequest
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

	matchDate, err := parseMatchDate(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchLogService.Create(ctx, matchlog.MatchLog{
		Date:       matchDate,
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
		Venue:      req.Venue,
		Saves:      req.Saves,
		CleanSheet: req.CleanSheet,
		Notes:      req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match log failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchLogToDTO(created))
}

func (h *Handler) PatchMatchLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PatchMatchLog")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req patchMatchLogRequest
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

	update := matchlog.Update{
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
		Venue:      req.Venue,
		Saves:      req.Saves,
		CleanSheet: req.CleanSheet,
		Notes:      req.Notes,
	}
	if req.MatchDate != nil {
		matchDate, err := parseMatchDate(*req.MatchDate)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		update.Date = &matchDate
	}

	updated, err := h.matchLogService.Patch(ctx, matchID, update)
	if err != nil {
		h.logger.WarnContext(ctx, "patch match log failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchLogToDTO(updated))
}

func (h *Handler) DeleteMatchLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchLog")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.matchLogService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match log failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"deleted": matchID})
}
