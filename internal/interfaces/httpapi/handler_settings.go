package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/glovework/keeper-stats/internal/domain/settings"
	"github.com/glovework/keeper-stats/internal/usecase"
)

func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPerformance")
	defer span.End()

	summary, err := h.performanceService.Summary(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get performance summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, performanceToDTO(summary))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	cfg, err := h.settingsService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(cfg))
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSettings")
	defer span.End()

	var req saveSettingsRequest
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

	saved, err := h.settingsService.Save(ctx, settings.UserSettings{ClubTeam: req.ClubTeam})
	if err != nil {
		h.logger.WarnContext(ctx, "save settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(saved))
}
