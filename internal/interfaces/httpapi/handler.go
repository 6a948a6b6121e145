package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/glovework/keeper-stats/internal/platform/logging"
	"github.com/glovework/keeper-stats/internal/usecase"
)

type Handler struct {
	ingestionService   *usecase.IngestionService
	videoService       *usecase.VideoAnalysisService
	matchLogService    *usecase.MatchLogService
	performanceService *usecase.PerformanceService
	leagueService      *usecase.LeagueTableService
	settingsService    *usecase.SettingsService
	logger             *logging.Logger
	validator          *validator.Validate
	uploadMaxBytes     int64
}

func NewHandler(
	ingestionService *usecase.IngestionService,
	videoService *usecase.VideoAnalysisService,
	matchLogService *usecase.MatchLogService,
	performanceService *usecase.PerformanceService,
	leagueService *usecase.LeagueTableService,
	settingsService *usecase.SettingsService,
	uploadMaxBytes int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = 100 << 20
	}

	return &Handler{
		ingestionService:   ingestionService,
		videoService:       videoService,
		matchLogService:    matchLogService,
		performanceService: performanceService,
		leagueService:      leagueService,
		settingsService:    settingsService,
		logger:             logger,
		validator:          validator.New(),
		uploadMaxBytes:     uploadMaxBytes,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
