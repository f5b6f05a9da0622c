package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

type Handler struct {
	leaderboardService *usecase.LeaderboardService
	adminService       *usecase.AdminService
	updateService      *usecase.LeaderboardUpdateService
	badgeService       *usecase.BadgeService
	logger             *slog.Logger
	validator          *validator.Validate
}

func NewHandler(
	leaderboardService *usecase.LeaderboardService,
	adminService *usecase.AdminService,
	updateService *usecase.LeaderboardUpdateService,
	badgeService *usecase.BadgeService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		leaderboardService: leaderboardService,
		adminService:       adminService,
		updateService:      updateService,
		badgeService:       badgeService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
