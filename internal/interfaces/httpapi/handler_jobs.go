package httpapi

import (
	"fmt"
	"net/http"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

// RunUpdateLeaderboardJob is the on-demand trigger for the scoring pass. It
// is parameterless and idempotent: callers may retry freely, duplicates are
// absorbed by the match claim.
func (h *Handler) RunUpdateLeaderboardJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunUpdateLeaderboardJob")
	defer span.End()

	if h.updateService == nil {
		writeError(ctx, w, fmt.Errorf("%w: update job is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	summary, err := h.updateService.Run(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "update leaderboard job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) RunReconcileBadgesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileBadgesJob")
	defer span.End()

	if h.badgeService == nil {
		writeError(ctx, w, fmt.Errorf("%w: badge service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	updated, err := h.badgeService.ReconcileAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile badges job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"huntersUpdated": updated})
}
