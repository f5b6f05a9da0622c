package httpapi

import (
	"net/http"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

type updateEliteRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	PointsPerLoss *int64  `json:"pointsPerLoss" validate:"omitempty,min=0"`
	Badge         *string `json:"badge" validate:"omitempty,max=200"`
	Password      string  `json:"password" validate:"required"`
}

func (h *Handler) UpdateElite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateElite")
	defer span.End()

	var req updateEliteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.adminService.UpdateEliteTuning(ctx, usecase.EliteTuningInput{
		Name:          req.Name,
		PointsPerLoss: req.PointsPerLoss,
		Badge:         req.Badge,
		Password:      req.Password,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update elite failed", "elite", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eliteDTO{
		Name:          updated.Name,
		Title:         updated.Title,
		PointsEarned:  updated.PointsEarned,
		PointsPerLoss: updated.PointsPerLoss,
		Badge:         updated.Badge,
		Avatar:        updated.Avatar,
	})
}
