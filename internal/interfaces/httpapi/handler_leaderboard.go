package httpapi

import (
	"net/http"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	board, err := h.leaderboardService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, board)
}

type eliteDTO struct {
	Name          string `json:"name"`
	Title         string `json:"title,omitempty"`
	PointsEarned  int64  `json:"pointsEarned"`
	PointsPerLoss int64  `json:"pointsPerLoss"`
	Badge         string `json:"badge,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
}

func (h *Handler) ListElites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListElites")
	defer span.End()

	elites, err := h.adminService.ListElites(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list elites failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]eliteDTO, 0, len(elites))
	for _, e := range elites {
		items = append(items, eliteDTO{
			Name:          e.Name,
			Title:         e.Title,
			PointsEarned:  e.PointsEarned,
			PointsPerLoss: e.PointsPerLoss,
			Badge:         e.Badge,
			Avatar:        e.Avatar,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type badgeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Requirement string `json:"requirement"`
	Rarity      string `json:"rarity"`
}

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBadges")
	defer span.End()

	catalog := badge.Catalog()
	items := make([]badgeDTO, 0, len(catalog))
	for _, def := range catalog {
		items = append(items, badgeDTO{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Requirement: def.Requirement,
			Rarity:      def.Rarity,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
