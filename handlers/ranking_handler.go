package handlers

import (
	"net/http"

	"github.com/gamenight/boardgame-league/services"
)

type RankingHandler struct {
	leaderboardService services.LeaderboardService
	ratingService      services.RatingService
}

func NewRankingHandler(ls services.LeaderboardService, rs services.RatingService) *RankingHandler {
	return &RankingHandler{
		leaderboardService: ls,
		ratingService:      rs,
	}
}

func (h *RankingHandler) GetEloRanking(w http.ResponseWriter, r *http.Request) {
	rows, err := h.leaderboardService.EloRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RankingHandler) GetWinRateRanking(w http.ResponseWriter, r *http.Request) {
	rows, err := h.leaderboardService.WinRateRanking(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecomputeRatings replays the whole ranked history and persists the result.
// Normally triggered automatically after match mutations; exposed for manual
// repair.
func (h *RankingHandler) RecomputeRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.ratingService.RecomputeAllRatings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players_rated": len(ratings)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
