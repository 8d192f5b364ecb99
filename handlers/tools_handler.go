package handlers

import (
	"net/http"

	"github.com/gamenight/boardgame-league/services"
)

type ToolsHandler struct {
	pickerService services.PickerService
}

func NewToolsHandler(ps services.PickerService) *ToolsHandler {
	return &ToolsHandler{pickerService: ps}
}

// DrawFirstPlayer picks who starts, at random, among the given players.
func (h *ToolsHandler) DrawFirstPlayer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlayerIDs []int `json:"player_ids"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.pickerService.DrawFirstPlayer(r.Context(), input.PlayerIDs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"first_player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
