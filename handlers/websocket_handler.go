package handlers

import (
	"log"
	"net/http"

	"github.com/gamenight/boardgame-league/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The league runs on a trusted LAN / small deployment; tighten this
		// when exposing the websocket publicly.
		return true
	},
}

type WebSocketHandler struct {
	hub *live.Hub
}

func NewWebSocketHandler(hub *live.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeLeaderboard subscribes the connection to leaderboard updates.
func (h *WebSocketHandler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket connection: %v", err)
		return
	}

	client := live.NewClient(h.hub, conn, live.RoomLeaderboard)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
