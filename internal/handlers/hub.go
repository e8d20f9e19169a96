package handlers

import (
	"strconv"

	ws "five-card-trick-go/pkg/websocket"
)

// hubProvider is set by main at startup so HTTP handlers can broadcast
// realtime updates to session galleries.
var hubProvider func() (*ws.Hub, bool)

func SetHubProvider(p func() (*ws.Hub, bool)) {
	hubProvider = p
}

// broadcastSessionUpdate pushes the public snapshot to the session's gallery
// room. Spectators only ever receive the public view.
func broadcastSessionUpdate(sessionID int64, managed *ManagedSession) {
	if hubProvider == nil || managed == nil {
		return
	}
	hub, ok := hubProvider()
	if !ok || hub == nil {
		return
	}
	managed.Mu.Lock()
	view := buildPublicView(sessionID, managed.Session)
	managed.Mu.Unlock()
	hub.Broadcast("session:"+strconv.FormatInt(sessionID, 10), "session_update", view)
}
