package main

import (
	"net/http"

	"github.com/SAS-Sasao/sales-manage/internal/websocket"
)

// Type aliases so handlers can refer to hub types without the import.
type WSEvent = websocket.Event
type Hub = websocket.Hub

// Global hub instance.
var wsHub = websocket.NewHub()

// handleWebSocket upgrades the HTTP connection to a WebSocket.
func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.HandleWebSocket(wsHub, w, r)
}

// broadcast notifies connected clients that a master record changed.
func broadcast(resourceType, action string, id any) {
	wsHub.BroadcastChange(resourceType, action, id)
}
