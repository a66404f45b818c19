package transport

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"relay-chat/contract"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The relay trusts any origin; lock this down when fronted by a proxy.
	},
}

// Handler upgrades HTTP requests to websocket sessions. Each accepted
// connection gets a fresh uuid as its session id; ids are never reused
// and carry no identity across reconnects.
type Handler struct {
	log            *slog.Logger
	lifecycle      contract.ILifecycle
	sendBufferSize int
	readLimit      int64
}

func NewHandler(log *slog.Logger, lifecycle contract.ILifecycle, sendBufferSize int, readLimit int64) *Handler {
	return &Handler{
		log:            log,
		lifecycle:      lifecycle,
		sendBufferSize: sendBufferSize,
		readLimit:      readLimit,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	client := NewClient(uuid.NewString(), conn, h.sendBufferSize, h.log)
	go client.writePump()

	if err := h.lifecycle.Connect(client.ID(), client); err != nil {
		client.close()
		conn.Close()
		return
	}
	go client.readPump(h.lifecycle, h.readLimit)
}
