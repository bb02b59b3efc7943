package gameapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// watch upgrades the request to a WebSocket and streams session
// snapshots until the session watcher is torn down or the client
// disconnects.
func (gc *GameController) watch(ctx *gin.Context) {
	id, ok := playerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	updates, cancelWatch, err := gc.games.Watch(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		cancelWatch()
		return
	}
	defer func() {
		cancelWatch()
		_ = conn.Close()
	}()

	// Drain reads so client close frames are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// The current state first, then every change.
	if snapshot, err := gc.games.Snapshot(id); err == nil {
		if err := conn.WriteJSON(snapshot); err != nil {
			return
		}
	}

	for {
		select {
		case snapshot, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
