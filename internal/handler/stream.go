package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rpatil/nse-market-proxy/internal/stream"
)

// Origins are already wide open on the REST surface; the stream matches.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream upgrades the connection and attaches it to the broadcast hub. The
// client then receives every refreshed market snapshot until it hangs up.
func (h *Handler) Stream(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := stream.NewClient(h.hub, conn)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump()
}
