package handlers

import (
	"net/http"

	"taskledger/internal/logger"
	"taskledger/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// frontend may be served from another origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS opens a live subscription to the caller's task changes. Browsers cannot
// set Authorization on websocket upgrades, so the token rides in the query
// string.
func (h *Handler) WS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	userID, err := h.Tokens.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(userID, conn)
	logger.Debug("feed subscriber connected", "user", userID)
	client.Run(h.Feed)
	logger.Debug("feed subscriber disconnected", "user", userID)
}
