package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"alibi-backend/internal/config"
	"alibi-backend/internal/database"
	"alibi-backend/internal/middleware"
	"alibi-backend/internal/models"
	"alibi-backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer for REST; the socket carries its
	// own token, so cross-origin upgrades are acceptable here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	config   *config.Config
	dbClient *database.Client
	hub      *ws.Hub
}

func NewWebSocketHandler(cfg *config.Config, dbClient *database.Client, hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		config:   cfg,
		dbClient: dbClient,
		hub:      hub,
	}
}

// Serve upgrades the connection and subscribes it to the caller's channels.
// Browsers cannot set headers on the upgrade request, so the token travels
// as a query parameter.
func (h *WebSocketHandler) Serve(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing token"})
		return
	}

	claims, err := middleware.ParseToken(h.config.JWTSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid token", Message: err.Error()})
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid user id in token"})
		return
	}

	subscriptions := []string{ws.UserChannel(userID.String())}
	if claims.Role == models.RoleAdmin {
		// Admins may watch a specific conversation.
		if chatID := c.Query("chat_id"); chatID != "" {
			if _, err := uuid.Parse(chatID); err == nil {
				subscriptions = append(subscriptions, ws.ChatChannel(chatID))
			}
		}
	} else {
		chat, err := h.dbClient.GetOrCreateChat(userID)
		if err == nil {
			subscriptions = append(subscriptions, ws.ChatChannel(chat.ID.String()))
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, subscriptions)
	go client.Serve()
}
