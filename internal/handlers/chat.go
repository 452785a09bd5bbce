package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"alibi-backend/internal/database"
	"alibi-backend/internal/models"
	"alibi-backend/internal/ws"
)

// chatHistoryLimit bounds how many messages a detail view loads.
const chatHistoryLimit = 50

// ChatHandler serves support chat over REST; delivery to connected peers
// goes through the websocket hub.
type ChatHandler struct {
	dbClient *database.Client
	hub      *ws.Hub
}

func NewChatHandler(dbClient *database.Client, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{
		dbClient: dbClient,
		hub:      hub,
	}
}

// GetChat returns the caller's support chat with recent history, creating
// the chat on first use.
func (h *ChatHandler) GetChat(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	chat, err := h.dbClient.GetOrCreateChat(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get chat", Message: err.Error()})
		return
	}

	resp := models.NewChatResponse(chat)
	messages, err := h.dbClient.ListChatMessages(chat.ID, chatHistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load messages", Message: err.Error()})
		return
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, models.NewChatMessageResponse(&messages[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// SendMessage posts a message into the caller's chat and pushes it to
// connected participants.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := currentUserID(c)
	if userID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	chat, err := h.dbClient.GetOrCreateChat(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get chat", Message: err.Error()})
		return
	}

	message, err := h.dbClient.CreateChatMessage(chat.ID, models.SenderUser, userID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to send message", Message: err.Error()})
		return
	}

	resp := models.NewChatMessageResponse(message)
	h.hub.Publish(ws.ChatChannel(chat.ID.String()), "chat_message", resp)

	c.JSON(http.StatusCreated, resp)
}

// ListChats is the admin inbox: chats ordered by recent activity.
func (h *ChatHandler) ListChats(c *gin.Context) {
	status := statusParam(c)
	if status != "" && !models.ValidChatStatus(status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status filter", Message: status})
		return
	}

	page := pageParam(c)
	chats, count, err := h.dbClient.ListChats(page, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list chats", Message: err.Error()})
		return
	}

	results := make([]models.ChatResponse, len(chats))
	for i := range chats {
		results[i] = models.NewChatResponse(&chats[i])
	}

	c.JSON(http.StatusOK, models.ChatListResponse{
		Results:    results,
		Pagination: models.NewPagination(count, page),
	})
}

// GetChatByID is the admin detail view of one conversation.
func (h *ChatHandler) GetChatByID(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid chat id"})
		return
	}

	chat, err := h.dbClient.GetChat(chatID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "chat not found", Message: err.Error()})
		return
	}

	resp := models.NewChatResponse(chat)
	messages, err := h.dbClient.ListChatMessages(chat.ID, chatHistoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load messages", Message: err.Error()})
		return
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, models.NewChatMessageResponse(&messages[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// SendAdminMessage posts a support reply into a chat.
func (h *ChatHandler) SendAdminMessage(c *gin.Context) {
	adminID := currentUserID(c)
	if adminID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	chatID, err := uuid.Parse(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid chat id"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	chat, err := h.dbClient.GetChat(chatID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "chat not found", Message: err.Error()})
		return
	}

	message, err := h.dbClient.CreateChatMessage(chat.ID, models.SenderAdmin, adminID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to send message", Message: err.Error()})
		return
	}

	resp := models.NewChatMessageResponse(message)
	h.hub.Publish(ws.ChatChannel(chat.ID.String()), "chat_message", resp)
	h.hub.Publish(ws.UserChannel(chat.UserID.String()), "chat_message", resp)

	c.JSON(http.StatusCreated, resp)
}

// UpdateChatStatus opens or closes a conversation; the same inline
// transition shape the request screens use.
func (h *ChatHandler) UpdateChatStatus(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid chat id"})
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if !models.ValidChatStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status", Message: req.Status})
		return
	}

	if _, err := h.dbClient.GetChat(chatID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "chat not found", Message: err.Error()})
		return
	}

	chat, err := h.dbClient.UpdateChatStatus(chatID, req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update chat", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.NewChatResponse(chat))
}
