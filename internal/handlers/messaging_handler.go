package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
)

type MessagingHandler struct {
	BaseHandler
	service services.MessagingService
}

func NewMessagingHandler(service services.MessagingService, logger utils.Logger) *MessagingHandler {
	return &MessagingHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SendMessage appends a direct message from the current user.
func (h *MessagingHandler) SendMessage(c *gin.Context) {
	h.LogRequest(c, "Sending message")

	senderID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req validator.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), senderID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetConversation returns the full exchange between the current user and
// another user, oldest first.
func (h *MessagingHandler) GetConversation(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	messages, err := h.service.GetConversation(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}
