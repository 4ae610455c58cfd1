package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
)

type ChannelHandler struct {
	BaseHandler
	service services.ChannelService
}

func NewChannelHandler(service services.ChannelService, logger utils.Logger) *ChannelHandler {
	return &ChannelHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateChannel creates a channel owned by the current professor.
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	h.LogRequest(c, "Creating channel")

	professorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req validator.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	channel, err := h.service.CreateChannel(c.Request.Context(), professorID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, channel)
}

// ListChannels returns the full channel catalog.
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.service.ListChannels(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"count":    len(channels),
	})
}

// GetChannel returns one channel.
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	channel, err := h.service.GetChannel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, channel)
}

// UpdateChannel updates a channel the current professor owns.
func (h *ChannelHandler) UpdateChannel(c *gin.Context) {
	h.LogRequest(c, "Updating channel")

	professorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req validator.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	channel, err := h.service.UpdateChannel(c.Request.Context(), professorID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, channel)
}

// DeleteChannel deletes a channel the current professor owns, cascading
// the subscription rows.
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	h.LogRequest(c, "Deleting channel")

	professorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteChannel(c.Request.Context(), professorID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListProfessorChannels returns every channel a professor owns.
func (h *ChannelHandler) ListProfessorChannels(c *gin.Context) {
	channels, err := h.service.ListProfessorChannels(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"count":    len(channels),
	})
}

// AddContent appends a content item to a channel the current professor
// owns.
func (h *ChannelHandler) AddContent(c *gin.Context) {
	h.LogRequest(c, "Adding channel content")

	professorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req validator.AddContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	content, err := h.service.AddContent(c.Request.Context(), professorID, c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, content)
}

// ListContent returns a channel's content in upload order.
func (h *ChannelHandler) ListContent(c *gin.Context) {
	content, err := h.service.ListContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"content": content,
		"count":   len(content),
	})
}

// ExportReport streams the current professor's channel statistics as an
// xlsx download.
func (h *ChannelHandler) ExportReport(c *gin.Context) {
	h.LogRequest(c, "Exporting professor report")

	professorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	workbook, err := h.service.ExportProfessorReport(c.Request.Context(), professorID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "channel-report.xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
