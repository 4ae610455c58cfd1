package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
)

type AnnouncementHandler struct {
	BaseHandler
	service services.AnnouncementService
}

func NewAnnouncementHandler(service services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Publish posts a broadcast announcement from the current professor.
func (h *AnnouncementHandler) Publish(c *gin.Context) {
	h.LogRequest(c, "Publishing announcement")

	professorID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req validator.PublishAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	ann, err := h.service.Publish(c.Request.Context(), professorID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ann)
}

// ListByProfessor returns a professor's announcements newest first.
func (h *AnnouncementHandler) ListByProfessor(c *gin.Context) {
	announcements, err := h.service.ListByProfessor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"count":         len(announcements),
	})
}
