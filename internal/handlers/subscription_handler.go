package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
)

type SubscriptionHandler struct {
	BaseHandler
	service services.SubscriptionService
}

func NewSubscriptionHandler(service services.SubscriptionService, logger utils.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Subscribe subscribes the current student to a channel. Repeat calls are
// accepted and reported as already_subscribed.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	h.LogRequest(c, "Subscribing to channel")

	studentID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if result == services.AlreadySubscribed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"result": result})
}

// Unsubscribe removes the current student's subscription to a channel.
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	h.LogRequest(c, "Unsubscribing from channel")

	studentID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Unsubscribe(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ListSubscriptions returns the channels the current student subscribes to.
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	studentID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	channels, err := h.service.ListSubscribedChannels(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": channels,
		"count":    len(channels),
	})
}

// ToggleFollow flips the current student's follow of a professor and
// reports the resulting state.
func (h *SubscriptionHandler) ToggleFollow(c *gin.Context) {
	h.LogRequest(c, "Toggling professor follow")

	studentID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	following, err := h.service.ToggleFollow(c.Request.Context(), studentID, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// ListFollowedProfessors returns the professors the current student follows.
func (h *SubscriptionHandler) ListFollowedProfessors(c *gin.Context) {
	studentID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	professors, err := h.service.ListFollowedProfessors(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professors": professors,
		"count":      len(professors),
	})
}

// RecomputeRatings triggers a rating sweep outside the regular schedule.
func (h *SubscriptionHandler) RecomputeRatings(c *gin.Context) {
	h.LogRequest(c, "Triggering rating recompute")

	report, err := h.service.RecomputeRatings(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
