package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
)

type IdentityHandler struct {
	BaseHandler
	service services.IdentityService
}

func NewIdentityHandler(service services.IdentityService, logger utils.Logger) *IdentityHandler {
	return &IdentityHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Register creates a new account with a fixed role.
func (h *IdentityHandler) Register(c *gin.Context) {
	h.LogRequest(c, "Registering user")

	var req validator.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login resolves an account by credentials.
func (h *IdentityHandler) Login(c *gin.Context) {
	h.LogRequest(c, "Logging in user")

	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetMe returns the authenticated user's own record.
func (h *IdentityHandler) GetMe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe merges profile fields into the authenticated user's record.
func (h *IdentityHandler) UpdateMe(c *gin.Context) {
	h.LogRequest(c, "Updating user profile")

	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req validator.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser returns any user's public record.
func (h *IdentityHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListProfessors returns the professor catalog.
func (h *IdentityHandler) ListProfessors(c *gin.Context) {
	professors, err := h.service.ListProfessors(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professors": professors,
		"count":      len(professors),
	})
}
