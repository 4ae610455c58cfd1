package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/services"
	"github.com/edudz/platform-service/internal/utils"
)

type HandlerManager struct {
	identityHandler     *IdentityHandler
	channelHandler      *ChannelHandler
	subscriptionHandler *SubscriptionHandler
	messagingHandler    *MessagingHandler
	announcementHandler *AnnouncementHandler
	authMiddleware      *IdentityMiddleware

	repo repositories.Repository
}

func NewHandlerManager(
	serviceManager *services.ServiceManager,
	repo repositories.Repository,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		identityHandler:     NewIdentityHandler(serviceManager.Identity, logger),
		channelHandler:      NewChannelHandler(serviceManager.Channel, logger),
		subscriptionHandler: NewSubscriptionHandler(serviceManager.Subscription, logger),
		messagingHandler:    NewMessagingHandler(serviceManager.Messaging, logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcement, logger),
		authMiddleware:      NewIdentityMiddleware(repo.User()),
		repo:                repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Registration and login run before any identity exists.
	auth := v1.Group("/auth")
	{
		auth.POST("/register", hm.identityHandler.Register)
		auth.POST("/login", hm.identityHandler.Login)
	}

	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		users := authed.Group("/users")
		{
			users.GET("/me", hm.identityHandler.GetMe)
			users.PUT("/me", hm.identityHandler.UpdateMe)
			users.GET("/:id", hm.identityHandler.GetUser)
		}

		professors := authed.Group("/professors")
		{
			professors.GET("", hm.identityHandler.ListProfessors)
			professors.GET("/:id/channels", hm.channelHandler.ListProfessorChannels)
			professors.GET("/:id/announcements", hm.announcementHandler.ListByProfessor)
			professors.POST("/:id/follow", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.subscriptionHandler.ToggleFollow)

			professors.GET("/me/report", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.channelHandler.ExportReport)
		}

		channels := authed.Group("/channels")
		{
			channels.GET("", hm.channelHandler.ListChannels)
			channels.GET("/:id", hm.channelHandler.GetChannel)
			channels.GET("/:id/content", hm.channelHandler.ListContent)

			channels.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.channelHandler.CreateChannel)
			channels.PUT("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.channelHandler.UpdateChannel)
			channels.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.channelHandler.DeleteChannel)
			channels.POST("/:id/content", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.channelHandler.AddContent)

			channels.POST("/:id/subscribe", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.subscriptionHandler.Subscribe)
			channels.DELETE("/:id/subscribe", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.subscriptionHandler.Unsubscribe)
		}

		students := authed.Group("/students")
		{
			students.GET("/me/subscriptions", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.subscriptionHandler.ListSubscriptions)
			students.GET("/me/professors", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.subscriptionHandler.ListFollowedProfessors)
		}

		messages := authed.Group("/messages")
		{
			messages.POST("", hm.messagingHandler.SendMessage)
			messages.GET("/:user_id", hm.messagingHandler.GetConversation)
		}

		announcements := authed.Group("/announcements")
		{
			announcements.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleProfessor), hm.announcementHandler.Publish)
		}

		ratings := authed.Group("/ratings")
		{
			ratings.POST("/recompute", hm.subscriptionHandler.RecomputeRatings)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "platform-service",
	})
}
