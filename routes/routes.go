package routes

import (
	"backend/controllers"
	"backend/middlewares"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Claims   *controllers.ClaimController
	Events   *controllers.EventController
	RSVPs    *controllers.RSVPController
	Devices  *controllers.DeviceController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/avatar", controllers.UploadAvatar)
		user.POST("/devices", ctl.Devices.Register)
	}

	// Event + claim routes
	events := r.Group("/events")
	events.Use(middlewares.AuthMiddleware())
	{
		events.GET("/active", ctl.Events.GetActive)
		events.GET("/archive", ctl.Events.Archive)
		events.GET("/:id", ctl.Events.Get)

		events.GET("/:id/menu", ctl.Claims.GetSnapshot)
		events.POST("/:id/claims", ctl.Claims.Claim)
		events.PUT("/:id/claims", ctl.Claims.Switch)
		events.DELETE("/:id/claims/:claimId", ctl.Claims.Unclaim)
		events.POST("/:id/suggestions", ctl.Claims.Suggest)
		events.GET("/:id/activity", ctl.Claims.Activity)

		events.PUT("/:id/rsvp", ctl.RSVPs.Set)
		events.GET("/:id/guests", ctl.RSVPs.Guests)
	}

	// Organizer-only event setup
	admin := r.Group("/admin/events")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireAdmin())
	{
		admin.POST("/import", ctl.Events.Import)
		admin.PUT("/:id/activate", ctl.Events.Activate)
		admin.PUT("/:id/lock-time", ctl.Events.SetLockTime)
		admin.POST("/:id/invite", ctl.Events.Invite)
		admin.POST("/:id/cover", ctl.Events.UploadCover)
	}

	// Realtime menu updates
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events/:id", ctl.Realtime.MenuWS)
	}

	return r
}
