package routes

import (
	"net/http"
	"time"

	"timebridge/handlers"
	"timebridge/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the route tables need.
type HandlerBundle struct {
	Sessions     *handlers.SessionHandler
	Availability *handlers.AvailabilityHandler
	Matching     *handlers.MatchingHandler
}

// RegisterSessionRoutes sets up the session lifecycle endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", hb.Sessions.CreateSession)
		api.GET("", hb.Sessions.ListMySessions)
		api.GET("/:sessionID", hb.Sessions.GetSession)
		api.POST("/:sessionID/start", hb.Sessions.StartSession)
		api.POST("/:sessionID/complete", hb.Sessions.CompleteSession)
		api.POST("/:sessionID/cancel", hb.Sessions.CancelSession)
		api.POST("/:sessionID/no-show", hb.Sessions.MarkNoShow)
	}
}

// RegisterAvailabilityRoutes sets up conflict checks, slot discovery, and
// window management.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/providers/:providerID")
	{
		// Read endpoints are public; requesters browse before authenticating.
		api.GET("/availability", hb.Availability.CheckAvailability)
		api.GET("/slots", hb.Availability.GetAvailableSlots)
		api.GET("/windows", hb.Availability.ListWindows)
	}

	windows := r.Group("/api/windows")
	{
		windows.Use(middleware.AuthMiddleware())
		windows.POST("", hb.Availability.CreateWindow)
		windows.PUT("/:windowID", hb.Availability.UpdateWindow)
		windows.DELETE("/:windowID", hb.Availability.DeleteWindow)
	}
}

// RegisterMatchingRoutes sets up scoring and ranking endpoints.
func RegisterMatchingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/matches")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/score", hb.Matching.ScoreCompatibility)
		api.POST("/rank", hb.Matching.RankMatches)
		api.POST("/rank-specific", hb.Matching.RankSpecific)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSessionRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterMatchingRoutes(r, hb)
}
