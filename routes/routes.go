package routes

import (
	"net/http"
	"time"

	"slotwise/handlers"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Schedule *handlers.ScheduleHandler
	Windows  *handlers.WindowsHandler
	Manage   *handlers.ManageHandler
}

// RegisterScheduleRoutes registers the public slot listing and booking
// endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		groups := api.Group("/groups/:id")
		groups.GET("/slots", hb.Schedule.GetGroupSlotsHandler)
		groups.POST("/book", hb.Schedule.BookGroupSlotHandler)
		groups.POST("/events/:eventId/reschedule", hb.Schedule.RescheduleGroupEventHandler)

		personal := api.Group("/personal/:slug")
		personal.GET("", hb.Windows.GetMeetingWindowsHandler)
		personal.GET("/:durationId/slots", hb.Schedule.GetPersonalSlotsHandler)
		personal.POST("/:durationId/book", hb.Schedule.BookPersonalSlotHandler)
		personal.POST("/:durationId/events/:eventId/reschedule", hb.Schedule.ReschedulePersonalEventHandler)
	}
}

// RegisterManageRoutes registers the configuration endpoints.
func RegisterManageRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/manage")
	{
		api.PUT("/availability", hb.Manage.UpsertAvailabilityHandler)
		api.POST("/groups", hb.Manage.CreateGroupHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
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

	RegisterScheduleRoutes(r, hb)
	RegisterManageRoutes(r, hb)
	RegisterHealthRoute(r)
}
