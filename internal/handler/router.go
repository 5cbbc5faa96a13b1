package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Roster      *RosterHandler
	Bids        *BidHandler
	Assignments *AssignmentHandler
	Transfers   *TransferHandler
	Calendar    *CalendarHandler
	Metrics     *MetricsHandler
}

// RouterOptions toggles optional route groups.
type RouterOptions struct {
	APIPrefix     string
	EnableExports bool
}

// RegisterRoutes mounts the API surface under the configured prefix.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouterOptions) {
	if h.Metrics != nil {
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group(opts.APIPrefix)

	api.POST("/students", h.Roster.AddStudent)
	api.POST("/teachers", h.Roster.AddTeacher)
	api.POST("/sessions", h.Roster.AddSession)
	api.POST("/sessions/recurring", h.Roster.AddRecurringSession)
	api.PUT("/people/:id/availability", h.Roster.SetAvailability)
	api.PUT("/people/:id/preferences", h.Roster.SetPreference)

	api.POST("/bids", h.Bids.PlaceBid)
	api.POST("/bids/resolve", h.Bids.ResolveBids)

	api.POST("/assignments/run", h.Assignments.Run)
	api.POST("/teachers/:id/callout", h.Assignments.CallOut)

	api.POST("/transfers", h.Transfers.Transfer)

	api.GET("/calendar/:date", h.Calendar.Day)
	if opts.EnableExports {
		api.GET("/calendar/:date/export", h.Calendar.Export)
	}

	if h.Metrics != nil {
		api.GET("/stats", h.Metrics.Stats)
	}
}
