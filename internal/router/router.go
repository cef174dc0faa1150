// Package router wires handlers, middleware and static mounts into the gin
// engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushq/hostel-api/internal/handler"
	"github.com/campushq/hostel-api/internal/middleware"
	"github.com/campushq/hostel-api/internal/models"
	"github.com/campushq/hostel-api/internal/service"
	"github.com/campushq/hostel-api/pkg/config"
	"github.com/campushq/hostel-api/pkg/logger"
	corsmiddleware "github.com/campushq/hostel-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushq/hostel-api/pkg/middleware/requestid"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger

	AuthService *service.AuthService
	Metrics     *service.MetricsService

	Auth          *handler.AuthHandler
	Allocation    *handler.AllocationHandler
	Rooms         *handler.RoomHandler
	Applications  *handler.ApplicationHandler
	Students      *handler.StudentHandler
	Users         *handler.UserHandler
	Payments      *handler.PaymentHandler
	Maintenance   *handler.MaintenanceHandler
	Announcements *handler.AnnouncementHandler
	Dashboard     *handler.DashboardHandler
	Reports       *handler.ReportHandler

	UploadsDir string
	Ready      func() error
}

// New builds the gin engine with all routes registered.
func New(d Deps) *gin.Engine {
	if d.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if d.UploadsDir != "" {
		r.Static("/uploads", d.UploadsDir)
	}

	requireAuth := middleware.JWT(d.AuthService)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group(d.Config.APIPrefix)
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.Auth.Register)
			auth.POST("/login", d.Auth.Login)
			auth.POST("/logout", requireAuth, d.Auth.Logout)
			auth.GET("/me", requireAuth, d.Auth.Me)
		}

		api.POST("/create-order", d.Payments.CreateOrder)
		api.GET("/payments", d.Payments.List)
		api.POST("/payments", d.Payments.Record)

		api.GET("/maintenance", d.Maintenance.List)
		api.POST("/maintenance", d.Maintenance.Submit)
		api.PATCH("/maintenance/:id/status", requireAuth, adminOnly, d.Maintenance.UpdateStatus)

		api.GET("/applications", d.Applications.List)
		api.POST("/applications", d.Applications.Submit)
		api.DELETE("/applications", d.Applications.Withdraw)

		api.GET("/rooms/:id", d.Rooms.Get)

		api.GET("/announcements", d.Announcements.List)
		api.POST("/announcements", requireAuth, adminOnly, d.Announcements.Create)
		api.DELETE("/announcements/:id", requireAuth, adminOnly, d.Announcements.Delete)

		student := api.Group("/student", requireAuth)
		{
			student.GET("/me", d.Students.Me)
		}

		admin := api.Group("/admin", requireAuth, adminOnly)
		{
			admin.GET("/users", d.Users.List)
			admin.DELETE("/users/:id", d.Users.Delete)

			admin.POST("/auto-allocate", d.Allocation.AutoAllocate)
			admin.POST("/assign-room", d.Allocation.Assign)
			admin.POST("/remove-occupant", d.Allocation.Remove)
			admin.POST("/reset-semester", d.Allocation.ResetSemester)

			admin.GET("/rooms", d.Rooms.List)
			admin.POST("/update-room-status", d.Rooms.UpdateStatus)

			admin.GET("/stats", d.Dashboard.Stats)
			admin.GET("/occupancy", d.Dashboard.Occupancy)
			admin.GET("/recent-activity", d.Dashboard.RecentActivity)

			if d.Config.Reports.Enabled {
				admin.GET("/reports/occupancy", d.Reports.Occupancy)
			}
		}
	}

	return r
}
