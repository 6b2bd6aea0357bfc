package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/keiji0711/final-final/internal/app/controllers"
	"github.com/keiji0711/final-final/internal/middleware"
	"github.com/keiji0711/final-final/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	eventController *controllers.EventController,
	attendanceController *controllers.AttendanceController,
	dashboardController *controllers.DashboardController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
	scanLimiter *middleware.ScanRateLimiter,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/register", authController.Register)
		authenticated.GET("/auth/me", authController.Me)

		students := authenticated.Group("/students")
		{
			students.POST("", studentController.CreateStudent)
			students.GET("", studentController.ListStudents)
			students.GET("/:usn", studentController.GetStudent)
			students.PUT("/:usn", studentController.UpdateStudent)
			students.DELETE("/:usn", studentController.DeleteStudent)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.GET("", eventController.ListEvents)
			events.GET("/:id", eventController.GetEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.GET("/:id/attendance", eventController.ListEventAttendance)
			events.GET("/:id/export", eventController.ExportEvent)
		}

		attendance := authenticated.Group("/attendance")
		{
			// Scanner stations burst when a queue forms; keep them rate limited
			attendance.POST("/scan", scanLimiter.GinMiddleware(), attendanceController.Scan)
		}

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardController.GlobalStats)
			dashboard.GET("/events/:id", dashboardController.EventStats)
			dashboard.GET("/students/:usn", dashboardController.StudentProfile)
		}

		// Live attendance feed for dashboard screens
		authenticated.GET("/ws/attendance", wsHandler.HandleConnection)
	}
}
