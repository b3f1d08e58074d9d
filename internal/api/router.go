package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/hometuition/hometuition/internal/api/v1"
	"github.com/hometuition/hometuition/internal/config"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/rest/middleware"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Student *v1.StudentHandler
	Payment *v1.PaymentHandler
	Summary *v1.SummaryHandler
	Health  *v1.HealthHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandler())

	// The admin frontend is served from another origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	router.Use(cors.New(corsConfig))

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/v1")
	{
		students := api.Group("/students")
		{
			students.POST("", handlers.Student.EnrollStudent)
			students.GET("", handlers.Student.ListStudents)
			students.GET("/:id", handlers.Student.GetStudent)
			students.PUT("/:id", handlers.Student.UpdateStudent)
			students.DELETE("/:id", handlers.Student.DeleteStudent)
		}

		payments := api.Group("/payments")
		{
			payments.POST("", handlers.Payment.RecordPayment)
			payments.GET("", handlers.Payment.ListPayments)
		}

		api.GET("/summary", handlers.Summary.GetSummary)
	}

	return router
}
