package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/healthnet/scheduling/internal/service"
	"github.com/healthnet/scheduling/pkg/auth"
	"github.com/healthnet/scheduling/pkg/metrics"
)

// Register mounts the v1 API: a public auth surface and the authenticated
// scheduling routes.
func Register(
	r *gin.Engine,
	m *metrics.Collector,
	jwtManager *auth.JWTManager,
	actors *service.ActorService,
	authSvc *service.AuthService,
	scheduler *service.SchedulingService,
) {
	r.Use(MetricsMiddleware(m))

	authHandler := NewAuthHandler(authSvc)
	apptHandler := NewAppointmentHandler(scheduler)

	api := r.Group("/api/v1")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	authed := api.Group("", AuthMiddleware(jwtManager, actors))
	authed.GET("/calendar", apptHandler.Calendar)
	authed.GET("/patients", apptHandler.ListPatients)
	authed.POST("/appointments", apptHandler.Create)
	authed.PUT("/appointments/:id", apptHandler.Update)
	authed.DELETE("/appointments/:id", apptHandler.Cancel)
}
