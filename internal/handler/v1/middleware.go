package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthnet/scheduling/internal/domain/actor"
	"github.com/healthnet/scheduling/internal/service"
	"github.com/healthnet/scheduling/pkg/auth"
	"github.com/healthnet/scheduling/pkg/metrics"
)

const actorKey = "actor"

// AuthMiddleware validates the bearer token and resolves the role-typed
// actor every scheduling decision dispatches on.
func AuthMiddleware(jwtManager *auth.JWTManager, actors *service.ActorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := jwtManager.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			return
		}

		act, err := actors.Resolve(c.Request.Context(), claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unknown identity"})
			return
		}

		c.Set(actorKey, act)
		c.Next()
	}
}

func mustActor(c *gin.Context) actor.Actor {
	return c.MustGet(actorKey).(actor.Actor)
}

// MetricsMiddleware records request counts, latency, and in-flight gauge.
func MetricsMiddleware(m *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.InFlightGauge.Inc()
		defer m.InFlightGauge.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
