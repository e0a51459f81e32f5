package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GinPrometheusMiddleware считает запросы и их длительность по шаблону маршрута
// /metrics и /health не учитываются
func GinPrometheusMiddleware(serviceName string) gin.HandlerFunc {
	inFlight := HTTPRequestsInFlight.WithLabelValues(serviceName)

	return func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/metrics", "/health":
			c.Next()
			return
		}

		inFlight.Inc()
		defer inFlight.Dec()
		started := time.Now()

		c.Next()

		route := routeLabel(c)
		HTTPRequestsTotal.WithLabelValues(serviceName, c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(serviceName, c.Request.Method, route).Observe(time.Since(started).Seconds())
	}
}

// routeLabel шаблон маршрута (/api/products/:id) вместо фактического пути
func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
