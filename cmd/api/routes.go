package main

import (
	"context"
	"net/http"

	"voice-reports/internal/auth"
	"voice-reports/internal/httpapi"
	"voice-reports/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
// A nil authManager leaves the dashboard reads public.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authManager *auth.Manager, health func(ctx context.Context) error) {
	r.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Voice assistant webhooks (public).
	r.POST("/call-reports", h.IngestCallReport)
	r.POST("/appointments", h.CreateAppointment)

	// Dashboard reads
	var guard []gin.HandlerFunc
	if authManager != nil {
		guard = append(guard,
			auth.RequireAccessToken(authManager),
			rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleAnalyst, rbac.RoleSuperAdmin),
		)
	}
	reads := r.Group("/", guard...)
	{
		reads.GET("/call-reports", h.ListCallReports)
		reads.GET("/appointments", h.ListAppointments)
		reads.GET("/dashboard/summary", h.Summary)
		reads.GET("/dashboard/call-reports.xlsx", h.ExportCallReports)
	}

	// ADMIN routes
	// Delivery audit exposes client IPs, so it only exists behind auth.
	if authManager != nil {
		admin := r.Group("/admin")
		admin.Use(auth.RequireAccessToken(authManager))
		admin.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleSuperAdmin))
		{
			admin.GET("/deliveries", h.ListDeliveries)
		}
	}
}

// cors mirrors a permissive browser policy for the dashboard.
func cors(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		hdr := c.Writer.Header()
		hdr.Set("Access-Control-Allow-Origin", allowOrigin)
		hdr.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
		hdr.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
		hdr.Set("Access-Control-Expose-Headers", "X-Request-Id, Content-Disposition")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
