package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/middleware"
)

// RegisterRoutes mounts the API on the /api/v1 group
func (h *Handlers) RegisterRoutes(v1 *gin.RouterGroup, jwtSecret string) {
	const (
		manager   = middleware.RoleManager
		officer   = middleware.RoleOfficer
		collector = middleware.RoleCollector
	)

	// Health check (public)
	v1.GET("/health", h.Health.Index)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtSecret))
	{
		protected.GET("/jobs/status", middleware.RequireRole(manager), h.Job.Status)
		protected.POST("/jobs/:job/trigger", middleware.RequireRole(), h.Job.Trigger)

		tenant := protected.Group("/tenants/:tenant_id")
		tenant.Use(middleware.RequireTenantAccess())
		{
			staff := middleware.RequireRole(manager, officer, collector)

			tenant.GET("/loans", staff, h.Loan.Index)
			tenant.POST("/loans", middleware.RequireRole(manager, officer), h.Loan.Create)
			tenant.GET("/loans/:loan_id", staff, h.Loan.Show)
			tenant.POST("/loans/:loan_id/repayments", staff, h.Loan.Repayment)
			tenant.POST("/loans/:loan_id/disburse", middleware.RequireRole(manager), h.Loan.Disburse)

			portfolio := tenant.Group("/portfolio")
			{
				portfolio.POST("/run", middleware.RequireRole(manager), h.Portfolio.Run)
				portfolio.GET("/defaults", staff, h.Portfolio.Defaults)
				portfolio.GET("/ageing", staff, h.Portfolio.Ageing)
				portfolio.GET("/stats", staff, h.Portfolio.Stats)
			}

			collections := tenant.Group("/collections")
			{
				collections.POST("/refresh", middleware.RequireRole(manager), h.Collections.Refresh)
				collections.GET("", middleware.RequireRole(manager, collector), h.Collections.Index)
				collections.POST("/:case_id/notes", middleware.RequireRole(manager, collector), h.Collections.AddNote)
				collections.PATCH("/:case_id", middleware.RequireRole(manager, collector), h.Collections.Update)
			}

			tenant.GET("/settings", middleware.RequireRole(manager, officer), h.Settings.Show)
			tenant.PUT("/settings", middleware.RequireRole(manager), h.Settings.Update)
			tenant.GET("/audits", middleware.RequireRole(manager), h.Audit.Index)

			tenant.POST("/customers/:customer_id/notifications/mark_all_as_read", staff, h.Notification.MarkAllAsRead)
			tenant.GET("/customers/:customer_id/notifications", staff, h.Notification.Index)
		}
	}
}
