package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/middleware"
	"github.com/sjperalta/fintera-ledger/internal/services"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "fintera-ledger",
		"version": "1.0.0",
	})
}

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// @Summary Get Loan Settings
// @Description Resolved loan settings of an agency (defaults fill unset values)
// @Tags Settings
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} lending.Settings
// @Security BearerAuth
// @Router /tenants/{tenant_id}/settings [get]
func (h *SettingsHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.GetSettings(c.Request.Context(), tenantID(c)))
}

// @Summary Update Loan Settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param settings body services.UpdateSettingsRequest true "Settings"
// @Success 200 {object} lending.Settings
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req services.UpdateSettingsRequest
	if err := BindNestedOrFlat(c, "settings", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), tenantID(c), req, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary List Customer Notifications
// @Tags Notifications
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param customer_id path int true "Customer ID"
// @Param status query string false "read or unread"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants/{tenant_id}/customers/{customer_id}/notifications [get]
func (h *NotificationHandler) Index(c *gin.Context) {
	customerID, ok := pathID(c, "customer_id")
	if !ok {
		return
	}
	query := listQuery(c, "status")

	notifications, total, err := h.notificationService.FindByCustomer(c.Request.Context(), tenantID(c), customerID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination":    pagination(query, total),
	})
}

// @Summary Mark Customer Notifications As Read
// @Tags Notifications
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param customer_id path int true "Customer ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/customers/{customer_id}/notifications/mark_all_as_read [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	customerID, ok := pathID(c, "customer_id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), tenantID(c), customerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notificaciones marcadas como leídas"})
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of the agency's audit trail
// @Tags Audit
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param action query string false "Filter by action"
// @Param entity query string false "Filter by entity"
// @Param target_id query int false "Filter by target"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants/{tenant_id}/audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := listQuery(c, "action", "entity", "target_id")
	if c.Query("per_page") == "" {
		query.PerPage = 50
	}

	logs, total, err := h.auditService.List(c.Request.Context(), tenantID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": logs, "pagination": pagination(query, total)})
}
