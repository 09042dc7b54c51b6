package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/middleware"
	"github.com/sjperalta/fintera-ledger/internal/services"
)

type CollectionsHandler struct {
	collectionsService *services.CollectionsService
}

func NewCollectionsHandler(collectionsService *services.CollectionsService) *CollectionsHandler {
	return &CollectionsHandler{collectionsService: collectionsService}
}

type addNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

type updateCaseRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Refresh Collections
// @Description Open or refresh one collection case per delinquent loan
// @Tags Collections
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} services.CollectionsRunStats
// @Security BearerAuth
// @Router /tenants/{tenant_id}/collections/refresh [post]
func (h *CollectionsHandler) Refresh(c *gin.Context) {
	stats, err := h.collectionsService.RefreshCollections(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary List Collection Cases
// @Description Get a paginated list of collection cases, most urgent first
// @Tags Collections
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param open query bool false "Only unresolved cases"
// @Param priority query string false "Filter by priority"
// @Param ageing_bucket query string false "Filter by ageing bucket"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants/{tenant_id}/collections [get]
func (h *CollectionsHandler) Index(c *gin.Context) {
	query := listQuery(c, "status", "open", "priority", "ageing_bucket")

	cases, total, err := h.collectionsService.List(c.Request.Context(), tenantID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collection_cases": cases,
		"pagination":       pagination(query, total),
	})
}

// @Summary Add Collection Note
// @Tags Collections
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param case_id path int true "Case ID"
// @Param note body addNoteRequest true "Note"
// @Success 200 {object} models.CollectionCase
// @Security BearerAuth
// @Router /tenants/{tenant_id}/collections/{case_id}/notes [post]
func (h *CollectionsHandler) AddNote(c *gin.Context) {
	caseID, ok := pathID(c, "case_id")
	if !ok {
		return
	}

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc, err := h.collectionsService.AddNote(c.Request.Context(), tenantID(c), caseID, middleware.GetActor(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cc)
}

// @Summary Update Collection Case
// @Description Move a case to contacted, promised, escalated or resolved
// @Tags Collections
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param case_id path int true "Case ID"
// @Param case body updateCaseRequest true "Status"
// @Success 200 {object} models.CollectionCase
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/collections/{case_id} [patch]
func (h *CollectionsHandler) Update(c *gin.Context) {
	caseID, ok := pathID(c, "case_id")
	if !ok {
		return
	}

	var req updateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cc, err := h.collectionsService.UpdateStatus(c.Request.Context(), tenantID(c), caseID, req.Status, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cc)
}
