package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/middleware"
	"github.com/sjperalta/fintera-ledger/internal/services"
)

type PortfolioHandler struct {
	portfolioSvc   *services.PortfolioService
	collectionsSvc *services.CollectionsService
	loanSvc        *services.LoanService
	exportSvc      *services.ExportService
}

func NewPortfolioHandler(portfolioSvc *services.PortfolioService, collectionsSvc *services.CollectionsService, loanSvc *services.LoanService, exportSvc *services.ExportService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioSvc:   portfolioSvc,
		collectionsSvc: collectionsSvc,
		loanSvc:        loanSvc,
		exportSvc:      exportSvc,
	}
}

// @Summary Run Portfolio Engine
// @Description Reconcile installments, resolve loan statuses and apply the risk gate for one agency
// @Tags Portfolio
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} services.PortfolioRunStats
// @Security BearerAuth
// @Router /tenants/{tenant_id}/portfolio/run [post]
func (h *PortfolioHandler) Run(c *gin.Context) {
	stats, err := h.portfolioSvc.ProcessTenantPortfolio(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set(middleware.RunIDKey, stats.RunID)
	c.JSON(http.StatusOK, stats)
}

// @Summary Detect Defaults
// @Description Count defaulted loans and list at-risk loans without changing anything
// @Tags Portfolio
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} services.DefaultReport
// @Security BearerAuth
// @Router /tenants/{tenant_id}/portfolio/defaults [get]
func (h *PortfolioHandler) Defaults(c *gin.Context) {
	report, err := h.collectionsSvc.DetectDefaults(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Loan Ageing
// @Description Overdue exposure by ageing bucket, as JSON or as a csv, xlsx or pdf download
// @Tags Portfolio
// @Produce json
// @Produce application/octet-stream
// @Param tenant_id path int true "Tenant ID"
// @Param format query string false "Export format (csv, xlsx, pdf)"
// @Success 200 {object} services.AgeingReport
// @Security BearerAuth
// @Router /tenants/{tenant_id}/portfolio/ageing [get]
func (h *PortfolioHandler) Ageing(c *gin.Context) {
	format := c.Query("format")
	switch format {
	case "", "json", "csv", "xlsx", "pdf":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (csv, xlsx, pdf)"})
		return
	}

	report, err := h.collectionsSvc.AnalyzeLoanAgeing(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var data []byte
	var filename, contentType string

	switch format {
	case "csv":
		data, filename, err = h.exportSvc.AgeingCSV(report)
		contentType = "text/csv"
	case "xlsx":
		data, filename, err = h.exportSvc.AgeingXLSX(report)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = h.exportSvc.AgeingPDF(report)
		contentType = "application/pdf"
	default:
		c.JSON(http.StatusOK, report)
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// @Summary Portfolio Stats
// @Description Count the agency's loans by status
// @Tags Portfolio
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Success 200 {object} repository.LoanStats
// @Security BearerAuth
// @Router /tenants/{tenant_id}/portfolio/stats [get]
func (h *PortfolioHandler) Stats(c *gin.Context) {
	stats, err := h.loanSvc.Stats(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
