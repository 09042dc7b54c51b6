package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/repository"
	"github.com/sjperalta/fintera-ledger/internal/services"
)

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidLoan):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrTenantMismatch):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrUnavailable):
		status = http.StatusServiceUnavailable
	default:
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// tenantID reads the :tenant_id path parameter; RequireTenantAccess has already validated it
func tenantID(c *gin.Context) uint {
	id, _ := strconv.ParseUint(c.Param("tenant_id"), 10, 32)
	return uint(id)
}

// pathID parses a numeric path parameter, answering 400 when it is malformed
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		label := strings.ReplaceAll(strings.TrimSuffix(name, "_id"), "_", " ")
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s ID", label)})
		return 0, false
	}
	return uint(id), true
}

// listQuery builds a ListQuery from page, per_page, sort and the named filters
func listQuery(c *gin.Context, filters ...string) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if query.PerPage <= 0 || query.PerPage > 100 {
		query.PerPage = 20
	}
	for _, name := range filters {
		if v := c.Query(name); v != "" {
			query.Filters[name] = v
		}
	}

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}
