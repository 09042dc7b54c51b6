package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjperalta/fintera-ledger/internal/middleware"
	"github.com/sjperalta/fintera-ledger/internal/models"
	"github.com/sjperalta/fintera-ledger/internal/services"
)

type LoanHandler struct {
	loanService *services.LoanService
}

func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// @Summary List Loans
// @Description Get a paginated list of the agency's loans
// @Tags Loans
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param customer_id query int false "Filter by customer"
// @Param loan_type query string false "Filter by loan type"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /tenants/{tenant_id}/loans [get]
func (h *LoanHandler) Index(c *gin.Context) {
	query := listQuery(c, "status", "customer_id", "loan_type")

	loans, total, err := h.loanService.List(c.Request.Context(), tenantID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.LoanResponse, 0, len(loans))
	for i := range loans {
		responses = append(responses, loans[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"loans":      responses,
		"pagination": pagination(query, total),
	})
}

// @Summary Originate Loan
// @Description Create a loan; with disburse=true the schedule is generated at once
// @Tags Loans
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param loan body services.OriginateLoanRequest true "Loan"
// @Success 201 {object} models.LoanResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/loans [post]
func (h *LoanHandler) Create(c *gin.Context) {
	var req services.OriginateLoanRequest
	if err := BindNestedOrFlat(c, "loan", &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanService.Originate(c.Request.Context(), tenantID(c), req, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loan.ToResponse())
}

// @Summary Get Loan
// @Description Get a loan with its repayment schedule
// @Tags Loans
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param loan_id path int true "Loan ID"
// @Success 200 {object} models.LoanResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/loans/{loan_id} [get]
func (h *LoanHandler) Show(c *gin.Context) {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return
	}

	loan, err := h.loanService.Get(c.Request.Context(), tenantID(c), loanID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan.ToResponse())
}

// @Summary Record Repayment
// @Description Apply money received to the oldest unpaid installments
// @Tags Loans
// @Accept json
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param loan_id path int true "Loan ID"
// @Param repayment body services.RepaymentRequest true "Repayment"
// @Success 201 {object} services.RepaymentResult
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/loans/{loan_id}/repayments [post]
func (h *LoanHandler) Repayment(c *gin.Context) {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return
	}

	var req services.RepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.loanService.RecordRepayment(c.Request.Context(), tenantID(c), loanID, req, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// @Summary Disburse Loan
// @Description Generate the schedule of an approved loan and activate it
// @Tags Loans
// @Produce json
// @Param tenant_id path int true "Tenant ID"
// @Param loan_id path int true "Loan ID"
// @Success 200 {object} models.LoanResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /tenants/{tenant_id}/loans/{loan_id}/disburse [post]
func (h *LoanHandler) Disburse(c *gin.Context) {
	loanID, ok := pathID(c, "loan_id")
	if !ok {
		return
	}

	loan, err := h.loanService.Disburse(c.Request.Context(), tenantID(c), loanID, middleware.GetActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan.ToResponse())
}
