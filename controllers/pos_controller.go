package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pos-backend/models"
	"pos-backend/services"
)

// PosController handles HTTP requests for transactions and reports.
type PosController struct {
	transactionService services.TransactionService
}

// NewPosController creates a new PosController.
func NewPosController(transactionService services.TransactionService) *PosController {
	return &PosController{transactionService: transactionService}
}

// PostTransaction handles POST /pos/transactions.
func (pc *PosController) PostTransaction(ctx *gin.Context) {
	var req models.PostTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid transaction data")
		return
	}

	tran, svcErr := pc.transactionService.PostTransaction(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusCreated, "Transaction created successfully", tran)
}

// GetTransactions handles GET /pos/transactions.
func (pc *PosController) GetTransactions(ctx *gin.Context) {
	page, pageSize := parsePaginationParams(ctx)

	result, svcErr := pc.transactionService.ListTransactions(ctx.Request.Context(), page, pageSize)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "success", result)
}

// GetTransaction handles GET /pos/transactions/:id.
func (pc *PosController) GetTransaction(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		respondError(ctx, http.StatusBadRequest, "Invalid transaction id")
		return
	}

	report, svcErr := pc.transactionService.GetTransaction(ctx.Request.Context(), id)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "success", report)
}

// GetReport handles GET /pos/reports.
func (pc *PosController) GetReport(ctx *gin.Context) {
	page, pageSize := parsePaginationParams(ctx)

	result, svcErr := pc.transactionService.GetReport(ctx.Request.Context(), page, pageSize)
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	respondOK(ctx, http.StatusOK, "success", result)
}

// GeneratePDF handles GET /pos/generatePdf and streams the rendered report.
func (pc *PosController) GeneratePDF(ctx *gin.Context) {
	pdf, svcErr := pc.transactionService.GenerateReportPDF(ctx.Request.Context())
	if svcErr != nil {
		respondError(ctx, svcErr.StatusCode, svcErr.Message)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="transactionReport.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
