package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pos-backend/controllers"
	"pos-backend/models"
	"pos-backend/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock TransactionService ---

type mockTransactionService struct {
	postFn   func(ctx context.Context, req *models.PostTransactionRequest) (*models.Transaction, *services.ServiceError)
	getFn    func(ctx context.Context, id uint) (*models.TransactionReport, *services.ServiceError)
	listFn   func(ctx context.Context, page, pageSize int) (*models.TransactionPage, *services.ServiceError)
	reportFn func(ctx context.Context, page, pageSize int) (*models.ReportPage, *services.ServiceError)
	pdfFn    func(ctx context.Context) ([]byte, *services.ServiceError)
}

func (m *mockTransactionService) PostTransaction(ctx context.Context, req *models.PostTransactionRequest) (*models.Transaction, *services.ServiceError) {
	return m.postFn(ctx, req)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, id uint) (*models.TransactionReport, *services.ServiceError) {
	return m.getFn(ctx, id)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, page, pageSize int) (*models.TransactionPage, *services.ServiceError) {
	return m.listFn(ctx, page, pageSize)
}

func (m *mockTransactionService) GetReport(ctx context.Context, page, pageSize int) (*models.ReportPage, *services.ServiceError) {
	return m.reportFn(ctx, page, pageSize)
}

func (m *mockTransactionService) GenerateReportPDF(ctx context.Context) ([]byte, *services.ServiceError) {
	return m.pdfFn(ctx)
}

func newPosRouter(svc services.TransactionService) *gin.Engine {
	r := gin.New()
	pc := controllers.NewPosController(svc)
	r.POST("/pos/transactions", pc.PostTransaction)
	r.GET("/pos/transactions", pc.GetTransactions)
	r.GET("/pos/transactions/:id", pc.GetTransaction)
	r.GET("/pos/reports", pc.GetReport)
	r.GET("/pos/generatePdf", pc.GeneratePDF)
	return r
}

// --- Tests ---

func TestPostTransactionEndpoint_Success(t *testing.T) {
	svc := &mockTransactionService{
		postFn: func(_ context.Context, req *models.PostTransactionRequest) (*models.Transaction, *services.ServiceError) {
			return &models.Transaction{ID: 7, Date: time.Now(), TotalPrice: 30.0}, nil
		},
	}
	r := newPosRouter(svc)

	body, _ := json.Marshal(models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 1, Quantity: 3}},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pos/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "Transaction created successfully", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestPostTransactionEndpoint_ServiceError(t *testing.T) {
	svc := &mockTransactionService{
		postFn: func(_ context.Context, _ *models.PostTransactionRequest) (*models.Transaction, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found"}
		},
	}
	r := newPosRouter(svc)

	body, _ := json.Marshal(models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 99, Quantity: 1}},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pos/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsSuccess)
	assert.Equal(t, "Item not found", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestPostTransactionEndpoint_MalformedBody(t *testing.T) {
	svc := &mockTransactionService{}
	r := newPosRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/pos/transactions", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTransactionsEndpoint_PassesPagination(t *testing.T) {
	var gotPage, gotSize int
	svc := &mockTransactionService{
		listFn: func(_ context.Context, page, pageSize int) (*models.TransactionPage, *services.ServiceError) {
			gotPage, gotSize = page, pageSize
			return &models.TransactionPage{PageNumber: page, PageSize: pageSize}, nil
		},
	}
	r := newPosRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pos/transactions?pageNumber=2&pageSize=5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 5, gotSize)
}

func TestGetReportEndpoint(t *testing.T) {
	svc := &mockTransactionService{
		reportFn: func(_ context.Context, page, pageSize int) (*models.ReportPage, *services.ServiceError) {
			return &models.ReportPage{TotalTransactions: 1, PageNumber: page, PageSize: pageSize}, nil
		},
	}
	r := newPosRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pos/reports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsSuccess)
	assert.Equal(t, "success", resp.Message)
}

func TestGeneratePDFEndpoint(t *testing.T) {
	svc := &mockTransactionService{
		pdfFn: func(_ context.Context) ([]byte, *services.ServiceError) {
			return []byte("%PDF-1.3 fake"), nil
		},
	}
	r := newPosRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pos/generatePdf", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transactionReport.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
