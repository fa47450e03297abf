package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"pos-backend/models"
	"pos-backend/repository"
)

// TransactionService defines the business logic for posting sales and the
// read-only report projections.
type TransactionService interface {
	PostTransaction(ctx context.Context, req *models.PostTransactionRequest) (*models.Transaction, *ServiceError)
	GetTransaction(ctx context.Context, id uint) (*models.TransactionReport, *ServiceError)
	ListTransactions(ctx context.Context, page, pageSize int) (*models.TransactionPage, *ServiceError)
	GetReport(ctx context.Context, page, pageSize int) (*models.ReportPage, *ServiceError)
	GenerateReportPDF(ctx context.Context) ([]byte, *ServiceError)
}

type transactionServiceImpl struct {
	repo   repository.TransactionRepository
	logger *zap.Logger
}

func NewTransactionService(repo repository.TransactionRepository, logger *zap.Logger) TransactionService {
	return &transactionServiceImpl{repo: repo, logger: logger}
}

// PostTransaction validates the requested lines and posts the sale. The
// repository runs the whole workflow in one database transaction, so any
// failure leaves stock and history untouched.
func (s *transactionServiceImpl) PostTransaction(ctx context.Context, req *models.PostTransactionRequest) (*models.Transaction, *ServiceError) {
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "At least one item is required"}
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, &ServiceError{
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("Quantity must be positive for item %d", line.ItemID),
			}
		}
	}

	tran, err := s.repo.Post(ctx, req.Items)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotFound):
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Item not found"}
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: capitalize(err.Error())}
		default:
			s.logger.Error("Failed to post transaction", zap.Error(err))
			return nil, &ServiceError{
				StatusCode: http.StatusInternalServerError,
				Message:    "An error occurred while creating transaction. Please try again later.",
			}
		}
	}

	s.logger.Info("Transaction posted",
		zap.Uint("transaction_id", tran.ID),
		zap.Int("lines", len(tran.Items)),
		zap.Float64("total_price", tran.TotalPrice),
	)
	return tran, nil
}

func (s *transactionServiceImpl) GetTransaction(ctx context.Context, id uint) (*models.TransactionReport, *ServiceError) {
	tran, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Transaction not found"}
		}
		s.logger.Error("Failed to fetch transaction", zap.Uint("transaction_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch transaction"}
	}
	return toReport(tran), nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, page, pageSize int) (*models.TransactionPage, *ServiceError) {
	trans, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list transactions", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch transactions"}
	}
	return &models.TransactionPage{
		TotalTransactions: total,
		PageNumber:        page,
		PageSize:          pageSize,
		Transactions:      toReports(trans),
	}, nil
}

func (s *transactionServiceImpl) GetReport(ctx context.Context, page, pageSize int) (*models.ReportPage, *ServiceError) {
	trans, total, err := s.repo.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to build report", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch report"}
	}
	return &models.ReportPage{
		TotalTransactions: total,
		PageNumber:        page,
		PageSize:          pageSize,
		PosReport:         toReports(trans),
	}, nil
}

// GenerateReportPDF renders every transaction with its line items into a PDF
// document.
func (s *transactionServiceImpl) GenerateReportPDF(ctx context.Context) ([]byte, *ServiceError) {
	trans, err := s.repo.FindAllWithItems(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch transactions for PDF", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to generate report"}
	}

	out, err := renderReportPDF(trans)
	if err != nil {
		s.logger.Error("Failed to render PDF", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to generate report"}
	}
	return out, nil
}

func renderReportPDF(trans []models.Transaction) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Transaction Report", "", 1, "", false, 0, "")
	pdf.Ln(2)

	for _, tr := range trans {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Transaction ID: %d", tr.ID), "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, "Date: "+tr.Date.Format("2006-01-02 15:04:05"), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Total Price: %.2f", tr.TotalPrice), "", 1, "", false, 0, "")

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 7, "Item", "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 7, "Price", "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, "Quantity", "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, "Subtotal", "1", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, ti := range tr.Items {
			pdf.CellFormat(70, 7, ti.Item.Name, "1", 0, "", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", ti.Price), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 7, strconv.Itoa(ti.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", ti.Price*float64(ti.Quantity)), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toReport(t *models.Transaction) *models.TransactionReport {
	items := make([]models.TransactionItemReport, 0, len(t.Items))
	for _, ti := range t.Items {
		items = append(items, models.TransactionItemReport{
			ItemName: ti.Item.Name,
			Category: ti.Item.Category,
			Quantity: ti.Quantity,
			Price:    ti.Price,
		})
	}
	return &models.TransactionReport{
		TransactionID: t.ID,
		Date:          t.Date,
		TotalPrice:    t.TotalPrice,
		Items:         items,
	}
}

func toReports(trans []models.Transaction) []models.TransactionReport {
	reports := make([]models.TransactionReport, 0, len(trans))
	for i := range trans {
		reports = append(reports, *toReport(&trans[i]))
	}
	return reports
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
