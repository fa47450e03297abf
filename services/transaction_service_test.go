package services_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"pos-backend/models"
	"pos-backend/repository"
	"pos-backend/services"
)

// --- Mock Transaction Repository ---

type mockTransactionRepo struct {
	items        map[uint]*models.Item
	transactions []models.Transaction
	postCalls    int
}

func newMockTransactionRepo(items ...*models.Item) *mockTransactionRepo {
	m := &mockTransactionRepo{items: make(map[uint]*models.Item)}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *mockTransactionRepo) Post(_ context.Context, lines []models.TransactionLine) (*models.Transaction, error) {
	m.postCalls++

	var total float64
	lineItems := make([]models.TransactionItem, 0, len(lines))
	for _, line := range lines {
		item, ok := m.items[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", repository.ErrItemNotFound, line.ItemID)
		}
		if item.Stock < line.Quantity {
			return nil, fmt.Errorf("%w for item %s", repository.ErrInsufficientStock, item.Name)
		}
		total += item.Price * float64(line.Quantity)
		lineItems = append(lineItems, models.TransactionItem{
			ItemID:   item.ID,
			Item:     *item,
			Quantity: line.Quantity,
			Price:    item.Price,
		})
	}

	for _, line := range lines {
		m.items[line.ItemID].Stock -= line.Quantity
	}

	tran := models.Transaction{
		ID:         uint(len(m.transactions) + 1),
		Date:       time.Now(),
		TotalPrice: total,
		Items:      lineItems,
	}
	m.transactions = append(m.transactions, tran)
	return &tran, nil
}

func (m *mockTransactionRepo) FindByID(_ context.Context, id uint) (*models.Transaction, error) {
	for i := range m.transactions {
		if m.transactions[i].ID == id {
			return &m.transactions[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockTransactionRepo) FindAll(_ context.Context, page, pageSize int) ([]models.Transaction, int64, error) {
	return m.transactions, int64(len(m.transactions)), nil
}

func (m *mockTransactionRepo) FindAllWithItems(_ context.Context) ([]models.Transaction, error) {
	return m.transactions, nil
}

func newTransactionService(repo repository.TransactionRepository) services.TransactionService {
	logger, _ := zap.NewDevelopment()
	return services.NewTransactionService(repo, logger)
}

// --- Tests ---

func TestPostTransaction_Success(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 5})
	svc := newTransactionService(repo)

	tran, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 1, Quantity: 3}},
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, 30.0, tran.TotalPrice)
	assert.Equal(t, 2, repo.items[1].Stock)
	assert.Equal(t, 10.0, tran.Items[0].Price)
}

func TestPostTransaction_ItemNotFound(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 5})
	svc := newTransactionService(repo)

	tran, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 99, Quantity: 1}},
	})
	assert.Nil(t, tran)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Item not found", svcErr.Message)
	assert.Equal(t, 5, repo.items[1].Stock)
}

func TestPostTransaction_InsufficientStock(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 5})
	svc := newTransactionService(repo)

	tran, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 1, Quantity: 10}},
	})
	assert.Nil(t, tran)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Contains(t, svcErr.Message, "Coffee")
	assert.Equal(t, 5, repo.items[1].Stock)
}

func TestPostTransaction_EmptyLines(t *testing.T) {
	repo := newMockTransactionRepo()
	svc := newTransactionService(repo)

	tran, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{})
	assert.Nil(t, tran)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Zero(t, repo.postCalls)
}

func TestPostTransaction_NonPositiveQuantity(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 5})
	svc := newTransactionService(repo)

	tran, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 1, Quantity: 0}},
	})
	assert.Nil(t, tran)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Zero(t, repo.postCalls)
	assert.Equal(t, 5, repo.items[1].Stock)
}

func TestGetTransaction_Projection(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 5, Category: "Drinks"})
	svc := newTransactionService(repo)

	tran, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 1, Quantity: 2}},
	})
	assert.Nil(t, svcErr)

	report, svcErr := svc.GetTransaction(context.Background(), tran.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, tran.ID, report.TransactionID)
	assert.Equal(t, 20.0, report.TotalPrice)
	assert.Len(t, report.Items, 1)
	assert.Equal(t, "Coffee", report.Items[0].ItemName)
	assert.Equal(t, "Drinks", report.Items[0].Category)
}

func TestGetTransaction_NotFound(t *testing.T) {
	repo := newMockTransactionRepo()
	svc := newTransactionService(repo)

	report, svcErr := svc.GetTransaction(context.Background(), 42)
	assert.Nil(t, report)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestGetReport_Pagination(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 50})
	svc := newTransactionService(repo)

	for i := 0; i < 3; i++ {
		_, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
			Items: []models.TransactionLine{{ItemID: 1, Quantity: 1}},
		})
		assert.Nil(t, svcErr)
	}

	page, svcErr := svc.GetReport(context.Background(), 1, 10)
	assert.Nil(t, svcErr)
	assert.Equal(t, int64(3), page.TotalTransactions)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.PosReport, 3)
}

func TestGenerateReportPDF(t *testing.T) {
	repo := newMockTransactionRepo(&models.Item{ID: 1, Name: "Coffee", Price: 10.0, Stock: 5})
	svc := newTransactionService(repo)

	_, svcErr := svc.PostTransaction(context.Background(), &models.PostTransactionRequest{
		Items: []models.TransactionLine{{ItemID: 1, Quantity: 2}},
	})
	assert.Nil(t, svcErr)

	pdf, svcErr := svc.GenerateReportPDF(context.Background())
	assert.Nil(t, svcErr)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
