package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pos-backend/models"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// TransactionRepository defines data access for sales.
type TransactionRepository interface {
	// Post runs the whole posting workflow as one unit of work: stock check,
	// price snapshot, line-item insert and stock decrement commit together or
	// not at all.
	Post(ctx context.Context, lines []models.TransactionLine) (*models.Transaction, error)
	FindByID(ctx context.Context, id uint) (*models.Transaction, error)
	FindAll(ctx context.Context, page, pageSize int) ([]models.Transaction, int64, error)
	FindAllWithItems(ctx context.Context) ([]models.Transaction, error)
}

// GormTransactionRepository implements TransactionRepository using GORM.
type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) TransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Post(ctx context.Context, lines []models.TransactionLine) (*models.Transaction, error) {
	tran := &models.Transaction{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		lineItems := make([]models.TransactionItem, 0, len(lines))

		for _, line := range lines {
			var item models.Item
			// SELECT ... FOR UPDATE: the row stays locked until commit, so
			// two concurrent sales cannot both pass the stock check.
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&item, "id = ?", line.ItemID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrItemNotFound, line.ItemID)
			}
			if err != nil {
				return err
			}

			if item.Stock < line.Quantity {
				return fmt.Errorf("%w for item %s", ErrInsufficientStock, item.Name)
			}

			total += item.Price * float64(line.Quantity)
			lineItems = append(lineItems, models.TransactionItem{
				ItemID:   item.ID,
				Quantity: line.Quantity,
				Price:    item.Price,
			})
		}

		tran.Date = time.Now()
		tran.TotalPrice = total
		tran.Items = lineItems
		if err := tx.Create(tran).Error; err != nil {
			return err
		}

		for _, line := range lines {
			res := tx.Model(&models.Item{}).
				Where("id = ? AND stock >= ?", line.ItemID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			// Guarded decrement: zero rows affected means the stock would go
			// negative, same answer as a failed stock check.
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: item %d", ErrInsufficientStock, line.ItemID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tran, nil
}

func (r *GormTransactionRepository) FindByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tran models.Transaction
	if err := r.db.WithContext(ctx).Preload("Items.Item").First(&tran, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tran, nil
}

func (r *GormTransactionRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Transaction, int64, error) {
	var trans []models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Items.Item").Offset(offset).Limit(pageSize).Order("id").Find(&trans).Error; err != nil {
		return nil, 0, err
	}
	return trans, total, nil
}

func (r *GormTransactionRepository) FindAllWithItems(ctx context.Context) ([]models.Transaction, error) {
	var trans []models.Transaction
	if err := r.db.WithContext(ctx).Preload("Items.Item").Order("id").Find(&trans).Error; err != nil {
		return nil, err
	}
	return trans, nil
}
