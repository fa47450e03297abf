package models

import (
	"time"

	"gorm.io/gorm"
)

// Transaction is a completed sale. It owns its line items and is immutable
// once committed.
type Transaction struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Date       time.Time         `gorm:"not null" json:"date"`
	TotalPrice float64           `gorm:"not null" json:"totalPrice"`
	Items      []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
}

// TransactionItem is one line of a sale. Price is the unit price of the item
// at the time of sale, so later price changes do not rewrite history.
type TransactionItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	TransactionID uint    `gorm:"index;not null" json:"transactionId"`
	ItemID        uint    `gorm:"index;not null" json:"itemId"`
	Item          Item    `gorm:"foreignKey:ItemID" json:"-"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	Price         float64 `gorm:"not null" json:"price"`
}

// TransactionLine is one requested (item, quantity) pair in a posting request.
type TransactionLine struct {
	ItemID   uint `json:"itemId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// PostTransactionRequest is the payload for posting a sale.
type PostTransactionRequest struct {
	Items []TransactionLine `json:"items" binding:"required,dive"`
}

// TransactionItemReport is a line of the flattened report projection, joined
// with the item's current name and category.
type TransactionItemReport struct {
	ItemName string  `json:"itemName"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TransactionReport is the flattened view of a transaction for display.
type TransactionReport struct {
	TransactionID uint                    `json:"transactionId"`
	Date          time.Time               `json:"date"`
	TotalPrice    float64                 `json:"totalPrice"`
	Items         []TransactionItemReport `json:"items"`
}

// TransactionPage is one page of the transaction listing.
type TransactionPage struct {
	TotalTransactions int64               `json:"totalTransactions"`
	PageNumber        int                 `json:"pageNumber"`
	PageSize          int                 `json:"pageSize"`
	Transactions      []TransactionReport `json:"transactions"`
}

// ReportPage is one page of the POS report.
type ReportPage struct {
	TotalTransactions int64               `json:"totalTransactions"`
	PageNumber        int                 `json:"pageNumber"`
	PageSize          int                 `json:"pageSize"`
	PosReport         []TransactionReport `json:"posReport"`
}

// Migrate runs auto migration for all POS tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Item{}, &Transaction{}, &TransactionItem{})
}
