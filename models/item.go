package models

// Item is a sellable inventory record.
type Item struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Stock    int     `gorm:"not null;default:0" json:"stock"`
	Category string  `gorm:"type:varchar(100)" json:"category"`
	ImageURL string  `gorm:"type:varchar(255)" json:"imageUrl"`
}

// ItemRequest is the multipart form payload for creating or updating an item.
// The optional image file is read separately from the form.
type ItemRequest struct {
	ID       uint    `form:"id"`
	Name     string  `form:"name" binding:"required"`
	Price    float64 `form:"price" binding:"gte=0"`
	Stock    int     `form:"stock" binding:"gte=0"`
	Category string  `form:"category"`
}

// ItemPage is one page of the item listing.
type ItemPage struct {
	TotalItems int64  `json:"totalItems"`
	PageNumber int    `json:"pageNumber"`
	PageSize   int    `json:"pageSize"`
	Items      []Item `json:"items"`
}

// StockReportPage is one page of the stock report projection.
type StockReportPage struct {
	TotalItems  int64  `json:"totalItems"`
	PageNumber  int    `json:"pageNumber"`
	PageSize    int    `json:"pageSize"`
	StockReport []Item `json:"stockReport"`
}
