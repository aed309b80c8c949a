package models

import "time"

// StockItem: Depoda takip edilen ürün. AvailableQuantity sadece stock
// servisinin ledger operasyonları üzerinden değişir ve hiçbir zaman
// negatif olamaz.
type StockItem struct {
	ID                uint   `gorm:"primaryKey"`
	Name              string `gorm:"size:100;not null"`
	Description       string `gorm:"size:255"`
	CategoryID        uint   `gorm:"index;not null"`
	Category          StockCategory
	AvailableQuantity int64 `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
