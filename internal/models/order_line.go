package models

import "time"

// OrderLine: (sipariş, stok) başına en fazla bir satır.
type OrderLine struct {
	ID          uint `gorm:"primaryKey"`
	OrderID     uint `gorm:"not null;index;uniqueIndex:ux_order_lines_order_stock"`
	StockItemID uint `gorm:"not null;uniqueIndex:ux_order_lines_order_stock"`
	StockItem   StockItem
	Quantity    int64 `gorm:"not null"` // aktif siparişte her zaman pozitif
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
