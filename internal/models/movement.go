package models

import "time"

type MovementType string

const (
	MovementManualAdd        MovementType = "manual_add"
	MovementManualRemove     MovementType = "manual_remove"
	MovementOrderCreate      MovementType = "order_create_deduct"
	MovementOrderCancel      MovementType = "order_cancel_restock"
	MovementOrderEditDeduct  MovementType = "order_edit_deduct"
	MovementOrderEditRestock MovementType = "order_edit_restock"
)

// Sign: hareketin stok miktarına etkisi. Kayıtlı Quantity her zaman pozitif,
// yön bilgisi türde taşınır.
func (t MovementType) Sign() int64 {
	switch t {
	case MovementManualAdd, MovementOrderCancel, MovementOrderEditRestock:
		return 1
	case MovementManualRemove, MovementOrderCreate, MovementOrderEditDeduct:
		return -1
	default:
		return 0
	}
}

// Movement: stok miktarı değişimlerinin append-only denetim kaydı.
// Güncelleme ve silme operasyonu yok.
type Movement struct {
	ID          uint `gorm:"primaryKey"`
	StockItemID uint `gorm:"index;not null"`
	StockItem   StockItem
	Type        MovementType `gorm:"size:30;not null"`
	Quantity    int64        `gorm:"not null"`
	UserID      uint         `gorm:"not null"`
	User        User
	OrderID     *uint     `gorm:"index"` // manuel düzeltmelerde boş
	CreatedAt   time.Time `gorm:"index"`
}
