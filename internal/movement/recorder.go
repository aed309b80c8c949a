// Package movement: stok hareketlerinin append-only denetim kaydı.
package movement

import (
	"context"

	"envanter-backend/internal/apperr"
	"envanter-backend/internal/models"

	"gorm.io/gorm"
)

// Record: çağıranın transaction'ı içinde tek hareket yazar. Miktar pozitif
// olmalı; yön bilgisi türde. Sipariş kaynaklı hareketlerde orderID dolu gelir.
func Record(tx *gorm.DB, stockID uint, typ models.MovementType, qty int64, userID uint, orderID *uint) error {
	if qty <= 0 {
		return apperr.Validation("hareket miktarı pozitif olmalı")
	}
	if typ.Sign() == 0 {
		return apperr.Validation("geçersiz hareket türü")
	}

	m := models.Movement{
		StockItemID: stockID,
		Type:        typ,
		Quantity:    qty,
		UserID:      userID,
		OrderID:     orderID,
	}
	return tx.Create(&m).Error
}

// Replay: hareketleri işaretli toplar. Bir stok için ilk hareketinden beri
// tüm hareketlerin Replay'i, o stokun mevcut miktarı ile ilk hareket öncesi
// miktarının farkını verir (mutabakat kontrolü).
func Replay(movs []models.Movement) int64 {
	var total int64
	for _, m := range movs {
		total += m.Type.Sign() * m.Quantity
	}
	return total
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List: en yeni hareketten başlayarak listeler, stockID verilirse filtreler.
func (s *Service) List(ctx context.Context, stockID *uint, limit int) ([]models.Movement, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := s.db.WithContext(ctx).
		Preload("StockItem").
		Preload("User").
		Order("created_at desc, id desc").
		Limit(limit)
	if stockID != nil {
		q = q.Where("stock_item_id = ?", *stockID)
	}

	var movs []models.Movement
	if err := q.Find(&movs).Error; err != nil {
		return nil, err
	}
	return movs, nil
}

// ForStock: bir stokun tüm hareketleri, eskiden yeniye (mutabakat için).
func (s *Service) ForStock(ctx context.Context, stockID uint) ([]models.Movement, error) {
	var movs []models.Movement
	err := s.db.WithContext(ctx).
		Where("stock_item_id = ?", stockID).
		Order("created_at asc, id asc").
		Find(&movs).Error
	if err != nil {
		return nil, err
	}
	return movs, nil
}
