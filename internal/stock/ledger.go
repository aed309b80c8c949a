package stock

import (
	"errors"

	"envanter-backend/internal/apperr"
	"envanter-backend/internal/models"

	"gorm.io/gorm"
)

// Reserve: miktarı tek koşullu UPDATE ile düşer. Koşul (available_quantity >= ?)
// satır üzerinde atomik çalıştığı için eşzamanlı rezervasyonlar stoku negatife
// düşüremez; etkilenen satır yoksa miktar yetersizdir ya da stok yok.
// Hareket kaydı çağırana aittir, Reserve tek başına movement yazmaz.
func Reserve(tx *gorm.DB, stockID uint, qty int64) error {
	if qty <= 0 {
		return apperr.Validation("miktar pozitif olmalı")
	}

	res := tx.Model(&models.StockItem{}).
		Where("id = ? AND available_quantity >= ?", stockID, qty).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var item models.StockItem
		if err := tx.First(&item, stockID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("stok", stockID)
			}
			return err
		}
		return apperr.InsufficientStock(item.ID, item.Name)
	}
	return nil
}

// Release: miktarı geri ekler. Üst sınır kontrolü yok, iade her zaman geçerli.
func Release(tx *gorm.DB, stockID uint, qty int64) error {
	if qty <= 0 {
		return apperr.Validation("miktar pozitif olmalı")
	}

	res := tx.Model(&models.StockItem{}).
		Where("id = ?", stockID).
		UpdateColumn("available_quantity", gorm.Expr("available_quantity + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("stok", stockID)
	}
	return nil
}
