package stock

import (
	"context"
	"errors"
	"strings"

	"envanter-backend/internal/apperr"
	"envanter-backend/internal/models"
	"envanter-backend/internal/movement"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRow: stok listesi satırı. CanDelete türetilmiş alan: stok hiçbir sipariş
// satırında (iptal/tamamlanmış dahil) geçmiyorsa true.
type ListRow struct {
	Item      models.StockItem
	CanDelete bool
}

func (s *Service) Create(ctx context.Context, name, description string, categoryID uint) (*models.StockItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("stok adı zorunlu")
	}

	var cat models.StockCategory
	if err := s.db.WithContext(ctx).First(&cat, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("kategori", categoryID)
		}
		return nil, err
	}

	// Yeni stok her zaman 0 miktarla açılır; açılış miktarı Adjust üzerinden
	// girilir ki ledger ilk birimden itibaren eksiksiz olsun.
	item := models.StockItem{
		Name:        name,
		Description: strings.TrimSpace(description),
		CategoryID:  categoryID,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	item.Category = cat
	return &item, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.StockItem, error) {
	var item models.StockItem
	err := s.db.WithContext(ctx).Preload("Category").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("stok", id)
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) List(ctx context.Context) ([]ListRow, error) {
	var items []models.StockItem
	if err := s.db.WithContext(ctx).Preload("Category").Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}

	// herhangi bir sipariş satırında geçen stok id'leri
	var referenced []uint
	if err := s.db.WithContext(ctx).Model(&models.OrderLine{}).
		Distinct("stock_item_id").Pluck("stock_item_id", &referenced).Error; err != nil {
		return nil, err
	}
	refSet := make(map[uint]struct{}, len(referenced))
	for _, id := range referenced {
		refSet[id] = struct{}{}
	}

	rows := make([]ListRow, 0, len(items))
	for _, it := range items {
		_, ref := refSet[it.ID]
		rows = append(rows, ListRow{Item: it, CanDelete: !ref})
	}
	return rows, nil
}

// Adjust: manuel stok düzeltmesi (pozitif delta giriş, negatif çıkış).
// Sayaç değişimi ve hareket kaydı aynı transaction içinde; negatif sonuç
// verecek çıkış reddedilir.
func (s *Service) Adjust(ctx context.Context, id uint, delta int64, userID uint) (*models.StockItem, error) {
	if delta == 0 {
		return nil, apperr.Validation("delta sıfır olamaz")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if delta > 0 {
			if err := Release(tx, id, delta); err != nil {
				return err
			}
			return movement.Record(tx, id, models.MovementManualAdd, delta, userID, nil)
		}
		if err := Reserve(tx, id, -delta); err != nil {
			return err
		}
		return movement.Record(tx, id, models.MovementManualRemove, -delta, userID, nil)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete: stok hiçbir sipariş satırında geçmiyorsa siler. Koruma kalıcıdır,
// satırın siparişi iptal ya da tamamlanmış olsa bile silme reddedilir.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.OrderLine{}).Where("stock_item_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("stok", id, "stok sipariş satırlarında kullanıldığı için silinemez")
		}

		res := tx.Delete(&models.StockItem{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("stok", id)
		}
		return nil
	})
}
