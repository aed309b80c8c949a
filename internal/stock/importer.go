package stock

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"envanter-backend/internal/models"
	"envanter-backend/internal/movement"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Toplu stok içe aktarma: xlsx kolonları [ad, açıklama, kategori, açılış miktarı].
// Açılış miktarı ledger üzerinden girilir, böylece her satır için manual_add
// hareketi kalır ve ledger ilk birimden itibaren eksiksiz olur.

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"` // atlanan satırlar, nedeniyle
}

func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	return strings.Contains(first, "AD") || strings.Contains(first, "NAME") ||
		strings.Contains(first, "STOK") || strings.Contains(first, "ÜRÜN")
}

// createWithOpening: stok kaydı ve açılış miktarı (ledger girişi + manual_add
// hareketi) tek transaction. Herhangi bir adım başarısız olursa kayıt kalmaz,
// satır yarım içe aktarılmış olamaz.
func (s *Service) createWithOpening(ctx context.Context, name, description string, categoryID uint, qty int64, userID uint) (*models.StockItem, error) {
	var item models.StockItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item = models.StockItem{
			Name:        name,
			Description: description,
			CategoryID:  categoryID,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if qty > 0 {
			if err := Release(tx, item.ID, qty); err != nil {
				return err
			}
			return movement.Record(tx, item.ID, models.MovementManualAdd, qty, userID, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) ImportXLSX(ctx context.Context, r io.Reader, userID uint) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel dosyası okunamadı: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel dosyasında sheet bulunamadı")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet okunamadı: %w", err)
	}

	result := &ImportResult{Skipped: make([]string, 0)}

	start := 0
	if len(rows) > 0 && looksLikeHeader(rows[0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		name := strings.TrimSpace(row[0])
		description := ""
		if len(row) > 1 {
			description = strings.TrimSpace(row[1])
		}

		categoryName := ""
		if len(row) > 2 {
			categoryName = strings.TrimSpace(row[2])
		}
		if categoryName == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("satır %d: kategori boş", i+1))
			continue
		}

		var qty int64
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			qty, err = strconv.ParseInt(strings.TrimSpace(row[3]), 10, 64)
			if err != nil || qty < 0 {
				result.Skipped = append(result.Skipped, fmt.Sprintf("satır %d: miktar geçersiz (%s)", i+1, row[3]))
				continue
			}
		}

		// aynı isimli stok varsa satırı atla
		var existing models.StockItem
		if err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("satır %d: %s zaten var", i+1, name))
			continue
		}

		var cat models.StockCategory
		if err := s.db.WithContext(ctx).
			Where("name = ?", categoryName).
			FirstOrCreate(&cat, models.StockCategory{Name: categoryName}).Error; err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("satır %d: kategori oluşturulamadı", i+1))
			continue
		}

		if _, err := s.createWithOpening(ctx, name, description, cat.ID, qty, userID); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("satır %d: %v", i+1, err))
			continue
		}

		result.Imported++
	}

	return result, nil
}
