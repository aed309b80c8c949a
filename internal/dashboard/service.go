// Package dashboard: salt-okunur projeksiyonlar, hiçbir mutasyon yok.
package dashboard

import (
	"context"
	"time"

	"envanter-backend/internal/models"

	"gorm.io/gorm"
)

type CategoryStock struct {
	Category      string `json:"category"`
	TotalQuantity int64  `json:"total_quantity"`
}

type DayCount struct {
	Day   string `json:"day"` // 2006-01-02
	Count int64  `json:"count"`
}

type Data struct {
	StockByCategory []CategoryStock
	OrdersByDay     []DayCount
	LastMovements   []models.Movement
	LastOrders      []models.Order
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Summary: kategori bazlı stok toplamları, son 7 günün günlük sipariş
// sayıları (boş günler 0 ile), son 10 hareket ve son 5 sipariş.
// Herhangi bir sorgu başarısız olursa kısmi sonuç dönmez.
func (s *Service) Summary(ctx context.Context) (*Data, error) {
	data := &Data{}

	if err := s.db.WithContext(ctx).Model(&models.StockItem{}).
		Select("stock_categories.name AS category, SUM(stock_items.available_quantity) AS total_quantity").
		Joins("JOIN stock_categories ON stock_categories.id = stock_items.category_id").
		Group("stock_categories.name").
		Order("stock_categories.name asc").
		Scan(&data.StockByCategory).Error; err != nil {
		return nil, err
	}

	ordersByDay, err := s.ordersByDay(ctx)
	if err != nil {
		return nil, err
	}
	data.OrdersByDay = ordersByDay

	if err := s.db.WithContext(ctx).
		Preload("StockItem").
		Preload("User").
		Order("created_at desc, id desc").
		Limit(10).
		Find(&data.LastMovements).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc, id desc").
		Limit(5).
		Find(&data.LastOrders).Error; err != nil {
		return nil, err
	}

	return data, nil
}

func (s *Service) ordersByDay(ctx context.Context) ([]DayCount, error) {
	now := time.Now()
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	since := today.AddDate(0, 0, -6)

	var stamps []time.Time
	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &stamps).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, 7)
	for _, ts := range stamps {
		counts[ts.In(loc).Format("2006-01-02")]++
	}

	// eskiden yeniye 7 gün, sipariş olmayan günler 0
	days := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		days = append(days, DayCount{Day: day, Count: counts[day]})
	}
	return days, nil
}
