package orders

import (
	"context"
	"errors"
	"fmt"

	"envanter-backend/internal/apperr"
	"envanter-backend/internal/models"
	"envanter-backend/internal/movement"
	"envanter-backend/internal/stock"

	"gorm.io/gorm"
)

// Line: istek gövdesindeki (stok, miktar) çifti.
type Line struct {
	StockID  uint  `json:"stock_id"`
	Quantity int64 `json:"quantity"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// satır listesinde aynı stok iki kez geçemez
func checkDuplicates(lines []Line) error {
	seen := make(map[uint]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.StockID]; ok {
			return apperr.Validation(fmt.Sprintf("stok %d listede birden fazla geçiyor", l.StockID))
		}
		seen[l.StockID] = struct{}{}
	}
	return nil
}

// Create: siparişi Beklemede durumunda açar; her satır için rezervasyon ve
// hareket kaydı aynı transaction içinde. Herhangi bir satır başarısız olursa
// hiçbir stok düşülmez ve sipariş kalıcı olmaz.
func (s *Service) Create(ctx context.Context, userID uint, lines []Line) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("sipariş en az bir satır içermeli")
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("stok %d için miktar pozitif olmalı", l.StockID))
		}
	}
	if err := checkDuplicates(lines); err != nil {
		return nil, err
	}

	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			UserID: userID,
			Status: models.StatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, l := range lines {
			if err := stock.Reserve(tx, l.StockID, l.Quantity); err != nil {
				return err
			}
			line := models.OrderLine{
				OrderID:     order.ID,
				StockItemID: l.StockID,
				Quantity:    l.Quantity,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if err := movement.Record(tx, l.StockID, models.MovementOrderCreate, l.Quantity, userID, &order.ID); err != nil {
				return err
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// Get: sipariş + satırlar + satırların stok anlık görüntüsü.
func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.id asc") }).
		Preload("Lines.StockItem").
		Preload("Lines.StockItem.Category").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sipariş", id)
		}
		return nil, err
	}
	return &order, nil
}

// List: en yeni sipariş önce. userID verilirse sadece o kullanıcının
// siparişleri (admin olmayan çağıran için).
func (s *Service) List(ctx context.Context, userID *uint) ([]models.Order, error) {
	q := s.db.WithContext(ctx).
		Preload("User").
		Preload("Lines").
		Preload("Lines.StockItem").
		Order("created_at desc, id desc")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// claimStatus: durumu yalnızca hâlâ from değerindeyse yazar. UPDATE satır
// kilidini aldığı için aynı sipariş üzerindeki eşzamanlı geçişler burada
// sıralanır; araya giren bir geçiş sonrası etkilenen satır kalmaz ve güncel
// duruma göre hata döner.
func claimStatus(tx *gorm.DB, orderID uint, from, to models.OrderStatus) error {
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cur models.Order
		if err := tx.First(&cur, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("sipariş", orderID)
			}
			return err
		}
		return apperr.InvalidTransition(orderID, cur.Status.Label(), to.Label())
	}
	return nil
}

// AdvanceStatus: durum makinesindeki geçişi uygular. Hedef iptal ise ve
// sipariş satır taşıyorsa her satırın miktarı aynı transaction içinde stoka
// iade edilir ve iade hareketi yazılır; diğer geçişler stok değiştirmez.
func (s *Service) AdvanceStatus(ctx context.Context, orderID uint, target models.OrderStatus, userID uint) (*models.Order, error) {
	if !target.Valid() || target == models.StatusPending {
		return nil, apperr.Validation("geçersiz hedef durum")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("sipariş", orderID)
			}
			return err
		}

		if !order.Status.CanTransition(target) {
			return apperr.InvalidTransition(order.ID, order.Status.Label(), target.Label())
		}

		// Durum yazımı okunan değere koşullu: aynı sipariş üzerinde eşzamanlı
		// bir geçiş araya girdiyse satır etkilenmez ve iade hiç başlamaz.
		if err := claimStatus(tx, orderID, order.Status, target); err != nil {
			return err
		}

		if target == models.StatusCancelled {
			// satırlar geçiş kilitlendikten sonra okunur
			var orderLines []models.OrderLine
			if err := tx.Where("order_id = ?", orderID).Order("id asc").Find(&orderLines).Error; err != nil {
				return err
			}
			for _, line := range orderLines {
				if line.Quantity == 0 {
					// düzenlemeyle sıfıra çekilmiş satır, iade edilecek miktar yok
					continue
				}
				if err := stock.Release(tx, line.StockItemID, line.Quantity); err != nil {
					return err
				}
				if err := movement.Record(tx, line.StockItemID, models.MovementOrderCancel, line.Quantity, userID, &orderID); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// ModifyLines: sadece Beklemede durumundaki siparişte, mevcut satırları yeniden
// boyutlandırır. Satır başına fark kadar rezervasyon/iade ve hareket kaydı,
// tüm farklar tek transaction içinde; herhangi biri başarısız olursa hiçbir
// miktar değişmez. Yeni satır eklenemez; miktarı sıfıra çekmek satırı
// kaldırmak demektir (kayıt sıfır miktarla kalır, silme koruması bozulmaz).
func (s *Service) ModifyLines(ctx context.Context, orderID uint, lines []Line, userID uint) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("en az bir satır gönderilmeli")
	}
	for _, l := range lines {
		if l.Quantity < 0 {
			return nil, apperr.Validation(fmt.Sprintf("stok %d için miktar negatif olamaz", l.StockID))
		}
	}
	if err := checkDuplicates(lines); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Beklemede koşullu yazım sipariş satırını kilitler; eşzamanlı bir
		// düzenleme ya da geçiş araya girdiyse etkilenen satır kalmaz.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, models.StatusPending).
			Update("status", models.StatusPending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var cur models.Order
			if err := tx.First(&cur, orderID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("sipariş", orderID)
				}
				return err
			}
			return apperr.NotModifiable(cur.ID, cur.Status.Label())
		}

		// satırlar kilit alındıktan sonra okunur
		var orderLines []models.OrderLine
		if err := tx.Where("order_id = ?", orderID).Order("id asc").Find(&orderLines).Error; err != nil {
			return err
		}

		current := make(map[uint]*models.OrderLine, len(orderLines))
		for i := range orderLines {
			current[orderLines[i].StockItemID] = &orderLines[i]
		}

		for _, l := range lines {
			line, ok := current[l.StockID]
			if !ok {
				return apperr.NotFound("sipariş satırı", l.StockID)
			}

			diff := l.Quantity - line.Quantity
			if diff > 0 {
				if err := stock.Reserve(tx, l.StockID, diff); err != nil {
					return err
				}
				if err := movement.Record(tx, l.StockID, models.MovementOrderEditDeduct, diff, userID, &orderID); err != nil {
					return err
				}
			} else if diff < 0 {
				if err := stock.Release(tx, l.StockID, -diff); err != nil {
					return err
				}
				if err := movement.Record(tx, l.StockID, models.MovementOrderEditRestock, -diff, userID, &orderID); err != nil {
					return err
				}
			}
			// diff == 0: no-op, hareket yazılmaz

			if diff != 0 {
				if err := tx.Model(line).Update("quantity", l.Quantity).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}
