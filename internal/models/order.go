package models

import "time"

type OrderStatus uint

const (
	StatusPending   OrderStatus = 1
	StatusPreparing OrderStatus = 2
	StatusShipped   OrderStatus = 3
	StatusCompleted OrderStatus = 4
	StatusCancelled OrderStatus = 5
)

func (s OrderStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// Terminal: bu durumdan başka bir duruma geçiş yok.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Beklemede"
	case StatusPreparing:
		return "Hazırlanıyor"
	case StatusShipped:
		return "Kargoya Verildi"
	case StatusCompleted:
		return "Tamamlandı"
	case StatusCancelled:
		return "İptal Edildi"
	default:
		return "Bilinmiyor"
	}
}

// CanTransition: izin verilen kenarlar ileri adım (1->2->3->4) ve terminal
// olmayan her durumdan iptal (->5). Diğer her (from,to) çifti geçersiz.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if !s.Valid() || !to.Valid() || s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return to == s+1 && to <= StatusCompleted
}

// Statuses: sabit durum kümesi, id sırasıyla.
func Statuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusPreparing, StatusShipped, StatusCompleted, StatusCancelled}
}

// Order: iptal dahil hiçbir zaman fiziksel olarak silinmez, durum değişir.
type Order struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User
	Status    OrderStatus `gorm:"not null;default:1;index"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `gorm:"index"`
	UpdatedAt time.Time
}
