package orders

import "envanter-backend/internal/models"

// Durum değişikliği politikası çağıran katmana ait: motor ham geçişi uygular,
// kimin isteyebileceğine burada karar verilir.

// CanRequestStatus: admin terminal olmayan her siparişi ilerletebilir ya da
// iptal edebilir; normal kullanıcı yalnızca kendi Beklemede siparişini iptal
// edebilir.
func CanRequestStatus(o *models.Order, target models.OrderStatus, userID uint, role models.UserRole) bool {
	if role == models.RoleAdmin {
		return true
	}
	return o.UserID == userID && o.Status == models.StatusPending && target == models.StatusCancelled
}

// CanModify: satır düzenlemeyi admin her siparişte, kullanıcı kendi
// siparişinde isteyebilir (Beklemede kontrolü motorda).
func CanModify(o *models.Order, userID uint, role models.UserRole) bool {
	return role == models.RoleAdmin || o.UserID == userID
}

// CanView: kullanıcı yalnızca kendi siparişini görür, admin hepsini.
func CanView(o *models.Order, userID uint, role models.UserRole) bool {
	return role == models.RoleAdmin || o.UserID == userID
}
