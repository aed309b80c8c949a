package orders

import (
	"testing"

	"envanter-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanRequestStatus(t *testing.T) {
	owner := uint(1)
	other := uint(2)

	pending := &models.Order{ID: 10, UserID: owner, Status: models.StatusPending}
	preparing := &models.Order{ID: 11, UserID: owner, Status: models.StatusPreparing}

	// normal kullanıcı: sadece kendi Beklemede siparişini iptal edebilir
	assert.True(t, CanRequestStatus(pending, models.StatusCancelled, owner, models.RoleUser))
	assert.False(t, CanRequestStatus(pending, models.StatusPreparing, owner, models.RoleUser))
	assert.False(t, CanRequestStatus(pending, models.StatusCancelled, other, models.RoleUser))
	assert.False(t, CanRequestStatus(preparing, models.StatusCancelled, owner, models.RoleUser))

	// admin: her siparişte her geçişi isteyebilir (geçerliliği motor denetler)
	assert.True(t, CanRequestStatus(preparing, models.StatusCancelled, other, models.RoleAdmin))
	assert.True(t, CanRequestStatus(pending, models.StatusPreparing, other, models.RoleAdmin))
}

func TestCanViewAndModify(t *testing.T) {
	order := &models.Order{ID: 10, UserID: 1, Status: models.StatusPending}

	assert.True(t, CanView(order, 1, models.RoleUser))
	assert.False(t, CanView(order, 2, models.RoleUser))
	assert.True(t, CanView(order, 2, models.RoleAdmin))

	assert.True(t, CanModify(order, 1, models.RoleUser))
	assert.False(t, CanModify(order, 2, models.RoleUser))
	assert.True(t, CanModify(order, 2, models.RoleAdmin))
}
