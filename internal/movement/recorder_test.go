package movement

import (
	"context"
	"testing"

	"envanter-backend/internal/apperr"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestRecordValidation(t *testing.T) {
	db := newTestDB(t)

	err := Record(db, 1, models.MovementManualAdd, 0, 1, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = Record(db, 1, models.MovementManualAdd, -5, 1, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	err = Record(db, 1, models.MovementType("uydurma"), 5, 1, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var count int64
	require.NoError(t, db.Model(&models.Movement{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRecordAndReplay(t *testing.T) {
	db := newTestDB(t)
	orderID := uint(42)

	require.NoError(t, Record(db, 7, models.MovementManualAdd, 10, 1, nil))
	require.NoError(t, Record(db, 7, models.MovementOrderCreate, 4, 2, &orderID))
	require.NoError(t, Record(db, 7, models.MovementOrderCancel, 4, 2, &orderID))
	require.NoError(t, Record(db, 7, models.MovementManualRemove, 3, 1, nil))
	require.NoError(t, Record(db, 9, models.MovementManualAdd, 99, 1, nil)) // başka stok

	svc := NewService(db)
	movs, err := svc.ForStock(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, movs, 4)

	// eskiden yeniye sıralı ve işaretli toplam net değişimi veriyor
	assert.Equal(t, models.MovementManualAdd, movs[0].Type)
	assert.Equal(t, int64(7), Replay(movs)) // 10 - 4 + 4 - 3

	withOrder := movs[1]
	require.NotNil(t, withOrder.OrderID)
	assert.Equal(t, orderID, *withOrder.OrderID)
}

func TestListFilterAndLimit(t *testing.T) {
	db := newTestDB(t)

	for i := 0; i < 12; i++ {
		require.NoError(t, Record(db, 1, models.MovementManualAdd, int64(i+1), 1, nil))
	}
	require.NoError(t, Record(db, 2, models.MovementManualAdd, 100, 1, nil))

	svc := NewService(db)

	all, err := svc.List(context.Background(), nil, 5)
	require.NoError(t, err)
	require.Len(t, all, 5)
	// en yeni önce
	assert.Equal(t, int64(100), all[0].Quantity)

	stockID := uint(2)
	filtered, err := svc.List(context.Background(), &stockID, 50)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, int64(100), filtered[0].Quantity)
}
