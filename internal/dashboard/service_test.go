package dashboard

import (
	"context"
	"testing"
	"time"

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

func seedCategoryItem(t *testing.T, db *gorm.DB, catName, itemName string, qty int64) {
	t.Helper()
	cat := models.StockCategory{Name: catName}
	require.NoError(t, db.Where("name = ?", catName).FirstOrCreate(&cat).Error)
	require.NoError(t, db.Create(&models.StockItem{Name: itemName, CategoryID: cat.ID, AvailableQuantity: qty}).Error)
}

func seedOrderAt(t *testing.T, db *gorm.DB, userID uint, at time.Time) {
	t.Helper()
	order := models.Order{UserID: userID, Status: models.StatusPending, CreatedAt: at, UpdatedAt: at}
	require.NoError(t, db.Create(&order).Error)
}

func TestSummaryStockByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	seedCategoryItem(t, db, "Gıda", "Makarna", 12)
	seedCategoryItem(t, db, "Gıda", "Pirinç", 8)
	seedCategoryItem(t, db, "İçecek", "Su", 30)

	data, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, data.StockByCategory, 2)
	assert.Equal(t, "Gıda", data.StockByCategory[0].Category)
	assert.Equal(t, int64(20), data.StockByCategory[0].TotalQuantity)
	assert.Equal(t, "İçecek", data.StockByCategory[1].Category)
	assert.Equal(t, int64(30), data.StockByCategory[1].TotalQuantity)
}

func TestSummaryOrdersByDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user := models.User{Name: "ali", Email: "ali@test.local", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	now := time.Now()
	seedOrderAt(t, db, user.ID, now)
	seedOrderAt(t, db, user.ID, now)
	seedOrderAt(t, db, user.ID, now.AddDate(0, 0, -2))
	seedOrderAt(t, db, user.ID, now.AddDate(0, 0, -10)) // pencere dışı

	data, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, data.OrdersByDay, 7)

	today := now.Format("2006-01-02")
	twoDaysAgo := now.AddDate(0, 0, -2).Format("2006-01-02")

	var total int64
	for _, d := range data.OrdersByDay {
		total += d.Count
		switch d.Day {
		case today:
			assert.Equal(t, int64(2), d.Count)
		case twoDaysAgo:
			assert.Equal(t, int64(1), d.Count)
		}
	}
	assert.Equal(t, int64(3), total)

	// eskiden yeniye sıralı, son gün bugün
	assert.Equal(t, today, data.OrdersByDay[6].Day)
}

func TestSummaryLastMovementsAndOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	user := models.User{Name: "ali", Email: "ali@test.local", PasswordHash: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	seedCategoryItem(t, db, "Gıda", "Makarna", 0)

	var item models.StockItem
	require.NoError(t, db.First(&item).Error)

	for i := 0; i < 12; i++ {
		m := models.Movement{
			StockItemID: item.ID,
			Type:        models.MovementManualAdd,
			Quantity:    int64(i + 1),
			UserID:      user.ID,
		}
		require.NoError(t, db.Create(&m).Error)
	}

	now := time.Now()
	for i := 0; i < 6; i++ {
		seedOrderAt(t, db, user.ID, now.Add(-time.Duration(i)*time.Hour))
	}

	data, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, data.LastMovements, 10)
	assert.Equal(t, int64(12), data.LastMovements[0].Quantity) // en yeni önce
	assert.Equal(t, "Makarna", data.LastMovements[0].StockItem.Name)

	require.Len(t, data.LastOrders, 5)
	assert.Equal(t, "ali", data.LastOrders[0].User.Name)
	assert.True(t, data.LastOrders[0].CreatedAt.After(data.LastOrders[4].CreatedAt))
}
