package database

import (
	"fmt"

	"envanter-backend/internal/config"
	"envanter-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect: Postgres'e bağlanır, migration'ı çalıştırır ve handle'ı döndürür.
// Global DB tutulmaz; servisler handle'ı alır ve her operasyon kendi
// transaction'ını bu handle üzerinden açar.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate: tüm modeller için AutoMigrate. Testler de aynı şemayı bu
// fonksiyonla kurar.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.StockCategory{},
		&models.StockItem{},
		&models.Order{},
		&models.OrderLine{},
		&models.Movement{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}
