// internal/services/services_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/panjabighar/panjabi-backend/internal/models"
)

// setupTestDB opens an in-memory database per test. A single connection
// keeps concurrent writes serialized the way a pooled Postgres would be.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Purchase{},
	))

	return db
}

func createTestSeller(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:  email,
		Name:   "Test Seller",
		Role:   models.RoleSeller,
		Status: models.UserStatusVerified,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerEmail string, quantity int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        "Classic White Panjabi",
		Price:       49.99,
		Quantity:    quantity,
		Category:    "classic",
		Description: "Hand-stitched cotton panjabi",
		Image:       "https://cdn.example.com/panjabi.jpg",
		SizeS:       quantity / 3,
		SizeM:       quantity / 3,
		SizeL:       quantity / 3,
		SellerEmail: sellerEmail,
		SellerName:  "Test Seller",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
