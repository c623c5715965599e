package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"subasta/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named shared in-memory database so tests never
// see each other's rows. TranslateError matches the production gorm.Config,
// turning driver unique-violations into gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Auction{},
		&models.Bid{},
		&models.Rating{},
		&models.Comment{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{ID: uuid.New().String(), Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedAuction(t *testing.T, db *gorm.DB, categoryID, title, description string, price decimal.Decimal, closing time.Time) *models.Auction {
	t.Helper()

	auction := &models.Auction{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  description,
		Price:        price,
		Stock:        1,
		Rating:       1,
		Brand:        "Acme",
		CategoryID:   categoryID,
		Thumbnail:    "https://example.com/item.jpg",
		AuctioneerID: uuid.New().String(),
		ClosingDate:  closing,
	}
	require.NoError(t, db.Create(auction).Error)
	return auction
}
