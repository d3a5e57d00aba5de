package migrations

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/migration"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSchemaServesRepositories(t *testing.T) {
	db := openDB(t)
	runner := migration.New(db, io.Discard)

	n, err := runner.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("orders"))

	ctx := context.Background()
	users := repositories.NewUserRepository(db)
	u := models.User{Username: "admin", PasswordHash: "x", Role: models.RoleAdmin}
	require.NoError(t, users.Create(ctx, &u))

	orders := repositories.NewOrderRepository(db)
	o := models.Order{
		UserID: u.ID, ProductID: "abc", Quantity: 1,
		OrderDate: time.Now(), TotalAmount: decimal.NewFromInt(3), Status: models.StatusCompleted,
	}
	require.NoError(t, orders.Create(ctx, &o))

	n, err = runner.Rollback()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Migrator().HasTable("orders"))
}
