package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/stockpile/app/models"
)

func openLedger(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}))
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openLedger(t))

	u := &models.User{Username: "clerk1", PasswordHash: "x", Role: models.RoleClerk}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := repo.FindByUsername(ctx, "clerk1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.Role = models.RoleManager
	require.NoError(t, repo.Update(ctx, &got))

	again, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, again.Role)

	assert.Error(t, repo.Create(ctx, &models.User{Username: "clerk1", PasswordHash: "y", Role: models.RoleClerk}), "username is unique")

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), ErrNotFound)
}

func TestOrderRepositoryPaginate(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openLedger(t))

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Create(ctx, &models.Order{
			UserID: 1, ProductID: "p", Quantity: 1,
			OrderDate: time.Now(), TotalAmount: decimal.NewFromInt(1), Status: models.StatusPending,
		}))
	}

	orders, p, err := repo.Paginate(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 5)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, uint(21), orders[0].ID)
}

func TestSalesByDay(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openLedger(t))
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	add := func(at time.Time, amount int64, status models.OrderStatus) {
		require.NoError(t, repo.Create(ctx, &models.Order{
			UserID: 1, ProductID: "p", Quantity: 1, OrderDate: at,
			TotalAmount: decimal.NewFromInt(amount), Status: status,
		}))
	}
	add(day.Add(9*time.Hour), 10, models.StatusCompleted)
	add(day.Add(12*time.Hour), 20, models.StatusCompleted)
	add(day.Add(18*time.Hour), 5, models.StatusCompleted)
	add(day.Add(13*time.Hour), 100, models.StatusPending)
	add(day.Add(-24*time.Hour+time.Hour), 7, models.StatusCompleted)
	add(day.AddDate(0, 0, -40), 999, models.StatusCompleted)

	sales, err := repo.SalesByDay(ctx, day.AddDate(0, 0, -30))
	require.NoError(t, err)

	require.Len(t, sales, 2)
	assert.True(t, decimal.NewFromInt(35).Equal(sales["2025-06-10"]), "got %s", sales["2025-06-10"])
	assert.True(t, decimal.NewFromInt(7).Equal(sales["2025-06-09"]))
}

func TestDayExpr(t *testing.T) {
	assert.Equal(t, "DATE(order_date)", dayExpr("postgres"))
	assert.Equal(t, "CAST(order_date AS DATE)", dayExpr("sqlserver"))
}
