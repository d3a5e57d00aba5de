package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
)

func TestAlertsResolveSupplierNames(t *testing.T) {
	acme := models.Supplier{ID: primitive.NewObjectID(), Name: "Acme"}
	orphan := primitive.NewObjectID()

	low := []models.Product{
		{ID: primitive.NewObjectID(), Name: "Bolt", SupplierID: acme.ID, Quantity: 5, Threshold: 10},
		{ID: primitive.NewObjectID(), Name: "Nut", SupplierID: acme.ID, Quantity: 0, Threshold: 0},
		{ID: primitive.NewObjectID(), Name: "Gear", SupplierID: orphan, Quantity: 1, Threshold: 3},
	}

	products := &mockProducts{}
	products.On("FindLowStock", mock.Anything).Return(low, nil)
	suppliers := &mockSuppliers{}
	suppliers.On("FindByIDs", mock.Anything, []primitive.ObjectID{acme.ID, orphan}).Return([]models.Supplier{acme}, nil)

	out, err := NewDashboardService(products, suppliers, &mockOrders{}).Alerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, out.ReorderCount)
	require.Len(t, out.StockAlerts, 3)
	assert.Equal(t, "Acme", out.StockAlerts[0].SupplierName)
	assert.Equal(t, "Acme", out.StockAlerts[1].SupplierName)
	assert.Equal(t, "", out.StockAlerts[2].SupplierName)
	suppliers.AssertNumberOfCalls(t, "FindByIDs", 1)
}

func TestAlertsEmpty(t *testing.T) {
	products := &mockProducts{}
	products.On("FindLowStock", mock.Anything).Return([]models.Product{}, nil)

	out, err := NewDashboardService(products, &mockSuppliers{}, &mockOrders{}).Alerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, out.ReorderCount)
	assert.NotNil(t, out.StockAlerts)
}

func TestSupplierDistributionDropsOrphans(t *testing.T) {
	acme := models.Supplier{ID: primitive.NewObjectID(), Name: "Acme"}
	globex := models.Supplier{ID: primitive.NewObjectID(), Name: "Globex"}
	orphan := primitive.NewObjectID()

	products := &mockProducts{}
	products.On("CountBySupplier", mock.Anything).Return([]repositories.SupplierCount{
		{SupplierID: acme.ID, Count: 3},
		{SupplierID: orphan, Count: 2},
		{SupplierID: globex.ID, Count: 1},
	}, nil)
	suppliers := &mockSuppliers{}
	suppliers.On("FindByIDs", mock.Anything, mock.Anything).Return([]models.Supplier{globex, acme}, nil)

	out, err := NewDashboardService(products, suppliers, &mockOrders{}).SupplierDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Distribution{{Name: "Acme", Count: 3}, {Name: "Globex", Count: 1}}, out)
}

func TestCategoryDistributionNeverNil(t *testing.T) {
	products := &mockProducts{}
	products.On("CountByCategory", mock.Anything).Return([]models.Distribution(nil), nil)

	out, err := NewDashboardService(products, &mockSuppliers{}, &mockOrders{}).CategoryDistribution(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSalesOverTimeDensifies(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	orders := &mockOrders{}
	since := now.AddDate(0, 0, -30)
	orders.On("SalesByDay", mock.Anything, mock.MatchedBy(func(t time.Time) bool { return t.Equal(since) })).Return(map[string]decimal.Decimal{
		"2025-06-10": decimal.NewFromInt(35),
		"2025-06-09": decimal.NewFromInt(7),
		"2025-05-12": decimal.RequireFromString("1.25"),
		"2025-05-11": decimal.NewFromInt(100),
	}, nil)

	svc := NewDashboardService(&mockProducts{}, &mockSuppliers{}, orders)
	svc.now = func() time.Time { return now }

	points, err := svc.SalesOverTime(context.Background())
	require.NoError(t, err)
	require.Len(t, points, SalesWindowDays)

	assert.Equal(t, "2025-05-12", points[0].Date)
	assert.Equal(t, 1.25, points[0].Sales)
	assert.Equal(t, "2025-06-09", points[28].Date)
	assert.Equal(t, 7.0, points[28].Sales)
	assert.Equal(t, "2025-06-10", points[29].Date)
	assert.Equal(t, 35.0, points[29].Sales)

	var total float64
	for i, p := range points {
		if i > 0 {
			assert.Less(t, points[i-1].Date, p.Date)
		}
		total += p.Sales
	}
	assert.Equal(t, 43.25, total)
}
