package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

func TestOrderListComposesProducts(t *testing.T) {
	widget := models.Product{ID: primitive.NewObjectID(), Name: "Widget", Price: 2.5}
	gone := primitive.NewObjectID()

	orders := &mockOrders{}
	orders.On("Paginate", mock.Anything, 1, 10).Return([]models.Order{
		{ID: 1, ProductID: widget.ID.Hex(), Quantity: 4},
		{ID: 2, ProductID: gone.Hex(), Quantity: 1},
		{ID: 3, ProductID: "not-an-object-id", Quantity: 1},
	}, orm.Pagination{Total: 3, Page: 1, Pages: 1, Limit: 10}, nil)

	products := &mockProducts{}
	products.On("FindByID", mock.Anything, widget.ID).Return(widget, nil)
	products.On("FindByID", mock.Anything, gone).Return(models.Product{}, repositories.ErrNotFound)

	views, pg, err := NewOrderService(orders, products).List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.EqualValues(t, 3, pg.Total)

	assert.Equal(t, []models.OrderLine{{
		ProductID:   widget.ID.Hex(),
		ProductName: "Widget",
		Quantity:    4,
		Price:       2.5,
	}}, views[0].Products)

	assert.NotNil(t, views[1].Products)
	assert.Empty(t, views[1].Products)
	assert.NotNil(t, views[2].Products)
	assert.Empty(t, views[2].Products)

	products.AssertNumberOfCalls(t, "FindByID", 2)
}

func TestOrderListStoreFailure(t *testing.T) {
	pid := primitive.NewObjectID()

	orders := &mockOrders{}
	orders.On("Paginate", mock.Anything, 1, 10).Return([]models.Order{{ID: 1, ProductID: pid.Hex()}}, orm.Pagination{}, nil)
	products := &mockProducts{}
	products.On("FindByID", mock.Anything, pid).Return(models.Product{}, errors.New("server selection timeout"))

	_, _, err := NewOrderService(orders, products).List(context.Background(), 1, 10)
	assert.True(t, apperror.Is(err, apperror.KindStore))
}

func TestOrderCreateDefaults(t *testing.T) {
	fixed := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	orders := &mockOrders{}
	orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	svc := NewOrderService(orders, &mockProducts{})
	svc.now = func() time.Time { return fixed }

	qty := 2
	total := decimal.RequireFromString("19.98")
	o, err := svc.Create(context.Background(), auth.Principal{ID: 7, Role: "Clerk"}, models.OrderInput{
		ProductID:   primitive.NewObjectID().Hex(),
		Quantity:    &qty,
		TotalAmount: &total,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), o.UserID)
	assert.Equal(t, models.StatusPending, o.Status)
	assert.True(t, fixed.Equal(o.OrderDate))
	assert.True(t, total.Equal(o.TotalAmount))
}

func TestOrderCreateKeepsExplicitFields(t *testing.T) {
	orders := &mockOrders{}
	orders.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	uid := uint(11)
	qty := 1
	total := decimal.NewFromInt(5)
	status := models.StatusCompleted
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	o, err := NewOrderService(orders, &mockProducts{}).Create(context.Background(), auth.Principal{ID: 7}, models.OrderInput{
		UserID: &uid, ProductID: "p", Quantity: &qty, TotalAmount: &total, Status: &status, OrderDate: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), o.UserID)
	assert.Equal(t, models.StatusCompleted, o.Status)
	assert.True(t, date.Equal(o.OrderDate))
}

func TestOrderUpdateMissing(t *testing.T) {
	orders := &mockOrders{}
	orders.On("FindByID", mock.Anything, uint(99)).Return(models.Order{}, repositories.ErrNotFound)

	_, err := NewOrderService(orders, &mockProducts{}).Update(context.Background(), 99, models.OrderPatch{})
	assert.Equal(t, "Order not found", apperror.Message(err))
}
