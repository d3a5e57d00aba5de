package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

type mockUsers struct{ mock.Mock }

func (m *mockUsers) All(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUsers) FindByID(ctx context.Context, id uint) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Paginate(ctx context.Context, page, limit int) ([]models.Order, orm.Pagination, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]models.Order), args.Get(1).(orm.Pagination), args.Error(2)
}

func (m *mockOrders) FindByID(ctx context.Context, id uint) (models.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *mockOrders) Create(ctx context.Context, o *models.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrders) Update(ctx context.Context, o *models.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrders) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrders) SalesByDay(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

type mockProducts struct{ mock.Mock }

func (m *mockProducts) Find(ctx context.Context, f repositories.ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	args := m.Called(ctx, f, page, limit)
	return args.Get(0).([]models.Product), args.Get(1).(orm.Pagination), args.Error(2)
}

func (m *mockProducts) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *mockProducts) Create(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) Update(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProducts) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProducts) FindLowStock(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProducts) CountBySupplier(ctx context.Context) ([]repositories.SupplierCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repositories.SupplierCount), args.Error(1)
}

func (m *mockProducts) CountByCategory(ctx context.Context) ([]models.Distribution, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Distribution), args.Error(1)
}

type mockSuppliers struct{ mock.Mock }

func (m *mockSuppliers) Find(ctx context.Context, page, limit int) ([]models.Supplier, orm.Pagination, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]models.Supplier), args.Get(1).(orm.Pagination), args.Error(2)
}

func (m *mockSuppliers) FindByID(ctx context.Context, id primitive.ObjectID) (models.Supplier, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Supplier), args.Error(1)
}

func (m *mockSuppliers) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Supplier, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Supplier), args.Error(1)
}

func (m *mockSuppliers) Create(ctx context.Context, s *models.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuppliers) Update(ctx context.Context, s *models.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuppliers) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}
