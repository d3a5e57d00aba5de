// Package repositories holds the store interfaces the services depend on and
// their gorm and document-store implementations.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// ErrNotFound is returned when the addressed row or document does not exist.
var ErrNotFound = errors.New("record not found")

// UserStore is the credential store.
type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uint) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uint) error
}

// OrderStore is the order ledger.
type OrderStore interface {
	Paginate(ctx context.Context, page, limit int) ([]models.Order, orm.Pagination, error)
	FindByID(ctx context.Context, id uint) (models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	Update(ctx context.Context, o *models.Order) error
	Delete(ctx context.Context, id uint) error
	// SalesByDay sums totalAmount of Completed orders placed at or after
	// since, keyed by the store's calendar day "YYYY-MM-DD".
	SalesByDay(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error)
}

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	SupplierID *primitive.ObjectID
	Category   string
	MinQty     *int
	MaxQty     *int
}

// SupplierCount is the number of products referencing one supplier id.
type SupplierCount struct {
	SupplierID primitive.ObjectID `bson:"_id"`
	Count      int64              `bson:"count"`
}

// ProductStore is the product half of the catalog.
type ProductStore interface {
	Find(ctx context.Context, f ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	FindLowStock(ctx context.Context) ([]models.Product, error)
	CountBySupplier(ctx context.Context) ([]SupplierCount, error)
	CountByCategory(ctx context.Context) ([]models.Distribution, error)
}

// SupplierStore is the supplier half of the catalog.
type SupplierStore interface {
	Find(ctx context.Context, page, limit int) ([]models.Supplier, orm.Pagination, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Supplier, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Supplier, error)
	Create(ctx context.Context, s *models.Supplier) error
	Update(ctx context.Context, s *models.Supplier) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
