package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
	"github.com/shashiranjanraj/stockpile/pkg/logger"
	"github.com/shashiranjanraj/stockpile/pkg/metrics"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// OrderService manages the order ledger and joins each order with its
// catalog product on read.
type OrderService struct {
	orders   repositories.OrderStore
	products repositories.ProductStore
	now      func() time.Time
}

func NewOrderService(orders repositories.OrderStore, products repositories.ProductStore) *OrderService {
	return &OrderService{orders: orders, products: products, now: time.Now}
}

// List returns one page of orders, each composed with its product. Lookups
// run one after another in page order.
func (s *OrderService) List(ctx context.Context, page, limit int) ([]models.OrderView, orm.Pagination, error) {
	orders, pg, err := s.orders.Paginate(ctx, page, limit)
	if err != nil {
		return nil, orm.Pagination{}, apperror.Store(err)
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := s.compose(ctx, o)
		if err != nil {
			return nil, orm.Pagination{}, err
		}
		views = append(views, v)
	}
	return views, pg, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (models.OrderView, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.OrderView{}, storeErr(err, "Order not found")
	}
	return s.compose(ctx, o)
}

// Create records a new order. The user defaults to the caller, the status to
// Pending and the order date to now.
func (s *OrderService) Create(ctx context.Context, caller auth.Principal, in models.OrderInput) (models.Order, error) {
	o := models.Order{
		UserID:      caller.ID,
		ProductID:   in.ProductID,
		Quantity:    *in.Quantity,
		OrderDate:   s.now(),
		TotalAmount: *in.TotalAmount,
		Status:      models.StatusPending,
	}
	if in.UserID != nil {
		o.UserID = *in.UserID
	}
	if in.OrderDate != nil {
		o.OrderDate = *in.OrderDate
	}
	if in.Status != nil {
		o.Status = *in.Status
	}

	if err := s.orders.Create(ctx, &o); err != nil {
		return models.Order{}, apperror.Store(err)
	}
	logger.WithCtx(ctx).Info("order created", "order_id", o.ID, "user_id", o.UserID)
	return o, nil
}

func (s *OrderService) Update(ctx context.Context, id uint, patch models.OrderPatch) (models.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, storeErr(err, "Order not found")
	}
	patch.Apply(&o)
	if err := s.orders.Update(ctx, &o); err != nil {
		return models.Order{}, storeErr(err, "Order not found")
	}
	return o, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return storeErr(s.orders.Delete(ctx, id), "Order not found")
}

// compose resolves the order's product. A product id that is malformed or
// names a missing document yields an empty Products list.
func (s *OrderService) compose(ctx context.Context, o models.Order) (models.OrderView, error) {
	v := models.OrderView{Order: o, Products: []models.OrderLine{}}

	pid, err := primitive.ObjectIDFromHex(o.ProductID)
	if err != nil {
		metrics.RecordLookup(false)
		return v, nil
	}

	p, err := s.products.FindByID(ctx, pid)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		metrics.RecordLookup(false)
		return v, nil
	case err != nil:
		return models.OrderView{}, apperror.Store(err)
	}

	metrics.RecordLookup(true)
	v.Products = append(v.Products, models.OrderLine{
		ProductID:   p.ID.Hex(),
		ProductName: p.Name,
		Quantity:    o.Quantity,
		Price:       p.Price,
	})
	return v, nil
}
