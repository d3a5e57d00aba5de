package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// OrderRepository implements OrderStore on gorm.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Paginate(ctx context.Context, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	p, err := orm.New(ctx, r.db).Model(&models.Order{}).Order("id").Paginate(page, limit, &orders)
	if err != nil {
		return nil, orm.Pagination{}, fmt.Errorf("list orders: %w", err)
	}
	return orders, p, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := orm.New(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).First(&order)
	return order, notFound(err, "find order")
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	o.OrderDate = o.OrderDate.UTC()
	if err := orm.New(ctx, r.db).Create(o); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *models.Order) error {
	o.OrderDate = o.OrderDate.UTC()
	if err := orm.New(ctx, r.db).Save(o); err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	n, err := orm.New(ctx, r.db).Delete(&models.Order{ID: id})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type dayTotal struct {
	Day   string
	Total decimal.Decimal
}

func (r *OrderRepository) SalesByDay(ctx context.Context, since time.Time) (map[string]decimal.Decimal, error) {
	day := dayExpr(r.db.Dialector.Name())

	var rows []dayTotal
	err := orm.New(ctx, r.db).Model(&models.Order{}).
		Where("status = ? AND order_date >= ?", models.StatusCompleted, since.UTC()).
		DB().
		Select(day + " AS day, SUM(total_amount) AS total").
		Group(day).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}

	out := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		// Drivers that return a DATE as time.Time render it as RFC 3339.
		key := row.Day
		if len(key) > 10 {
			key = key[:10]
		}
		out[key] = out[key].Add(row.Total)
	}
	return out, nil
}

// dayExpr truncates order_date to a calendar day in the dialect of the store.
func dayExpr(dialect string) string {
	if dialect == "sqlserver" {
		return "CAST(order_date AS DATE)"
	}
	return "DATE(order_date)"
}
