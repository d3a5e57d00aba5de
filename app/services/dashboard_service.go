package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
)

// SalesWindowDays is the length of the sales-over-time series.
const SalesWindowDays = 30

const dayLayout = "2006-01-02"

// DashboardService computes the read-only dashboard views across both stores.
type DashboardService struct {
	products  repositories.ProductStore
	suppliers repositories.SupplierStore
	orders    repositories.OrderStore
	now       func() time.Time
}

func NewDashboardService(products repositories.ProductStore, suppliers repositories.SupplierStore, orders repositories.OrderStore) *DashboardService {
	return &DashboardService{products: products, suppliers: suppliers, orders: orders, now: time.Now}
}

// Alerts lists every product at or below its threshold with the supplier name
// resolved. Dangling suppliers get an empty name.
func (s *DashboardService) Alerts(ctx context.Context) (models.Alerts, error) {
	low, err := s.products.FindLowStock(ctx)
	if err != nil {
		return models.Alerts{}, apperror.Store(err)
	}

	seen := make(map[primitive.ObjectID]bool, len(low))
	ids := make([]primitive.ObjectID, 0, len(low))
	for _, p := range low {
		if !seen[p.SupplierID] {
			seen[p.SupplierID] = true
			ids = append(ids, p.SupplierID)
		}
	}

	names, err := s.supplierNames(ctx, ids)
	if err != nil {
		return models.Alerts{}, err
	}

	out := models.Alerts{StockAlerts: make([]models.StockAlert, 0, len(low))}
	for _, p := range low {
		out.StockAlerts = append(out.StockAlerts, models.StockAlert{Product: p, SupplierName: names[p.SupplierID]})
	}
	out.ReorderCount = len(out.StockAlerts)
	return out, nil
}

// SupplierDistribution counts products per supplier name. Groups whose
// supplier no longer exists are left out.
func (s *DashboardService) SupplierDistribution(ctx context.Context) ([]models.Distribution, error) {
	groups, err := s.products.CountBySupplier(ctx)
	if err != nil {
		return nil, apperror.Store(err)
	}

	ids := make([]primitive.ObjectID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.SupplierID)
	}
	names, err := s.supplierNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.Distribution, 0, len(groups))
	for _, g := range groups {
		name, ok := names[g.SupplierID]
		if !ok {
			continue
		}
		out = append(out, models.Distribution{Name: name, Count: g.Count})
	}
	return out, nil
}

// CategoryDistribution counts products per category.
func (s *DashboardService) CategoryDistribution(ctx context.Context) ([]models.Distribution, error) {
	out, err := s.products.CountByCategory(ctx)
	if err != nil {
		return nil, apperror.Store(err)
	}
	if out == nil {
		out = []models.Distribution{}
	}
	return out, nil
}

// SalesOverTime returns exactly SalesWindowDays points, oldest first, ending
// today (UTC). Days without completed sales are zero.
func (s *DashboardService) SalesOverTime(ctx context.Context) ([]models.SalesPoint, error) {
	now := s.now().UTC()
	sums, err := s.orders.SalesByDay(ctx, now.AddDate(0, 0, -SalesWindowDays))
	if err != nil {
		return nil, apperror.Store(err)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	points := make([]models.SalesPoint, SalesWindowDays)
	for i := range points {
		day := today.AddDate(0, 0, i-(SalesWindowDays-1)).Format(dayLayout)
		points[i] = models.SalesPoint{Date: day, Sales: sums[day].InexactFloat64()}
	}
	return points, nil
}

func (s *DashboardService) supplierNames(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	names := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	sups, err := s.suppliers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Store(err)
	}
	for _, sup := range sups {
		names[sup.ID] = sup.Name
	}
	return names, nil
}
