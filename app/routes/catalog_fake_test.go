package routes

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// memCatalog is an in-memory ProductStore and SupplierStore. Route tests use
// it in place of the document store.
type memCatalog struct {
	mu        sync.Mutex
	products  map[primitive.ObjectID]models.Product
	suppliers map[primitive.ObjectID]models.Supplier
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		products:  map[primitive.ObjectID]models.Product{},
		suppliers: map[primitive.ObjectID]models.Supplier{},
	}
}

type memProducts struct{ *memCatalog }
type memSuppliers struct{ *memCatalog }

func sortedByID[T any](m map[primitive.ObjectID]T, id func(T) primitive.ObjectID) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]).Hex() < id(out[j]).Hex() })
	return out
}

func page[T any](all []T, page, limit int) ([]T, orm.Pagination) {
	p := orm.NewPagination(int64(len(all)), page, limit)
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return append([]T{}, all[start:end]...), p
}

func productID(p models.Product) primitive.ObjectID  { return p.ID }
func supplierID(s models.Supplier) primitive.ObjectID { return s.ID }

func (m memProducts) Find(_ context.Context, f repositories.ProductFilter, pg, limit int) ([]models.Product, orm.Pagination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var match []models.Product
	for _, p := range sortedByID(m.products, productID) {
		switch {
		case f.SupplierID != nil && p.SupplierID != *f.SupplierID:
		case f.Category != "" && p.Category != f.Category:
		case f.MinQty != nil && p.Quantity < *f.MinQty:
		case f.MaxQty != nil && p.Quantity > *f.MaxQty:
		default:
			match = append(match, p)
		}
	}
	items, p := page(match, pg, limit)
	return items, p, nil
}

func (m memProducts) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return models.Product{}, repositories.ErrNotFound
	}
	return p, nil
}

func (m memProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	m.products[p.ID] = *p
	return nil
}

func (m memProducts) Update(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.products[p.ID] = *p
	return nil
}

func (m memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m memProducts) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.products)), nil
}

func (m memProducts) FindLowStock(context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range sortedByID(m.products, productID) {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m memProducts) CountBySupplier(context.Context) ([]repositories.SupplierCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[primitive.ObjectID]int64{}
	for _, p := range m.products {
		counts[p.SupplierID]++
	}
	out := make([]repositories.SupplierCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, repositories.SupplierCount{SupplierID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SupplierID.Hex() < out[j].SupplierID.Hex() })
	return out, nil
}

func (m memProducts) CountByCategory(context.Context) ([]models.Distribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range m.products {
		counts[p.Category]++
	}
	out := make([]models.Distribution, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.Distribution{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m memSuppliers) Find(_ context.Context, pg, limit int) ([]models.Supplier, orm.Pagination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, p := page(sortedByID(m.suppliers, supplierID), pg, limit)
	return items, p, nil
}

func (m memSuppliers) FindByID(_ context.Context, id primitive.ObjectID) (models.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suppliers[id]
	if !ok {
		return models.Supplier{}, repositories.ErrNotFound
	}
	return s, nil
}

func (m memSuppliers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Supplier{}
	for _, id := range ids {
		if s, ok := m.suppliers[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSuppliers) Create(_ context.Context, s *models.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = primitive.NewObjectID()
	s.CreatedAt, s.UpdatedAt = time.Now(), time.Now()
	m.suppliers[s.ID] = *s
	return nil
}

func (m memSuppliers) Update(_ context.Context, s *models.Supplier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[s.ID]; !ok {
		return repositories.ErrNotFound
	}
	m.suppliers[s.ID] = *s
	return nil
}

func (m memSuppliers) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.suppliers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.suppliers, id)
	return nil
}
