package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/pkg/apperror"
	"github.com/shashiranjanraj/stockpile/pkg/logger"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
)

// ProductService manages the products collection.
type ProductService struct {
	products repositories.ProductStore
}

func NewProductService(products repositories.ProductStore) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	items, pg, err := s.products.Find(ctx, f, page, limit)
	if err != nil {
		return nil, orm.Pagination{}, apperror.Store(err)
	}
	return items, pg, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	return p, storeErr(err, "Product not found")
}

func (s *ProductService) Create(ctx context.Context, in models.ProductInput) (models.Product, error) {
	supplierID, err := primitive.ObjectIDFromHex(in.SupplierID)
	if err != nil {
		return models.Product{}, apperror.Validation("Invalid supplierId")
	}

	p := models.Product{
		Name:       in.Name,
		Category:   in.Category,
		SupplierID: supplierID,
		Quantity:   *in.Quantity,
		Threshold:  *in.Threshold,
		Price:      *in.Price,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return models.Product{}, apperror.Store(err)
	}
	logger.WithCtx(ctx).Info("product created", "product_id", p.ID.Hex())
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, storeErr(err, "Product not found")
	}
	if err := patch.Apply(&p); err != nil {
		return models.Product{}, apperror.Validation("Invalid supplierId")
	}
	if err := s.products.Update(ctx, &p); err != nil {
		return models.Product{}, storeErr(err, "Product not found")
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return storeErr(s.products.Delete(ctx, id), "Product not found")
}

// SupplierService manages the suppliers collection.
type SupplierService struct {
	suppliers repositories.SupplierStore
}

func NewSupplierService(suppliers repositories.SupplierStore) *SupplierService {
	return &SupplierService{suppliers: suppliers}
}

func (s *SupplierService) List(ctx context.Context, page, limit int) ([]models.Supplier, orm.Pagination, error) {
	items, pg, err := s.suppliers.Find(ctx, page, limit)
	if err != nil {
		return nil, orm.Pagination{}, apperror.Store(err)
	}
	return items, pg, nil
}

func (s *SupplierService) Get(ctx context.Context, id primitive.ObjectID) (models.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	return sup, storeErr(err, "Supplier not found")
}

func (s *SupplierService) Create(ctx context.Context, in models.SupplierInput) (models.Supplier, error) {
	sup := models.Supplier{Name: in.Name, ContactInfo: in.ContactInfo}
	if err := s.suppliers.Create(ctx, &sup); err != nil {
		return models.Supplier{}, apperror.Store(err)
	}
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, id primitive.ObjectID, patch models.SupplierPatch) (models.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return models.Supplier{}, storeErr(err, "Supplier not found")
	}
	patch.Apply(&sup)
	if err := s.suppliers.Update(ctx, &sup); err != nil {
		return models.Supplier{}, storeErr(err, "Supplier not found")
	}
	return sup, nil
}

// Delete removes the supplier. Products that reference it keep the dangling id.
func (s *SupplierService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return storeErr(s.suppliers.Delete(ctx, id), "Supplier not found")
}
