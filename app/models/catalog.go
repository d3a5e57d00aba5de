package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier is a document of the suppliers collection.
type Supplier struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name"          json:"name"`
	ContactInfo string             `bson:"contactInfo"   json:"contactInfo"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// Product is a document of the products collection.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name"          json:"name"`
	Category   string             `bson:"category"      json:"category"`
	SupplierID primitive.ObjectID `bson:"supplierId"    json:"supplierId"`
	Quantity   int                `bson:"quantity"      json:"quantity"`
	Threshold  int                `bson:"threshold"     json:"threshold"`
	Price      float64            `bson:"price"         json:"price"`
	CreatedAt  time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.Threshold
}

// SupplierInput is the body of POST /api/suppliers.
type SupplierInput struct {
	Name        string `json:"name"        validate:"required,max=200"`
	ContactInfo string `json:"contactInfo" validate:"required,max=500"`
}

// SupplierPatch is the body of PUT /api/suppliers/{id}.
type SupplierPatch struct {
	Name        *string `json:"name"        validate:"nullable,max=200"`
	ContactInfo *string `json:"contactInfo" validate:"nullable,max=500"`
}

func (p SupplierPatch) Apply(s *Supplier) {
	s.Name = Merge(p.Name, s.Name)
	s.ContactInfo = Merge(p.ContactInfo, s.ContactInfo)
}

// ProductInput is the body of POST /api/products.
type ProductInput struct {
	Name       string   `json:"name"       validate:"required,max=200"`
	Category   string   `json:"category"   validate:"required,max=100"`
	SupplierID string   `json:"supplierId" validate:"required,objectid"`
	Quantity   *int     `json:"quantity"   validate:"required,gte=0"`
	Threshold  *int     `json:"threshold"  validate:"required,gte=0"`
	Price      *float64 `json:"price"      validate:"required,gte=0"`
}

// ProductPatch is the body of PUT /api/products/{id}.
type ProductPatch struct {
	Name       *string  `json:"name"       validate:"nullable,max=200"`
	Category   *string  `json:"category"   validate:"nullable,max=100"`
	SupplierID *string  `json:"supplierId" validate:"nullable,objectid"`
	Quantity   *int     `json:"quantity"   validate:"nullable,gte=0"`
	Threshold  *int     `json:"threshold"  validate:"nullable,gte=0"`
	Price      *float64 `json:"price"      validate:"nullable,gte=0"`
}

// Apply merges the provided fields into p. The supplier id must already have
// passed validation.
func (in ProductPatch) Apply(p *Product) error {
	if in.SupplierID != nil {
		id, err := primitive.ObjectIDFromHex(*in.SupplierID)
		if err != nil {
			return err
		}
		p.SupplierID = id
	}
	p.Name = Merge(in.Name, p.Name)
	p.Category = Merge(in.Category, p.Category)
	p.Quantity = Merge(in.Quantity, p.Quantity)
	p.Threshold = Merge(in.Threshold, p.Threshold)
	p.Price = Merge(in.Price, p.Price)
	return nil
}

// StockAlert is a low-stock product with its supplier's name resolved.
type StockAlert struct {
	Product
	SupplierName string `json:"supplierName"`
}

// Alerts is the response of GET /api/dashboard/alerts.
type Alerts struct {
	StockAlerts  []StockAlert `json:"stockAlerts"`
	ReorderCount int          `json:"reorderCount"`
}

// Distribution is one bucket of a product-count aggregation.
type Distribution struct {
	Name  string `json:"name"  bson:"name"`
	Count int64  `json:"count" bson:"count"`
}

// SalesPoint is one day of the sales-over-time series.
type SalesPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}
