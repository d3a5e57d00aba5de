package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderStatus is the lifecycle state of an order. Transitions are unconstrained.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// Order is a row of the order ledger. ProductID is an opaque reference into
// the catalog and may outlive the product it names.
type Order struct {
	ID          uint            `gorm:"primaryKey"                        json:"id"`
	UserID      uint            `gorm:"not null;index"                    json:"userId"`
	ProductID   string          `gorm:"size:64;not null;index"            json:"productId"`
	Quantity    int             `gorm:"not null"                          json:"quantity"`
	OrderDate   time.Time       `gorm:"not null;index"                    json:"orderDate"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"       json:"totalAmount"`
	Status      OrderStatus     `gorm:"size:20;not null;default:Pending;index" json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderLine is the resolved product of an order.
type OrderLine struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderView is an order composed with its product. Products holds zero or
// one entries; it is empty when the product no longer exists.
type OrderView struct {
	Order
	Products []OrderLine `json:"products"`
}

// OrderInput is the body of POST /api/orders. UserID defaults to the caller.
type OrderInput struct {
	UserID      *uint            `json:"userId"      validate:"nullable,gte=1"`
	ProductID   string           `json:"productId"   validate:"required,max=64"`
	Quantity    *int             `json:"quantity"    validate:"required,gte=1"`
	OrderDate   *time.Time       `json:"orderDate"`
	TotalAmount *decimal.Decimal `json:"totalAmount" validate:"required,gte=0"`
	Status      *OrderStatus     `json:"status"      validate:"nullable,in=Pending,Completed,Cancelled"`
}

// OrderPatch is the body of PUT /api/orders/{id}.
type OrderPatch struct {
	ProductID   *string          `json:"productId"   validate:"nullable,max=64"`
	Quantity    *int             `json:"quantity"    validate:"nullable,gte=1"`
	OrderDate   *time.Time       `json:"orderDate"`
	TotalAmount *decimal.Decimal `json:"totalAmount" validate:"nullable,gte=0"`
	Status      *OrderStatus     `json:"status"      validate:"nullable,in=Pending,Completed,Cancelled"`
}

// Apply merges the provided fields into o.
func (p OrderPatch) Apply(o *Order) {
	o.ProductID = Merge(p.ProductID, o.ProductID)
	o.Quantity = Merge(p.Quantity, o.Quantity)
	o.OrderDate = Merge(p.OrderDate, o.OrderDate)
	o.TotalAmount = Merge(p.TotalAmount, o.TotalAmount)
	o.Status = Merge(p.Status, o.Status)
}
