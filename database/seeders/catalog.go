package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/config"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
)

func init() {
	Register("users", seedUsers)
	Register("catalog", seedCatalog)
}

// seedUsers creates the admin account named by SEED_ADMIN_USER unless it
// already exists.
func seedUsers(ctx context.Context, s Stores) error {
	username := config.Get("SEED_ADMIN_USER", "admin")
	if _, err := s.Users.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(config.Get("SEED_ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return err
	}
	return s.Users.Create(ctx, &models.User{Username: username, PasswordHash: hash, Role: models.RoleAdmin})
}

type sampleProduct struct {
	name, category      string
	quantity, threshold int
	price               float64
}

var sampleCatalog = []struct {
	supplier models.Supplier
	products []sampleProduct
}{
	{
		supplier: models.Supplier{Name: "Acme Industrial", ContactInfo: "orders@acme.example"},
		products: []sampleProduct{
			{"Hex Bolt M8", "Hardware", 240, 50, 0.35},
			{"Lock Nut M8", "Hardware", 30, 50, 0.12},
			{"Safety Gloves", "Safety", 12, 20, 7.5},
		},
	},
	{
		supplier: models.Supplier{Name: "Northwind Electrical", ContactInfo: "+1 555 0134"},
		products: []sampleProduct{
			{"Cable Tie 200mm", "Electrical", 900, 200, 0.04},
			{"Wall Socket", "Electrical", 8, 10, 4.2},
		},
	},
}

// seedCatalog inserts the sample suppliers and products into an empty catalog.
func seedCatalog(ctx context.Context, s Stores) error {
	n, err := s.Products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, entry := range sampleCatalog {
		sup := entry.supplier
		if err := s.Suppliers.Create(ctx, &sup); err != nil {
			return err
		}
		for _, sp := range entry.products {
			p := models.Product{
				Name:       sp.name,
				Category:   sp.category,
				SupplierID: sup.ID,
				Quantity:   sp.quantity,
				Threshold:  sp.threshold,
				Price:      sp.price,
			}
			if err := s.Products.Create(ctx, &p); err != nil {
				return err
			}
		}
	}
	return nil
}
