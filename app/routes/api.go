// Package routes declares the HTTP surface of the inventory API.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/stockpile/app/controllers"
	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
	"github.com/shashiranjanraj/stockpile/pkg/rbac"
	"github.com/shashiranjanraj/stockpile/pkg/router"
)

// Handlers collects everything the API routes dispatch to.
type Handlers struct {
	Authenticate router.Middleware

	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Products  *controllers.ProductController
	Suppliers *controllers.SupplierController
	Orders    *controllers.OrderController
	Dashboard *controllers.DashboardController
	GraphQL   http.HandlerFunc
}

var (
	admin   = rbac.HasRole(string(models.RoleAdmin))
	writers = rbac.HasRole(string(models.RoleAdmin), string(models.RoleManager))
	readers = rbac.HasRole(string(models.RoleAdmin), string(models.RoleManager), string(models.RoleClerk))
)

func RegisterAPI(r *router.Router, h Handlers) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", "auth.register", ctx.Wrap(h.Auth.Register))
	auth.Post("/login", "auth.login", ctx.Wrap(h.Auth.Login))

	protected := api.Group("", h.Authenticate)
	protected.Get("/auth/me", "auth.me", ctx.Wrap(h.Auth.Me))

	users := protected.Group("/users")
	users.Get("/", "users.index", ctx.Wrap(h.Users.Index), admin)
	users.Post("/", "users.store", ctx.Wrap(h.Users.Store), admin)
	users.Get("/{id}", "users.show", ctx.Wrap(h.Users.Show), writers)
	users.Put("/{id}", "users.update", ctx.Wrap(h.Users.Update), admin)
	users.Delete("/{id}", "users.destroy", ctx.Wrap(h.Users.Destroy), admin)

	products := protected.Group("/products")
	products.Get("/", "products.index", ctx.Wrap(h.Products.Index), readers)
	products.Get("/{id}", "products.show", ctx.Wrap(h.Products.Show), readers)
	products.Post("/", "products.store", ctx.Wrap(h.Products.Store), writers)
	products.Put("/{id}", "products.update", ctx.Wrap(h.Products.Update), writers)
	products.Delete("/{id}", "products.destroy", ctx.Wrap(h.Products.Destroy), admin)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", "suppliers.index", ctx.Wrap(h.Suppliers.Index), readers)
	suppliers.Get("/{id}", "suppliers.show", ctx.Wrap(h.Suppliers.Show), readers)
	suppliers.Post("/", "suppliers.store", ctx.Wrap(h.Suppliers.Store), writers)
	suppliers.Put("/{id}", "suppliers.update", ctx.Wrap(h.Suppliers.Update), writers)
	suppliers.Delete("/{id}", "suppliers.destroy", ctx.Wrap(h.Suppliers.Destroy), admin)

	orders := protected.Group("/orders")
	orders.Get("/", "orders.index", ctx.Wrap(h.Orders.Index), readers)
	orders.Get("/{id}", "orders.show", ctx.Wrap(h.Orders.Show), readers)
	orders.Post("/", "orders.store", ctx.Wrap(h.Orders.Store), writers)
	orders.Put("/{id}", "orders.update", ctx.Wrap(h.Orders.Update), writers)
	orders.Delete("/{id}", "orders.destroy", ctx.Wrap(h.Orders.Destroy), admin)

	dash := protected.Group("/dashboard")
	dash.Get("/alerts", "dashboard.alerts", ctx.Wrap(h.Dashboard.Alerts))
	dash.Get("/analytics/supplier-product-distribution", "dashboard.suppliers", ctx.Wrap(h.Dashboard.SupplierDistribution))
	dash.Get("/analytics/category-distribution", "dashboard.categories", ctx.Wrap(h.Dashboard.CategoryDistribution))
	dash.Get("/analytics/sales-over-time", "dashboard.sales", ctx.Wrap(h.Dashboard.SalesOverTime))

	if h.GraphQL != nil {
		protected.Post("/graphql", "graphql", h.GraphQL)
	}
}
