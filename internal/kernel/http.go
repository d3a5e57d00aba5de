// Package kernel assembles the HTTP application: repositories, services,
// controllers, the global middleware stack and the route table.
package kernel

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockpile/app/controllers"
	"github.com/shashiranjanraj/stockpile/app/queries"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/app/routes"
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/config"
	"github.com/shashiranjanraj/stockpile/pkg/auth"
	"github.com/shashiranjanraj/stockpile/pkg/graphql"
	grpcsrv "github.com/shashiranjanraj/stockpile/pkg/grpc"
	"github.com/shashiranjanraj/stockpile/pkg/metrics"
	"github.com/shashiranjanraj/stockpile/pkg/middleware"
	"github.com/shashiranjanraj/stockpile/pkg/reqid"
	"github.com/shashiranjanraj/stockpile/pkg/response"
	"github.com/shashiranjanraj/stockpile/pkg/router"
)

// Deps are the live resources the kernel is built from.
type Deps struct {
	SQL       *gorm.DB
	Catalog   *mongo.Database
	Tokens    *auth.Tokens
	RateStore middleware.RateStore
	// Checks are probed by /healthz, keyed by store name.
	Checks map[string]grpcsrv.Check
}

type HTTPKernel struct {
	router *router.Router
	checks map[string]grpcsrv.Check
}

// NewHTTPKernel wires every layer and returns the ready kernel.
func NewHTTPKernel(d Deps) (*HTTPKernel, error) {
	users := repositories.NewUserRepository(d.SQL)
	orders := repositories.NewOrderRepository(d.SQL)
	products := repositories.NewProductRepository(d.Catalog)
	suppliers := repositories.NewSupplierRepository(d.Catalog)

	authSvc := services.NewAuthService(users, d.Tokens)
	dashboard := services.NewDashboardService(products, suppliers, orders)

	schema, err := queries.NewSchema(dashboard)
	if err != nil {
		return nil, err
	}

	k := &HTTPKernel{router: router.New(), checks: d.Checks}
	r := k.router

	// Outermost first. Metrics wraps everything so latency is total; the
	// request id must exist before the logger reads it.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.NewCORSOptions(config.CORSOrigins())))
	r.Use(middleware.RateLimit(d.RateStore, config.RateLimit(), time.Minute))

	mount(r, k.health, routes.Handlers{
		Authenticate: middleware.Authenticate(d.Tokens, authSvc),
		Auth:         controllers.NewAuthController(authSvc),
		Users:        controllers.NewUserController(services.NewUserService(users)),
		Products:     controllers.NewProductController(services.NewProductService(products)),
		Suppliers:    controllers.NewSupplierController(services.NewSupplierService(suppliers)),
		Orders:       controllers.NewOrderController(services.NewOrderService(orders, products)),
		Dashboard:    controllers.NewDashboardController(dashboard),
		GraphQL:      graphql.Handler(schema),
	})
	return k, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

func (k *HTTPKernel) Router() *router.Router { return k.router }

// RouteTable lists the routes without touching any store. Used by route:list.
func RouteTable() []router.RouteInfo {
	r := router.New()
	noop := func(w http.ResponseWriter, _ *http.Request) {}
	pass := func(next http.Handler) http.Handler { return next }
	mount(r, noop, routes.Handlers{Authenticate: pass, GraphQL: noop})
	return r.Routes()
}

func mount(r *router.Router, health http.HandlerFunc, h routes.Handlers) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// No auth on the operational endpoints.
	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", health)

	routes.RegisterAPI(r, h)
}

// health pings every store. Any failure turns the response into a 503.
func (k *HTTPKernel) health(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(k.checks))
	for name := range k.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := k.checks[name](ctx)
		cancel()
		if err != nil {
			results[name] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	response.JSON(w, code, map[string]any{"status": status, "checks": results})
}
