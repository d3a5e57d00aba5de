package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/app/models"
	"github.com/shashiranjanraj/stockpile/app/repositories"
	"github.com/shashiranjanraj/stockpile/app/services"
	"github.com/shashiranjanraj/stockpile/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// Index handles GET /api/products with optional supplier, category, minQty
// and maxQty filters.
func (pc *ProductController) Index(c *ctx.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	filter, ok := productFilter(c)
	if !ok {
		return
	}

	products, pg, err := pc.service.List(c.Context(), filter, page, limit)
	if err != nil {
		c.Fail(err, "Failed to fetch products")
		return
	}
	paginated(c, "products", products, pg)
}

func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pc.service.Get(c.Context(), id)
	if err != nil {
		c.Fail(err, "Failed to fetch product")
		return
	}
	c.Success(p)
}

func (pc *ProductController) Store(c *ctx.Context) {
	var input models.ProductInput
	if !c.BindJSON(&input) {
		return
	}
	p, err := pc.service.Create(c.Context(), input)
	if err != nil {
		c.Fail(err, "Failed to create product")
		return
	}
	c.Created(map[string]any{"message": "Product created", "product": p})
}

func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var patch models.ProductPatch
	if !c.BindJSON(&patch) {
		return
	}
	p, err := pc.service.Update(c.Context(), id, patch)
	if err != nil {
		c.Fail(err, "Failed to update product")
		return
	}
	c.Success(map[string]any{"message": "Product updated", "product": p})
}

func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.service.Delete(c.Context(), id); err != nil {
		c.Fail(err, "Failed to delete product")
		return
	}
	c.Success(map[string]any{"message": "Product deleted"})
}

func productFilter(c *ctx.Context) (repositories.ProductFilter, bool) {
	var f repositories.ProductFilter

	if raw := c.Query("supplier"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.Error(http.StatusBadRequest, "Invalid supplier")
			return f, false
		}
		f.SupplierID = &id
	}
	f.Category = c.Query("category")

	for _, q := range []struct {
		key  string
		dest **int
	}{{"minQty", &f.MinQty}, {"maxQty", &f.MaxQty}} {
		n, present, err := c.QueryInt(q.key)
		if err != nil {
			c.Error(http.StatusBadRequest, "Invalid "+q.key)
			return f, false
		}
		if present {
			*q.dest = &n
		}
	}
	return f, true
}
