package controllers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/stockpile/pkg/ctx"
	"github.com/shashiranjanraj/stockpile/pkg/orm"
	"github.com/shashiranjanraj/stockpile/pkg/response"
)

// pageParams reads ?page and ?limit. A value that is not a number writes a
// 400 and returns ok=false; out-of-range values are clamped later.
func pageParams(c *ctx.Context) (page, limit int, ok bool) {
	page, limit = orm.DefaultPage, orm.DefaultLimit
	if n, present, err := c.QueryInt("page"); err != nil {
		c.Error(http.StatusBadRequest, "Invalid page")
		return 0, 0, false
	} else if present {
		page = n
	}
	if n, present, err := c.QueryInt("limit"); err != nil {
		c.Error(http.StatusBadRequest, "Invalid limit")
		return 0, 0, false
	} else if present {
		limit = n
	}
	return page, limit, true
}

// objectIDParam parses a document id from the path.
func objectIDParam(c *ctx.Context, key string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(key))
	if err != nil {
		c.Error(http.StatusBadRequest, "Invalid "+key)
		return primitive.NilObjectID, false
	}
	return id, true
}

func paginated(c *ctx.Context, key string, items interface{}, p orm.Pagination) {
	response.Paginated(c.W, key, items, p)
}
