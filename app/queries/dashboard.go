// Package queries exposes the dashboard views as a GraphQL schema so a client
// can fetch several of them in one round trip.
package queries

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/stockpile/app/models"
	gql "github.com/shashiranjanraj/stockpile/pkg/graphql"
)

// Dashboard is the read side the schema resolves against.
type Dashboard interface {
	Alerts(ctx context.Context) (models.Alerts, error)
	SupplierDistribution(ctx context.Context) ([]models.Distribution, error)
	CategoryDistribution(ctx context.Context) ([]models.Distribution, error)
	SalesOverTime(ctx context.Context) ([]models.SalesPoint, error)
}

var distributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Distribution",
	Fields: graphql.Fields{
		"name":  &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

var salesPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SalesPoint",
	Fields: graphql.Fields{
		"date":  &graphql.Field{Type: graphql.String},
		"sales": &graphql.Field{Type: graphql.Float},
	},
})

var stockAlertType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StockAlert",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.String},
		"name":         &graphql.Field{Type: graphql.String},
		"category":     &graphql.Field{Type: graphql.String},
		"supplierId":   &graphql.Field{Type: graphql.String},
		"supplierName": &graphql.Field{Type: graphql.String},
		"quantity":     &graphql.Field{Type: graphql.Int},
		"threshold":    &graphql.Field{Type: graphql.Int},
		"price":        &graphql.Field{Type: graphql.Float},
	},
})

var alertsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Alerts",
	Fields: graphql.Fields{
		"reorderCount": &graphql.Field{Type: graphql.Int},
		"stockAlerts":  &graphql.Field{Type: graphql.NewList(stockAlertType)},
	},
})

// NewSchema builds the dashboard schema.
func NewSchema(d Dashboard) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"alerts": &graphql.Field{
				Type: alertsType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					a, err := d.Alerts(p.Context)
					if err != nil {
						return nil, err
					}
					items := make([]map[string]interface{}, 0, len(a.StockAlerts))
					for _, s := range a.StockAlerts {
						items = append(items, map[string]interface{}{
							"id":           s.ID.Hex(),
							"name":         s.Name,
							"category":     s.Category,
							"supplierId":   s.SupplierID.Hex(),
							"supplierName": s.SupplierName,
							"quantity":     s.Quantity,
							"threshold":    s.Threshold,
							"price":        s.Price,
						})
					}
					return map[string]interface{}{"reorderCount": a.ReorderCount, "stockAlerts": items}, nil
				},
			},
			"supplierDistribution": &graphql.Field{
				Type: graphql.NewList(distributionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := d.SupplierDistribution(p.Context)
					if err != nil {
						return nil, err
					}
					return distributions(out), nil
				},
			},
			"categoryDistribution": &graphql.Field{
				Type: graphql.NewList(distributionType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					out, err := d.CategoryDistribution(p.Context)
					if err != nil {
						return nil, err
					}
					return distributions(out), nil
				},
			},
			"salesOverTime": &graphql.Field{
				Type: graphql.NewList(salesPointType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					points, err := d.SalesOverTime(p.Context)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(points))
					for i, pt := range points {
						out[i] = map[string]interface{}{"date": pt.Date, "sales": pt.Sales}
					}
					return out, nil
				},
			},
		},
	})
	return gql.NewSchema(query)
}

func distributions(in []models.Distribution) []map[string]interface{} {
	out := make([]map[string]interface{}, len(in))
	for i, d := range in {
		out[i] = map[string]interface{}{"name": d.Name, "count": d.Count}
	}
	return out
}
