// Package graphql exposes the dashboard report as a read-only GraphQL query:
//
//	{ dashboard(storeId: "01J...") { orderCount totalSales statuses { status count percent } } }
package graphql

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/storehub/app/services"
)

// Reports is the part of services.ReportService the schema resolves against.
type Reports interface {
	Dashboard(ctx context.Context, caller services.Caller, storeID string) (services.Dashboard, error)
}

type callerKey struct{}

// WithCaller stores the resolved caller for resolvers.
func WithCaller(ctx context.Context, c services.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func callerFrom(ctx context.Context) (services.Caller, error) {
	c, ok := ctx.Value(callerKey{}).(services.Caller)
	if !ok {
		return services.Caller{}, services.ErrUnauthorized
	}
	return c, nil
}

// moneyField renders a decimal as a fixed two-place string.
func moneyField(get func(services.Dashboard) decimal.Decimal) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			d, ok := p.Source.(services.Dashboard)
			if !ok {
				return nil, errors.New("graphql: unexpected source")
			}
			return get(d).StringFixed(2), nil
		},
	}
}

var statusShareType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StatusShare",
	Fields: graphql.Fields{
		"status": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return string(p.Source.(services.StatusShare).Status), nil
			},
		},
		"count": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return int(p.Source.(services.StatusShare).Count), nil
			},
		},
		"percent": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(services.StatusShare).Percent, nil
			},
		},
	},
})

func intField(get func(services.Dashboard) int64) *graphql.Field {
	return &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return int(get(p.Source.(services.Dashboard))), nil
		},
	}
}

var dashboardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Dashboard",
	Fields: graphql.Fields{
		"storeId": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if id := p.Source.(services.Dashboard).StoreID; id != "" {
					return id, nil
				}
				return nil, nil
			},
		},
		"orderCount":     intField(func(d services.Dashboard) int64 { return d.OrderCount }),
		"productCount":   intField(func(d services.Dashboard) int64 { return d.ProductCount }),
		"storeCount":     intField(func(d services.Dashboard) int64 { return d.StoreCount }),
		"totalSales":     moneyField(func(d services.Dashboard) decimal.Decimal { return d.TotalSales }),
		"totalCollected": moneyField(func(d services.Dashboard) decimal.Decimal { return d.TotalCollected }),
		"outstanding":    moneyField(func(d services.Dashboard) decimal.Decimal { return d.Outstanding }),
		"paymentRatio": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Float),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(services.Dashboard).PaymentRatio, nil
			},
		},
		"statuses": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(statusShareType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(services.Dashboard).Statuses, nil
			},
		},
	},
})

// NewSchema builds the query root over reports.
func NewSchema(reports Reports) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"dashboard": &graphql.Field{
				Type:        graphql.NewNonNull(dashboardType),
				Description: "Order totals and status distribution. storeId is honoured for ROOT callers only.",
				Args: graphql.FieldConfigArgument{
					"storeId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					caller, err := callerFrom(p.Context)
					if err != nil {
						return nil, err
					}
					storeID, _ := p.Args["storeId"].(string)
					return reports.Dashboard(p.Context, caller, storeID)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}
