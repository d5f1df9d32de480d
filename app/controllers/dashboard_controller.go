package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storehub/app/graphql"
	"github.com/shashiranjanraj/storehub/pkg/auth"
	"github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/logger"
	"github.com/shashiranjanraj/storehub/pkg/response"
)

type DashboardController struct {
	base
	query http.HandlerFunc
}

func NewDashboardController(s *Services) (*DashboardController, error) {
	schema, err := graphql.NewSchema(s.Reports)
	if err != nil {
		return nil, err
	}
	return &DashboardController{base: newBase(s), query: graphql.Handler(schema)}, nil
}

// Show GET /api/dashboard?store_id=
func (c *DashboardController) Show(x *ctx.Context) {
	caller, ok := c.caller(x)
	if !ok {
		return
	}
	d, err := c.reports.Dashboard(x.Context(), caller, x.Query("store_id"))
	if err != nil {
		x.Fail(err)
		return
	}
	x.Success(d)
}

// GraphQL GET|POST /graphql
func (c *DashboardController) GraphQL(w http.ResponseWriter, r *http.Request) {
	caller, err := c.auth.Resolve(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		logger.WithCtx(r.Context()).Debug("graphql: caller not resolved", "error", err)
		response.FromError(w, err)
		return
	}
	c.query(w, r.WithContext(graphql.WithCaller(r.Context(), caller)))
}
