package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storehub/app/models"
	"github.com/shashiranjanraj/storehub/app/services"
)

type fakeReports struct {
	gotCaller services.Caller
	gotStore  string
}

func (f *fakeReports) Dashboard(_ context.Context, c services.Caller, storeID string) (services.Dashboard, error) {
	f.gotCaller, f.gotStore = c, storeID
	return services.Dashboard{
		StoreID:        "s1",
		OrderCount:     2,
		TotalSales:     decimal.RequireFromString("35"),
		TotalCollected: decimal.RequireFromString("10.5"),
		Outstanding:    decimal.RequireFromString("24.5"),
		PaymentRatio:   30,
		Statuses: []services.StatusShare{
			{Status: models.StatusReceived, Count: 2, Percent: 100},
		},
	}, nil
}

type gqlResponse struct {
	Data struct {
		Dashboard struct {
			StoreID     string  `json:"storeId"`
			OrderCount  int     `json:"orderCount"`
			TotalSales  string  `json:"totalSales"`
			Outstanding string  `json:"outstanding"`
			Ratio       float64 `json:"paymentRatio"`
			Statuses    []struct {
				Status string `json:"status"`
				Count  int    `json:"count"`
			} `json:"statuses"`
		} `json:"dashboard"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func serve(t *testing.T, reports Reports, ctx context.Context, body string) gqlResponse {
	t.Helper()
	schema, err := NewSchema(reports)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)).WithContext(ctx)
	rec := httptest.NewRecorder()
	Handler(schema)(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestDashboardQuery(t *testing.T) {
	reports := &fakeReports{}
	caller := services.Caller{UserID: "u1", Role: models.RoleRoot}
	ctx := WithCaller(context.Background(), caller)

	out := serve(t, reports, ctx, `{"query":"query($s:String){ dashboard(storeId:$s){ storeId orderCount totalSales outstanding paymentRatio statuses{status count} } }","variables":{"s":"s1"}}`)

	require.Empty(t, out.Errors)
	assert.Equal(t, caller, reports.gotCaller)
	assert.Equal(t, "s1", reports.gotStore)
	d := out.Data.Dashboard
	assert.Equal(t, 2, d.OrderCount)
	assert.Equal(t, "35.00", d.TotalSales)
	assert.Equal(t, "24.50", d.Outstanding)
	assert.Equal(t, 30.0, d.Ratio)
	require.Len(t, d.Statuses, 1)
	assert.Equal(t, "RECEIVED", d.Statuses[0].Status)
}

func TestDashboardWithoutCaller(t *testing.T) {
	out := serve(t, &fakeReports{}, context.Background(), `{"query":"{ dashboard { orderCount } }"}`)
	require.NotEmpty(t, out.Errors)
	assert.Contains(t, out.Errors[0].Message, "unauthorized")
}

func TestHandlerRejectsEmptyQuery(t *testing.T) {
	schema, err := NewSchema(&fakeReports{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	Handler(schema)(rec, httptest.NewRequest(http.MethodGet, "/graphql", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
