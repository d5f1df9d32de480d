package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payment struct {
	Method string          `json:"method" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

func TestJSONDecodesDecimal(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"method":"cash","amount":"12.50"}`))

	var p payment
	errs, err := JSON(httptest.NewRecorder(), req, &p)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("12.5")))
}

func TestJSONValidationErrors(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"amount":-1}`))

	var p payment
	errs, err := JSON(httptest.NewRecorder(), req, &p)
	require.NoError(t, err)
	assert.Contains(t, errs, "method")
	assert.Contains(t, errs, "amount")
}

func TestJSONBadBodies(t *testing.T) {
	for name, body := range map[string]string{
		"empty":     "",
		"malformed": `{"method":`,
	} {
		t.Run(name, func(t *testing.T) {
			var p payment
			_, err := JSON(httptest.NewRecorder(), httptest.NewRequest("POST", "/", strings.NewReader(body)), &p)
			assert.Error(t, err)
		})
	}
}
