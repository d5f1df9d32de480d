package ctx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appctx "github.com/shashiranjanraj/storehub/pkg/ctx"
	"github.com/shashiranjanraj/storehub/pkg/response"
)

var errMissingOrder = errors.New("order not found")

func init() {
	response.RegisterMapper(func(err error) (response.Mapping, bool) {
		if errors.Is(err, errMissingOrder) {
			return response.Mapping{Status: http.StatusNotFound, Message: err.Error()}, true
		}
		return response.Mapping{}, false
	})
}

func run(h appctx.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(h)(rec, req)
	return rec
}

func TestSuccess(t *testing.T) {
	rec := run(func(c *appctx.Context) {
		c.Success(map[string]any{"id": "01J"})
	}, http.MethodGet, "/", "")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestParam(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/orders/{id}", appctx.Wrap(func(c *appctx.Context) {
		got = c.Param("id")
		c.Success(nil)
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	if got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}

func TestPage(t *testing.T) {
	run(func(c *appctx.Context) {
		page, limit := c.Page()
		if page != 3 || limit != 0 {
			t.Errorf("expected (3, 0), got (%d, %d)", page, limit)
		}
		if c.QueryInt("page", 1) != 3 {
			t.Error("QueryInt mismatch")
		}
	}, http.MethodGet, "/?page=3&limit=oops", "")
}

func TestBindJSONValid(t *testing.T) {
	rec := run(func(c *appctx.Context) {
		var input struct {
			Username string `json:"username" validate:"required"`
		}
		if !c.BindJSON(&input) {
			t.Error("expected BindJSON to succeed")
			return
		}
		if input.Username != "shop1" {
			t.Errorf("expected shop1, got %s", input.Username)
		}
		c.Success(nil)
	}, http.MethodPost, "/", `{"username":"shop1"}`)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestBindJSONInvalid(t *testing.T) {
	rec := run(func(c *appctx.Context) {
		var input struct {
			Username string `json:"username" validate:"required"`
		}
		if c.BindJSON(&input) {
			t.Error("expected BindJSON to fail")
		}
		if c.WrittenStatus() != http.StatusUnprocessableEntity {
			t.Errorf("expected 422 recorded, got %d", c.WrittenStatus())
		}
	}, http.MethodPost, "/", `{}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestBindJSONMalformed(t *testing.T) {
	rec := run(func(c *appctx.Context) {
		var input map[string]any
		c.BindJSON(&input)
	}, http.MethodPost, "/", `{"a":`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestFail(t *testing.T) {
	rec := run(func(c *appctx.Context) {
		c.Fail(errMissingOrder)
	}, http.MethodGet, "/", "")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "order not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestFailHidesUnmappedErrors(t *testing.T) {
	rec := run(func(c *appctx.Context) {
		c.Fail(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	}, http.MethodGet, "/", "")

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("internal error leaked: %s", rec.Body.String())
	}
}
