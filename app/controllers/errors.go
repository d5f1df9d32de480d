package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storehub/app/services"
	"github.com/shashiranjanraj/storehub/pkg/response"
)

func init() {
	response.RegisterMapper(ServiceError)
}

// ServiceError maps the service error taxonomy onto HTTP. A conflict after
// exhausted retries answers with a fixed message; the driver text stays in
// the logs.
func ServiceError(err error) (response.Mapping, bool) {
	var v *services.ValidationError
	switch {
	case errors.As(err, &v):
		return response.Mapping{Status: http.StatusUnprocessableEntity, Fields: v.Fields}, true
	case errors.Is(err, services.ErrUnauthorized):
		return response.Mapping{Status: http.StatusUnauthorized}, true
	case errors.Is(err, services.ErrForbidden):
		return response.Mapping{Status: http.StatusForbidden}, true
	case errors.Is(err, services.ErrNotFound):
		return response.Mapping{Status: http.StatusNotFound, Message: err.Error()}, true
	case errors.Is(err, services.ErrConflict):
		return response.Mapping{Status: http.StatusConflict, Message: "Conflict, please retry."}, true
	case errors.Is(err, services.ErrInUse):
		return response.Mapping{Status: http.StatusConflict, Message: err.Error()}, true
	default:
		return response.Mapping{}, false
	}
}
