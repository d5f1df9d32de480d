// Package response writes the JSON envelope every endpoint answers with:
//
//	{"success":true,"status":200,"data":{...}}
//	{"success":false,"status":422,"message":"Validation failed","errors":{"items.0.quantity":"..."}}
package response

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/shashiranjanraj/storehub/pkg/orm"
)

type Envelope struct {
	Success bool              `json:"success"`
	Status  int               `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// JSON writes body with status.
func JSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Status: http.StatusOK, Data: data})
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Status: http.StatusCreated, Data: data})
}

// Message sends a 200 carrying only a message.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Status: http.StatusOK, Message: msg})
}

// Error sends a failed envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with field-level errors.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Paginated sends a 200 with {items, pagination}.
func Paginated(w http.ResponseWriter, data interface{}, pagination orm.Pagination) {
	Success(w, map[string]interface{}{
		"items":      data,
		"pagination": pagination,
	})
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// Mapping is how an error is answered: its status, an optional message and,
// for 422, the field errors.
type Mapping struct {
	Status  int
	Message string
	Fields  map[string]string
}

// Mapper classifies err. ok is false when the mapper does not know err.
type Mapper func(err error) (m Mapping, ok bool)

var (
	mapMu   sync.RWMutex
	mappers []Mapper
)

// RegisterMapper adds m to the mappers consulted by Status and FromError.
// Mappers run in registration order and the first match wins.
func RegisterMapper(m Mapper) {
	mapMu.Lock()
	defer mapMu.Unlock()
	mappers = append(mappers, m)
}

func lookup(err error) Mapping {
	if err == nil {
		return Mapping{Status: http.StatusOK}
	}
	mapMu.RLock()
	defer mapMu.RUnlock()
	for _, m := range mappers {
		if got, ok := m(err); ok {
			return got
		}
	}
	return Mapping{Status: http.StatusInternalServerError}
}

// Status returns the HTTP status for err. Unmapped errors are 500.
func Status(err error) int {
	return lookup(err).Status
}

// FromError writes the envelope for err. Internal errors never leak their
// text and auth failures stay generic.
func FromError(w http.ResponseWriter, err error) {
	m := lookup(err)
	switch m.Status {
	case http.StatusUnprocessableEntity:
		ValidationError(w, m.Fields)
	case http.StatusUnauthorized:
		Unauthorized(w)
	case http.StatusForbidden:
		Forbidden(w)
	case http.StatusInternalServerError:
		Error(w, m.Status, "Internal Server Error")
	default:
		msg := m.Message
		if msg == "" {
			msg = http.StatusText(m.Status)
		}
		Error(w, m.Status, msg)
	}
}
