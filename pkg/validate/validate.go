// Package validate provides struct-tag validation.
//
// Rules (comma-separated in the `validate` tag):
//
//	required        field must not be zero/empty
//	nullable        if empty, skip the remaining rules for this field
//	email           valid email address
//	url             valid http/https URL
//	alpha_dash      letters, digits, hyphens, underscores
//	min=N           string: min char length | number: min value | slice: min items
//	max=N           string: max char length | number: max value | slice: max items
//	gt=N, gte=N     number bounds
//	lte=N           number bound
//	in=a|b|c        value must be one of the listed items
//	dive            validate every element of a slice of structs; errors are
//	                keyed "<field>.<index>.<child>"
//
// decimal.Decimal fields are treated as numbers and compared exactly.
//
//	type Line struct {
//	    Quantity int             `json:"quantity" validate:"required,gte=1"`
//	    Price    decimal.Decimal `json:"price"    validate:"gte=0"`
//	}
//	type Input struct {
//	    Items []Line `json:"items" validate:"required,min=1,dive"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Struct validates the exported fields of v that carry a `validate` tag and
// returns field → message. An empty map means v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return errs
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		walk(rv, "", errs)
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

var decimalType = reflect.TypeOf(decimal.Decimal{})

func walk(rv reflect.Value, prefix string, errs map[string]string) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := prefix + jsonFieldName(field)
		value := rv.Field(i)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "nullable" || rule == "" {
				continue
			}
			if rule == "dive" {
				dive(value, name, errs)
				continue
			}
			if msg := apply(rule, name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
}

func dive(v reflect.Value, name string, errs map[string]string) {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return
	}
	for i := 0; i < v.Len(); i++ {
		el := v.Index(i)
		for el.Kind() == reflect.Ptr {
			if el.IsNil() {
				break
			}
			el = el.Elem()
		}
		if el.Kind() == reflect.Struct && el.Type() != decimalType {
			walk(el, fmt.Sprintf("%s.%d.", name, i), errs)
		}
	}
}

func apply(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")
	raw := stringValue(v)

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !emailRE.MatchString(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "url":
		u, err := url.ParseRequestURI(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Sprintf("The %s must be a valid URL.", field)
		}
	case "alpha_dash":
		for _, c := range raw {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
	case "min", "max":
		return bound(key, param, field, v)
	case "gt":
		if n, ok := number(v); ok && n.Cmp(parseNumber(param)) <= 0 {
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		}
	case "gte":
		if n, ok := number(v); ok && n.Cmp(parseNumber(param)) < 0 {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
	case "lte":
		if n, ok := number(v); ok && n.Cmp(parseNumber(param)) > 0 {
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	case "in":
		for _, a := range strings.Split(param, "|") {
			if raw == strings.TrimSpace(a) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

func bound(key, param, field string, v reflect.Value) string {
	limit := parseNumber(param)
	var got decimal.Decimal
	unit := " characters"

	if n, ok := number(v); ok {
		got, unit = n, ""
	} else if v.Kind() == reflect.Slice || v.Kind() == reflect.Array || v.Kind() == reflect.Map {
		got, unit = decimal.NewFromInt(int64(v.Len())), " items"
	} else {
		got = decimal.NewFromInt(int64(len([]rune(strings.TrimSpace(stringValue(v))))))
	}

	if key == "min" && got.Cmp(limit) < 0 {
		if unit == "" {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		return fmt.Sprintf("The %s must have at least %s%s.", field, param, unit)
	}
	if key == "max" && got.Cmp(limit) > 0 {
		if unit == "" {
			return fmt.Sprintf("The %s must not be greater than %s.", field, param)
		}
		return fmt.Sprintf("The %s must not exceed %s%s.", field, param, unit)
	}
	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, true
}

func isEmpty(v reflect.Value) bool {
	v, ok := deref(v)
	if !ok {
		return true
	}
	if v.Type() == decimalType {
		return false // zero is a legitimate amount
	}
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

// number returns v as a decimal when v is numeric.
func number(v reflect.Value) (decimal.Decimal, bool) {
	v, ok := deref(v)
	if !ok {
		return decimal.Zero, false
	}
	if v.Type() == decimalType {
		return v.Interface().(decimal.Decimal), true
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromInt(int64(v.Uint())), true
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(v.Float()), true
	}
	return decimal.Zero, false
}

func stringValue(v reflect.Value) string {
	v, ok := deref(v)
	if !ok {
		return ""
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func parseNumber(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		f, _ := strconv.ParseFloat(s, 64)
		return decimal.NewFromFloat(f)
	}
	return d
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
