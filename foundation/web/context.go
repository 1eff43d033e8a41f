package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped values handlers need. The gin context
// is embedded so raw request data stays reachable; Ctx is what gets passed
// down into repositories.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrors []error
	paramErrors []error
}

// BindFunc binds the request body (json or form) into data and checks that
// the named struct fields were actually provided. Field lists may be given
// either as separate arguments or comma joined.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for _, fields := range requiredFields {
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			f := v.FieldByName(field)
			if !f.IsValid() {
				continue
			}
			if isZeroField(f) {
				return NewRequestError(fmt.Errorf("field %s is required", field), http.StatusBadRequest)
			}
		}
	}

	return nil
}

func isZeroField(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return f.IsNil()
	case reflect.String:
		return f.Len() == 0
	default:
		return f.IsZero()
	}
}

// GetQueryFunc parses an optional query parameter into a pointer of the
// requested kind. Absent parameters yield nil; malformed values are
// remembered and reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Errorf("query %s: expected int, got %q", key, raw))
			return nil
		}
		return &value
	case reflect.Bool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			c.queryErrors = append(c.queryErrors, fmt.Errorf("query %s: expected bool, got %q", key, raw))
			return nil
		}
		return &value
	case reflect.String:
		return &raw
	default:
		c.queryErrors = append(c.queryErrors, fmt.Errorf("query %s: unsupported kind %s", key, kind))
		return nil
	}
}

// GetParam parses a path parameter into a value of the requested kind.
// Failures are remembered and reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	raw := c.Param(key)

	switch kind {
	case reflect.Int:
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.paramErrors = append(c.paramErrors, fmt.Errorf("param %s: expected int, got %q", key, raw))
			return 0
		}
		return value
	case reflect.String:
		return raw
	default:
		c.paramErrors = append(c.paramErrors, fmt.Errorf("param %s: unsupported kind %s", key, kind))
		return nil
	}
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	return NewRequestError(c.queryErrors[0], http.StatusBadRequest)
}

func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	return NewRequestError(c.paramErrors[0], http.StatusBadRequest)
}

func (c *Context) Respond(data interface{}, statusCode int) error {
	c.JSON(statusCode, data)
	return nil
}

func (c *Context) RespondError(err error) error {
	if webErr := GetError(err); webErr != nil {
		c.JSON(webErr.Status, map[string]interface{}{
			"error":  webErr.Err.Error(),
			"fields": webErr.Fields,
			"status": false,
		})
		return nil
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  err.Error(),
		"status": false,
	})
	return nil
}
