// Package controllers adapts HTTP requests to service calls and service
// results to the JSON bodies of the admin API.
package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/logger"
)

// errInternal is what callers see in place of a store failure.
var errInternal = errors.New("Internal Server Error")

// fail writes the response for a service error. Store failures are logged
// with the request id and hidden behind a generic 500.
func fail(c *ctx.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		if len(verr.Fields) > 0 {
			c.FieldErrors(verr.Message, verr.Fields)
			return
		}
		c.Error(http.StatusBadRequest, verr.Message)
	case errors.Is(err, services.ErrConflict):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	default:
		c.Log().Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// publicError is fail for callers without a response writer. Validation,
// conflict and not-found errors pass through; anything else is logged and
// replaced by errInternal.
func publicError(c context.Context, op string, err error) error {
	if errors.Is(err, services.ErrValidation) || errors.Is(err, services.ErrConflict) || errors.Is(err, services.ErrNotFound) {
		return err
	}
	logger.WithCtx(c).Error("request failed", "op", op, "error", err)
	return errInternal
}

// Locator resolves the URL of the named route showing the record id, or
// returns "" when it cannot.
type Locator func(route, id string) string

// locate sets the Location header of a create reply.
func (l Locator) locate(c *ctx.Context, route, id string) {
	if l == nil {
		return
	}
	if u := l(route, id); u != "" {
		c.W.Header().Set("Location", u)
	}
}

func listParams(c *ctx.Context) services.ListParams {
	return services.ListParams{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrNotFound)
}
