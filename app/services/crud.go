// Package services holds the business rules of the admin API: input
// validation, uniqueness pre-checks, order arithmetic and dashboard
// aggregation. Services speak repositories and return the typed errors in
// errors.go.
package services

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
	"github.com/shashiranjanraj/backoffice/pkg/validate"
)

// ListParams are the query parameters shared by every list endpoint.
// Non-positive values fall back to page 1 and 10 per page.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) query() repositories.ListQuery {
	return repositories.ListQuery{Page: p.Page, Limit: p.Limit, Search: p.Search}
}

// catalog implements the operations every catalog entity shares.
type catalog[T any] struct {
	repo      repositories.Repository[T]
	entity    string // "User"
	unique    repositories.Field
	duplicate string // conflict message
}

func (c catalog[T]) create(ctx context.Context, rec *T, uniqueValue string) error {
	exists, err := c.repo.Exists(ctx, c.unique, uniqueValue)
	if err != nil {
		return c.fail("exists", err)
	}
	if exists {
		return &ConflictError{Message: c.duplicate}
	}

	// The pre-check can race; the unique index has the last word.
	return c.fail("create", c.repo.Create(ctx, rec))
}

func (c catalog[T]) get(ctx context.Context, id string) (*T, error) {
	rec, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, c.fail("find", err)
	}
	return rec, nil
}

func (c catalog[T]) list(ctx context.Context, q repositories.ListQuery) ([]T, orm.Pagination, error) {
	items, page, err := c.repo.List(ctx, q)
	if err != nil {
		return nil, orm.Pagination{}, c.fail("list", err)
	}
	return items, page, nil
}

func (c catalog[T]) update(ctx context.Context, id string, changes repositories.Changes) (*T, error) {
	if len(changes) == 0 {
		return nil, &ValidationError{Message: "No fields to update"}
	}

	rec, err := c.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, c.fail("update", err)
	}
	return rec, nil
}

func (c catalog[T]) delete(ctx context.Context, id string) (*T, error) {
	rec, err := c.repo.Delete(ctx, id)
	if err != nil {
		return nil, c.fail("delete", err)
	}
	return rec, nil
}

// fail maps a repository error onto the service error types. nil stays nil.
func (c catalog[T]) fail(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return &NotFoundError{Entity: c.entity}
	case errors.Is(err, repositories.ErrDuplicate):
		return &ConflictError{Message: c.duplicate}
	default:
		return &StoreError{Op: c.entity + " " + op, Err: err}
	}
}

// check validates v against its struct tags.
func check(v interface{}) error {
	first, failed := validate.First(v)
	if !failed {
		return nil
	}
	return &ValidationError{Field: first.Field, Message: first.Message, Fields: validate.Struct(v)}
}

// set adds f to changes when the patch supplied a value for it.
func set[V any](changes repositories.Changes, f repositories.Field, v *V) {
	if v != nil {
		changes[f] = *v
	}
}
