// Package repositories persists models in MongoDB or, through gorm, in any
// of the supported SQL databases. Both backends satisfy the same interfaces
// so services never see which one is configured.
package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Field names one persisted attribute in both backends.
type Field struct {
	Doc    string // MongoDB document key
	Column string // SQL column
}

var (
	UserName  = Field{Doc: "name", Column: "name"}
	UserEmail = Field{Doc: "email", Column: "email"}
	UserPhone = Field{Doc: "phone", Column: "phone"}

	CategoryName        = Field{Doc: "name", Column: "name"}
	CategoryDescription = Field{Doc: "description", Column: "description"}

	ProductName       = Field{Doc: "productName", Column: "product_name"}
	ProductCategoryID = Field{Doc: "categoryId", Column: "category_id"}
	ProductPrice      = Field{Doc: "price", Column: "price"}
	ProductStatus     = Field{Doc: "status", Column: "status"}

	OrderUserID = Field{Doc: "userId", Column: "user_id"}
)

// Changes is a partial update: only the listed fields are overwritten.
type Changes map[Field]interface{}

// ListQuery selects one page of records, newest first.
type ListQuery struct {
	Page   int
	Limit  int
	Search string

	// RefIDs widens a search: records whose reference field holds one of
	// these IDs match too. Products use it for category-name search.
	RefIDs []string
}

type Repository[T any] interface {
	Create(ctx context.Context, rec *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	FindByIDs(ctx context.Context, ids []string) ([]T, error)
	Exists(ctx context.Context, field Field, value interface{}) (bool, error)
	List(ctx context.Context, q ListQuery) ([]T, orm.Pagination, error)
	// SearchIDs returns the IDs of every record matching term.
	SearchIDs(ctx context.Context, term string) ([]string, error)
	Update(ctx context.Context, id string, changes Changes) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Repository[models.Order]
	SumTotalAmount(ctx context.Context) (float64, error)
}

// record is satisfied by pointers to every model, giving generic code
// access to the embedded Base.
type record[T any] interface {
	*T
	Meta() *models.Base
}

// schema describes how one model is stored and searched.
type schema struct {
	name    string  // collection and table
	search  []Field // text fields matched by ListQuery.Search
	numeric []Field // numbers matched through their decimal text
	ref     *Field  // field compared against ListQuery.RefIDs
}

var (
	userSchema = schema{
		name:   "users",
		search: []Field{UserName, UserEmail, UserPhone},
	}
	categorySchema = schema{
		name:   "categories",
		search: []Field{CategoryName, CategoryDescription},
	}
	productSchema = schema{
		name:    "products",
		search:  []Field{ProductName},
		numeric: []Field{ProductPrice},
		ref:     &ProductCategoryID,
	}
	orderSchema = schema{
		name:   "orders",
		search: []Field{OrderUserID},
	}
)

// stamp assigns identity and timestamps to a record about to be inserted.
// Times are kept at millisecond precision, the resolution MongoDB stores.
func stamp(b *models.Base, id string) {
	now := Now()
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Now is the store clock.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Store groups the repositories of one backend.
type Store struct {
	Users      Repository[models.User]
	Categories Repository[models.Category]
	Products   Repository[models.Product]
	Orders     OrderRepository

	backend string
	ping    func(context.Context) error
	close   func(context.Context) error
}

// Backend is "mongo" or "sql".
func (s *Store) Backend() string { return s.backend }

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }
