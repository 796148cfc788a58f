package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/collection"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

type CreateProductInput struct {
	ProductName string   `json:"productName" validate:"required"`
	CategoryID  string   `json:"categoryId"  validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Status      string   `json:"status"      validate:"required,in=active,inactive"`
}

type UpdateProductInput struct {
	ProductName *string  `json:"productName" validate:"nullable,required"`
	CategoryID  *string  `json:"categoryId"  validate:"nullable,required"`
	Price       *float64 `json:"price"       validate:"nullable,gte=0"`
	Status      *string  `json:"status"      validate:"nullable,required,in=active,inactive"`
}

// Options switch optional business rules.
type Options struct {
	// ReferenceChecks requires products and orders to point at existing
	// records.
	ReferenceChecks bool
}

type ProductService struct {
	catalog[models.Product]
	categories repositories.Repository[models.Category]
	opts       Options
}

func NewProductService(store *repositories.Store, opts Options) *ProductService {
	return &ProductService{
		catalog: catalog[models.Product]{
			repo:      store.Products,
			entity:    "Product",
			unique:    repositories.ProductName,
			duplicate: "Product with this name already exists",
		},
		categories: store.Categories,
		opts:       opts,
	}
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	in.ProductName, in.CategoryID, in.Status = strings.TrimSpace(in.ProductName), strings.TrimSpace(in.CategoryID), strings.TrimSpace(in.Status)
	if err := check(in); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ProductName: in.ProductName,
		CategoryID:  in.CategoryID,
		Price:       *in.Price,
		Status:      in.Status,
	}
	if err := s.create(ctx, product, product.ProductName); err != nil {
		return nil, err
	}
	return product, nil
}

// List also matches products whose category name contains the search term,
// and resolves each product's category.
func (s *ProductService) List(ctx context.Context, p ListParams) ([]models.Product, orm.Pagination, error) {
	q := p.query()
	if q.Search != "" {
		ids, err := s.categories.SearchIDs(ctx, q.Search)
		if err != nil {
			return nil, orm.Pagination{}, &StoreError{Op: "Category search", Err: err}
		}
		q.RefIDs = ids
	}

	products, page, err := s.list(ctx, q)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	if err := s.attachCategories(ctx, products); err != nil {
		return nil, orm.Pagination{}, err
	}
	return products, page, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	one := []models.Product{*product}
	if err := s.attachCategories(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	in.ProductName, in.CategoryID, in.Status = trim(in.ProductName), trim(in.CategoryID), trim(in.Status)
	if err := check(in); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	changes := repositories.Changes{}
	set(changes, repositories.ProductName, in.ProductName)
	set(changes, repositories.ProductCategoryID, in.CategoryID)
	set(changes, repositories.ProductPrice, in.Price)
	set(changes, repositories.ProductStatus, in.Status)
	return s.update(ctx, id, changes)
}

func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	return s.delete(ctx, id)
}

func (s *ProductService) checkCategory(ctx context.Context, id string) error {
	if !s.opts.ReferenceChecks {
		return nil
	}

	_, err := s.categories.FindByID(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return &ValidationError{Field: "categoryId", Message: "Referenced category does not exist"}
	default:
		return &StoreError{Op: "Category find", Err: err}
	}
}

// attachCategories fills Product.Category for every product whose
// category still exists.
func (s *ProductService) attachCategories(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := collection.Unique(collection.Map(products, func(p models.Product) string { return p.CategoryID }))

	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return &StoreError{Op: "Category find", Err: err}
	}

	byID := collection.KeyBy(categories, func(c models.Category) string { return c.ID })
	for i := range products {
		if c, ok := byID[products[i].CategoryID]; ok {
			products[i].Category = &models.CategoryRef{ID: c.ID, Name: c.Name}
		}
	}
	return nil
}
