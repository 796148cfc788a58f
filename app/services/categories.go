package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

type CreateCategoryInput struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"        validate:"nullable,required"`
	Description *string `json:"description" validate:"nullable,required"`
}

type CategoryService struct {
	catalog[models.Category]
}

func NewCategoryService(store *repositories.Store) *CategoryService {
	return &CategoryService{catalog[models.Category]{
		repo:      store.Categories,
		entity:    "Category",
		unique:    repositories.CategoryName,
		duplicate: "Category with this name already exists",
	}}
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	in.Name, in.Description = strings.TrimSpace(in.Name), strings.TrimSpace(in.Description)
	if err := check(in); err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.create(ctx, category, category.Name); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, p ListParams) ([]models.Category, orm.Pagination, error) {
	return s.list(ctx, p.query())
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.get(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, id string, in UpdateCategoryInput) (*models.Category, error) {
	in.Name, in.Description = trim(in.Name), trim(in.Description)
	if err := check(in); err != nil {
		return nil, err
	}

	changes := repositories.Changes{}
	set(changes, repositories.CategoryName, in.Name)
	set(changes, repositories.CategoryDescription, in.Description)
	return s.update(ctx, id, changes)
}

func (s *CategoryService) Delete(ctx context.Context, id string) (*models.Category, error) {
	return s.delete(ctx, id)
}
