package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

type CreateUserInput struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name  *string `json:"name"  validate:"nullable,required"`
	Email *string `json:"email" validate:"nullable,required,email"`
	Phone *string `json:"phone" validate:"nullable,required"`
}

type UserService struct {
	catalog[models.User]
}

func NewUserService(store *repositories.Store) *UserService {
	return &UserService{catalog[models.User]{
		repo:      store.Users,
		entity:    "User",
		unique:    repositories.UserEmail,
		duplicate: "User with this email already exists",
	}}
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Name, in.Email, in.Phone = strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), strings.TrimSpace(in.Phone)
	if err := check(in); err != nil {
		return nil, err
	}

	user := &models.User{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := s.create(ctx, user, user.Email); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, p ListParams) ([]models.User, orm.Pagination, error) {
	return s.list(ctx, p.query())
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.get(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*models.User, error) {
	in.Name, in.Email, in.Phone = trim(in.Name), trim(in.Email), trim(in.Phone)
	if err := check(in); err != nil {
		return nil, err
	}

	changes := repositories.Changes{}
	set(changes, repositories.UserName, in.Name)
	set(changes, repositories.UserEmail, in.Email)
	set(changes, repositories.UserPhone, in.Phone)
	return s.update(ctx, id, changes)
}

func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	return s.delete(ctx, id)
}

func trim(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
