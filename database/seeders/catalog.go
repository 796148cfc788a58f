package seeders

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/app/services"
)

func init() {
	Register("users", seedUsers)
	Register("catalog", seedCatalog)
}

var sampleUsers = []services.CreateUserInput{
	{Name: "Asha Verma", Email: "asha@example.com", Phone: "+91 98765 43210"},
	{Name: "Rahul Mehta", Email: "rahul@example.com", Phone: "+91 91234 56789"},
	{Name: "Priya Nair", Email: "priya@example.com", Phone: "+91 99887 76655"},
}

type sampleProduct struct {
	name   string
	price  float64
	status string
}

var sampleCatalog = []struct {
	category services.CreateCategoryInput
	products []sampleProduct
}{
	{
		category: services.CreateCategoryInput{Name: "Pizza", Description: "Stone-baked pizzas"},
		products: []sampleProduct{
			{"Margherita", 249, "active"},
			{"Farmhouse", 349, "active"},
			{"Paneer Tikka Pizza", 399, "inactive"},
		},
	},
	{
		category: services.CreateCategoryInput{Name: "Drinks", Description: "Cold beverages"},
		products: []sampleProduct{
			{"Cola", 2.5, "active"},
			{"Lemon Iced Tea", 3.75, "active"},
		},
	},
	{
		category: services.CreateCategoryInput{Name: "Desserts", Description: "Sweet things"},
		products: []sampleProduct{
			{"Choco Lava Cake", 99, "active"},
		},
	},
}

func seedUsers(ctx context.Context, store *repositories.Store) error {
	users := services.NewUserService(store)
	for _, in := range sampleUsers {
		if _, err := users.Create(ctx, in); skipExisting(err) != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, store *repositories.Store) error {
	categories := services.NewCategoryService(store)
	products := services.NewProductService(store, services.Options{ReferenceChecks: true})

	for _, group := range sampleCatalog {
		categoryID, err := ensureCategory(ctx, categories, group.category)
		if err != nil {
			return err
		}

		for _, p := range group.products {
			price := p.price
			_, err := products.Create(ctx, services.CreateProductInput{
				ProductName: p.name,
				CategoryID:  categoryID,
				Price:       &price,
				Status:      p.status,
			})
			if skipExisting(err) != nil {
				return err
			}
		}
	}
	return nil
}

// ensureCategory creates in, or finds the existing category of that name.
func ensureCategory(ctx context.Context, categories *services.CategoryService, in services.CreateCategoryInput) (string, error) {
	created, err := categories.Create(ctx, in)
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, services.ErrConflict) {
		return "", err
	}

	found, _, err := categories.List(ctx, services.ListParams{Page: 1, Limit: 50, Search: in.Name})
	if err != nil {
		return "", err
	}
	for _, c := range found {
		if strings.EqualFold(c.Name, in.Name) {
			return c.ID, nil
		}
	}
	return "", errors.New("category " + in.Name + " exists but could not be found")
}
