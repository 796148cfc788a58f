package routes

import (
	"github.com/shashiranjanraj/backoffice/app/controllers"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/pkg/ctx"
	"github.com/shashiranjanraj/backoffice/pkg/router"
)

// Prefix is where the admin API is mounted.
const Prefix = "/api/admin"

// RegisterAPI mounts the admin API and the health probe on r.
func RegisterAPI(r *router.Router, store *repositories.Store, opts services.Options) error {
	userSvc := services.NewUserService(store)
	categorySvc := services.NewCategoryService(store)
	productSvc := services.NewProductService(store, opts)
	orderSvc := services.NewOrderService(store, opts)

	locate := func(route, id string) string {
		u, err := r.URL(route, map[string]string{"id": id})
		if err != nil {
			return ""
		}
		return u
	}

	userController := controllers.NewUserController(userSvc, locate)
	categoryController := controllers.NewCategoryController(categorySvc, locate)
	productController := controllers.NewProductController(productSvc, locate)
	orderController := controllers.NewOrderController(orderSvc, locate)
	healthController := controllers.NewHealthController(store)

	graphqlController, err := controllers.NewGraphQLController(userSvc, categorySvc, productSvc, orderSvc)
	if err != nil {
		return err
	}

	r.Get("/healthz", "health", ctx.Wrap(healthController.Check))

	api := r.Group(Prefix)

	api.Get("/users", "users.index", ctx.Wrap(userController.Index))
	api.Post("/users", "users.store", ctx.Wrap(userController.Store))
	api.Get("/users/{id}", "users.show", ctx.Wrap(userController.Show))
	api.Put("/users/{id}", "users.update", ctx.Wrap(userController.Update))
	api.Delete("/users/{id}", "users.destroy", ctx.Wrap(userController.Destroy))

	api.Get("/categories", "categories.index", ctx.Wrap(categoryController.Index))
	api.Post("/categories", "categories.store", ctx.Wrap(categoryController.Store))
	api.Get("/categories/{id}", "categories.show", ctx.Wrap(categoryController.Show))
	api.Put("/categories/{id}", "categories.update", ctx.Wrap(categoryController.Update))
	api.Delete("/categories/{id}", "categories.destroy", ctx.Wrap(categoryController.Destroy))

	api.Get("/products", "products.index", ctx.Wrap(productController.Index))
	api.Post("/products", "products.store", ctx.Wrap(productController.Store))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productController.Show))
	api.Put("/products/{id}", "products.update", ctx.Wrap(productController.Update))
	api.Delete("/products/{id}", "products.destroy", ctx.Wrap(productController.Destroy))

	api.Get("/orders", "orders.index", ctx.Wrap(orderController.Index))
	api.Post("/orders", "orders.store", ctx.Wrap(orderController.Store))
	api.Get("/orders/{id}", "orders.show", ctx.Wrap(orderController.Show))

	api.Get("/dashboard", "dashboard", ctx.Wrap(orderController.Dashboard))
	api.Post("/graphql", "graphql", graphqlController.Handler())

	return nil
}
