package controllers

import (
	"context"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/backoffice/app/services"
	gql "github.com/shashiranjanraj/backoffice/pkg/graphql"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

// GraphQLController exposes the read side of the admin API as one GraphQL
// endpoint: dashboard totals plus list and lookup queries per entity.
type GraphQLController struct {
	schema graphql.Schema
}

type graphQLServices struct {
	users      *services.UserService
	categories *services.CategoryService
	products   *services.ProductService
	orders     *services.OrderService
}

func NewGraphQLController(
	users *services.UserService,
	categories *services.CategoryService,
	products *services.ProductService,
	orders *services.OrderService,
) (*GraphQLController, error) {
	svc := graphQLServices{users: users, categories: categories, products: products, orders: orders}

	schema, err := gql.NewSchema(svc.rootQuery())
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

func (gc *GraphQLController) Handler() http.HandlerFunc {
	return gql.Handler(gc.schema)
}

// idField maps the record "_id" key onto a GraphQL-friendly "id".
var idField = &graphql.Field{
	Type: graphql.NewNonNull(graphql.ID),
	Resolve: func(p graphql.ResolveParams) (interface{}, error) {
		if m, ok := p.Source.(map[string]interface{}); ok {
			return m["_id"], nil
		}
		return nil, nil
	},
}

func object(name string, fields graphql.Fields) *graphql.Object {
	fields["id"] = idField
	fields["createdAt"] = &graphql.Field{Type: graphql.String}
	fields["updatedAt"] = &graphql.Field{Type: graphql.String}
	return graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
}

var (
	userType = object("User", graphql.Fields{
		"name":  &graphql.Field{Type: graphql.String},
		"email": &graphql.Field{Type: graphql.String},
		"phone": &graphql.Field{Type: graphql.String},
	})

	categoryType = object("Category", graphql.Fields{
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
	})

	categoryRefType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryRef",
		Fields: graphql.Fields{
			"id":   idField,
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	productType = object("Product", graphql.Fields{
		"productName": &graphql.Field{Type: graphql.String},
		"categoryId":  &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"status":      &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: categoryRefType},
	})

	orderItemType = graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"productId": &graphql.Field{Type: graphql.String},
			"quantity":  &graphql.Field{Type: graphql.Int},
			"unitPrice": &graphql.Field{Type: graphql.Float},
		},
	})

	orderType = object("Order", graphql.Fields{
		"userId":      &graphql.Field{Type: graphql.String},
		"items":       &graphql.Field{Type: graphql.NewList(orderItemType)},
		"totalAmount": &graphql.Field{Type: graphql.Float},
		"orderDate":   &graphql.Field{Type: graphql.String},
	})

	paginationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Pagination",
		Fields: graphql.Fields{
			"currentPage": &graphql.Field{Type: graphql.Int},
			"totalPages":  &graphql.Field{Type: graphql.Int},
			"total":       &graphql.Field{Type: graphql.Int},
			"hasNext":     &graphql.Field{Type: graphql.Boolean},
			"hasPrev":     &graphql.Field{Type: graphql.Boolean},
			"limit":       &graphql.Field{Type: graphql.Int},
		},
	})

	dashboardType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Dashboard",
		Fields: graphql.Fields{
			"totalUsers":    &graphql.Field{Type: graphql.Int},
			"totalProducts": &graphql.Field{Type: graphql.Int},
			"totalOrders":   &graphql.Field{Type: graphql.Int},
			"totalRevenue":  &graphql.Field{Type: graphql.Float},
		},
	})

	listArgs = graphql.FieldConfigArgument{
		"page":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: orm.DefaultPage},
		"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: orm.DefaultLimit},
		"search": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
	}

	idArgs = graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
)

func pageType(name string, item *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewList(item)},
			"pagination": &graphql.Field{Type: paginationType},
		},
	})
}

// listResolver adapts a service List method to a paged GraphQL field.
func listResolver[T any](op string, list func(context.Context, services.ListParams) ([]T, orm.Pagination, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		page, _ := p.Args["page"].(int)
		limit, _ := p.Args["limit"].(int)
		search, _ := p.Args["search"].(string)

		items, pagination, err := list(p.Context, services.ListParams{Page: page, Limit: limit, Search: search})
		if err != nil {
			return nil, publicError(p.Context, op, err)
		}
		return gql.Plain(map[string]interface{}{"items": items, "pagination": pagination})
	}
}

// getResolver adapts a service Get method to a lookup field. Unknown ids
// resolve to null.
func getResolver[T any](op string, get func(context.Context, string) (*T, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id, _ := p.Args["id"].(string)
		rec, err := get(p.Context, id)
		if err != nil {
			if isNotFound(err) {
				return nil, nil
			}
			return nil, publicError(p.Context, op, err)
		}
		return gql.Plain(rec)
	}
}

func (s graphQLServices) rootQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"dashboard": &graphql.Field{
				Type: dashboardType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, err := s.orders.Dashboard(p.Context)
					if err != nil {
						return nil, publicError(p.Context, "dashboard", err)
					}
					return gql.Plain(d)
				},
			},
			"users":      {Type: pageType("UserPage", userType), Args: listArgs, Resolve: listResolver("users", s.users.List)},
			"user":       {Type: userType, Args: idArgs, Resolve: getResolver("user", s.users.Get)},
			"categories": {Type: pageType("CategoryPage", categoryType), Args: listArgs, Resolve: listResolver("categories", s.categories.List)},
			"category":   {Type: categoryType, Args: idArgs, Resolve: getResolver("category", s.categories.Get)},
			"products":   {Type: pageType("ProductPage", productType), Args: listArgs, Resolve: listResolver("products", s.products.List)},
			"product":    {Type: productType, Args: idArgs, Resolve: getResolver("product", s.products.Get)},
			"orders":     {Type: pageType("OrderPage", orderType), Args: listArgs, Resolve: listResolver("orders", s.orders.List)},
			"order":      {Type: orderType, Args: idArgs, Resolve: getResolver("order", s.orders.Get)},
		},
	})
}
