package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/event"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

// EventOrderPlaced fires with an OrderPlaced payload after an order is
// stored.
const EventOrderPlaced = "order.placed"

type OrderPlaced struct {
	Ctx   context.Context
	Order *models.Order
}

// CreateOrderInput is decoded loosely so that a value of the wrong JSON
// type gets the same field message as a missing one.
type CreateOrderInput struct {
	UserID      interface{} `json:"userId"`
	ProductID   interface{} `json:"productId"`
	Quantity    interface{} `json:"quantity"`
	TotalAmount interface{} `json:"totalAmount"`
}

// Dashboard is the aggregate snapshot served by GET /dashboard.
type Dashboard struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

type OrderService struct {
	catalog[models.Order]
	orders   repositories.OrderRepository
	users    repositories.Repository[models.User]
	products repositories.Repository[models.Product]
	opts     Options
}

func NewOrderService(store *repositories.Store, opts Options) *OrderService {
	return &OrderService{
		catalog:  catalog[models.Order]{repo: store.Orders, entity: "Order"},
		orders:   store.Orders,
		users:    store.Users,
		products: store.Products,
		opts:     opts,
	}
}

// Create places a single-line order. Fields are checked in the order
// userId, productId, quantity, totalAmount and the first failure is
// returned. The line's unit price is totalAmount / quantity.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	userID, ok := nonBlank(in.UserID)
	if !ok {
		return nil, &ValidationError{Field: "userId", Message: "Missing required field: userId"}
	}
	productID, ok := nonBlank(in.ProductID)
	if !ok {
		return nil, &ValidationError{Field: "productId", Message: "Missing required field: productId"}
	}
	quantity, ok := in.Quantity.(float64)
	if !ok || quantity < 1 || quantity != math.Trunc(quantity) || quantity > math.MaxInt32 {
		return nil, &ValidationError{Field: "quantity", Message: "Missing or invalid required field: quantity"}
	}
	total, ok := in.TotalAmount.(float64)
	if !ok || total <= 0 {
		return nil, &ValidationError{Field: "totalAmount", Message: "Missing or invalid required field: totalAmount"}
	}

	if s.opts.ReferenceChecks {
		if err := checkRef(ctx, s.users.FindByID, userID, "userId", "Referenced user does not exist"); err != nil {
			return nil, err
		}
		if err := checkRef(ctx, s.products.FindByID, productID, "productId", "Referenced product does not exist"); err != nil {
			return nil, err
		}
	}

	order := &models.Order{
		UserID: userID,
		Items: []models.OrderItem{{
			ProductID: productID,
			Quantity:  int(quantity),
			UnitPrice: total / quantity,
		}},
		TotalAmount: total,
		OrderDate:   repositories.Now(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, s.fail("create", err)
	}

	event.Fire(EventOrderPlaced, OrderPlaced{Ctx: ctx, Order: order})
	return order, nil
}

func (s *OrderService) List(ctx context.Context, p ListParams) ([]models.Order, orm.Pagination, error) {
	return s.list(ctx, p.query())
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.get(ctx, id)
}

// Dashboard reads the four aggregates concurrently. Nothing is cached.
func (s *OrderService) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TotalUsers, err = s.users.Count(gctx)
		return wrapStore("User count", err)
	})
	g.Go(func() (err error) {
		d.TotalProducts, err = s.products.Count(gctx)
		return wrapStore("Product count", err)
	})
	g.Go(func() (err error) {
		d.TotalOrders, err = s.orders.Count(gctx)
		return wrapStore("Order count", err)
	})
	g.Go(func() (err error) {
		d.TotalRevenue, err = s.orders.SumTotalAmount(gctx)
		return wrapStore("Order revenue", err)
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// checkRef turns a missing referenced record into a ValidationError.
func checkRef[T any](ctx context.Context, find func(context.Context, string) (*T, error), id, field, msg string) error {
	_, err := find(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return &ValidationError{Field: field, Message: msg}
	default:
		return &StoreError{Op: "reference " + field, Err: err}
	}
}

func wrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func nonBlank(v interface{}) (string, bool) {
	s, ok := v.(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}
