package kernel_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/services"
	"github.com/shashiranjanraj/backoffice/internal/kernel"
	"github.com/shashiranjanraj/backoffice/pkg/middleware"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
	"github.com/shashiranjanraj/backoffice/pkg/testkit"
)

const api = "/api/admin"

func newHandler(t *testing.T, opts kernel.Options) http.Handler {
	t.Helper()
	if opts.Store == nil {
		opts.Store = testkit.NewStore(t)
	}
	if opts.CORS.AllowedOrigins == nil {
		opts.CORS = middleware.CORSOptions{
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}
	}
	k, err := kernel.NewHTTPKernel(opts)
	require.NoError(t, err)
	return k.Handler()
}

func createID(t *testing.T, h http.Handler, path, key string, body interface{}) string {
	t.Helper()
	resp := testkit.Do(t, h, http.MethodPost, api+path, body)
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, resp.Code, "%s", resp.Raw)

	var rec struct {
		ID string `json:"_id"`
	}
	resp.Decode(t, key, &rec)
	require.Len(t, rec.ID, 24)
	assert.Equal(t, api+path+"/"+rec.ID, resp.Header.Get("Location"))
	return rec.ID
}

func TestUserLifecycle(t *testing.T) {
	h := newHandler(t, kernel.Options{})
	user := map[string]string{"name": "Asha", "email": "asha@example.com", "phone": "555-0100"}

	id := createID(t, h, "/users", "user", user)

	testkit.Run(t, h, []testkit.Scenario{
		{
			Name:         "duplicate email is a conflict",
			Method:       http.MethodPost,
			URL:          api + "/users",
			Body:         map[string]string{"name": "Other", "email": "asha@example.com", "phone": "1"},
			ExpectedCode: http.StatusConflict,
			Expected:     map[string]interface{}{"message": "User with this email already exists", "status": float64(409)},
		},
		{
			Name:         "missing name is rejected first",
			Method:       http.MethodPost,
			URL:          api + "/users",
			Body:         map[string]string{"email": "x"},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "The name field is required."},
		},
		{
			Name:         "unknown field is rejected",
			Method:       http.MethodPost,
			URL:          api + "/users",
			Body:         map[string]string{"name": "A", "email": "a@example.com", "phone": "1", "role": "admin"},
			ExpectedCode: http.StatusBadRequest,
		},
		{
			Name:         "malformed json",
			Method:       http.MethodPost,
			URL:          api + "/users",
			Body:         `{"name":`,
			ExpectedCode: http.StatusBadRequest,
		},
		{
			Name:         "show",
			Method:       http.MethodGet,
			URL:          api + "/users/" + id,
			ExpectedCode: http.StatusOK,
			Expected:     map[string]interface{}{"message": "User fetched successfully"},
		},
		{
			Name:         "partial update",
			Method:       http.MethodPut,
			URL:          api + "/users/" + id,
			Body:         map[string]string{"phone": "555-0199"},
			ExpectedCode: http.StatusOK,
			Expected:     map[string]interface{}{"message": "User updated successfully"},
		},
		{
			Name:         "empty update",
			Method:       http.MethodPut,
			URL:          api + "/users/" + id,
			Body:         map[string]string{},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "No fields to update"},
		},
		{
			Name:         "delete",
			Method:       http.MethodDelete,
			URL:          api + "/users/" + id,
			ExpectedCode: http.StatusOK,
			Expected:     map[string]interface{}{"message": "User deleted successfully"},
		},
		{
			Name:         "update after delete",
			Method:       http.MethodPut,
			URL:          api + "/users/" + id,
			Body:         map[string]string{"phone": "1"},
			ExpectedCode: http.StatusNotFound,
			Expected:     map[string]interface{}{"message": "User not found"},
		},
		{
			Name:         "delete twice",
			Method:       http.MethodDelete,
			URL:          api + "/users/" + id,
			ExpectedCode: http.StatusNotFound,
		},
	})
}

func TestWrappedBodies(t *testing.T) {
	h := newHandler(t, kernel.Options{})

	resp := testkit.Do(t, h, http.MethodPost, api+"/categories", map[string]interface{}{
		"categoryData": map[string]string{"name": "Pizza", "description": "Stone-baked"},
	})
	require.Equal(t, http.StatusOK, resp.Code, "%s", resp.Raw)
	assert.Equal(t, "Category added successfully", resp.Message())

	var c models.Category
	resp.Decode(t, "category", &c)
	assert.Equal(t, "Pizza", c.Name)

	resp = testkit.Do(t, h, http.MethodPost, api+"/categories", map[string]interface{}{
		"categoryData": map[string]string{"name": "pizza", "description": "dup by case"},
	})
	assert.Equal(t, http.StatusOK, resp.Code, "uniqueness is exact-match: %s", resp.Raw)
}

func TestListPagination(t *testing.T) {
	maxInt := strconv.Itoa(math.MaxInt)
	h := newHandler(t, kernel.Options{})
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		createID(t, h, "/categories", "category", map[string]string{"name": name, "description": "d"})
	}

	cases := []struct {
		query string
		want  orm.Pagination
		count int
	}{
		{"", orm.Pagination{CurrentPage: 1, TotalPages: 1, Total: 3, Limit: 10}, 3},
		{"?page=2&limit=2", orm.Pagination{CurrentPage: 2, TotalPages: 2, Total: 3, HasPrev: true, Limit: 2}, 1},
		{"?page=1&limit=2", orm.Pagination{CurrentPage: 1, TotalPages: 2, Total: 3, HasNext: true, Limit: 2}, 2},
		{"?page=0&limit=-5", orm.Pagination{CurrentPage: 1, TotalPages: 1, Total: 3, Limit: 10}, 3},
		{"?page=abc&limit=xyz", orm.Pagination{CurrentPage: 1, TotalPages: 1, Total: 3, Limit: 10}, 3},
		{"?page=9", orm.Pagination{CurrentPage: 9, TotalPages: 1, Total: 3, HasPrev: true, Limit: 10}, 0},
		{"?search=RAV", orm.Pagination{CurrentPage: 1, TotalPages: 1, Total: 1, Limit: 10}, 1},
		{"?search=nothing", orm.Pagination{CurrentPage: 1, TotalPages: 0, Total: 0, Limit: 10}, 0},
		{"?page=" + maxInt + "&limit=10", orm.Pagination{CurrentPage: math.MaxInt, TotalPages: 1, Total: 3, HasPrev: true, Limit: 10}, 0},
		{"?page=2&limit=" + maxInt, orm.Pagination{CurrentPage: 2, TotalPages: 1, Total: 3, HasPrev: true, Limit: math.MaxInt}, 0},
		{"?limit=" + maxInt, orm.Pagination{CurrentPage: 1, TotalPages: 1, Total: 3, Limit: math.MaxInt}, 3},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			resp := testkit.Do(t, h, http.MethodGet, api+"/categories"+tc.query, nil)
			require.Equal(t, http.StatusOK, resp.Code)

			var page orm.Pagination
			resp.Decode(t, "pagination", &page)
			assert.Equal(t, tc.want, page)

			var items []models.Category
			resp.Decode(t, "categories", &items)
			assert.NotNil(t, items)
			assert.Len(t, items, tc.count)
		})
	}

	resp := testkit.Do(t, h, http.MethodGet, api+"/categories", nil)
	var items []models.Category
	resp.Decode(t, "categories", &items)
	require.Len(t, items, 3)
	assert.Equal(t, "Charlie", items[0].Name, "newest first")
}

func TestOrderValidationOrder(t *testing.T) {
	h := newHandler(t, kernel.Options{})

	testkit.Run(t, h, []testkit.Scenario{
		{
			Name:         "everything missing reports userId",
			Method:       http.MethodPost,
			URL:          api + "/orders",
			Body:         map[string]interface{}{},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "Missing required field: userId"},
		},
		{
			Name:         "productId next",
			Method:       http.MethodPost,
			URL:          api + "/orders",
			Body:         map[string]interface{}{"userId": "u1", "quantity": 0},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "Missing required field: productId"},
		},
		{
			Name:         "zero quantity",
			Method:       http.MethodPost,
			URL:          api + "/orders",
			Body:         map[string]interface{}{"userId": "u1", "productId": "p1", "quantity": 0, "totalAmount": 10},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "Missing or invalid required field: quantity"},
		},
		{
			Name:         "non-positive total",
			Method:       http.MethodPost,
			URL:          api + "/orders",
			Body:         map[string]interface{}{"userId": "u1", "productId": "p1", "quantity": 1, "totalAmount": -1},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "Missing or invalid required field: totalAmount"},
		},
	})
}

func TestDrinksScenario(t *testing.T) {
	h := newHandler(t, kernel.Options{})

	resp := testkit.Do(t, h, http.MethodGet, api+"/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(0), resp.Body["totalOrders"])
	assert.Equal(t, float64(0), resp.Body["totalRevenue"])

	catID := createID(t, h, "/categories", "category", map[string]string{"name": "Drinks", "description": "Cold"})
	productID := createID(t, h, "/products", "product", map[string]interface{}{
		"productData": map[string]interface{}{"productName": "Cola", "categoryId": catID, "price": 2.5, "status": "active"},
	})
	userID := createID(t, h, "/users", "user", map[string]string{"name": "Ravi", "email": "ravi@example.com", "phone": "1"})

	resp = testkit.Do(t, h, http.MethodPost, api+"/orders", map[string]interface{}{
		"orderData": map[string]interface{}{"userId": userID, "productId": productID, "quantity": 2, "totalAmount": 5.0},
	})
	require.Equal(t, http.StatusCreated, resp.Code, "%s", resp.Raw)

	var order models.Order
	resp.Decode(t, "order", &order)
	require.Len(t, order.Items, 1)
	assert.Equal(t, productID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 2.5, order.Items[0].UnitPrice)
	assert.False(t, order.OrderDate.IsZero())

	resp = testkit.Do(t, h, http.MethodGet, api+"/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	testkit.Run(t, h, []testkit.Scenario{
		{
			Name:         "dashboard totals",
			Method:       http.MethodGet,
			URL:          api + "/dashboard",
			ExpectedCode: http.StatusOK,
			Expected: map[string]interface{}{
				"message":       "Dashboard fetched successfully",
				"totalUsers":    float64(1),
				"totalProducts": float64(1),
				"totalOrders":   float64(1),
				"totalRevenue":  5.0,
			},
		},
		{
			Name:         "duplicate product",
			Method:       http.MethodPost,
			URL:          api + "/products",
			Body:         map[string]interface{}{"productName": "Cola", "categoryId": catID, "price": 1, "status": "active"},
			ExpectedCode: http.StatusConflict,
			Expected:     map[string]interface{}{"message": "Product with this name already exists"},
		},
		{
			Name:         "bad status",
			Method:       http.MethodPost,
			URL:          api + "/products",
			Body:         map[string]interface{}{"productName": "Fanta", "categoryId": catID, "price": 1, "status": "archived"},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "The selected status is invalid."},
		},
	})

	for _, term := range []string{"drinks", "COLA", "2.5"} {
		resp := testkit.Do(t, h, http.MethodGet, api+"/products?search="+term, nil)
		var products []models.Product
		resp.Decode(t, "products", &products)
		require.Len(t, products, 1, "search %q", term)
		require.NotNil(t, products[0].Category)
		assert.Equal(t, "Drinks", products[0].Category.Name)
	}
}

func TestQuantityArithmetic(t *testing.T) {
	h := newHandler(t, kernel.Options{})

	resp := testkit.Do(t, h, http.MethodPost, api+"/orders", map[string]interface{}{
		"userId": "u1", "productId": "p1", "quantity": 3, "totalAmount": 30,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "%s", resp.Raw)

	var order models.Order
	resp.Decode(t, "order", &order)
	assert.Equal(t, 10.0, order.Items[0].UnitPrice)
	assert.Equal(t, 30.0, order.TotalAmount)
}

func TestReferenceChecks(t *testing.T) {
	h := newHandler(t, kernel.Options{Services: services.Options{ReferenceChecks: true}})

	testkit.Run(t, h, []testkit.Scenario{
		{
			Name:         "unknown category",
			Method:       http.MethodPost,
			URL:          api + "/products",
			Body:         map[string]interface{}{"productName": "Cola", "categoryId": "65f000000000000000000000", "price": 1, "status": "active"},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "Referenced category does not exist"},
		},
		{
			Name:         "unknown user",
			Method:       http.MethodPost,
			URL:          api + "/orders",
			Body:         map[string]interface{}{"userId": "nobody", "productId": "p1", "quantity": 1, "totalAmount": 1},
			ExpectedCode: http.StatusBadRequest,
			Expected:     map[string]interface{}{"message": "Referenced user does not exist"},
		},
	})
}

func TestGraphQL(t *testing.T) {
	h := newHandler(t, kernel.Options{})
	createID(t, h, "/users", "user", map[string]string{"name": "Asha", "email": "asha@example.com", "phone": "1"})

	resp := testkit.Do(t, h, http.MethodPost, api+"/graphql", map[string]string{
		"query": `{ dashboard { totalUsers totalRevenue } users(limit: 5) { items { id name } pagination { total limit } } }`,
	})
	require.Equal(t, http.StatusOK, resp.Code, "%s", resp.Raw)

	var data struct {
		Dashboard struct {
			TotalUsers   int     `json:"totalUsers"`
			TotalRevenue float64 `json:"totalRevenue"`
		} `json:"dashboard"`
		Users struct {
			Items []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
			Pagination orm.Pagination `json:"pagination"`
		} `json:"users"`
	}
	resp.Decode(t, "data", &data)
	assert.Equal(t, 1, data.Dashboard.TotalUsers)
	require.Len(t, data.Users.Items, 1)
	assert.Equal(t, "Asha", data.Users.Items[0].Name)
	assert.Len(t, data.Users.Items[0].ID, 24)
	assert.EqualValues(t, 5, data.Users.Pagination.Limit)

	resp = testkit.Do(t, h, http.MethodPost, api+"/graphql", map[string]string{"query": `{ nope }`})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHandler(t, kernel.Options{})

	resp := testkit.Do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", resp.Body["status"])

	testkit.Do(t, h, http.MethodGet, api+"/users", nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `route="/api/admin/users"`))
}

func TestRateLimitAndCORS(t *testing.T) {
	h := newHandler(t, kernel.Options{Limiter: middleware.NewMemoryLimiter(2, time.Minute)})

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, testkit.Do(t, h, http.MethodGet, api+"/users", nil).Code)
	}
	resp := testkit.Do(t, h, http.MethodGet, api+"/users", nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	req := httptest.NewRequest(http.MethodOptions, api+"/users", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	newHandler(t, kernel.Options{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	h := newHandler(t, kernel.Options{})
	assert.Equal(t, http.StatusNotFound, testkit.Do(t, h, http.MethodGet, api+"/nope", nil).Code)
}
