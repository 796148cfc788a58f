package repositories_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/pkg/testkit"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{24}$`)

func TestCreateAssignsIdentity(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	u := &models.User{Name: "Alice", Email: "alice@example.com", Phone: "555-0100"}
	require.NoError(t, store.Users.Create(ctx, u))

	assert.Regexp(t, hexID, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	got, err := store.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.WithinDuration(t, u.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestUniqueIndexRejectsDuplicates(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	require.NoError(t, store.Users.Create(ctx, &models.User{Name: "A", Email: "a@x.io", Phone: "1"}))
	err := store.Users.Create(ctx, &models.User{Name: "B", Email: "a@x.io", Phone: "2"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	n, err := store.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	exists, err := store.Users.Exists(ctx, repositories.UserEmail, "a@x.io")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFindUnknownID(t *testing.T) {
	store := testkit.NewStore(t)

	_, err := store.Categories.FindByID(testkit.Ctx(), "000000000000000000000000")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestListNewestFirstWithSearch(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	for _, name := range []string{"Ann", "Bob", "Annabel"} {
		require.NoError(t, store.Users.Create(ctx, &models.User{Name: name, Email: name + "@x.io", Phone: "1"}))
	}

	items, page, err := store.Users.List(ctx, repositories.ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Annabel", items[0].Name)
	assert.Equal(t, "Bob", items[1].Name)
	assert.EqualValues(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)

	items, page, err = store.Users.List(ctx, repositories.ListQuery{Search: "ANN"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 2, page.Total)

	items, _, err = store.Users.List(ctx, repositories.ListQuery{Search: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProductSearchByPriceAndCategory(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	drinks := &models.Category{Name: "Drinks", Description: "Cold"}
	require.NoError(t, store.Categories.Create(ctx, drinks))

	cola := &models.Product{ProductName: "Cola", CategoryID: drinks.ID, Price: 2.5, Status: models.StatusActive}
	bread := &models.Product{ProductName: "Bread", CategoryID: "other", Price: 4, Status: models.StatusActive}
	require.NoError(t, store.Products.Create(ctx, cola))
	require.NoError(t, store.Products.Create(ctx, bread))

	ids, err := store.Categories.SearchIDs(ctx, "DRINK")
	require.NoError(t, err)
	assert.Equal(t, []string{drinks.ID}, ids)

	items, _, err := store.Products.List(ctx, repositories.ListQuery{Search: "2.5"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cola", items[0].ProductName)

	items, _, err = store.Products.List(ctx, repositories.ListQuery{Search: "drink", RefIDs: []string{drinks.ID}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, cola.ID, items[0].ID)

	items, _, err = store.Products.List(ctx, repositories.ListQuery{Search: "50%"})
	require.NoError(t, err)
	assert.Empty(t, items, "wildcards in the search term are literal")
}

func TestUpdatePartial(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	c := &models.Category{Name: "Food", Description: "Meals"}
	require.NoError(t, store.Categories.Create(ctx, c))
	require.NoError(t, store.Categories.Create(ctx, &models.Category{Name: "Drinks", Description: "Cold"}))

	got, err := store.Categories.Update(ctx, c.ID, repositories.Changes{repositories.CategoryDescription: "Hot meals"})
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)
	assert.Equal(t, "Hot meals", got.Description)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	_, err = store.Categories.Update(ctx, c.ID, repositories.Changes{repositories.CategoryName: "Drinks"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	_, err = store.Categories.Update(ctx, "000000000000000000000000", repositories.Changes{repositories.CategoryName: "X"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteReturnsRecord(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	u := &models.User{Name: "Gone", Email: "gone@x.io", Phone: "1"}
	require.NoError(t, store.Users.Create(ctx, u))

	removed, err := store.Users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, removed.ID)
	assert.Equal(t, "gone@x.io", removed.Email)

	_, err = store.Users.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = store.Users.Update(ctx, u.ID, repositories.Changes{repositories.UserName: "Back"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrdersKeepItemsAndSumRevenue(t *testing.T) {
	store := testkit.NewStore(t)
	ctx := testkit.Ctx()

	sum, err := store.Orders.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum)

	for _, total := range []float64{5, 12.5} {
		o := &models.Order{
			UserID:      "u1",
			Items:       []models.OrderItem{{ProductID: "p1", Quantity: 2, UnitPrice: total / 2}},
			TotalAmount: total,
			OrderDate:   repositories.Now(),
		}
		require.NoError(t, store.Orders.Create(ctx, o))
	}

	sum, err = store.Orders.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 17.5, sum, 1e-9)

	orders, _, err := store.Orders.List(ctx, repositories.ListQuery{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 6.25, orders[0].Items[0].UnitPrice)

	removed, err := store.Orders.Delete(ctx, orders[0].ID)
	require.NoError(t, err)
	assert.Len(t, removed.Items, 1)
}

func TestStorePing(t *testing.T) {
	store := testkit.NewStore(t)
	assert.NoError(t, store.Ping(testkit.Ctx()))
	assert.Equal(t, "sql", store.Backend())
}
