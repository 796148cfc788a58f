package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/pkg/validate"
)

type productInput struct {
	ProductName string   `json:"productName" validate:"required"`
	CategoryID  string   `json:"categoryId"  validate:"required"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Status      string   `json:"status"      validate:"required,in=active,inactive"`
}

type userPatch struct {
	Name  *string `json:"name"  validate:"nullable,required"`
	Email *string `json:"email" validate:"nullable,required,email"`
}

func ptr[T any](v T) *T { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{
		ProductName: "Cola",
		CategoryID:  "65f0c0ffee",
		Price:       ptr(2.5),
		Status:      "active",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(productInput{})

	assert.Contains(t, errs, "productName")
	assert.Contains(t, errs, "categoryId")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "status")
}

func TestZeroPriceBehindPointerIsPresent(t *testing.T) {
	errs := validate.Struct(productInput{ProductName: "Water", CategoryID: "c1", Price: ptr(0.0), Status: "inactive"})
	assert.Empty(t, errs)

	errs = validate.Struct(productInput{ProductName: "Water", CategoryID: "c1", Price: ptr(-1.0), Status: "inactive"})
	assert.Contains(t, errs, "price")
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(productInput{ProductName: "Cola", CategoryID: "c1", Price: ptr(1.0), Status: "archived"})
	assert.Equal(t, "The selected status is invalid.", errs["status"])
}

func TestFirstFollowsDeclarationOrder(t *testing.T) {
	fe, ok := validate.First(productInput{Status: "bogus"})

	require.True(t, ok)
	assert.Equal(t, "productName", fe.Field)
	assert.Equal(t, "The productName field is required.", fe.Message)
}

func TestFirstNoErrors(t *testing.T) {
	_, ok := validate.First(userPatch{})
	assert.False(t, ok)
}

func TestNullableSkipsAbsentButRejectsBlank(t *testing.T) {
	assert.Empty(t, validate.Struct(userPatch{}))

	errs := validate.Struct(userPatch{Name: ptr("  ")})
	assert.Equal(t, "The name field is required.", errs["name"])

	errs = validate.Struct(userPatch{Email: ptr("not-an-email")})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])

	assert.Empty(t, validate.Struct(userPatch{Email: ptr("ana@example.com")}))
}

func TestMinMax(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"required,min=3,max=5"`
		Qty   int    `json:"qty"   validate:"gt=0"`
	}
	errs := validate.Struct(in{Phone: "12", Qty: 0})
	assert.Equal(t, "The phone must be at least 3 characters.", errs["phone"])
	assert.Equal(t, "The qty must be greater than 0.", errs["qty"])

	errs = validate.Struct(in{Phone: "123456", Qty: 1})
	assert.Equal(t, "The phone must not exceed 5 characters.", errs["phone"])
}
