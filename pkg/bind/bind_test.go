package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/pkg/bind"
)

type input struct {
	Name string `json:"name"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSON(t *testing.T) {
	var in input
	require.NoError(t, bind.JSON(httptest.NewRecorder(), request(`{"name":"Cola"}`), &in))
	assert.Equal(t, "Cola", in.Name)

	err := bind.JSON(httptest.NewRecorder(), request(`{"name":"Cola","role":"x"}`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")

	err = bind.JSON(httptest.NewRecorder(), request(`{"name":"a"} {"name":"b"}`), &in)
	assert.Error(t, err)

	err = bind.JSON(httptest.NewRecorder(), request(`  `), &in)
	assert.ErrorIs(t, err, bind.ErrEmptyBody)

	err = bind.JSON(httptest.NewRecorder(), request(`{"name":`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestEnvelope(t *testing.T) {
	var in input
	require.NoError(t, bind.Envelope(httptest.NewRecorder(), request(`{"productData":{"name":"Cola"}}`), "productData", &in))
	assert.Equal(t, "Cola", in.Name)

	in = input{}
	require.NoError(t, bind.Envelope(httptest.NewRecorder(), request(`{"name":"Tea"}`), "productData", &in))
	assert.Equal(t, "Tea", in.Name)

	err := bind.Envelope(httptest.NewRecorder(), request(`{"productData":{"name":"Cola"},"extra":1}`), "productData", &in)
	assert.Error(t, err, "a wrapped body with siblings is decoded flat and rejected")

	err = bind.Envelope(httptest.NewRecorder(), request(`{"productData":{"nope":1}}`), "productData", &in)
	assert.Error(t, err)
}
