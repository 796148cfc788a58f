package testkit

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario is one request and the reply expected for it.
type Scenario struct {
	Name         string
	Method       string
	URL          string
	Body         interface{}
	ExpectedCode int
	// Expected holds top-level body fields that must match exactly. Other
	// fields in the reply are ignored.
	Expected map[string]interface{}
}

// Run executes every scenario as a subtest against h.
func Run(t *testing.T, h http.Handler, scenarios []Scenario) {
	t.Helper()

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			resp := Do(t, h, s.Method, s.URL, s.Body)

			assert.Equal(t, s.ExpectedCode, resp.Code, "[%s] HTTP status code mismatch: %s", s.Name, resp.Raw)
			for key, want := range s.Expected {
				assert.Equal(t, want, resp.Body[key], "[%s] body field %q mismatch", s.Name, key)
			}
		})
	}
}
