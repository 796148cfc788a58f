package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Response is a recorded reply with its JSON body decoded.
type Response struct {
	Code   int
	Header http.Header
	Raw    []byte
	Body   map[string]interface{}
}

// Do sends body (a string, []byte or any JSON-encodable value; nil for none)
// to h and records the reply.
func Do(t *testing.T, h http.Handler, method, url string, body interface{}) *Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err, "testkit: encode request body")
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, url, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	resp := &Response{Code: rec.Code, Header: rec.Header(), Raw: rec.Body.Bytes()}
	if len(resp.Raw) > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(resp.Raw, &resp.Body), "testkit: response is not JSON: %s", resp.Raw)
	}
	return resp
}

// Decode unmarshals the value under key into dest, or the whole body when
// key is empty.
func (r *Response) Decode(t *testing.T, key string, dest interface{}) {
	t.Helper()

	raw := r.Raw
	if key != "" {
		v, ok := r.Body[key]
		require.True(t, ok, "testkit: response has no %q key: %s", key, r.Raw)
		var err error
		raw, err = json.Marshal(v)
		require.NoError(t, err)
	}
	require.NoError(t, json.Unmarshal(raw, dest))
}

// Message is the "message" field of the body.
func (r *Response) Message() string {
	s, _ := r.Body["message"].(string)
	return s
}
