package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/backoffice/pkg/logger"
)

func TestProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "production")

	log.Debug("hidden")
	log.Info("order placed", "order_id", "abc")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "order placed", line["msg"])
	assert.Equal(t, "abc", line["order_id"])
}

func TestWithCtx(t *testing.T) {
	var buf bytes.Buffer
	tagged := logger.New(&buf, "local").With("request_id", "r-1")

	ctx := logger.InjectLogger(context.Background(), tagged)
	logger.WithCtx(ctx).Info("hello")
	assert.Contains(t, buf.String(), "request_id=r-1")

	assert.Same(t, logger.L, logger.WithCtx(context.Background()))
}
