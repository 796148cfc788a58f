// Package testkit provides fixtures for package tests: a migrated in-memory
// SQL store and helpers that drive an http.Handler with JSON requests.
package testkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/repositories"
	_ "github.com/shashiranjanraj/backoffice/database/migrations"
	"github.com/shashiranjanraj/backoffice/pkg/database"
	"github.com/shashiranjanraj/backoffice/pkg/migration"
)

// NewDB opens a private in-memory sqlite database with every migration
// applied. It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn, database.PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err, "testkit: open sqlite")

	_, err = migration.New(db, nil).Run()
	require.NoError(t, err, "testkit: migrate")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore returns a Store over NewDB.
func NewStore(t *testing.T) *repositories.Store {
	t.Helper()
	return repositories.NewGormStore(NewDB(t))
}

// Ctx is the context used by store calls in tests.
func Ctx() context.Context {
	return context.Background()
}
