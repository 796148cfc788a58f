package server

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/repositories"
	"github.com/shashiranjanraj/backoffice/config"
	_ "github.com/shashiranjanraj/backoffice/database/migrations"
	"github.com/shashiranjanraj/backoffice/pkg/database"
	"github.com/shashiranjanraj/backoffice/pkg/migration"
)

// Backend is the configured store together with the raw handle its
// migrations run against. Exactly one of SQL and Mongo is set.
type Backend struct {
	Store *repositories.Store
	SQL   *gorm.DB
	Mongo *mongo.Database
}

// Connect opens the store selected by DB_DRIVER.
func Connect(ctx context.Context) (*Backend, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	driver := config.DatabaseDriver()
	if driver == "mongo" {
		client, err := database.OpenMongo(ctx, config.MongoURI())
		if err != nil {
			return nil, err
		}
		db := client.Database(config.MongoDatabase())
		return &Backend{Store: repositories.NewMongoStore(db), Mongo: db}, nil
	}

	db, err := database.Open(driver, config.DatabaseDSN(), database.DefaultPool)
	if err != nil {
		return nil, err
	}
	return &Backend{Store: repositories.NewGormStore(db), SQL: db}, nil
}

// Migrate brings the schema up to date: pending SQL migrations, or the
// collection indexes on Mongo. It is safe to run repeatedly.
func (b *Backend) Migrate(ctx context.Context, out io.Writer) error {
	if b.Mongo != nil {
		if err := repositories.EnsureMongoIndexes(ctx, b.Mongo); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		fmt.Fprintln(out, "Indexes ensured.")
		return nil
	}

	_, err := migration.New(b.SQL, out).Run()
	return err
}

// Migrator returns the SQL migration runner. Mongo has no versioned
// migrations and reports an error.
func (b *Backend) Migrator(out io.Writer) (*migration.Runner, error) {
	if b.SQL == nil {
		return nil, fmt.Errorf("versioned migrations require a SQL driver, DB_DRIVER is %q", config.DatabaseDriver())
	}
	return migration.New(b.SQL, out), nil
}

func (b *Backend) Close(ctx context.Context) error {
	return b.Store.Close(ctx)
}
