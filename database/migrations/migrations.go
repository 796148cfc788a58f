// Package migrations holds the SQL schema history. Importing it registers
// every migration with pkg/migration.
package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", table{&models.User{}})
	migration.Register("20260301000001_create_categories_table", table{&models.Category{}})
	migration.Register("20260301000002_create_products_table", table{&models.Product{}})
	migration.Register("20260301000003_create_orders_tables", table{&models.Order{}, &models.OrderItem{}})
}

// table creates its models on Up and drops them in reverse on Down.
type table []interface{}

func (t table) Up(db *gorm.DB) error {
	return db.AutoMigrate(t...)
}

func (t table) Down(db *gorm.DB) error {
	for i := len(t) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(t[i]); err != nil {
			return err
		}
	}
	return nil
}
