// Package migrations holds every schema migration. Each one registers itself
// in an init(); the CLI imports this package so the registry is populated
// before `vinylstore migrate` runs.
package migrations

import (
	"gorm.io/gorm"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_admins_table", &CreateAdminsTable{})
	migration.Register("20260301000001_create_products_table", &CreateProductsTable{})
}

type CreateAdminsTable struct{}

func (m *CreateAdminsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Admin{})
}

func (m *CreateAdminsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("admins")
}

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
