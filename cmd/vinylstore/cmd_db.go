package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/groovecrate/vinylstore/config"
	"github.com/groovecrate/vinylstore/database/seeders"
	"github.com/groovecrate/vinylstore/pkg/database"
	"github.com/groovecrate/vinylstore/pkg/migration"
)

func openDB() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

// vinylstore migrate — apply pending migrations.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB()
		if err != nil {
			return err
		}
		return migration.New(db).Run()
	},
}

// vinylstore migrate:rollback — undo the last batch.
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the most recent migration batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB()
		if err != nil {
			return err
		}
		return migration.New(db).Rollback()
	},
}

// vinylstore migrate:status — show applied vs pending.
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB()
		if err != nil {
			return err
		}
		return migration.New(db).Status()
	},
}

// vinylstore seed — run all seeders (today: the admin account).
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cfg, err := openDB()
		if err != nil {
			return err
		}

		seeders.Register("admin", seeders.Admin(cfg))

		fmt.Println("Seeding database:")
		return seeders.RunAll(db)
	},
}
