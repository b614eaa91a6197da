// Package database handles database connections and schema migration.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration. SQLite is supported for local development and
// for tests, where ":memory:" yields an isolated database per connection.
//
// # Connect
//
// Connect opens the database, applies connection pool settings and pings it
// within the configured timeout.
//
// # Migrate
//
// Migrate runs AutoMigrate for the models each feature declares; the migrate
// command collects them through the feature loader.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	err = database.Migrate(db, mgr.Models()...)
package database
