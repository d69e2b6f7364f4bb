// Package server owns process bootstrap: configuration, connections,
// migrations, seed data and the HTTP listener.
package server

import (
	"fmt"
	"net/http"

	"github.com/rohanwest/pancake/config"
	"github.com/rohanwest/pancake/database/seeders"
	"github.com/rohanwest/pancake/pkg/cache"
	"github.com/rohanwest/pancake/pkg/database"
	"github.com/rohanwest/pancake/pkg/logger"
	"github.com/rohanwest/pancake/pkg/migration"
	"github.com/rohanwest/pancake/pkg/storage"
)

// Boot loads config and opens every backing connection the application
// needs. Redis is optional: the cache layer degrades to pass-through when
// it is unreachable, so a failed ping is a warning, not a fatal.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()

	if err := migration.New(database.DB).Run(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := seeders.RunAll(database.DB); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// Start blocks serving HTTP on the configured port.
func Start(handler http.Handler) error {
	addr := ":" + config.AppPort()
	logger.Info("pancake listening",
		"addr", addr,
		"env", config.AppEnv(),
		"master_admin", config.AdminEmail(),
	)
	return http.ListenAndServe(addr, handler)
}
