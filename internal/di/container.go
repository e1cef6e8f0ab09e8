// Package di provides dependency injection configuration for the Buchshelf server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/buchshelf/buchshelf-server/internal/config"
	"github.com/buchshelf/buchshelf-server/internal/di/providers"
	"github.com/buchshelf/buchshelf-server/internal/logger"
	"github.com/buchshelf/buchshelf-server/internal/metadata/googlebooks"
	"github.com/buchshelf/buchshelf-server/internal/service"
	"github.com/buchshelf/buchshelf-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Catalog upstream
	do.Provide(injector, providers.ProvideCatalogClient)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideGoalService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// Invoking each service in dependency order triggers lazy construction.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*googlebooks.Client](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.GoalService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
