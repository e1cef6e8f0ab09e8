package providers

import (
	"github.com/samber/do/v2"

	"github.com/buchshelf/buchshelf-server/internal/config"
	"github.com/buchshelf/buchshelf-server/internal/logger"
	"github.com/buchshelf/buchshelf-server/internal/metadata/googlebooks"
)

// ProvideCatalogClient provides the Google Books catalog client.
func ProvideCatalogClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.New(googlebooks.Config{
		Endpoint: cfg.Catalog.Endpoint,
		APIKey:   cfg.Catalog.APIKey,
	}, log.Logger)

	if cfg.Catalog.APIKey == "" {
		log.Info("Catalog client running without API key")
	}

	return client, nil
}
