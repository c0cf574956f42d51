package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fpl-superset/internal/config"
	"github.com/riskibarqy/fpl-superset/internal/infrastructure/export"
	"github.com/riskibarqy/fpl-superset/internal/infrastructure/source/csvfile"
	"github.com/riskibarqy/fpl-superset/internal/interfaces/httpapi"
	"github.com/riskibarqy/fpl-superset/internal/platform/logging"
	"github.com/riskibarqy/fpl-superset/internal/usecase"
)

// Services is the object graph shared by the API server and the batch CLI.
type Services struct {
	Supersets       *usecase.SupersetService
	Queries         *usecase.QueryService
	Models          *usecase.ModelService
	Hyperparameters *usecase.HyperparameterService
	Exporter        *export.Writer
}

func NewServices(cfg config.Config, logger *logging.Logger) *Services {
	if logger == nil {
		logger = logging.Default()
	}

	source := csvfile.NewSource(cfg.DataRoot, logger.Named("csvfile"))
	supersets := usecase.NewSupersetService(source, usecase.SupersetConfig{
		Seasons:      cfg.Seasons,
		CacheEnabled: cfg.CacheEnabled,
		CacheTTL:     cfg.CacheTTL,
	}, logger)

	return &Services{
		Supersets:       supersets,
		Queries:         usecase.NewQueryService(supersets),
		Models:          usecase.NewModelService(supersets, logger),
		Hyperparameters: usecase.NewHyperparameterService(logger),
		Exporter:        export.NewWriter(cfg.ExportDir, logger.Named("export")),
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, fmt.Errorf("services cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(
		services.Supersets,
		services.Queries,
		services.Models,
		services.Hyperparameters,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
