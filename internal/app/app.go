package app

import (
	"fmt"
	"net/http"

	"github.com/KPfeil25/world-cup-26-predictions/internal/config"
	"github.com/KPfeil25/world-cup-26-predictions/internal/interfaces/httpapi"
	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/cache"
	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/logging"
	"github.com/KPfeil25/world-cup-26-predictions/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	datasetSource := usecase.NewDatasetSource(cfg.DataDir, store)
	analyticsSvc := usecase.NewAnalyticsService(datasetSource)
	predictionSvc := usecase.NewPredictionService(datasetSource, cfg.ModelDir, store, cfg.DefaultConfidence)

	handler := httpapi.NewHandler(analyticsSvc, predictionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalOpsToken)

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
