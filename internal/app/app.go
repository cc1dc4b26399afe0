package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dioarsa/football-oracle/external/footballdata"
	"github.com/dioarsa/football-oracle/external/genai"
	"github.com/dioarsa/football-oracle/internal/config"
	"github.com/dioarsa/football-oracle/internal/interfaces/httpapi"
	"github.com/dioarsa/football-oracle/internal/platform/logging"
	"github.com/dioarsa/football-oracle/internal/platform/resilience"
	"github.com/dioarsa/football-oracle/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger, gatewayLogger *logging.Logger) (*http.Server, error) {
	if gatewayLogger == nil {
		gatewayLogger = logging.Default()
	}

	fixtureClient := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:     cfg.FootballDataBaseURL,
		Token:       cfg.FootballDataToken,
		Competition: cfg.FootballDataCompetition,
		Timeout:     cfg.FootballDataTimeout,
		CacheTTL:    cfg.FootballDataCacheTTL,
		Logger:      gatewayLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})

	predictor := genai.NewClient(genai.ClientConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		Logger:  gatewayLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GeminiCircuitEnabled,
			FailureThreshold: cfg.GeminiCircuitFailureCount,
			OpenTimeout:      cfg.GeminiCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GeminiCircuitHalfOpenMaxReq,
		},
	})

	fixtureSvc := usecase.NewFixtureService(fixtureClient, gatewayLogger)
	statsSvc := usecase.NewStatsService(fixtureSvc, fixtureClient, gatewayLogger)
	predictionSvc := usecase.NewPredictionService(fixtureSvc, predictor, gatewayLogger)

	handler := httpapi.NewHandler(fixtureSvc, statsSvc, predictionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

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
