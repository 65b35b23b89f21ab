package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vacationvibes/places-backend/internal/adapters/database"
	"github.com/vacationvibes/places-backend/internal/adapters/search"
	"github.com/vacationvibes/places-backend/internal/domain/repositories"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/postgres"
	"github.com/vacationvibes/places-backend/internal/infrastructure/clients/typesense"
	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	"github.com/vacationvibes/places-backend/pkg/config"
)

const indexBatchSize = 500

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("places-indexer", os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			logger.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			logger.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			logger.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		logger.Info().Dur("interval", interval).Msg("Reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			logger.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	logger := observability.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	placeRepo := database.NewPlaceAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		logger.Info().Msg("Deleting places collection before reindex")
		if _, err := tsClient.Client().Collection(typesense.PlacesCollection).Delete(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete collection")
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	indexed := 0
	for offset := 0; ; offset += indexBatchSize {
		places, err := placeRepo.List(ctx, repositories.PlaceFilter{Limit: indexBatchSize, Offset: offset})
		if err != nil {
			return err
		}
		if len(places) == 0 {
			break
		}

		for _, place := range places {
			if place == nil {
				continue
			}
			if err := adapter.Index(ctx, place); err != nil {
				logger.Error().Err(err).Str("place_id", place.ID).Msg("Failed to index place")
				continue
			}
			indexed++
		}

		if len(places) < indexBatchSize {
			break
		}
	}

	logger.Info().Int("indexed", indexed).Msg("Indexing complete")
	return nil
}
