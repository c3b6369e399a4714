package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KPfeil25/world-cup-26-predictions/internal/config"
	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/logging"
	"github.com/KPfeil25/world-cup-26-predictions/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	dataDir := flag.String("data-dir", cfg.DataDir, "directory holding the tournament CSV files")
	modelDir := flag.String("model-dir", cfg.ModelDir, "directory to write the trained model artifact to")
	workers := flag.Int("workers", cfg.PredictTrainWorkers, "tree-fitting workers (0 uses the default)")
	timeout := flag.Duration("timeout", 30*time.Minute, "maximum training duration")
	flag.Parse()

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	source := usecase.NewDatasetSource(*dataDir, nil)
	trainer := usecase.NewTrainingService(source, *modelDir, *workers)

	started := time.Now()
	report, err := trainer.Train(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "training failed", "data_dir", *dataDir, "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "model trained",
		"model_dir", *modelDir,
		"training_rows", report.TrainingRows,
		"validation_rows", report.ValidationRows,
		"validation_accuracy", report.ValidationAccuracy,
		"duration", time.Since(started).String(),
	)
}
