package usecase

import (
	"context"
	"fmt"

	"github.com/KPfeil25/world-cup-26-predictions/internal/features"
	"github.com/KPfeil25/world-cup-26-predictions/internal/predictor"
)

// TrainingReport summarizes one completed training run.
type TrainingReport struct {
	TrainingRows       int
	ValidationRows     int
	ValidationAccuracy float64
}

type TrainingService struct {
	data     DatasetProvider
	modelDir string
	workers  int
}

func NewTrainingService(data DatasetProvider, modelDir string, workers int) *TrainingService {
	return &TrainingService{data: data, modelDir: modelDir, workers: workers}
}

// Train builds the training set from the current dataset, fits the
// pipeline, and writes the artifact to the model directory.
func (s *TrainingService) Train(ctx context.Context) (TrainingReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrainingService.Train")
	defer span.End()

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return TrainingReport{}, fmt.Errorf("load dataset: %w", err)
	}

	rows := features.BuildTrainingSet(ds)
	if len(rows) == 0 {
		return TrainingReport{}, fmt.Errorf("%w: training set is empty", ErrDependencyUnavailable)
	}

	artifact, metrics, err := predictor.Train(rows, predictor.TrainConfig{Workers: s.workers})
	if err != nil {
		return TrainingReport{}, fmt.Errorf("train model: %w", err)
	}
	if err := predictor.SaveArtifact(s.modelDir, artifact); err != nil {
		return TrainingReport{}, fmt.Errorf("save model artifact: %w", err)
	}

	return TrainingReport{
		TrainingRows:       metrics.TrainingRows,
		ValidationRows:     metrics.ValidationRows,
		ValidationAccuracy: metrics.ValidationAccuracy,
	}, nil
}
