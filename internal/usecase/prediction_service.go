package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/KPfeil25/world-cup-26-predictions/internal/features"
	"github.com/KPfeil25/world-cup-26-predictions/internal/platform/cache"
	"github.com/KPfeil25/world-cup-26-predictions/internal/predictor"
)

const artifactCacheKey = "model-artifact"

// MatchRequest describes the fixture to score.
type MatchRequest struct {
	HomeTeam    string
	AwayTeam    string
	StadiumID   string
	Temperature float64
	Gender      string
}

// MatchPrediction is the scored outcome plus the context the row was
// assembled from.
type MatchPrediction struct {
	Outcome        predictor.Outcome
	Confidence     float64
	CityName       string
	HomeTeamRank   float64
	AwayTeamRank   float64
	HomeTeamAwards int
	AwayTeamAwards int
}

type PredictionService struct {
	data              DatasetProvider
	modelDir          string
	cache             *cache.Store
	defaultConfidence float64
}

func NewPredictionService(data DatasetProvider, modelDir string, store *cache.Store, defaultConfidence float64) *PredictionService {
	return &PredictionService{
		data:              data,
		modelDir:          modelDir,
		cache:             store,
		defaultConfidence: defaultConfidence,
	}
}

func (s *PredictionService) artifact(ctx context.Context) (*predictor.Artifact, error) {
	if s.cache == nil {
		return predictor.LoadArtifact(s.modelDir)
	}
	value, err := s.cache.GetOrLoad(ctx, artifactCacheKey, func(context.Context) (any, error) {
		return predictor.LoadArtifact(s.modelDir)
	})
	if err != nil {
		return nil, err
	}
	artifact, ok := value.(*predictor.Artifact)
	if !ok {
		return nil, fmt.Errorf("unexpected artifact cache entry %T", value)
	}
	return artifact, nil
}

// PredictMatch assembles the feature row for the requested fixture
// and scores it with the trained model. A missing or unreadable
// artifact surfaces as a dependency failure; predictions never fall
// back to an untrained model.
func (s *PredictionService) PredictMatch(ctx context.Context, req MatchRequest) (MatchPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.PredictMatch")
	defer span.End()

	if strings.TrimSpace(req.HomeTeam) == "" || strings.TrimSpace(req.AwayTeam) == "" {
		return MatchPrediction{}, fmt.Errorf("%w: home and away teams are required", ErrInvalidInput)
	}
	if strings.EqualFold(req.HomeTeam, req.AwayTeam) {
		return MatchPrediction{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	artifact, err := s.artifact(ctx)
	if err != nil {
		return MatchPrediction{}, fmt.Errorf("%w: load model artifact: %v", ErrDependencyUnavailable, err)
	}
	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return MatchPrediction{}, fmt.Errorf("load dataset: %w", err)
	}

	row := features.AssembleInferenceRow(features.Matchup{
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		StadiumID:   req.StadiumID,
		Temperature: req.Temperature,
		Gender:      req.Gender,
	}, ds)

	outcome, confidence := artifact.Predict(row, s.defaultConfidence)
	return MatchPrediction{
		Outcome:        outcome,
		Confidence:     confidence,
		CityName:       row.CityName,
		HomeTeamRank:   row.HomeTeamRank,
		AwayTeamRank:   row.AwayTeamRank,
		HomeTeamAwards: row.HomeTeamAwards,
		AwayTeamAwards: row.AwayTeamAwards,
	}, nil
}

// Reload drops the cached artifact so the next prediction reads the
// latest trained model from disk. It verifies the artifact loads
// before returning.
func (s *PredictionService) Reload(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Reload")
	defer span.End()

	if s.cache != nil {
		s.cache.Delete(ctx, artifactCacheKey)
	}
	if _, err := s.artifact(ctx); err != nil {
		return fmt.Errorf("%w: reload model artifact: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

// Teams lists the selectable teams for a gender partition.
func (s *PredictionService) Teams(ctx context.Context, gender string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Teams")
	defer span.End()

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return features.TeamsByGender(ds, gender), nil
}

// Roster returns a team's squad for the requested tournament year.
func (s *PredictionService) Roster(ctx context.Context, team, gender string, year int) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Roster")
	defer span.End()

	if strings.TrimSpace(team) == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	roster := features.TeamRoster(ds, team, gender, year)
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: no roster for team=%s year=%d", ErrNotFound, team, year)
	}
	return roster, nil
}

// Years lists the tournament years selectable for a team.
func (s *PredictionService) Years(ctx context.Context, team, gender string) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Years")
	defer span.End()

	if strings.TrimSpace(team) == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return features.AvailableYears(ds, team, gender), nil
}

// Stadiums lists the stadiums selectable for a fixture.
func (s *PredictionService) Stadiums(ctx context.Context) ([]features.Stadium, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Stadiums")
	defer span.End()

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return features.StadiumNames(ds), nil
}
