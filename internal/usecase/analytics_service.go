package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/KPfeil25/world-cup-26-predictions/internal/stats"
)

// Leaderboard kinds the analytics surface serves. Each mirrors one of
// the historical ranking views over the aggregated player rows.
const (
	LeaderboardTopScorers         = "top-scorers"
	LeaderboardKnockoutScorers    = "knockout-scorers"
	LeaderboardGoalsPerAppearance = "goals-per-appearance"
	LeaderboardPenaltyConversion  = "penalty-conversion"
	LeaderboardCardRate           = "card-rate"
	LeaderboardMostAwarded        = "most-awarded"
	LeaderboardClutchScorers      = "clutch-scorers"
	LeaderboardMostAppearances    = "most-appearances"
)

const (
	defaultLeaderboardSize   = 10
	minAppearancesForRates   = 10
	minAttemptsForConversion = 1
)

// PlayerFilter narrows aggregated player rows. Zero values and "All"
// keep everything.
type PlayerFilter struct {
	Gender    string
	Continent string
	Position  string
}

// LeaderboardEntry is one ranked row of a leaderboard.
type LeaderboardEntry struct {
	PlayerID string
	FullName string
	TeamName string
	Value    float64
}

type AnalyticsService struct {
	data DatasetProvider
}

func NewAnalyticsService(data DatasetProvider) *AnalyticsService {
	return &AnalyticsService{data: data}
}

// PlayerStats returns the aggregated player rows after filtering.
func (s *AnalyticsService) PlayerStats(ctx context.Context, filter PlayerFilter) ([]stats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.PlayerStats")
	defer span.End()

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	rows := stats.AggregatePlayers(ds)
	return stats.FilterPlayers(rows, filter.Gender, filter.Continent, filter.Position), nil
}

// Leaderboard ranks filtered players by the named metric. Rate boards
// only admit players above the historical eligibility floors.
func (s *AnalyticsService) Leaderboard(ctx context.Context, kind string, filter PlayerFilter, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.Leaderboard")
	defer span.End()

	kind = strings.TrimSpace(strings.ToLower(kind))
	metric, eligible, err := leaderboardMetric(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	rows, err := s.PlayerStats(ctx, filter)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		if !eligible(row) {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			PlayerID: row.PlayerID,
			FullName: row.FullName,
			TeamName: row.PrimaryTeamName,
			Value:    metric(row),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func leaderboardMetric(kind string) (metric func(stats.PlayerStats) float64, eligible func(stats.PlayerStats) bool, err error) {
	everyone := func(stats.PlayerStats) bool { return true }
	switch kind {
	case LeaderboardTopScorers:
		return func(p stats.PlayerStats) float64 { return float64(p.TotalGoals) }, everyone, nil
	case LeaderboardKnockoutScorers:
		return func(p stats.PlayerStats) float64 { return float64(p.KnockoutGoals) }, everyone, nil
	case LeaderboardGoalsPerAppearance:
		return func(p stats.PlayerStats) float64 { return p.GoalsPerAppearance },
			func(p stats.PlayerStats) bool { return p.TotalAppearances >= minAppearancesForRates }, nil
	case LeaderboardPenaltyConversion:
		return func(p stats.PlayerStats) float64 { return p.PenaltyConversion },
			func(p stats.PlayerStats) bool { return p.PenaltyAttempts >= minAttemptsForConversion }, nil
	case LeaderboardCardRate:
		return func(p stats.PlayerStats) float64 { return p.CardsPerAppearance },
			func(p stats.PlayerStats) bool { return p.TotalAppearances >= minAppearancesForRates }, nil
	case LeaderboardMostAwarded:
		return func(p stats.PlayerStats) float64 { return float64(p.TotalAwards) }, everyone, nil
	case LeaderboardClutchScorers:
		return func(p stats.PlayerStats) float64 { return float64(p.ClutchGoals) }, everyone, nil
	case LeaderboardMostAppearances:
		return func(p stats.PlayerStats) float64 { return float64(p.TotalAppearances) }, everyone, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown leaderboard kind %q", ErrInvalidInput, kind)
	}
}

// TeamRecords tallies win/draw/loss and goals-by-year records per
// team, optionally scoped to a gender partition or tournament year.
func (s *AnalyticsService) TeamRecords(ctx context.Context, gender string, year int) ([]stats.TeamRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.TeamRecords")
	defer span.End()

	ds, err := s.data.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return stats.AggregateTeamRecords(ds, gender, year), nil
}

// InvalidateData drops the cached dataset so the next request reloads
// it from disk.
func (s *AnalyticsService) InvalidateData(ctx context.Context) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.InvalidateData")
	defer span.End()

	s.data.Invalidate(ctx)
}
