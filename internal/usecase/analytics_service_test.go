package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

type stubDatasetProvider struct {
	ds          tablestore.Dataset
	err         error
	invalidated int
}

func (s *stubDatasetProvider) Dataset(context.Context) (tablestore.Dataset, error) {
	return s.ds, s.err
}

func (s *stubDatasetProvider) Invalidate(context.Context) { s.invalidated++ }

func analyticsDataset() tablestore.Dataset {
	players := tablestore.NewTable("players",
		[]string{"player_id", "given_name", "family_name", "female", "goal_keeper", "defender", "midfielder", "forward"},
		[][]string{
			{"P-1", "Miroslav", "Klose", "0", "0", "0", "0", "1"},
			{"P-2", "Marta", "Vieira da Silva", "1", "0", "0", "0", "1"},
			{"P-3", "Gianluigi", "Buffon", "0", "1", "0", "0", "0"},
		})
	goals := tablestore.NewTable("goals",
		[]string{"goal_id", "match_id", "player_id", "minute_regulation"},
		[][]string{
			{"G-1", "M-1", "P-1", "10"},
			{"G-2", "M-1", "P-1", "20"},
			{"G-3", "M-1", "P-2", "80"},
		})
	matches := tablestore.NewTable("matches",
		[]string{"match_id", "knockout_stage"},
		[][]string{{"M-1", "1"}})
	return tablestore.NewDataset(map[string]tablestore.Table{
		"players": players,
		"goals":   goals,
		"matches": matches,
	})
}

func TestAnalyticsService_PlayerStats_Filtered(t *testing.T) {
	t.Parallel()

	service := NewAnalyticsService(&stubDatasetProvider{ds: analyticsDataset()})

	rows, err := service.PlayerStats(context.Background(), PlayerFilter{Gender: "Women"})
	if err != nil {
		t.Fatalf("PlayerStats error: %v", err)
	}
	if len(rows) != 1 || rows[0].PlayerID != "P-2" {
		t.Fatalf("expected only the women's row, got %+v", rows)
	}
}

func TestAnalyticsService_PlayerStats_LoadFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("disk gone")
	service := NewAnalyticsService(&stubDatasetProvider{err: wantErr})

	if _, err := service.PlayerStats(context.Background(), PlayerFilter{}); !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped load error, got %v", err)
	}
}

func TestAnalyticsService_Leaderboard_TopScorers(t *testing.T) {
	t.Parallel()

	service := NewAnalyticsService(&stubDatasetProvider{ds: analyticsDataset()})

	entries, err := service.Leaderboard(context.Background(), LeaderboardTopScorers, PlayerFilter{}, 2)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PlayerID != "P-1" || entries[0].Value != 2 {
		t.Fatalf("unexpected top entry: %+v", entries[0])
	}
	if entries[1].PlayerID != "P-2" || entries[1].Value != 1 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestAnalyticsService_Leaderboard_RateFloors(t *testing.T) {
	t.Parallel()

	service := NewAnalyticsService(&stubDatasetProvider{ds: analyticsDataset()})

	// Nobody has 10 appearances in the fixture, so the rate board is
	// empty rather than full of tiny-sample ratios.
	entries, err := service.Leaderboard(context.Background(), LeaderboardGoalsPerAppearance, PlayerFilter{}, 0)
	if err != nil {
		t.Fatalf("Leaderboard error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no eligible players, got %+v", entries)
	}
}

func TestAnalyticsService_Leaderboard_UnknownKind(t *testing.T) {
	t.Parallel()

	service := NewAnalyticsService(&stubDatasetProvider{ds: analyticsDataset()})

	if _, err := service.Leaderboard(context.Background(), "assists", PlayerFilter{}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyticsService_InvalidateData(t *testing.T) {
	t.Parallel()

	provider := &stubDatasetProvider{ds: analyticsDataset()}
	service := NewAnalyticsService(provider)

	service.InvalidateData(context.Background())
	if provider.invalidated != 1 {
		t.Fatalf("expected one invalidation, got %d", provider.invalidated)
	}
}
