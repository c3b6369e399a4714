package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

type mockDatasetProvider struct {
	mock.Mock
}

func (m *mockDatasetProvider) Dataset(ctx context.Context) (tablestore.Dataset, error) {
	args := m.Called(ctx)
	return args.Get(0).(tablestore.Dataset), args.Error(1)
}

func (m *mockDatasetProvider) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func recordsDataset() tablestore.Dataset {
	matches := tablestore.NewTable("matches",
		[]string{"match_id", "match_date", "home_team_name", "away_team_name",
			"home_team_score", "away_team_score", "home_team_win", "away_team_win", "draw"},
		[][]string{
			{"M-1", "2018-07-15", "France", "Croatia", "4", "2", "true", "false", "false"},
		})
	return tablestore.NewDataset(map[string]tablestore.Table{"matches": matches})
}

func TestAnalyticsService_TeamRecords_LoadsDatasetOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := &mockDatasetProvider{}
	provider.
		On("Dataset", mock.MatchedBy(func(v context.Context) bool { return v == ctx })).
		Return(recordsDataset(), nil).
		Once()

	service := NewAnalyticsService(provider)

	records, err := service.TeamRecords(ctx, "Men", 0)
	if err != nil {
		t.Fatalf("TeamRecords error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both sides of the fixture match, got %+v", records)
	}
	provider.AssertExpectations(t)
}

func TestAnalyticsService_TeamRecords_LoadFailureUsingMock(t *testing.T) {
	t.Parallel()

	provider := &mockDatasetProvider{}
	provider.
		On("Dataset", mock.Anything).
		Return(tablestore.Dataset{}, errors.New("csv directory unreadable")).
		Once()

	service := NewAnalyticsService(provider)

	if _, err := service.TeamRecords(context.Background(), "Men", 0); err == nil {
		t.Fatal("expected load failure to surface")
	}
	provider.AssertExpectations(t)
}
