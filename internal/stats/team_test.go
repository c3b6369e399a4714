package stats

import (
	"testing"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

func matchesFixture() tablestore.Table {
	columns := []string{"match_id", "tournament_id", "match_date", "home_team_name", "away_team_name",
		"home_team_score", "away_team_score", "home_team_win", "away_team_win", "draw"}
	return tablestore.NewTable("matches", columns, [][]string{
		// 2018 men's tournament.
		{"M-1", "WC-2018", "2018-06-14", "France", "Croatia", "4", "2", "1", "0", "0"},
		{"M-2", "WC-2018", "2018-06-15", "Croatia", "Denmark", "1", "1", "0", "0", "1"},
		// 2019 women's tournament, date column blank so the year comes
		// from the tournament id.
		{"M-3", "WWC-2019", "", "United States", "Netherlands", "2", "0", "1", "0", "0"},
	})
}

func findTeam(t *testing.T, records []TeamRecord, name string) TeamRecord {
	t.Helper()
	for _, rec := range records {
		if rec.TeamName == name {
			return rec
		}
	}
	t.Fatalf("team %q not in records", name)
	return TeamRecord{}
}

func TestAggregateTeamRecords_WinDrawLoss(t *testing.T) {
	ds := tablestore.NewDataset(map[string]tablestore.Table{"matches": matchesFixture()})

	records := AggregateTeamRecords(ds, FilterAll, 0)

	croatia := findTeam(t, records, "Croatia")
	if croatia.Wins != 0 || croatia.Draws != 1 || croatia.Losses != 1 {
		t.Fatalf("Croatia W/D/L = %d/%d/%d, want 0/1/1", croatia.Wins, croatia.Draws, croatia.Losses)
	}
	if croatia.TotalGoals != 3 {
		t.Fatalf("Croatia total goals = %d, want 3", croatia.TotalGoals)
	}
	if croatia.GoalsByYear[2018] != 3 {
		t.Fatalf("Croatia 2018 goals = %d, want 3", croatia.GoalsByYear[2018])
	}

	france := findTeam(t, records, "France")
	if france.Wins != 1 || france.Draws != 0 || france.Losses != 0 {
		t.Fatalf("France W/D/L = %d/%d/%d, want 1/0/0", france.Wins, france.Draws, france.Losses)
	}
}

func TestAggregateTeamRecords_GenderPartition(t *testing.T) {
	ds := tablestore.NewDataset(map[string]tablestore.Table{"matches": matchesFixture()})

	men := AggregateTeamRecords(ds, GenderMen, 0)
	for _, rec := range men {
		if rec.TeamName == "United States" || rec.TeamName == "Netherlands" {
			t.Fatalf("odd-year team %q leaked into the men's partition", rec.TeamName)
		}
	}

	women := AggregateTeamRecords(ds, GenderWomen, 0)
	if len(women) != 2 {
		t.Fatalf("got %d women's teams, want 2", len(women))
	}
	usa := findTeam(t, women, "United States")
	if usa.Wins != 1 || usa.GoalsByYear[2019] != 2 {
		t.Fatalf("United States wins=%d goals2019=%d, want 1 and 2", usa.Wins, usa.GoalsByYear[2019])
	}
}

func TestAggregateTeamRecords_YearFilter(t *testing.T) {
	ds := tablestore.NewDataset(map[string]tablestore.Table{"matches": matchesFixture()})

	records := AggregateTeamRecords(ds, FilterAll, 2019)
	if len(records) != 2 {
		t.Fatalf("got %d teams for 2019, want 2", len(records))
	}
	if records[0].TeamName > records[1].TeamName {
		t.Fatalf("records not sorted by name: %q before %q", records[0].TeamName, records[1].TeamName)
	}
}

func TestAggregateTeamRecords_EmptyMatches(t *testing.T) {
	ds := tablestore.NewDataset(map[string]tablestore.Table{})
	if records := AggregateTeamRecords(ds, FilterAll, 0); len(records) != 0 {
		t.Fatalf("got %d records from an empty dataset, want 0", len(records))
	}
}
