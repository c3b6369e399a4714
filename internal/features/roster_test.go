package features

import (
	"reflect"
	"testing"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

func rosterDataset() tablestore.Dataset {
	appearances := tablestore.NewTable("player_appearances",
		[]string{"match_id", "tournament_name", "match_date", "team_name", "player_id",
			"given_name", "family_name", "position_code"},
		[][]string{
			{"M-1", "2018 FIFA Men's World Cup", "2018-06-16", "France", "P-1", "Kylian", "Mbappé", "FW"},
			{"M-1", "2018 FIFA Men's World Cup", "2018-06-16", "France", "P-2", "Hugo", "Lloris", "GK"},
			{"M-1", "2018 FIFA Men's World Cup", "2018-06-16", "France", "P-3", "N'Golo", "Kanté", "MF"},
			// Same player again in a later match of the same tournament.
			{"M-2", "2018 FIFA Men's World Cup", "2018-06-21", "France", "P-1", "Kylian", "Mbappé", "FW"},
			// Name columns carry placeholders only.
			{"M-2", "2018 FIFA Men's World Cup", "2018-06-21", "France", "P-4", "n/a", "not applicable", "DF"},
			// Older squad.
			{"M-0", "2014 FIFA Men's World Cup", "2014-06-15", "France", "P-5", "Karim", "Benzema", "FW"},
			// Different gender partition.
			{"M-3", "2019 FIFA Women's World Cup", "2019-06-10", "France", "P-6", "Wendie", "Renard", "DF"},
		})
	return tablestore.NewDataset(map[string]tablestore.Table{"player_appearances": appearances})
}

func TestTeamRoster_PositionOrderAndDedup(t *testing.T) {
	got := TeamRoster(rosterDataset(), "France", "Men", 2018)
	want := []string{"Hugo Lloris", "Unknown Player", "N'Golo Kanté", "Kylian Mbappé"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTeamRoster_2026UsesMostRecentSquad(t *testing.T) {
	got := TeamRoster(rosterDataset(), "France", "Men", 2026)
	if len(got) == 0 || got[len(got)-1] != "Kylian Mbappé" {
		t.Fatalf("2026 roster should fall back to the 2018 squad, got %v", got)
	}
	for _, name := range got {
		if name == "Karim Benzema" {
			t.Fatalf("2014 squad member leaked into the most recent roster: %v", got)
		}
	}
}

func TestTeamRoster_GenderPartition(t *testing.T) {
	got := TeamRoster(rosterDataset(), "France", "Women", 2019)
	if !reflect.DeepEqual(got, []string{"Wendie Renard"}) {
		t.Fatalf("got %v, want the women's squad only", got)
	}
}

func TestTeamRoster_UnknownTeam(t *testing.T) {
	if got := TeamRoster(rosterDataset(), "Atlantis", "Men", 2018); len(got) != 0 {
		t.Fatalf("got %v for a team with no appearances, want empty", got)
	}
}
