package stats

import (
	"reflect"
	"testing"
)

func samplePlayers() []PlayerStats {
	return []PlayerStats{
		{PlayerID: "P-1", Female: false, Forward: true, Continent: "Europe"},
		{PlayerID: "P-2", Female: true, Midfielder: true, Continent: "South America"},
		{PlayerID: "P-3", Female: false, Goalkeeper: true, Continent: "Unknown"},
		{PlayerID: "P-4", Female: true, Defender: true, Continent: "Europe"},
	}
}

func playerIDs(rows []PlayerStats) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PlayerID)
	}
	return ids
}

func TestFilterPlayers_AllIsIdentity(t *testing.T) {
	rows := samplePlayers()
	got := FilterPlayers(rows, FilterAll, FilterAll, FilterAll)
	if !reflect.DeepEqual(playerIDs(got), playerIDs(rows)) {
		t.Fatalf("all-All filter changed the rows: %v", playerIDs(got))
	}
}

func TestFilterPlayers_Idempotent(t *testing.T) {
	rows := samplePlayers()
	once := FilterPlayers(rows, GenderWomen, "Europe", FilterAll)
	twice := FilterPlayers(once, GenderWomen, "Europe", FilterAll)
	if !reflect.DeepEqual(playerIDs(once), playerIDs(twice)) {
		t.Fatalf("second application changed result: %v then %v", playerIDs(once), playerIDs(twice))
	}
}

func TestFilterPlayers_Facets(t *testing.T) {
	rows := samplePlayers()

	tests := []struct {
		name      string
		gender    string
		continent string
		position  string
		want      []string
	}{
		{name: "men", gender: GenderMen, continent: FilterAll, position: FilterAll, want: []string{"P-1", "P-3"}},
		{name: "women", gender: GenderWomen, continent: FilterAll, position: FilterAll, want: []string{"P-2", "P-4"}},
		{name: "continent", gender: FilterAll, continent: "Europe", position: FilterAll, want: []string{"P-1", "P-4"}},
		{name: "continent unknown bucket", gender: FilterAll, continent: "Unknown", position: FilterAll, want: []string{"P-3"}},
		{name: "position", gender: FilterAll, continent: FilterAll, position: PositionGoalkeeper, want: []string{"P-3"}},
		{name: "combined", gender: GenderWomen, continent: "Europe", position: PositionDefender, want: []string{"P-4"}},
		{name: "combined empty", gender: GenderMen, continent: "South America", position: FilterAll, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := playerIDs(FilterPlayers(rows, tt.gender, tt.continent, tt.position))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPlayers_UnrecognizedValuesPassThrough(t *testing.T) {
	rows := samplePlayers()
	got := FilterPlayers(rows, "Mixed", "Atlantis", "Sweeper")
	if len(got) != len(rows) {
		t.Fatalf("unrecognized facet values dropped rows: got %d, want %d", len(got), len(rows))
	}
}
