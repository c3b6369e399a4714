package tablestore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_MissingFilesBecomeEmptyTables(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "players", "player_id,given_name,family_name,female\np1,Lionel,Messi,false\n")

	ds, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	players := ds.Table("players")
	if players.Len() != 1 {
		t.Fatalf("players rows: got=%d want=1", players.Len())
	}

	goals := ds.Table("goals")
	if !goals.Empty() {
		t.Fatalf("expected empty goals table")
	}
	if len(goals.Columns()) != 0 {
		t.Fatalf("expected no columns on missing table, got %v", goals.Columns())
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "goals", "match_id,player_id\nm1,\"p1\nbroken")

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected parse error for malformed csv")
	}
}

func TestRow_TypedAccessors(t *testing.T) {
	table := NewTable("sample",
		[]string{"id", "count", "ratio", "flag", "when", "blank"},
		[][]string{{"a1", "3.0", "0.5", "True", "2014-07-13", ""}},
	)

	row := table.Row(0)

	if v, ok := row.String("id"); !ok || v != "a1" {
		t.Fatalf("string: got=%q ok=%v", v, ok)
	}
	if v, ok := row.Int("count"); !ok || v != 3 {
		t.Fatalf("int from float dtype: got=%d ok=%v", v, ok)
	}
	if v, ok := row.Float("ratio"); !ok || v != 0.5 {
		t.Fatalf("float: got=%v ok=%v", v, ok)
	}
	if v, ok := row.Bool("flag"); !ok || !v {
		t.Fatalf("bool: got=%v ok=%v", v, ok)
	}
	if y, ok := row.Year("when"); !ok || y != 2014 {
		t.Fatalf("year: got=%d ok=%v", y, ok)
	}
	if _, ok := row.String("blank"); ok {
		t.Fatalf("empty cell should read as not-present")
	}
	if _, ok := row.Int("missing_column"); ok {
		t.Fatalf("missing column should read as not-present")
	}
}

func TestCapabilities(t *testing.T) {
	ds := NewDataset(map[string]Table{
		"goals": NewTable("goals",
			[]string{"goal_id", "match_id", "player_id", "minute_regulation"},
			[][]string{{"g1", "m1", "p1", "80"}},
		),
		"matches": NewTable("matches",
			[]string{"match_id", "knockout_stage"},
			[][]string{{"m1", "true"}},
		),
	})

	schema := Capabilities(ds)
	if !schema.GoalsHaveMatchID || !schema.GoalsHaveMinute {
		t.Fatalf("goal capabilities not detected: %+v", schema)
	}
	if !schema.MatchesHaveKnockout {
		t.Fatalf("knockout capability not detected")
	}
	if schema.SquadsHaveMembership || schema.TeamsHaveConfed {
		t.Fatalf("absent tables must not report capabilities: %+v", schema)
	}
}
