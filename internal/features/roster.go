package features

import (
	"sort"
	"strings"

	"github.com/KPfeil25/world-cup-26-predictions/internal/stats"
	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

const unknownPlayerName = "Unknown Player"

var positionOrder = map[string]int{"GK": 1, "DF": 2, "MF": 3, "FW": 4}

type rosterEntry struct {
	name     string
	position string
	year     int
}

// TeamRoster returns the player names for a team's squad in a given
// tournament year, goalkeepers first and forwards last. Year 2026 has
// no appearance data yet, so it serves the team's most recent squad
// instead. Names come from the given/family name columns run through
// the placeholder cleanup, blank pairs showing as "Unknown Player".
func TeamRoster(ds tablestore.Dataset, teamName, gender string, year int) []string {
	word := genderMen
	if gender == genderWomen {
		word = genderWomen
	}

	var entries []rosterEntry
	mostRecent := 0
	ds.Table("player_appearances").Rows(func(row tablestore.Row) {
		if !strings.Contains(row.StringOr("tournament_name", ""), word) {
			return
		}
		if row.StringOr("team_name", "") != teamName {
			return
		}
		rowYear, ok := appearanceYear(row)
		if !ok {
			return
		}
		if rowYear > mostRecent {
			mostRecent = rowYear
		}
		entries = append(entries, rosterEntry{
			name:     rosterName(row),
			position: row.StringOr("position_code", ""),
			year:     rowYear,
		})
	})

	// A 2026 request falls back to whatever the latest squad turned
	// out to be, which is only known after the scan.
	wantYear := year
	if year == inferenceYear {
		wantYear = mostRecent
	}

	unique := make([]rosterEntry, 0, len(entries))
	seenNames := make(map[string]struct{})
	for _, entry := range entries {
		if entry.year != wantYear {
			continue
		}
		if _, dup := seenNames[entry.name]; dup {
			continue
		}
		seenNames[entry.name] = struct{}{}
		unique = append(unique, entry)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return positionRank(unique[i].position) < positionRank(unique[j].position)
	})

	out := make([]string, 0, len(unique))
	for _, entry := range unique {
		out = append(out, entry.name)
	}
	return out
}

func rosterName(row tablestore.Row) string {
	given := stats.CleanName(row.StringOr("given_name", ""))
	family := stats.CleanName(row.StringOr("family_name", ""))
	name := strings.TrimSpace(given + " " + family)
	if name == "" {
		return unknownPlayerName
	}
	return name
}

func appearanceYear(row tablestore.Row) (int, bool) {
	if year, ok := row.Int("year"); ok {
		return year, ok
	}
	return row.Year("match_date")
}

func positionRank(code string) int {
	if rank, ok := positionOrder[code]; ok {
		return rank
	}
	return 5
}
