package stats

import (
	"sort"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

// TeamRecord summarizes a team's results across the matches table.
type TeamRecord struct {
	TeamName    string
	Wins        int
	Draws       int
	Losses      int
	TotalGoals  int
	GoalsByYear map[int]int
}

// AggregateTeamRecords tallies win/draw/loss counts and goals scored per
// tournament year for every team appearing in the matches table. Men's
// tournaments fall on even years and women's on odd; GenderMen and
// GenderWomen select a partition, anything else keeps both. year filters
// to a single tournament when non-zero.
func AggregateTeamRecords(ds tablestore.Dataset, gender string, year int) []TeamRecord {
	matches := ds.Table("matches")
	byTeam := make(map[string]*TeamRecord)

	matches.Rows(func(row tablestore.Row) {
		matchYear := matchYearOf(row)
		if matchYear == 0 {
			return
		}
		switch gender {
		case GenderMen:
			if matchYear%2 != 0 {
				return
			}
		case GenderWomen:
			if matchYear%2 == 0 {
				return
			}
		}
		if year != 0 && matchYear != year {
			return
		}

		homeWin := row.BoolOr("home_team_win", false)
		awayWin := row.BoolOr("away_team_win", false)
		draw := row.BoolOr("draw", false)
		homeScore, _ := row.Int("home_team_score")
		awayScore, _ := row.Int("away_team_score")

		if home, ok := row.String("home_team_name"); ok {
			rec := teamRecordFor(byTeam, home)
			rec.record(homeWin, draw, matchYear, homeScore)
		}
		if away, ok := row.String("away_team_name"); ok {
			rec := teamRecordFor(byTeam, away)
			rec.record(awayWin, draw, matchYear, awayScore)
		}
	})

	out := make([]TeamRecord, 0, len(byTeam))
	for _, rec := range byTeam {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamName < out[j].TeamName })
	return out
}

func (r *TeamRecord) record(won, draw bool, year, goals int) {
	switch {
	case won:
		r.Wins++
	case draw:
		r.Draws++
	default:
		r.Losses++
	}
	r.TotalGoals += goals
	r.GoalsByYear[year] += goals
}

func teamRecordFor(byTeam map[string]*TeamRecord, name string) *TeamRecord {
	rec, ok := byTeam[name]
	if !ok {
		rec = &TeamRecord{TeamName: name, GoalsByYear: make(map[int]int)}
		byTeam[name] = rec
	}
	return rec
}

// matchYearOf reads the tournament year, preferring the match date and
// falling back to the four-digit run inside tournament_id.
func matchYearOf(row tablestore.Row) int {
	if y, ok := row.Year("match_date"); ok {
		return y
	}
	id, ok := row.String("tournament_id")
	if !ok {
		return 0
	}
	return yearFromTournamentID(id)
}

func yearFromTournamentID(id string) int {
	digits := 0
	value := 0
	for i := 0; i <= len(id); i++ {
		if i < len(id) && id[i] >= '0' && id[i] <= '9' {
			digits++
			value = value*10 + int(id[i]-'0')
			continue
		}
		if digits == 4 {
			return value
		}
		digits = 0
		value = 0
	}
	return 0
}
