package features

import (
	"strings"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

// TrainingRow is one example for the match-outcome model. Result is the
// label and stays empty on rows assembled for inference.
type TrainingRow struct {
	StageName       string
	StadiumID       string
	CityName        string
	HomeTeamName    string
	AwayTeamName    string
	ExtraTime       bool
	PenaltyShootout bool
	Result          string
	HomePlayerID    string
	PositionCode    string
	AwayPlayerID    string
	HomeTeamAwards  int
	AwayTeamAwards  int
	AvgTemp         float64
	Year            int
	HomeTeamRank    float64
	AwayTeamRank    float64
}

const (
	genderMen   = "Men"
	genderWomen = "Women"

	tempTypeMen   = "M"
	tempTypeWomen = "W"
)

type tempKey struct {
	year int
	city string
}

type matchTeamKey struct {
	matchID  string
	teamName string
}

type appearance struct {
	playerID     string
	positionCode string
}

// BuildTrainingSet assembles the model's training examples from the
// historical tables. Matches partition into men's and women's by the
// tournament name; each partition joins its own ranking table (inner,
// so unranked matchups drop out) and its own temperature partition by
// year and host city. Each surviving match then fans out over the
// home and away lineups: one row per home player paired with each
// away player sharing the position code.
func BuildTrainingSet(ds tablestore.Dataset) []TrainingRow {
	mensRanks := rankLookup(ds.Table("fifa_mens_rankings"))
	womensRanks := rankLookup(ds.Table("fifa_womens_rankings"))
	mensTemps := temperatureLookup(ds.Table("temperatures_partitioned"), tempTypeMen)
	womensTemps := temperatureLookup(ds.Table("temperatures_partitioned"), tempTypeWomen)
	appsByMatchTeam := appearanceLookup(ds.Table("player_appearances"))
	awardsByTeamID := awardCountsByTeamID(ds.Table("award_winners"))

	var out []TrainingRow
	ds.Table("matches").Rows(func(row tablestore.Row) {
		tournament := row.StringOr("tournament_name", "")
		var ranks map[string]float64
		var temps map[tempKey]float64
		switch {
		case strings.Contains(tournament, genderWomen):
			ranks = womensRanks
			temps = womensTemps
		case strings.Contains(tournament, genderMen):
			ranks = mensRanks
			temps = mensTemps
		default:
			return
		}

		homeTeam := row.StringOr("home_team_name", "")
		awayTeam := row.StringOr("away_team_name", "")
		homeRank, homeOK := ranks[homeTeam]
		awayRank, awayOK := ranks[awayTeam]
		if !homeOK || !awayOK {
			return
		}

		year, ok := row.Year("match_date")
		if !ok {
			return
		}
		avgTemp, ok := temps[tempKey{year: year, city: row.StringOr("city_name", "")}]
		if !ok {
			return
		}

		matchID := row.StringOr("match_id", "")
		base := TrainingRow{
			StageName:       row.StringOr("stage_name", ""),
			StadiumID:       row.StringOr("stadium_id", ""),
			CityName:        row.StringOr("city_name", ""),
			HomeTeamName:    homeTeam,
			AwayTeamName:    awayTeam,
			ExtraTime:       row.BoolOr("extra_time", false),
			PenaltyShootout: row.BoolOr("penalty_shootout", false),
			Result:          row.StringOr("result", ""),
			HomeTeamAwards:  awardsByTeamID[row.StringOr("home_team_id", "")],
			AwayTeamAwards:  awardsByTeamID[row.StringOr("away_team_id", "")],
			AvgTemp:         avgTemp,
			Year:            year,
			HomeTeamRank:    homeRank,
			AwayTeamRank:    awayRank,
		}

		homeApps := appsByMatchTeam[matchTeamKey{matchID: matchID, teamName: homeTeam}]
		awayApps := appsByMatchTeam[matchTeamKey{matchID: matchID, teamName: awayTeam}]
		for _, home := range homeApps {
			for _, away := range awayApps {
				if away.positionCode != home.positionCode {
					continue
				}
				example := base
				example.HomePlayerID = home.playerID
				example.PositionCode = home.positionCode
				example.AwayPlayerID = away.playerID
				out = append(out, example)
			}
		}
	})
	return out
}

func rankLookup(table tablestore.Table) map[string]float64 {
	out := make(map[string]float64)
	table.Rows(func(row tablestore.Row) {
		team, okTeam := row.String("team")
		rank, okRank := row.Float("rank")
		if !okTeam || !okRank {
			return
		}
		// A team listed twice keeps its first rank.
		if _, seen := out[team]; !seen {
			out[team] = rank
		}
	})
	return out
}

func temperatureLookup(table tablestore.Table, partition string) map[tempKey]float64 {
	out := make(map[tempKey]float64)
	table.Rows(func(row tablestore.Row) {
		if row.StringOr("type", "") != partition {
			return
		}
		year, okYear := row.Int("year")
		temp, okTemp := row.Float("avg_temp")
		if !okYear || !okTemp {
			return
		}
		out[tempKey{year: year, city: row.StringOr("city_name", "")}] = temp
	})
	return out
}

func appearanceLookup(table tablestore.Table) map[matchTeamKey][]appearance {
	out := make(map[matchTeamKey][]appearance)
	table.Rows(func(row tablestore.Row) {
		matchID, okMatch := row.String("match_id")
		teamName, okTeam := row.String("team_name")
		playerID, okPlayer := row.String("player_id")
		if !okMatch || !okTeam || !okPlayer {
			return
		}
		key := matchTeamKey{matchID: matchID, teamName: teamName}
		out[key] = append(out[key], appearance{
			playerID:     playerID,
			positionCode: row.StringOr("position_code", ""),
		})
	})
	return out
}

func awardCountsByTeamID(table tablestore.Table) map[string]int {
	out := make(map[string]int)
	table.Rows(func(row tablestore.Row) {
		if teamID, ok := row.String("team_id"); ok {
			out[teamID]++
		}
	})
	return out
}
