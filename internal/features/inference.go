package features

import (
	"sort"
	"strings"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

// Matchup is a hypothetical 2026 fixture to score.
type Matchup struct {
	HomeTeam    string
	AwayTeam    string
	StadiumID   string
	Temperature float64
	Gender      string
}

const (
	defaultRank         = 50
	defaultPositionCode = "GK"
	inferenceStage      = "Group stage"
	inferenceYear       = 2026
	unknownCity         = "Unknown"
)

// AssembleInferenceRow builds a feature row for a matchup using the
// same column layout the training set carries, minus the label.
// Unranked teams fall back to rank 50 and a stadium with no match
// history yields an "Unknown" city; both keep the row scorable
// instead of failing the request.
func AssembleInferenceRow(m Matchup, ds tablestore.Dataset) TrainingRow {
	ranks := rankLookup(rankingTable(ds, m.Gender))
	homeRank, ok := ranks[m.HomeTeam]
	if !ok {
		homeRank = defaultRank
	}
	awayRank, ok := ranks[m.AwayTeam]
	if !ok {
		awayRank = defaultRank
	}

	homePlayer, awayPlayer, position := lineupHints(ds.Table("player_appearances"), m.HomeTeam, m.AwayTeam)

	return TrainingRow{
		StageName:       inferenceStage,
		StadiumID:       m.StadiumID,
		CityName:        cityForStadium(ds.Table("matches"), m.StadiumID),
		HomeTeamName:    m.HomeTeam,
		AwayTeamName:    m.AwayTeam,
		ExtraTime:       false,
		PenaltyShootout: false,
		HomePlayerID:    homePlayer,
		PositionCode:    position,
		AwayPlayerID:    awayPlayer,
		HomeTeamAwards:  TeamAwardCount(ds, m.HomeTeam),
		AwayTeamAwards:  TeamAwardCount(ds, m.AwayTeam),
		AvgTemp:         m.Temperature,
		Year:            inferenceYear,
		HomeTeamRank:    homeRank,
		AwayTeamRank:    awayRank,
	}
}

func rankingTable(ds tablestore.Dataset, gender string) tablestore.Table {
	if gender == genderWomen {
		return ds.Table("fifa_womens_rankings")
	}
	return ds.Table("fifa_mens_rankings")
}

// TeamAwardCount counts award_winners rows for a team by
// case-insensitive name match, the lookup the serving path uses when
// no team id is at hand.
func TeamAwardCount(ds tablestore.Dataset, teamName string) int {
	want := strings.ToLower(teamName)
	count := 0
	ds.Table("award_winners").Rows(func(row tablestore.Row) {
		if name, ok := row.String("team_name"); ok && strings.ToLower(name) == want {
			count++
		}
	})
	return count
}

func cityForStadium(matches tablestore.Table, stadiumID string) string {
	city := unknownCity
	found := false
	matches.Rows(func(row tablestore.Row) {
		if found {
			return
		}
		if row.StringOr("stadium_id", "") != stadiumID {
			return
		}
		if name, ok := row.String("city_name"); ok {
			city = name
			found = true
		}
	})
	return city
}

// lineupHints picks the first recorded player id for each side and
// the most frequent position code overall, GK when the table carries
// none. First-seen order breaks frequency ties.
func lineupHints(appearances tablestore.Table, homeTeam, awayTeam string) (homePlayer, awayPlayer, position string) {
	position = defaultPositionCode

	positionCounts := make(map[string]int)
	positionFirstSeen := make(map[string]int)
	order := 0
	appearances.Rows(func(row tablestore.Row) {
		team := row.StringOr("team_name", "")
		if playerID, ok := row.String("player_id"); ok {
			if homePlayer == "" && team == homeTeam {
				homePlayer = playerID
			}
			if awayPlayer == "" && team == awayTeam {
				awayPlayer = playerID
			}
		}
		if code, ok := row.String("position_code"); ok {
			if _, seen := positionCounts[code]; !seen {
				positionFirstSeen[code] = order
			}
			positionCounts[code]++
			order++
		}
	})

	best := 0
	for code, count := range positionCounts {
		switch {
		case count > best,
			count == best && positionFirstSeen[code] < positionFirstSeen[position]:
			position = code
			best = count
		}
	}
	return homePlayer, awayPlayer, position
}

// Stadium pairs a stadium id with its display name.
type Stadium struct {
	ID   string
	Name string
}

// StadiumNames lists the stadiums seen in the matches table, named by
// their stadium_name column when present and "Stadium <id>" otherwise,
// sorted by id.
func StadiumNames(ds tablestore.Dataset) []Stadium {
	names := make(map[string]string)
	ds.Table("matches").Rows(func(row tablestore.Row) {
		id, ok := row.String("stadium_id")
		if !ok {
			return
		}
		if name, ok := row.String("stadium_name"); ok {
			names[id] = name
		} else if _, seen := names[id]; !seen {
			names[id] = "Stadium " + id
		}
	})

	out := make([]Stadium, 0, len(names))
	for id, name := range names {
		out = append(out, Stadium{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TeamsByGender lists the home teams of the gender's tournaments,
// sorted and de-duplicated.
func TeamsByGender(ds tablestore.Dataset, gender string) []string {
	word := genderMen
	if gender == genderWomen {
		word = genderWomen
	}
	seen := make(map[string]struct{})
	ds.Table("matches").Rows(func(row tablestore.Row) {
		if !strings.Contains(row.StringOr("tournament_name", ""), word) {
			return
		}
		if name, ok := row.String("home_team_name"); ok {
			seen[name] = struct{}{}
		}
	})

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AvailableYears lists the tournament years a team has played in,
// newest first, with 2026 always offered for upcoming predictions.
func AvailableYears(ds tablestore.Dataset, teamName, gender string) []int {
	word := genderMen
	if gender == genderWomen {
		word = genderWomen
	}
	seen := make(map[int]struct{})
	ds.Table("matches").Rows(func(row tablestore.Row) {
		if !strings.Contains(row.StringOr("tournament_name", ""), word) {
			return
		}
		if row.StringOr("home_team_name", "") != teamName && row.StringOr("away_team_name", "") != teamName {
			return
		}
		if year, ok := row.Year("match_date"); ok {
			seen[year] = struct{}{}
		}
	})

	years := make([]int, 0, len(seen)+1)
	for year := range seen {
		years = append(years, year)
	}
	if _, ok := seen[inferenceYear]; !ok {
		years = append(years, inferenceYear)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
