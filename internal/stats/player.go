package stats

import (
	"sort"

	"github.com/KPfeil25/world-cup-26-predictions/internal/tablestore"
)

// PlayerStats is one enriched row per player: raw attributes joined
// with counters and 0-safe ratios derived from the event tables.
type PlayerStats struct {
	PlayerID   string
	FullName   string
	Female     bool
	Goalkeeper bool
	Defender   bool
	Midfielder bool
	Forward    bool
	BirthYear  int

	TotalAppearances   int
	TotalGoals         int
	KnockoutGoals      int
	GoalsPerAppearance float64
	TotalCards         int
	CardsPerAppearance float64
	PenaltyAttempts    int
	PenaltyConverted   int
	PenaltyConversion  float64
	TotalAwards        int
	TimesSubbedOn      int
	TimesSubbedOff     int
	SubbedOnGoals      int
	ClutchGoals        int

	PrimaryTeamName      string
	PrimaryTeamCode      string
	PrimaryConfederation string
	Continent            string
}

const (
	unknownTeamName = "Unknown"
	unknownTeamCode = "---"
	clutchMinute    = 75
)

var continentByConfederation = map[string]string{
	"UEFA":     "Europe",
	"CONMEBOL": "South America",
	"CONCACAF": "North America",
	"AFC":      "Asia",
	"CAF":      "Africa",
	"OFC":      "Oceania",
}

// ContinentFor maps a confederation code to its continent label,
// "Unknown" for anything unrecognized.
func ContinentFor(confederation string) string {
	if continent, ok := continentByConfederation[confederation]; ok {
		return continent
	}
	return "Unknown"
}

// AggregatePlayers produces one PlayerStats per row of the players
// table. Every event metric uses left-join semantics: a player with
// no matching events gets 0, and a missing table or column degrades
// the affected metric to its default instead of failing the run.
func AggregatePlayers(ds tablestore.Dataset) []PlayerStats {
	schema := tablestore.Capabilities(ds)

	appearances := countByPlayer(ds.Table("player_appearances"))
	goals := countByPlayer(ds.Table("goals"))
	cards := countByPlayer(ds.Table("bookings"))
	awards := countByPlayer(ds.Table("award_winners"))
	penaltyAttempts, penaltyConverted := penaltyCounts(ds, schema)
	knockoutGoals := knockoutGoalCounts(ds, schema)
	clutchGoals := clutchGoalCounts(ds, schema)
	subbedOn, subbedOff, subbedOnKeys := substitutionCounts(ds, schema)
	subbedOnGoals := subbedOnGoalCounts(ds, schema, subbedOnKeys)
	primaryTeams := primaryTeamLookup(ds, schema)

	players := ds.Table("players")
	out := make([]PlayerStats, 0, players.Len())
	players.Rows(func(row tablestore.Row) {
		id := row.StringOr("player_id", "")

		ps := PlayerStats{
			PlayerID:   id,
			FullName:   FullName(row.StringOr("given_name", ""), row.StringOr("family_name", "")),
			Female:     row.BoolOr("female", false),
			Goalkeeper: row.BoolOr("goal_keeper", false),
			Defender:   row.BoolOr("defender", false),
			Midfielder: row.BoolOr("midfielder", false),
			Forward:    row.BoolOr("forward", false),

			TotalAppearances: appearances[id],
			TotalGoals:       goals[id],
			KnockoutGoals:    knockoutGoals[id],
			TotalCards:       cards[id],
			PenaltyAttempts:  penaltyAttempts[id],
			PenaltyConverted: penaltyConverted[id],
			TotalAwards:      awards[id],
			TimesSubbedOn:    subbedOn[id],
			TimesSubbedOff:   subbedOff[id],
			SubbedOnGoals:    subbedOnGoals[id],
			ClutchGoals:      clutchGoals[id],

			PrimaryTeamName:      unknownTeamName,
			PrimaryTeamCode:      unknownTeamCode,
			PrimaryConfederation: "Unknown",
			Continent:            "Unknown",
		}

		if year, ok := row.Year("birth_date"); ok {
			ps.BirthYear = year
		}
		if team, ok := primaryTeams[id]; ok {
			ps.PrimaryTeamName = team.name
			ps.PrimaryTeamCode = team.code
			if team.confederation != "" {
				ps.PrimaryConfederation = team.confederation
				ps.Continent = ContinentFor(team.confederation)
			}
		}

		ps.GoalsPerAppearance = safeRatio(ps.TotalGoals, ps.TotalAppearances)
		ps.CardsPerAppearance = safeRatio(ps.TotalCards, ps.TotalAppearances)
		ps.PenaltyConversion = safeRatio(ps.PenaltyConverted, ps.PenaltyAttempts)

		out = append(out, ps)
	})

	return out
}

// safeRatio divides two counters, defining 0/0 and x/0 as 0 so no
// ratio column ever carries NaN or Inf.
func safeRatio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}

func countByPlayer(table tablestore.Table) map[string]int {
	out := make(map[string]int)
	if table.Empty() || !table.HasColumn("player_id") {
		return out
	}
	table.Rows(func(row tablestore.Row) {
		if id, ok := row.String("player_id"); ok {
			out[id]++
		}
	})
	return out
}

func penaltyCounts(ds tablestore.Dataset, schema tablestore.Schema) (attempts, converted map[string]int) {
	attempts = make(map[string]int)
	converted = make(map[string]int)
	if !schema.PenaltiesHavePlayerID {
		return attempts, converted
	}
	ds.Table("penalty_kicks").Rows(func(row tablestore.Row) {
		id, ok := row.String("player_id")
		if !ok {
			return
		}
		attempts[id]++
		if row.BoolOr("converted", false) {
			converted[id]++
		}
	})
	return attempts, converted
}

func knockoutGoalCounts(ds tablestore.Dataset, schema tablestore.Schema) map[string]int {
	out := make(map[string]int)
	if !schema.MatchesHaveKnockout || !schema.GoalsHavePlayerID {
		return out
	}

	knockoutByMatch := make(map[string]bool)
	ds.Table("matches").Rows(func(row tablestore.Row) {
		if id, ok := row.String("match_id"); ok {
			knockoutByMatch[id] = row.BoolOr("knockout_stage", false)
		}
	})

	ds.Table("goals").Rows(func(row tablestore.Row) {
		playerID, ok := row.String("player_id")
		if !ok {
			return
		}
		matchID, _ := row.String("match_id")
		if knockoutByMatch[matchID] {
			out[playerID]++
		}
	})
	return out
}

func clutchGoalCounts(ds tablestore.Dataset, schema tablestore.Schema) map[string]int {
	out := make(map[string]int)
	// Mirrors the historical gate: clutch goals are only derived when
	// match data exists at all, even though only the goal minute is read.
	if !schema.GoalsHaveMinute || ds.Table("matches").Empty() {
		return out
	}
	ds.Table("goals").Rows(func(row tablestore.Row) {
		playerID, ok := row.String("player_id")
		if !ok {
			return
		}
		minute, ok := row.Int("minute_regulation")
		if !ok {
			minute = 0
		}
		if minute >= clutchMinute {
			out[playerID]++
		}
	})
	return out
}

type matchPlayerKey struct {
	matchID  string
	playerID string
}

func substitutionCounts(ds tablestore.Dataset, schema tablestore.Schema) (on, off map[string]int, onKeys map[matchPlayerKey]struct{}) {
	on = make(map[string]int)
	off = make(map[string]int)
	onKeys = make(map[matchPlayerKey]struct{})

	subs := ds.Table("substitutions")
	if subs.Empty() {
		return on, off, onKeys
	}

	subs.Rows(func(row tablestore.Row) {
		playerID, ok := row.String("player_id")
		if !ok {
			return
		}
		if schema.SubsHaveComingOn && row.BoolOr("coming_on", false) {
			on[playerID]++
			if matchID, ok := row.String("match_id"); ok {
				onKeys[matchPlayerKey{matchID: matchID, playerID: playerID}] = struct{}{}
			}
		}
		if schema.SubsHaveGoingOff && row.BoolOr("going_off", false) {
			off[playerID]++
		}
	})
	return on, off, onKeys
}

func subbedOnGoalCounts(ds tablestore.Dataset, schema tablestore.Schema, onKeys map[matchPlayerKey]struct{}) map[string]int {
	out := make(map[string]int)
	if !schema.GoalsHaveMatchID || !schema.SubsHaveMatchID || len(onKeys) == 0 {
		return out
	}
	ds.Table("goals").Rows(func(row tablestore.Row) {
		playerID, okPlayer := row.String("player_id")
		matchID, okMatch := row.String("match_id")
		if !okPlayer || !okMatch {
			return
		}
		if _, subbedOn := onKeys[matchPlayerKey{matchID: matchID, playerID: playerID}]; subbedOn {
			out[playerID]++
		}
	})
	return out
}

type teamAffiliation struct {
	name          string
	code          string
	confederation string
}

type affiliationCount struct {
	team      teamAffiliation
	count     int
	firstSeen int
}

type confederationCount struct {
	code      string
	count     int
	firstSeen int
}

// primaryTeamLookup resolves, per player, the team they appeared for
// most often across squad memberships, and independently the
// confederation they appeared in most often. The two are counted
// separately: a player split across two teams of one confederation can
// have a primary team from another. Ties break on first-seen order
// after a stable sort, matching the historical behavior.
func primaryTeamLookup(ds tablestore.Dataset, schema tablestore.Schema) map[string]teamAffiliation {
	out := make(map[string]teamAffiliation)
	if !schema.SquadsHaveMembership || ds.Table("teams").Empty() {
		return out
	}

	type teamMeta struct {
		name          string
		code          string
		confederation string
	}
	metaByTeam := make(map[string]teamMeta)
	ds.Table("teams").Rows(func(row tablestore.Row) {
		id, ok := row.String("team_id")
		if !ok {
			return
		}
		metaByTeam[id] = teamMeta{
			name:          row.StringOr("team_name", unknownTeamName),
			code:          row.StringOr("team_code", unknownTeamCode),
			confederation: row.StringOr("confederation_code", ""),
		}
	})

	countsByPlayer := make(map[string]map[string]*affiliationCount)
	confsByPlayer := make(map[string]map[string]*confederationCount)
	order := 0
	ds.Table("squads").Rows(func(row tablestore.Row) {
		playerID, okPlayer := row.String("player_id")
		teamID, okTeam := row.String("team_id")
		if !okPlayer || !okTeam {
			return
		}
		meta, known := metaByTeam[teamID]
		if !known {
			// Dangling team id: nothing to attribute, same as the
			// historical join dropping unresolvable memberships.
			return
		}
		counts, ok := countsByPlayer[playerID]
		if !ok {
			counts = make(map[string]*affiliationCount)
			countsByPlayer[playerID] = counts
		}
		entry, ok := counts[teamID]
		if !ok {
			entry = &affiliationCount{
				team: teamAffiliation{
					name:          meta.name,
					code:          meta.code,
					confederation: meta.confederation,
				},
				firstSeen: order,
			}
			counts[teamID] = entry
		}
		entry.count++

		if meta.confederation != "" {
			confs, ok := confsByPlayer[playerID]
			if !ok {
				confs = make(map[string]*confederationCount)
				confsByPlayer[playerID] = confs
			}
			conf, ok := confs[meta.confederation]
			if !ok {
				conf = &confederationCount{code: meta.confederation, firstSeen: order}
				confs[meta.confederation] = conf
			}
			conf.count++
		}
		order++
	})

	for playerID, counts := range countsByPlayer {
		ranked := make([]*affiliationCount, 0, len(counts))
		for _, entry := range counts {
			ranked = append(ranked, entry)
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].count != ranked[j].count {
				return ranked[i].count > ranked[j].count
			}
			return ranked[i].firstSeen < ranked[j].firstSeen
		})
		affiliation := ranked[0].team
		affiliation.confederation = primaryConfederation(confsByPlayer[playerID])
		out[playerID] = affiliation
	}

	return out
}

func primaryConfederation(confs map[string]*confederationCount) string {
	if len(confs) == 0 {
		return ""
	}
	ranked := make([]*confederationCount, 0, len(confs))
	for _, conf := range confs {
		ranked = append(ranked, conf)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].firstSeen < ranked[j].firstSeen
	})
	return ranked[0].code
}
