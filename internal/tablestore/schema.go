package tablestore

// Schema reports which optional columns the loaded dataset actually
// carries. Aggregation consults these capability flags once instead
// of re-checking column existence at every join.
type Schema struct {
	GoalsHavePlayerID     bool
	GoalsHaveMatchID      bool
	GoalsHaveMinute       bool
	MatchesHaveKnockout   bool
	MatchesHaveDate       bool
	SubsHaveComingOn      bool
	SubsHaveGoingOff      bool
	SubsHaveMatchID       bool
	SquadsHaveMembership  bool
	TeamsHaveConfed       bool
	PenaltiesHavePlayerID bool
	PlayersHaveNames      bool
}

// Capabilities inspects a dataset snapshot.
func Capabilities(ds Dataset) Schema {
	goals := ds.Table("goals")
	matches := ds.Table("matches")
	subs := ds.Table("substitutions")
	squads := ds.Table("squads")
	teams := ds.Table("teams")
	penalties := ds.Table("penalty_kicks")
	players := ds.Table("players")

	return Schema{
		GoalsHavePlayerID:     !goals.Empty() && goals.HasColumn("player_id"),
		GoalsHaveMatchID:      !goals.Empty() && goals.HasColumns("match_id", "player_id"),
		GoalsHaveMinute:       !goals.Empty() && goals.HasColumn("minute_regulation"),
		MatchesHaveKnockout:   !matches.Empty() && matches.HasColumn("knockout_stage"),
		MatchesHaveDate:       !matches.Empty() && matches.HasColumn("match_date"),
		SubsHaveComingOn:      !subs.Empty() && subs.HasColumn("coming_on"),
		SubsHaveGoingOff:      !subs.Empty() && subs.HasColumn("going_off"),
		SubsHaveMatchID:       !subs.Empty() && subs.HasColumns("match_id", "player_id"),
		SquadsHaveMembership:  !squads.Empty() && squads.HasColumns("player_id", "team_id"),
		TeamsHaveConfed:       !teams.Empty() && teams.HasColumn("confederation_code"),
		PenaltiesHavePlayerID: !penalties.Empty() && penalties.HasColumn("player_id"),
		PlayersHaveNames:      !players.Empty() && players.HasColumns("given_name", "family_name"),
	}
}
