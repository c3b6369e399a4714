package stats

// Filter selections. "All" — or any unrecognized value — passes every
// row through; a stale UI option must never silently hide the data.
const (
	FilterAll = "All"

	GenderMen   = "Men"
	GenderWomen = "Women"

	PositionGoalkeeper = "Goalkeeper"
	PositionDefender   = "Defender"
	PositionMidfielder = "Midfielder"
	PositionForward    = "Forward"
)

// Continents reports the continent facet values in display order.
func Continents() []string {
	return []string{"Europe", "South America", "North America", "Asia", "Africa", "Oceania", "Unknown"}
}

// FilterPlayers returns the subsequence of rows matching every
// selected facet. Filtering with all-"All" arguments is the identity,
// and filtering twice with the same arguments is idempotent.
func FilterPlayers(rows []PlayerStats, gender, continent, position string) []PlayerStats {
	out := make([]PlayerStats, 0, len(rows))
	for _, row := range rows {
		if !matchesGender(row, gender) {
			continue
		}
		if !matchesContinent(row, continent) {
			continue
		}
		if !matchesPosition(row, position) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matchesGender(row PlayerStats, gender string) bool {
	switch gender {
	case GenderMen:
		return !row.Female
	case GenderWomen:
		return row.Female
	default:
		return true
	}
}

func matchesContinent(row PlayerStats, continent string) bool {
	if continent == FilterAll || continent == "" {
		return true
	}
	switch continent {
	case "Europe", "South America", "North America", "Asia", "Africa", "Oceania", "Unknown":
		return row.Continent == continent
	default:
		return true
	}
}

func matchesPosition(row PlayerStats, position string) bool {
	switch position {
	case PositionGoalkeeper:
		return row.Goalkeeper
	case PositionDefender:
		return row.Defender
	case PositionMidfielder:
		return row.Midfielder
	case PositionForward:
		return row.Forward
	default:
		return true
	}
}
