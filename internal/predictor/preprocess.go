package predictor

import (
	"math"
	"sort"

	"github.com/KPfeil25/world-cup-26-predictions/internal/features"
)

// numericFeatures flattens the numeric columns of a feature row.
// Booleans ride along as 0/1.
func numericFeatures(row features.TrainingRow) []float64 {
	return []float64{
		boolToFloat(row.ExtraTime),
		boolToFloat(row.PenaltyShootout),
		float64(row.HomeTeamAwards),
		float64(row.AwayTeamAwards),
		row.AvgTemp,
		float64(row.Year),
		row.HomeTeamRank,
		row.AwayTeamRank,
	}
}

func categoricalFeatures(row features.TrainingRow) []string {
	return []string{
		row.StageName,
		row.StadiumID,
		row.CityName,
		row.HomeTeamName,
		row.AwayTeamName,
		row.HomePlayerID,
		row.PositionCode,
		row.AwayPlayerID,
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Preprocessor turns mixed feature rows into the dense vectors the
// forest consumes. Numeric columns are median-imputed then
// standardized; categorical columns are most-frequent-imputed then
// one-hot encoded, with categories unseen at fit time encoding to an
// all-zero block.
type Preprocessor struct {
	Medians      []float64  `json:"medians"`
	Means        []float64  `json:"means"`
	Scales       []float64  `json:"scales"`
	MostFrequent []string   `json:"most_frequent"`
	Categories   [][]string `json:"categories"`
}

func fitPreprocessor(rows []features.TrainingRow) Preprocessor {
	numeric := make([][]float64, len(rows))
	categorical := make([][]string, len(rows))
	for i, row := range rows {
		numeric[i] = numericFeatures(row)
		categorical[i] = categoricalFeatures(row)
	}

	var p Preprocessor
	if len(rows) == 0 {
		return p
	}

	numCols := len(numeric[0])
	p.Medians = make([]float64, numCols)
	p.Means = make([]float64, numCols)
	p.Scales = make([]float64, numCols)
	for col := 0; col < numCols; col++ {
		values := make([]float64, 0, len(numeric))
		for _, row := range numeric {
			if !math.IsNaN(row[col]) {
				values = append(values, row[col])
			}
		}
		p.Medians[col] = median(values)

		mean, scale := 0.0, 1.0
		if len(values) > 0 {
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			mean = sum / float64(len(values))
			variance := 0.0
			for _, v := range values {
				variance += (v - mean) * (v - mean)
			}
			if sd := math.Sqrt(variance / float64(len(values))); sd > 0 {
				scale = sd
			}
		}
		p.Means[col] = mean
		p.Scales[col] = scale
	}

	catCols := len(categorical[0])
	p.MostFrequent = make([]string, catCols)
	p.Categories = make([][]string, catCols)
	for col := 0; col < catCols; col++ {
		counts := make(map[string]int)
		for _, row := range categorical {
			if row[col] != "" {
				counts[row[col]]++
			}
		}
		values := make([]string, 0, len(counts))
		for value := range counts {
			values = append(values, value)
		}
		sort.Strings(values)
		p.Categories[col] = values

		best := ""
		for _, value := range values {
			if best == "" || counts[value] > counts[best] {
				best = value
			}
		}
		p.MostFrequent[col] = best
	}
	return p
}

// Width reports the length of the transformed vectors.
func (p Preprocessor) Width() int {
	width := len(p.Medians)
	for _, values := range p.Categories {
		width += len(values)
	}
	return width
}

// Transform maps one feature row to its dense vector.
func (p Preprocessor) Transform(row features.TrainingRow) []float64 {
	numeric := numericFeatures(row)
	categorical := categoricalFeatures(row)

	out := make([]float64, 0, p.Width())
	for col := range p.Medians {
		v := numeric[col]
		if math.IsNaN(v) {
			v = p.Medians[col]
		}
		out = append(out, (v-p.Means[col])/p.Scales[col])
	}
	for col, values := range p.Categories {
		value := categorical[col]
		if value == "" {
			value = p.MostFrequent[col]
		}
		for _, candidate := range values {
			if candidate == value {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
