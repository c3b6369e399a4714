package predictor

import (
	"math/rand"

	"github.com/cockroachdb/errors"

	"github.com/KPfeil25/world-cup-26-predictions/internal/features"
)

// TrainConfig tunes a training run. Zero values take the defaults the
// model has always shipped with.
type TrainConfig struct {
	Trees   int
	Seed    int64
	Workers int
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.Trees <= 0 {
		c.Trees = defaultTrees
	}
	if c.Seed == 0 {
		c.Seed = defaultSeed
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	return c
}

// Metrics summarize a training run.
type Metrics struct {
	TrainingRows       int     `json:"training_rows"`
	ValidationRows     int     `json:"validation_rows"`
	ValidationAccuracy float64 `json:"validation_accuracy"`
}

const holdoutFraction = 0.25

// Train fits the full pipeline on the labeled rows. A quarter of the
// rows is held out and only used to score validation accuracy; the
// returned artifact is fitted on the remaining three quarters.
func Train(rows []features.TrainingRow, cfg TrainConfig) (*Artifact, Metrics, error) {
	cfg = cfg.withDefaults()
	codec := newLabelCodec()

	labeled := make([]features.TrainingRow, 0, len(rows))
	labels := make([]int, 0, len(rows))
	for _, row := range rows {
		outcome, ok := ParseOutcome(row.Result)
		if !ok {
			continue
		}
		class, _ := codec.Encode(outcome)
		labeled = append(labeled, row)
		labels = append(labels, class)
	}
	if len(labeled) < 2 {
		return nil, Metrics{}, errors.Newf("training needs at least 2 labeled rows, have %d", len(labeled))
	}

	trainIdx, holdIdx := split(len(labeled), holdoutFraction, cfg.Seed)

	trainRows := make([]features.TrainingRow, len(trainIdx))
	trainLabels := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainRows[i] = labeled[idx]
		trainLabels[i] = labels[idx]
	}

	pre := fitPreprocessor(trainRows)
	x := make([][]float64, len(trainRows))
	for i, row := range trainRows {
		x[i] = pre.Transform(row)
	}

	forest, err := fitForest(x, trainLabels, len(codec.Classes), cfg.Trees, cfg.Seed, cfg.Workers)
	if err != nil {
		return nil, Metrics{}, errors.Wrap(err, "fit forest")
	}

	artifact := &Artifact{
		Preprocessor: pre,
		Forest:       forest,
		Labels:       codec,
	}

	metrics := Metrics{
		TrainingRows:   len(trainIdx),
		ValidationRows: len(holdIdx),
	}
	correct := 0
	for _, idx := range holdIdx {
		outcome, _ := artifact.Predict(labeled[idx], 0)
		if class, _ := codec.Encode(outcome); class == labels[idx] {
			correct++
		}
	}
	if len(holdIdx) > 0 {
		metrics.ValidationAccuracy = float64(correct) / float64(len(holdIdx))
	}
	artifact.Metrics = metrics
	return artifact, metrics, nil
}

// split shuffles row indices deterministically and carves off the
// holdout fraction.
func split(n int, holdout float64, seed int64) (train, hold []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	cut := int(float64(n) * holdout)
	if cut == 0 && n > 1 {
		cut = 1
	}
	return perm[cut:], perm[:cut]
}

// Predict scores one feature row. Confidence is 100 times the top
// class probability; a forest with no trees carries no probability
// support, so the caller-supplied default stands in.
func (a *Artifact) Predict(row features.TrainingRow, defaultConfidence float64) (Outcome, float64) {
	proba := a.Forest.PredictProba(a.Preprocessor.Transform(row))

	best, bestP := 0, 0.0
	for class, p := range proba {
		if p > bestP {
			best = class
			bestP = p
		}
	}
	if bestP == 0 {
		return a.Labels.Decode(best), defaultConfidence
	}
	return a.Labels.Decode(best), bestP * 100
}
