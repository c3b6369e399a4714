package predictor

import "strings"

// Outcome is a canonical match result class.
type Outcome string

const (
	OutcomeHomeWin Outcome = "HomeWin"
	OutcomeAwayWin Outcome = "AwayWin"
	OutcomeDraw    Outcome = "Draw"
)

// ParseOutcome normalizes the result vocabularies found in the source
// data. Older extracts label rows win/loss/draw from the home side's
// point of view; newer ones spell the side out.
func ParseOutcome(raw string) (Outcome, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "win", "home team win":
		return OutcomeHomeWin, true
	case "loss", "away team win":
		return OutcomeAwayWin, true
	case "draw":
		return OutcomeDraw, true
	default:
		return "", false
	}
}

// LabelCodec maps outcomes to the class indices the forest trains on.
// Classes hold the outcomes in index order.
type LabelCodec struct {
	Classes []Outcome `json:"classes"`
}

func newLabelCodec() LabelCodec {
	return LabelCodec{Classes: []Outcome{OutcomeHomeWin, OutcomeAwayWin, OutcomeDraw}}
}

func (c LabelCodec) Encode(o Outcome) (int, bool) {
	for i, class := range c.Classes {
		if class == o {
			return i, true
		}
	}
	return 0, false
}

func (c LabelCodec) Decode(class int) Outcome {
	if class < 0 || class >= len(c.Classes) {
		return OutcomeDraw
	}
	return c.Classes[class]
}
