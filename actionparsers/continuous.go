package actionparsers

import "github.com/zeu5/rlgym-go/core"

// binary channels are pressed when the raw value is above zero
var binaryChannels = []int{core.Jump, core.Boost, core.Handbrake}

// ContinuousAction takes eight raw values per player in [-1, 1]. Analog
// channels are clipped and binary channels thresholded at zero.
type ContinuousAction struct{}

var _ core.ActionParser = ContinuousAction{}
var _ core.ActionShaper = ContinuousAction{}

func NewContinuousAction() ContinuousAction {
	return ContinuousAction{}
}

func (ContinuousAction) ActionShape() []int {
	return []int{core.ActionSize}
}

// ParseActions returns exactly one parsed action per raw action. Rows of
// the wrong length are clipped and passed through for the simulator to
// reject.
func (ContinuousAction) ParseActions(actions [][]float32, _ *core.GameState) [][]float32 {
	out := make([][]float32, len(actions))
	for i, raw := range actions {
		parsed := make([]float32, len(raw))
		for j, v := range raw {
			parsed[j] = clip(v)
		}
		out[i] = parsed
		if len(parsed) != core.ActionSize {
			continue
		}
		for _, j := range binaryChannels {
			if parsed[j] > 0 {
				parsed[j] = 1
			} else {
				parsed[j] = 0
			}
		}
	}
	return out
}

func clip(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
