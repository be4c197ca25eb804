package actionparsers

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
)

// DiscreteAction takes eight integer valued raw values per player. The
// five analog channels hold a bin index in [0, bins) mapped linearly onto
// [-1, 1]; the three binary channels hold 0 or 1.
type DiscreteAction struct {
	bins int
}

var _ core.ActionParser = &DiscreteAction{}
var _ core.ActionShaper = &DiscreteAction{}

// NewDiscreteAction panics unless bins is odd and at least 3, so that 0
// is always representable
func NewDiscreteAction(bins int) *DiscreteAction {
	if bins < 3 || bins%2 == 0 {
		panic("discrete action bins must be odd and at least 3")
	}
	return &DiscreteAction{bins: bins}
}

func (d *DiscreteAction) ActionShape() []int {
	shape := make([]int, core.ActionSize)
	for i := range shape {
		shape[i] = d.bins
		if i >= core.Jump {
			shape[i] = 2
		}
	}
	return shape
}

func (d *DiscreteAction) ParseActions(actions [][]float32, _ *core.GameState) [][]float32 {
	half := float32(d.bins / 2)
	out := make([][]float32, len(actions))
	for i, raw := range actions {
		parsed := make([]float32, len(raw))
		for j, v := range raw {
			idx := float32(math.Round(float64(v)))
			if j < core.Jump {
				parsed[j] = clip(idx/half - 1)
			} else if idx > 0 {
				parsed[j] = 1
			}
		}
		out[i] = parsed
	}
	return out
}
