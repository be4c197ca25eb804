package policies

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
)

type UCBZeroParams struct {
	StateSize   int
	ActionsSize int
	Horizon     int
	Episodes    int
	Constant    float64
	Epsilon     float64
	// Abstraction turns observations into table states
	Abstraction Abstraction
}

// UCBZeroPolicy is optimistic Q learning with a Hoeffding exploration
// bonus. Values start at Horizon and are capped there.
type UCBZeroPolicy struct {
	tabular

	qTable *QTable
	visits *QTable
	params UCBZeroParams

	eta float64
}

func NewUCBZeroPolicy(params UCBZeroParams) *UCBZeroPolicy {
	eta := math.Log(
		float64(params.Horizon) * float64(params.ActionsSize) * float64(params.Episodes) * float64(params.StateSize),
	)

	return &UCBZeroPolicy{
		tabular: newTabular(params.Abstraction, params.ActionsSize),
		qTable:  NewQTable(),
		visits:  NewQTable(),
		params:  params,

		eta: eta,
	}
}

var _ core.Policy = &UCBZeroPolicy{}

func (b *UCBZeroPolicy) Seed(seed uint64) {
	b.tabular.Seed(seed)
	b.qTable.Seed(seed)
}

func (b *UCBZeroPolicy) ResetEpisode(_ *core.EpisodeContext) {
}

func (b *UCBZeroPolicy) UpdateEpisode(_ *core.EpisodeContext) {
}

func (b *UCBZeroPolicy) PickActions(_ *core.StepContext, obs [][]float32) [][]float32 {
	out := make([][]float32, len(obs))
	for i, o := range obs {
		if b.rand.Float64() < b.params.Epsilon {
			out[i] = b.randomAction()
			continue
		}
		maxAction, _ := b.qTable.MaxAmong(b.abstraction.Key(o), b.actions, float64(b.params.Horizon))
		out[i] = toAction(maxAction)
	}
	return out
}

// Visits is how often action was taken from the state of obs
func (b *UCBZeroPolicy) Visits(obs []float32, action int) float64 {
	return b.visits.Get(b.abstraction.Key(obs), actionKey(action), 0)
}

func (b *UCBZeroPolicy) UpdateStep(_ *core.StepContext, obs [][]float32, actions [][]float32, result *core.StepResult) {
	horizon := float64(b.params.Horizon)
	b.forEachTransition(obs, actions, result, func(state, action, next string, reward float64) {
		t := b.visits.Get(state, action, 0) + 1
		b.visits.Set(state, action, t)

		nextStateVal := float64(0)
		if !result.Done {
			_, nextStateVal = b.qTable.Max(next, horizon)
			nextStateVal = math.Min(nextStateVal, horizon)
		}

		bonus := b.params.Constant * math.Sqrt((math.Pow(horizon, 3)+b.eta)/t)
		alphaT := (horizon + 1) / (horizon + t)
		curVal := b.qTable.Get(state, action, horizon)

		newVal := (1-alphaT)*curVal + alphaT*(reward+nextStateVal+2*bonus)
		b.qTable.Set(state, action, math.Min(newVal, horizon))
	})
}

func (b *UCBZeroPolicy) Reset() {
	b.qTable = NewQTable()
	b.visits = NewQTable()
}

type UCBZeroPolicyConstructor struct {
	params UCBZeroParams
	Seed   *uint64
}

var _ core.PolicyConstructor = &UCBZeroPolicyConstructor{}

func NewUCBZeroPolicyConstructor(params UCBZeroParams) *UCBZeroPolicyConstructor {
	return &UCBZeroPolicyConstructor{
		params: params,
	}
}

func (b *UCBZeroPolicyConstructor) NewPolicy() core.Policy {
	p := NewUCBZeroPolicy(b.params)
	if b.Seed != nil {
		p.Seed(*b.Seed)
	}
	return p
}
