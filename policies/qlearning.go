package policies

import (
	"github.com/zeu5/rlgym-go/core"
)

// QLearningPolicy is epsilon greedy tabular Q learning over lookup
// actions. All players share one table.
type QLearningPolicy struct {
	tabular

	qTable   *QTable
	alpha    float64
	discount float64
	epsilon  float64
}

var _ core.Policy = &QLearningPolicy{}

func NewQLearningPolicy(abstraction Abstraction, numActions int, alpha, discount, epsilon float64) *QLearningPolicy {
	return &QLearningPolicy{
		tabular:  newTabular(abstraction, numActions),
		qTable:   NewQTable(),
		alpha:    alpha,
		discount: discount,
		epsilon:  epsilon,
	}
}

func (b *QLearningPolicy) Seed(seed uint64) {
	b.tabular.Seed(seed)
	b.qTable.Seed(seed)
}

func (b *QLearningPolicy) Record(path string) error {
	return b.qTable.Record(path)
}

// Table exposes the learned values
func (b *QLearningPolicy) Table() *QTable {
	return b.qTable
}

func (b *QLearningPolicy) Reset() {
	b.qTable = NewQTable()
}

func (b *QLearningPolicy) ResetEpisode(_ *core.EpisodeContext) {
}

func (b *QLearningPolicy) PickActions(_ *core.StepContext, obs [][]float32) [][]float32 {
	out := make([][]float32, len(obs))
	for i, o := range obs {
		if b.rand.Float64() < b.epsilon {
			out[i] = b.randomAction()
			continue
		}
		action, _ := b.qTable.MaxAmong(b.abstraction.Key(o), b.actions, 0)
		out[i] = toAction(action)
	}
	return out
}

func (b *QLearningPolicy) UpdateStep(_ *core.StepContext, obs [][]float32, actions [][]float32, result *core.StepResult) {
	b.forEachTransition(obs, actions, result, func(state, action, next string, reward float64) {
		target := reward
		if !result.Done {
			_, nextVal := b.qTable.Max(next, 0)
			target += b.discount * nextVal
		}
		curVal := b.qTable.Get(state, action, 0)
		b.qTable.Set(state, action, (1-b.alpha)*curVal+b.alpha*target)
	})
}

func (b *QLearningPolicy) UpdateEpisode(_ *core.EpisodeContext) {
}

type QLearningPolicyConstructor struct {
	abstraction Abstraction
	numActions  int
	alpha       float64
	discount    float64
	epsilon     float64
	// Seed, when set, seeds every new policy
	Seed *uint64
}

var _ core.PolicyConstructor = &QLearningPolicyConstructor{}

func NewQLearningPolicyConstructor(abstraction Abstraction, numActions int, alpha, discount, epsilon float64) *QLearningPolicyConstructor {
	return &QLearningPolicyConstructor{
		abstraction: abstraction,
		numActions:  numActions,
		alpha:       alpha,
		discount:    discount,
		epsilon:     epsilon,
	}
}

func (b *QLearningPolicyConstructor) NewPolicy() core.Policy {
	p := NewQLearningPolicy(b.abstraction, b.numActions, b.alpha, b.discount, b.epsilon)
	if b.Seed != nil {
		p.Seed(*b.Seed)
	}
	return p
}
