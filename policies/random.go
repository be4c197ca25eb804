package policies

import (
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rlgym-go/core"
)

type ActionKind int

const (
	// ContinuousActions are rows of Shape[0] values in [-1, 1]
	ContinuousActions ActionKind = iota
	// DiscreteActions hold one index per channel, channel i in [0, Shape[i])
	DiscreteActions
	// LookupActions are a single index in [0, Shape[0])
	LookupActions
)

// ActionSpace tells a policy what raw actions the environment's action
// parser accepts
type ActionSpace struct {
	Kind  ActionKind
	Shape []int
}

// Sample draws one raw action from the space
func (s ActionSpace) Sample(rand *erand.Rand) []float32 {
	switch s.Kind {
	case DiscreteActions:
		out := make([]float32, len(s.Shape))
		for i, n := range s.Shape {
			out[i] = float32(rand.Intn(n))
		}
		return out
	case LookupActions:
		return []float32{float32(rand.Intn(s.Shape[0]))}
	default:
		out := make([]float32, s.Shape[0])
		for i := range out {
			out[i] = 2*rand.Float32() - 1
		}
		return out
	}
}

type RandomPolicy struct {
	space ActionSpace
	rand  *erand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy(space ActionSpace) *RandomPolicy {
	return &RandomPolicy{
		space: space,
		rand:  erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// Seed makes the sampled actions reproducible
func (r *RandomPolicy) Seed(seed uint64) {
	r.rand.Seed(seed)
}

func (r *RandomPolicy) Reset() {}

func (r *RandomPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

func (r *RandomPolicy) PickActions(_ *core.StepContext, obs [][]float32) [][]float32 {
	actions := make([][]float32, len(obs))
	for i := range obs {
		actions[i] = r.space.Sample(r.rand)
	}
	return actions
}

func (r *RandomPolicy) UpdateStep(_ *core.StepContext, _ [][]float32, _ [][]float32, _ *core.StepResult) {}

func (r *RandomPolicy) ResetEpisode(_ *core.EpisodeContext) {}

type RandomPolicyConstructor struct {
	Space ActionSpace
	// Seed, when set, seeds every new policy
	Seed *uint64
}

var _ core.PolicyConstructor = &RandomPolicyConstructor{}

func (r *RandomPolicyConstructor) NewPolicy() core.Policy {
	p := NewRandomPolicy(r.Space)
	if r.Seed != nil {
		p.Seed(*r.Seed)
	}
	return p
}

// ConstantPolicy feeds the same raw action to every player on every step
type ConstantPolicy struct {
	action []float32
}

var _ core.Policy = &ConstantPolicy{}

func NewConstantPolicy(action []float32) *ConstantPolicy {
	return &ConstantPolicy{action: action}
}

func (c *ConstantPolicy) Reset() {}

func (c *ConstantPolicy) ResetEpisode(_ *core.EpisodeContext) {}

func (c *ConstantPolicy) UpdateEpisode(_ *core.EpisodeContext) {}

func (c *ConstantPolicy) PickActions(_ *core.StepContext, obs [][]float32) [][]float32 {
	actions := make([][]float32, len(obs))
	for i := range obs {
		actions[i] = append([]float32(nil), c.action...)
	}
	return actions
}

func (c *ConstantPolicy) UpdateStep(_ *core.StepContext, _ [][]float32, _ [][]float32, _ *core.StepResult) {}

type ConstantPolicyConstructor struct {
	Action []float32
}

var _ core.PolicyConstructor = &ConstantPolicyConstructor{}

func (c *ConstantPolicyConstructor) NewPolicy() core.Policy {
	return NewConstantPolicy(c.Action)
}
