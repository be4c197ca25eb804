package policies

import (
	"math"
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/rlgym-go/core"
)

// SoftMaxPolicy samples lookup actions from the softmax of their Q values
// with the given temperature
type SoftMaxPolicy struct {
	tabular

	qTable      *QTable
	Alpha       float64
	Gamma       float64
	Temperature float64

	src erand.Source
}

var _ core.Policy = &SoftMaxPolicy{}

func NewSoftMaxPolicy(abstraction Abstraction, numActions int, alpha, gamma, temperature float64) *SoftMaxPolicy {
	return &SoftMaxPolicy{
		tabular:     newTabular(abstraction, numActions),
		qTable:      NewQTable(),
		Alpha:       alpha,
		Gamma:       gamma,
		Temperature: temperature,
		src:         erand.NewSource(uint64(time.Now().UnixMilli())),
	}
}

func (s *SoftMaxPolicy) Seed(seed uint64) {
	s.tabular.Seed(seed)
	s.src.Seed(seed)
}

func (s *SoftMaxPolicy) Reset() {
	s.qTable = NewQTable()
}

func (s *SoftMaxPolicy) ResetEpisode(_ *core.EpisodeContext) {
}

func (s *SoftMaxPolicy) UpdateEpisode(_ *core.EpisodeContext) {
}

// weights is the softmax distribution over the actions of state
func (s *SoftMaxPolicy) weights(state string) []float64 {
	temp := s.Temperature
	if temp <= 0 {
		temp = 1
	}
	vals := make([]float64, len(s.actions))
	largest := math.Inf(-1)
	for i, a := range s.actions {
		vals[i] = s.qTable.Get(state, a, 0) / temp
		if vals[i] > largest {
			largest = vals[i]
		}
	}

	sum := float64(0)
	for i := range vals {
		vals[i] = math.Exp(vals[i] - largest)
		sum += vals[i]
	}
	for i := range vals {
		vals[i] /= sum
	}
	return vals
}

func (s *SoftMaxPolicy) PickActions(_ *core.StepContext, obs [][]float32) [][]float32 {
	out := make([][]float32, len(obs))
	for i, o := range obs {
		// using the sampleuv library to sample based on the weights
		idx, ok := sampleuv.NewWeighted(s.weights(s.abstraction.Key(o)), s.src).Take()
		if !ok {
			out[i] = s.randomAction()
			continue
		}
		out[i] = toAction(s.actions[idx])
	}
	return out
}

func (s *SoftMaxPolicy) UpdateStep(_ *core.StepContext, obs [][]float32, actions [][]float32, result *core.StepResult) {
	s.forEachTransition(obs, actions, result, func(state, action, next string, reward float64) {
		curVal := s.qTable.Get(state, action, 0)
		max := float64(0)
		if values, ok := s.qTable.GetAll(next); ok && !result.Done {
			for _, val := range values {
				if val > max {
					max = val
				}
			}
		}
		s.qTable.Set(state, action, (1-s.Alpha)*curVal+s.Alpha*(reward+s.Gamma*max))
	})
}

type SoftMaxPolicyConstructor struct {
	abstraction Abstraction
	numActions  int
	alpha       float64
	gamma       float64
	temp        float64
	Seed        *uint64
}

var _ core.PolicyConstructor = &SoftMaxPolicyConstructor{}

func NewSoftMaxPolicyConstructor(abstraction Abstraction, numActions int, alpha, gamma, temp float64) *SoftMaxPolicyConstructor {
	return &SoftMaxPolicyConstructor{
		abstraction: abstraction,
		numActions:  numActions,
		alpha:       alpha,
		gamma:       gamma,
		temp:        temp,
	}
}

func (s *SoftMaxPolicyConstructor) NewPolicy() core.Policy {
	p := NewSoftMaxPolicy(s.abstraction, s.numActions, s.alpha, s.gamma, s.temp)
	if s.Seed != nil {
		p.Seed(*s.Seed)
	}
	return p
}
