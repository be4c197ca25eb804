package rewards

import (
	"errors"

	"github.com/zeu5/rlgym-go/core"
)

var (
	ErrWeightsMismatch = errors.New("reward and weight counts differ")
)

// CombinedReward is the weighted sum of its parts. Every part sees every
// call.
type CombinedReward struct {
	rewards []core.RewardFn
	weights []float32
}

var _ core.RewardFn = &CombinedReward{}

// NewCombinedReward pairs rewards with weights. A nil weights slice
// weights every reward by one.
func NewCombinedReward(rewards []core.RewardFn, weights []float32) (*CombinedReward, error) {
	if weights == nil {
		weights = make([]float32, len(rewards))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(rewards) {
		return nil, ErrWeightsMismatch
	}
	return &CombinedReward{
		rewards: rewards,
		weights: weights,
	}, nil
}

func (c *CombinedReward) Reset(initial *core.GameState, stage *int) {
	for _, r := range c.rewards {
		r.Reset(initial, stage)
	}
}

func (c *CombinedReward) PreStep(state *core.GameState) {
	for _, r := range c.rewards {
		r.PreStep(state)
	}
}

func (c *CombinedReward) GetReward(player *core.PlayerData, state *core.GameState) float32 {
	var total float32
	for i, r := range c.rewards {
		total += c.weights[i] * r.GetReward(player, state)
	}
	return total
}

func (c *CombinedReward) GetFinalReward(player *core.PlayerData, state *core.GameState) float32 {
	var total float32
	for i, r := range c.rewards {
		total += c.weights[i] * r.GetFinalReward(player, state)
	}
	return total
}

// StagedReward delegates to one reward per curriculum stage. The stage
// passed to Reset selects the active reward for the episode; without a
// stage the previous one stays active. Out of range stages are clamped.
type StagedReward struct {
	stages []core.RewardFn
	active int
}

var _ core.RewardFn = &StagedReward{}

func NewStagedReward(stages ...core.RewardFn) *StagedReward {
	if len(stages) == 0 {
		panic("staged reward needs at least one stage")
	}
	return &StagedReward{stages: stages}
}

// Stage is the index of the active stage
func (s *StagedReward) Stage() int {
	return s.active
}

func (s *StagedReward) Reset(initial *core.GameState, stage *int) {
	if stage != nil {
		s.active = *stage
		if s.active < 0 {
			s.active = 0
		}
		if s.active >= len(s.stages) {
			s.active = len(s.stages) - 1
		}
	}
	s.stages[s.active].Reset(initial, stage)
}

func (s *StagedReward) PreStep(state *core.GameState) {
	s.stages[s.active].PreStep(state)
}

func (s *StagedReward) GetReward(player *core.PlayerData, state *core.GameState) float32 {
	return s.stages[s.active].GetReward(player, state)
}

func (s *StagedReward) GetFinalReward(player *core.PlayerData, state *core.GameState) float32 {
	return s.stages[s.active].GetFinalReward(player, state)
}
