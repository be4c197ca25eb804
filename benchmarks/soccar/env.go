package soccar

import (
	"fmt"
	"strings"

	"github.com/zeu5/rlgym-go/actionparsers"
	"github.com/zeu5/rlgym-go/arena"
	"github.com/zeu5/rlgym-go/conditions"
	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/obsbuilders"
	"github.com/zeu5/rlgym-go/policies"
	"github.com/zeu5/rlgym-go/rewards"
	"github.com/zeu5/rlgym-go/statesetters"
)

// Action parser names
const (
	ContinuousActions = "continuous"
	DiscreteActions   = "discrete"
	LookupActions     = "lookup"
)

// State setter names
const (
	KickoffState = "kickoff"
	RandomState  = "random"
	MixedState   = "mixed"
)

// EnvironmentConfig picks the stock strategies a soccar gym is built with
type EnvironmentConfig struct {
	GameConfig core.GameConfig
	Actions    string
	States     string
	// EpisodeSteps truncates episodes after that many steps, 0 disables it
	EpisodeSteps int
	// NoTouchSteps truncates episodes nobody touched the ball in for that
	// many steps, 0 disables it
	NoTouchSteps int
	Events       rewards.EventWeights
	// DiscreteBins is the bin count of the discrete parser
	DiscreteBins int
}

func DefaultEnvironmentConfig() EnvironmentConfig {
	return EnvironmentConfig{
		GameConfig:   core.DefaultGameConfig(),
		Actions:      LookupActions,
		States:       KickoffState,
		EpisodeSteps: 300,
		NoTouchSteps: 100,
		Events: rewards.EventWeights{
			Goal:     10,
			TeamGoal: 5,
			Concede:  -5,
			Touch:    0.1,
			Shot:     1,
			Save:     2,
		},
		DiscreteBins: 3,
	}
}

func (c EnvironmentConfig) actionParser() (core.ActionParser, error) {
	switch strings.ToLower(c.Actions) {
	case ContinuousActions, "":
		return actionparsers.NewContinuousAction(), nil
	case DiscreteActions:
		bins := c.DiscreteBins
		if bins == 0 {
			bins = 3
		}
		if bins < 3 || bins%2 == 0 {
			return nil, fmt.Errorf("%w: discrete bins must be odd and at least 3, got %d", core.ErrInvalidConfig, bins)
		}
		return actionparsers.NewDiscreteAction(bins), nil
	case LookupActions:
		return actionparsers.NewLookupAction(), nil
	}
	return nil, fmt.Errorf("%w: unknown action parser %q", core.ErrInvalidConfig, c.Actions)
}

// ActionSpace tells policies what raw actions the configured parser takes
func (c EnvironmentConfig) ActionSpace() (policies.ActionSpace, error) {
	parser, err := c.actionParser()
	if err != nil {
		return policies.ActionSpace{}, err
	}
	shape := parser.(core.ActionShaper).ActionShape()
	switch strings.ToLower(c.Actions) {
	case DiscreteActions:
		return policies.ActionSpace{Kind: policies.DiscreteActions, Shape: shape}, nil
	case LookupActions:
		return policies.ActionSpace{Kind: policies.LookupActions, Shape: shape}, nil
	}
	return policies.ActionSpace{Kind: policies.ContinuousActions, Shape: shape}, nil
}

func (c EnvironmentConfig) stateSetter() (core.StateSetter, error) {
	switch strings.ToLower(c.States) {
	case KickoffState, "":
		return statesetters.NewDefaultState(), nil
	case RandomState:
		return statesetters.NewRandomState(true, true), nil
	case MixedState:
		setter, err := statesetters.NewWeightedSampleSetter(
			[]core.StateSetter{statesetters.NewDefaultState(), statesetters.NewRandomState(true, true)},
			[]float64{0.7, 0.3},
		)
		if err != nil {
			return nil, err
		}
		return setter, nil
	}
	return nil, fmt.Errorf("%w: unknown state setter %q", core.ErrInvalidConfig, c.States)
}

func (c EnvironmentConfig) terminalCondition() core.TerminalCondition {
	conds := []core.TerminalCondition{conditions.NewGoalScoredCondition()}
	if c.EpisodeSteps > 0 {
		conds = append(conds, conditions.NewTimeoutCondition(c.EpisodeSteps, c.GameConfig.TickSkip))
	}
	if c.NoTouchSteps > 0 {
		conds = append(conds, conditions.NewNoTouchTimeoutCondition(c.NoTouchSteps, c.GameConfig.TickSkip))
	}
	return conditions.NewCombinedCondition(conds...)
}

// rewardFn mixes match events with shaping towards the ball and the goal
func (c EnvironmentConfig) rewardFn() (core.RewardFn, error) {
	combined, err := rewards.NewCombinedReward(
		[]core.RewardFn{
			rewards.NewEventReward(c.Events),
			rewards.VelocityPlayerToBallReward{},
			rewards.VelocityBallToGoalReward{},
		},
		[]float32{1, 0.01, 0.05},
	)
	if err != nil {
		return nil, err
	}
	return combined, nil
}

// MakeConfig assembles fresh strategies for one gym
func (c EnvironmentConfig) MakeConfig() (core.MakeConfig, error) {
	parser, err := c.actionParser()
	if err != nil {
		return core.MakeConfig{}, err
	}
	setter, err := c.stateSetter()
	if err != nil {
		return core.MakeConfig{}, err
	}
	reward, err := c.rewardFn()
	if err != nil {
		return core.MakeConfig{}, err
	}
	return core.MakeConfig{
		GameConfig:        c.GameConfig,
		RewardFn:          reward,
		TerminalCondition: c.terminalCondition(),
		ObsBuilders:       []core.ObsBuilder{obsbuilders.NewDefaultObs(c.GameConfig)},
		UseSingleObs:      true,
		ActionParser:      parser,
		StateSetter:       setter,
	}, nil
}

// EnvironmentConstructor builds an arena backed gym per run
type EnvironmentConstructor struct {
	config EnvironmentConfig
}

var _ core.EnvironmentConstructor = &EnvironmentConstructor{}

func NewEnvironmentConstructor(config EnvironmentConfig) *EnvironmentConstructor {
	return &EnvironmentConstructor{config: config}
}

func (e *EnvironmentConstructor) NewEnvironment(_ int) (core.Environment, error) {
	mc, err := e.config.MakeConfig()
	if err != nil {
		return nil, err
	}
	gym, err := core.Make(mc, arena.Constructor{})
	if err != nil {
		return nil, err
	}
	return gym, nil
}
