package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotReset    = errors.New("step called before reset")
	ErrEpisodeDone = errors.New("episode is done, reset required")
	ErrGymFailed   = errors.New("gym is in a failed state")
)

type gymStatus int

const (
	gymConstructed gymStatus = iota
	gymActive
	gymDone
	gymFailed
)

// Info keys set by Gym. InfoResult holds the blue score minus the orange
// score as a float32.
const (
	InfoResult = "result"
)

type resetOptions struct {
	seed *uint64
}

type ResetOption func(*resetOptions)

// WithSeed seeds the state setter before the reset state is built
func WithSeed(seed uint64) ResetOption {
	return func(o *resetOptions) {
		o.seed = &seed
	}
}

// StepResult is what a single Gym.Step produces. Done and Truncated are
// reported independently.
type StepResult struct {
	Observations [][]float32
	Rewards      []float32
	Done         bool
	Truncated    bool
	Info         map[string]interface{}
}

// Gym is the reset/step facade over a GameMatch. It is not safe for
// concurrent use.
type Gym struct {
	match     *GameMatch
	prevState *GameState

	observationSpace []int
	actionSpace      []int

	status gymStatus
	err    error
	stage  *int
}

var _ Environment = &Gym{}

func NewGym(match *GameMatch) *Gym {
	return &Gym{
		match:            match,
		observationSpace: match.ObservationSpace(),
		actionSpace:      match.ActionSpace(),
		status:           gymConstructed,
	}
}

func (g *Gym) fail(err error) error {
	g.status = gymFailed
	g.err = err
	return fmt.Errorf("%w: %w", ErrGymFailed, err)
}

func (g *Gym) failedErr() error {
	return fmt.Errorf("%w: %w", ErrGymFailed, g.err)
}

// Reset starts a new episode and returns the initial observations
func (g *Gym) Reset(opts ...ResetOption) ([][]float32, error) {
	obs, _, err := g.reset(opts...)
	return obs, err
}

// ResetInfo is Reset that also returns the info map
func (g *Gym) ResetInfo(opts ...ResetOption) ([][]float32, map[string]interface{}, error) {
	return g.reset(opts...)
}

func (g *Gym) reset(opts ...ResetOption) ([][]float32, map[string]interface{}, error) {
	if g.status == gymFailed {
		return nil, nil, g.failedErr()
	}
	o := &resetOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.seed != nil {
		g.match.SetSeeds(*o.seed)
	}

	wrapper := g.match.GetResetState(g.prevState)
	state, err := g.match.sim.ForceState(wrapper)
	if err != nil {
		return nil, nil, g.fail(err)
	}
	state = g.match.modify(state)

	g.match.EpisodeReset(state, g.stage)
	g.prevState = state

	obs, err := g.match.BuildObservations(state)
	if err != nil {
		return nil, nil, g.fail(err)
	}
	g.status = gymActive

	info := map[string]interface{}{
		InfoResult: float32(g.match.GetResult(state)),
	}
	return obs, info, nil
}

// Step applies one action per player and advances the match by one
// control step
func (g *Gym) Step(actions [][]float32) (*StepResult, error) {
	switch g.status {
	case gymConstructed:
		return nil, ErrNotReset
	case gymDone:
		return nil, ErrEpisodeDone
	case gymFailed:
		return nil, g.failedErr()
	}

	parsed, err := g.match.ParseActions(actions, g.prevState)
	if err != nil {
		return nil, g.fail(err)
	}
	state, err := g.match.sim.Advance(parsed)
	if err != nil {
		return nil, g.fail(err)
	}
	state = g.match.modify(state)

	obs, err := g.match.BuildObservations(state)
	if err != nil {
		return nil, g.fail(err)
	}
	done := g.match.IsDone(state)
	g.prevState = state
	rewards := g.match.GetRewards(state, done)
	truncated := g.match.IsTruncated(state)

	if done {
		g.status = gymDone
	}

	return &StepResult{
		Observations: obs,
		Rewards:      rewards,
		Done:         done,
		Truncated:    truncated,
		Info: map[string]interface{}{
			InfoResult: float32(g.match.GetResult(state)),
		},
	}, nil
}

// SetRewardStage makes the next reset pass stage to the reward function
func (g *Gym) SetRewardStage(stage int) {
	g.stage = &stage
}

func (g *Gym) ClearRewardStage() {
	g.stage = nil
}

// UpdateSettings reconfigures the match in place. The running episode is
// left as is.
func (g *Gym) UpdateSettings(config GameConfig, builders []ObsBuilder) error {
	if g.status == gymFailed {
		return g.failedErr()
	}
	if _, err := config.AgentCount(); err != nil {
		return err
	}
	state, err := g.match.UpdateSettings(config, builders)
	if err != nil {
		return g.fail(err)
	}
	g.observationSpace = g.match.ObservationSpace()
	g.actionSpace = g.match.ActionSpace()
	if state != nil && g.prevState != nil {
		g.prevState = g.match.modify(state)
	}
	return nil
}

func (g *Gym) ObservationSpace() []int {
	return append([]int(nil), g.observationSpace...)
}

func (g *Gym) ActionSpace() []int {
	return append([]int(nil), g.actionSpace...)
}

// PrevState is the last snapshot seen by the gym, nil before the first
// reset
func (g *Gym) PrevState() *GameState {
	return g.prevState
}

func (g *Gym) Match() *GameMatch {
	return g.match
}

// Err returns the error that failed the gym, if any
func (g *Gym) Err() error {
	return g.err
}
