package core

import (
	"errors"
	"fmt"
)

var (
	ErrCardinality = errors.New("cardinality mismatch")
)

// MakeConfig bundles everything needed to build a GameMatch
type MakeConfig struct {
	GameConfig        GameConfig
	RewardFn          RewardFn
	TerminalCondition TerminalCondition
	// ObsBuilders holds one builder per agent slot, or a single shared
	// builder when UseSingleObs is set
	ObsBuilders    []ObsBuilder
	ActionParser   ActionParser
	StateSetter    StateSetter
	UseSingleObs   bool
	StateModifiers []StateModifier
}

// GameMatch owns the strategy set of a match and sequences calls into it.
// It also owns the simulator it was built with.
type GameMatch struct {
	config            GameConfig
	rewardFn          RewardFn
	terminalCondition TerminalCondition
	obsBuilders       []ObsBuilder
	actionParser      ActionParser
	stateSetter       StateSetter
	modifiers         []StateModifier
	sim               Simulator

	agents           int
	useSingleObs     bool
	observationSpace []int
	actionSpace      []int

	prevActions  [][]float32
	spectatorIDs []int
	initialScore int
}

// NewGameMatch validates the config and takes ownership of the strategies
// and the simulator
func NewGameMatch(c MakeConfig, sim Simulator) (*GameMatch, error) {
	agents, err := c.GameConfig.AgentCount()
	if err != nil {
		return nil, err
	}
	switch {
	case sim == nil:
		return nil, errors.New("simulator is required")
	case c.RewardFn == nil:
		return nil, errors.New("reward function is required")
	case c.TerminalCondition == nil:
		return nil, errors.New("terminal condition is required")
	case c.ActionParser == nil:
		return nil, errors.New("action parser is required")
	case c.StateSetter == nil:
		return nil, errors.New("state setter is required")
	case len(c.ObsBuilders) == 0:
		return nil, errors.New("at least one observation builder is required")
	}
	m := &GameMatch{
		config:            c.GameConfig,
		rewardFn:          c.RewardFn,
		terminalCondition: c.TerminalCondition,
		obsBuilders:       c.ObsBuilders,
		actionParser:      c.ActionParser,
		stateSetter:       c.StateSetter,
		modifiers:         c.StateModifiers,
		sim:               sim,
		agents:            agents,
		useSingleObs:      c.UseSingleObs,
		prevActions:       zeroActions(agents),
		spectatorIDs:      make([]int, 6),
	}
	m.detectSpaces()
	return m, nil
}

func zeroActions(agents int) [][]float32 {
	out := make([][]float32, agents)
	for i := range out {
		out[i] = make([]float32, ActionSize)
	}
	return out
}

func (m *GameMatch) detectSpaces() {
	m.observationSpace = m.obsBuilders[0].ObservationShape()
	m.actionSpace = []int{ActionSize}
	if shaper, ok := m.actionParser.(ActionShaper); ok {
		m.actionSpace = shaper.ActionShape()
	}
}

// activeBuilders are the builder instances that take part in a tick
func (m *GameMatch) activeBuilders() []ObsBuilder {
	if m.useSingleObs {
		return m.obsBuilders[:1]
	}
	return m.obsBuilders
}

// EpisodeReset starts a new episode from the given snapshot
func (m *GameMatch) EpisodeReset(initial *GameState, stage *int) {
	m.spectatorIDs = make([]int, len(initial.Players))
	for i, p := range initial.Players {
		m.spectatorIDs[i] = p.CarID
	}
	m.prevActions = zeroActions(m.agents)
	m.terminalCondition.Reset(initial)
	m.rewardFn.Reset(initial, stage)
	for _, b := range m.activeBuilders() {
		b.Reset(initial)
	}
	m.initialScore = initial.ScoreDiff()
}

// BuildObservations returns one observation per player in player order
func (m *GameMatch) BuildObservations(state *GameState) ([][]float32, error) {
	if !m.useSingleObs && len(m.obsBuilders) < len(state.Players) {
		return nil, fmt.Errorf(
			"%w: not enough observation builders (len: %d) were provided for the amount of players (len: %d)",
			ErrCardinality, len(m.obsBuilders), len(state.Players),
		)
	}

	for _, b := range m.activeBuilders() {
		b.PreStep(state, m.config)
	}

	obs := make([][]float32, len(state.Players))
	for i := range state.Players {
		b := m.obsBuilders[0]
		if !m.useSingleObs {
			b = m.obsBuilders[i]
		}
		obs[i] = b.BuildObs(&state.Players[i], state, m.config)
	}
	return obs, nil
}

// GetRewards returns one reward per player in player order. When done is
// set every player gets its final reward.
func (m *GameMatch) GetRewards(state *GameState, done bool) []float32 {
	rewards := make([]float32, 0, m.agents)

	m.rewardFn.PreStep(state)

	for i := range state.Players {
		player := &state.Players[i]
		if done {
			rewards = append(rewards, m.rewardFn.GetFinalReward(player, state))
		} else {
			rewards = append(rewards, m.rewardFn.GetReward(player, state))
		}
	}
	return rewards
}

func (m *GameMatch) IsDone(state *GameState) bool {
	return m.terminalCondition.IsTerminal(state)
}

func (m *GameMatch) IsTruncated(state *GameState) bool {
	return m.terminalCondition.IsTruncated(state)
}

// GetResult is the score differential gained since the episode started
func (m *GameMatch) GetResult(state *GameState) int {
	return state.ScoreDiff() - m.initialScore
}

// GetState reads the current snapshot from the simulator
func (m *GameMatch) GetState() (*GameState, error) {
	return m.sim.CurrentState()
}

// ParseActions runs the action parser and checks it returned exactly one
// action per player
func (m *GameMatch) ParseActions(actions [][]float32, state *GameState) ([][]float32, error) {
	parsed := m.actionParser.ParseActions(actions, state)
	if len(parsed) != len(state.Players) {
		return nil, fmt.Errorf(
			"%w: parsed actions was not the same length (len: %d) as player count (len: %d)",
			ErrCardinality, len(parsed), len(state.Players),
		)
	}
	m.prevActions = make([][]float32, len(parsed))
	for i, a := range parsed {
		m.prevActions[i] = append([]float32(nil), a...)
	}
	return parsed, nil
}

// GetResetState asks the state setter for the state of the next episode.
// context may be nil.
func (m *GameMatch) GetResetState(context *GameState) *StateWrapper {
	wrapper := m.stateSetter.BuildWrapper(m.config.TeamSize, m.config.SpawnOpponents, context)
	m.stateSetter.Reset(wrapper)
	return wrapper
}

func (m *GameMatch) SetSeeds(seed uint64) {
	m.stateSetter.SetSeed(seed)
}

// UpdateSettings replaces the config, and the observation builders when
// builders is non empty, then forwards the config to the simulator
// without restarting the match
func (m *GameMatch) UpdateSettings(config GameConfig, builders []ObsBuilder) (*GameState, error) {
	agents, err := config.AgentCount()
	if err != nil {
		return nil, err
	}
	m.config = config
	m.agents = agents
	if len(builders) > 0 {
		m.obsBuilders = builders
	}
	m.detectSpaces()
	return m.sim.Reconfigure(config, false)
}

// modify applies the configured state modifiers in order
func (m *GameMatch) modify(state *GameState) *GameState {
	for _, mod := range m.modifiers {
		state = mod.ModifyState(state)
	}
	return state
}

func (m *GameMatch) Config() GameConfig {
	return m.config
}

func (m *GameMatch) Agents() int {
	return m.agents
}

func (m *GameMatch) UseSingleObs() bool {
	return m.useSingleObs
}

func (m *GameMatch) ObservationSpace() []int {
	return append([]int(nil), m.observationSpace...)
}

func (m *GameMatch) ActionSpace() []int {
	return append([]int(nil), m.actionSpace...)
}

// PrevActions returns a copy of the last parsed actions
func (m *GameMatch) PrevActions() [][]float32 {
	out := make([][]float32, len(m.prevActions))
	for i, a := range m.prevActions {
		out[i] = append([]float32(nil), a...)
	}
	return out
}

func (m *GameMatch) SpectatorIDs() []int {
	return append([]int(nil), m.spectatorIDs...)
}
