package core

// ActionParser turns the raw actions of a policy into simulator controls.
// It receives one action per player in state.Players order and must return
// exactly one parsed action per player, in the same order.
type ActionParser interface {
	ParseActions(actions [][]float32, state *GameState) [][]float32
}

// ActionShaper is implemented by action parsers that know the shape of the
// raw action they expect
type ActionShaper interface {
	ActionShape() []int
}

// ObsBuilder builds per player observations.
// PreStep is called once per tick before any BuildObs call of that tick.
// A single builder may serve every player of a tick.
type ObsBuilder interface {
	Reset(initial *GameState)
	PreStep(state *GameState, config GameConfig)
	BuildObs(player *PlayerData, state *GameState, config GameConfig) []float32
	ObservationShape() []int
}

// RewardFn computes per player rewards. stage is nil unless the caller
// asked for a specific curriculum stage.
type RewardFn interface {
	Reset(initial *GameState, stage *int)
	PreStep(state *GameState)
	GetReward(player *PlayerData, state *GameState) float32
	GetFinalReward(player *PlayerData, state *GameState) float32
}

// TerminalCondition decides when an episode ends. Both predicates are
// queried every tick and are not mutually exclusive.
type TerminalCondition interface {
	Reset(initial *GameState)
	IsTerminal(state *GameState) bool
	IsTruncated(state *GameState) bool
}

// StateSetter produces the state a new episode starts from
type StateSetter interface {
	BuildWrapper(teamSize int, spawnOpponents bool, seed *GameState) *StateWrapper
	Reset(wrapper *StateWrapper)
	SetSeed(seed uint64)
}

// StateModifier rewrites a snapshot before anything else sees it
type StateModifier interface {
	ModifyState(state *GameState) *GameState
}
