package core

import (
	"errors"
	"fmt"
)

// fakeSim is a scripted Simulator. Players mirror the cars of the last
// forced wrapper and every Advance bumps TickNum by the tick skip.
type fakeSim struct {
	config GameConfig
	state  *GameState

	onAdvance  func(*GameState)
	advanceErr error

	forced       []*StateWrapper
	advanced     [][][]float32
	reconfigured []bool
}

var _ Simulator = &fakeSim{}

func newFakeSim(config GameConfig) *fakeSim {
	return &fakeSim{
		config: config,
		state:  &GameState{},
	}
}

func (f *fakeSim) CurrentState() (*GameState, error) {
	return f.state.Copy(), nil
}

func (f *fakeSim) ForceState(w *StateWrapper) (*GameState, error) {
	f.forced = append(f.forced, w)
	players := make([]PlayerData, len(w.Cars))
	for i, c := range w.Cars {
		players[i] = PlayerData{
			CarID:       c.ID,
			TeamNum:     c.TeamNum,
			BoostAmount: c.Boost,
		}
	}
	f.state = &GameState{
		Players: players,
		TickNum: f.state.TickNum,
	}
	return f.state.Copy(), nil
}

func (f *fakeSim) Advance(actions [][]float32) (*GameState, error) {
	if f.advanceErr != nil {
		return nil, f.advanceErr
	}
	if len(actions) != len(f.state.Players) {
		return nil, fmt.Errorf("got %d actions for %d players", len(actions), len(f.state.Players))
	}
	f.advanced = append(f.advanced, actions)
	f.state.TickNum += uint64(f.config.TickSkip)
	if f.onAdvance != nil {
		f.onAdvance(f.state)
	}
	return f.state.Copy(), nil
}

func (f *fakeSim) Reconfigure(config GameConfig, restart bool) (*GameState, error) {
	f.reconfigured = append(f.reconfigured, restart)
	f.config = config
	agents, err := config.AgentCount()
	if err != nil {
		return nil, err
	}
	w := NewStateWrapper(config.TeamSize, agents-config.TeamSize, nil)
	players := make([]PlayerData, len(w.Cars))
	for i, c := range w.Cars {
		players[i] = PlayerData{CarID: c.ID, TeamNum: c.TeamNum}
	}
	f.state.Players = players
	return f.state.Copy(), nil
}

type fakeSimConstructor struct {
	sim *fakeSim
	err error
}

func (c *fakeSimConstructor) NewSimulator(config GameConfig) (Simulator, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.sim = newFakeSim(config)
	return c.sim, nil
}

// recordingObs logs every call it receives to a shared log
type recordingObs struct {
	name string
	log  *[]string
	size int
}

func (o *recordingObs) Reset(*GameState) {
	*o.log = append(*o.log, o.name+":reset")
}

func (o *recordingObs) PreStep(*GameState, GameConfig) {
	*o.log = append(*o.log, o.name+":pre_step")
}

func (o *recordingObs) BuildObs(player *PlayerData, _ *GameState, _ GameConfig) []float32 {
	*o.log = append(*o.log, fmt.Sprintf("%s:build:%d", o.name, player.CarID))
	obs := make([]float32, o.size)
	for i := range obs {
		obs[i] = float32(player.CarID)
	}
	return obs
}

func (o *recordingObs) ObservationShape() []int {
	return []int{o.size}
}

type recordingReward struct {
	stages []*int
	resets int
	steps  int
}

func (r *recordingReward) Reset(_ *GameState, stage *int) {
	r.resets++
	r.stages = append(r.stages, stage)
}

func (r *recordingReward) PreStep(*GameState) {
	r.steps++
}

func (r *recordingReward) GetReward(*PlayerData, *GameState) float32 {
	return 1
}

func (r *recordingReward) GetFinalReward(*PlayerData, *GameState) float32 {
	return 10
}

// tickCondition is terminal once TickNum reaches doneAt and truncated once
// it reaches truncateAt. Zero disables either check.
type tickCondition struct {
	doneAt     uint64
	truncateAt uint64
	start      uint64
}

func (c *tickCondition) Reset(initial *GameState) {
	c.start = initial.TickNum
}

func (c *tickCondition) IsTerminal(s *GameState) bool {
	return c.doneAt > 0 && s.TickNum-c.start >= c.doneAt
}

func (c *tickCondition) IsTruncated(s *GameState) bool {
	return c.truncateAt > 0 && s.TickNum-c.start >= c.truncateAt
}

type passThroughParser struct {
	drop bool
}

func (p *passThroughParser) ParseActions(actions [][]float32, _ *GameState) [][]float32 {
	if p.drop && len(actions) > 0 {
		return actions[:len(actions)-1]
	}
	return actions
}

type shapedParser struct {
	passThroughParser
}

func (shapedParser) ActionShape() []int {
	return []int{90}
}

type fixedSetter struct {
	seeds []uint64
}

func (s *fixedSetter) BuildWrapper(teamSize int, spawnOpponents bool, seed *GameState) *StateWrapper {
	orange := 0
	if spawnOpponents {
		orange = teamSize
	}
	return NewStateWrapper(teamSize, orange, seed)
}

func (s *fixedSetter) Reset(w *StateWrapper) {
	for i := range w.Cars {
		w.Cars[i].Boost = 0.33
	}
}

func (s *fixedSetter) SetSeed(seed uint64) {
	s.seeds = append(s.seeds, seed)
}

type boostModifier struct {
	calls int
}

func (m *boostModifier) ModifyState(s *GameState) *GameState {
	m.calls++
	for i := range s.Players {
		s.Players[i].BoostAmount = 1
	}
	return s
}

type fixture struct {
	config    MakeConfig
	sim       *fakeSim
	log       []string
	reward    *recordingReward
	condition *tickCondition
	parser    *passThroughParser
	setter    *fixedSetter
}

func newFixture(teamSize int, spawnOpponents bool) *fixture {
	f := &fixture{
		reward:    &recordingReward{},
		condition: &tickCondition{},
		parser:    &passThroughParser{},
		setter:    &fixedSetter{},
	}
	gc := DefaultGameConfig()
	gc.TeamSize = teamSize
	gc.SpawnOpponents = spawnOpponents
	f.sim = newFakeSim(gc)

	agents, _ := gc.AgentCount()
	builders := make([]ObsBuilder, agents)
	for i := range builders {
		builders[i] = &recordingObs{name: fmt.Sprintf("b%d", i), log: &f.log, size: 4}
	}
	f.config = MakeConfig{
		GameConfig:        gc,
		RewardFn:          f.reward,
		TerminalCondition: f.condition,
		ObsBuilders:       builders,
		ActionParser:      f.parser,
		StateSetter:       f.setter,
	}
	return f
}

func (f *fixture) useSingleObs() {
	f.config.UseSingleObs = true
	f.config.ObsBuilders = []ObsBuilder{&recordingObs{name: "shared", log: &f.log, size: 4}}
}

func (f *fixture) gym() *Gym {
	m, err := NewGameMatch(f.config, f.sim)
	if err != nil {
		panic(err)
	}
	return NewGym(m)
}

func actions(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = make([]float32, ActionSize)
	}
	return out
}

var errBackend = errors.New("backend exploded")
