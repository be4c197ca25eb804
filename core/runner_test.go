package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

type zeroPolicy struct {
	episodes int
	steps    int
	resets   int
}

func (p *zeroPolicy) ResetEpisode(*EpisodeContext) {}

func (p *zeroPolicy) UpdateEpisode(*EpisodeContext) { p.episodes++ }

func (p *zeroPolicy) PickActions(_ *StepContext, obs [][]float32) [][]float32 {
	return actions(len(obs))
}

func (p *zeroPolicy) UpdateStep(*StepContext, [][]float32, [][]float32, *StepResult) { p.steps++ }

func (p *zeroPolicy) Reset() { p.resets++ }

type zeroPolicyConstructor struct {
	last *zeroPolicy
}

func (c *zeroPolicyConstructor) NewPolicy() Policy {
	c.last = &zeroPolicy{}
	return c.last
}

type fixtureEnvConstructor struct {
	build   func() *fixture
	created []*fixture
	err     error
}

func (c *fixtureEnvConstructor) NewEnvironment(int) (Environment, error) {
	if c.err != nil {
		return nil, c.err
	}
	f := c.build()
	c.created = append(c.created, f)
	return f.gym(), nil
}

type episodeCounter struct {
	lengths []int
	errors  int
}

func (a *episodeCounter) Analyze(eCtx *EpisodeContext, trace *Trace) {
	if eCtx.IsError() {
		a.errors++
		return
	}
	a.lengths = append(a.lengths, trace.Len())
}

func (a *episodeCounter) DataSet() DataSet { return append([]int(nil), a.lengths...) }

func (a *episodeCounter) Reset() { a.lengths = nil }

type episodeCounterConstructor struct {
	analyzers []*episodeCounter
}

func (c *episodeCounterConstructor) NewAnalyzer(string, int) Analyzer {
	a := &episodeCounter{}
	c.analyzers = append(c.analyzers, a)
	return a
}

type capturingComparator struct {
	names    []string
	datasets []DataSet
}

func (c *capturingComparator) Compare(names []string, ds []DataSet) {
	c.names = names
	c.datasets = ds
}

type capturingComparatorConstructor struct {
	runs []*capturingComparator
}

func (c *capturingComparatorConstructor) NewComparator(int) Comparator {
	cmp := &capturingComparator{}
	c.runs = append(c.runs, cmp)
	return cmp
}

func testRunConfig() *RunConfig {
	return &RunConfig{
		Episodes:                     3,
		Horizon:                      5,
		EpisodeTimeout:               time.Minute,
		ThresholdConsecutiveErrors:   2,
		ThresholdConsecutiveTimeouts: 2,
	}
}

func TestExperimentRunStopsOnDone(t *testing.T) {
	envs := &fixtureEnvConstructor{build: func() *fixture {
		f := newFixture(1, true)
		f.condition.doneAt = 24
		return f
	}}
	policies := &zeroPolicyConstructor{}
	counters := &episodeCounterConstructor{}
	comparators := &capturingComparatorConstructor{}

	c := NewComparison()
	c.AddExperiment(&Experiment{Name: "zero", Environment: envs, Policy: policies})
	c.AddAnalysis("lengths", counters, comparators)
	c.Run(context.Background(), 1, testRunConfig())

	if len(comparators.runs) != 1 {
		t.Fatalf("got %d comparator runs", len(comparators.runs))
	}
	cmp := comparators.runs[0]
	if len(cmp.names) != 1 || cmp.names[0] != "zero" {
		t.Fatalf("experiment names %v", cmp.names)
	}
	lengths := cmp.datasets[0].([]int)
	if len(lengths) != 3 {
		t.Fatalf("got %d episodes, want 3", len(lengths))
	}
	for _, l := range lengths {
		if l != 3 {
			t.Errorf("episode of length %d, want 3", l)
		}
	}
	if policies.last.episodes != 3 || policies.last.steps != 9 {
		t.Errorf("policy saw %d episodes and %d steps", policies.last.episodes, policies.last.steps)
	}
	if policies.last.resets != 2 {
		t.Errorf("policy reset %d times, want 2", policies.last.resets)
	}
}

func TestExperimentRunHorizonAndSeeds(t *testing.T) {
	envs := &fixtureEnvConstructor{build: func() *fixture { return newFixture(1, false) }}
	counters := &episodeCounterConstructor{}
	c := NewComparison()
	c.AddExperiment(&Experiment{Name: "h", Environment: envs, Policy: &zeroPolicyConstructor{}})
	c.AddAnalysis("lengths", counters, &capturingComparatorConstructor{})

	rc := testRunConfig()
	seed := uint64(100)
	rc.Seed = &seed
	c.Run(context.Background(), 1, rc)

	got := counters.analyzers[0].lengths
	for _, l := range got {
		if l != rc.Horizon {
			t.Errorf("episode of length %d, want horizon %d", l, rc.Horizon)
		}
	}
	seeds := envs.created[0].setter.seeds
	want := []uint64{100, 101, 102}
	if len(seeds) != len(want) {
		t.Fatalf("got seeds %v, want %v", seeds, want)
	}
	for i := range want {
		if seeds[i] != want[i] {
			t.Errorf("got seeds %v, want %v", seeds, want)
		}
	}
}

func TestExperimentRunTooManyErrors(t *testing.T) {
	envs := &fixtureEnvConstructor{build: func() *fixture {
		f := newFixture(1, true)
		f.sim.advanceErr = errBackend
		return f
	}}
	comparators := &capturingComparatorConstructor{}
	c := NewComparison()
	c.AddExperiment(&Experiment{Name: "broken", Environment: envs, Policy: &zeroPolicyConstructor{}})
	c.AddAnalysis("lengths", &episodeCounterConstructor{}, comparators)
	c.Run(context.Background(), 1, testRunConfig())

	// a fresh gym is built after every failed episode
	if len(envs.created) != 3 {
		t.Errorf("got %d environments, want 3", len(envs.created))
	}
	if ds := comparators.runs[0].datasets; len(ds) != 1 || ds[0] != nil {
		t.Errorf("errored experiment should contribute a nil dataset, got %v", ds)
	}
}

func TestExperimentRunTimeouts(t *testing.T) {
	envs := &fixtureEnvConstructor{build: func() *fixture { return newFixture(1, true) }}
	rc := testRunConfig()
	rc.EpisodeTimeout = -time.Second

	e := &Experiment{Name: "slow", Environment: envs, Policy: &zeroPolicyConstructor{}}
	result := e.run(&experimentRunContext{
		ctx:       context.Background(),
		analyzers: map[string]Analyzer{},
		writer:    discard{},
		RunConfig: rc,
	})
	if !errors.Is(result.Error, ErrTooManyTimeouts) {
		t.Fatalf("expected ErrTooManyTimeouts, got %v", result.Error)
	}
	if result.TimeoutEpisodes != 2 || result.CompletedEpisodes != 0 {
		t.Errorf("got %+v", result)
	}
}

func TestExperimentRunEnvironmentError(t *testing.T) {
	envs := &fixtureEnvConstructor{err: errBackend}
	e := &Experiment{Name: "none", Environment: envs, Policy: &zeroPolicyConstructor{}}
	result := e.run(&experimentRunContext{
		ctx:       context.Background(),
		analyzers: map[string]Analyzer{},
		writer:    discard{},
		RunConfig: testRunConfig(),
	})
	if !errors.Is(result.Error, errBackend) {
		t.Fatalf("expected constructor error, got %v", result.Error)
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
