package soccar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zeu5/rlgym-go/benchmarks/common"
	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/obsbuilders"
	"github.com/zeu5/rlgym-go/policies"
	"github.com/zeu5/rlgym-go/util"
)

func TestEnvironmentConstructor(t *testing.T) {
	for _, actions := range []string{ContinuousActions, DiscreteActions, LookupActions} {
		for _, states := range []string{KickoffState, RandomState, MixedState} {
			t.Run(actions+"/"+states, func(t *testing.T) {
				c := DefaultEnvironmentConfig()
				c.Actions = actions
				c.States = states
				c.GameConfig.TeamSize = 2

				env, err := NewEnvironmentConstructor(c).NewEnvironment(0)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				obs, err := env.Reset(core.WithSeed(1))
				if err != nil {
					t.Fatalf("reset: %v", err)
				}
				if len(obs) != 4 {
					t.Fatalf("got %d observations, want 4", len(obs))
				}
				want := obsbuilders.NewDefaultObs(c.GameConfig).ObservationShape()[0]
				if len(obs[0]) != want {
					t.Errorf("observation size %d, want %d", len(obs[0]), want)
				}

				space, err := c.ActionSpace()
				if err != nil {
					t.Fatalf("action space: %v", err)
				}
				p := policies.NewRandomPolicy(space)
				p.Seed(1)
				if _, err := env.Step(p.PickActions(nil, obs)); err != nil {
					t.Errorf("step with sampled actions: %v", err)
				}
			})
		}
	}
}

func TestEnvironmentConfigErrors(t *testing.T) {
	c := DefaultEnvironmentConfig()
	c.Actions = "telepathy"
	if _, err := NewEnvironmentConstructor(c).NewEnvironment(0); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	c = DefaultEnvironmentConfig()
	c.Actions = DiscreteActions
	c.DiscreteBins = 4
	if _, err := c.ActionSpace(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for even bins, got %v", err)
	}

	c = DefaultEnvironmentConfig()
	c.States = "chaos"
	if _, err := c.MakeConfig(); !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConstantAction(t *testing.T) {
	for _, actions := range []string{ContinuousActions, DiscreteActions, LookupActions} {
		c := DefaultEnvironmentConfig()
		c.Actions = actions
		mc, err := c.MakeConfig()
		if err != nil {
			t.Fatalf("%s: %v", actions, err)
		}
		space, _ := c.ActionSpace()
		parsed := mc.ActionParser.ParseActions([][]float32{ConstantAction(space)}, nil)
		if len(parsed[0]) != core.ActionSize || parsed[0][core.Throttle] != 1 || parsed[0][core.Boost] != 1 {
			t.Errorf("%s: constant action parses to %v", actions, parsed[0])
		}
	}
}

func TestWatch(t *testing.T) {
	c := DefaultEnvironmentConfig()
	c.EpisodeSteps = 5
	c.Actions = ContinuousActions
	env, err := NewEnvironmentConstructor(c).NewEnvironment(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := util.NewParallelOutput()

	summary, err := Watch(context.Background(), env, policies.NewConstantPolicy(driveForward), 100, out)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if summary.Steps != 5 || !summary.Truncated || summary.Done {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(summary.Returns) != 2 {
		t.Errorf("returns %v", summary.Returns)
	}
	if out.Get() == "" {
		t.Errorf("scoreboard never set")
	}
}

func TestPrepareComparison(t *testing.T) {
	flags := common.DefaultFlags()
	flags.SavePath = t.TempDir()
	flags.Episodes = 2
	flags.Horizon = 5
	flags.Seed = 3
	flags.EpisodeTimeout = 10 * time.Second

	c := DefaultEnvironmentConfig()
	c.EpisodeSteps = 5
	cmp, err := PrepareComparison(flags, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Experiments) != 5 {
		t.Errorf("got %d experiments with lookup actions, want 5", len(cmp.Experiments))
	}

	cmp.Run(context.Background(), 1, flags.RunConfig())

	for _, name := range []string{"results.json", "coverage.json", "checks.json", "returns.xlsx"} {
		if _, err := os.Stat(filepath.Join(flags.ResultPath(), "0", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	c.Actions = ContinuousActions
	cmp, err = PrepareComparison(flags, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Experiments) != 2 {
		t.Errorf("got %d experiments with continuous actions, want 2", len(cmp.Experiments))
	}
}
