package soccar

import (
	"context"
	"fmt"

	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/util"
)

// Summary is what Watch reports about an episode
type Summary struct {
	Steps     int
	Result    int
	Returns   []float64
	Done      bool
	Truncated bool
}

func scoreboard(state *core.GameState, step int, returns []float64) string {
	if state == nil {
		return "waiting for kickoff"
	}
	return fmt.Sprintf(
		"Step %d, Tick %d | Blue %d - %d Orange | Ball (%.0f, %.0f, %.0f) | Returns %.2f",
		step, state.TickNum, state.BlueScore, state.OrangeScore,
		state.Ball.Position.X, state.Ball.Position.Y, state.Ball.Position.Z,
		returns,
	)
}

// Watch plays a single episode of policy in env for at most horizon
// steps and keeps a live scoreboard in out
func Watch(ctx context.Context, env core.Environment, policy core.Policy, horizon int, out *util.ParallelOutput) (*Summary, error) {
	eCtx := core.NewEpisodeContext(ctx)
	eCtx.Horizon = horizon

	obs, err := env.Reset()
	if err != nil {
		return nil, err
	}
	policy.ResetEpisode(eCtx)

	summary := &Summary{Returns: make([]float64, len(obs))}
	out.TrySet(scoreboard(env.PrevState(), 0, summary.Returns))

	for step := 0; step < horizon; step++ {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		sCtx := &core.StepContext{Step: step, EpisodeContext: eCtx}
		actions := policy.PickActions(sCtx, obs)
		result, err := env.Step(actions)
		if err != nil {
			return summary, err
		}
		policy.UpdateStep(sCtx, obs, actions, result)
		obs = result.Observations

		summary.Steps++
		for i, r := range result.Rewards {
			if i < len(summary.Returns) {
				summary.Returns[i] += float64(r)
			}
		}
		if res, ok := result.Info[core.InfoResult].(float32); ok {
			summary.Result = int(res)
		}
		out.TrySet(scoreboard(env.PrevState(), step+1, summary.Returns))

		if result.Done || result.Truncated {
			summary.Done = result.Done
			summary.Truncated = result.Truncated
			break
		}
	}
	out.Set(scoreboard(env.PrevState(), summary.Steps, summary.Returns))
	policy.UpdateEpisode(eCtx)
	return summary, nil
}
