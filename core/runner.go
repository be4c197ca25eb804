package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gosuri/uilive"
)

var (
	ErrTooManyTimeouts = errors.New("too many timeouts")
	ErrTooManyErrors   = errors.New("too many errors")
)

type experimentRunContext struct {
	run       int
	ctx       context.Context
	analyzers map[string]Analyzer

	writer io.Writer

	*RunConfig
}

type ExperimentResult struct {
	CompletedEpisodes int
	TotalEpisodes     int
	ErrorEpisodes     int
	TimeoutEpisodes   int
	TruncatedEpisodes int
	TotalTimeSteps    int

	Error    error
	Datasets map[string]DataSet
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

// runEpisode drives one episode to completion, recording the outcome on
// eCtx. The deadline of eCtx.Context is only checked between steps.
func runEpisode(env Environment, policy Policy, eCtx *EpisodeContext, seed *uint64) {
	opts := make([]ResetOption, 0, 1)
	if seed != nil {
		opts = append(opts, WithSeed(*seed))
	}
	obs, err := env.Reset(opts...)
	if err != nil {
		eCtx.Error(err)
		return
	}
	policy.ResetEpisode(eCtx)

	for step := 0; step < eCtx.Horizon; step++ {
		select {
		case <-eCtx.Context.Done():
			if errors.Is(eCtx.Context.Err(), context.DeadlineExceeded) {
				eCtx.Timeout()
			} else {
				eCtx.Error(eCtx.Context.Err())
			}
			return
		default:
		}

		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		state := env.PrevState()
		actions := policy.PickActions(sCtx, obs)
		result, err := env.Step(actions)
		if err != nil {
			eCtx.Error(err)
			return
		}
		policy.UpdateStep(sCtx, obs, actions, result)
		eCtx.Trace.AddStep(&Step{
			State:     state,
			Actions:   actions,
			NextState: env.PrevState(),
			Rewards:   result.Rewards,
			Done:      result.Done,
			Truncated: result.Truncated,
			Misc:      result.Info,
		})
		obs = result.Observations

		if result.Done {
			break
		}
		if result.Truncated {
			eCtx.Truncate()
			break
		}
	}
	policy.UpdateEpisode(eCtx)
	eCtx.Finish()
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := &ExperimentResult{
		Datasets: make(map[string]DataSet),
	}
	env, err := e.Environment.NewEnvironment(ctx.run)
	if err != nil {
		result.Error = fmt.Errorf("error creating environment: %w", err)
		return result
	}
	policy := e.Policy.NewPolicy()
	policy.Reset()

	consecutiveErrors := 0
	consecutiveTimeouts := 0
EpisodeLoop:
	for episode := 0; episode < ctx.Episodes; episode++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = errors.New("context cancelled")
			break EpisodeLoop
		default:
		}

		fmt.Fprintf(
			ctx.writer,
			"Experiment: %s, Run %d, Timesteps: %d, Episode %d/%d, Error: %d, Timedout: %d, Truncated: %d\n",
			e.Name, ctx.run, result.TotalTimeSteps, episode, ctx.Episodes, result.ErrorEpisodes, result.TimeoutEpisodes, result.TruncatedEpisodes,
		)

		timeoutCtx, timeoutCancel := context.WithTimeout(ctx.ctx, ctx.EpisodeTimeout)
		eCtx := NewEpisodeContext(timeoutCtx)
		eCtx.Run = ctx.run
		eCtx.Episode = episode
		eCtx.Horizon = ctx.Horizon
		eCtx.StartTimeStep = result.TotalTimeSteps

		var seed *uint64
		if ctx.Seed != nil {
			s := *ctx.Seed + uint64(episode)
			seed = &s
		}
		runEpisode(env, policy, eCtx, seed)
		timeoutCancel()

		errorred := eCtx.IsError()
		timedout := eCtx.IsTimeout()

		if errorred {
			result.ErrorEpisodes++
			// a failed gym stays failed, start over with a fresh one
			if env, err = e.Environment.NewEnvironment(ctx.run); err != nil {
				result.Error = fmt.Errorf("error creating environment: %w", err)
				break EpisodeLoop
			}
			if consecutiveErrors++; consecutiveErrors >= ctx.ThresholdConsecutiveErrors {
				result.Error = ErrTooManyErrors
			}
		} else {
			consecutiveErrors = 0
		}
		if timedout {
			result.TimeoutEpisodes++
			if consecutiveTimeouts++; consecutiveTimeouts >= ctx.ThresholdConsecutiveTimeouts {
				result.Error = ErrTooManyTimeouts
			}
		} else {
			consecutiveTimeouts = 0
		}
		if eCtx.IsTruncated() {
			result.TruncatedEpisodes++
		}

		if !errorred && !timedout {
			result.TotalTimeSteps += eCtx.Trace.Len()
			result.CompletedEpisodes++
		}
		result.TotalEpisodes++

		for _, a := range ctx.analyzers {
			a.Analyze(eCtx, eCtx.Trace)
		}
		if result.Error != nil {
			break EpisodeLoop
		}
	}
	if result.Error != nil {
		fmt.Fprintf(ctx.writer, "Experiment: %s, Run %d, Error: %v\n", e.Name, ctx.run, result.Error)
	}

	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}

	policy.Reset()
	return result
}

// Run executes every experiment of the comparison runs times, one after
// the other, and hands the analyzer datasets of each run to the comparators
func (c *Comparison) Run(ctx context.Context, runs int, rConfig *RunConfig) {
	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		writer := uilive.New()
		writer.Start()
		fmt.Fprintf(writer, "Run %d\n", run)

		results := make(map[string]*ExperimentResult)
		experimentNames := make([]string, 0, len(c.Experiments))

		for _, e := range c.Experiments {
			select {
			case <-ctx.Done():
				writer.Stop()
				return
			default:
			}
			eCtx := &experimentRunContext{
				run:       run,
				ctx:       ctx,
				analyzers: make(map[string]Analyzer),
				writer:    writer.Newline(),
				RunConfig: rConfig,
			}

			for name, aC := range c.Analyzers {
				a := aC.NewAnalyzer(e.Name, run)
				a.Reset()
				eCtx.analyzers[name] = a
			}

			results[e.Name] = e.run(eCtx)
			experimentNames = append(experimentNames, e.Name)
		}
		writer.Stop()

		// Gather datasets to run comparisons
		datasets := make(map[string][]DataSet)
		for name := range c.Analyzers {
			datasets[name] = make([]DataSet, 0, len(experimentNames))
			for _, exp := range experimentNames {
				result := results[exp]
				if result.IsError() {
					datasets[name] = append(datasets[name], nil)
				} else {
					datasets[name] = append(datasets[name], result.Datasets[name])
				}
			}
		}
		for name, cC := range c.Comparators {
			cC.NewComparator(run).Compare(experimentNames, datasets[name])
		}
	}
}
