package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeu5/rlgym-go/benchmarks/soccar"
	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/policies"
	"github.com/zeu5/rlgym-go/util"
)

var (
	actions      string
	states       string
	episodeSteps int
	noTouchSteps int
	watchPolicy  string
)

func SoccarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soccar",
		Short: "Run soccar benchmarks on the arena simulator",
	}
	defaults := soccar.DefaultEnvironmentConfig()
	cmd.PersistentFlags().StringVar(&actions, "actions", defaults.Actions, "Action parser (continuous, discrete, lookup)")
	cmd.PersistentFlags().StringVar(&states, "states", defaults.States, "State setter (kickoff, random, mixed)")
	cmd.PersistentFlags().IntVar(&episodeSteps, "episode-steps", defaults.EpisodeSteps, "Steps before an episode is truncated, 0 to disable")
	cmd.PersistentFlags().IntVar(&noTouchSteps, "no-touch-steps", defaults.NoTouchSteps, "Steps without a touch before an episode is truncated, 0 to disable")

	cmd.AddCommand(
		soccarRunCommand(),
		soccarWatchCommand(),
	)
	return cmd
}

func environmentConfig() (soccar.EnvironmentConfig, error) {
	c := soccar.DefaultEnvironmentConfig()
	gameConfig, err := flags.LoadGameConfig()
	if err != nil {
		return c, err
	}
	c.GameConfig = gameConfig
	c.Actions = actions
	c.States = states
	c.EpisodeSteps = episodeSteps
	c.NoTouchSteps = noTouchSteps
	return c, nil
}

// interruptContext is cancelled on an interrupt or once the returned
// done func is called
func interruptContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		signal.Stop(sigCh)
		cancel()
	}()
	return ctx, func() { close(doneCh) }
}

func soccarRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare the stock policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := environmentConfig()
			if err != nil {
				return err
			}
			cmp, err := soccar.PrepareComparison(flags, config)
			if err != nil {
				return err
			}

			ctx, done := interruptContext()
			defer done()

			log.Printf("run %s: %s", flags.RunID, config)
			start := time.Now()
			cmp.Run(ctx, flags.NumRuns, flags.RunConfig())
			log.Printf("results saved to %s after %s", flags.ResultPath(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	return cmd
}

func soccarWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Play one episode with a live scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := environmentConfig()
			if err != nil {
				return err
			}
			space, err := config.ActionSpace()
			if err != nil {
				return err
			}
			var policy core.Policy
			switch watchPolicy {
			case "random":
				p := policies.NewRandomPolicy(space)
				if flags.Seed >= 0 {
					p.Seed(uint64(flags.Seed))
				}
				policy = p
			case "constant":
				policy = policies.NewConstantPolicy(soccar.ConstantAction(space))
			default:
				return fmt.Errorf("unknown policy %q", watchPolicy)
			}

			env, err := soccar.NewEnvironmentConstructor(config).NewEnvironment(0)
			if err != nil {
				return err
			}

			ctx, done := interruptContext()
			defer done()

			printer := util.NewTerminalPrinter(100 * time.Millisecond)
			out := printer.NewOutput()
			printer.Start(ctx)
			summary, err := soccar.Watch(ctx, env, policy, flags.Horizon, out)
			printer.Stop()
			if err != nil {
				return err
			}
			log.Printf("episode over after %d steps, result %d, done %v, truncated %v",
				summary.Steps, summary.Result, summary.Done, summary.Truncated)
			return nil
		},
	}
	cmd.Flags().StringVar(&watchPolicy, "policy", "random", "Policy to watch (random, constant)")
	return cmd
}
