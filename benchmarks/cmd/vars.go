package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zeu5/rlgym-go/benchmarks/common"
)

var (
	flags          *common.Flags = common.DefaultFlags()
	savePath       string
	teamSize       int
	tickSkip       int
	spawnOpponents bool
	carName        string
	matchFile      string
	debug          bool

	numRuns                int
	episodes               int
	horizon                int
	maxConsecutiveErrors   int
	maxConsecutiveTimeouts int
	episodeTimeout         int
	seed                   int64
)

// AddFlags registers the persistent flags. Defaults come from flags, so
// LoadEnv must run before it.
func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().IntVar(&teamSize, "team-size", flags.TeamSize, "Cars per team")
	cmd.PersistentFlags().IntVar(&tickSkip, "tick-skip", flags.TickSkip, "Simulator ticks per step")
	cmd.PersistentFlags().BoolVar(&spawnOpponents, "spawn-opponents", flags.SpawnOpponents, "Whether to spawn an orange team")
	cmd.PersistentFlags().StringVar(&carName, "car", flags.CarName, "Car hitbox (octane, dominus, plank, breakout, hybrid, merc)")
	cmd.PersistentFlags().StringVar(&matchFile, "match-file", flags.MatchFile, "YAML file overriding the game config")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Dump the traces of the last episode")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Horizon")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")
	cmd.PersistentFlags().IntVar(&maxConsecutiveTimeouts, "max-consecutive-timeouts", flags.MaxConsecutiveTimeouts, "Maximum number of consecutive timeouts")
	cmd.PersistentFlags().IntVar(&episodeTimeout, "episode-timeout", int(flags.EpisodeTimeout.Seconds()), "Episode timeout in seconds")
	cmd.PersistentFlags().Int64Var(&seed, "seed", flags.Seed, "Seed of the first episode, negative for unseeded runs")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.TeamSize = teamSize
	flags.TickSkip = tickSkip
	flags.SpawnOpponents = spawnOpponents
	flags.CarName = carName
	flags.MatchFile = matchFile
	flags.Debug = debug

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.MaxConsecutiveTimeouts = maxConsecutiveTimeouts
	flags.EpisodeTimeout = time.Duration(episodeTimeout) * time.Second
	flags.Seed = seed
}
