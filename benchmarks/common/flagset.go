package common

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/util"
)

type Flags struct {
	MatchFlags
	SavePath string
	RunFlags
	// RunID names the directory the results of this invocation go to
	RunID string
	Debug bool
}

type MatchFlags struct {
	TeamSize       int
	TickSkip       int
	SpawnOpponents bool
	CarName        string
	// MatchFile is an optional YAML file overriding the game config
	MatchFile string
}

type RunFlags struct {
	NumRuns                int
	Episodes               int
	Horizon                int
	MaxConsecutiveErrors   int
	MaxConsecutiveTimeouts int
	EpisodeTimeout         time.Duration
	// Seed seeds the episodes when non negative
	Seed int64
}

func DefaultFlags() *Flags {
	return &Flags{
		MatchFlags: MatchFlags{
			TeamSize:       1,
			TickSkip:       8,
			SpawnOpponents: true,
			CarName:        "octane",
		},
		SavePath: "results",
		RunFlags: RunFlags{
			NumRuns:                1,
			Episodes:               100,
			Horizon:                1500,
			MaxConsecutiveErrors:   20,
			MaxConsecutiveTimeouts: 20,
			EpisodeTimeout:         30 * time.Second,
			Seed:                   -1,
		},
		RunID: uuid.New().String(),
	}
}

// ResultPath is where everything of this invocation is saved
func (f *Flags) ResultPath() string {
	return path.Join(f.SavePath, f.RunID)
}

func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.ResultPath(), "config.json"), f)
}

// RunConfig turns the run flags into the runner's configuration
func (f *Flags) RunConfig() *core.RunConfig {
	c := &core.RunConfig{
		Episodes:                     f.Episodes,
		Horizon:                      f.Horizon,
		EpisodeTimeout:               f.EpisodeTimeout,
		ThresholdConsecutiveErrors:   f.MaxConsecutiveErrors,
		ThresholdConsecutiveTimeouts: f.MaxConsecutiveTimeouts,
	}
	if f.Seed >= 0 {
		seed := uint64(f.Seed)
		c.Seed = &seed
	}
	return c
}

// matchFile is the YAML layout of a match file. Absent keys keep the
// value set by the flags.
type matchFile struct {
	Gravity          *float32 `yaml:"gravity"`
	BoostConsumption *float32 `yaml:"boost_consumption"`
	TeamSize         *int     `yaml:"team_size"`
	TickSkip         *int     `yaml:"tick_skip"`
	SpawnOpponents   *bool    `yaml:"spawn_opponents"`
	Car              *string  `yaml:"car"`
}

// LoadGameConfig builds the game config from the match flags and, when
// set, the match file
func (f *Flags) LoadGameConfig() (core.GameConfig, error) {
	cfg := core.DefaultGameConfig()
	cfg.TeamSize = f.TeamSize
	cfg.TickSkip = f.TickSkip
	cfg.SpawnOpponents = f.SpawnOpponents
	car := f.CarName

	if f.MatchFile != "" {
		b, err := os.ReadFile(f.MatchFile)
		if err != nil {
			return cfg, fmt.Errorf("reading match file: %w", err)
		}
		var mf matchFile
		if err := yaml.Unmarshal(b, &mf); err != nil {
			return cfg, fmt.Errorf("parsing match file %s: %w", f.MatchFile, err)
		}
		if mf.Gravity != nil {
			cfg.Gravity = *mf.Gravity
		}
		if mf.BoostConsumption != nil {
			cfg.BoostConsumption = *mf.BoostConsumption
		}
		if mf.TeamSize != nil {
			cfg.TeamSize = *mf.TeamSize
		}
		if mf.TickSkip != nil {
			cfg.TickSkip = *mf.TickSkip
		}
		if mf.SpawnOpponents != nil {
			cfg.SpawnOpponents = *mf.SpawnOpponents
		}
		if mf.Car != nil {
			car = *mf.Car
		}
	}

	carConfig, err := core.CarConfigByName(car)
	if err != nil {
		return cfg, err
	}
	cfg.CarConfig = carConfig
	if _, err := cfg.AgentCount(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Environment variables providing defaults for the flags
const (
	EnvSavePath = "RLGYM_SAVE_PATH"
	EnvEpisodes = "RLGYM_EPISODES"
	EnvHorizon  = "RLGYM_HORIZON"
	EnvTeamSize = "RLGYM_TEAM_SIZE"
	EnvTickSkip = "RLGYM_TICK_SKIP"
	EnvCar      = "RLGYM_CAR"
	EnvSeed     = "RLGYM_SEED"
)

// LoadEnv loads the first of files that exists into the environment and
// applies the RLGYM_* variables on top of the defaults in f. Malformed
// numbers are reported and leave the default in place.
func (f *Flags) LoadEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err == nil {
			break
		}
	}

	if v := os.Getenv(EnvSavePath); v != "" {
		f.SavePath = v
	}
	if v := os.Getenv(EnvCar); v != "" {
		f.CarName = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvEpisodes, &f.Episodes},
		{EnvHorizon, &f.Horizon},
		{EnvTeamSize, &f.TeamSize},
		{EnvTickSkip, &f.TickSkip},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		f.Seed = n
	}
	return nil
}
