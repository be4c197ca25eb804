package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid game config")
)

// ActionSize is the number of controller channels in a parsed action
const ActionSize = 8

// Channels of a parsed action
const (
	Throttle = iota
	Steer
	Pitch
	Yaw
	Roll
	Jump
	Boost
	Handbrake
)

// GameConfig describes the shape of a match. It is a plain value: once
// handed to a GameMatch it is only ever replaced, never mutated.
type GameConfig struct {
	Gravity          float32    `yaml:"gravity" json:"gravity"`
	BoostConsumption float32    `yaml:"boost_consumption" json:"boost_consumption"`
	TeamSize         int        `yaml:"team_size" json:"team_size"`
	TickSkip         int        `yaml:"tick_skip" json:"tick_skip"`
	SpawnOpponents   bool       `yaml:"spawn_opponents" json:"spawn_opponents"`
	CarConfig        *CarConfig `yaml:"-" json:"car_config"`
}

// DefaultGameConfig returns a 1v1 match with standard mutators, a tick
// skip of 8 and the octane hitbox
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Gravity:          1,
		BoostConsumption: 1,
		TeamSize:         1,
		TickSkip:         8,
		SpawnOpponents:   true,
		CarConfig:        Octane(),
	}
}

// AgentCount returns the number of controllable cars the config spawns.
// Structural validation of the config happens here.
func (c GameConfig) AgentCount() (int, error) {
	if c.TeamSize < 1 {
		return 0, fmt.Errorf("%w: team size must be at least 1, got %d", ErrInvalidConfig, c.TeamSize)
	}
	if c.TickSkip < 1 {
		return 0, fmt.Errorf("%w: tick skip must be at least 1, got %d", ErrInvalidConfig, c.TickSkip)
	}
	if c.SpawnOpponents {
		return c.TeamSize * 2, nil
	}
	return c.TeamSize, nil
}

// CarConfig is the physical profile of a vehicle
type CarConfig struct {
	Name             string  `json:"name"`
	HitboxSize       Vec3    `json:"hitbox_size"`
	HitboxPosOffset  Vec3    `json:"hitbox_pos_offset"`
	FrontWheelRadius float32 `json:"front_wheel_radius"`
	BackWheelRadius  float32 `json:"back_wheel_radius"`
	DodgeDeadzone    float32 `json:"dodge_deadzone"`
}

// Radius approximates the hitbox with a sphere, used for contact checks
func (c *CarConfig) Radius() float32 {
	return (c.HitboxSize.X + c.HitboxSize.Y + c.HitboxSize.Z) / 6
}

func Octane() *CarConfig {
	return &CarConfig{
		Name:             "octane",
		HitboxSize:       Vec3{120.507, 86.6994, 38.6591},
		HitboxPosOffset:  Vec3{13.8757, 0, 20.755},
		FrontWheelRadius: 12.5,
		BackWheelRadius:  15,
		DodgeDeadzone:    0.5,
	}
}

func Dominus() *CarConfig {
	return &CarConfig{
		Name:             "dominus",
		HitboxSize:       Vec3{130.427, 85.7799, 33.8},
		HitboxPosOffset:  Vec3{9, 0, 15.75},
		FrontWheelRadius: 12,
		BackWheelRadius:  13.5,
		DodgeDeadzone:    0.5,
	}
}

func Plank() *CarConfig {
	return &CarConfig{
		Name:             "plank",
		HitboxSize:       Vec3{131.32, 87.1704, 31.8944},
		HitboxPosOffset:  Vec3{9.00857, 0, 12.0942},
		FrontWheelRadius: 12.5,
		BackWheelRadius:  17,
		DodgeDeadzone:    0.5,
	}
}

func Breakout() *CarConfig {
	return &CarConfig{
		Name:             "breakout",
		HitboxSize:       Vec3{133.992, 83.021, 32.8},
		HitboxPosOffset:  Vec3{12.5, 0, 11.75},
		FrontWheelRadius: 13.5,
		BackWheelRadius:  15,
		DodgeDeadzone:    0.5,
	}
}

func Hybrid() *CarConfig {
	return &CarConfig{
		Name:             "hybrid",
		HitboxSize:       Vec3{129.519, 84.6879, 36.6591},
		HitboxPosOffset:  Vec3{13.8757, 0, 20.755},
		FrontWheelRadius: 12.5,
		BackWheelRadius:  15,
		DodgeDeadzone:    0.5,
	}
}

func Merc() *CarConfig {
	return &CarConfig{
		Name:             "merc",
		HitboxSize:       Vec3{123.22, 79.2103, 44.1591},
		HitboxPosOffset:  Vec3{11.3757, 0, 21.505},
		FrontWheelRadius: 15,
		BackWheelRadius:  15,
		DodgeDeadzone:    0.5,
	}
}

// CarConfigByName maps a hitbox name (case insensitive) to its profile
func CarConfigByName(name string) (*CarConfig, error) {
	switch strings.ToLower(name) {
	case "octane", "":
		return Octane(), nil
	case "dominus":
		return Dominus(), nil
	case "plank", "batmobile":
		return Plank(), nil
	case "breakout":
		return Breakout(), nil
	case "hybrid":
		return Hybrid(), nil
	case "merc":
		return Merc(), nil
	}
	return nil, fmt.Errorf("%w: unknown car config %q", ErrInvalidConfig, name)
}

// Stats holds per player match statistics. Nothing in the match loop
// fills it in yet.
type Stats struct {
	Goals    uint16
	OwnGoals uint16
	Assists  uint16
}
