package core

import "fmt"

// Make builds a simulator for the config, wraps it in a GameMatch and
// returns a Gym ready to be reset
func Make(c MakeConfig, sc SimulatorConstructor) (*Gym, error) {
	if _, err := c.GameConfig.AgentCount(); err != nil {
		return nil, err
	}
	sim, err := sc.NewSimulator(c.GameConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating simulator: %w", err)
	}
	match, err := NewGameMatch(c, sim)
	if err != nil {
		return nil, err
	}
	return NewGym(match), nil
}
