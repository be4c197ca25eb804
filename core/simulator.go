package core

// Simulator is the physics backend a GameMatch drives. Every call is
// blocking and returns the snapshot reached after it.
type Simulator interface {
	// CurrentState returns the current snapshot without advancing
	CurrentState() (*GameState, error)
	// ForceState puts the simulation into the given state
	ForceState(*StateWrapper) (*GameState, error)
	// Advance applies one parsed action per car for config.TickSkip ticks
	Advance([][]float32) (*GameState, error)
	// Reconfigure swaps the game config, restarting the match if asked to
	Reconfigure(config GameConfig, restart bool) (*GameState, error)
}

type SimulatorConstructor interface {
	NewSimulator(GameConfig) (Simulator, error)
}
