package core

// Policy picks the raw actions fed to Gym.Step. obs holds one observation
// per player and the returned slice must hold one action per player.
type Policy interface {
	ResetEpisode(*EpisodeContext)
	UpdateEpisode(*EpisodeContext)
	PickActions(ctx *StepContext, obs [][]float32) [][]float32
	UpdateStep(ctx *StepContext, obs [][]float32, actions [][]float32, result *StepResult)
	Reset()
}

type PolicyConstructor interface {
	NewPolicy() Policy
}
