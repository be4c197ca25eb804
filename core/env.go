package core

import "context"

// Environment is what the experiment runner drives. *Gym is the only
// implementation shipped here.
type Environment interface {
	Reset(...ResetOption) ([][]float32, error)
	Step([][]float32) (*StepResult, error)
	PrevState() *GameState
}

type EpisodeContext struct {
	Context       context.Context
	Episode       int
	Horizon       int
	Run           int
	StartTimeStep int

	Trace *Trace

	err       error
	timeout   bool
	truncated bool
	finished  bool
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Trace:   NewTrace(),
	}
}

func (e *EpisodeContext) Error(err error) {
	e.err = err
	e.finished = true
}

func (e *EpisodeContext) Timeout() {
	e.timeout = true
	e.finished = true
}

func (e *EpisodeContext) Truncate() {
	e.truncated = true
	e.finished = true
}

func (e *EpisodeContext) Finish() {
	e.finished = true
}

func (e *EpisodeContext) Err() error {
	return e.err
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

func (e *EpisodeContext) IsTimeout() bool {
	return e.timeout
}

func (e *EpisodeContext) IsTruncated() bool {
	return e.truncated
}

func (e *EpisodeContext) IsFinished() bool {
	return e.finished
}

type StepContext struct {
	Step int
	*EpisodeContext
}

type EnvironmentConstructor interface {
	// NewEnvironment creates a new environment for the given run number.
	NewEnvironment(int) (Environment, error)
}
