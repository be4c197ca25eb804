package conditions

import "github.com/zeu5/rlgym-go/core"

// TimeoutCondition truncates an episode once it has run for the given
// number of control steps
type TimeoutCondition struct {
	ticks uint64
	start uint64
}

var _ core.TerminalCondition = &TimeoutCondition{}

// NewTimeoutCondition counts steps of tickSkip simulator ticks each
func NewTimeoutCondition(steps, tickSkip int) *TimeoutCondition {
	return &TimeoutCondition{ticks: uint64(steps * tickSkip)}
}

func (c *TimeoutCondition) Reset(initial *core.GameState) {
	c.start = initial.TickNum
}

func (c *TimeoutCondition) IsTerminal(*core.GameState) bool {
	return false
}

func (c *TimeoutCondition) IsTruncated(state *core.GameState) bool {
	return state.TickNum-c.start >= c.ticks
}

// GoalScoredCondition ends an episode as soon as either team scores
type GoalScoredCondition struct {
	blue, orange int
}

var _ core.TerminalCondition = &GoalScoredCondition{}

func NewGoalScoredCondition() *GoalScoredCondition {
	return &GoalScoredCondition{}
}

func (c *GoalScoredCondition) Reset(initial *core.GameState) {
	c.blue = initial.BlueScore
	c.orange = initial.OrangeScore
}

func (c *GoalScoredCondition) IsTerminal(state *core.GameState) bool {
	return state.BlueScore != c.blue || state.OrangeScore != c.orange
}

func (c *GoalScoredCondition) IsTruncated(*core.GameState) bool {
	return false
}

// NoTouchTimeoutCondition truncates an episode when nobody touched the
// ball for the given number of control steps
type NoTouchTimeoutCondition struct {
	ticks     uint64
	lastTouch uint64
}

var _ core.TerminalCondition = &NoTouchTimeoutCondition{}

func NewNoTouchTimeoutCondition(steps, tickSkip int) *NoTouchTimeoutCondition {
	return &NoTouchTimeoutCondition{ticks: uint64(steps * tickSkip)}
}

func (c *NoTouchTimeoutCondition) Reset(initial *core.GameState) {
	c.lastTouch = initial.TickNum
}

func (c *NoTouchTimeoutCondition) IsTerminal(*core.GameState) bool {
	return false
}

func (c *NoTouchTimeoutCondition) IsTruncated(state *core.GameState) bool {
	for _, p := range state.Players {
		if p.BallTouched {
			c.lastTouch = state.TickNum
			break
		}
	}
	return state.TickNum-c.lastTouch >= c.ticks
}

// CombinedCondition is terminal when any of its conditions is terminal
// and truncated when any is truncated
type CombinedCondition struct {
	conditions []core.TerminalCondition
}

var _ core.TerminalCondition = &CombinedCondition{}

func NewCombinedCondition(conditions ...core.TerminalCondition) *CombinedCondition {
	return &CombinedCondition{conditions: conditions}
}

func (c *CombinedCondition) Reset(initial *core.GameState) {
	for _, cond := range c.conditions {
		cond.Reset(initial)
	}
}

func (c *CombinedCondition) IsTerminal(state *core.GameState) bool {
	done := false
	for _, cond := range c.conditions {
		if cond.IsTerminal(state) {
			done = true
		}
	}
	return done
}

// IsTruncated queries every condition so stateful ones see every tick
func (c *CombinedCondition) IsTruncated(state *core.GameState) bool {
	truncated := false
	for _, cond := range c.conditions {
		if cond.IsTruncated(state) {
			truncated = true
		}
	}
	return truncated
}
