package conditions

import (
	"testing"

	"github.com/zeu5/rlgym-go/core"
)

func TestTimeoutCondition(t *testing.T) {
	c := NewTimeoutCondition(3, 8)
	c.Reset(&core.GameState{TickNum: 100})

	for _, tt := range []struct {
		tick uint64
		want bool
	}{
		{108, false},
		{116, false},
		{124, true},
		{132, true},
	} {
		s := &core.GameState{TickNum: tt.tick}
		if got := c.IsTruncated(s); got != tt.want {
			t.Errorf("tick %d: truncated %v, want %v", tt.tick, got, tt.want)
		}
		if c.IsTerminal(s) {
			t.Errorf("timeout should never be terminal")
		}
	}
}

func TestGoalScoredCondition(t *testing.T) {
	c := NewGoalScoredCondition()
	c.Reset(&core.GameState{BlueScore: 2, OrangeScore: 1})
	if c.IsTerminal(&core.GameState{BlueScore: 2, OrangeScore: 1}) {
		t.Errorf("terminal without a goal")
	}
	if !c.IsTerminal(&core.GameState{BlueScore: 2, OrangeScore: 2}) {
		t.Errorf("orange goal not terminal")
	}
	if !c.IsTerminal(&core.GameState{BlueScore: 3, OrangeScore: 1}) {
		t.Errorf("blue goal not terminal")
	}
	if c.IsTruncated(&core.GameState{BlueScore: 3}) {
		t.Errorf("goal condition should never truncate")
	}
}

func TestNoTouchTimeoutCondition(t *testing.T) {
	c := NewNoTouchTimeoutCondition(2, 8)
	c.Reset(&core.GameState{})

	untouched := func(tick uint64) *core.GameState {
		return &core.GameState{TickNum: tick, Players: []core.PlayerData{{CarID: 1}}}
	}
	touched := func(tick uint64) *core.GameState {
		return &core.GameState{TickNum: tick, Players: []core.PlayerData{{CarID: 1, BallTouched: true}}}
	}

	if c.IsTruncated(untouched(8)) {
		t.Errorf("truncated after one step")
	}
	if c.IsTruncated(touched(16)) {
		t.Errorf("truncated on a touch")
	}
	if c.IsTruncated(untouched(24)) {
		t.Errorf("touch did not restart the countdown")
	}
	if !c.IsTruncated(untouched(32)) {
		t.Errorf("not truncated after two untouched steps")
	}
}

func TestCombinedCondition(t *testing.T) {
	timeout := NewTimeoutCondition(1, 8)
	goal := NewGoalScoredCondition()
	c := NewCombinedCondition(timeout, goal)
	c.Reset(&core.GameState{})

	s := &core.GameState{TickNum: 4}
	if c.IsTerminal(s) || c.IsTruncated(s) {
		t.Errorf("nothing should have fired yet")
	}
	s = &core.GameState{TickNum: 8, OrangeScore: 1}
	if !c.IsTerminal(s) || !c.IsTruncated(s) {
		t.Errorf("both flags should be set: terminal %v, truncated %v", c.IsTerminal(s), c.IsTruncated(s))
	}
}
