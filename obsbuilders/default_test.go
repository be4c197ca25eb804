package obsbuilders

import (
	"math"
	"testing"

	"github.com/zeu5/rlgym-go/core"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func testState() *core.GameState {
	ball := core.PhysicsObject{Position: core.Vec3{X: 230, Y: 460, Z: 92.75}}
	blue := core.PhysicsObject{Position: core.Vec3{Y: -2300, Z: 17}}
	orange := core.PhysicsObject{Position: core.Vec3{Y: 2300, Z: 17}}
	s := &core.GameState{
		Ball:         ball,
		InvertedBall: ball.Inverted(),
		Players: []core.PlayerData{
			{CarID: 1, TeamNum: core.BlueTeam, BoostAmount: 0.5, OnGround: true, CarData: blue, InvertedCarData: blue.Inverted()},
			{CarID: 2, TeamNum: core.OrangeTeam, BoostAmount: 0.25, CarData: orange, InvertedCarData: orange.Inverted()},
		},
	}
	for i := range s.BoostPads {
		s.BoostPads[i] = 1
		s.InvertedBoostPads[i] = 1
	}
	return s
}

func TestDefaultObsShape(t *testing.T) {
	tests := []struct {
		teamSize int
		spawn    bool
		want     int
	}{
		{1, true, 43 + 16 + 22},
		{1, false, 43 + 16},
		{2, true, 43 + 16 + 3*22},
		{3, true, 43 + 16 + 5*22},
	}
	for _, tt := range tests {
		cfg := core.DefaultGameConfig()
		cfg.TeamSize = tt.teamSize
		cfg.SpawnOpponents = tt.spawn
		o := NewDefaultObs(cfg)
		if got := o.ObservationShape(); len(got) != 1 || got[0] != tt.want {
			t.Errorf("%+v: got shape %v", tt, got)
		}
	}
}

func TestDefaultObsBuild(t *testing.T) {
	cfg := core.DefaultGameConfig()
	o := NewDefaultObs(cfg)
	s := testState()
	o.Reset(s)
	o.PreStep(s, cfg)

	blue := o.BuildObs(&s.Players[0], s, cfg)
	orange := o.BuildObs(&s.Players[1], s, cfg)
	want := o.ObservationShape()[0]
	if len(blue) != want || len(orange) != want {
		t.Fatalf("got lengths %d and %d, want %d", len(blue), len(orange), want)
	}

	// ball position is normalized
	if !approx(blue[0], 0.1) || !approx(blue[1], 0.2) {
		t.Errorf("ball features %v", blue[:3])
	}
	// orange sees the mirrored ball
	if !approx(orange[0], -0.1) || !approx(orange[1], -0.2) {
		t.Errorf("inverted ball features %v", orange[:3])
	}
	// both players see their own car at the same spot of their own half
	self := BallBlockSize
	if !approx(blue[self+1], -1) || !approx(orange[self+1], -1) {
		t.Errorf("self y: blue %v, orange %v", blue[self+1], orange[self+1])
	}
	if blue[self+12] != 0.5 || blue[self+13] != 1 {
		t.Errorf("blue boost and on ground: %v", blue[self+12:self+16])
	}
	// the enemy block carries the relative position
	enemy := self + carBlockSize
	if rel := blue[enemy+carBlockSize+1]; !approx(rel, 2) {
		t.Errorf("relative enemy y %v, want 2", rel)
	}
}

func TestDefaultObsZeroFillsMissingPlayers(t *testing.T) {
	cfg := core.DefaultGameConfig()
	cfg.TeamSize = 2
	o := NewDefaultObs(cfg)
	s := testState()
	o.PreStep(s, cfg)

	obs := o.BuildObs(&s.Players[0], s, cfg)
	if len(obs) != o.ObservationShape()[0] {
		t.Fatalf("got length %d, want %d", len(obs), o.ObservationShape()[0])
	}
	allies := BallBlockSize + carBlockSize
	for i := allies; i < allies+otherBlockSize; i++ {
		if obs[i] != 0 {
			t.Fatalf("missing ally not zero filled at %d: %v", i, obs[i])
		}
	}
}

func TestDefaultObsUsesTickCache(t *testing.T) {
	cfg := core.DefaultGameConfig()
	o := NewDefaultObs(cfg)
	s := testState()
	o.PreStep(s, cfg)

	// the cache only refreshes on PreStep
	s.Ball.Position.X = 2300
	obs := o.BuildObs(&s.Players[0], s, cfg)
	if !approx(obs[0], 0.1) {
		t.Errorf("ball features recomputed outside PreStep: %v", obs[0])
	}
	o.PreStep(s, cfg)
	obs = o.BuildObs(&s.Players[0], s, cfg)
	if !approx(obs[0], 1) {
		t.Errorf("ball features not refreshed: %v", obs[0])
	}
}
