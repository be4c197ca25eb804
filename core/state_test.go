package core

import (
	"math"
	"testing"
)

func TestNewStateWrapperLayout(t *testing.T) {
	w := NewStateWrapper(2, 1, nil)
	if len(w.Cars) != 3 {
		t.Fatalf("got %d cars, want 3", len(w.Cars))
	}
	for i, c := range w.Cars {
		if c.ID != i+1 {
			t.Errorf("car %d has id %d", i, c.ID)
		}
	}
	if got := w.BlueCars(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("blue cars %v", got)
	}
	if got := w.OrangeCars(); len(got) != 1 || got[0] != 2 {
		t.Errorf("orange cars %v", got)
	}
}

func TestNewStateWrapperFromSeed(t *testing.T) {
	seed := &GameState{
		Ball: PhysicsObject{Position: Vec3{1, 2, 3}},
		Players: []PlayerData{
			{CarID: 1, TeamNum: BlueTeam, BoostAmount: 0.5, CarData: PhysicsObject{Position: Vec3{10, 0, 17}}},
			{CarID: 2, TeamNum: BlueTeam, BoostAmount: 0.7},
		},
	}
	w := NewStateWrapper(1, 1, seed)
	if w.Ball.Position != (Vec3{1, 2, 3}) {
		t.Errorf("ball not copied: %+v", w.Ball)
	}
	if w.Cars[0].Boost != 0.5 || w.Cars[0].Physics.Position.X != 10 {
		t.Errorf("blue car not copied: %+v", w.Cars[0])
	}
	// team mismatch keeps the zero value
	if w.Cars[1].Boost != 0 {
		t.Errorf("orange car copied from a blue player: %+v", w.Cars[1])
	}
}

func TestGameStateCopyIsDeep(t *testing.T) {
	s := &GameState{Players: []PlayerData{{CarID: 1}}}
	c := s.Copy()
	c.Players[0].CarID = 5
	c.BoostPads[0] = 1
	if s.Players[0].CarID != 1 || s.BoostPads[0] != 0 {
		t.Errorf("copy aliases the original")
	}
	if p, ok := c.Player(5); !ok || p.CarID != 5 {
		t.Errorf("player lookup failed")
	}
	if _, ok := c.Player(1); ok {
		t.Errorf("found a player that does not exist")
	}
}

func TestPhysicsInverted(t *testing.T) {
	p := PhysicsObject{
		Position:       Vec3{100, -200, 50},
		LinearVelocity: Vec3{1, 2, 3},
		EulerAngles:    Vec3{0, math.Pi / 2, 0},
	}
	inv := p.Inverted()
	if inv.Position != (Vec3{-100, 200, 50}) {
		t.Errorf("position %+v", inv.Position)
	}
	if inv.LinearVelocity != (Vec3{-1, -2, 3}) {
		t.Errorf("velocity %+v", inv.LinearVelocity)
	}
	f := p.Forward()
	fi := inv.Forward()
	if math.Abs(float64(f.X+fi.X)) > 1e-5 || math.Abs(float64(f.Y+fi.Y)) > 1e-5 {
		t.Errorf("inverted forward %+v is not the mirror of %+v", fi, f)
	}
}

func TestVec3(t *testing.T) {
	v := Vec3{3, 4, 0}
	if v.Norm() != 5 {
		t.Errorf("norm %v", v.Norm())
	}
	if n := v.Normalize(); math.Abs(float64(n.Norm()-1)) > 1e-6 {
		t.Errorf("normalized norm %v", n.Norm())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Errorf("zero vector normalize")
	}
	if v.Dot(Vec3{1, 1, 1}) != 7 {
		t.Errorf("dot")
	}
}
