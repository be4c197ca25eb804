package statesetters

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zeu5/rlgym-go/core"
)

func kickoff(t *testing.T, teamSize int, seed uint64) *core.StateWrapper {
	t.Helper()
	s := NewDefaultState()
	s.SetSeed(seed)
	w := s.BuildWrapper(teamSize, true, nil)
	s.Reset(w)
	return w
}

func TestDefaultStateKickoff(t *testing.T) {
	w := kickoff(t, 2, 1)
	if len(w.Cars) != 4 {
		t.Fatalf("got %d cars, want 4", len(w.Cars))
	}
	if w.Ball.Position != (core.Vec3{Z: BallRestZ}) || w.Ball.LinearVelocity != (core.Vec3{}) {
		t.Errorf("ball not at rest in the center: %+v", w.Ball)
	}
	blue, orange := w.BlueCars(), w.OrangeCars()
	for i := range blue {
		b := w.Cars[blue[i]]
		o := w.Cars[orange[i]]
		if b.Boost != KickoffBoost || o.Boost != KickoffBoost {
			t.Errorf("kickoff boost: %v, %v", b.Boost, o.Boost)
		}
		if b.Physics.Position.Y >= 0 || o.Physics.Position.Y <= 0 {
			t.Errorf("cars on the wrong half: %+v, %+v", b.Physics.Position, o.Physics.Position)
		}
		// orange mirrors blue
		if b.Physics.Position.X != -o.Physics.Position.X || b.Physics.Position.Y != -o.Physics.Position.Y {
			t.Errorf("orange spot %+v does not mirror blue %+v", o.Physics.Position, b.Physics.Position)
		}
	}
	if w.Cars[blue[0]].Physics.Position == w.Cars[blue[1]].Physics.Position {
		t.Errorf("two blue cars on the same spot")
	}
}

func TestDefaultStateSeeded(t *testing.T) {
	a := kickoff(t, 3, 42)
	b := kickoff(t, 3, 42)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different kickoffs")
	}
	differs := false
	for seed := uint64(0); seed < 20 && !differs; seed++ {
		if !reflect.DeepEqual(a, kickoff(t, 3, seed)) {
			differs = true
		}
	}
	if !differs {
		t.Errorf("kickoffs never shuffled")
	}
}

func TestDefaultStateManyCars(t *testing.T) {
	w := kickoff(t, 6, 3)
	seen := make(map[core.Vec3]bool)
	for _, c := range w.Cars {
		if seen[c.Physics.Position] {
			t.Fatalf("two cars share the spot %+v", c.Physics.Position)
		}
		seen[c.Physics.Position] = true
	}
}

func TestRandomState(t *testing.T) {
	r := NewRandomState(true, false)
	r.SetSeed(5)
	w := r.BuildWrapper(2, false, nil)
	r.Reset(w)
	if len(w.Cars) != 2 {
		t.Fatalf("got %d cars", len(w.Cars))
	}
	for _, c := range w.Cars {
		p := c.Physics.Position
		if p.X < -fieldX || p.X > fieldX || p.Y < -fieldY || p.Y > fieldY {
			t.Errorf("car outside the field: %+v", p)
		}
		if p.Z < CarRestZ || p.Z > maxSpawnZ {
			t.Errorf("car height %v", p.Z)
		}
		if c.Boost < 0 || c.Boost > 1 {
			t.Errorf("boost %v", c.Boost)
		}
		if c.TeamNum != core.BlueTeam {
			t.Errorf("unexpected orange car")
		}
	}

	grounded := NewRandomState(false, true)
	w = grounded.BuildWrapper(1, true, nil)
	grounded.Reset(w)
	for _, c := range w.Cars {
		if c.Physics.Position.Z != CarRestZ || c.Physics.LinearVelocity != (core.Vec3{}) {
			t.Errorf("grounded car %+v", c.Physics)
		}
	}
	if w.Ball.Position.Z != BallRestZ {
		t.Errorf("ball height %v", w.Ball.Position.Z)
	}
}

type countingSetter struct {
	builds int
	resets int
	seeds  []uint64
}

func (c *countingSetter) BuildWrapper(teamSize int, spawnOpponents bool, seed *core.GameState) *core.StateWrapper {
	c.builds++
	return buildWrapper(teamSize, spawnOpponents, seed)
}
func (c *countingSetter) Reset(*core.StateWrapper) { c.resets++ }
func (c *countingSetter) SetSeed(seed uint64)      { c.seeds = append(c.seeds, seed) }

func TestWeightedSampleSetter(t *testing.T) {
	never := &countingSetter{}
	always := &countingSetter{}
	s, err := NewWeightedSampleSetter([]core.StateSetter{never, always}, []float64{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.SetSeed(10)
	if !reflect.DeepEqual(never.seeds, []uint64{11}) || !reflect.DeepEqual(always.seeds, []uint64{12}) {
		t.Errorf("seeds not forwarded: %v %v", never.seeds, always.seeds)
	}
	for i := 0; i < 20; i++ {
		w := s.BuildWrapper(1, true, nil)
		s.Reset(w)
		if s.Active() != 1 {
			t.Fatalf("sampled a zero weight setter")
		}
	}
	if never.builds != 0 || always.builds != 20 || always.resets != 20 {
		t.Errorf("builds %d/%d, resets %d", never.builds, always.builds, always.resets)
	}

	if _, err := NewWeightedSampleSetter(nil, nil); !errors.Is(err, ErrNoSetters) {
		t.Errorf("expected ErrNoSetters, got %v", err)
	}
	if _, err := NewWeightedSampleSetter([]core.StateSetter{never}, []float64{1, 2}); err == nil {
		t.Errorf("expected an error for mismatched weights")
	}
}
