package statesetters

import (
	"errors"
	"math"
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/rlgym-go/core"
)

const (
	fieldX = 4096.0 - 200
	fieldY = 5120.0 - 200
	// cars and ball stay below this height when spawned airborne
	maxSpawnZ = 1800.0
)

// RandomState spawns the ball and every car at uniformly random spots of
// the field with random boost. Velocities are randomized when
// RandomSpeed is set, and cars are airborne when OnGround is false.
type RandomState struct {
	RandomSpeed bool
	OnGround    bool

	rand *erand.Rand
}

var _ core.StateSetter = &RandomState{}

func NewRandomState(randomSpeed, onGround bool) *RandomState {
	return &RandomState{
		RandomSpeed: randomSpeed,
		OnGround:    onGround,
		rand:        erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (r *RandomState) SetSeed(seed uint64) {
	r.rand.Seed(seed)
}

func (r *RandomState) BuildWrapper(teamSize int, spawnOpponents bool, seed *core.GameState) *core.StateWrapper {
	return buildWrapper(teamSize, spawnOpponents, seed)
}

func (r *RandomState) uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*r.rand.Float32()
}

func (r *RandomState) position(restZ float32) core.Vec3 {
	z := restZ
	if !r.OnGround {
		z = r.uniform(restZ, maxSpawnZ)
	}
	return core.Vec3{
		X: r.uniform(-fieldX, fieldX),
		Y: r.uniform(-fieldY, fieldY),
		Z: z,
	}
}

func (r *RandomState) velocity(max float32) core.Vec3 {
	if !r.RandomSpeed {
		return core.Vec3{}
	}
	v := core.Vec3{X: r.uniform(-1, 1), Y: r.uniform(-1, 1)}
	if !r.OnGround {
		v.Z = r.uniform(-1, 1)
	}
	return v.Normalize().Scale(r.uniform(0, max))
}

func (r *RandomState) Reset(w *core.StateWrapper) {
	w.Ball = core.PhysicsWrapper{
		Position:       r.position(BallRestZ),
		LinearVelocity: r.velocity(2000),
	}
	for i := range w.Cars {
		rot := core.Vec3{Y: r.uniform(-math.Pi, math.Pi)}
		if !r.OnGround {
			rot.X = r.uniform(-math.Pi/2, math.Pi/2)
			rot.Z = r.uniform(-math.Pi, math.Pi)
		}
		w.Cars[i].Boost = r.rand.Float32()
		w.Cars[i].Physics = core.PhysicsWrapper{
			Position:       r.position(CarRestZ),
			LinearVelocity: r.velocity(1400),
			Rotation:       rot,
		}
	}
}

var (
	ErrNoSetters = errors.New("no state setters to sample from")
)

// WeightedSampleSetter picks one of its setters per episode with
// probability proportional to its weight
type WeightedSampleSetter struct {
	setters []core.StateSetter
	weights []float64

	src    erand.Source
	active int
}

var _ core.StateSetter = &WeightedSampleSetter{}

func NewWeightedSampleSetter(setters []core.StateSetter, weights []float64) (*WeightedSampleSetter, error) {
	if len(setters) == 0 {
		return nil, ErrNoSetters
	}
	if len(weights) != len(setters) {
		return nil, errors.New("setter and weight counts differ")
	}
	return &WeightedSampleSetter{
		setters: setters,
		weights: weights,
		src:     erand.NewSource(uint64(time.Now().UnixMilli())),
	}, nil
}

// SetSeed seeds the sampler and every setter, each with its own offset
func (s *WeightedSampleSetter) SetSeed(seed uint64) {
	s.src.Seed(seed)
	for i, setter := range s.setters {
		setter.SetSeed(seed + uint64(i) + 1)
	}
}

// Active is the index of the setter used for the current episode
func (s *WeightedSampleSetter) Active() int {
	return s.active
}

func (s *WeightedSampleSetter) BuildWrapper(teamSize int, spawnOpponents bool, seed *core.GameState) *core.StateWrapper {
	// using the sampleuv library to sample based on the weights
	if i, ok := sampleuv.NewWeighted(s.weights, s.src).Take(); ok {
		s.active = i
	}
	return s.setters[s.active].BuildWrapper(teamSize, spawnOpponents, seed)
}

func (s *WeightedSampleSetter) Reset(w *core.StateWrapper) {
	s.setters[s.active].Reset(w)
}
