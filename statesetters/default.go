package statesetters

import (
	"math"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rlgym-go/core"
)

const (
	CarRestZ     = 17.0
	BallRestZ    = 92.75
	KickoffBoost = 0.33
)

var (
	spawnBluePos = []core.Vec3{
		{X: -2048, Y: -2560, Z: CarRestZ},
		{X: 2048, Y: -2560, Z: CarRestZ},
		{X: -256, Y: -3840, Z: CarRestZ},
		{X: 256, Y: -3840, Z: CarRestZ},
		{X: 0, Y: -4608, Z: CarRestZ},
	}
	spawnBlueYaw = []float32{0.25 * math.Pi, 0.75 * math.Pi, 0.5 * math.Pi, 0.5 * math.Pi, 0.5 * math.Pi}
)

func buildWrapper(teamSize int, spawnOpponents bool, seed *core.GameState) *core.StateWrapper {
	orange := 0
	if spawnOpponents {
		orange = teamSize
	}
	return core.NewStateWrapper(teamSize, orange, seed)
}

// mirror gives the orange counterpart of a blue spawn
func mirror(pos core.Vec3, yaw float32) (core.Vec3, float32) {
	p := core.PhysicsObject{Position: pos, EulerAngles: core.Vec3{Y: yaw}}.Inverted()
	return p.Position, p.EulerAngles.Y
}

// DefaultState sets up a kickoff: the ball at rest in the center and cars
// on the standard kickoff spots, shuffled every episode. Orange cars take
// the mirror image of the blue spots.
type DefaultState struct {
	rand *erand.Rand
}

var _ core.StateSetter = &DefaultState{}

func NewDefaultState() *DefaultState {
	return &DefaultState{
		rand: erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (d *DefaultState) SetSeed(seed uint64) {
	d.rand.Seed(seed)
}

func (d *DefaultState) BuildWrapper(teamSize int, spawnOpponents bool, seed *core.GameState) *core.StateWrapper {
	return buildWrapper(teamSize, spawnOpponents, seed)
}

func (d *DefaultState) Reset(w *core.StateWrapper) {
	spots := d.rand.Perm(len(spawnBluePos))

	w.Ball = core.PhysicsWrapper{Position: core.Vec3{Z: BallRestZ}}

	place := func(indices []int) {
		for i, idx := range indices {
			spot := spots[i%len(spots)]
			pos := spawnBluePos[spot]
			// more cars than spots, line the extras up behind
			pos.Y -= float32(i/len(spots)) * 256
			yaw := spawnBlueYaw[spot]
			if w.Cars[idx].TeamNum == core.OrangeTeam {
				pos, yaw = mirror(pos, yaw)
			}
			w.Cars[idx].Boost = KickoffBoost
			w.Cars[idx].Physics = core.PhysicsWrapper{
				Position: pos,
				Rotation: core.Vec3{Y: yaw},
			}
		}
	}
	place(w.BlueCars())
	place(w.OrangeCars())
}
