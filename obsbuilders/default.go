package obsbuilders

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
)

const (
	PosStd = 2300.0
	AngStd = math.Pi

	BallBlockSize  = 9 + core.NumBoostPads
	carBlockSize   = 16
	otherBlockSize = carBlockSize + 6
)

// DefaultObs builds a fixed size observation: ball and boost pads, the
// player's own car, then allies and enemies in player order. Orange
// players see the field mirrored so every player plays towards positive y.
// Missing allies or enemies are zero filled.
type DefaultObs struct {
	allies  int
	enemies int

	// tick level features, shared by every player of a tick
	ball         []float32
	invertedBall []float32
}

var _ core.ObsBuilder = &DefaultObs{}

func NewDefaultObs(config core.GameConfig) *DefaultObs {
	enemies := 0
	if config.SpawnOpponents {
		enemies = config.TeamSize
	}
	return &DefaultObs{
		allies:  config.TeamSize - 1,
		enemies: enemies,
	}
}

func (o *DefaultObs) ObservationShape() []int {
	return []int{BallBlockSize + carBlockSize + (o.allies+o.enemies)*otherBlockSize}
}

func (o *DefaultObs) Reset(*core.GameState) {
	o.ball = nil
	o.invertedBall = nil
}

func ballFeatures(ball core.PhysicsObject, pads [core.NumBoostPads]float32) []float32 {
	out := make([]float32, 0, BallBlockSize)
	out = append(out, ball.Position.Scale(1/PosStd).Slice()...)
	out = append(out, ball.LinearVelocity.Scale(1/PosStd).Slice()...)
	out = append(out, ball.AngularVelocity.Scale(1/AngStd).Slice()...)
	out = append(out, pads[:]...)
	return out
}

func (o *DefaultObs) PreStep(state *core.GameState, _ core.GameConfig) {
	o.ball = ballFeatures(state.Ball, state.BoostPads)
	o.invertedBall = ballFeatures(state.InvertedBall, state.InvertedBoostPads)
}

func carFeatures(p *core.PlayerData, car core.PhysicsObject) []float32 {
	out := make([]float32, 0, carBlockSize)
	out = append(out, car.Position.Scale(1/PosStd).Slice()...)
	out = append(out, car.Forward().Slice()...)
	out = append(out, car.LinearVelocity.Scale(1/PosStd).Slice()...)
	out = append(out, car.AngularVelocity.Scale(1/AngStd).Slice()...)
	out = append(out, p.BoostAmount, flag(p.OnGround), flag(p.HasFlip), flag(p.IsDemoed))
	return out
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func perspective(p *core.PlayerData, inverted bool) core.PhysicsObject {
	if inverted {
		return p.InvertedCarData
	}
	return p.CarData
}

func (o *DefaultObs) BuildObs(player *core.PlayerData, state *core.GameState, _ core.GameConfig) []float32 {
	inverted := player.TeamNum == core.OrangeTeam
	if o.ball == nil {
		o.PreStep(state, core.GameConfig{})
	}

	obs := make([]float32, 0, o.ObservationShape()[0])
	if inverted {
		obs = append(obs, o.invertedBall...)
	} else {
		obs = append(obs, o.ball...)
	}
	self := perspective(player, inverted)
	obs = append(obs, carFeatures(player, self)...)

	allies := make([]float32, 0, o.allies*otherBlockSize)
	enemies := make([]float32, 0, o.enemies*otherBlockSize)
	for i := range state.Players {
		other := &state.Players[i]
		if other.CarID == player.CarID {
			continue
		}
		car := perspective(other, inverted)
		block := carFeatures(other, car)
		block = append(block, car.Position.Sub(self.Position).Scale(1/PosStd).Slice()...)
		block = append(block, car.LinearVelocity.Sub(self.LinearVelocity).Scale(1/PosStd).Slice()...)
		if other.TeamNum == player.TeamNum {
			if len(allies) < cap(allies) {
				allies = append(allies, block...)
			}
		} else if len(enemies) < cap(enemies) {
			enemies = append(enemies, block...)
		}
	}
	obs = append(obs, pad(allies, o.allies*otherBlockSize)...)
	obs = append(obs, pad(enemies, o.enemies*otherBlockSize)...)
	return obs
}

func pad(v []float32, size int) []float32 {
	for len(v) < size {
		v = append(v, 0)
	}
	return v
}
