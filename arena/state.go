package arena

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
)

// car is the authoritative per car state
type car struct {
	id   int
	team int

	phys  core.PhysicsObject
	boost float32

	onGround bool
	hasJump  bool
	hasFlip  bool
	jumpHeld bool

	ballTouched bool

	goals   int64
	saves   int64
	shots   int64
	demos   int64
	pickups int64
}

func newCar(id, team int) *car {
	return &car{
		id:       id,
		team:     team,
		onGround: true,
		hasJump:  true,
		hasFlip:  true,
		boost:    0.33,
	}
}

// world is the authoritative match state advanced tick by tick
type world struct {
	tick        uint64
	ball        core.PhysicsObject
	cars        []*car
	blueScore   int
	orangeScore int
	lastTouch   int
}

func (w *world) snapshot() *core.GameState {
	s := &core.GameState{
		BlueScore:    w.blueScore,
		OrangeScore:  w.orangeScore,
		LastTouch:    w.lastTouch,
		Players:      make([]core.PlayerData, len(w.cars)),
		Ball:         w.ball,
		InvertedBall: w.ball.Inverted(),
		TickNum:      w.tick,
	}
	// pads are always available
	for i := range s.BoostPads {
		s.BoostPads[i] = 1
		s.InvertedBoostPads[i] = 1
	}
	for i, c := range w.cars {
		s.Players[i] = core.PlayerData{
			CarID:           c.id,
			TeamNum:         c.team,
			MatchGoals:      c.goals,
			MatchSaves:      c.saves,
			MatchShots:      c.shots,
			MatchDemolishes: c.demos,
			BoostPickups:    c.pickups,
			OnGround:        c.onGround,
			BallTouched:     c.ballTouched,
			HasJump:         c.hasJump,
			HasFlip:         c.hasFlip,
			BoostAmount:     c.boost,
			CarData:         c.phys,
			InvertedCarData: c.phys.Inverted(),
		}
	}
	return s
}

func (w *world) car(id int) *car {
	for _, c := range w.cars {
		if c.id == id {
			return c
		}
	}
	return nil
}

// kickoffLayout places blue cars behind the ball on the negative y side
// and mirrors them for orange
func kickoffLayout(blue, orange int) []*car {
	cars := make([]*car, 0, blue+orange)
	place := func(team, idx, count int) *car {
		c := newCar(len(cars)+1, team)
		x := (float32(idx) - float32(count-1)/2) * 512
		c.phys.Position = core.Vec3{X: x, Y: -4608, Z: CarRestZ}
		c.phys.EulerAngles = core.Vec3{Y: math.Pi / 2}
		if team == core.OrangeTeam {
			c.phys = c.phys.Inverted()
		}
		return c
	}
	for i := 0; i < blue; i++ {
		cars = append(cars, place(core.BlueTeam, i, blue))
	}
	for i := 0; i < orange; i++ {
		cars = append(cars, place(core.OrangeTeam, i, orange))
	}
	return cars
}

func centerBall() core.PhysicsObject {
	return core.PhysicsObject{Position: core.Vec3{Z: BallRestZ}}
}
