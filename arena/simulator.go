package arena

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeu5/rlgym-go/core"
)

var (
	ErrBadActions = errors.New("bad actions")
	ErrBadState   = errors.New("bad state wrapper")
)

// Simulator is a small kinematic soccar simulation. It runs at TickRate
// and every Advance integrates config.TickSkip ticks.
type Simulator struct {
	config core.GameConfig
	world  *world
}

var _ core.Simulator = &Simulator{}

// New creates a simulator with the cars of the config lined up for a
// kickoff
func New(config core.GameConfig) (*Simulator, error) {
	agents, err := config.AgentCount()
	if err != nil {
		return nil, err
	}
	return &Simulator{
		config: config,
		world: &world{
			ball:      centerBall(),
			cars:      kickoffLayout(config.TeamSize, agents-config.TeamSize),
			lastTouch: -1,
		},
	}, nil
}

func (s *Simulator) CurrentState() (*core.GameState, error) {
	return s.world.snapshot(), nil
}

// ForceState replaces the ball and the cars with the ones of the wrapper.
// Scores, the tick counter and the match statistics of cars that keep
// their id carry over.
func (s *Simulator) ForceState(wrapper *core.StateWrapper) (*core.GameState, error) {
	seen := make(map[int]bool)
	cars := make([]*car, 0, len(wrapper.Cars))
	for _, cw := range wrapper.Cars {
		if seen[cw.ID] {
			return nil, fmt.Errorf("%w: duplicate car id %d", ErrBadState, cw.ID)
		}
		if cw.TeamNum != core.BlueTeam && cw.TeamNum != core.OrangeTeam {
			return nil, fmt.Errorf("%w: car %d has unknown team %d", ErrBadState, cw.ID, cw.TeamNum)
		}
		if !finite(cw.Physics) {
			return nil, fmt.Errorf("%w: car %d has non finite physics", ErrBadState, cw.ID)
		}
		seen[cw.ID] = true

		c := newCar(cw.ID, cw.TeamNum)
		if old := s.world.car(cw.ID); old != nil {
			c.goals, c.saves, c.shots, c.demos, c.pickups = old.goals, old.saves, old.shots, old.demos, old.pickups
		}
		c.boost = clamp(cw.Boost, 0, 1)
		c.phys = core.PhysicsObject{
			Position:        cw.Physics.Position,
			LinearVelocity:  cw.Physics.LinearVelocity,
			AngularVelocity: cw.Physics.AngularVelocity,
			EulerAngles:     cw.Physics.Rotation,
		}
		if c.phys.Position.Z <= CarRestZ {
			c.phys.Position.Z = CarRestZ
		} else {
			c.onGround = false
		}
		cars = append(cars, c)
	}

	if !finite(wrapper.Ball) {
		return nil, fmt.Errorf("%w: ball has non finite physics", ErrBadState)
	}

	s.world.cars = cars
	s.world.ball = core.PhysicsObject{
		Position:        wrapper.Ball.Position,
		LinearVelocity:  wrapper.Ball.LinearVelocity,
		AngularVelocity: wrapper.Ball.AngularVelocity,
		EulerAngles:     wrapper.Ball.Rotation,
	}
	if s.world.ball.Position.Z < BallRestZ {
		s.world.ball.Position.Z = BallRestZ
	}
	return s.world.snapshot(), nil
}

// Advance applies actions for config.TickSkip ticks. BallTouched reports
// contacts made during this call only.
func (s *Simulator) Advance(actions [][]float32) (*core.GameState, error) {
	if len(actions) != len(s.world.cars) {
		return nil, fmt.Errorf("%w: got %d actions for %d cars", ErrBadActions, len(actions), len(s.world.cars))
	}
	for i, a := range actions {
		if len(a) != core.ActionSize {
			return nil, fmt.Errorf("%w: action %d has length %d, want %d", ErrBadActions, i, len(a), core.ActionSize)
		}
	}
	for _, c := range s.world.cars {
		c.ballTouched = false
	}
	for t := 0; t < s.config.TickSkip; t++ {
		step(s.world, actions, s.config)
	}
	return s.world.snapshot(), nil
}

// Reconfigure swaps the config. With restart the match starts over from a
// kickoff, otherwise only cars are added or removed to match the new team
// layout.
func (s *Simulator) Reconfigure(config core.GameConfig, restart bool) (*core.GameState, error) {
	agents, err := config.AgentCount()
	if err != nil {
		return nil, err
	}
	s.config = config
	blue, orange := config.TeamSize, agents-config.TeamSize

	if restart {
		s.world = &world{
			ball:      centerBall(),
			cars:      kickoffLayout(blue, orange),
			lastTouch: -1,
		}
		return s.world.snapshot(), nil
	}

	layout := kickoffLayout(blue, orange)
	for i, c := range layout {
		if old := s.world.car(c.id); old != nil && old.team == c.team {
			layout[i] = old
		}
	}
	s.world.cars = layout
	return s.world.snapshot(), nil
}

func (s *Simulator) Config() core.GameConfig {
	return s.config
}

// Constructor builds arena simulators
type Constructor struct{}

var _ core.SimulatorConstructor = Constructor{}

func (Constructor) NewSimulator(config core.GameConfig) (core.Simulator, error) {
	return New(config)
}

func finite(p core.PhysicsWrapper) bool {
	for _, v := range []core.Vec3{p.Position, p.LinearVelocity, p.AngularVelocity, p.Rotation} {
		for _, f := range v.Slice() {
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return false
			}
		}
	}
	return true
}
