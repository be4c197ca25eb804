package arena

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
)

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func wrapAngle(a float32) float32 {
	return float32(math.Remainder(float64(a), 2*math.Pi))
}

func pressed(v float32) bool {
	return v > PressThreshold
}

func carRadius(cfg core.GameConfig) float32 {
	if cfg.CarConfig == nil {
		return core.Octane().Radius()
	}
	return cfg.CarConfig.Radius()
}

// step advances the world by a single tick. actions must hold one parsed
// action per car.
func step(w *world, actions [][]float32, cfg core.GameConfig) {
	w.tick++
	gravity := float32(GravityZ) * cfg.Gravity
	radius := carRadius(cfg)

	for i, c := range w.cars {
		driveCar(c, actions[i], cfg, gravity, radius)
	}
	moveBall(w, gravity)
	for _, c := range w.cars {
		collideBall(w, c, radius)
	}
	checkGoal(w)
}

func driveCar(c *car, a []float32, cfg core.GameConfig, gravity, radius float32) {
	p := &c.phys
	boosting := pressed(a[core.Boost]) && c.boost > 0
	jumpEdge := pressed(a[core.Jump]) && !c.jumpHeld

	if c.onGround {
		yaw := float64(p.EulerAngles.Y)
		fwd := core.Vec3{X: float32(math.Cos(yaw)), Y: float32(math.Sin(yaw))}
		speed := p.LinearVelocity.Dot(fwd)

		throttle := clamp(a[core.Throttle], -1, 1)
		var accel float32
		switch {
		case throttle == 0:
			accel = -sign(speed) * float32(math.Min(CoastDecel, float64(abs(speed))/TickDt))
		case sign(throttle) != sign(speed) && abs(speed) > 1:
			accel = sign(throttle) * BrakeAccel
		default:
			accel = throttle * ThrottleAccel
		}
		if boosting {
			accel += BoostAccel
		}
		speed += accel * TickDt
		if !boosting {
			speed = clamp(speed, -MaxDriveSpeed, MaxDriveSpeed)
		}
		speed = clamp(speed, -MaxCarSpeed, MaxCarSpeed)

		turn := clamp(a[core.Steer], -1, 1) * TurnRate
		if pressed(a[core.Handbrake]) {
			turn *= HandbrakeTurn
		}
		turn *= float32(math.Min(1, float64(abs(speed))/500)) * sign(speed)
		p.EulerAngles.Y = wrapAngle(p.EulerAngles.Y + turn*TickDt)
		p.AngularVelocity = core.Vec3{Z: turn}

		yaw = float64(p.EulerAngles.Y)
		fwd = core.Vec3{X: float32(math.Cos(yaw)), Y: float32(math.Sin(yaw))}
		p.LinearVelocity = fwd.Scale(speed)

		if jumpEdge && c.hasJump {
			p.LinearVelocity.Z = JumpImpulse
			c.onGround = false
			c.hasJump = false
		}
	} else {
		rates := core.Vec3{
			X: clamp(a[core.Pitch], -1, 1) * AirRotateRate,
			Y: clamp(a[core.Yaw], -1, 1) * AirRotateRate,
			Z: clamp(a[core.Roll], -1, 1) * AirRotateRate,
		}
		p.EulerAngles = core.Vec3{
			X: wrapAngle(p.EulerAngles.X + rates.X*TickDt),
			Y: wrapAngle(p.EulerAngles.Y + rates.Y*TickDt),
			Z: wrapAngle(p.EulerAngles.Z + rates.Z*TickDt),
		}
		p.AngularVelocity = rates

		if boosting {
			p.LinearVelocity = p.LinearVelocity.Add(p.Forward().Scale(BoostAccel * TickDt))
		}
		if jumpEdge && c.hasFlip {
			yaw := float64(p.EulerAngles.Y)
			dir := core.Vec3{X: float32(math.Cos(yaw)), Y: float32(math.Sin(yaw))}
			p.LinearVelocity = p.LinearVelocity.Add(dir.Scale(FlipImpulse))
			c.hasFlip = false
		}
		p.LinearVelocity.Z += gravity * TickDt
	}

	if boosting {
		c.boost = clamp(c.boost-BoostDrain*cfg.BoostConsumption*TickDt, 0, 1)
	}
	c.jumpHeld = pressed(a[core.Jump])

	if n := p.LinearVelocity.Norm(); n > MaxCarSpeed {
		p.LinearVelocity = p.LinearVelocity.Scale(MaxCarSpeed / n)
	}
	p.Position = p.Position.Add(p.LinearVelocity.Scale(TickDt))

	if !c.onGround && p.Position.Z <= CarRestZ && p.LinearVelocity.Z <= 0 {
		p.Position.Z = CarRestZ
		p.LinearVelocity.Z = 0
		p.EulerAngles.X = 0
		p.EulerAngles.Z = 0
		c.onGround = true
		c.hasJump = true
		c.hasFlip = true
	}
	if abs(p.Position.X) > SideWallX-radius {
		p.Position.X = sign(p.Position.X) * (SideWallX - radius)
		p.LinearVelocity.X = 0
	}
	if abs(p.Position.Y) > BackWallY-radius {
		p.Position.Y = sign(p.Position.Y) * (BackWallY - radius)
		p.LinearVelocity.Y = 0
	}
	if p.Position.Z > CeilingZ-radius {
		p.Position.Z = CeilingZ - radius
		p.LinearVelocity.Z = 0
	}
}

func inGoalMouth(pos core.Vec3) bool {
	return abs(pos.X) < GoalHalfX-BallRadius && pos.Z < GoalHeight-BallRadius
}

func moveBall(w *world, gravity float32) {
	b := &w.ball
	b.LinearVelocity.Z += gravity * TickDt
	b.LinearVelocity = b.LinearVelocity.Scale(1 - BallDrag*TickDt)
	if n := b.LinearVelocity.Norm(); n > BallMaxSpeed {
		b.LinearVelocity = b.LinearVelocity.Scale(BallMaxSpeed / n)
	}
	b.Position = b.Position.Add(b.LinearVelocity.Scale(TickDt))

	if b.Position.Z < BallRestZ {
		b.Position.Z = BallRestZ
		if b.LinearVelocity.Z < 0 {
			b.LinearVelocity.Z = -b.LinearVelocity.Z * BallBounce
		}
		// settle instead of bouncing forever
		if b.LinearVelocity.Z < -gravity*TickDt*2 {
			b.LinearVelocity.Z = 0
		}
	}
	if b.Position.Z > CeilingZ-BallRadius {
		b.Position.Z = CeilingZ - BallRadius
		b.LinearVelocity.Z = -abs(b.LinearVelocity.Z) * BallBounce
	}
	if abs(b.Position.X) > SideWallX-BallRadius {
		b.Position.X = sign(b.Position.X) * (SideWallX - BallRadius)
		b.LinearVelocity.X = -b.LinearVelocity.X * BallBounce
	}
	if abs(b.Position.Y) > BackWallY-BallRadius && !inGoalMouth(b.Position) {
		b.Position.Y = sign(b.Position.Y) * (BackWallY - BallRadius)
		b.LinearVelocity.Y = -b.LinearVelocity.Y * BallBounce
	}
	b.AngularVelocity = core.Vec3{}
}

// headingInto reports whether the ball, moving in a straight line, crosses
// the goal line defended by team inside the goal mouth
func headingInto(ball core.PhysicsObject, team int) bool {
	lineY := float32(-BackWallY)
	if team == core.OrangeTeam {
		lineY = BackWallY
	}
	vy := ball.LinearVelocity.Y
	if vy == 0 || sign(vy) != sign(lineY-ball.Position.Y) {
		return false
	}
	t := (lineY - ball.Position.Y) / vy
	x := ball.Position.X + ball.LinearVelocity.X*t
	return abs(x) < GoalHalfX
}

func opponent(team int) int {
	if team == core.BlueTeam {
		return core.OrangeTeam
	}
	return core.BlueTeam
}

func collideBall(w *world, c *car, radius float32) {
	reach := radius + BallRadius
	d := w.ball.Position.Sub(c.phys.Position)
	dist := d.Norm()
	if dist >= reach || dist == 0 {
		return
	}
	n := d.Scale(1 / dist)

	shotBefore := headingInto(w.ball, opponent(c.team))
	saveBefore := headingInto(w.ball, c.team)

	rel := c.phys.LinearVelocity.Sub(w.ball.LinearVelocity)
	if approach := rel.Dot(n); approach > 0 {
		w.ball.LinearVelocity = w.ball.LinearVelocity.Add(n.Scale(approach * HitImpulseScale))
	}
	w.ball.Position = c.phys.Position.Add(n.Scale(reach))

	if !shotBefore && headingInto(w.ball, opponent(c.team)) {
		c.shots++
	}
	if saveBefore && !headingInto(w.ball, c.team) {
		c.saves++
	}
	c.ballTouched = true
	w.lastTouch = c.id
}

func checkGoal(w *world) {
	y := w.ball.Position.Y
	var scorer int
	switch {
	case y > BackWallY+BallRadius:
		scorer = core.BlueTeam
		w.blueScore++
	case y < -(BackWallY + BallRadius):
		scorer = core.OrangeTeam
		w.orangeScore++
	default:
		return
	}
	if c := w.car(w.lastTouch); c != nil && c.team == scorer {
		c.goals++
	}
	w.ball = centerBall()
}
