package arena

const (
	TickRate = 120.0
	TickDt   = 1 / TickRate

	SideWallX    = 4096.0
	BackWallY    = 5120.0
	CeilingZ     = 2044.0
	GoalHalfX    = 893.0
	GoalHeight   = 642.775
	BallRadius   = 92.75
	BallRestZ    = BallRadius
	CarRestZ     = 17.0
	GravityZ     = -650.0 // scaled by GameConfig.Gravity
	BallMaxSpeed = 6000.0
	BallBounce   = 0.6  // restitution on walls, floor and ceiling
	BallDrag     = 0.03 // fraction of speed lost per second

	ThrottleAccel   = 1600.0
	BoostAccel      = 991.666
	BrakeAccel      = 3500.0
	CoastDecel      = 525.0
	MaxDriveSpeed   = 1410.0
	MaxCarSpeed     = 2300.0
	TurnRate        = 2.5 // rad/s at full steer
	HandbrakeTurn   = 1.5 // turn rate multiplier
	AirRotateRate   = 5.5
	JumpImpulse     = 292.0 * 1.5
	FlipImpulse     = 500.0
	BoostDrain      = 0.333 // per second, scaled by GameConfig.BoostConsumption
	HitImpulseScale = 1.5

	// binary channels count as pressed above this value
	PressThreshold = 0.5
)
