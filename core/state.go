package core

import "math"

const (
	BlueTeam   = 0
	OrangeTeam = 1

	NumBoostPads = 34
)

type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Norm() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalize returns the unit vector, or the zero vector for zero input
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

func (v Vec3) Slice() []float32 { return []float32{v.X, v.Y, v.Z} }

// PhysicsObject is the kinematic state of the ball or a car.
// EulerAngles is (pitch, yaw, roll).
type PhysicsObject struct {
	Position        Vec3 `json:"position"`
	LinearVelocity  Vec3 `json:"linear_velocity"`
	AngularVelocity Vec3 `json:"angular_velocity"`
	EulerAngles     Vec3 `json:"euler_angles"`
}

// Forward is the unit vector the object is facing
func (p PhysicsObject) Forward() Vec3 {
	pitch := float64(p.EulerAngles.X)
	yaw := float64(p.EulerAngles.Y)
	return Vec3{
		X: float32(math.Cos(pitch) * math.Cos(yaw)),
		Y: float32(math.Cos(pitch) * math.Sin(yaw)),
		Z: float32(math.Sin(pitch)),
	}
}

// Inverted mirrors the object through the field center, which is how the
// orange team sees the field from the blue perspective
func (p PhysicsObject) Inverted() PhysicsObject {
	yaw := p.EulerAngles.Y + math.Pi
	if yaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	return PhysicsObject{
		Position:        Vec3{-p.Position.X, -p.Position.Y, p.Position.Z},
		LinearVelocity:  Vec3{-p.LinearVelocity.X, -p.LinearVelocity.Y, p.LinearVelocity.Z},
		AngularVelocity: Vec3{-p.AngularVelocity.X, -p.AngularVelocity.Y, p.AngularVelocity.Z},
		EulerAngles:     Vec3{p.EulerAngles.X, yaw, p.EulerAngles.Z},
	}
}

type PlayerData struct {
	CarID           int           `json:"car_id"`
	TeamNum         int           `json:"team_num"`
	MatchGoals      int64         `json:"match_goals"`
	MatchSaves      int64         `json:"match_saves"`
	MatchShots      int64         `json:"match_shots"`
	MatchDemolishes int64         `json:"match_demolishes"`
	BoostPickups    int64         `json:"boost_pickups"`
	IsDemoed        bool          `json:"is_demoed"`
	OnGround        bool          `json:"on_ground"`
	BallTouched     bool          `json:"ball_touched"`
	HasJump         bool          `json:"has_jump"`
	HasFlip         bool          `json:"has_flip"`
	BoostAmount     float32       `json:"boost_amount"`
	CarData         PhysicsObject `json:"car_data"`
	InvertedCarData PhysicsObject `json:"inverted_car_data"`
}

// GameState is one snapshot of the match as produced by a Simulator.
// Players keep the same order for the whole episode.
type GameState struct {
	GameType          int                   `json:"game_type"`
	BlueScore         int                   `json:"blue_score"`
	OrangeScore       int                   `json:"orange_score"`
	LastTouch         int                   `json:"last_touch"`
	Players           []PlayerData          `json:"players"`
	Ball              PhysicsObject         `json:"ball"`
	InvertedBall      PhysicsObject         `json:"inverted_ball"`
	BoostPads         [NumBoostPads]float32 `json:"boost_pads"`
	InvertedBoostPads [NumBoostPads]float32 `json:"inverted_boost_pads"`
	TickNum           uint64                `json:"tick_num"`
}

// Copy returns a deep copy of the snapshot
func (s *GameState) Copy() *GameState {
	out := *s
	out.Players = make([]PlayerData, len(s.Players))
	copy(out.Players, s.Players)
	return &out
}

// Player returns the player with the given car id
func (s *GameState) Player(carID int) (*PlayerData, bool) {
	for i := range s.Players {
		if s.Players[i].CarID == carID {
			return &s.Players[i], true
		}
	}
	return nil, false
}

// ScoreDiff is the blue score minus the orange score
func (s *GameState) ScoreDiff() int {
	return s.BlueScore - s.OrangeScore
}
