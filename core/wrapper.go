package core

// PhysicsWrapper is the settable part of a PhysicsObject
type PhysicsWrapper struct {
	Position        Vec3
	LinearVelocity  Vec3
	AngularVelocity Vec3
	Rotation        Vec3 // pitch, yaw, roll
}

type CarWrapper struct {
	ID      int
	TeamNum int
	Boost   float32
	Physics PhysicsWrapper
}

// StateWrapper is a state to force onto a Simulator, usually produced by a
// StateSetter at the start of an episode
type StateWrapper struct {
	Ball PhysicsWrapper
	Cars []CarWrapper
}

func physicsToWrapper(p PhysicsObject) PhysicsWrapper {
	return PhysicsWrapper{
		Position:        p.Position,
		LinearVelocity:  p.LinearVelocity,
		AngularVelocity: p.AngularVelocity,
		Rotation:        p.EulerAngles,
	}
}

// NewStateWrapper lays out blueCount blue cars followed by orangeCount
// orange cars with ids starting at 1. When seed is non nil the ball and
// the cars that have a counterpart in seed (same position in the player
// list) start from the seed's physics and boost.
func NewStateWrapper(blueCount, orangeCount int, seed *GameState) *StateWrapper {
	w := &StateWrapper{
		Cars: make([]CarWrapper, 0, blueCount+orangeCount),
	}
	for i := 0; i < blueCount+orangeCount; i++ {
		team := BlueTeam
		if i >= blueCount {
			team = OrangeTeam
		}
		w.Cars = append(w.Cars, CarWrapper{
			ID:      i + 1,
			TeamNum: team,
		})
	}
	if seed == nil {
		return w
	}
	w.Ball = physicsToWrapper(seed.Ball)
	for i := range w.Cars {
		if i >= len(seed.Players) {
			break
		}
		p := seed.Players[i]
		if p.TeamNum != w.Cars[i].TeamNum {
			continue
		}
		w.Cars[i].Boost = p.BoostAmount
		w.Cars[i].Physics = physicsToWrapper(p.CarData)
	}
	return w
}

// BlueCars returns the indices of blue cars in Cars
func (w *StateWrapper) BlueCars() []int {
	return w.teamCars(BlueTeam)
}

// OrangeCars returns the indices of orange cars in Cars
func (w *StateWrapper) OrangeCars() []int {
	return w.teamCars(OrangeTeam)
}

func (w *StateWrapper) teamCars(team int) []int {
	out := make([]int, 0)
	for i, c := range w.Cars {
		if c.TeamNum == team {
			out = append(out, i)
		}
	}
	return out
}
