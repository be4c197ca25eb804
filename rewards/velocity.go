package rewards

import "github.com/zeu5/rlgym-go/core"

const (
	CarMaxSpeed  = 2300.0
	BallMaxSpeed = 6000.0
	BackNetY     = 6000.0
	GoalHeight   = 642.775
)

// VelocityPlayerToBallReward is the player's speed towards the ball,
// normalized by the maximum car speed
type VelocityPlayerToBallReward struct{}

var _ core.RewardFn = VelocityPlayerToBallReward{}

func (VelocityPlayerToBallReward) Reset(*core.GameState, *int) {}

func (VelocityPlayerToBallReward) PreStep(*core.GameState) {}

func (VelocityPlayerToBallReward) GetReward(player *core.PlayerData, state *core.GameState) float32 {
	dir := state.Ball.Position.Sub(player.CarData.Position).Normalize()
	return player.CarData.LinearVelocity.Dot(dir) / CarMaxSpeed
}

func (r VelocityPlayerToBallReward) GetFinalReward(player *core.PlayerData, state *core.GameState) float32 {
	return r.GetReward(player, state)
}

// VelocityBallToGoalReward is the ball's speed towards the goal the player
// attacks, normalized by the maximum ball speed. With OwnGoal set it uses
// the goal the player defends instead.
type VelocityBallToGoalReward struct {
	OwnGoal bool
}

var _ core.RewardFn = VelocityBallToGoalReward{}

func (VelocityBallToGoalReward) Reset(*core.GameState, *int) {}

func (VelocityBallToGoalReward) PreStep(*core.GameState) {}

func (r VelocityBallToGoalReward) GetReward(player *core.PlayerData, state *core.GameState) float32 {
	attacksPositive := player.TeamNum == core.BlueTeam
	if r.OwnGoal {
		attacksPositive = !attacksPositive
	}
	goal := core.Vec3{Y: BackNetY, Z: GoalHeight / 2}
	if !attacksPositive {
		goal.Y = -BackNetY
	}
	dir := goal.Sub(state.Ball.Position).Normalize()
	return state.Ball.LinearVelocity.Dot(dir) / BallMaxSpeed
}

func (r VelocityBallToGoalReward) GetFinalReward(player *core.PlayerData, state *core.GameState) float32 {
	return r.GetReward(player, state)
}
