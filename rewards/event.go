package rewards

import "github.com/zeu5/rlgym-go/core"

// EventWeights weights the match events EventReward pays for
type EventWeights struct {
	Goal        float32 `yaml:"goal" json:"goal"`
	TeamGoal    float32 `yaml:"team_goal" json:"team_goal"`
	Concede     float32 `yaml:"concede" json:"concede"`
	Touch       float32 `yaml:"touch" json:"touch"`
	Shot        float32 `yaml:"shot" json:"shot"`
	Save        float32 `yaml:"save" json:"save"`
	Demo        float32 `yaml:"demo" json:"demo"`
	BoostPickup float32 `yaml:"boost_pickup" json:"boost_pickup"`
}

func (w EventWeights) slice() []float32 {
	return []float32{w.Goal, w.TeamGoal, w.Concede, w.Touch, w.Shot, w.Save, w.Demo, w.BoostPickup}
}

// EventReward pays the weighted increase of per player event counters
// since the previous call. Counters only ever add reward, decreases are
// ignored.
type EventReward struct {
	weights []float32
	last    map[int][]float32
}

var _ core.RewardFn = &EventReward{}

func NewEventReward(w EventWeights) *EventReward {
	return &EventReward{
		weights: w.slice(),
		last:    make(map[int][]float32),
	}
}

func eventValues(p *core.PlayerData, state *core.GameState) []float32 {
	team, opponent := state.BlueScore, state.OrangeScore
	if p.TeamNum == core.OrangeTeam {
		team, opponent = opponent, team
	}
	return []float32{
		float32(p.MatchGoals),
		float32(team),
		float32(opponent),
		flag(p.BallTouched),
		float32(p.MatchShots),
		float32(p.MatchSaves),
		float32(p.MatchDemolishes),
		p.BoostAmount,
	}
}

func flag(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func (r *EventReward) Reset(initial *core.GameState, _ *int) {
	r.last = make(map[int][]float32)
	for i := range initial.Players {
		p := &initial.Players[i]
		r.last[p.CarID] = eventValues(p, initial)
	}
}

func (r *EventReward) PreStep(*core.GameState) {}

func (r *EventReward) GetReward(player *core.PlayerData, state *core.GameState) float32 {
	current := eventValues(player, state)
	last, ok := r.last[player.CarID]
	r.last[player.CarID] = current
	if !ok {
		return 0
	}
	var reward float32
	for i, w := range r.weights {
		// touches are a per step flag, not a counter
		diff := current[i] - last[i]
		if i == 3 {
			diff = current[i]
		}
		if diff > 0 {
			reward += w * diff
		}
	}
	return reward
}

func (r *EventReward) GetFinalReward(player *core.PlayerData, state *core.GameState) float32 {
	return r.GetReward(player, state)
}
