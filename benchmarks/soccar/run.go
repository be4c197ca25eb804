package soccar

import (
	"fmt"
	"log"

	"github.com/zeu5/rlgym-go/actionparsers"
	"github.com/zeu5/rlgym-go/analysis"
	"github.com/zeu5/rlgym-go/benchmarks/common"
	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/obsbuilders"
	"github.com/zeu5/rlgym-go/policies"
)

// driveForward holds throttle and boost down
var driveForward = []float32{1, 0, 0, 0, 0, 0, 1, 0}

// abstraction keys table states on the planar ball position and the
// planar position of the player's car
func abstraction() policies.Abstraction {
	return policies.Abstraction{
		Indices:    []int{0, 1, obsbuilders.BallBlockSize, obsbuilders.BallBlockSize + 1},
		Resolution: 0.5,
	}
}

// ConstantAction is the raw action driving forward under the configured
// parser
func ConstantAction(space policies.ActionSpace) []float32 {
	switch space.Kind {
	case policies.DiscreteActions:
		action := make([]float32, len(driveForward))
		for i, v := range driveForward {
			if i < len(space.Shape) && space.Shape[i] > 2 {
				// bins map linearly onto [-1, 1]
				action[i] = (v + 1) * float32(space.Shape[i]/2)
			} else {
				action[i] = v
			}
		}
		return action
	case policies.LookupActions:
		return []float32{float32(actionparsers.NewLookupAction().IndexOf(driveForward))}
	}
	return append([]float32(nil), driveForward...)
}

// PrepareComparison builds the experiments and analyses of a soccar
// benchmark
func PrepareComparison(flags *common.Flags, config EnvironmentConfig) (*core.Comparison, error) {
	space, err := config.ActionSpace()
	if err != nil {
		return nil, err
	}
	env := NewEnvironmentConstructor(config)
	savePath := flags.ResultPath()

	cmp := core.NewComparison()
	cmp.AddAnalysis("Returns", analysis.NewReturnsAnalyzerConstructor(), analysis.NewExcelComparatorConstructor(savePath, "returns"))
	cmp.AddAnalysis("Results", analysis.NewResultAnalyzerConstructor(), analysis.NewJSONComparatorConstructor(savePath, "results"))
	cmp.AddAnalysis("Coverage", analysis.NewCoverageAnalyzerConstructor(512), analysis.NewJSONComparatorConstructor(savePath, "coverage"))
	cmp.AddAnalysis("Checks", analysis.NewTraceCheckAnalyzerConstructor(savePath,
		analysis.TraceCheck{Name: "own_goal", Check: analysis.OwnGoal},
	), analysis.NewJSONComparatorConstructor(savePath, "checks"))
	cmp.AddAnalysis("Errors", analysis.NewErrorAnalyzerConstructor(savePath), analysis.NewNoOpComparatorConstructor())
	if flags.Debug {
		cmp.AddAnalysis("Debug", analysis.NewPrintDebugAnalyzerConstructor(savePath, flags.Episodes-1), analysis.NewNoOpComparatorConstructor())
	}

	var seed *uint64
	if flags.Seed >= 0 {
		s := uint64(flags.Seed)
		seed = &s
	}
	cmp.AddExperiment(&core.Experiment{
		Name:        "Random",
		Environment: env,
		Policy:      &policies.RandomPolicyConstructor{Space: space, Seed: seed},
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "Constant",
		Environment: env,
		Policy:      &policies.ConstantPolicyConstructor{Action: ConstantAction(space)},
	})

	if space.Kind != policies.LookupActions {
		log.Printf("%s actions, skipping the tabular policies", config.Actions)
		return cmp, nil
	}
	numActions := space.Shape[0]
	qLearning := policies.NewQLearningPolicyConstructor(abstraction(), numActions, 0.1, 0.99, 0.1)
	qLearning.Seed = seed
	softMax := policies.NewSoftMaxPolicyConstructor(abstraction(), numActions, 0.1, 0.99, 1)
	softMax.Seed = seed
	ucbZero := policies.NewUCBZeroPolicyConstructor(policies.UCBZeroParams{
		StateSize:   stateCells(abstraction()),
		ActionsSize: numActions,
		Horizon:     flags.Horizon,
		Episodes:    flags.Episodes,
		Constant:    0.01,
		Epsilon:     0.05,
		Abstraction: abstraction(),
	})
	ucbZero.Seed = seed

	cmp.AddExperiment(&core.Experiment{
		Name:        "QLearning",
		Environment: env,
		Policy:      qLearning,
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "SoftMax",
		Environment: env,
		Policy:      softMax,
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "UCBZero",
		Environment: env,
		Policy:      ucbZero,
	})
	return cmp, nil
}

// stateCells bounds the number of states of an abstraction over features
// normalized to roughly [-2.5, 2.5]
func stateCells(a policies.Abstraction) int {
	perFeature := int(5/a.Resolution) + 1
	cells := 1
	for range a.Indices {
		cells *= perFeature
	}
	return cells
}

func (c EnvironmentConfig) String() string {
	return fmt.Sprintf("team size %d, opponents %v, %s actions, %s states, tick skip %d",
		c.GameConfig.TeamSize, c.GameConfig.SpawnOpponents, c.Actions, c.States, c.GameConfig.TickSkip)
}
