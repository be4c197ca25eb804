package analysis

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/zeu5/rlgym-go/core"
)

type PrintDebugAnalyzer struct {
	// savePath is the path to save the trace
	savePath string
	exp      string
	// will save the trace to the file only after the episode number exceeds this threshold
	thresholdEpisode int
}

var _ core.Analyzer = &PrintDebugAnalyzer{}

func NewPrintDebugAnalyzer(savePath string, threshold int) *PrintDebugAnalyzer {
	// create a traces directory under save path if not exists
	ensureDir(path.Join(savePath, "traces"))
	return &PrintDebugAnalyzer{
		savePath:         path.Join(savePath, "traces"),
		thresholdEpisode: threshold,
	}
}

func (a *PrintDebugAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	if ctx.Episode < a.thresholdEpisode {
		return
	}
	fileName := fmt.Sprintf("%d_trace_%d.txt", ctx.Run, ctx.Episode)
	if a.exp != "" {
		fileName = fmt.Sprintf("%d_%s_trace_%d.txt", ctx.Run, a.exp, ctx.Episode)
	}
	file := path.Join(a.savePath, fileName)
	os.WriteFile(file, []byte(traceToString(trace)), 0644)
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.MkdirAll(dir, 0755)
	}
}

func traceToString(trace *core.Trace) string {
	buf := new(bytes.Buffer)
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		buf.WriteString(fmt.Sprintf("Step %d\n%s\n", i, stepToString(step)))
		buf.WriteString("\n")
	}
	return buf.String()
}

func stepToString(step *core.Step) string {
	return fmt.Sprintf(
		"State: \n%s\nActions: \n%s\nNext State: \n%s\nRewards: %v, Done: %v, Truncated: %v\nAdditional Info:\n%s",
		stateToString(step.State),
		actionsToString(step.Actions),
		stateToString(step.NextState),
		step.Rewards,
		step.Done,
		step.Truncated,
		addInfoToString(step.Misc),
	)
}

func addInfoToString(addInfo map[string]interface{}) string {
	keys := make([]string, 0, len(addInfo))
	for k := range addInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s: %v\n", k, addInfo[k])
	}
	return out
}

func vecToString(v core.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}

func stateToString(state *core.GameState) string {
	if state == nil {
		return "no state\n"
	}
	out := fmt.Sprintf("Tick: %d, Score: %d-%d\n", state.TickNum, state.BlueScore, state.OrangeScore)
	out += fmt.Sprintf("Ball: pos %s vel %s\n", vecToString(state.Ball.Position), vecToString(state.Ball.LinearVelocity))
	for _, p := range state.Players {
		team := "blue"
		if p.TeamNum == core.OrangeTeam {
			team = "orange"
		}
		out += fmt.Sprintf(
			"%d (%s): pos %s vel %s boost %.2f touched %v\n",
			p.CarID, team,
			vecToString(p.CarData.Position), vecToString(p.CarData.LinearVelocity),
			p.BoostAmount, p.BallTouched,
		)
	}
	return out
}

func actionsToString(actions [][]float32) string {
	lines := make([]string, len(actions))
	for i, a := range actions {
		lines[i] = fmt.Sprintf("%d: %v", i, a)
	}
	return strings.Join(lines, "\n") + "\n"
}

func (a *PrintDebugAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *PrintDebugAnalyzer) Reset() {
	// do nothing
}

type PrintDebugAnalyzerConstructor struct {
	SavePath         string
	ThresholdEpisode int
}

var _ core.AnalyzerConstructor = &PrintDebugAnalyzerConstructor{}

func NewPrintDebugAnalyzerConstructor(savePath string, thresholdEpisode int) *PrintDebugAnalyzerConstructor {
	return &PrintDebugAnalyzerConstructor{
		SavePath:         savePath,
		ThresholdEpisode: thresholdEpisode,
	}
}

func (c *PrintDebugAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	ensureDir(path.Join(c.SavePath, "traces"))
	return &PrintDebugAnalyzer{
		savePath:         path.Join(c.SavePath, "traces"),
		exp:              exp,
		thresholdEpisode: c.ThresholdEpisode,
	}
}
