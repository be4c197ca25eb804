package analysis

import (
	"fmt"
	"log"
	"os"
	"path"

	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/util"
)

// TraceCheck flags episodes worth a closer look, e.g. an own goal
type TraceCheck struct {
	Name  string
	Check func(*core.Trace) bool
}

type traceCheckDataset struct {
	// Hits counts the flagged episodes per check
	Hits map[string]int
	// FirstEpisode is the first flagged episode per check
	FirstEpisode map[string]int
}

func (d *traceCheckDataset) Copy() *traceCheckDataset {
	return &traceCheckDataset{
		Hits:         util.CopyStringIntMap(d.Hits),
		FirstEpisode: util.CopyStringIntMap(d.FirstEpisode),
	}
}

func (d *traceCheckDataset) Header() []string {
	return []string{"Check", "Hits", "FirstEpisode"}
}

func (d *traceCheckDataset) Rows() [][]interface{} {
	names := util.SortedKeys(d.Hits)
	rows := make([][]interface{}, 0, len(names))
	for _, name := range names {
		rows = append(rows, []interface{}{name, d.Hits[name], d.FirstEpisode[name]})
	}
	return rows
}

// TraceCheckAnalyzer runs named checks over every episode trace and
// saves the traces that match
type TraceCheckAnalyzer struct {
	checks   []TraceCheck
	savePath string
	exp      string

	dataset *traceCheckDataset
}

var _ core.Analyzer = &TraceCheckAnalyzer{}

func NewTraceCheckAnalyzer(savePath string, checks ...TraceCheck) *TraceCheckAnalyzer {
	ensureDir(path.Join(savePath, "checks"))
	a := &TraceCheckAnalyzer{
		checks:   checks,
		savePath: path.Join(savePath, "checks"),
	}
	a.Reset()
	return a
}

func (ta *TraceCheckAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	for _, check := range ta.checks {
		if !check.Check(trace) {
			continue
		}
		if _, ok := ta.dataset.FirstEpisode[check.Name]; !ok {
			ta.dataset.FirstEpisode[check.Name] = eCtx.Episode
		}
		ta.dataset.Hits[check.Name]++

		fileName := path.Join(ta.savePath, fmt.Sprintf("%d_%s_check_%d.txt", eCtx.Run, check.Name, eCtx.Episode))
		if ta.exp != "" {
			fileName = path.Join(ta.savePath, fmt.Sprintf("%d_%s_%s_check_%d.txt", eCtx.Run, ta.exp, check.Name, eCtx.Episode))
		}
		if err := os.WriteFile(fileName, []byte(traceToString(trace)), 0644); err != nil {
			log.Printf("trace check %s: %s", check.Name, err)
		}
	}
}

func (ta *TraceCheckAnalyzer) DataSet() core.DataSet {
	return ta.dataset.Copy()
}

func (ta *TraceCheckAnalyzer) Reset() {
	ta.dataset = &traceCheckDataset{
		Hits:         make(map[string]int),
		FirstEpisode: make(map[string]int),
	}
	for _, check := range ta.checks {
		ta.dataset.Hits[check.Name] = 0
	}
}

type TraceCheckAnalyzerConstructor struct {
	SavePath string
	Checks   []TraceCheck
}

var _ core.AnalyzerConstructor = &TraceCheckAnalyzerConstructor{}

func NewTraceCheckAnalyzerConstructor(savePath string, checks ...TraceCheck) *TraceCheckAnalyzerConstructor {
	return &TraceCheckAnalyzerConstructor{
		SavePath: savePath,
		Checks:   checks,
	}
}

func (e *TraceCheckAnalyzerConstructor) NewAnalyzer(exp string, _ int) core.Analyzer {
	a := NewTraceCheckAnalyzer(e.SavePath, e.Checks...)
	a.exp = exp
	return a
}

// OwnGoal is a check for episodes where a team conceded a goal scored
// off one of its own cars
func OwnGoal(trace *core.Trace) bool {
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		if step.State == nil || step.NextState == nil {
			continue
		}
		blueScored := step.NextState.BlueScore > step.State.BlueScore
		orangeScored := step.NextState.OrangeScore > step.State.OrangeScore
		for _, p := range step.NextState.Players {
			if !p.BallTouched {
				continue
			}
			if (blueScored && p.TeamNum == core.OrangeTeam) || (orangeScored && p.TeamNum == core.BlueTeam) {
				return true
			}
		}
	}
	return false
}

// NoTouch is a check for episodes in which nobody touched the ball
func NoTouch(trace *core.Trace) bool {
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		if step.NextState == nil {
			continue
		}
		for _, p := range step.NextState.Players {
			if p.BallTouched {
				return false
			}
		}
	}
	return true
}
