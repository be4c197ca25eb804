package analysis

import (
	"github.com/zeu5/rlgym-go/core"
)

type resultDataset struct {
	Wins   int
	Losses int
	Draws  int
	// Results holds the blue score differential of each episode
	Results []int
}

func (r *resultDataset) Copy() *resultDataset {
	out := *r
	out.Results = append([]int(nil), r.Results...)
	return &out
}

func (r *resultDataset) Header() []string {
	return []string{"Episode", "Result"}
}

func (r *resultDataset) Rows() [][]interface{} {
	rows := make([][]interface{}, len(r.Results))
	for i, res := range r.Results {
		rows[i] = []interface{}{i, res}
	}
	return rows
}

// ResultAnalyzer counts episode outcomes from blue's point of view, read
// off the result the gym reports with every step
type ResultAnalyzer struct {
	dataset *resultDataset
}

var _ core.Analyzer = &ResultAnalyzer{}

func NewResultAnalyzer() *ResultAnalyzer {
	r := &ResultAnalyzer{}
	r.Reset()
	return r
}

func (r *ResultAnalyzer) Reset() {
	r.dataset = &resultDataset{Results: make([]int, 0)}
}

func (r *ResultAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	if eCtx.IsError() {
		return
	}
	result := 0
	if last := trace.Last(); last != nil {
		if v, ok := last.Misc[core.InfoResult].(float32); ok {
			result = int(v)
		}
	}
	switch {
	case result > 0:
		r.dataset.Wins++
	case result < 0:
		r.dataset.Losses++
	default:
		r.dataset.Draws++
	}
	r.dataset.Results = append(r.dataset.Results, result)
}

func (r *ResultAnalyzer) DataSet() core.DataSet {
	return r.dataset.Copy()
}

type ResultAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &ResultAnalyzerConstructor{}

func NewResultAnalyzerConstructor() *ResultAnalyzerConstructor {
	return &ResultAnalyzerConstructor{}
}

func (c *ResultAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewResultAnalyzer()
}
