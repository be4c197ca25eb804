package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/zeu5/rlgym-go/core"
)

type returnsDataset struct {
	Timesteps []int
	// Returns is the mean over players of the undiscounted episode return
	Returns []float64
	Mean    float64
	StdDev  float64
	Best    float64
}

func (r *returnsDataset) Copy() *returnsDataset {
	return &returnsDataset{
		Timesteps: append([]int(nil), r.Timesteps...),
		Returns:   append([]float64(nil), r.Returns...),
		Mean:      r.Mean,
		StdDev:    r.StdDev,
		Best:      r.Best,
	}
}

func (r *returnsDataset) Header() []string {
	return []string{"Episode", "Timesteps", "Return"}
}

func (r *returnsDataset) Rows() [][]interface{} {
	rows := make([][]interface{}, len(r.Returns))
	for i := range r.Returns {
		rows[i] = []interface{}{i, r.Timesteps[i], r.Returns[i]}
	}
	return rows
}

// ReturnsAnalyzer records the mean player return of every episode
type ReturnsAnalyzer struct {
	dataset *returnsDataset
}

var _ core.Analyzer = &ReturnsAnalyzer{}

func NewReturnsAnalyzer() *ReturnsAnalyzer {
	r := &ReturnsAnalyzer{}
	r.Reset()
	return r
}

func (r *ReturnsAnalyzer) Reset() {
	r.dataset = &returnsDataset{
		Timesteps: make([]int, 0),
		Returns:   make([]float64, 0),
	}
}

func (r *ReturnsAnalyzer) Analyze(_ *core.EpisodeContext, trace *core.Trace) {
	players := 0
	if last := trace.Last(); last != nil {
		players = len(last.Rewards)
	}
	episodeReturn := 0.0
	if players > 0 {
		returns := make([]float64, players)
		for i := range returns {
			returns[i] = trace.Return(i)
		}
		episodeReturn = stat.Mean(returns, nil)
	}

	lastTimeStep := 0
	if n := len(r.dataset.Timesteps); n > 0 {
		lastTimeStep = r.dataset.Timesteps[n-1]
	}
	r.dataset.Timesteps = append(r.dataset.Timesteps, lastTimeStep+trace.Len())
	r.dataset.Returns = append(r.dataset.Returns, episodeReturn)

	r.dataset.Mean, r.dataset.StdDev = stat.MeanStdDev(r.dataset.Returns, nil)
	if math.IsNaN(r.dataset.StdDev) {
		r.dataset.StdDev = 0
	}
	r.dataset.Best = floats.Max(r.dataset.Returns)
}

func (r *ReturnsAnalyzer) DataSet() core.DataSet {
	return r.dataset.Copy()
}

type ReturnsAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &ReturnsAnalyzerConstructor{}

func NewReturnsAnalyzerConstructor() *ReturnsAnalyzerConstructor {
	return &ReturnsAnalyzerConstructor{}
}

func (c *ReturnsAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewReturnsAnalyzer()
}
