package analysis

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/util"
)

type coverageDataset struct {
	Timesteps   []int
	UniqueCells []int
}

func (c *coverageDataset) Copy() *coverageDataset {
	return &coverageDataset{
		Timesteps:   util.CopyIntSlice(c.Timesteps),
		UniqueCells: util.CopyIntSlice(c.UniqueCells),
	}
}

func (c *coverageDataset) Header() []string {
	return []string{"Episode", "Timesteps", "UniqueCells"}
}

func (c *coverageDataset) Rows() [][]interface{} {
	rows := make([][]interface{}, len(c.Timesteps))
	for i := range c.Timesteps {
		rows[i] = []interface{}{i, c.Timesteps[i], c.UniqueCells[i]}
	}
	return rows
}

// CoverageAnalyzer counts the distinct grid cells the ball visited,
// cumulatively over the episodes of a run
type CoverageAnalyzer struct {
	cellSize float32
	cells    map[string]bool
	dataset  *coverageDataset
}

var _ core.Analyzer = &CoverageAnalyzer{}

func NewCoverageAnalyzer(cellSize float32) *CoverageAnalyzer {
	if cellSize <= 0 {
		cellSize = 512
	}
	return &CoverageAnalyzer{
		cellSize: cellSize,
		cells:    make(map[string]bool),
		dataset: &coverageDataset{
			Timesteps:   make([]int, 0),
			UniqueCells: make([]int, 0),
		},
	}
}

func (c *CoverageAnalyzer) Reset() {
	c.cells = make(map[string]bool)
	c.dataset = &coverageDataset{
		Timesteps:   make([]int, 0),
		UniqueCells: make([]int, 0),
	}
}

func (c *CoverageAnalyzer) cell(pos core.Vec3) string {
	bucket := func(v float32) int {
		return int(math.Floor(float64(v / c.cellSize)))
	}
	return util.JsonHash([3]int{bucket(pos.X), bucket(pos.Y), bucket(pos.Z)})
}

func (c *CoverageAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	for i := 0; i < trace.Len(); i++ {
		step := trace.Step(i)
		if step.NextState == nil {
			continue
		}
		c.cells[c.cell(step.NextState.Ball.Position)] = true
	}
	lastTimeStep := 0
	if len(c.dataset.Timesteps) > 0 {
		lastTimeStep = c.dataset.Timesteps[len(c.dataset.Timesteps)-1]
	}
	c.dataset.Timesteps = append(c.dataset.Timesteps, lastTimeStep+trace.Len())
	c.dataset.UniqueCells = append(c.dataset.UniqueCells, len(c.cells))
}

func (c *CoverageAnalyzer) DataSet() core.DataSet {
	return c.dataset.Copy()
}

type CoverageAnalyzerConstructor struct {
	CellSize float32
}

var _ core.AnalyzerConstructor = &CoverageAnalyzerConstructor{}

func NewCoverageAnalyzerConstructor(cellSize float32) *CoverageAnalyzerConstructor {
	return &CoverageAnalyzerConstructor{
		CellSize: cellSize,
	}
}

func (c *CoverageAnalyzerConstructor) NewAnalyzer(_ string, _ int) core.Analyzer {
	return NewCoverageAnalyzer(c.CellSize)
}
