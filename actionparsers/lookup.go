package actionparsers

import (
	"math"

	"github.com/zeu5/rlgym-go/core"
)

// LookupAction maps a single index per player into a table of useful
// control combinations: ground driving first, then aerial and flip
// controls.
type LookupAction struct {
	table [][]float32
}

var _ core.ActionParser = &LookupAction{}
var _ core.ActionShaper = &LookupAction{}

func NewLookupAction() *LookupAction {
	return &LookupAction{table: buildLookupTable()}
}

func buildLookupTable() [][]float32 {
	table := make([][]float32, 0, 90)
	tri := []float32{-1, 0, 1}
	bin := []float32{0, 1}

	for _, throttle := range tri {
		for _, steer := range tri {
			for _, boost := range bin {
				for _, handbrake := range bin {
					if boost == 1 && throttle != 1 {
						continue
					}
					t := throttle
					if boost == 1 {
						t = 1
					}
					table = append(table, []float32{t, steer, 0, steer, 0, 0, boost, handbrake})
				}
			}
		}
	}
	for _, pitch := range tri {
		for _, yaw := range tri {
			for _, roll := range tri {
				for _, jump := range bin {
					for _, boost := range bin {
						if jump == 1 && yaw != 0 {
							continue
						}
						if pitch == 0 && roll == 0 && jump == 0 {
							continue
						}
						var handbrake float32
						if jump == 1 && (pitch != 0 || yaw != 0 || roll != 0) {
							handbrake = 1
						}
						table = append(table, []float32{boost, yaw, pitch, yaw, roll, jump, boost, handbrake})
					}
				}
			}
		}
	}
	return table
}

// Len is the number of entries in the table
func (l *LookupAction) Len() int {
	return len(l.table)
}

func (l *LookupAction) ActionShape() []int {
	return []int{len(l.table)}
}

// ParseActions reads the first value of each raw action as a table index.
// An empty row or an index outside the table yields an empty parsed action,
// which the simulator rejects.
func (l *LookupAction) ParseActions(actions [][]float32, _ *core.GameState) [][]float32 {
	out := make([][]float32, len(actions))
	for i, raw := range actions {
		if len(raw) == 0 {
			out[i] = []float32{}
			continue
		}
		idx := int(math.Round(float64(raw[0])))
		if idx < 0 || idx >= len(l.table) {
			out[i] = []float32{}
			continue
		}
		out[i] = append([]float32(nil), l.table[idx]...)
	}
	return out
}

// IndexOf returns the index of the table entry equal to action, -1 when
// there is none
func (l *LookupAction) IndexOf(action []float32) int {
	for i, entry := range l.table {
		if len(entry) != len(action) {
			continue
		}
		match := true
		for j := range entry {
			if entry[j] != action[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
