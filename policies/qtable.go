package policies

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/util"
)

type QTable struct {
	table map[string]map[string]float64

	rand *erand.Rand
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
		rand:  erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (q *QTable) Seed(seed uint64) {
	q.rand.Seed(seed)
}

func (q *QTable) GetAll(state string) (map[string]float64, bool) {
	values, ok := q.table[state]
	return values, ok
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

// Max returns the best known action of state, def when state was never
// visited
func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for a, val := range q.table[state] {
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}

	if maxAction == "" {
		return "", def
	}
	return maxAction, maxVal
}

func (q *QTable) Exists(state string) bool {
	_, ok := q.table[state]
	return ok
}

func (q *QTable) Size() int {
	return len(q.table)
}

// MaxAmong picks the best of the given actions, breaking ties at random.
// Unknown entries are initialized to def.
func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	maxActions := make([]string, 0)
	maxVal := math.Inf(-1)
	for _, a := range actions {
		if _, ok := q.table[state][a]; !ok {
			q.table[state][a] = def
		}
		val := q.table[state][a]
		if val > maxVal {
			maxActions = maxActions[:0]
			maxVal = val
		}
		if val == maxVal {
			maxActions = append(maxActions, a)
		}
	}
	if len(maxActions) == 0 {
		return "", def
	}
	return maxActions[q.rand.Intn(len(maxActions))], maxVal
}

func (q *QTable) Read(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		in := struct {
			State   string             `json:"state"`
			Entries map[string]float64 `json:"entries"`
		}{}
		if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
			return fmt.Errorf("error reading file contents: %w", err)
		}
		q.table[in.State] = in.Entries
	}
	return scanner.Err()
}

// Record writes the table to path+".jsonl", one state per line
func (q *QTable) Record(path string) error {
	rows := make([]interface{}, 0, len(q.table))
	for _, state := range util.SortedKeys(q.table) {
		rows = append(rows, map[string]interface{}{
			"state":   state,
			"entries": q.table[state],
		})
	}
	return util.SaveJsonLines(path+".jsonl", rows)
}

// Abstraction maps an observation onto a finite state key. Only the
// features at Indices are kept (all of them when empty) and each is
// bucketed into cells of size Resolution.
type Abstraction struct {
	Indices    []int
	Resolution float32
}

func (a Abstraction) Key(obs []float32) string {
	res := a.Resolution
	if res <= 0 {
		res = 1
	}
	bucket := func(v float32) int {
		return int(math.Floor(float64(v / res)))
	}
	cells := make([]int, 0, len(obs))
	if len(a.Indices) == 0 {
		for _, v := range obs {
			cells = append(cells, bucket(v))
		}
	} else {
		for _, i := range a.Indices {
			if i < len(obs) {
				cells = append(cells, bucket(obs[i]))
			}
		}
	}
	return util.JsonHash(cells)
}

func actionKey(i int) string {
	return strconv.Itoa(i)
}

// lookupIndex reads the index of a single channel lookup action
func lookupIndex(action []float32) string {
	if len(action) == 0 {
		return actionKey(0)
	}
	return actionKey(int(math.Round(float64(action[0]))))
}

// tabular holds what the lookup table policies share: the state
// abstraction and the keys of the n available actions
type tabular struct {
	abstraction Abstraction
	actions     []string
	rand        *erand.Rand
}

func newTabular(abstraction Abstraction, numActions int) tabular {
	actions := make([]string, numActions)
	for i := range actions {
		actions[i] = actionKey(i)
	}
	return tabular{
		abstraction: abstraction,
		actions:     actions,
		rand:        erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

// Seed makes exploration reproducible
func (t *tabular) Seed(seed uint64) {
	t.rand.Seed(seed)
}

func (t *tabular) randomAction() []float32 {
	return []float32{float32(t.rand.Intn(len(t.actions)))}
}

func toAction(key string) []float32 {
	i, _ := strconv.Atoi(key)
	return []float32{float32(i)}
}

// forEachTransition calls f once per player with the state keys before
// and after the step
func (t *tabular) forEachTransition(obs [][]float32, actions [][]float32, result *core.StepResult, f func(state, action, next string, reward float64)) {
	for i := range obs {
		if i >= len(actions) || i >= len(result.Observations) || i >= len(result.Rewards) {
			return
		}
		f(
			t.abstraction.Key(obs[i]),
			lookupIndex(actions[i]),
			t.abstraction.Key(result.Observations[i]),
			float64(result.Rewards[i]),
		)
	}
}
