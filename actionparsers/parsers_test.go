package actionparsers

import (
	"reflect"
	"testing"

	"github.com/zeu5/rlgym-go/core"
)

func TestContinuousAction(t *testing.T) {
	p := NewContinuousAction()
	raw := [][]float32{
		{2, -3, 0.5, -0.5, 0, 0.1, -0.1, 1},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	got := p.ParseActions(raw, &core.GameState{})
	want := [][]float32{
		{1, -1, 0.5, -0.5, 0, 1, 0, 1},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if raw[0][0] != 2 {
		t.Errorf("input mutated")
	}
	if !reflect.DeepEqual(p.ActionShape(), []int{8}) {
		t.Errorf("shape %v", p.ActionShape())
	}
}

func TestContinuousActionKeepsCardinality(t *testing.T) {
	p := NewContinuousAction()
	got := p.ParseActions([][]float32{{1, 1}, {}, make([]float32, 8)}, nil)
	if len(got) != 3 {
		t.Fatalf("got %d parsed actions, want 3", len(got))
	}
	if len(got[0]) != 2 || len(got[1]) != 0 {
		t.Errorf("malformed rows should pass through unchanged in length: %v", got)
	}
}

func TestDiscreteAction(t *testing.T) {
	p := NewDiscreteAction(3)
	got := p.ParseActions([][]float32{{0, 1, 2, 0, 2, 1, 0, 1}}, nil)
	want := [][]float32{{-1, 0, 1, -1, 1, 1, 0, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !reflect.DeepEqual(p.ActionShape(), []int{3, 3, 3, 3, 3, 2, 2, 2}) {
		t.Errorf("shape %v", p.ActionShape())
	}

	p = NewDiscreteAction(5)
	got = p.ParseActions([][]float32{{1, 3, 2, 4, 0, 0, 0, 0}}, nil)
	want = [][]float32{{-0.5, 0.5, 0, 1, -1, 0, 0, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscreteActionRejectsEvenBins(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic for even bins")
		}
	}()
	NewDiscreteAction(4)
}

func TestLookupAction(t *testing.T) {
	p := NewLookupAction()
	if p.Len() != 90 {
		t.Fatalf("got %d table entries, want 90", p.Len())
	}
	if !reflect.DeepEqual(p.ActionShape(), []int{90}) {
		t.Errorf("shape %v", p.ActionShape())
	}
	seen := make(map[[8]float32]bool)
	for i := 0; i < p.Len(); i++ {
		parsed := p.ParseActions([][]float32{{float32(i)}}, nil)[0]
		if len(parsed) != core.ActionSize {
			t.Fatalf("entry %d has length %d", i, len(parsed))
		}
		var key [8]float32
		copy(key[:], parsed)
		if seen[key] {
			t.Errorf("duplicate entry %v", parsed)
		}
		seen[key] = true
	}

	got := p.ParseActions([][]float32{{-1}, {90}, {}, {0}}, nil)
	if len(got) != 4 {
		t.Fatalf("got %d parsed actions, want 4", len(got))
	}
	for i := 0; i < 3; i++ {
		if len(got[i]) != 0 {
			t.Errorf("invalid index %d produced %v", i, got[i])
		}
	}
	// first entry is full reverse, steering left
	if !reflect.DeepEqual(got[3], []float32{-1, -1, 0, -1, 0, 0, 0, 0}) {
		t.Errorf("entry 0 is %v", got[3])
	}

	// parsed rows are copies
	got[3][0] = 5
	if p.ParseActions([][]float32{{0}}, nil)[0][0] != -1 {
		t.Errorf("table mutated through a parsed action")
	}
}

func TestLookupIndexOf(t *testing.T) {
	l := NewLookupAction()
	forward := []float32{1, 0, 0, 0, 0, 0, 1, 0}
	i := l.IndexOf(forward)
	if i < 0 {
		t.Fatalf("boosting forward is not in the table")
	}
	got := l.ParseActions([][]float32{{float32(i)}}, nil)
	for j := range forward {
		if got[0][j] != forward[j] {
			t.Fatalf("entry %d is %v, want %v", i, got[0], forward)
		}
	}
	if l.IndexOf([]float32{1}) != -1 {
		t.Errorf("short action matched an entry")
	}
}
