package analysis

import (
	"log"
	"path"
	"strconv"

	"github.com/zeu5/rlgym-go/core"
	"github.com/zeu5/rlgym-go/util"
)

// JSONComparator saves the datasets of one analysis, keyed by experiment
// name, to <savePath>/<run>/<name>.json. Failed experiments are skipped.
type JSONComparator struct {
	savePath string
}

var _ core.Comparator = &JSONComparator{}

func NewJSONComparator(savePath, name string) *JSONComparator {
	return &JSONComparator{
		savePath: path.Join(savePath, name+".json"),
	}
}

func (c *JSONComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]core.DataSet)
	for i, name := range experimentNames {
		if i >= len(datasets) || datasets[i] == nil {
			continue
		}
		out[name] = datasets[i]
	}

	if err := util.SaveJson(c.savePath, out); err != nil {
		log.Printf("saving %s: %s", c.savePath, err)
	}
}

type JSONComparatorConstructor struct {
	savePath string
	name     string
}

var _ core.ComparatorConstructor = &JSONComparatorConstructor{}

func NewJSONComparatorConstructor(savePath, name string) *JSONComparatorConstructor {
	return &JSONComparatorConstructor{
		savePath: savePath,
		name:     name,
	}
}

func (c *JSONComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewJSONComparator(path.Join(c.savePath, strconv.Itoa(run)), c.name)
}
