package analysis

import (
	"fmt"
	"log"
	"path"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zeu5/rlgym-go/core"
)

// Table is implemented by datasets that can be laid out as a sheet
type Table interface {
	Header() []string
	Rows() [][]interface{}
}

// ExcelComparator writes one sheet per experiment to
// <savePath>/<run>/<name>.xlsx. Datasets that are not a Table, and failed
// experiments, are left out.
type ExcelComparator struct {
	filename string
}

var _ core.Comparator = &ExcelComparator{}

func NewExcelComparator(savePath, name string) *ExcelComparator {
	return &ExcelComparator{
		filename: path.Join(savePath, name+".xlsx"),
	}
}

const maxSheetName = 31

// sheetNames maps experiment names onto distinct sheet names. Names are
// trimmed to the 31 characters a sheet name may hold and characters excel
// rejects are replaced. Sheet names compare case insensitively, so
// collisions get a numeric suffix.
func sheetNames(names []string) []string {
	used := make(map[string]bool)
	out := make([]string, len(names))
	for i, name := range names {
		base := strings.Map(func(r rune) rune {
			if strings.ContainsRune(`:\/?*[]`, r) {
				return '_'
			}
			return r
		}, name)
		if base == "" {
			base = "experiment"
		}
		sheet := trim(base, maxSheetName)
		for n := 1; used[strings.ToLower(sheet)]; n++ {
			suffix := fmt.Sprintf("_%d", n)
			sheet = trim(base, maxSheetName-len(suffix)) + suffix
		}
		used[strings.ToLower(sheet)] = true
		out[i] = sheet
	}
	return out
}

func trim(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func (c *ExcelComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	if err := c.write(experimentNames, datasets); err != nil {
		log.Printf("saving %s: %s", c.filename, err)
	}
}

func (c *ExcelComparator) write(experimentNames []string, datasets []core.DataSet) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("closing %s: %s", c.filename, err)
		}
	}()

	sheets := 0
	keepDefault := false
	names := sheetNames(experimentNames)
	for i := range experimentNames {
		if i >= len(datasets) {
			break
		}
		table, ok := datasets[i].(Table)
		if !ok {
			continue
		}
		sheet := names[i]
		if strings.EqualFold(sheet, "Sheet1") {
			keepDefault = true
		}
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet, err)
		}
		header := table.Header()
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for j, row := range table.Rows() {
			row := row
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", j+2), &row); err != nil {
				return err
			}
		}
		sheets++
	}
	if sheets == 0 {
		return nil
	}
	if !keepDefault {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	ensureDir(path.Dir(c.filename))
	return f.SaveAs(c.filename)
}

type ExcelComparatorConstructor struct {
	savePath string
	name     string
}

var _ core.ComparatorConstructor = &ExcelComparatorConstructor{}

func NewExcelComparatorConstructor(savePath, name string) *ExcelComparatorConstructor {
	return &ExcelComparatorConstructor{
		savePath: savePath,
		name:     name,
	}
}

func (c *ExcelComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewExcelComparator(path.Join(c.savePath, strconv.Itoa(run)), c.name)
}
