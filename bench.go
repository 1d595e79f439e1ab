package bench

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aristanetworks/goarista/monotime"
)

// Measurement is one row of a benchmark result table.
type Measurement struct {
	Name   string  `json:"name"`   // "<action>/<amount>"
	Mean   float64 `json:"mean"`   // time or memory, unit fixed per table
	Stddev float64 `json:"stddev"` // standard deviation of Mean
}

// Row is a measurement whose name has been split into action and amount.
type Row struct {
	Name   string
	Action string
	Amount string
	Mean   float64
	Stddev float64
}

// MalformedRowError is returned by Split when a measurement name
// has no '/' separator.
type MalformedRowError struct {
	Index int // position of the row in the table
	Name  string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: malformed benchmark name %q (want <action>/<amount>)", e.Index, e.Name)
}

// EmptySelectionError is returned when a figure's actions match no rows.
type EmptySelectionError struct {
	Figure  string
	Actions []string
}

func (e *EmptySelectionError) Error() string {
	if e.Figure == "" {
		return fmt.Sprintf("no rows match actions %q", e.Actions)
	}
	return fmt.Sprintf("figure %s: no rows match actions %q", e.Figure, e.Actions)
}

// Split splits the name of each measurement on the first '/' into
// action and amount. It fails on the first name without a separator.
func Split(ms []Measurement) ([]Row, error) {
	rows := make([]Row, 0, len(ms))
	for i, m := range ms {
		action, amount, ok := strings.Cut(m.Name, "/")
		if !ok {
			return nil, &MalformedRowError{Index: i, Name: m.Name}
		}
		rows = append(rows, Row{
			Name:   m.Name,
			Action: action,
			Amount: amount,
			Mean:   m.Mean,
			Stddev: m.Stddev,
		})
	}
	return rows, nil
}

// SortOrder configures the ordering applied by Select.
type SortOrder struct {
	Numeric  bool // compare amounts as numbers instead of strings
	ByAction bool // break amount ties by action
}

// Select returns the rows whose action is one of actions, sorted by amount.
// The sort is stable, so rows with equal keys keep their relative order.
// An empty action list selects nothing. rows is not modified.
func Select(rows []Row, actions []string, order SortOrder) []Row {
	want := make(map[string]bool, len(actions))
	for _, a := range actions {
		want[a] = true
	}
	sel := make([]Row, 0, len(rows))
	for _, r := range rows {
		if want[r.Action] {
			sel = append(sel, r)
		}
	}
	cmp := compareAlpha
	if order.Numeric {
		cmp = compareNum
	}
	sort.SliceStable(sel, func(i, j int) bool {
		if c := cmp(sel[i].Amount, sel[j].Amount); c != 0 {
			return c < 0
		}
		if order.ByAction {
			return sel[i].Action < sel[j].Action
		}
		return false
	})
	return sel
}

// Actions returns the distinct actions of rows in order of first appearance.
func Actions(rows []Row) []string {
	var (
		seen = make(map[string]bool)
		out  []string
	)
	for _, r := range rows {
		if !seen[r.Action] {
			seen[r.Action] = true
			out = append(out, r.Action)
		}
	}
	return out
}

// Amounts returns the distinct amounts of rows in order of first appearance.
func Amounts(rows []Row) []string {
	var (
		seen = make(map[string]bool)
		out  []string
	)
	for _, r := range rows {
		if !seen[r.Amount] {
			seen[r.Amount] = true
			out = append(out, r.Amount)
		}
	}
	return out
}

func compareAlpha(a, b string) int {
	return strings.Compare(a, b)
}

// compareNum orders numbers before non-numbers and NaN after other numbers.
// Two non-numbers compare as strings.
func compareNum(a, b string) int {
	aa, erra := strconv.ParseFloat(a, 64)
	bb, errb := strconv.ParseFloat(b, 64)
	switch {
	case erra == nil && errb == nil:
		if aa < bb || (!math.IsNaN(aa) && math.IsNaN(bb)) {
			return -1
		}
		if aa > bb || (math.IsNaN(aa) && !math.IsNaN(bb)) {
			return 1
		}
		return 0
	case erra != nil && errb != nil:
		return strings.Compare(a, b)
	case erra == nil:
		return -1
	default:
		return 1
	}
}

func mononow() time.Duration {
	return time.Duration(monotime.Now())
}

// Since returns the monotonic time elapsed since start, which must be
// a value returned by Now.
func Since(start time.Duration) time.Duration {
	return mononow() - start
}

// Now returns the current monotonic clock reading.
func Now() time.Duration {
	return mononow()
}
