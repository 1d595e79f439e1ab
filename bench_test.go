package bench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	rows, err := Split([]Measurement{
		{Name: "A/1000", Mean: 1.5, Stddev: 0.5},
		{Name: "Generate (Result, Map)/100", Mean: 2},
		{Name: "A/B/C", Mean: 3},
		{Name: "/10", Mean: 4},
	})
	assert.NoError(t, err)
	assert.Equal(t, []Row{
		{Name: "A/1000", Action: "A", Amount: "1000", Mean: 1.5, Stddev: 0.5},
		{Name: "Generate (Result, Map)/100", Action: "Generate (Result, Map)", Amount: "100", Mean: 2},
		{Name: "A/B/C", Action: "A", Amount: "B/C", Mean: 3},
		{Name: "/10", Action: "", Amount: "10", Mean: 4},
	}, rows)
}

func TestSplitMalformed(t *testing.T) {
	_, err := Split([]Measurement{
		{Name: "A/1"},
		{Name: "NoSeparator"},
		{Name: "B"},
	})
	var merr *MalformedRowError
	if !errors.As(err, &merr) {
		t.Fatalf("expected MalformedRowError, got %v", err)
	}
	assert.Equal(t, 1, merr.Index)
	assert.Equal(t, "NoSeparator", merr.Name)
}

func testRows(t *testing.T) []Row {
	rows, err := Split([]Measurement{
		{Name: "Sum/100", Mean: 0.01, Stddev: 0.001},
		{Name: "SumMap/100", Mean: 0.02, Stddev: 0.002},
		{Name: "Sum/1000", Mean: 0.05, Stddev: 0.003},
		{Name: "Other/20", Mean: 0.5, Stddev: 0.1},
		{Name: "SumMap/20", Mean: 0.001, Stddev: 0.0001},
	})
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestSelectEmptyActions(t *testing.T) {
	rows := testRows(t)
	assert.Empty(t, Select(rows, nil, SortOrder{}))
	assert.Empty(t, Select(rows, []string{}, SortOrder{ByAction: true}))
}

func TestSelectSingleAction(t *testing.T) {
	sel := Select(testRows(t), []string{"SumMap"}, SortOrder{})
	assert.Len(t, sel, 2)
	for _, r := range sel {
		assert.Equal(t, "SumMap", r.Action)
	}
}

func TestSelectExactMatch(t *testing.T) {
	// "Sum" must not match "SumMap".
	sel := Select(testRows(t), []string{"Sum"}, SortOrder{})
	assert.Equal(t, []string{"Sum/100", "Sum/1000"}, names(sel))
}

func TestSelectIdempotent(t *testing.T) {
	rows := testRows(t)
	for _, order := range []SortOrder{{}, {Numeric: true}, {ByAction: true}, {Numeric: true, ByAction: true}} {
		twice := Select(Select(rows, []string{"Sum", "SumMap"}, order), []string{"Sum"}, order)
		once := Select(rows, []string{"Sum"}, order)
		assert.Equal(t, once, twice, "order %+v", order)
	}
}

func TestSelectStable(t *testing.T) {
	rows := []Row{
		{Name: "B/20", Action: "B", Amount: "20", Mean: 1},
		{Name: "A/10", Action: "A", Amount: "10", Mean: 2},
		{Name: "A/20", Action: "A", Amount: "20", Mean: 3},
	}
	sel := Select(rows, []string{"A", "B"}, SortOrder{})
	assert.Equal(t, []string{"A/10", "B/20", "A/20"}, names(sel))

	sel = Select(rows, []string{"A", "B"}, SortOrder{ByAction: true})
	assert.Equal(t, []string{"A/10", "A/20", "B/20"}, names(sel))
}

func TestSelectDoesNotModifyInput(t *testing.T) {
	rows := testRows(t)
	orig := append([]Row(nil), rows...)
	Select(rows, []string{"Sum", "SumMap", "Other"}, SortOrder{Numeric: true, ByAction: true})
	assert.Equal(t, orig, rows)
}

func TestSelectEndToEnd(t *testing.T) {
	rows, err := Split([]Measurement{
		{Name: "Sum/100", Mean: 0.01, Stddev: 0.001},
		{Name: "SumMap/100", Mean: 0.02, Stddev: 0.002},
		{Name: "Sum/1000", Mean: 0.05, Stddev: 0.003},
	})
	assert.NoError(t, err)
	sel := Select(rows, []string{"Sum", "SumMap"}, SortOrder{})
	assert.Equal(t, []Row{
		{Name: "Sum/100", Action: "Sum", Amount: "100", Mean: 0.01, Stddev: 0.001},
		{Name: "SumMap/100", Action: "SumMap", Amount: "100", Mean: 0.02, Stddev: 0.002},
		{Name: "Sum/1000", Action: "Sum", Amount: "1000", Mean: 0.05, Stddev: 0.003},
	}, sel)
}

func TestSelectOrder(t *testing.T) {
	rows := testRows(t)
	actions := []string{"Sum", "SumMap", "Other"}

	// Amounts are strings by default, so "20" sorts after "1000".
	sel := Select(rows, actions, SortOrder{})
	assert.Equal(t, []string{"100", "100", "1000", "20", "20"}, amounts(sel))

	sel = Select(rows, actions, SortOrder{Numeric: true})
	assert.Equal(t, []string{"20", "20", "100", "100", "1000"}, amounts(sel))
	assert.Equal(t, []string{"Other/20", "SumMap/20"}, names(sel[:2]))

	sel = Select(rows, actions, SortOrder{Numeric: true, ByAction: true})
	assert.Equal(t, []string{"Other/20", "SumMap/20", "Sum/100", "SumMap/100", "Sum/1000"}, names(sel))
}

func TestCompareNum(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"1e3", "1000", 0},
		{"10", "x", -1},
		{"x", "10", 1},
		{"a", "b", -1},
		{"NaN", "1", 1},
	}
	for _, test := range tests {
		if got := compareNum(test.a, test.b); got != test.want {
			t.Errorf("compareNum(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestActionsAmounts(t *testing.T) {
	rows := testRows(t)
	assert.Equal(t, []string{"Sum", "SumMap", "Other"}, Actions(rows))
	assert.Equal(t, []string{"100", "1000", "20"}, Amounts(rows))
}

func names(rows []Row) []string {
	var n []string
	for _, r := range rows {
		n = append(n, r.Name)
	}
	return n
}

func amounts(rows []Row) []string {
	var a []string
	for _, r := range rows {
		a = append(a, r.Amount)
	}
	return a
}
