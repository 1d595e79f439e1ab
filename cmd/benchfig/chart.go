package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strconv"

	bench "github.com/fjl/benchfig"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// barFill is the fraction of an amount's slot covered by its bars.
const barFill = 0.8

var errNothingToPlot = errors.New("no positive values to plot on log scale")

// newPlot creates the plot of a figure.
func newPlot(fig *bench.Figure, rows []bench.Row) (*plot.Plot, error) {
	plt := plot.New()
	plt.X.Label.Text = fig.XLabel
	plt.Y.Label.Text = fig.YLabel
	plt.Legend.Top = true
	plt.Legend.Left = true
	if fig.LegendTitle != "" {
		plt.Legend.Add(fig.LegendTitle)
	}
	var err error
	switch fig.Kind {
	case bench.LineFigure:
		err = addLines(plt, fig, rows)
	default:
		err = addBars(plt, fig, rows)
	}
	if err != nil {
		return nil, fmt.Errorf("figure %s: %v", fig.Name, err)
	}
	return plt, nil
}

// addBars adds a grouped bar chart with logarithmic Y axis.
func addBars(plt *plot.Plot, fig *bench.Figure, rows []bench.Row) error {
	bars, err := groupBars(fig, rows)
	if err != nil {
		return err
	}
	plt.Add(bars)
	for i, s := range bars.series {
		plt.Legend.Add(s.label, barThumb{color: s.color, line: bars.line})
		if len(s.skipped) > 0 {
			log.Printf("Warning: figure %s: action %q has non-positive means at %v", fig.Name, fig.Actions[i], s.skipped)
		}
	}
	plt.NominalX(bars.amounts...)
	plt.Y.Scale = plot.LogScale{}
	plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	return nil
}

// addLines adds one line per action with X = amount, Y = mean, both
// on logarithmic axes.
func addLines(plt *plot.Plot, fig *bench.Figure, rows []bench.Row) error {
	series := linePoints(fig, rows)
	added := 0
	for i, xys := range series {
		if len(xys) == 0 {
			log.Printf("Warning: figure %s: action %q has no plottable points", fig.Name, fig.Actions[i])
			continue
		}
		l, s, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(i)
		s.Color = plotutil.Color(i)
		s.Shape = plotutil.Shape(i)
		plt.Add(l, s)
		plt.Legend.Add(fig.Label(i), l, s)
		added++
	}
	if added == 0 {
		return errNothingToPlot
	}
	plt.X.Scale = plot.LogScale{}
	plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
	plt.Y.Scale = plot.LogScale{}
	plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	return nil
}

// linePoints returns the points of each action of fig, sorted by X.
// Rows that cannot be shown on log axes are dropped.
func linePoints(fig *bench.Figure, rows []bench.Row) []plotter.XYs {
	index := make(map[string]int, len(fig.Actions))
	for i, a := range fig.Actions {
		index[a] = i
	}
	series := make([]plotter.XYs, len(fig.Actions))
	for _, r := range rows {
		i, ok := index[r.Action]
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(r.Amount, 64)
		if err != nil || x <= 0 || r.Mean <= 0 {
			log.Printf("Warning: figure %s: skipping %s (amount %q, mean %v) on log axes", fig.Name, r.Name, r.Amount, r.Mean)
			continue
		}
		series[i] = append(series[i], plotter.XY{X: x, Y: r.Mean})
	}
	for _, xys := range series {
		xys := xys
		sort.SliceStable(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
	}
	return series
}

// groupedBars draws one group of bars per amount, with one bar per action.
// Bars start at base so they can be drawn on a logarithmic axis.
type groupedBars struct {
	amounts []string
	series  []barSeries
	base    float64
	max     float64
	line    draw.LineStyle
}

type barSeries struct {
	label   string
	color   color.Color
	values  []float64 // mean per amount, NaN if missing
	skipped []string  // amounts with non-positive means
}

// groupBars arranges the rows of fig into bar groups. Several rows with
// the same action and amount are averaged.
func groupBars(fig *bench.Figure, rows []bench.Row) (*groupedBars, error) {
	b := &groupedBars{
		amounts: bench.Amounts(rows),
		line:    draw.LineStyle{Color: color.Gray{Y: 96}, Width: vg.Points(0.5)},
	}
	slot := make(map[string]int, len(b.amounts))
	for j, a := range b.amounts {
		slot[a] = j
	}
	min := math.Inf(1)
	for i, action := range fig.Actions {
		var (
			sum   = make([]float64, len(b.amounts))
			count = make([]int, len(b.amounts))
		)
		for _, r := range rows {
			if r.Action == action {
				sum[slot[r.Amount]] += r.Mean
				count[slot[r.Amount]]++
			}
		}
		s := barSeries{
			label:  fig.Label(i),
			color:  plotutil.SoftColors[i%len(plotutil.SoftColors)],
			values: make([]float64, len(b.amounts)),
		}
		for j := range sum {
			s.values[j] = math.NaN()
			if count[j] == 0 {
				continue
			}
			v := sum[j] / float64(count[j])
			if v <= 0 {
				s.skipped = append(s.skipped, b.amounts[j])
				continue
			}
			s.values[j] = v
			min = math.Min(min, v)
			b.max = math.Max(b.max, v)
		}
		b.series = append(b.series, s)
	}
	if math.IsInf(min, 1) {
		return nil, errNothingToPlot
	}
	b.base = logFloor(min)
	return b, nil
}

// logFloor returns the largest power of ten below v.
func logFloor(v float64) float64 {
	f := math.Pow(10, math.Floor(math.Log10(v)))
	if f >= v {
		f /= 10
	}
	return f
}

// DataRange implements plot.DataRanger.
func (b *groupedBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -0.5, float64(len(b.amounts)) - 0.5, b.base, b.max
}

// Plot implements plot.Plotter.
func (b *groupedBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	var (
		n      = vg.Length(len(b.series))
		width  = (trX(1) - trX(0)) * barFill / n
		bottom = trY(b.base)
	)
	for i, s := range b.series {
		offset := (vg.Length(i) - (n-1)/2) * width
		for j, v := range s.values {
			if math.IsNaN(v) {
				continue
			}
			x := trX(float64(j)) + offset
			top := trY(v)
			pts := []vg.Point{
				{X: x - width/2, Y: bottom},
				{X: x - width/2, Y: top},
				{X: x + width/2, Y: top},
				{X: x + width/2, Y: bottom},
			}
			c.FillPolygon(s.color, c.ClipPolygonY(pts))
			outline := append(pts, pts[0])
			c.StrokeLines(b.line, c.ClipLinesY(outline)...)
		}
	}
}

// barThumb is the legend thumbnail of a bar series.
type barThumb struct {
	color color.Color
	line  draw.LineStyle
}

func (t barThumb) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(t.color, pts)
	c.StrokeLines(t.line, append(pts, pts[0]))
}
