package bench

import (
	"gonum.org/v1/gonum/stat"
)

// Summarize groups samples by name and computes the mean and sample
// standard deviation of each group. Groups are returned in order of
// first appearance. A group with a single sample has zero deviation.
func Summarize(samples []Sample) []Measurement {
	var (
		index  = make(map[string]int)
		names  []string
		values [][]float64
	)
	for _, s := range samples {
		i, ok := index[s.Name]
		if !ok {
			i = len(names)
			index[s.Name] = i
			names = append(names, s.Name)
			values = append(values, nil)
		}
		values[i] = append(values[i], s.Value)
	}
	ms := make([]Measurement, len(names))
	for i, name := range names {
		ms[i].Name = name
		if len(values[i]) == 1 {
			ms[i].Mean = values[i][0]
			continue
		}
		ms[i].Mean, ms[i].Stddev = stat.MeanStdDev(values[i], nil)
	}
	return ms
}
