package bench

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadMeasurements(t *testing.T) {
	in := `name, Mean ,Extra,STDDEV
Sum/100,0.01,x,0.001
"Generate (Result, Map)/100",2e-3,y,0
`
	ms, err := ReadMeasurements(strings.NewReader(in))
	assert.NoError(t, err)
	assert.Equal(t, []Measurement{
		{Name: "Sum/100", Mean: 0.01, Stddev: 0.001},
		{Name: "Generate (Result, Map)/100", Mean: 0.002, Stddev: 0},
	}, ms)
}

func TestReadMeasurementsErrors(t *testing.T) {
	tests := []struct {
		in, err string
	}{
		{"", "empty table"},
		{"Name,Mean\nA/1,1\n", `missing column "stddev"`},
		{"Name,Mean,Stddev\nA/1,-1,0\n", "line 2: mean: value -1 out of range"},
		{"Name,Mean,Stddev\nA/1,1,0\nA/2,1,abc\n", `line 3: stddev: invalid number "abc"`},
		{"Name,Mean,Stddev\nA/1,NaN,0\n", "line 2: mean: value NaN out of range"},
	}
	for _, test := range tests {
		_, err := ReadMeasurements(strings.NewReader(test.in))
		if err == nil {
			t.Errorf("%q: expected error", test.in)
			continue
		}
		assert.Contains(t, err.Error(), test.err)
	}
}

func TestReadMeasurementsFile(t *testing.T) {
	ms, err := ReadMeasurementsFile("testdata/benchmarks.csv")
	assert.NoError(t, err)
	assert.Len(t, ms, 13)
	assert.Equal(t, "Generate (Result, Map)/100", ms[1].Name)
	assert.Equal(t, 3.4e-5, ms[1].Mean)
	assert.Equal(t, 1.1e-6, ms[1].Stddev)

	_, err = ReadMeasurementsFile("testdata/nonexistent.csv")
	assert.Error(t, err)
}

func TestReadSamples(t *testing.T) {
	ss, err := ReadSamples(strings.NewReader("Name,Value\nA/1,1\nA/1,3\n"))
	assert.NoError(t, err)
	assert.Equal(t, []Sample{{"A/1", 1}, {"A/1", 3}}, ss)

	_, err = ReadSamples(strings.NewReader("Name,Mean\nA/1,1\n"))
	assert.Error(t, err)
}

func TestWriteMeasurements(t *testing.T) {
	ms := []Measurement{
		{Name: "Generate (Result, Map)/100", Mean: 3.4e-5, Stddev: 1.1e-6},
		{Name: "Sum/1000", Mean: 0.05, Stddev: 0},
	}
	var buf bytes.Buffer
	assert.NoError(t, WriteMeasurements(&buf, ms))
	assert.Equal(t, "Name,Mean,Stddev\n\"Generate (Result, Map)/100\",3.4e-05,1.1e-06\nSum/1000,0.05,0\n", buf.String())

	back, err := ReadMeasurements(&buf)
	assert.NoError(t, err)
	assert.Equal(t, ms, back)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "benchmarks", TableName("data/benchmarks.csv"))
	assert.Equal(t, "run.1", TableName("/tmp/run.1.csv"))
}
