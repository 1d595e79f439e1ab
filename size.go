package bench

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
)

var lengthRE = regexp.MustCompile(`(?i)^([0-9]+(?:\.[0-9]+)?)(cm|mm|in|pt)?$`)

// ParseLength parses a figure dimension with cm, mm, in or pt unit.
// Plain numbers are centimeters.
func ParseLength(s string) (vg.Length, error) {
	m := lengthRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	if v == 0 {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	l := vg.Length(v)
	switch strings.ToLower(m[2]) {
	case "", "cm":
		l *= vg.Centimeter
	case "mm":
		l *= vg.Millimeter
	case "in":
		l *= vg.Inch
	case "pt":
		l *= vg.Points(1)
	}
	return l, nil
}
