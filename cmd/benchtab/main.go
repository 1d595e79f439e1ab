// Command benchtab prints the selected rows of a benchmark table.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	bench "github.com/fjl/benchfig"
)

func main() {
	var (
		actionsflag  = flag.String("actions", "", "comma-separated actions to select")
		latexflag    = flag.Bool("latex", false, "print a LaTeX tabular environment")
		numflag      = flag.Bool("num", false, "sort amounts numerically")
		byactionflag = flag.Bool("byaction", false, "break amount ties by action")

		actions []string
	)
	flag.Parse()

	for _, a := range strings.Split(*actionsflag, ",") {
		if a = strings.TrimSpace(a); a != "" {
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		log.Fatal("no actions selected, use -actions to select them")
	}
	if flag.NArg() != 1 {
		log.Fatal("usage: benchtab -actions A,B [-latex] [-num] [-byaction] <file.csv>")
	}
	fig := &bench.Figure{Name: bench.TableName(flag.Arg(0)), Actions: actions, ByAction: *byactionflag}
	if *numflag {
		fig.Order = bench.NumOrder
	}

	ms, err := bench.ReadMeasurementsFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	rows, err := fig.Rows(ms)
	if err != nil {
		log.Fatal(err)
	}
	write := bench.WriteText
	if *latexflag {
		write = bench.WriteLaTeX
	}
	if err := write(os.Stdout, rows); err != nil {
		log.Fatal(err)
	}
	if *latexflag {
		os.Stdout.WriteString("\n")
	}
}
