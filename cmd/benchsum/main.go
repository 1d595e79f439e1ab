// Command benchsum summarizes raw benchmark samples (columns Name, Value)
// into a measurement table (columns Name, Mean, Stddev) on stdout.
package main

import (
	"flag"
	"log"
	"os"

	bench "github.com/fjl/benchfig"
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: benchsum <samples.csv>...")
	}
	var samples []bench.Sample
	for _, file := range flag.Args() {
		ss, err := bench.ReadSamplesFile(file)
		if err != nil {
			log.Fatal(err)
		}
		samples = append(samples, ss...)
	}
	if err := bench.WriteMeasurements(os.Stdout, bench.Summarize(samples)); err != nil {
		log.Fatal(err)
	}
}
