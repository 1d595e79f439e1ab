// Command benchfig renders the charts and tables of a benchmark report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	bench "github.com/fjl/benchfig"
	"gonum.org/v1/plot/vg"
	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		configflag  = flag.String("config", "", "report configuration file")
		dbflag      = flag.String("db", "", "load tables from this result store instead of CSV files")
		widthflag   = flag.String("width", "15cm", "width of charts")
		heightflag  = flag.String("height", "10cm", "height of charts")
		formatflag  = flag.String("format", "pdf", "chart file format (pdf, png, svg, eps)")
		workersflag = flag.Int("workers", runtime.NumCPU(), "number of figures rendered concurrently")

		r   renderer
		err error
	)
	flag.Parse()
	if *configflag == "" {
		log.Fatal("-config is required")
	}
	if r.width, err = bench.ParseLength(*widthflag); err != nil {
		log.Fatal("-width: ", err)
	}
	if r.height, err = bench.ParseLength(*heightflag); err != nil {
		log.Fatal("-height: ", err)
	}
	r.format = *formatflag
	if r.cfg, err = bench.ReadConfig(*configflag); err != nil {
		log.Fatal(err)
	}
	figs, err := selectFigures(r.cfg, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	load := bench.ReadMeasurementsFile
	if *dbflag != "" {
		store, oerr := bench.OpenStore(*dbflag)
		if oerr != nil {
			log.Fatal(oerr)
		}
		load = storeLoader(store)
		r.tables, err = loadTables(r.cfg, figs, load)
		store.Close()
	} else {
		r.tables, err = loadTables(r.cfg, figs, load)
	}
	if err != nil {
		log.Fatal(err)
	}
	if err := r.renderAll(context.Background(), figs, *workersflag); err != nil {
		log.Fatal(err)
	}
}

// storeLoader loads tables from the result store. Tables are stored
// under the base name of their CSV file.
func storeLoader(store *bench.Store) func(string) ([]bench.Measurement, error) {
	return func(file string) ([]bench.Measurement, error) {
		ms, err := store.Get(bench.TableName(file))
		if err != nil {
			return nil, fmt.Errorf("%s: %v", bench.TableName(file), err)
		}
		return ms, nil
	}
}

// selectFigures returns the figures named in args, or all figures of cfg.
func selectFigures(cfg *bench.Config, args []string) ([]*bench.Figure, error) {
	var figs []*bench.Figure
	if len(args) == 0 {
		for i := range cfg.Figures {
			figs = append(figs, &cfg.Figures[i])
		}
		return figs, nil
	}
	for _, name := range args {
		f, ok := cfg.Figure(name)
		if !ok {
			return nil, fmt.Errorf("unknown figure %q", name)
		}
		figs = append(figs, f)
	}
	return figs, nil
}

// loadTables loads every input table used by figs once.
func loadTables(cfg *bench.Config, figs []*bench.Figure, load func(string) ([]bench.Measurement, error)) (map[string][]bench.Measurement, error) {
	tables := make(map[string][]bench.Measurement)
	for _, f := range figs {
		input := cfg.InputOf(f)
		if _, ok := tables[input]; ok {
			continue
		}
		ms, err := load(input)
		if err != nil {
			return nil, err
		}
		tables[input] = ms
	}
	return tables, nil
}

type renderer struct {
	cfg           *bench.Config
	tables        map[string][]bench.Measurement
	width, height vg.Length
	format        string
}

// renderAll renders figs on n worker goroutines. The first error stops
// all workers.
func (r *renderer) renderAll(ctx context.Context, figs []*bench.Figure, n int) error {
	if n < 1 {
		n = 1
	}
	var (
		work     = make(chan *bench.Figure)
		eg, ectx = errgroup.WithContext(ctx)
	)
	eg.Go(func() error {
		defer close(work)
		for _, f := range figs {
			select {
			case work <- f:
			case <-ectx.Done():
				return nil
			}
		}
		return nil
	})
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			for f := range work {
				if err := r.render(f); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return eg.Wait()
}

// render writes the chart of f and, if requested, its LaTeX table.
// Nothing is written when the figure's rows can't be selected.
func (r *renderer) render(f *bench.Figure) error {
	start := bench.Now()
	rows, err := f.Rows(r.tables[r.cfg.InputOf(f)])
	if err != nil {
		return err
	}
	plt, err := newPlot(f, rows)
	if err != nil {
		return err
	}
	if err := mkdir(r.cfg.Images); err != nil {
		return err
	}
	out := filepath.Join(r.cfg.Images, f.Name+"."+r.format)
	if err := plt.Save(r.width, r.height, out); err != nil {
		return fmt.Errorf("figure %s: %v", f.Name, err)
	}
	if f.Table {
		if err := r.writeTable(f, rows); err != nil {
			return fmt.Errorf("figure %s: %v", f.Name, err)
		}
	}
	log.Printf("== rendered %s (%d rows) in %v", f.Name, len(rows), bench.Since(start))
	return nil
}

func (r *renderer) writeTable(f *bench.Figure, rows []bench.Row) error {
	if err := mkdir(r.cfg.Tables); err != nil {
		return err
	}
	fd, err := os.Create(filepath.Join(r.cfg.Tables, f.Name+".tex"))
	if err != nil {
		return err
	}
	if err := bench.WriteLaTeX(fd, rows); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func mkdir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
