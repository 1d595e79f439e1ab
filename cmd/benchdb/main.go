// Command benchdb manages the result store used by benchfig -db.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	bench "github.com/fjl/benchfig"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "-db <dir> import <file.csv>...")
	fmt.Fprintln(os.Stderr, "      ", os.Args[0], "-db <dir> list")
	fmt.Fprintln(os.Stderr, "      ", os.Args[0], "-db <dir> dump <source>")
	fmt.Fprintln(os.Stderr, "      ", os.Args[0], "-db <dir> delete <source>")
	os.Exit(1)
}

func main() {
	dbflag := flag.String("db", "", "result store directory")
	flag.Usage = usage
	flag.Parse()
	if *dbflag == "" || flag.NArg() == 0 {
		usage()
	}

	store, err := bench.OpenStore(*dbflag)
	if err != nil {
		log.Fatal(err)
	}
	err = run(store, flag.Arg(0), flag.Args()[1:])
	store.Close()
	if err != nil {
		log.Fatal(err)
	}
}

func run(store *bench.Store, cmd string, args []string) error {
	switch cmd {
	case "import":
		for _, t := range bench.MustReadTables(args) {
			if _, err := bench.Split(t.Measurements); err != nil {
				return fmt.Errorf("%s: %v", t.Name, err)
			}
			if err := store.Put(t.Name, t.Measurements); err != nil {
				return err
			}
			log.Printf("imported %s (%d rows)", t.Name, len(t.Measurements))
		}
	case "list":
		sources, err := store.Sources()
		if err != nil {
			return err
		}
		for _, s := range sources {
			fmt.Println(s)
		}
	case "dump":
		if len(args) != 1 {
			usage()
		}
		ms, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("%s: %v", args[0], err)
		}
		return bench.WriteMeasurements(os.Stdout, ms)
	case "delete":
		if len(args) != 1 {
			usage()
		}
		if err := store.Delete(args[0]); err != nil {
			return fmt.Errorf("%s: %v", args[0], err)
		}
	default:
		usage()
	}
	return nil
}
