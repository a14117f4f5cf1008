package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/dkoval/ivorine/internal/engine"
	"github.com/dkoval/ivorine/internal/storage"
	"github.com/dkoval/ivorine/internal/uci"
)

var (
	hashMB     = flag.Int("hash", 0, "hash table size in MB (overrides the saved setting)")
	noStore    = flag.Bool("nostore", false, "disable persistent options and statistics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// CPU profiling via flag or environment variable
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	var store *storage.Store
	if !*noStore {
		var err error
		store, err = storage.OpenDefault()
		if err != nil {
			// The engine still works without persistence.
			log.Printf("Warning: storage unavailable: %v", err)
		} else {
			defer store.Close()
		}
	}

	opts := storage.DefaultOptions()
	if store != nil {
		saved, err := store.LoadOptions()
		if err != nil {
			log.Printf("Warning: saved options not loaded: %v", err)
		} else {
			opts = saved
		}
	}
	if *hashMB > 0 {
		opts.HashMB = *hashMB
	}

	eng := engine.New(opts.HashMB)
	uci.New(eng, store).Run(os.Stdin)
}
