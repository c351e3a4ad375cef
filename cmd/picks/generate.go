package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/abelbrown/picks/internal/gen"
	"github.com/abelbrown/picks/internal/logging"
	"github.com/abelbrown/picks/internal/ratings"
)

func runGenerate() {
	cfg := loadConfig()

	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	seed := fs.Int64("seed", cfg.Generator.Seed, "Random seed (0 = from current time)")
	minPerItem := fs.Int("min", cfg.Generator.MinPerItem, "Minimum target ratings per item")
	maxPerItem := fs.Int("max", cfg.Generator.MaxPerItem, "Maximum target ratings per item")
	maxPerUser := fs.Int("max-per-user", cfg.Generator.MaxPerUser, "Rating quota per synthetic user")
	fs.Parse(os.Args[1:])

	st := openDB(*db)
	defer st.Close()

	table := loadCatalog(st)
	if table.Len() == 0 {
		fmt.Println("Catalog is empty; nothing to generate. Run 'picks import' first.")
		return
	}

	gcfg := gen.DefaultConfig()
	gcfg.MinPerItem = *minPerItem
	gcfg.MaxPerItem = *maxPerItem
	gcfg.MaxPerUser = *maxPerUser
	if len(cfg.Generator.Weights) > 0 {
		w, ok := gen.WeightsFromSlice(cfg.Generator.Weights)
		if !ok {
			logging.Warn("ignoring configured rating weights",
				"got", len(cfg.Generator.Weights),
				"want", len(gcfg.Weights))
			fmt.Fprintf(os.Stderr, "Warning: rating_weights needs %d entries, got %d; using defaults\n",
				len(gcfg.Weights), len(cfg.Generator.Weights))
		}
		gcfg.Weights = w
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	rows, err := gen.Generate(table.IDs(), gcfg, rng)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}

	if err := st.ReplaceRatings(rows); err != nil {
		log.Fatalf("failed to store ratings: %v", err)
	}

	users := ratings.NewTable(rows).Users()
	logging.Info("ratings generated",
		"items", table.Len(),
		"ratings", len(rows),
		"users", len(users),
		"seed", s)
	fmt.Printf("Generated %d ratings from %d users over %d items (seed %d)\n",
		len(rows), len(users), table.Len(), s)
}
