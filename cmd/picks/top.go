package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abelbrown/picks/internal/ranking"
	"github.com/abelbrown/picks/internal/ratings"
)

func runTop() {
	cfg := loadConfig()

	fs := flag.NewFlagSet("top", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	n := fs.Int("n", cfg.TopN, "Number of items to return")
	fs.Parse(os.Args[1:])

	st := openDB(*db)
	defer st.Close()

	table := loadCatalog(st)
	sums := ratings.Aggregate(loadRatings(st))

	ranked := ranking.Top(sums, *n)
	if len(ranked) == 0 {
		fmt.Println("No qualified items. Generate or import ratings first.")
		return
	}

	th, _ := ranking.ComputeThresholds(sums)
	fmt.Printf("Top %d by weighted rating (C=%.3f, m=%.1f):\n", len(ranked), th.C, th.M)
	for i, r := range ranked {
		fmt.Printf("%2d. [%.3f] %-50s (R=%.2f, v=%d)\n",
			i+1, r.Weighted, truncate(titleOf(table, r.ItemID), 50), r.R, r.V)
	}
}
