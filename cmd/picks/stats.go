package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abelbrown/picks/internal/ranking"
	"github.com/abelbrown/picks/internal/ratings"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	fs.Parse(os.Args[1:])

	st := openDB(*db)
	defer st.Close()

	items, ratingRows, err := st.Counts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to count tables: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catalog rows:        %d\n", items)
	fmt.Printf("Rating rows:         %d\n", ratingRows)

	rtable := loadRatings(st)
	users := rtable.Users()
	fmt.Printf("Distinct users:      %d\n", len(users))
	fmt.Printf("Rated items:         %d\n", len(rtable.Items()))

	if items > 0 && len(users) > 0 {
		density := float64(ratingRows) / (float64(items) * float64(len(users)))
		fmt.Printf("Matrix density:      %.4f\n", density)
	}

	sums := ratings.Aggregate(rtable)
	if th, ok := ranking.ComputeThresholds(sums); ok {
		qualified := 0
		for _, s := range sums {
			if float64(s.V) >= th.M {
				qualified++
			}
		}
		fmt.Printf("\nGlobal mean C:       %.3f\n", th.C)
		fmt.Printf("Vote floor m (p90):  %.1f\n", th.M)
		fmt.Printf("Qualified items:     %d\n", qualified)
	}
}
