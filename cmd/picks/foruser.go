package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/abelbrown/picks/internal/collab"
	"github.com/abelbrown/picks/internal/ranking"
	"github.com/abelbrown/picks/internal/ratings"
)

func runForUser() {
	cfg := loadConfig()

	fs := flag.NewFlagSet("foruser", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	n := fs.Int("n", cfg.TopN, "Number of items to return")
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: picks foruser [flags] <user-id>")
		os.Exit(1)
	}
	userID, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: user id must be an integer, got %q\n", fs.Arg(0))
		os.Exit(1)
	}

	st := openDB(*db)
	defer st.Close()

	table := loadCatalog(st)
	rtable := loadRatings(st)

	preds := collab.NewEngine(rtable).Recommend(userID, *n)
	if len(preds) == 0 {
		// Cold start: no history to personalize on, fall back to popularity.
		fmt.Printf("No collaborative predictions for user %d; falling back to popularity.\n", userID)
		ranked := ranking.Top(ratings.Aggregate(rtable), *n)
		for i, r := range ranked {
			fmt.Printf("%2d. [%.3f] %s\n", i+1, r.Weighted, truncate(titleOf(table, r.ItemID), 60))
		}
		return
	}

	fmt.Printf("Recommendations for user %d:\n", userID)
	for i, p := range preds {
		fmt.Printf("%2d. [%.2f] %s\n", i+1, p.Score, truncate(titleOf(table, p.ItemID), 60))
	}
}
