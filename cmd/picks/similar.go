package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/abelbrown/picks/internal/content"
)

func runSimilar() {
	cfg := loadConfig()

	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	n := fs.Int("n", cfg.TopN, "Number of items to return")
	fs.Parse(os.Args[1:])

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: picks similar [flags] <laptop-id>")
		os.Exit(1)
	}
	itemID, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: laptop id must be an integer, got %q\n", fs.Arg(0))
		os.Exit(1)
	}

	st := openDB(*db)
	defer st.Close()

	table := loadCatalog(st)
	engine := content.NewEngine(table)

	matches := engine.Similar(itemID, *n)
	if len(matches) == 0 {
		fmt.Printf("No similar items found for laptop %d (unknown id or single-item catalog).\n", itemID)
		return
	}

	fmt.Printf("Laptops similar to %q:\n", truncate(titleOf(table, itemID), 60))
	for i, m := range matches {
		fmt.Printf("%2d. [%.4f] %s\n", i+1, m.Similarity, truncate(titleOf(table, m.ItemID), 60))
	}
}
