package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/picks/internal/ratings"
	"github.com/abelbrown/picks/internal/store"
)

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	out := fs.String("o", "", "Output CSV file (default: stdout)")
	fs.Parse(os.Args[1:])

	st := openDB(*db)
	defer st.Close()

	table := loadCatalog(st)
	sums := ratings.Aggregate(loadRatings(st))
	rows := ratings.Augment(table.Items(), sums)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := store.ExportAugmentedCSV(w, rows); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	if *out != "" {
		fmt.Printf("Exported %d rows to %s\n", len(rows), *out)
	}
}
