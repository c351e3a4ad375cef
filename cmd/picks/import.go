package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/picks/internal/logging"
	"github.com/abelbrown/picks/internal/store"
)

func runImport() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	laptopsPath := fs.String("laptops", "", "Cleaned laptop catalog CSV")
	ratingsPath := fs.String("ratings", "", "Rating table CSV (optional)")
	fs.Parse(os.Args[1:])

	if *laptopsPath == "" && *ratingsPath == "" {
		fmt.Fprintln(os.Stderr, "error: at least one of -laptops or -ratings is required")
		os.Exit(1)
	}

	st := openDB(*db)
	defer st.Close()

	if *laptopsPath != "" {
		f, err := os.Open(*laptopsPath)
		if err != nil {
			log.Fatalf("failed to open catalog CSV: %v", err)
		}
		items, err := store.ImportCatalogCSV(f)
		f.Close()
		if err != nil {
			var schemaErr *store.SchemaError
			if errors.As(err, &schemaErr) {
				log.Fatalf("catalog CSV rejected: %v", schemaErr)
			}
			log.Fatalf("failed to read catalog CSV: %v", err)
		}

		n, err := st.SaveItems(items)
		if err != nil {
			log.Fatalf("failed to save catalog: %v", err)
		}
		logging.Info("catalog imported", "rows", len(items), "new", n)
		fmt.Printf("Catalog: %d rows read, %d new\n", len(items), n)
	}

	if *ratingsPath != "" {
		f, err := os.Open(*ratingsPath)
		if err != nil {
			log.Fatalf("failed to open ratings CSV: %v", err)
		}
		rows, err := store.ImportRatingsCSV(f)
		f.Close()
		if err != nil {
			var schemaErr *store.SchemaError
			if errors.As(err, &schemaErr) {
				log.Fatalf("ratings CSV rejected: %v", schemaErr)
			}
			log.Fatalf("failed to read ratings CSV: %v", err)
		}

		n, err := st.SaveRatings(rows)
		if err != nil {
			log.Fatalf("failed to save ratings: %v", err)
		}
		logging.Info("ratings imported", "rows", len(rows), "new", n)
		fmt.Printf("Ratings: %d rows read, %d new\n", len(rows), n)
	}
}
