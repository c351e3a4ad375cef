package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/picks/internal/correlation"
)

func runCorrelate() {
	fs := flag.NewFlagSet("correlate", flag.ExitOnError)
	db := fs.String("db", "", "Database path (default: config db_path)")
	out := fs.String("o", "", "Write matrix as CSV to this file instead of stdout")
	fs.Parse(os.Args[1:])

	st := openDB(*db)
	defer st.Close()

	table := loadCatalog(st)
	if table.Len() == 0 {
		fmt.Println("Catalog is empty; nothing to correlate.")
		return
	}

	m := correlation.Compute(table)

	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		if err := m.WriteCSV(f); err != nil {
			log.Fatalf("failed to write matrix: %v", err)
		}
		fmt.Printf("Correlation matrix written to %s\n", *out)
		return
	}

	fmt.Printf("%-16s", "")
	for _, name := range m.Names {
		fmt.Printf("%16s", name)
	}
	fmt.Println()
	for i, name := range m.Names {
		fmt.Printf("%-16s", name)
		for _, v := range m.Values[i] {
			fmt.Printf("%16.3f", v)
		}
		fmt.Println()
	}
}
