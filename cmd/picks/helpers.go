package main

import (
	"log"

	"github.com/abelbrown/picks/internal/catalog"
	"github.com/abelbrown/picks/internal/config"
	"github.com/abelbrown/picks/internal/ratings"
	"github.com/abelbrown/picks/internal/store"
)

// loadConfig reads the config file or fatals.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// openDB opens the store at the given path (config default when empty) or fatals.
func openDB(path string) *store.Store {
	if path == "" {
		path = loadConfig().DBPath
	}
	st, err := store.Open(path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return st
}

// loadCatalog reads the full catalog table or fatals.
func loadCatalog(st *store.Store) *catalog.Table {
	items, err := st.Items()
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	return catalog.NewTable(items)
}

// loadRatings reads the full rating table or fatals.
func loadRatings(st *store.Store) *ratings.Table {
	rows, err := st.Ratings()
	if err != nil {
		log.Fatalf("failed to load ratings: %v", err)
	}
	return ratings.NewTable(rows)
}

// titleOf resolves an item id to its catalog title, or a placeholder.
func titleOf(t *catalog.Table, id int) string {
	if it, ok := t.Get(id); ok {
		return it.Title
	}
	return "(unknown)"
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
