// Command picks is the laptop recommendation CLI.
//
// Usage:
//
//	picks                    Show help
//	picks import             Load cleaned catalog/rating CSVs into the database
//	picks generate           Synthesize a fresh rating table for the catalog
//	picks top                Bayesian-weighted popularity ranking
//	picks similar <id>       Items similar to a reference laptop (content-based)
//	picks foruser <id>       Personalized recommendations (collaborative)
//	picks correlate          Pearson correlation matrix of catalog features
//	picks export             Catalog joined with average ratings, as CSV
//	picks stats              Table statistics and ranking thresholds
package main

import (
	"fmt"
	"os"

	"github.com/abelbrown/picks/internal/logging"
)

const usage = `picks — laptop recommendation CLI

Usage:
  picks <command> [flags]

Commands:
  import      Load cleaned catalog and rating CSVs into the database
  generate    Synthesize a fresh rating table for the current catalog
  top         Rank the catalog by Bayesian-weighted popularity
  similar     Rank items by feature similarity to a reference laptop
  foruser     Rank unrated items for a user via collaborative filtering
  correlate   Pearson correlation matrix of catalog feature columns
  export      Write the catalog joined with average ratings as CSV
  stats       Table statistics and ranking thresholds

Run 'picks <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "picks: logging init: %v\n", err)
	}
	defer logging.Close()

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "import":
		runImport()
	case "generate":
		runGenerate()
	case "top":
		runTop()
	case "similar":
		runSimilar()
	case "foruser":
		runForUser()
	case "correlate":
		runCorrelate()
	case "export":
		runExport()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "picks: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
