package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"graphcheck/internal/assertion"
	"graphcheck/internal/callgraph"
	"graphcheck/internal/catalog"
	"graphcheck/internal/config"
	"graphcheck/internal/query"
	"graphcheck/internal/storage"
	"graphcheck/internal/symbolindex"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "graphcheck",
		Short: "Validate call/value-graph and symbol-index artifacts",
	}
	configPath string
	indexPath  string
	reportPath string
	dbPath     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the graphcheck config file")
	rootCmd.PersistentFlags().StringVarP(&indexPath, "index", "i", "", "Path to the optional symbol-index document")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the local report history database (SQLite)")

	checkCmd.Flags().StringVarP(&reportPath, "report", "r", "", "Write the full report as JSON to this path")
	occurrencesCmd.Flags().StringVar(&occFile, "file", "", "Keep occurrences whose file path contains this substring")
	occurrencesCmd.Flags().BoolVar(&occDefinitions, "definitions", false, "Keep only definition occurrences")
	occurrencesCmd.Flags().BoolVar(&occReferences, "references", false, "Keep only reference occurrences")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(occurrencesCmd)
	rootCmd.AddCommand(checksCmd)
}

// loadConfig merges the optional config file with command-line flags.
// Flags win.
func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		cfg = &config.Config{}
	}
	if indexPath != "" {
		cfg.Documents.SymbolIndex = indexPath
	}
	if dbPath != "" {
		cfg.Output.DB = dbPath
	}
	if reportPath != "" {
		cfg.Output.Report = reportPath
	}
	return cfg
}

func roleSet(cfg *config.Config) symbolindex.RoleSet {
	if len(cfg.Roles) == 0 {
		return symbolindex.DefaultRoles()
	}
	return symbolindex.RoleSet(cfg.Roles)
}

var checkCmd = &cobra.Command{
	Use:   "check [graph.json]",
	Short: "Run the full integrity battery against a call-graph document",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		graphPath := cfg.Documents.CallGraph
		if len(args) > 0 {
			graphPath = args[0]
		}
		if graphPath == "" {
			log.Fatal("No call-graph document given (argument or documents.call_graph in config)")
		}

		store, err := callgraph.Load(graphPath)
		if err != nil {
			log.Fatalf("Failed to load call graph: %v", err)
		}
		fmt.Printf("📂 Loaded %s: %d values, %d calls (version %s)\n",
			graphPath, store.ValueCount(), store.CallCount(), store.Version())

		ix, err := symbolindex.LoadOptional(cfg.Documents.SymbolIndex, roleSet(cfg))
		if err != nil {
			log.Fatalf("Failed to load symbol index: %v", err)
		}
		if ix.Available() {
			idx, _ := ix.Require()
			fmt.Printf("📇 Symbol index: %d symbols, %d occurrences\n",
				len(idx.Symbols()), len(idx.Occurrences()))
		}

		report := assertion.NewDataIntegrity(store).
			Document(graphPath).
			AllChecks().
			Report()

		for _, check := range report.Checks {
			status := "✅"
			if check.Violated() {
				status = "❌"
			}
			name := check.Name
			if meta, ok := catalog.Lookup(check.Name); ok {
				name = meta.Name
			}
			fmt.Printf("  %s %-32s %d violation(s)\n", status, name, len(check.Violations))
			for _, v := range check.Violations {
				fmt.Printf("       %s: %s\n", v.EntityID, v.Message)
			}
		}

		if cfg.Output.Report != "" {
			if err := report.Save(cfg.Output.Report); err != nil {
				log.Fatalf("Failed to save report: %v", err)
			}
			fmt.Printf("💾 Report written to %s\n", cfg.Output.Report)
		}

		if cfg.Output.DB != "" {
			db, err := storage.NewSQLiteStore(cfg.Output.DB)
			if err != nil {
				log.Fatalf("Failed to open history database: %v", err)
			}
			defer db.Close()
			runID, err := db.SaveRun(context.Background(), report)
			if err != nil {
				log.Fatalf("Failed to archive run: %v", err)
			}
			fmt.Printf("🗃️  Archived as run %d in %s\n", runID, cfg.Output.DB)
		}

		if report.Failed() {
			fmt.Printf("❌ %d violation(s) across %d check(s)\n",
				report.Summary.ViolationCount, report.Summary.ViolatedChecks)
			os.Exit(1)
		}
		fmt.Println("🎉 All checks passed")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived integrity runs",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.Output.DB == "" {
			log.Fatal("No history database given (--db or output.db in config)")
		}

		db, err := storage.NewSQLiteStore(cfg.Output.DB)
		if err != nil {
			log.Fatalf("Failed to open history database: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background())
		if err != nil {
			log.Fatalf("Failed to list runs: %v", err)
		}
		if len(runs) == 0 {
			fmt.Println("No archived runs.")
			return
		}
		for _, r := range runs {
			fmt.Printf("#%d  %s  %s  checks=%d violated=%d violations=%d\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Document,
				r.CheckCount, r.ViolatedChecks, r.ViolationCount)
		}
	},
}

var (
	occFile        string
	occDefinitions bool
	occReferences  bool
)

var occurrencesCmd = &cobra.Command{
	Use:   "occurrences [pattern]",
	Short: "Query the symbol index for occurrences matching a glob pattern",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		ix, err := symbolindex.LoadOptional(cfg.Documents.SymbolIndex, roleSet(cfg))
		if err != nil {
			log.Fatalf("Failed to load symbol index: %v", err)
		}
		if !ix.Available() {
			fmt.Println("Symbol index not available, nothing to query.")
			return
		}

		q, err := query.Occurrences(ix)
		if err != nil {
			log.Fatalf("Failed to open occurrence query: %v", err)
		}
		if len(args) > 0 {
			q = q.SymbolMatches(args[0])
		}
		if occFile != "" {
			q = q.InFile(occFile)
		}
		if occDefinitions {
			q = q.IsDefinition()
		}
		if occReferences {
			q = q.IsReference()
		}

		idx, _ := ix.Require()
		for _, o := range q.All() {
			fmt.Printf("%s:%d  %s  %v\n", o.File, o.StartLine(), o.Symbol, idx.RoleNames(o))
		}
	},
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the registered validation cases",
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range catalog.IDs() {
			meta, _ := catalog.Lookup(id)
			flag := " "
			if meta.Experimental {
				flag = "*"
			}
			fmt.Printf("%s %-28s [%s] %s\n", flag, id, meta.Category, meta.Description)
		}
	},
}
