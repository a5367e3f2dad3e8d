package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dvloznov/wealthmind/internal/advisor"
	"github.com/dvloznov/wealthmind/internal/budget"
	"github.com/dvloznov/wealthmind/internal/category"
	"github.com/dvloznov/wealthmind/internal/config"
	"github.com/dvloznov/wealthmind/internal/currency"
	"github.com/dvloznov/wealthmind/internal/extract"
	infraBQ "github.com/dvloznov/wealthmind/internal/infra/bigquery"
	"github.com/dvloznov/wealthmind/internal/ledger"
	"github.com/dvloznov/wealthmind/internal/logger"
	"github.com/dvloznov/wealthmind/internal/notionsync"
	"github.com/dvloznov/wealthmind/internal/review"
	"github.com/dvloznov/wealthmind/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	switch os.Args[1] {
	case "add":
		runAdd(log, cfg)
	case "list":
		runList(log, cfg)
	case "delete":
		runDelete(log, cfg)
	case "import":
		runImport(log, cfg)
	case "report":
		runReport(log, cfg)
	case "advice":
		runAdvice(log, cfg)
	case "export":
		runExport(log, cfg)
	case "sync-notion":
		runSyncNotion(log, cfg)
	case "backup":
		runBackup(log, cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("WealthMind CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  add          Add a transaction to the ledger")
	fmt.Println("  list         List transactions with search, filter and sort")
	fmt.Println("  delete       Delete a transaction by ID")
	fmt.Println("  import       Extract transactions from pasted text and review them")
	fmt.Println("  report       Show spending summary and budget status")
	fmt.Println("  advice       Get AI financial advice for the current ledger")
	fmt.Println("  export       Export the ledger to BigQuery")
	fmt.Println("  sync-notion  Sync the ledger to a Notion database")
	fmt.Println("  backup       Back up the data file to Google Cloud Storage")
	fmt.Println("  help         Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func loadSnapshot(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*store.FileStore, *store.Snapshot) {
	fs := store.NewFileStore(cfg.App.DataFile)
	snap, err := fs.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("data_file", cfg.App.DataFile).Msg("Failed to load data file")
	}
	return fs, snap
}

func saveSnapshot(ctx context.Context, log zerolog.Logger, fs *store.FileStore, snap *store.Snapshot) {
	if err := fs.Save(ctx, snap); err != nil {
		log.Fatal().Err(err).Msg("Failed to save data file")
	}
}

func runAdd(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	date := fs.String("date", "", "Transaction date (YYYY-MM-DD, defaults to today)")
	amount := fs.Float64("amount", 0, "Amount (positive)")
	txType := fs.String("type", "expense", "Transaction type: income or expense")
	cat := fs.String("category", "", "Category (defaults per type)")
	desc := fs.String("description", "", "Description")
	fs.Parse(os.Args[2:])

	if *amount <= 0 {
		log.Fatal().Msg("Error: --amount must be positive")
	}
	if *desc == "" {
		log.Fatal().Msg("Error: --description is required")
	}

	t := ledger.TransactionType(*txType)
	if t != ledger.TypeIncome && t != ledger.TypeExpense {
		log.Fatal().Msg("Error: --type must be income or expense")
	}

	tx := ledger.Transaction{
		ID:          ledger.NewID(),
		Date:        *date,
		Amount:      *amount,
		Type:        t,
		Category:    *cat,
		Description: *desc,
	}
	if tx.Date == "" {
		tx.Date = ledger.Today()
	}
	if !category.IsValid(tx.Type, tx.Category) {
		tx.Category = category.DefaultFor(tx.Type)
	}

	ctx := logger.WithContext(context.Background(), log)
	fileStore, snap := loadSnapshot(ctx, log, cfg)
	snap.Transactions = ledger.Prepend(snap.Transactions, []ledger.Transaction{tx})
	saveSnapshot(ctx, log, fileStore, snap)

	fmt.Printf("Added %s: %s %.2f (%s) id=%s\n", tx.Type, tx.Description, tx.Amount, tx.Category, tx.ID)
}

func runList(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "Search term for description or category")
	filter := fs.String("filter", "", "Filter: All, Income, Expense or a category name")
	sortOrder := fs.String("sort", "", "Sort: newest, oldest, highest, lowest")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	_, snap := loadSnapshot(ctx, log, cfg)

	q := ledger.Query{Search: *search, Filter: *filter, Sort: *sortOrder}
	result := q.Apply(snap.Transactions)

	symbol := currency.Currencies[snap.Settings.Currency].Symbol
	fmt.Printf("%d transaction(s)\n\n", len(result))
	for _, tx := range result {
		sign := "-"
		if tx.Type == ledger.TypeIncome {
			sign = "+"
		}
		fmt.Printf("%s  %s%s%.2f  %-16s %s\n    id=%s\n", tx.Date, sign, symbol, tx.Amount, tx.Category, tx.Description, tx.ID)
	}
}

func runDelete(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "Transaction ID to delete")
	fs.Parse(os.Args[2:])

	if *id == "" {
		log.Fatal().Msg("Error: --id is required")
	}

	ctx := logger.WithContext(context.Background(), log)
	fileStore, snap := loadSnapshot(ctx, log, cfg)

	before := len(snap.Transactions)
	snap.Transactions = ledger.Delete(snap.Transactions, *id)
	if len(snap.Transactions) == before {
		log.Fatal().Str("transaction_id", *id).Msg("Transaction not found")
	}

	saveSnapshot(ctx, log, fileStore, snap)
	fmt.Printf("Deleted transaction %s\n", *id)
}

// runImport reads text from a file or stdin, extracts candidates with the
// model, then walks through an interactive review before committing.
func runImport(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Text file to import (defaults to stdin)")
	yes := fs.Bool("yes", false, "Commit all extracted candidates without review")
	fs.Parse(os.Args[2:])

	var raw []byte
	var err error
	if *file != "" {
		raw, err = os.ReadFile(*file)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input text")
	}
	if strings.TrimSpace(string(raw)) == "" {
		log.Fatal().Msg("Error: no input text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	extractor := extract.New(extract.NewGeminiGenerator(cfg.AI.Model))
	candidates, err := extractor.Extract(ctx, string(raw))
	if err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}
	if len(candidates) == 0 {
		fmt.Println("No transactions found in the input text.")
		return
	}

	var buf review.Buffer
	buf.Load(candidates)

	fmt.Printf("Extracted %d candidate(s):\n\n", buf.Len())
	printCandidates(&buf)

	if !*yes {
		reviewLoop(&buf)
		if buf.Len() == 0 {
			fmt.Println("Nothing to commit.")
			return
		}
	}

	fileStore, snap := loadSnapshot(ctx, log, cfg)
	committed := buf.Len()
	snap.Transactions = review.Commit(&buf, snap.Transactions)
	saveSnapshot(ctx, log, fileStore, snap)

	fmt.Printf("Committed %d transaction(s).\n", committed)
}

func printCandidates(buf *review.Buffer) {
	for i, c := range buf.Items() {
		date, amount, txType, cat, desc := "(today)", "0.00", "expense", "(default)", "Imported Transaction"
		if c.Date != nil {
			date = *c.Date
		}
		if c.Amount != nil {
			amount = fmt.Sprintf("%.2f", *c.Amount)
		}
		if c.Type != nil {
			txType = string(*c.Type)
		}
		if c.Category != nil {
			cat = *c.Category
		}
		if c.Description != nil {
			desc = *c.Description
		}
		fmt.Printf("%d. %s  %s  %-8s %-16s %s\n", i+1, date, amount, txType, cat, desc)
	}
}

// reviewLoop is a minimal line-based editor over the candidate buffer.
func reviewLoop(buf *review.Buffer) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("\nReview: 'ok' commits, 'drop N' removes, 'set N field value' edits, 'quit' aborts.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "ok":
			return
		case line == "quit":
			buf.Clear()
			return
		case strings.HasPrefix(line, "drop "):
			var n int
			if _, err := fmt.Sscanf(line, "drop %d", &n); err == nil {
				buf.Remove(n - 1)
				printCandidates(buf)
			}
		case strings.HasPrefix(line, "set "):
			parts := strings.SplitN(line, " ", 4)
			if len(parts) != 4 {
				fmt.Println("Usage: set N field value")
				continue
			}
			var n int
			if _, err := fmt.Sscanf(parts[1], "%d", &n); err != nil {
				fmt.Println("Usage: set N field value")
				continue
			}
			field, value := parts[2], parts[3]
			if field == review.FieldAmount {
				var amt float64
				if _, err := fmt.Sscanf(value, "%g", &amt); err != nil {
					fmt.Println("Amount must be a number")
					continue
				}
				buf.UpdateField(n-1, field, amt)
			} else {
				buf.UpdateField(n-1, field, value)
			}
			printCandidates(buf)
		default:
			fmt.Println("Commands: ok, drop N, set N field value, quit")
		}
	}
}

func runReport(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	remote := fs.Bool("remote", false, "Include category totals from the exported BigQuery table")
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)
	_, snap := loadSnapshot(ctx, log, cfg)

	code := snap.Settings.Currency
	today := ledger.SummarizeToday(snap.Transactions)

	fmt.Println("=== Today ===")
	fmt.Printf("Income:   %s\n", currency.FormatCompact(today.Income, code))
	fmt.Printf("Expenses: %s\n", currency.FormatCompact(today.Expense, code))

	fmt.Println("\n=== Budgets (this month) ===")
	for _, st := range budget.Evaluate(snap.Budgets, snap.Transactions) {
		marker := " "
		if st.Exceeded {
			marker = "!"
		} else if st.Approaching {
			marker = "~"
		}
		fmt.Printf("%s %-16s %s / %s (%.0f%%)\n", marker, st.Category,
			currency.FormatCompact(st.Spent, code), currency.FormatCompact(st.Limit, code), st.Percent)
	}

	fmt.Println("\n=== Net worth ===")
	fmt.Printf("Assets:      %s\n", currency.FormatCompact(snap.Monthly.TotalAssets(), code))
	fmt.Printf("Liabilities: %s\n", currency.FormatCompact(snap.Monthly.TotalLiabilities(), code))
	fmt.Printf("Net worth:   %s\n", currency.FormatCompact(snap.Monthly.NetWorth(), code))

	if *remote {
		if cfg.BigQuery.ProjectID == "" {
			log.Fatal().Msg("Error: BQ_PROJECT_ID is required for -remote")
		}

		qctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		exporter := infraBQ.NewExporter(cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.Table)
		totals, err := exporter.QueryCategoryTotals(qctx, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("Remote category totals query failed")
		}

		fmt.Println("\n=== Exported spend by category (this month) ===")
		for _, row := range totals {
			fmt.Printf("%-16s %s\n", row.Category, currency.FormatCompact(row.Total, code))
		}
	}
}

func runAdvice(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("advice", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	_, snap := loadSnapshot(ctx, log, cfg)

	adviser := advisor.New(cfg.AI.Model, cfg.AI.CacheTTL)
	advice := adviser.FinancialAdvice(ctx, snap.Transactions, snap.Monthly, snap.Goals)

	fmt.Println(advice)
}

func runExport(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	if cfg.BigQuery.ProjectID == "" {
		log.Fatal().Msg("Error: BQ_PROJECT_ID is required for export")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	_, snap := loadSnapshot(ctx, log, cfg)

	exporter := infraBQ.NewExporter(cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.Table)

	log.Info().
		Str("project", cfg.BigQuery.ProjectID).
		Str("dataset", cfg.BigQuery.Dataset).
		Str("table", cfg.BigQuery.Table).
		Int("transactions", len(snap.Transactions)).
		Msg("Starting BigQuery export")

	if err := exporter.ExportLedger(ctx, snap.Transactions); err != nil {
		log.Fatal().Err(err).Msg("Export failed")
	}

	fmt.Printf("Exported %d transaction(s) to %s.%s.%s\n",
		len(snap.Transactions), cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.Table)
}

func runSyncNotion(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("sync-notion", flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "Log planned changes without writing to Notion")
	fs.Parse(os.Args[2:])

	if cfg.Notion.Token == "" || cfg.Notion.DatabaseID == "" {
		log.Fatal().Msg("Error: NOTION_TOKEN and NOTION_DATABASE_ID are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	_, snap := loadSnapshot(ctx, log, cfg)

	client := notionsync.NewNotionClient(cfg.Notion.Token)
	if err := notionsync.SyncLedger(ctx, client, cfg.Notion.DatabaseID, snap.Transactions, *dryRun); err != nil {
		log.Fatal().Err(err).Msg("Notion sync failed")
	}

	fmt.Println("Notion sync completed successfully.")
}

func runBackup(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	if cfg.GCS.Bucket == "" {
		log.Fatal().Msg("Error: GCS_BUCKET is required for backup")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	_, snap := loadSnapshot(ctx, log, cfg)

	gcs := store.NewGCSStore(cfg.GCS.Bucket, cfg.GCS.Object)
	if err := gcs.Save(ctx, snap); err != nil {
		log.Fatal().Err(err).Msg("Backup failed")
	}

	fmt.Printf("Backed up %s to %s\n", cfg.App.DataFile, gcs.URI())
}
