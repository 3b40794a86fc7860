/*
main.go - DebtWise command-line entry point

PURPOSE:
  Opens the ledger, prints a financial report and exits. There is no
  server: the ledger is a single-user local tool and every run is
  load -> report -> save.

REPORT SECTIONS:
  1. Balances (what you owe, what you are owed, net standing)
  2. Active debts, newest first, with fee-refreshed amounts
  3. Top contacts by outstanding amount
  4. Per-contact reliability scores, trust levels and traits

CONFIGURATION:
  Flags take precedence over environment variables.

  -db                 SQLite database path (default: debtwise.db)
                      Use ":memory:" for a throwaway session
  DB_LOCATION         Same as -db
  LOG_LEVEL           debug, info, warn, error (default: info)

EXAMPLES:
  ./debtwise -db=./data/debtwise.db
  LOG_LEVEL=debug ./debtwise

SEE ALSO:
  - service: Mutation surface and persistence driver
  - views: Report projections
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"

	"github.com/debtwise/ledger/ledger"
	"github.com/debtwise/ledger/logging"
	"github.com/debtwise/ledger/service"
	"github.com/debtwise/ledger/store/sqlite"
	"github.com/debtwise/ledger/views"
)

type Config struct {
	DBLocation string `env:"DB_LOCATION" envDefault:"debtwise.db"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "debtwise: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	dbPath := flag.String("db", "", "SQLite database path (overrides DB_LOCATION)")
	flag.Parse()
	if *dbPath != "" {
		cfg.DBLocation = *dbPath
	}

	log := logging.Setup()
	log.Info("opening ledger", "db", cfg.DBLocation)

	st, err := sqlite.New(cfg.DBLocation)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	svc := service.New(st, log)
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	now := ledger.Today()
	printReport(svc, now)

	// Loading normalized legacy records; persist them back.
	if err := svc.Save(ctx); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func printReport(svc *service.Service, now ledger.Date) {
	debts := svc.Debts(now)

	b := views.Balances(debts, views.ScopeAll)
	fmt.Printf("DebtWise report for %s\n\n", now)
	fmt.Printf("  You owe:      %s\n", b.TotalIOwe.StringFixed(2))
	fmt.Printf("  Owed to you:  %s\n", b.TotalOwedToMe.StringFixed(2))
	fmt.Printf("  Net standing: %s\n\n", b.Net.StringFixed(2))

	active := views.Filter(debts, views.ScopeAll, views.StatusActive, views.ScopeAll)
	fmt.Printf("Active debts (%d):\n", len(active))
	for _, d := range active {
		direction := "->"
		if d.Type == ledger.IOwe {
			direction = "<-"
		}
		fmt.Printf("  %s %s %-20s %10s  since %s\n",
			direction, d.GroupID, d.Name, d.Amount.StringFixed(2), d.Date)
	}

	top := views.TopContacts(debts, 5)
	if len(top) > 0 {
		fmt.Printf("\nTop contacts:\n")
		for i, c := range top {
			fmt.Printf("  %d. %-20s %10s\n", i+1, c.Name, c.Amount.StringFixed(2))
		}
	}

	summaries := views.ContactSummaries(debts, now)
	if len(summaries) > 0 {
		fmt.Printf("\nReliability:\n")
		for _, cs := range summaries {
			fmt.Printf("  %-20s %5.1f  %-10s", cs.Name, cs.Reliability, cs.Level)
			for _, tr := range cs.Traits {
				fmt.Printf("  [%s]", tr)
			}
			fmt.Println()
		}
	}
}
