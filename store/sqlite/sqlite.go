/*
Package sqlite provides a SQLite-backed snapshot store for the ledger.

PURPOSE:
  Durable single-file persistence of the full ledger snapshot. The
  snapshot model is deliberate: debts and groups are small collections
  owned by one person, so Save replaces everything inside a single
  transaction instead of diffing rows.

KEY TABLES:
  debts:  One row per debt; payment history and fee config are JSON
          columns since they are only ever read back whole
  groups: One row per group

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  st, err := sqlite.New("./data/debtwise.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.

SEE ALSO:
  - store/store.go: Interface definition
  - store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/debtwise/ledger/ledger"
)

// Store implements store.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS debts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		original_amount TEXT NOT NULL,
		amount TEXT NOT NULL,
		debt_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		expected_return_date TEXT,
		icon TEXT NOT NULL DEFAULT 'default',
		is_settled BOOLEAN NOT NULL DEFAULT FALSE,
		history_json TEXT NOT NULL DEFAULT '[]',
		group_id TEXT NOT NULL DEFAULT 'personal',
		fee_config_json TEXT,
		position INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_debts_name ON debts(name);
	CREATE INDEX IF NOT EXISTS idx_debts_group ON debts(group_id);
	CREATE INDEX IF NOT EXISTS idx_debts_settled ON debts(is_settled);

	CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SNAPSHOT STORE (store.Store interface)
// =============================================================================

// Save replaces the stored snapshot with the given collections, all in
// one transaction. Row position preserves slice order across reloads.
func (s *Store) Save(ctx context.Context, debts []ledger.Debt, groups []ledger.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ledger.ErrSnapshotFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM debts`); err != nil {
		return fmt.Errorf("%w: clear debts: %v", ledger.ErrSnapshotFailed, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM groups`); err != nil {
		return fmt.Errorf("%w: clear groups: %v", ledger.ErrSnapshotFailed, err)
	}

	for i := range debts {
		if err := insertDebt(ctx, tx, &debts[i], i); err != nil {
			return err
		}
	}
	for i, g := range groups {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO groups (id, name, color, position) VALUES (?, ?, ?, ?)`,
			g.ID, g.Name, g.Color, i)
		if err != nil {
			return fmt.Errorf("%w: insert group %s: %v", ledger.ErrSnapshotFailed, g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ledger.ErrSnapshotFailed, err)
	}
	return nil
}

func insertDebt(ctx context.Context, tx *sql.Tx, d *ledger.Debt, position int) error {
	historyJSON, err := json.Marshal(d.History)
	if err != nil {
		return fmt.Errorf("%w: encode history for %s: %v", ledger.ErrSnapshotFailed, d.ID, err)
	}

	var feeConfigJSON sql.NullString
	if d.FeeConfig != nil {
		raw, err := json.Marshal(d.FeeConfig)
		if err != nil {
			return fmt.Errorf("%w: encode fee config for %s: %v", ledger.ErrSnapshotFailed, d.ID, err)
		}
		feeConfigJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var expectedReturn sql.NullString
	if d.ExpectedReturnDate != nil {
		expectedReturn = sql.NullString{String: d.ExpectedReturnDate.String(), Valid: true}
	}

	query := `
		INSERT INTO debts
		(id, name, description, original_amount, amount, debt_type, start_date,
		 expected_return_date, icon, is_settled, history_json, group_id,
		 fee_config_json, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Description,
		d.OriginalAmount.String(),
		d.Amount.String(),
		string(d.Type),
		d.Date.String(),
		expectedReturn,
		d.Icon,
		d.IsSettled,
		string(historyJSON),
		d.GroupID,
		feeConfigJSON,
		position,
	)
	if err != nil {
		return fmt.Errorf("%w: insert debt %s: %v", ledger.ErrSnapshotFailed, d.ID, err)
	}
	return nil
}

// Load reads the full snapshot back in saved order, normalizing every
// record. An empty database yields empty slices, not an error.
func (s *Store) Load(ctx context.Context) ([]ledger.Debt, []ledger.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	debts, err := s.loadDebts(ctx)
	if err != nil {
		return nil, nil, err
	}
	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, nil, err
	}
	return debts, groups, nil
}

func (s *Store) loadDebts(ctx context.Context) ([]ledger.Debt, error) {
	query := `
		SELECT id, name, description, original_amount, amount, debt_type,
		       start_date, expected_return_date, icon, is_settled,
		       history_json, group_id, fee_config_json
		FROM debts ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query debts: %v", ledger.ErrSnapshotFailed, err)
	}
	defer rows.Close()

	debts := []ledger.Debt{}
	for rows.Next() {
		var (
			d                            ledger.Debt
			originalAmount, amount       string
			debtType, startDate          string
			expectedReturn, feeConfigRaw sql.NullString
			historyRaw                   string
		)
		err := rows.Scan(&d.ID, &d.Name, &d.Description, &originalAmount, &amount,
			&debtType, &startDate, &expectedReturn, &d.Icon, &d.IsSettled,
			&historyRaw, &d.GroupID, &feeConfigRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: scan debt: %v", ledger.ErrSnapshotFailed, err)
		}

		d.OriginalAmount = ledger.ParseAmount(originalAmount)
		d.Amount = ledger.ParseAmount(amount)
		d.Type = ledger.DebtType(debtType)

		if d.Date, err = ledger.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("%w: debt %s start date: %v", ledger.ErrSnapshotFailed, d.ID, err)
		}
		if expectedReturn.Valid {
			erd, err := ledger.ParseDate(expectedReturn.String)
			if err != nil {
				return nil, fmt.Errorf("%w: debt %s return date: %v", ledger.ErrSnapshotFailed, d.ID, err)
			}
			d.ExpectedReturnDate = &erd
		}

		if err := json.Unmarshal([]byte(historyRaw), &d.History); err != nil {
			return nil, fmt.Errorf("%w: debt %s history: %v", ledger.ErrSnapshotFailed, d.ID, err)
		}
		if feeConfigRaw.Valid {
			var fc ledger.FeeConfig
			if err := json.Unmarshal([]byte(feeConfigRaw.String), &fc); err != nil {
				return nil, fmt.Errorf("%w: debt %s fee config: %v", ledger.ErrSnapshotFailed, d.ID, err)
			}
			d.FeeConfig = &fc
		}

		d.Normalize()
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func (s *Store) loadGroups(ctx context.Context) ([]ledger.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color FROM groups ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: query groups: %v", ledger.ErrSnapshotFailed, err)
	}
	defer rows.Close()

	groups := []ledger.Group{}
	for rows.Next() {
		var g ledger.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Color); err != nil {
			return nil, fmt.Errorf("%w: scan group: %v", ledger.ErrSnapshotFailed, err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
