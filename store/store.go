/*
Package store defines snapshot persistence for the ledger.

PURPOSE:
  The ledger persists as a whole snapshot: every debt and every group,
  saved and loaded together. There is no per-mutation write path; the
  service decides when a snapshot happens.

IMPLEMENTATIONS:
  - Memory: In-process store for tests and ephemeral use
  - sqlite.Store: Durable single-file store (store/sqlite)

SEE ALSO:
  - sqlite/sqlite.go: SQLite implementation
  - service: Drives Save/Load explicitly
*/
package store

import (
	"context"

	"github.com/debtwise/ledger/ledger"
)

// Store persists and restores the full ledger snapshot. Save replaces
// whatever snapshot was there before; Load on an empty store returns
// empty slices and no error.
type Store interface {
	Save(ctx context.Context, debts []ledger.Debt, groups []ledger.Group) error
	Load(ctx context.Context) (debts []ledger.Debt, groups []ledger.Group, err error)
}
