/*
memory.go - In-memory snapshot store

PURPOSE:
  Ephemeral Store implementation for tests and throwaway sessions.
  Holds deep copies so callers can't reach into the stored snapshot.
*/
package store

import (
	"context"
	"sync"

	"github.com/debtwise/ledger/ledger"
)

// Memory is a thread-safe in-process Store.
type Memory struct {
	mu     sync.RWMutex
	debts  []ledger.Debt
	groups []ledger.Group
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save replaces the held snapshot.
func (m *Memory) Save(_ context.Context, debts []ledger.Debt, groups []ledger.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.debts = copyDebts(debts)
	m.groups = append([]ledger.Group(nil), groups...)
	return nil
}

// Load returns a copy of the held snapshot, empty slices when nothing
// was ever saved. Records are normalized on the way out.
func (m *Memory) Load(_ context.Context) ([]ledger.Debt, []ledger.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	debts := copyDebts(m.debts)
	for i := range debts {
		debts[i].Normalize()
	}
	if debts == nil {
		debts = []ledger.Debt{}
	}
	groups := append([]ledger.Group(nil), m.groups...)
	if groups == nil {
		groups = []ledger.Group{}
	}
	return debts, groups, nil
}

func copyDebts(in []ledger.Debt) []ledger.Debt {
	if in == nil {
		return nil
	}
	out := make([]ledger.Debt, len(in))
	for i, d := range in {
		out[i] = d
		out[i].History = append([]ledger.Payment(nil), d.History...)
		if d.FeeConfig != nil {
			fc := *d.FeeConfig
			out[i].FeeConfig = &fc
		}
		if d.ExpectedReturnDate != nil {
			erd := *d.ExpectedReturnDate
			out[i].ExpectedReturnDate = &erd
		}
	}
	return out
}
