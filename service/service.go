/*
Package service owns the ledger state and its mutation surface.

PURPOSE:
  The Service holds the debt and group collections and is the single
  writer: every state change goes through one of its operations under
  one lock. Reads hand out fee-refreshed copies, so callers never hold
  a reference into live state.

CONCURRENCY:
  sync.RWMutex around both collections. Engines and views stay pure;
  only this package mutates.

PERSISTENCE:
  Save and Load are explicit. No operation writes to the store as a
  side effect; the host decides when a snapshot happens.

NOT-FOUND POLICY:
  Mutations that target a missing debt ID are silent no-ops. Stale
  references from a concurrent delete must never fail a caller.

SEE ALSO:
  - backup.go: Export/import of the whole ledger
  - ledger: Entity model and engines
  - store: Snapshot persistence
*/
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/debtwise/ledger/ledger"
	"github.com/debtwise/ledger/logging"
	"github.com/debtwise/ledger/store"
)

// Service is the single-writer owner of the ledger collections.
type Service struct {
	mu     sync.RWMutex
	log    *slog.Logger
	store  store.Store
	debts  []ledger.Debt
	groups []ledger.Group
}

// New creates a service with the default groups and no debts. Pass a nil
// logger to discard logs.
func New(st store.Store, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{
		log:    log,
		store:  st,
		debts:  []ledger.Debt{},
		groups: ledger.DefaultGroups(),
	}
}

// =============================================================================
// MUTATIONS - Debts
// =============================================================================

// Add materializes each draft into a fresh unsettled debt and prepends
// them, newest first.
func (s *Service) Add(drafts ...ledger.Draft) []ledger.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]ledger.Debt, 0, len(drafts))
	for _, dr := range drafts {
		added = append(added, dr.Materialize())
	}
	s.debts = append(added, s.debts...)

	for _, d := range added {
		s.log.Info("debt added", "id", d.ID, "name", d.Name, "amount", d.Amount, "type", d.Type)
	}
	return added
}

// AddSplit fans one bill out into per-participant debts and adds them.
func (s *Service) AddSplit(template ledger.Draft, total decimal.Decimal, mode ledger.SplitMode, participants []ledger.Participant) ([]ledger.Debt, error) {
	drafts, err := ledger.SplitBill(template, total, mode, participants)
	if err != nil {
		s.log.Error("split rejected", "mode", mode, "participants", len(participants), "error", err)
		return nil, err
	}
	s.log.Info("bill split", "mode", mode, "total", total, "participants", len(participants))
	return s.Add(drafts...), nil
}

// Edit replaces a debt's descriptive fields. The new amount becomes the
// new principal; payment history and settlement state survive, so prior
// payments now count against the new principal. A missing ID is a
// silent no-op.
func (s *Service) Edit(id string, draft ledger.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.debts {
		if s.debts[i].ID != id {
			continue
		}
		d := &s.debts[i]
		d.Name = draft.Name
		d.Description = draft.Description
		d.OriginalAmount = draft.Amount
		d.Amount = draft.Amount
		d.Type = draft.Type
		d.Date = draft.Date
		d.ExpectedReturnDate = nil
		if draft.ExpectedReturnDate != nil {
			erd := *draft.ExpectedReturnDate
			d.ExpectedReturnDate = &erd
		}
		d.Icon = draft.Icon
		d.GroupID = draft.GroupID
		d.FeeConfig = nil
		if draft.FeeConfig != nil {
			fc := *draft.FeeConfig
			d.FeeConfig = &fc
		}
		d.Normalize()
		s.log.Info("debt edited", "id", id, "name", d.Name, "amount", d.Amount)
		return
	}
	s.log.Debug("edit target not found", "id", id)
}

// Settle records a payment against a debt. The remaining balance is the
// fee-refreshed effective amount minus the payment, clamped at zero;
// overpayment is absorbed, never credited. Reaching zero flips the debt
// to settled. A missing ID is a silent no-op.
func (s *Service) Settle(id string, paid decimal.Decimal, paymentDate ledger.Date, now ledger.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.debts {
		if s.debts[i].ID != id {
			continue
		}
		d := &s.debts[i]

		remaining := ledger.EffectiveAmount(d, now).Sub(paid)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		d.History = append(d.History, ledger.Payment{
			ID:     ledger.NewID(),
			Amount: paid,
			Date:   paymentDate,
		})
		d.Amount = remaining
		d.IsSettled = remaining.IsZero()

		s.log.Info("payment recorded",
			"id", id, "paid", paid, "remaining", remaining, "settled", d.IsSettled)
		return
	}
	s.log.Debug("settle target not found", "id", id)
}

// UpdateManualFee sets the signed manual fee adjustment on a debt and
// refreshes its cached amount. A missing ID is a silent no-op.
func (s *Service) UpdateManualFee(id string, adjustment decimal.Decimal, now ledger.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.debts {
		if s.debts[i].ID != id {
			continue
		}
		d := &s.debts[i]
		if d.FeeConfig == nil {
			d.FeeConfig = ledger.DefaultFeeConfig()
		}
		d.FeeConfig.ManualAdjustment = adjustment
		d.Amount = ledger.EffectiveAmount(d, now)
		s.log.Info("manual fee updated", "id", id, "adjustment", adjustment, "amount", d.Amount)
		return
	}
	s.log.Debug("manual fee target not found", "id", id)
}

// Delete removes a debt unconditionally. A missing ID is a silent no-op.
func (s *Service) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.debts {
		if s.debts[i].ID == id {
			s.debts = append(s.debts[:i], s.debts[i+1:]...)
			s.log.Info("debt deleted", "id", id)
			return
		}
	}
	s.log.Debug("delete target not found", "id", id)
}

// =============================================================================
// MUTATIONS - Groups
// =============================================================================

// AddGroup creates a new group with a fresh ID.
func (s *Service) AddGroup(name, color string) ledger.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := ledger.Group{ID: ledger.NewID(), Name: name, Color: color}
	s.groups = append(s.groups, g)
	s.log.Info("group added", "id", g.ID, "name", name)
	return g
}

// RemoveGroup deletes a group and reassigns its debts to the personal
// group. The personal group itself is protected.
func (s *Service) RemoveGroup(id string) error {
	if id == ledger.GroupPersonal {
		return fmt.Errorf("%w: %q", ledger.ErrReservedGroup, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.groups[:0]
	for _, g := range s.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.groups = kept

	reassigned := 0
	for i := range s.debts {
		if s.debts[i].GroupID == id {
			s.debts[i].GroupID = ledger.GroupPersonal
			reassigned++
		}
	}
	s.log.Info("group removed", "id", id, "reassigned", reassigned)
	return nil
}

// =============================================================================
// READ SURFACE
// =============================================================================

// Debts returns fee-refreshed copies of every debt as of now: each copy's
// Amount holds the effective value. Live state is never exposed.
func (s *Service) Debts(now ledger.Date) []ledger.Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ledger.Debt, len(s.debts))
	for i := range s.debts {
		out[i] = copyDebt(&s.debts[i])
		if !out[i].IsSettled {
			out[i].Amount = ledger.EffectiveAmount(&out[i], now)
		}
	}
	return out
}

// Groups returns a copy of the group list.
func (s *Service) Groups() []ledger.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.Group(nil), s.groups...)
}

// Names returns the distinct counterparty names in first-seen order, for
// pre-populating contact pickers.
func (s *Service) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	names := []string{}
	for i := range s.debts {
		if !seen[s.debts[i].Name] {
			seen[s.debts[i].Name] = true
			names = append(names, s.debts[i].Name)
		}
	}
	return names
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Save snapshots the current state through the store.
func (s *Service) Save(ctx context.Context) error {
	s.mu.RLock()
	debts := make([]ledger.Debt, len(s.debts))
	for i := range s.debts {
		debts[i] = copyDebt(&s.debts[i])
	}
	groups := append([]ledger.Group(nil), s.groups...)
	s.mu.RUnlock()

	if err := s.store.Save(ctx, debts, groups); err != nil {
		s.log.Error("snapshot save failed", "error", err)
		return err
	}
	s.log.Info("snapshot saved", "debts", len(debts), "groups", len(groups))
	return nil
}

// Load replaces in-memory state with the stored snapshot. An empty store
// yields no debts and the default groups.
func (s *Service) Load(ctx context.Context) error {
	debts, groups, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("snapshot load failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range debts {
		debts[i].Normalize()
	}
	s.debts = debts
	if len(groups) == 0 {
		groups = ledger.DefaultGroups()
	}
	s.groups = groups

	s.log.Info("snapshot loaded", "debts", len(debts), "groups", len(groups))
	return nil
}

// =============================================================================
// INTERNAL
// =============================================================================

func copyDebt(d *ledger.Debt) ledger.Debt {
	out := *d
	out.History = append([]ledger.Payment(nil), d.History...)
	if d.FeeConfig != nil {
		fc := *d.FeeConfig
		out.FeeConfig = &fc
	}
	if d.ExpectedReturnDate != nil {
		erd := *d.ExpectedReturnDate
		out.ExpectedReturnDate = &erd
	}
	return out
}
