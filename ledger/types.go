/*
Package ledger provides the core debt-tracking entity model and engines.

PURPOSE:
  This package contains the data shapes and pure algorithms everything else
  depends on: the Debt/Payment/FeeConfig/Group entities, the day-granularity
  Date type, record normalization, fee accrual, and bill splitting.

KEY CONCEPTS IN THIS FILE (types.go):
  - Debt: A single directional obligation against a named counterparty
  - Payment: An immutable settlement event appended to a debt's history
  - FeeConfig: How automatic interest/late fees accrue on a debt
  - Group: A user-defined scope partitioning debts (Personal, Work, ...)

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money, never float64
  2. Immutable history: Payments are append-only, never edited or removed
  3. Derived balance: Debt.Amount is a cache of EffectiveAmount, recomputed
     from originalAmount + accrued fees - payments, clamped at zero
  4. Normalized records: Normalize() backfills optional fields at the model
     boundary so the engines can assume fully-populated structs

SEE ALSO:
  - accrual.go: Fee accrual engine
  - split.go: Bill splitting into per-participant debts
  - date.go: Day-granularity Date type
*/
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// DEBT TYPE - Direction of the obligation
// =============================================================================

type DebtType string

const (
	IOwe     DebtType = "I_OWE"
	OwedToMe DebtType = "OWED_TO_ME"
)

// =============================================================================
// PAYMENT - Immutable settlement event
// =============================================================================

// Payment records a single amount paid against a debt. Once appended to a
// debt's history it is never modified or removed.
type Payment struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   Date            `json:"date"`
}

// =============================================================================
// FEE CONFIG - Automatic interest / late-fee schedule
// =============================================================================

type FeeType string

const (
	FeeFixed      FeeType = "FIXED"
	FeePercentage FeeType = "PERCENTAGE"
)

type FeeFrequency string

const (
	FeeOnce    FeeFrequency = "ONCE"
	FeeWeekly  FeeFrequency = "WEEKLY"
	FeeMonthly FeeFrequency = "MONTHLY"
)

// FeeConfig describes how automatic fees accrue once a debt passes its grace
// period. ManualAdjustment is a signed override that applies regardless of
// the automatic schedule and regardless of Enabled.
type FeeConfig struct {
	Enabled          bool            `json:"enabled"`
	Type             FeeType         `json:"type"`
	Frequency        FeeFrequency    `json:"frequency"`
	Value            decimal.Decimal `json:"value"`
	ManualAdjustment decimal.Decimal `json:"manualAdjustment"`
}

// DefaultFeeConfig is the backfill value for records missing a fee config:
// automatic fees disabled, zero manual adjustment.
func DefaultFeeConfig() *FeeConfig {
	return &FeeConfig{
		Enabled:   false,
		Type:      FeeFixed,
		Frequency: FeeOnce,
	}
}

// =============================================================================
// GROUP - User-defined debt scope
// =============================================================================

// GroupPersonal is the reserved default group. It always exists and can
// never be deleted; debts from deleted groups are reassigned to it.
const GroupPersonal = "personal"

type Group struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DefaultGroups seeds a fresh ledger.
func DefaultGroups() []Group {
	return []Group{
		{ID: GroupPersonal, Name: "Personal", Color: "blue"},
		{ID: "roommates", Name: "Roommates", Color: "emerald"},
		{ID: "work", Name: "Work", Color: "purple"},
	}
}

// =============================================================================
// DEBT - A single tracked obligation
// =============================================================================

const (
	IconDefault        = "default"
	DefaultDescription = "No description"
)

// Debt is a single owed/owing record. The counterparty is identified only by
// Name; the same string groups a person's history across debts. There is no
// separate contact entity and no fuzzy matching.
type Debt struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// OriginalAmount is the principal at creation. Editing a debt replaces
	// it wholesale, discarding the prior fee/payment baseline.
	OriginalAmount decimal.Decimal `json:"originalAmount"`

	// Amount caches the current remaining value:
	// max(0, originalAmount + accrued fees - payments). Never negative.
	Amount decimal.Decimal `json:"amount"`

	Type DebtType `json:"type"`
	Date Date     `json:"date"`

	// ExpectedReturnDate, when set, is the deadline before automatic fees
	// apply. When absent, fees accrue from Date instead.
	ExpectedReturnDate *Date `json:"expectedReturnDate,omitempty"`

	Icon      string     `json:"icon"`
	IsSettled bool       `json:"isSettled"`
	History   []Payment  `json:"history"`
	GroupID   string     `json:"groupId,omitempty"`
	FeeConfig *FeeConfig `json:"feeConfig,omitempty"`
}

// TotalPaid sums the debt's payment history.
func (d *Debt) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.History {
		total = total.Add(p.Amount)
	}
	return total
}

// LastActivity returns the date of the most recent payment, or the debt's
// start date if no payment has been recorded. History insertion order is
// treated as chronological.
func (d *Debt) LastActivity() Date {
	if len(d.History) == 0 {
		return d.Date
	}
	return d.History[len(d.History)-1].Date
}

// Normalize backfills optional fields on a record loaded from storage or an
// imported backup. Engines downstream assume normalized debts.
func (d *Debt) Normalize() {
	if d.OriginalAmount.IsZero() && !d.Amount.IsZero() {
		d.OriginalAmount = d.Amount
	}
	if d.Description == "" {
		d.Description = DefaultDescription
	}
	if d.Icon == "" {
		d.Icon = IconDefault
	}
	if d.History == nil {
		d.History = []Payment{}
	}
	if d.GroupID == "" {
		d.GroupID = GroupPersonal
	}
	if d.FeeConfig == nil {
		d.FeeConfig = DefaultFeeConfig()
	}
}

// =============================================================================
// DRAFT - Input shape for creating or replacing a debt
// =============================================================================

// Draft carries the caller-supplied fields of a new debt. Identity,
// settlement state and history are assigned by the service, never by the
// caller.
type Draft struct {
	Name               string
	Description        string
	Amount             decimal.Decimal
	Type               DebtType
	Date               Date
	ExpectedReturnDate *Date
	Icon               string
	GroupID            string
	FeeConfig          *FeeConfig
}

// Materialize turns a draft into a fresh unsettled debt with a new ID,
// empty history and the draft amount as its principal. Pointer fields
// are copied so the caller's draft stays detached from ledger state.
func (dr Draft) Materialize() Debt {
	d := Debt{
		ID:             NewID(),
		Name:           dr.Name,
		Description:    dr.Description,
		OriginalAmount: dr.Amount,
		Amount:         dr.Amount,
		Type:           dr.Type,
		Date:           dr.Date,
		Icon:           dr.Icon,
		IsSettled:      false,
		History:        []Payment{},
		GroupID:        dr.GroupID,
	}
	if dr.ExpectedReturnDate != nil {
		erd := *dr.ExpectedReturnDate
		d.ExpectedReturnDate = &erd
	}
	if dr.FeeConfig != nil {
		fc := *dr.FeeConfig
		d.FeeConfig = &fc
	}
	d.Normalize()
	return d
}

// NewID returns a fresh unique identifier for debts, payments and groups.
func NewID() string {
	return uuid.NewString()
}

// ParseAmount parses a decimal amount, clamping unparseable input to zero.
// Bad numeric input must degrade, not fail: a malformed amount renders as a
// zero balance instead of rejecting the whole record.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
