/*
Package views computes read-only projections over a debt collection.

PURPOSE:
  Everything the ledger can display is derived here: balance totals,
  filtered lists, monthly trend buckets, category breakdowns, top
  contacts and per-contact roll-ups. Nothing in this package mutates a
  debt.

INPUT CONTRACT:
  All functions expect fee-refreshed debts: Debt.Amount already holds
  the effective value for the observation instant. The service's
  Debts(now) read surface provides exactly that.

SEE ALSO:
  - ledger: Entity model and accrual engine
  - trust: Reliability scores and traits consumed by ContactSummaries
*/
package views

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/debtwise/ledger/ledger"
	"github.com/debtwise/ledger/trust"
)

// =============================================================================
// FILTERS
// =============================================================================

// ScopeAll widens any group or type filter to the whole collection.
const ScopeAll = "ALL"

type StatusFilter string

const (
	StatusActive StatusFilter = "ACTIVE"
	StatusAll    StatusFilter = "ALL"
)

// =============================================================================
// BALANCES
// =============================================================================

// Balance is the headline view: what you owe, what you are owed, and the
// net standing, over unsettled debts only.
type Balance struct {
	TotalIOwe     decimal.Decimal
	TotalOwedToMe decimal.Decimal
	Net           decimal.Decimal
}

// Balances totals unsettled debts within a group scope. Pass ScopeAll to
// cover every group. Net is positive when more is owed to you than you owe.
func Balances(debts []ledger.Debt, groupScope string) Balance {
	b := Balance{
		TotalIOwe:     decimal.Zero,
		TotalOwedToMe: decimal.Zero,
	}
	for i := range debts {
		d := &debts[i]
		if d.IsSettled {
			continue
		}
		if groupScope != ScopeAll && d.GroupID != groupScope {
			continue
		}
		if d.Type == ledger.IOwe {
			b.TotalIOwe = b.TotalIOwe.Add(d.Amount)
		} else {
			b.TotalOwedToMe = b.TotalOwedToMe.Add(d.Amount)
		}
	}
	b.Net = b.TotalOwedToMe.Sub(b.TotalIOwe)
	return b
}

// =============================================================================
// FILTERED LIST
// =============================================================================

// Filter narrows the collection by direction, settlement status and group,
// all conditions combined with AND, and returns the result newest first.
// The input slice is left untouched.
func Filter(debts []ledger.Debt, typeFilter string, status StatusFilter, groupScope string) []ledger.Debt {
	out := make([]ledger.Debt, 0, len(debts))
	for _, d := range debts {
		if typeFilter != ScopeAll && string(d.Type) != typeFilter {
			continue
		}
		if status != StatusAll && d.IsSettled {
			continue
		}
		if groupScope != ScopeAll && d.GroupID != groupScope {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// =============================================================================
// MONTHLY TREND
// =============================================================================

// MonthBucket totals unsettled debt per calendar month of origin.
type MonthBucket struct {
	Year  int
	Month string // "Jan", "Feb", ...
	Owe   decimal.Decimal
	Owed  decimal.Decimal
}

// MonthlyTrend buckets unsettled debts by their start month, oldest first.
func MonthlyTrend(debts []ledger.Debt) []MonthBucket {
	type key struct {
		year  int
		month int
	}
	buckets := make(map[key]*MonthBucket)
	for i := range debts {
		d := &debts[i]
		if d.IsSettled {
			continue
		}
		k := key{year: d.Date.Year(), month: int(d.Date.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &MonthBucket{
				Year:  k.year,
				Month: d.Date.Month().String()[:3],
				Owe:   decimal.Zero,
				Owed:  decimal.Zero,
			}
			buckets[k] = b
		}
		if d.Type == ledger.IOwe {
			b.Owe = b.Owe.Add(d.Amount)
		} else {
			b.Owed = b.Owed.Add(d.Amount)
		}
	}

	keys := make([]key, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, *buckets[k])
	}
	return out
}

// =============================================================================
// CATEGORY BREAKDOWN
// =============================================================================

// Category totals unsettled debt per icon category.
type Category struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryBreakdown keys unsettled totals by the debt's icon, largest
// first. Icon names are title-cased for display ("food" becomes "Food").
func CategoryBreakdown(debts []ledger.Debt) []Category {
	totals := make(map[string]decimal.Decimal)
	for i := range debts {
		d := &debts[i]
		if d.IsSettled {
			continue
		}
		name := titleCase(d.Icon)
		totals[name] = totals[name].Add(d.Amount)
	}

	out := make([]Category, 0, len(totals))
	for name, amt := range totals {
		out = append(out, Category{Name: name, Amount: amt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// =============================================================================
// TOP CONTACTS
// =============================================================================

// ContactTotal is one counterparty's total unsettled exposure.
type ContactTotal struct {
	Name   string
	Amount decimal.Decimal
	Type   ledger.DebtType // direction of the contact's first unsettled debt
}

// TopContacts ranks counterparties by unsettled total, largest first,
// keeping at most n entries.
func TopContacts(debts []ledger.Debt, n int) []ContactTotal {
	totals := make(map[string]*ContactTotal)
	order := []string{}
	for i := range debts {
		d := &debts[i]
		if d.IsSettled {
			continue
		}
		ct, ok := totals[d.Name]
		if !ok {
			ct = &ContactTotal{Name: d.Name, Amount: decimal.Zero, Type: d.Type}
			totals[d.Name] = ct
			order = append(order, d.Name)
		}
		ct.Amount = ct.Amount.Add(d.Amount)
	}

	out := make([]ContactTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// =============================================================================
// CONTACT SUMMARIES
// =============================================================================

// ContactSummary is the full per-counterparty roll-up: exposure in both
// directions, reliability, trust level, traits, and the transaction list
// newest first.
type ContactSummary struct {
	Name          string
	TotalOwedToMe decimal.Decimal
	TotalIOwe     decimal.Decimal
	Net           decimal.Decimal
	Reliability   float64
	Level         trust.Level
	Traits        []string
	Transactions  []ledger.Debt
}

// ContactSummaries builds the roll-up for every counterparty, most-traded
// contacts first. Unsettled amounts feed the totals; the transaction list
// carries everything, settled included.
func ContactSummaries(debts []ledger.Debt, now ledger.Date) []ContactSummary {
	scores := trust.Scores(debts, now)
	traits := trust.Traits(debts, now)

	byName := make(map[string]*ContactSummary)
	order := []string{}
	for _, d := range debts {
		cs, ok := byName[d.Name]
		if !ok {
			score := scores[d.Name]
			cs = &ContactSummary{
				Name:          d.Name,
				TotalOwedToMe: decimal.Zero,
				TotalIOwe:     decimal.Zero,
				Reliability:   score,
				Level:         trust.LevelFor(score),
				Traits:        traits[d.Name],
			}
			byName[d.Name] = cs
			order = append(order, d.Name)
		}
		cs.Transactions = append(cs.Transactions, d)
		if !d.IsSettled {
			if d.Type == ledger.OwedToMe {
				cs.TotalOwedToMe = cs.TotalOwedToMe.Add(d.Amount)
			} else {
				cs.TotalIOwe = cs.TotalIOwe.Add(d.Amount)
			}
		}
	}

	out := make([]ContactSummary, 0, len(order))
	for _, name := range order {
		cs := byName[name]
		cs.Net = cs.TotalOwedToMe.Sub(cs.TotalIOwe)
		sort.SliceStable(cs.Transactions, func(i, j int) bool {
			return cs.Transactions[i].Date.After(cs.Transactions[j].Date)
		})
		out = append(out, *cs)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Transactions) > len(out[j].Transactions)
	})
	return out
}
