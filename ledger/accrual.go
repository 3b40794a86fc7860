/*
accrual.go - Automatic fee accrual engine

PURPOSE:
  Pure computation of the fees a debt has accumulated and its current
  effective value. Both entry points take `now` as an explicit parameter
  so results are deterministic and fully testable.

ALGORITHM:
  1. The manual adjustment always applies, even with automatic fees off
  2. Automatic fees start only after the grace period ends; the grace end
     is the expected return date when present, the debt's start date
     otherwise. The grace-end day itself is still fee-free.
  3. Period counting:
       ONCE    - one flat application
       WEEKLY  - floor(daysLate / 7) completed weeks
       MONTHLY - calendar-month difference, day-of-month ignored
  4. Percentage fees are always taken against the original principal,
     never against an already-inflated balance. No compounding.
  5. Effective amount = principal + fees - payments, clamped at zero

SEE ALSO:
  - types.go: Debt, FeeConfig
  - date.go: DaysBetween, MonthsBetween
*/
package ledger

import "github.com/shopspring/decimal"

// =============================================================================
// FEE ACCRUAL
// =============================================================================

var oneHundred = decimal.NewFromInt(100)

// AccruedFees returns the total fees a debt has accumulated as of now:
// the automatic schedule (when enabled and past grace) plus the signed
// manual adjustment. The result can be negative when the manual
// adjustment is a discount.
func AccruedFees(d *Debt, now Date) decimal.Decimal {
	fc := d.FeeConfig
	if fc == nil {
		return decimal.Zero
	}
	manual := fc.ManualAdjustment
	if !fc.Enabled {
		return manual
	}

	graceEnd := d.Date
	if d.ExpectedReturnDate != nil {
		graceEnd = *d.ExpectedReturnDate
	}
	if now.BeforeOrEqual(graceEnd) {
		return manual
	}

	// One application of the configured fee.
	feePerPeriod := fc.Value
	if fc.Type == FeePercentage {
		feePerPeriod = d.OriginalAmount.Mul(fc.Value).Div(oneHundred)
	}

	periods := 0
	switch fc.Frequency {
	case FeeOnce:
		periods = 1
	case FeeWeekly:
		periods = DaysBetween(graceEnd, now) / 7
	case FeeMonthly:
		periods = MonthsBetween(graceEnd, now)
		if periods < 0 {
			periods = 0
		}
	}

	return feePerPeriod.Mul(decimal.NewFromInt(int64(periods))).Add(manual)
}

// EffectiveAmount returns what the debt is currently worth:
// originalAmount + accrued fees - total payments, never below zero.
// Recomputing at a later `now` with more elapsed periods only grows the
// fee term; nothing here mutates the debt.
func EffectiveAmount(d *Debt, now Date) decimal.Decimal {
	amount := d.OriginalAmount.Add(AccruedFees(d, now)).Sub(d.TotalPaid())
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
