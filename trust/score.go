/*
Package trust derives counterparty reliability from ledger history.

PURPOSE:
  Everything a debt's payment history reveals about the counterparty is
  condensed here: a 0-100 reliability score, a coarse trust level label,
  and categorical behavior traits. All entry points are pure functions
  over a debt slice with an explicit `now`.

KEY CONCEPTS IN THIS FILE (score.go):
  - Volume weight: log10(principal+1)+1, so big debts matter more but
    sub-linearly
  - Recency factor: debts started within the last 45 days weigh 1.5x
  - Settle-speed multiplier: fast settlement scores above par, settling
    after 60 days scores below
  - Commitment: partial repayment on active debts earns up to 80% of the
    debt's weight, decaying linearly once the counterparty goes quiet
  - Experience: each settled debt adds 2% to the final score, capped at
    1.2x

SCORE SHAPE:
  score = clamp((weightedPoints / maxPossibleWeight) * 100 * experience, 0, 100)

SEE ALSO:
  - traits.go: Categorical labels from the same raw signals
*/
package trust

import (
	"math"

	"github.com/debtwise/ledger/ledger"
)

// =============================================================================
// TUNING CONSTANTS
// =============================================================================

const (
	recencyWindowDays = 45
	recencyFactor     = 1.5

	fastSettleDays       = 2
	fastSettleMultiplier = 1.4

	earlySettleDays       = 7
	earlySettleMultiplier = 1.2

	lateSettleDays       = 60
	lateSettleMultiplier = 0.6

	commitmentFactor = 0.8
	decayGraceDays   = 14
	decaySpanDays    = 60

	experiencePerSettle = 0.02
	experienceCap       = 1.2
)

// =============================================================================
// TRUST LEVELS
// =============================================================================

type Level string

const (
	LevelPristine   Level = "Pristine"
	LevelReliable   Level = "Reliable"
	LevelDeveloping Level = "Developing"
	LevelDelinquent Level = "Delinquent"
)

// LevelFor maps a reliability score to its label band.
func LevelFor(score float64) Level {
	switch {
	case score >= 90:
		return LevelPristine
	case score >= 70:
		return LevelReliable
	case score >= 40:
		return LevelDeveloping
	default:
		return LevelDelinquent
	}
}

// =============================================================================
// SCORING
// =============================================================================

// Scores computes a 0-100 reliability score per counterparty name.
// Counterparties are keyed by exact name match; there is no fuzzy
// identity. Every name present in the input gets an entry, zero when
// nothing has been settled or repaid yet.
func Scores(debts []ledger.Debt, now ledger.Date) map[string]float64 {
	byName := make(map[string][]ledger.Debt)
	for _, d := range debts {
		byName[d.Name] = append(byName[d.Name], d)
	}

	scores := make(map[string]float64, len(byName))
	for name, contactDebts := range byName {
		scores[name] = scoreContact(contactDebts, now)
	}
	return scores
}

func scoreContact(debts []ledger.Debt, now ledger.Date) float64 {
	var weightedPoints, maxPossibleWeight float64
	settledCount := 0

	for i := range debts {
		d := &debts[i]
		weight := debtWeight(d, now)
		maxPossibleWeight += weight

		if d.IsSettled {
			settledCount++
			weightedPoints += weight * settleMultiplier(daysToSettle(d))
		} else {
			weightedPoints += commitmentPoints(d, weight, now)
		}
	}

	if maxPossibleWeight == 0 {
		return 0
	}

	experience := math.Min(experienceCap, 1+float64(settledCount)*experiencePerSettle)
	raw := weightedPoints / maxPossibleWeight * 100 * experience
	return math.Max(0, math.Min(100, raw))
}

// debtWeight is how much this debt can contribute to the score.
func debtWeight(d *ledger.Debt, now ledger.Date) float64 {
	weight := math.Log10(d.OriginalAmount.InexactFloat64()+1) + 1
	if ledger.DaysBetween(d.Date, now) < recencyWindowDays {
		weight *= recencyFactor
	}
	return weight
}

// daysToSettle measures creation to last payment. A settled debt with no
// recorded payments counts as settled instantly.
func daysToSettle(d *ledger.Debt) int {
	return ledger.DaysBetween(d.Date, d.LastActivity())
}

func settleMultiplier(days int) float64 {
	switch {
	case days <= fastSettleDays:
		return fastSettleMultiplier
	case days <= earlySettleDays:
		return earlySettleMultiplier
	case days > lateSettleDays:
		return lateSettleMultiplier
	default:
		return 1.0
	}
}

// commitmentPoints rewards partial repayment on an active debt. Progress
// compares the fee-refreshed balance against the principal; going quiet
// for more than two weeks decays the reward to nothing over sixty days.
func commitmentPoints(d *ledger.Debt, weight float64, now ledger.Date) float64 {
	original := d.OriginalAmount.InexactFloat64()
	if original == 0 {
		return 0
	}

	remaining := ledger.EffectiveAmount(d, now).InexactFloat64()
	progress := math.Max(0, (original-remaining)/original)
	points := weight * progress * commitmentFactor

	quietDays := ledger.DaysBetween(d.LastActivity(), now)
	if quietDays > decayGraceDays {
		points *= math.Max(0, 1-float64(quietDays-decayGraceDays)/decaySpanDays)
	}
	return points
}
