/*
split.go - Bill splitting into per-participant debts

PURPOSE:
  Turns one shared bill into N independent debt drafts, one per named
  participant. The split only derives the amounts; the drafts share every
  other field of the template.

SPLIT MODES:
  EQUALLY    - total divided evenly across participants
  PERCENTAGE - each participant's share of the total, Value is a percent
  EXACT      - each participant's Value is their amount verbatim

  All derived amounts round to 2 decimal places. Rounding remainders are
  not redistributed; shares are independent records, not a balanced book.

SEE ALSO:
  - types.go: Draft
*/
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SPLIT MODES
// =============================================================================

type SplitMode string

const (
	SplitEqually    SplitMode = "EQUALLY"
	SplitPercentage SplitMode = "PERCENTAGE"
	SplitExact      SplitMode = "EXACT"
)

// Participant names one party of a shared bill. Value is unused for
// EQUALLY, a percentage for PERCENTAGE, and an absolute amount for EXACT.
type Participant struct {
	Name  string
	Value decimal.Decimal
}

// =============================================================================
// SPLIT DERIVATION
// =============================================================================

// SplitBill fans a single bill out into one draft per participant. The
// template supplies every field except Name and Amount, which come from
// the split itself.
func SplitBill(template Draft, total decimal.Decimal, mode SplitMode, participants []Participant) ([]Draft, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}

	drafts := make([]Draft, 0, len(participants))
	for _, p := range participants {
		share, err := shareOf(total, mode, p, len(participants))
		if err != nil {
			return nil, err
		}
		draft := template
		draft.Name = p.Name
		draft.Amount = share.Round(2)
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func shareOf(total decimal.Decimal, mode SplitMode, p Participant, count int) (decimal.Decimal, error) {
	switch mode {
	case SplitEqually:
		return total.Div(decimal.NewFromInt(int64(count))), nil
	case SplitPercentage:
		return total.Mul(p.Value).Div(oneHundred), nil
	case SplitExact:
		return p.Value, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown mode %q", ErrInvalidSplit, mode)
	}
}
