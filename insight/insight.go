/*
Package insight defines the text-insight collaborator boundary.

PURPOSE:
  The ledger core is fully offline; anything that drafts prose about the
  data (spending insights, settlement suggestions, reminder messages) is
  an external collaborator behind the Generator interface. This package
  owns the boundary and its degradation contract, not any network
  implementation.

DEGRADATION CONTRACT:
  A collaborator may fail or time out at any moment. Fallback wraps any
  Generator and converts every failure into a fixed, friendly string, so
  callers always get usable text and never an error.

TONE:
  Reminder messages adapt to the contact's reliability score:
  above 80 casual, above 50 polite, otherwise firm.

SEE ALSO:
  - fallback.go: Degrading wrapper and the static strings
*/
package insight

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/debtwise/ledger/ledger"
)

// ErrUnavailable is returned by generators that have no collaborator to
// call. Fallback degrades it to static text.
var ErrUnavailable = errors.New("insight generator unavailable")

// NudgeRequest describes the reminder message to draft.
type NudgeRequest struct {
	ContactName string
	Amount      decimal.Decimal
	OwedToMe    bool
	Reliability float64
}

// Generator drafts prose about ledger data. Implementations are expected
// to be slow and fallible; every method honors context cancellation.
type Generator interface {
	// DebtInsight summarizes patterns across the given debts.
	DebtInsight(ctx context.Context, debts []ledger.Debt) (string, error)

	// SimplifyGroup proposes the fewest transactions settling a group.
	SimplifyGroup(ctx context.Context, groupName string, debts []ledger.Debt) (string, error)

	// NudgeMessage drafts a reminder to the contact, toned by reliability.
	NudgeMessage(ctx context.Context, req NudgeRequest) (string, error)
}

// Tone buckets a reliability score for reminder drafting.
type Tone string

const (
	ToneCasual Tone = "very friendly and casual"
	TonePolite Tone = "polite but clear"
	ToneFirm   Tone = "firm and professional"
)

// ToneFor picks the reminder tone for a reliability score.
func ToneFor(reliability float64) Tone {
	switch {
	case reliability > 80:
		return ToneCasual
	case reliability > 50:
		return TonePolite
	default:
		return ToneFirm
	}
}

// Static is the no-collaborator Generator: every call reports
// ErrUnavailable. Wrap it in Fallback to serve the static strings.
type Static struct{}

func (Static) DebtInsight(context.Context, []ledger.Debt) (string, error) {
	return "", ErrUnavailable
}

func (Static) SimplifyGroup(context.Context, string, []ledger.Debt) (string, error) {
	return "", ErrUnavailable
}

func (Static) NudgeMessage(context.Context, NudgeRequest) (string, error) {
	return "", ErrUnavailable
}
