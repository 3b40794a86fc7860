/*
fallback.go - Degrading wrapper around any Generator

PURPOSE:
  Guarantees the caller always receives usable text. Errors, timeouts
  and empty responses from the wrapped generator all collapse into
  fixed, friendly strings.
*/
package insight

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/debtwise/ledger/ledger"
	"github.com/debtwise/ledger/logging"
)

// Static strings served when the collaborator cannot.
const (
	msgNoDebts       = "Add some debts to get AI-powered insights on your financial balance!"
	msgInsightBusy   = "The AI is currently analyzing your finances. Please try again in a moment."
	msgSimplifyError = "Failed to calculate simplification. Please check your connection."
	msgNudgeDefault  = "Hey, just checking in on our pending balance when you have a moment!"
)

// Fallback wraps a Generator so that no call ever fails. A zero Timeout
// means the caller's context governs alone.
type Fallback struct {
	next    Generator
	timeout time.Duration
	log     *slog.Logger
}

// NewFallback wraps next. Pass a nil logger to discard degradation logs.
func NewFallback(next Generator, timeout time.Duration, log *slog.Logger) *Fallback {
	if log == nil {
		log = logging.Discard()
	}
	return &Fallback{next: next, timeout: timeout, log: log}
}

// DebtInsight never fails. An empty ledger short-circuits to an
// invitation; collaborator failure degrades to a holding message.
func (f *Fallback) DebtInsight(ctx context.Context, debts []ledger.Debt) (string, error) {
	if len(debts) == 0 {
		return msgNoDebts, nil
	}

	ctx, cancel := f.bound(ctx)
	defer cancel()

	text, err := f.next.DebtInsight(ctx, debts)
	if err != nil || strings.TrimSpace(text) == "" {
		f.log.Warn("insight degraded to static text", "op", "DebtInsight", "error", err)
		return msgInsightBusy, nil
	}
	return text, nil
}

// SimplifyGroup never fails.
func (f *Fallback) SimplifyGroup(ctx context.Context, groupName string, debts []ledger.Debt) (string, error) {
	ctx, cancel := f.bound(ctx)
	defer cancel()

	text, err := f.next.SimplifyGroup(ctx, groupName, debts)
	if err != nil || strings.TrimSpace(text) == "" {
		f.log.Warn("insight degraded to static text", "op", "SimplifyGroup", "group", groupName, "error", err)
		return msgSimplifyError, nil
	}
	return text, nil
}

// NudgeMessage never fails.
func (f *Fallback) NudgeMessage(ctx context.Context, req NudgeRequest) (string, error) {
	ctx, cancel := f.bound(ctx)
	defer cancel()

	text, err := f.next.NudgeMessage(ctx, req)
	if err != nil || strings.TrimSpace(text) == "" {
		f.log.Warn("insight degraded to static text", "op", "NudgeMessage", "contact", req.ContactName, "error", err)
		return msgNudgeDefault, nil
	}
	return strings.TrimSpace(text), nil
}

func (f *Fallback) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, f.timeout)
}
