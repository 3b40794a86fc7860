package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtwise/ledger/ledger"
	"github.com/debtwise/ledger/service"
	"github.com/debtwise/ledger/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) ledger.Date {
	return ledger.NewDate(year, month, day)
}

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() *service.Service {
	return service.New(store.NewMemory(), nil)
}

func draft(name, amt string, typ ledger.DebtType, d ledger.Date) ledger.Draft {
	return ledger.Draft{Name: name, Amount: amount(amt), Type: typ, Date: d}
}

// =============================================================================
// ADD / EDIT / DELETE
// =============================================================================

func TestAdd_PrependsNewestFirst(t *testing.T) {
	svc := newTestService()
	now := date(2024, time.June, 1)

	svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.January, 1)))
	svc.Add(draft("Bob", "50", ledger.IOwe, date(2024, time.February, 1)))

	debts := svc.Debts(now)
	require.Len(t, debts, 2)
	assert.Equal(t, "Bob", debts[0].Name, "latest addition first")
	assert.Equal(t, "Alice", debts[1].Name)

	for _, d := range debts {
		assert.NotEmpty(t, d.ID)
		assert.False(t, d.IsSettled)
		assert.Empty(t, d.History)
		assert.True(t, d.OriginalAmount.Equal(d.Amount))
	}
}

func TestEdit_RestartsBaseline(t *testing.T) {
	// GIVEN: A debt with a payment on record
	svc := newTestService()
	now := date(2024, time.June, 1)
	added := svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.January, 1)))
	svc.Settle(added[0].ID, amount("30"), date(2024, time.February, 1), now)

	// WHEN: Edited with a new amount
	svc.Edit(added[0].ID, draft("Alicia", "200", ledger.OwedToMe, date(2024, time.March, 1)))

	// THEN: The new amount is the new principal; payment history survives
	//       and now counts against it
	debts := svc.Debts(now)
	require.Len(t, debts, 1)
	assert.Equal(t, "Alicia", debts[0].Name)
	assert.True(t, amount("200").Equal(debts[0].OriginalAmount))
	require.Len(t, debts[0].History, 1)
	assert.True(t, amount("170").Equal(debts[0].Amount), "200 - 30 paid, got %s", debts[0].Amount)
}

func TestEdit_MissingIDIsNoOp(t *testing.T) {
	svc := newTestService()
	svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.January, 1)))

	assert.NotPanics(t, func() {
		svc.Edit("no-such-id", draft("X", "1", ledger.IOwe, date(2024, time.January, 1)))
	})
	debts := svc.Debts(date(2024, time.June, 1))
	assert.Equal(t, "Alice", debts[0].Name)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	added := svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.January, 1)))

	svc.Delete(added[0].ID)
	assert.Empty(t, svc.Debts(date(2024, time.June, 1)))

	assert.NotPanics(t, func() { svc.Delete("no-such-id") })
}

// =============================================================================
// SETTLEMENT
// =============================================================================

func TestSettle_PartialPaymentStaysActive(t *testing.T) {
	// GIVEN: A 100 debt
	// WHEN: 40 is paid
	// THEN: 60 remains and the debt stays unsettled
	svc := newTestService()
	now := date(2024, time.June, 1)
	added := svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.May, 1)))

	svc.Settle(added[0].ID, amount("40"), date(2024, time.May, 15), now)

	d := svc.Debts(now)[0]
	assert.True(t, amount("60").Equal(d.Amount), "got %s", d.Amount)
	assert.False(t, d.IsSettled)
	require.Len(t, d.History, 1)
	assert.True(t, amount("40").Equal(d.History[0].Amount))
}

func TestSettle_FullPaymentSettles(t *testing.T) {
	svc := newTestService()
	now := date(2024, time.June, 1)
	added := svc.Add(draft("Bob", "200", ledger.IOwe, date(2024, time.May, 1)))

	svc.Settle(added[0].ID, amount("200"), date(2024, time.May, 15), now)

	d := svc.Debts(now)[0]
	assert.True(t, d.Amount.IsZero())
	assert.True(t, d.IsSettled)
}

func TestSettle_OverpaymentAbsorbed(t *testing.T) {
	// Overpayment clamps to zero; no credit is tracked, but the history
	// keeps the real paid amount.
	svc := newTestService()
	now := date(2024, time.June, 1)
	added := svc.Add(draft("Carol", "200", ledger.OwedToMe, date(2024, time.May, 1)))

	svc.Settle(added[0].ID, amount("500"), date(2024, time.May, 15), now)

	d := svc.Debts(now)[0]
	assert.True(t, d.Amount.IsZero())
	assert.True(t, d.IsSettled)
	assert.True(t, amount("500").Equal(d.History[0].Amount))
}

func TestSettle_UsesEffectiveAmountWithFees(t *testing.T) {
	// GIVEN: 100 principal with a 10 fixed monthly fee, two months late
	svc := newTestService()
	now := date(2024, time.March, 20)
	dr := draft("Dave", "100", ledger.OwedToMe, date(2024, time.January, 15))
	dr.FeeConfig = &ledger.FeeConfig{
		Enabled:   true,
		Type:      ledger.FeeFixed,
		Frequency: ledger.FeeMonthly,
		Value:     amount("10"),
	}
	added := svc.Add(dr)

	// WHEN: 50 is paid against the fee-inflated 120
	svc.Settle(added[0].ID, amount("50"), now, now)

	// THEN: 70 remains
	d := svc.Debts(now)[0]
	assert.True(t, amount("70").Equal(d.Amount), "got %s", d.Amount)
	assert.False(t, d.IsSettled)
}

func TestUpdateManualFee(t *testing.T) {
	svc := newTestService()
	now := date(2024, time.June, 1)
	added := svc.Add(draft("Eve", "100", ledger.OwedToMe, date(2024, time.May, 1)))

	svc.UpdateManualFee(added[0].ID, amount("12.50"), now)

	d := svc.Debts(now)[0]
	require.NotNil(t, d.FeeConfig)
	assert.True(t, amount("12.50").Equal(d.FeeConfig.ManualAdjustment))
	assert.True(t, amount("112.50").Equal(d.Amount), "got %s", d.Amount)

	// A negative adjustment discounts.
	svc.UpdateManualFee(added[0].ID, amount("-20"), now)
	d = svc.Debts(now)[0]
	assert.True(t, amount("80").Equal(d.Amount), "got %s", d.Amount)
}

// =============================================================================
// SPLITS
// =============================================================================

func TestAddSplit_Equally(t *testing.T) {
	svc := newTestService()
	now := date(2024, time.June, 10)
	template := ledger.Draft{
		Description: "Groceries",
		Type:        ledger.OwedToMe,
		Date:        now,
	}

	added, err := svc.AddSplit(template, amount("90"), ledger.SplitEqually, []ledger.Participant{
		{Name: "Alice"}, {Name: "Bob"}, {Name: "Carol"},
	})
	require.NoError(t, err)
	require.Len(t, added, 3)

	for _, d := range svc.Debts(now) {
		assert.True(t, amount("30").Equal(d.Amount), "got %s", d.Amount)
		assert.Equal(t, "Groceries", d.Description)
	}
}

func TestAddSplit_RejectsEmptyParticipants(t *testing.T) {
	svc := newTestService()
	_, err := svc.AddSplit(ledger.Draft{}, amount("90"), ledger.SplitEqually, nil)
	assert.ErrorIs(t, err, ledger.ErrNoParticipants)
	assert.Empty(t, svc.Debts(date(2024, time.June, 1)))
}

// =============================================================================
// GROUPS
// =============================================================================

func TestRemoveGroup_ReassignsMembers(t *testing.T) {
	// GIVEN: Three debts in the work group
	svc := newTestService()
	now := date(2024, time.June, 1)
	for i := 0; i < 3; i++ {
		dr := draft("Alice", "10", ledger.IOwe, date(2024, time.May, 1))
		dr.GroupID = "work"
		svc.Add(dr)
	}

	// WHEN: The work group is removed
	require.NoError(t, svc.RemoveGroup("work"))

	// THEN: All three debts fall back to the personal group
	for _, d := range svc.Debts(now) {
		assert.Equal(t, ledger.GroupPersonal, d.GroupID)
	}
	for _, g := range svc.Groups() {
		assert.NotEqual(t, "work", g.ID)
	}
}

func TestRemoveGroup_PersonalIsProtected(t *testing.T) {
	svc := newTestService()
	err := svc.RemoveGroup(ledger.GroupPersonal)
	assert.ErrorIs(t, err, ledger.ErrReservedGroup)

	found := false
	for _, g := range svc.Groups() {
		if g.ID == ledger.GroupPersonal {
			found = true
		}
	}
	assert.True(t, found, "personal group still present")
}

func TestAddGroup(t *testing.T) {
	svc := newTestService()
	g := svc.AddGroup("Trip to Oslo", "amber")

	assert.NotEmpty(t, g.ID)
	groups := svc.Groups()
	assert.Equal(t, "Trip to Oslo", groups[len(groups)-1].Name)
}

// =============================================================================
// READ SURFACE
// =============================================================================

func TestDebts_ReturnsRefreshedCopies(t *testing.T) {
	// GIVEN: A debt accruing 10 per month since mid-January
	svc := newTestService()
	dr := draft("Alice", "100", ledger.OwedToMe, date(2024, time.January, 15))
	dr.FeeConfig = &ledger.FeeConfig{
		Enabled:   true,
		Type:      ledger.FeeFixed,
		Frequency: ledger.FeeMonthly,
		Value:     amount("10"),
	}
	svc.Add(dr)

	// THEN: The observed amount tracks the observation date
	assert.True(t, amount("120").Equal(svc.Debts(date(2024, time.March, 20))[0].Amount))
	assert.True(t, amount("130").Equal(svc.Debts(date(2024, time.April, 20))[0].Amount))

	// AND: Mutating the returned copy never touches live state
	view := svc.Debts(date(2024, time.March, 20))
	view[0].Name = "Hacked"
	view[0].FeeConfig.Value = amount("999")
	assert.Equal(t, "Alice", svc.Debts(date(2024, time.March, 20))[0].Name)
	assert.True(t, amount("120").Equal(svc.Debts(date(2024, time.March, 20))[0].Amount))
}

func TestNames_DistinctFirstSeen(t *testing.T) {
	svc := newTestService()
	svc.Add(draft("Alice", "10", ledger.IOwe, date(2024, time.January, 1)))
	svc.Add(draft("Bob", "10", ledger.IOwe, date(2024, time.January, 2)))
	svc.Add(draft("Alice", "10", ledger.IOwe, date(2024, time.January, 3)))

	assert.Equal(t, []string{"Alice", "Bob"}, svc.Names())
}

// =============================================================================
// PERSISTENCE
// =============================================================================

func TestSaveLoadRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	now := date(2024, time.June, 1)

	svc := service.New(mem, nil)
	svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.May, 1)))
	svc.AddGroup("Trip", "rose")
	require.NoError(t, svc.Save(ctx))

	fresh := service.New(mem, nil)
	require.NoError(t, fresh.Load(ctx))

	debts := fresh.Debts(now)
	require.Len(t, debts, 1)
	assert.Equal(t, "Alice", debts[0].Name)
	assert.Len(t, fresh.Groups(), 4, "three defaults plus Trip")
}

func TestLoad_EmptyStoreSeedsDefaults(t *testing.T) {
	svc := service.New(store.NewMemory(), nil)
	require.NoError(t, svc.Load(context.Background()))

	assert.Empty(t, svc.Debts(date(2024, time.June, 1)))
	assert.Len(t, svc.Groups(), 3)
	assert.Equal(t, ledger.GroupPersonal, svc.Groups()[0].ID)
}
