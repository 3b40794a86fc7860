package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtwise/ledger/ledger"
	"github.com/debtwise/ledger/service"
)

func TestExportImportRoundTrip(t *testing.T) {
	// GIVEN: A ledger with debts, payments and a custom group
	svc := newTestService()
	now := date(2024, time.June, 1)
	added := svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.May, 1)))
	svc.Settle(added[0].ID, amount("40"), date(2024, time.May, 15), now)
	svc.AddGroup("Trip", "rose")

	// WHEN: Exported and imported into a fresh service
	raw, err := svc.Export(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var doc service.Backup
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, service.BackupVersion, doc.Version)
	assert.Equal(t, "2024-06-01T12:00:00Z", doc.ExportDate)

	fresh := newTestService()
	require.NoError(t, fresh.Import(raw))

	// THEN: Debts, history and groups survive intact
	debts := fresh.Debts(now)
	require.Len(t, debts, 1)
	assert.Equal(t, "Alice", debts[0].Name)
	assert.True(t, amount("60").Equal(debts[0].Amount))
	require.Len(t, debts[0].History, 1)
	assert.Len(t, fresh.Groups(), 4)
}

func TestImport_RejectsNonArrayDebts(t *testing.T) {
	// GIVEN: A ledger with existing state
	svc := newTestService()
	svc.Add(draft("Alice", "100", ledger.OwedToMe, date(2024, time.May, 1)))

	// WHEN: A backup with a non-array debts field is imported
	err := svc.Import([]byte(`{"debts": "not-an-array", "groups": []}`))

	// THEN: The import is rejected and current state is untouched
	assert.ErrorIs(t, err, ledger.ErrInvalidBackup)
	debts := svc.Debts(date(2024, time.June, 1))
	require.Len(t, debts, 1)
	assert.Equal(t, "Alice", debts[0].Name)
}

func TestImport_RejectsMalformedJSON(t *testing.T) {
	svc := newTestService()
	err := svc.Import([]byte(`{"debts": [`))
	assert.ErrorIs(t, err, ledger.ErrInvalidBackup)
}

func TestImport_MissingDebtsRejected(t *testing.T) {
	svc := newTestService()
	err := svc.Import([]byte(`{"groups": []}`))
	assert.ErrorIs(t, err, ledger.ErrInvalidBackup)
}

func TestImport_NormalizesLegacyRecords(t *testing.T) {
	// GIVEN: A backup in the oldest format: no originalAmount, icon,
	//        history, groupId or feeConfig
	payload := []byte(`{
		"debts": [
			{"id": "old-1", "name": "Bob", "amount": 55, "type": "I_OWE", "date": "2023-10-01"}
		]
	}`)

	svc := newTestService()
	require.NoError(t, svc.Import(payload))

	d := svc.Debts(date(2024, time.June, 1))[0]
	assert.True(t, amount("55").Equal(d.OriginalAmount))
	assert.Equal(t, ledger.IconDefault, d.Icon)
	assert.Equal(t, ledger.GroupPersonal, d.GroupID)
	assert.NotNil(t, d.History)
	require.NotNil(t, d.FeeConfig)
	assert.False(t, d.FeeConfig.Enabled)
}

func TestImport_RestoresPersonalGroup(t *testing.T) {
	// A backup without groups still leaves the reserved group in place.
	svc := newTestService()
	require.NoError(t, svc.Import([]byte(`{"debts": []}`)))

	groups := svc.Groups()
	require.NotEmpty(t, groups)
	assert.Equal(t, ledger.GroupPersonal, groups[0].ID)
}
