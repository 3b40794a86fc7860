/*
backup.go - Whole-ledger export and import

PURPOSE:
  One portable JSON document carries the entire ledger: every debt,
  every group, an export timestamp, and the format version. Import is
  the inverse and the only write path that validates its input; it is
  all-or-nothing so a bad file can never leave the ledger half-replaced.

FORMAT:
  {
    "debts":      [...],
    "groups":     [...],
    "exportDate": "2024-06-01T00:00:00Z",
    "version":    "1.0.0"
  }
*/
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/debtwise/ledger/ledger"
)

// BackupVersion identifies the export document format.
const BackupVersion = "1.0.0"

// Backup is the export document.
type Backup struct {
	Debts      []ledger.Debt  `json:"debts"`
	Groups     []ledger.Group `json:"groups"`
	ExportDate string         `json:"exportDate"`
	Version    string         `json:"version"`
}

// Export renders the current ledger as a backup document.
func (s *Service) Export(exportedAt time.Time) ([]byte, error) {
	s.mu.RLock()
	backup := Backup{
		Debts:      make([]ledger.Debt, len(s.debts)),
		Groups:     append([]ledger.Group{}, s.groups...),
		ExportDate: exportedAt.UTC().Format(time.RFC3339),
		Version:    BackupVersion,
	}
	for i := range s.debts {
		backup.Debts[i] = copyDebt(&s.debts[i])
	}
	s.mu.RUnlock()

	raw, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	s.log.Info("ledger exported", "debts", len(backup.Debts), "groups", len(backup.Groups))
	return raw, nil
}

// Import replaces the entire ledger with the backup's contents. The
// debts field must be a JSON array or the whole import is rejected with
// ErrInvalidBackup, leaving current state untouched. A missing groups
// field imports as no groups; the personal group is restored either way.
func (s *Service) Import(payload []byte) error {
	var envelope struct {
		Debts  json.RawMessage `json:"debts"`
		Groups []ledger.Group  `json:"groups"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrInvalidBackup, err)
	}
	if !isJSONArray(envelope.Debts) {
		return fmt.Errorf("%w: debts must be an array", ledger.ErrInvalidBackup)
	}

	var debts []ledger.Debt
	if err := json.Unmarshal(envelope.Debts, &debts); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrInvalidBackup, err)
	}
	for i := range debts {
		debts[i].Normalize()
	}

	groups := envelope.Groups
	if groups == nil {
		groups = []ledger.Group{}
	}
	if !hasPersonalGroup(groups) {
		groups = append([]ledger.Group{ledger.DefaultGroups()[0]}, groups...)
	}

	s.mu.Lock()
	s.debts = debts
	s.groups = groups
	s.mu.Unlock()

	s.log.Info("ledger imported", "debts", len(debts), "groups", len(groups))
	return nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func hasPersonalGroup(groups []ledger.Group) bool {
	for _, g := range groups {
		if g.ID == ledger.GroupPersonal {
			return true
		}
	}
	return false
}
