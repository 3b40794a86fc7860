/*
errors.go - Centralized error values for the ledger core

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  Callers match with errors.Is(); packages wrapping these add context
  with fmt.Errorf("...: %w", err).

ERROR CATEGORIES:
  1. Mutation errors - Business rule violations on write operations
  2. Backup errors - Import/export validation failures
  3. Store errors - Snapshot persistence failures

NOTE:
  Mutations that target a missing debt are deliberately NOT errors: they
  are silent no-ops, so stale references never fail a caller.

SEE ALSO:
  - split.go: Returns ErrNoParticipants / ErrInvalidSplit
  - service: Returns ErrReservedGroup, ErrInvalidBackup
*/
package ledger

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrReservedGroup is returned when attempting to delete the reserved
	// "personal" group, which must always exist.
	ErrReservedGroup = errors.New("personal group cannot be deleted")

	// ErrInvalidBackup is returned when an imported backup document is
	// malformed, most importantly when its debts field is not an array.
	// Import is all-or-nothing: on this error the ledger is untouched.
	ErrInvalidBackup = errors.New("invalid backup payload")

	// ErrNoParticipants is returned when a bill split names nobody.
	ErrNoParticipants = errors.New("split requires at least one participant")

	// ErrInvalidSplit is returned when split parameters are inconsistent,
	// such as an unknown split mode.
	ErrInvalidSplit = errors.New("invalid split parameters")

	// ErrSnapshotFailed is returned when a snapshot cannot be persisted
	// or loaded from the backing store.
	ErrSnapshotFailed = errors.New("snapshot persistence failed")
)
