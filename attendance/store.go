/*
store.go - Persistence interface for presence records and notes

PURPOSE:
  Defines the interface between the attendance engine and the durable store.
  The original system keeps one flat document collection per office, holding
  presence documents {user, tanggal, hadir} plus one notes document
  {user, type: "catatan", catatan} per user. The interface preserves those
  semantics:

  - Loading a user's presence filters out the notes document by its type tag.
  - Saving is replace-all, not incremental: delete every non-notes document
    for the user, then reinsert the full current set.
  - Notes are a single upserted document per user.

CONCURRENCY:
  Single writer per user is assumed; concurrent edits are last-write-wins.
  No optimistic concurrency, no locking beyond what implementations need
  for their own connection safety.

IMPLEMENTATIONS:
  - store/sqlite: production store (single documents table)
  - attendance/store: in-memory store for testing/dev
*/
package attendance

import "context"

// Document type tags, preserved from the stored record shapes.
const (
	DocTypePresence = "kehadiran"
	DocTypeNotes    = "catatan"
)

// Store persists per-user presence records and free-text notes.
type Store interface {
	// LoadPresence reconstructs a user's presence record from its stored
	// documents, skipping the notes document and any document whose tanggal
	// cannot be parsed. A user with no documents yields an empty record,
	// not an error.
	LoadPresence(ctx context.Context, user string) (PresenceRecord, error)

	// ReplacePresence persists the full record with replace-all semantics:
	// every non-notes document for the user is deleted, then the record is
	// reinserted in full.
	ReplacePresence(ctx context.Context, user string, rec PresenceRecord) error

	// LoadNotes returns the user's notes, or "" when none are stored.
	LoadNotes(ctx context.Context, user string) (string, error)

	// SaveNotes upserts the user's single notes document.
	SaveNotes(ctx context.Context, user string, notes string) error

	// Users lists every user with at least one stored document.
	Users(ctx context.Context) ([]string, error)
}

// HadirValue maps a status to the stored hadir field: true for Present,
// false for Absent, nil for NotApplicable.
func HadirValue(s Status) *bool {
	switch s {
	case StatusPresent:
		v := true
		return &v
	case StatusAbsent:
		v := false
		return &v
	default:
		return nil
	}
}

// StatusFromHadir is the inverse of HadirValue.
func StatusFromHadir(hadir *bool) Status {
	switch {
	case hadir == nil:
		return StatusNotApplicable
	case *hadir:
		return StatusPresent
	default:
		return StatusAbsent
	}
}
