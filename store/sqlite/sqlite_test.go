package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rzlpil/attendance-engine/attendance"
)

// White-box tests: malformed-row scenarios need direct access to the
// documents table.

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:", zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// =============================================================================
// PRESENCE DOCUMENTS
// =============================================================================

func TestStore_PresenceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 16): attendance.StatusPresent,
		attendance.NewDate(2025, time.July, 17): attendance.StatusAbsent,
		attendance.NewDate(2025, time.July, 20): attendance.StatusNotApplicable,
	}
	require.NoError(t, s.ReplacePresence(ctx, "rizal", rec))

	loaded, err := s.LoadPresence(ctx, "rizal")
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestStore_ReplaceAllSemantics(t *testing.T) {
	// GIVEN: a stored record with two dates
	// WHEN: saving a record with only one other date
	// THEN: the previous dates are gone (delete-all + reinsert, no merge)

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 16): attendance.StatusPresent,
		attendance.NewDate(2025, time.July, 17): attendance.StatusPresent,
	}))
	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{
		attendance.NewDate(2025, time.August, 1): attendance.StatusAbsent,
	}))

	loaded, err := s.LoadPresence(ctx, "rizal")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, attendance.StatusAbsent, loaded[attendance.NewDate(2025, time.August, 1)])
}

func TestStore_ReplaceDoesNotTouchOtherUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := attendance.NewDate(2025, time.July, 16)
	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{day: attendance.StatusPresent}))
	require.NoError(t, s.ReplacePresence(ctx, "dinda", attendance.PresenceRecord{day: attendance.StatusAbsent}))

	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{}))

	loaded, err := s.LoadPresence(ctx, "dinda")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, loaded[day])
}

func TestStore_MalformedTanggalSkipped(t *testing.T) {
	// A corrupt or foreign-format row must not abort loading the rest of
	// the user's history.

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 26): attendance.StatusPresent,
	}))

	_, err := s.db.Exec(`
		INSERT INTO documents (user, doc_type, tanggal, hadir, created_at)
		VALUES ('rizal', 'kehadiran', '26 Juli 2025', 1, '')
	`)
	require.NoError(t, err)

	loaded, err := s.LoadPresence(ctx, "rizal")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, attendance.StatusPresent, loaded[attendance.NewDate(2025, time.July, 26)])
}

func TestStore_NotesDocumentExcludedFromPresence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveNotes(ctx, "rizal", "cuti minggu depan"))
	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 16): attendance.StatusPresent,
	}))

	loaded, err := s.LoadPresence(ctx, "rizal")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)

	// Replace-all must leave the notes document alone.
	notes, err := s.LoadNotes(ctx, "rizal")
	require.NoError(t, err)
	assert.Equal(t, "cuti minggu depan", notes)
}

// =============================================================================
// NOTES DOCUMENT
// =============================================================================

func TestStore_NotesUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	notes, err := s.LoadNotes(ctx, "rizal")
	require.NoError(t, err)
	assert.Equal(t, "", notes)

	require.NoError(t, s.SaveNotes(ctx, "rizal", "first"))
	require.NoError(t, s.SaveNotes(ctx, "rizal", "second"))

	notes, err = s.LoadNotes(ctx, "rizal")
	require.NoError(t, err)
	assert.Equal(t, "second", notes)

	var count int
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM documents WHERE user = 'rizal' AND doc_type = 'catatan'`,
	).Scan(&count))
	assert.Equal(t, 1, count, "upsert must keep a single notes row")
}

func TestStore_Users(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplacePresence(ctx, "rizal", attendance.PresenceRecord{
		attendance.NewDate(2025, time.July, 16): attendance.StatusPresent,
	}))
	require.NoError(t, s.SaveNotes(ctx, "dinda", "catatan"))

	users, err := s.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dinda", "rizal"}, users)
}
