package recyclebin

import (
	"testing"

	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trashBody = `[
	{"id": 1, "filename": "a.pdf", "deleted_at": "2026-01-02T10:00:00Z"},
	{"id": 2, "file_name": "b.pdf", "deleted_at": "2026-01-05 08:30:00"},
	{"id": 3, "filename": "c.pdf", "deleted_at": "2026-01-03"}
]`

func TestEntriesNewestFirst(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/recycle-bin", testutil.OK(trashBody))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchTrash{})
	c.Drain()

	entries := Entries(m.State())
	require.Len(t, entries, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{entries[0].ID, entries[1].ID, entries[2].ID})
	assert.Equal(t, "b.pdf", entries[0].Filename)
	assert.Equal(t, 1, m.State().Entries[0].ID)
}

func TestRestoreInvalidatesLists(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/recycle-bin", testutil.OK(trashBody)).
		On("POST", "/recycle-bin/2/restore", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchTrash{})
	c.Drain()
	c.Dispatch(intent.RestoreDocument{ID: 2})
	c.Drain()

	assert.Len(t, m.State().Entries, 2)
	assert.False(t, m.State().Restoring.Has("2"))
	assert.Equal(t, []workflow.Kind{intent.KindFetchDocuments, intent.KindFetchLibrary, intent.KindFetchTrash}, h.Dispatched.Kinds())
	assert.Equal(t, []string{"success:Document restored"}, h.Messages())
}

func TestPurgeAndEmpty(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/recycle-bin", testutil.OK(trashBody)).
		On("DELETE", "/recycle-bin/1", testutil.OK(`{}`)).
		On("DELETE", "/recycle-bin", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchTrash{})
	c.Drain()
	c.Dispatch(intent.PurgeDocument{ID: 1})
	c.Drain()
	require.Len(t, m.State().Entries, 2)

	c.Dispatch(intent.EmptyTrash{})
	c.Drain()
	assert.Empty(t, m.State().Entries)
	assert.True(t, m.State().Emptying.Success)
	assert.Empty(t, h.Dispatched.Kinds())
}

func TestRestoreFailure(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/recycle-bin/4/restore", testutil.Status(404, `{"detail": "Not in recycle bin"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.RestoreDocument{ID: 4})
	c.Drain()

	assert.Equal(t, "Not in recycle bin", m.State().ActionError)
	assert.Equal(t, []string{"error:Not in recycle bin"}, h.Messages())
	assert.Empty(t, h.Dispatched.Kinds())
}
