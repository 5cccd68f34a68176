package library

import (
	"testing"

	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryBody = `[
	{"id": 1, "filename": "old-rfp.pdf", "category": "history"},
	{"id": 2, "filename": "clean.docx", "category": "clean"},
	{"id": 3, "filename": "deck.pptx", "category": "training"},
	{"id": 4, "filename": "notes.pdf", "category": "learning"},
	{"id": 5, "filename": "more.pdf", "category": "history"},
	{"id": 6, "filename": "odd.bin", "category": "archive"}
]`

func TestFetchLibraryPartitions(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/library", testutil.OK(libraryBody))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchLibrary{})
	c.Drain()

	s := m.State()
	assert.Equal(t, map[entity.Category]int{
		entity.CategoryHistory:  2,
		entity.CategoryClean:    1,
		entity.CategoryTraining: 1,
		entity.CategoryLearning: 1,
	}, Counts(s))
	assert.Equal(t, "deck.pptx", Bucket(s, entity.CategoryTraining)[0].Filename)
	require.Len(t, Bucket(s, "archive"), 1)
	assert.Equal(t, "odd.bin", Bucket(s, "archive")[0].Filename)
	assert.Nil(t, Bucket(s, "scratch"))
}

func TestMoveLibraryAsset(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/library", testutil.OK(libraryBody)).
		On("PUT", "/library/1", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchLibrary{})
	c.Drain()
	c.Dispatch(intent.MoveLibraryAsset{ID: 1, Category: "clean"})
	c.Drain()

	s := m.State()
	assert.Len(t, Bucket(s, entity.CategoryHistory), 1)
	require.Len(t, Bucket(s, entity.CategoryClean), 2)
	assert.Equal(t, entity.CategoryClean, Bucket(s, entity.CategoryClean)[1].Category)
	assert.False(t, s.Moving.Has("1"))

	var body map[string]string
	h.Backend.CallsTo("PUT", "/library/1")[0].JSON(t, &body)
	assert.Equal(t, map[string]string{"category": "clean"}, body)
}

func TestDeleteLibraryAsset(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/library", testutil.OK(libraryBody)).
		On("DELETE", "/library/3", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchLibrary{})
	c.Drain()
	c.Dispatch(intent.DeleteLibraryAsset{ID: 3})
	c.Drain()

	assert.Empty(t, Bucket(m.State(), entity.CategoryTraining))
	assert.Len(t, Bucket(m.State(), "archive"), 1)
	assert.Equal(t, []workflow.Kind{intent.KindFetchTrash}, h.Dispatched.Kinds())
}

func TestUploadLibraryAsset(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/library/upload", testutil.OK(`{"id": 9, "filename": "guide.pdf", "category": "learning"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.UploadLibraryAsset{Category: "learning", Filename: "guide.pdf", Content: []byte("%PDF")})
	c.Drain()

	assert.True(t, m.State().Upload.Success)
	assert.Equal(t, []workflow.Kind{intent.KindFetchLibrary}, h.Dispatched.Kinds())
	calls := h.Backend.CallsTo("POST", "/library/upload")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Header.Get("Content-Type"), "multipart/form-data")
	assert.Contains(t, string(calls[0].Body), "guide.pdf")
}

func TestUploadLibraryAssetValidation(t *testing.T) {
	h := testutil.New(t)
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.UploadLibraryAsset{Category: "archive", Filename: "x.pdf", Content: []byte("x")})
	c.Drain()

	assert.Empty(t, h.Backend.Calls())
	assert.Contains(t, m.State().UploadFields, "category")
}
