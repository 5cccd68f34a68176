package keystone

import (
	"testing"

	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filesBody = `[
	{"id": 1, "filename": "policy.pdf", "uploaded_at": "2026-02-01T00:00:00Z", "size": 1200},
	{"id": 2, "file_name": "rates.xlsx", "created_at": "2026-03-01T00:00:00Z"}
]`

func TestFetchKeystoneFiles(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/keystone", testutil.OK(filesBody))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchKeystoneFiles{})
	c.Drain()

	files := Files(m.State())
	require.Len(t, files, 2)
	assert.Equal(t, "rates.xlsx", files[0].Filename)
	assert.Equal(t, int64(1200), files[1].Size)
}

func TestUploadAndDeleteKeystoneFile(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/keystone", testutil.OK(filesBody)).
		On("POST", "/keystone/upload", testutil.OK(`{}`)).
		On("DELETE", "/keystone/1", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.UploadKeystoneFile{Filename: "terms.pdf", Content: []byte("%PDF")})
	c.Drain()
	assert.Equal(t, []workflow.Kind{intent.KindFetchKeystoneFiles}, h.Dispatched.Kinds())

	c.Dispatch(intent.FetchKeystoneFiles{})
	c.Drain()
	c.Dispatch(intent.DeleteKeystoneFile{ID: 1})
	c.Drain()

	files := Files(m.State())
	require.Len(t, files, 1)
	assert.Equal(t, 2, files[0].ID)
}

func TestViewKeystoneFile(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/keystone", testutil.OK(filesBody)).
		On("GET", "/keystone/1/download", testutil.Reply{Body: "%PDF", Header: map[string]string{"Content-Type": "application/pdf"}})
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchKeystoneFiles{})
	c.Drain()
	c.Dispatch(intent.ViewKeystoneFile{ID: 1})
	c.Drain()

	view := Viewer(m.State())
	require.NotNil(t, view)
	assert.Equal(t, "policy.pdf", view.Filename)
	assert.Equal(t, "application/pdf", view.ContentType)
	_, ok := h.Blobs.Open(view.URL)
	require.True(t, ok)

	c.Dispatch(intent.CloseKeystoneView{})
	c.Drain()

	assert.Nil(t, Viewer(m.State()))
	_, ok = h.Blobs.Open(view.URL)
	assert.False(t, ok)
}

func TestViewKeystoneFileFailure(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/keystone/3/download", testutil.Status(404, `{"detail": "File missing"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.ViewKeystoneFile{ID: 3})
	c.Drain()

	assert.Nil(t, Viewer(m.State()))
	assert.Equal(t, "File missing", m.State().View.Error)
}
