package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"rfp-console/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, TokenFunc(func() string { return token }), true)
}

func TestHeaders(t *testing.T) {
	var got http.Header
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}, "t1")

	require.NoError(t, c.Get(context.Background(), "/rfps", nil, nil))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "Bearer t1", got.Get("Authorization"))
	assert.Equal(t, "true", got.Get("ngrok-skip-browser-warning"))

	require.NoError(t, c.Get(WithToken(context.Background(), "override"), "/rfps", nil, nil))
	assert.Equal(t, "Bearer override", got.Get("Authorization"))
}

func TestNoTokenNoAuthorization(t *testing.T) {
	var got http.Header
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}, "")

	require.NoError(t, c.Delete(context.Background(), "/rfps/1", nil))
	assert.Empty(t, got.Get("Authorization"))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apperror.Kind
		wantMsg  string
	}{
		{"duplicate", apperror.StatusDuplicate, `{"message":{"message":"Y"}}`, apperror.KindDuplicate, "Y"},
		{"unauthorized", 401, `{}`, apperror.KindAuth, apperror.MsgInvalidCredentials},
		{"not found detail", 404, `{"detail":"X"}`, apperror.KindNotFound, "X"},
		{"server", 500, `oops`, apperror.KindServer, apperror.MsgServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "")

			err := c.Post(context.Background(), "/questions", map[string]int{"rfp_id": 1}, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apperror.KindOf(err))
			assert.Equal(t, tt.wantMsg, apperror.Message(err, "fallback"))
		})
	}
}

func TestNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, nil, false)
	err := c.Get(context.Background(), "/rfps", nil, nil)
	assert.Equal(t, apperror.KindNetwork, apperror.KindOf(err))
}

func TestPostFormAndDecode(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"user": "` + r.PostForm.Get("username") + `"}`))
	}, "")

	var out struct {
		User string `json:"user"`
	}
	require.NoError(t, c.PostForm(context.Background(), "/login", url.Values{"username": {"a@b.com"}}, &out))
	assert.Equal(t, "a@b.com", out.User)
}

func TestUpload(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Apollo", r.FormValue("project_name"))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "rfp.pdf", hdr.Filename)
		assert.Equal(t, "%PDF", string(data))
	}, "")

	err := c.Upload(context.Background(), "/upload", map[string]string{"project_name": "Apollo"}, File{Name: "rfp.pdf", Content: []byte("%PDF")}, nil)
	require.NoError(t, err)
}

func TestDownload(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="rfp.pdf"`)
		w.Write([]byte("%PDF-1.4"))
	}, "")

	blob, err := c.Download(context.Background(), "/rfps/3/download")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", blob.ContentType)
	assert.Equal(t, "rfp.pdf", blob.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), blob.Data)
}

func TestPathAndRoute(t *testing.T) {
	assert.Equal(t, "/rfps/7/questions", Path("rfps", 7, "questions"))
	assert.Equal(t, "/rfps/{id}/questions", routeOf("/rfps/7/questions?x=1"))
}
