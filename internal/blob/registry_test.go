package blob

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOpenRevoke(t *testing.T) {
	r := NewRegistry(time.Minute)
	url := r.Create([]byte("%PDF"), "application/pdf", "rfp.pdf")
	assert.True(t, strings.HasPrefix(url, "blob:rfp-console/"))
	assert.Equal(t, url, URL(ID(url)))

	obj, ok := r.Open(url)
	require.True(t, ok)
	assert.Equal(t, "rfp.pdf", obj.Filename)
	assert.Equal(t, []byte("%PDF"), obj.Data)

	r.Revoke(url)
	_, ok = r.Open(url)
	assert.False(t, ok)
	assert.Zero(t, r.Len())
}

func TestObjectURLsExpire(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	url := r.Create([]byte("x"), "text/plain", "x.txt")

	assert.Eventually(t, func() bool {
		_, ok := r.Open(url)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
