package toast

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPrinter(t *testing.T) {
	color.NoColor = true

	t.Run("print formats level and message", func(t *testing.T) {
		var out bytes.Buffer
		NewPrinter(&out).Print(Toast{Level: LevelWarning, Message: "Question already exists", CreatedAt: time.Date(2026, 1, 2, 9, 30, 5, 0, time.UTC)})
		assert.Equal(t, "[09:30:05] warning Question already exists\n", out.String())
	})

	t.Run("run follows the center", func(t *testing.T) {
		center := NewCenter(time.Minute)
		out := &lockedBuffer{}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = NewPrinter(out).Run(ctx, center)
		}()

		require.Eventually(t, func() bool {
			center.Success("Document uploaded")
			return strings.Contains(out.String(), "Document uploaded")
		}, time.Second, 10*time.Millisecond)

		cancel()
		<-done
	})
}
