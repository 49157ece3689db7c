package spinning

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinning(t *testing.T) {
	Period = time.Millisecond
	out := &syncBuffer{}
	s := NewWithWriter(context.Background(), out)
	s.SetStatus("episode %d", 7)
	assert.Equal(t, "episode 7", s.Status())
	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("episode 7"))
	}, time.Second, time.Millisecond)
	s.Done()
	s.Done() // Second call is a no-op.
}
