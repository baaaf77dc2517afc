package progress

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_NilSafe(t *testing.T) {
	var tr *Tracker
	tr.FileScanned(10)
	tr.FileHashed()
	tr.Error()
	assert.Equal(t, Snapshot{}, tr.Snapshot())
}

func TestTracker_ConcurrentUpdates(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.FileScanned(2)
				tr.FileHashed()
			}
		}()
	}
	wg.Wait()
	tr.Error()

	snap := tr.Snapshot()
	assert.Equal(t, uint64(800), snap.FilesScanned)
	assert.Equal(t, uint64(1600), snap.BytesScanned)
	assert.Equal(t, uint64(800), snap.FilesHashed)
	assert.Equal(t, uint64(1), snap.Errors)
}

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

func TestSpinner_RendersAndClears(t *testing.T) {
	tr := NewTracker()
	tr.FileScanned(2048)

	out := &syncBuffer{}
	s := NewSpinner(tr, out, 100)
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
	s.Stop()

	got := out.String()
	assert.Contains(t, got, "1 files (2.0 KiB) scanned, 0 hashed")
	assert.True(t, strings.HasSuffix(got, "\r\033[K"))
}

func TestEnabled_QuietOrNotTerminal(t *testing.T) {
	assert.False(t, Enabled(nil, false))
	assert.False(t, Enabled(nil, true))
}
