package app

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/vk/argstore/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App writing to fresh buffers, with a fixed clock
// and run id so that stamped records are deterministic.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()
	out, logs := &SafeBuffer{}, &SafeBuffer{}
	a := NewApp(out, logs, cfg, loader)
	a.now = func() time.Time { return TestStartTime }
	a.runID = func() string { return TestRunID }
	return a, out, logs
}

// Values used by SetupAppTest.
var (
	TestStartTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	TestRunID     = "00000000-0000-0000-0000-000000000001"
)
