package sweepers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticQuotes struct {
	ids []string
	err error
}

func (q staticQuotes) ListQuotes(ctx context.Context) ([]string, error) {
	return q.ids, q.err
}

type recordingSyncer struct {
	mu     sync.Mutex
	calls  []string
	pushed map[string]int
	fail   map[string]error
}

func (r *recordingSyncer) SyncMirror(ctx context.Context, quoteID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, quoteID)
	return r.pushed[quoteID], r.fail[quoteID]
}

func (r *recordingSyncer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSweepContinuesPastFailures(t *testing.T) {
	logger := zerolog.Nop()
	boom := errors.New("mirror down")
	syncer := &recordingSyncer{
		pushed: map[string]int{"a": 2, "c": 1},
		fail:   map[string]error{"b": boom},
	}
	s := NewMirrorSweeper(staticQuotes{ids: []string{"a", "b", "c"}}, syncer, &logger, time.Minute)

	pushed, err := s.Sweep(context.Background())
	assert.Equal(t, 3, pushed)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "b", "c"}, syncer.calls)
}

func TestSweepListFailure(t *testing.T) {
	logger := zerolog.Nop()
	syncer := &recordingSyncer{}
	s := NewMirrorSweeper(staticQuotes{err: errors.New("disk gone")}, syncer, &logger, time.Minute)

	_, err := s.Sweep(context.Background())
	require.Error(t, err)
	assert.Empty(t, syncer.calls)
}

func TestStartRunsUntilStopped(t *testing.T) {
	logger := zerolog.Nop()
	syncer := &recordingSyncer{}
	s := NewMirrorSweeper(staticQuotes{ids: []string{"a"}}, syncer, &logger, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return syncer.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
