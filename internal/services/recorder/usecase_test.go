package recorder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/NordCoder/Uptimer/internal/domain/history"
	"github.com/NordCoder/Uptimer/internal/domain/probe"
	"github.com/NordCoder/Uptimer/internal/repository/kvhistory"
	"github.com/NordCoder/Uptimer/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const target = "https://example.com"

type fakeProber struct {
	mu    sync.Mutex
	next  []probe.Record
	calls int
}

func (f *fakeProber) Probe(_ context.Context, url string) probe.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.next) == 0 {
		return probe.Record{Timestamp: int64(f.calls), Outcome: probe.Success}
	}
	r := f.next[0]
	f.next = f.next[1:]
	return r
}

// flakyStore wraps a real store and lets tests inject failures.
type flakyStore struct {
	HistoryStore
	loads, replaces atomic.Int32
	replaceErrs     []error
	mu              sync.Mutex
}

func (s *flakyStore) Load(ctx context.Context) (history.Snapshot, error) {
	s.loads.Add(1)
	return s.HistoryStore.Load(ctx)
}

func (s *flakyStore) Replace(ctx context.Context, prev history.Snapshot, next history.History) error {
	s.replaces.Add(1)
	s.mu.Lock()
	if len(s.replaceErrs) > 0 {
		err := s.replaceErrs[0]
		s.replaceErrs = s.replaceErrs[1:]
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.HistoryStore.Replace(ctx, prev, next)
}

func newStore() (*kvhistory.Store, *memory.KV) {
	m := memory.NewKV()
	return kvhistory.New(m, "megumiso-uptime", "result"), m
}

func TestRecord_PrependsToExistingHistory(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	old := probe.Record{Timestamp: 100, Outcome: probe.Success, LatencyMillis: 20}
	require.NoError(t, store.WriteHistory(ctx, history.History{old}))

	fresh := probe.Record{Timestamp: 200, Outcome: probe.NoResponse, LatencyMillis: 500}
	uc := NewUsecase(&fakeProber{next: []probe.Record{fresh}}, store, target, 3, nil, nil)

	got, err := uc.Record(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	h, err := store.ReadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, history.History{fresh, old}, h)
}

func TestRecord_NewestFirstAcrossRuns(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	uc := NewUsecase(&fakeProber{}, store, target, 3, nil, nil)

	for i := 0; i < 4; i++ {
		_, err := uc.Record(ctx)
		require.NoError(t, err)
	}

	h, err := store.ReadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, h, 4)
	for i, r := range h {
		assert.Equal(t, int64(4-i), r.Timestamp)
	}
}

func TestRecord_BootstrapsMissingKey(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	core, logs := observer.New(zapcore.InfoLevel)
	uc := NewUsecase(&fakeProber{}, store, target, 3, zap.New(core), nil)

	rec, err := uc.Record(ctx)
	require.NoError(t, err)

	h, err := store.ReadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, history.History{rec}, h)
	assert.Equal(t, 1, logs.FilterMessage("history key absent, starting a new history").Len())
}

func TestRecord_DecodeErrorAborts(t *testing.T) {
	for _, v := range []string{
		`not json`,
		`[{"result":"Success"}]`,
		`[{"timestamp":1,"ping":2}]`,
	} {
		ctx := context.Background()
		store, kv := newStore()
		_, err := kv.Put(ctx, "megumiso-uptime", "result", []byte(v))
		require.NoError(t, err)

		uc := NewUsecase(&fakeProber{}, store, target, 3, nil, nil)
		_, err = uc.Record(ctx)
		require.ErrorIs(t, err, history.ErrDecode, v)
		assert.Equal(t, "decode_error", failureKind(err), v)

		e, err := kv.Get(ctx, "megumiso-uptime", "result")
		require.NoError(t, err)
		assert.Equal(t, v, string(e.Value), "stored value must stay untouched")
	}
}

func TestRecord_WriteFailureIsNotRetried(t *testing.T) {
	ctx := context.Background()
	inner, _ := newStore()
	store := &flakyStore{HistoryStore: inner, replaceErrs: []error{history.ErrWrite}}

	uc := NewUsecase(&fakeProber{}, store, target, 5, nil, nil)
	_, err := uc.Record(ctx)
	require.ErrorIs(t, err, history.ErrWrite)
	assert.EqualValues(t, 1, store.replaces.Load())

	_, err = inner.ReadHistory(ctx)
	assert.ErrorIs(t, err, history.ErrMissingKey)
}

func TestRecord_ConflictRetriesWithSameRecord(t *testing.T) {
	ctx := context.Background()
	inner, _ := newStore()
	store := &flakyStore{HistoryStore: inner, replaceErrs: []error{history.ErrConflict, history.ErrConflict}}
	prober := &fakeProber{}

	uc := NewUsecase(prober, store, target, 5, nil, nil)
	rec, err := uc.Record(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, prober.calls)
	assert.EqualValues(t, 3, store.loads.Load())
	h, err := inner.ReadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, history.History{rec}, h)
}

func TestRecord_ConflictRetriesExhausted(t *testing.T) {
	ctx := context.Background()
	inner, _ := newStore()
	store := &flakyStore{HistoryStore: inner, replaceErrs: []error{history.ErrConflict, history.ErrConflict}}

	uc := NewUsecase(&fakeProber{}, store, target, 2, nil, nil)
	_, err := uc.Record(ctx)
	assert.ErrorIs(t, err, history.ErrConflict)
}

func TestRecord_ConcurrentRecordersBothLand(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	const perRecorder = 5
	var wg sync.WaitGroup
	for w := 0; w < 2; w++ {
		prober := &fakeProber{}
		for i := 0; i < perRecorder; i++ {
			prober.next = append(prober.next, probe.Record{Timestamp: int64(w*100 + i), Outcome: probe.Success})
		}
		uc := NewUsecase(prober, store, target, 50, nil, nil)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perRecorder; i++ {
				_, err := uc.Record(ctx)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	h, err := store.ReadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, h, 2*perRecorder)
	seen := map[int64]bool{}
	for _, r := range h {
		seen[r.Timestamp] = true
	}
	assert.Len(t, seen, 2*perRecorder)
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "decode_error", failureKind(history.ErrDecode))
	assert.Equal(t, "store_unavailable", failureKind(history.ErrUnavailable))
	assert.Equal(t, "write_failure", failureKind(history.ErrWrite))
	assert.Equal(t, "conflict", failureKind(history.ErrConflict))
	assert.Equal(t, "timeout", failureKind(context.DeadlineExceeded))
	assert.Equal(t, "other", failureKind(errors.New("x")))
}
