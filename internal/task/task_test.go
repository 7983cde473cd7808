package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haierkeys/fast-note-history-service/internal/service"
	"github.com/haierkeys/fast-note-history-service/pkg/safe_close"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type everySchedule time.Duration

func (d everySchedule) Next(t time.Time) time.Time { return t.Add(time.Duration(d)) }

type countingTask struct {
	runs     atomic.Int32
	startup  bool
	schedule cron.Schedule
	panicky  bool
}

func (t *countingTask) Name() string            { return "counting" }
func (t *countingTask) Schedule() cron.Schedule { return t.schedule }
func (t *countingTask) IsStartupRun() bool      { return t.startup }
func (t *countingTask) Run(ctx context.Context) error {
	if t.runs.Add(1) == 1 && t.panicky {
		panic("first run")
	}
	return nil
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("off")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseSchedule("")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = ParseSchedule("@every 1h")
	require.NoError(t, err)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(time.Hour), s.Next(now))

	s, err = ParseSchedule("30 3 * * *")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 3, 30, 0, 0, time.UTC), s.Next(now))

	_, err = ParseSchedule("every day")
	assert.Error(t, err)
}

func TestScheduler_RunsAndStops(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{startup: true, schedule: everySchedule(5 * time.Millisecond), panicky: true}
	s.AddTask(task)
	s.Start()

	// the panic of the first run is recovered and the loop keeps going
	require.Eventually(t, func() bool { return task.runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, sc.SendCloseSignalAndWait(nil))
	n := task.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, task.runs.Load())
}

func TestScheduler_StartupOnly(t *testing.T) {
	sc := safe_close.NewSafeClose()
	s := NewScheduler(zap.NewNop(), sc)

	task := &countingTask{startup: true}
	s.AddTask(task)
	s.Start()

	require.NoError(t, sc.SendCloseSignalAndWait(nil))
	assert.Equal(t, int32(1), task.runs.Load())
}

type fakeUsers struct {
	service.UserService
	uids []int64
	err  error
}

func (f *fakeUsers) GetAllUIDs(ctx context.Context) ([]int64, error) {
	return f.uids, f.err
}

type fakeHistory struct {
	service.HistoryService
	mu    sync.Mutex
	calls []int64
	fail  map[int64]bool
}

func (f *fakeHistory) MigrateStored(ctx context.Context, uid int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, uid)
	if f.fail[uid] {
		return 0, errors.New("store down")
	}
	return 1, nil
}

func TestHistoryCompactTask_Run(t *testing.T) {
	users := &fakeUsers{uids: []int64{1, 2, 3}}
	history := &fakeHistory{fail: map[int64]bool{2: true}}
	task := NewHistoryCompactTask(users, history, nil, zap.NewNop())

	assert.Equal(t, "HistoryCompact", task.Name())
	assert.False(t, task.IsStartupRun())

	// a failing user does not stop the others
	require.NoError(t, task.Run(context.Background()))
	assert.Equal(t, []int64{1, 2, 3}, history.calls)

	users.err = errors.New("db down")
	assert.Error(t, task.Run(context.Background()))

	users.err = nil
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, task.Run(ctx), context.Canceled)
}
