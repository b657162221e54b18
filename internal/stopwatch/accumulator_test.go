package stopwatch

import (
	"sync"
	"testing"
	"time"

	"Stopwatch/internal/models"
	"Stopwatch/internal/storage"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccumulator(store storage.KeyValueStore) (*TimeAccumulator, *recordingDisplay, *sync.Mutex) {
	mu := &sync.Mutex{}
	display := newRecordingDisplay()
	return NewTimeAccumulator(mu, display, store, 0), display, mu
}

func TestTimeAccumulatorTick(t *testing.T) {
	store := storage.NewMemoryStore()
	acc, display, _ := newTestAccumulator(store)

	var ticks int
	acc.SetOnTick(func(models.TimeValue) { ticks++ })

	for i := 0; i < 150; i++ {
		require.NoError(t, acc.Tick())
	}

	assert.Equal(t, models.TimeValue{Seconds: 1, Centiseconds: 50}, acc.Value())
	assert.Equal(t, int64(150), acc.Centiseconds())
	assert.Equal(t, "00:00:01:50", display.Time())
	assert.Equal(t, "00:00:01:50", acc.Format())
	assert.Equal(t, 150, ticks)

	saved, ok, err := store.GetString(storage.KeyCentiseconds)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "150", saved)
}

func TestTimeAccumulatorCarry(t *testing.T) {
	tests := []struct {
		ticks int
		want  models.TimeValue
	}{
		{100, models.TimeValue{Seconds: 1}},
		{6000, models.TimeValue{Minutes: 1}},
		{360000, models.TimeValue{Hours: 1}},
	}

	for _, tt := range tests {
		acc, _, _ := newTestAccumulator(storage.NewMemoryStore())
		for i := 0; i < tt.ticks; i++ {
			require.NoError(t, acc.Tick())
		}
		assert.Equal(t, tt.want, acc.Value())
	}
}

func TestTimeAccumulatorRestore(t *testing.T) {
	tests := []struct {
		name  string
		saved *string
		want  models.TimeValue
		ok    bool
	}{
		{"有效值", ptr("6150"), models.TimeValue{Minutes: 1, Seconds: 1, Centiseconds: 50}, true},
		{"缺失", nil, models.TimeValue{}, false},
		{"非数字", ptr("abc"), models.TimeValue{}, false},
		{"负数", ptr("-5"), models.TimeValue{}, false},
		{"零", ptr("0"), models.TimeValue{}, false},
		{"空字符串", ptr(""), models.TimeValue{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if tt.saved != nil {
				require.NoError(t, store.SetString(storage.KeyCentiseconds, *tt.saved))
			}
			acc, display, _ := newTestAccumulator(store)

			assert.Equal(t, tt.ok, acc.Restore())
			assert.Equal(t, tt.want, acc.Value())
			if tt.ok {
				assert.Equal(t, tt.want.String(), display.Time())
			}
		})
	}
}

func TestTimeAccumulatorReset(t *testing.T) {
	store := storage.NewMemoryStore()
	acc, display, _ := newTestAccumulator(store)
	for i := 0; i < 42; i++ {
		require.NoError(t, acc.Tick())
	}

	require.NoError(t, acc.Reset())
	assert.True(t, acc.Value().IsZero())
	assert.Equal(t, "00:00:00:00", display.Time())

	saved, _, err := store.GetString(storage.KeyCentiseconds)
	require.NoError(t, err)
	assert.Equal(t, "0", saved)
}

func TestTimeAccumulatorStoreFailure(t *testing.T) {
	acc, display, _ := newTestAccumulator(failingStore{})

	assert.False(t, acc.Restore())

	err := acc.Tick()
	assert.True(t, errors.Is(err, errStoreDown))
	// 保存失败不影响计时
	assert.Equal(t, "00:00:00:01", display.Time())
}

func TestTimeAccumulatorStartPause(t *testing.T) {
	acc, _, mu := newTestAccumulator(storage.NewMemoryStore())
	ticker := newFakeTicker()
	var interval time.Duration
	acc.SetTicker(func(d time.Duration) Ticker {
		interval = d
		return ticker
	})

	mu.Lock()
	acc.Start()
	acc.Start()
	assert.True(t, acc.Running())
	mu.Unlock()
	assert.Equal(t, DefaultTickInterval, interval)

	ticker.Fire()
	ticker.Fire()
	ticker.Fire()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return acc.Centiseconds() == 3
	}, time.Second, time.Millisecond)

	mu.Lock()
	acc.Pause()
	assert.False(t, acc.Running())
	mu.Unlock()
	acc.Wait()

	assert.True(t, ticker.Stopped())
	assert.Equal(t, int64(3), acc.Centiseconds())
}

func ptr(s string) *string {
	return &s
}
