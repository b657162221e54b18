package stopwatch

import (
	"sync"
	"time"

	"Stopwatch/internal/models"

	"github.com/pkg/errors"
)

// recordingDisplay 记录最近一次输出
type recordingDisplay struct {
	mu          sync.Mutex
	timeText    string
	laps        []models.LapEntry
	placeholder bool
	controls    map[Control]bool
	running     bool
}

var _ Display = (*recordingDisplay)(nil)

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{controls: make(map[Control]bool)}
}

func (d *recordingDisplay) SetTimeText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timeText = text
}

func (d *recordingDisplay) SetLapList(laps []models.LapEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.laps = laps
}

func (d *recordingDisplay) ShowPlaceholder() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.placeholder = true
}

func (d *recordingDisplay) HidePlaceholder() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.placeholder = false
}

func (d *recordingDisplay) SetControlEnabled(control Control, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.controls[control] = enabled
}

func (d *recordingDisplay) SetRunning(running bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = running
}

func (d *recordingDisplay) Time() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timeText
}

func (d *recordingDisplay) Placeholder() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.placeholder
}

func (d *recordingDisplay) Enabled(control Control) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.controls[control]
}

func (d *recordingDisplay) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *recordingDisplay) Laps() []models.LapEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.laps
}

// fakeTicker 由测试手动触发
type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

var _ Ticker = (*fakeTicker)(nil)

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time)}
}

func (f *fakeTicker) C() <-chan time.Time {
	return f.ch
}

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) Stopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func (f *fakeTicker) Fire() {
	f.ch <- time.Now()
}

var errStoreDown = errors.New("store down")

// failingStore 所有操作都失败
type failingStore struct{}

func (failingStore) GetString(string) (string, bool, error) { return "", false, errStoreDown }
func (failingStore) SetString(string, string) error { return errStoreDown }
func (failingStore) Close() error { return nil }
