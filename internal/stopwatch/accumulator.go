package stopwatch

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"Stopwatch/internal/models"
	"Stopwatch/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// DefaultTickInterval 每次 tick 前进一个厘秒
const DefaultTickInterval = 10 * time.Millisecond

// TimeAccumulator 累计已走过的时间。
// 除构造与 Wait 外的方法都要求调用方持有 mu。
type TimeAccumulator struct {
	mu       sync.Locker
	value    models.TimeValue
	display  Display
	store    storage.KeyValueStore
	interval time.Duration
	newTick  TickerFunc
	onTick   func(models.TimeValue) // tick 完成后的回调

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewTimeAccumulator(mu sync.Locker, display Display, store storage.KeyValueStore, interval time.Duration) *TimeAccumulator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TimeAccumulator{
		mu:       mu,
		display:  display,
		store:    store,
		interval: interval,
		newTick:  NewRealTicker,
	}
}

// SetTicker 替换触发源，需在 Start 之前调用
func (a *TimeAccumulator) SetTicker(fn TickerFunc) {
	a.newTick = fn
}

// SetOnTick 设置 tick 回调
func (a *TimeAccumulator) SetOnTick(callback func(models.TimeValue)) {
	a.onTick = callback
}

// Restore 从存储恢复累计时间，成功时返回 true。
// 值缺失、非数字或为 0 时保持从零开始。
func (a *TimeAccumulator) Restore() bool {
	raw, ok, err := a.store.GetString(storage.KeyCentiseconds)
	if err != nil {
		log.Warn("failed to read saved time", "err", err)
		return false
	}
	if !ok {
		return false
	}

	total, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || total < 0 {
		log.Warn("ignoring malformed saved time", "value", raw)
		return false
	}
	if total == 0 {
		return false
	}

	a.value = models.FromCentiseconds(total)
	a.display.SetTimeText(a.value.String())
	return true
}

// Tick 前进一个厘秒，刷新显示并保存总厘秒数
func (a *TimeAccumulator) Tick() error {
	a.value = a.value.Advance()
	a.display.SetTimeText(a.value.String())
	if a.onTick != nil {
		a.onTick(a.value)
	}
	return a.persist()
}

// Start 开始周期性 tick，已在运行时不做任何事
func (a *TimeAccumulator) Start() {
	if a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	ticker := a.newTick(a.interval)
	a.wg.Add(1)
	go a.run(ctx, ticker)
}

func (a *TimeAccumulator) run(ctx context.Context, ticker Ticker) {
	defer a.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			a.mu.Lock()
			// Pause 可能在等待锁期间发生
			if ctx.Err() == nil {
				if err := a.Tick(); err != nil {
					log.Warn("failed to save elapsed time", "err", err)
				}
			}
			a.mu.Unlock()
		}
	}
}

// Pause 停止 tick，保留当前时间
func (a *TimeAccumulator) Pause() {
	if a.cancel == nil {
		return
	}
	a.cancel()
	a.cancel = nil
}

// Wait 等待计时 goroutine 退出，调用方不能持有 mu
func (a *TimeAccumulator) Wait() {
	a.wg.Wait()
}

func (a *TimeAccumulator) Running() bool {
	return a.cancel != nil
}

// Reset 归零并保存
func (a *TimeAccumulator) Reset() error {
	a.value = models.TimeValue{}
	a.display.SetTimeText(a.value.String())
	return a.persist()
}

func (a *TimeAccumulator) Value() models.TimeValue {
	return a.value
}

func (a *TimeAccumulator) Centiseconds() int64 {
	return a.value.Total()
}

func (a *TimeAccumulator) Format() string {
	return a.value.String()
}

func (a *TimeAccumulator) persist() error {
	err := a.store.SetString(storage.KeyCentiseconds, strconv.FormatInt(a.value.Total(), 10))
	return errors.Wrap(err, "save elapsed time")
}
