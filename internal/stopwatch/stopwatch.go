package stopwatch

import (
	"sync"
	"time"

	"Stopwatch/internal/models"
	"Stopwatch/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Stopwatch 将界面命令与计时、计次组合在一起。
// 所有 tick 与命令都在 mu 下串行执行。
type Stopwatch struct {
	mu      sync.Mutex
	timer   *TimeAccumulator
	laps    *LapRecorder
	display Display
	onLap   func(models.LapEntry)
}

// New 创建一个处于暂停状态的秒表，需调用 Load 恢复保存的状态
func New(display Display, store storage.KeyValueStore, interval time.Duration) *Stopwatch {
	s := &Stopwatch{display: display}
	s.timer = NewTimeAccumulator(&s.mu, display, store, interval)
	s.laps = NewLapRecorder(display, store)
	s.timer.SetOnTick(func(models.TimeValue) {
		s.laps.Unlock()
	})
	return s
}

// SetTicker 替换触发源
func (s *Stopwatch) SetTicker(fn TickerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.SetTicker(fn)
}

// SetOnLap 设置计次成功后的回调
func (s *Stopwatch) SetOnLap(callback func(models.LapEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLap = callback
}

// Load 恢复保存的时间与计次，恢复后保持暂停
func (s *Stopwatch) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.display.SetTimeText(s.timer.Format())
	if s.timer.Restore() {
		s.laps.Unlock()
		log.Info("restored elapsed time", "time", s.timer.Format())
	}
	s.laps.Restore()
	s.pause()
}

// OnToggleStartPause 运行时暂停，暂停时开始
func (s *Stopwatch) OnToggleStartPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer.Running() {
		s.pause()
		return
	}
	s.start()
}

func (s *Stopwatch) start() {
	s.timer.Start()
	s.display.SetRunning(true)
	s.display.SetControlEnabled(ControlRestart, false)
	s.display.SetControlEnabled(ControlFlag, !s.laps.Locked())
	log.Debug("stopwatch started", "time", s.timer.Format())
}

func (s *Stopwatch) pause() {
	s.timer.Pause()
	s.display.SetRunning(false)
	s.display.SetControlEnabled(ControlRestart, true)
	s.display.SetControlEnabled(ControlFlag, !s.laps.Locked())
	log.Debug("stopwatch paused", "time", s.timer.Format())
}

// OnRestart 归零并清空计次，运行中返回 ErrRunning
func (s *Stopwatch) OnRestart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer.Running() {
		return ErrRunning
	}

	timerErr := s.timer.Reset()
	lapsErr := s.laps.Clear()
	s.display.SetControlEnabled(ControlRestart, false)
	log.Debug("stopwatch restarted")

	if timerErr != nil {
		return timerErr
	}
	return lapsErr
}

// OnFlag 以当前时间计次。
// 重复或过早的计次被静默忽略，只返回存储错误。
func (s *Stopwatch) OnFlag() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.laps.RecordLap(s.timer.Value())
	if errors.Is(err, ErrFlagLocked) || errors.Is(err, ErrDuplicateLap) || errors.Is(err, ErrNonMonotonicLap) {
		log.Debug("lap ignored", "time", s.timer.Format(), "reason", err)
		return nil
	}

	// 其余错误只可能来自保存，计次本身已经记录
	if s.onLap != nil {
		s.onLap(entry)
	}
	return err
}

// OnDeleteLap 删除指定序号的计次
func (s *Stopwatch) OnDeleteLap(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.laps.DeleteLap(index)
}

// Close 停止计时并等待计时 goroutine 退出
func (s *Stopwatch) Close() {
	s.mu.Lock()
	s.timer.Pause()
	s.mu.Unlock()
	s.timer.Wait()
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Running()
}

func (s *Stopwatch) State() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.timer.Running():
		return models.StateRunning
	case s.timer.Value().IsZero():
		return models.StateIdle
	default:
		return models.StatePaused
	}
}

func (s *Stopwatch) Elapsed() models.TimeValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer.Value()
}

func (s *Stopwatch) Laps() []models.LapEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.laps.Laps()
}
