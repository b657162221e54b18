package stopwatch

import "Stopwatch/internal/models"

type Control int

const (
	ControlToggle Control = iota
	ControlRestart
	ControlFlag
)

func (c Control) String() string {
	switch c {
	case ControlToggle:
		return "toggle"
	case ControlRestart:
		return "restart"
	case ControlFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Display 秒表的显示端，由界面层实现。
// 这些方法可能在计时 goroutine 中被调用，实现方需要自行切换到界面线程。
type Display interface {
	SetTimeText(text string)
	SetLapList(laps []models.LapEntry)
	ShowPlaceholder()
	HidePlaceholder()
	SetControlEnabled(control Control, enabled bool)
	SetRunning(running bool)
}

// NopDisplay 丢弃所有输出，用于命令行等无界面场景
type NopDisplay struct{}

var _ Display = NopDisplay{}

func (NopDisplay) SetTimeText(string) {}
func (NopDisplay) SetLapList([]models.LapEntry) {}
func (NopDisplay) ShowPlaceholder() {}
func (NopDisplay) HidePlaceholder() {}
func (NopDisplay) SetControlEnabled(Control, bool) {}
func (NopDisplay) SetRunning(bool) {}
