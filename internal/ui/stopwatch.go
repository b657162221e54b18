package ui

import (
	"image/color"
	"sync"

	"Stopwatch/internal/models"
	"Stopwatch/internal/stopwatch"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
)

const placeholderText = "计次会显示在这里，双击可删除。"

// 定义颜色常量
var (
	timeColor        = color.NRGBA{R: 25, G: 25, B: 25, A: 255}
	placeholderColor = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
)

// Commands 秒表视图触发的命令
type Commands interface {
	OnToggleStartPause()
	OnRestart() error
	OnFlag() error
	OnDeleteLap(index int) error
}

// StopwatchView 秒表界面，实现 stopwatch.Display
type StopwatchView struct {
	container *fyne.Container
	timeLabel *canvas.Text

	toggleButton  *widget.Button
	restartButton *widget.Button
	flagButton    *widget.Button

	lapBox      *fyne.Container
	lapScroll   *container.Scroll
	placeholder *canvas.Text

	mu       sync.Mutex
	commands Commands
	onLaps   func([]models.LapEntry) // 计次列表变化回调
}

var _ stopwatch.Display = (*StopwatchView)(nil)

// NewStopwatchView 创建秒表界面，需调用 Bind 绑定命令
func NewStopwatchView() *StopwatchView {
	v := &StopwatchView{}

	v.timeLabel = canvas.NewText(models.TimeValue{}.String(), timeColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	v.timeLabel.TextSize = 36
	v.timeLabel.Alignment = fyne.TextAlignCenter

	v.toggleButton = widget.NewButtonWithIcon("开始", theme.MediaPlayIcon(), func() {
		if c := v.bound(); c != nil {
			c.OnToggleStartPause()
		}
	})
	v.toggleButton.Importance = widget.HighImportance

	v.restartButton = widget.NewButtonWithIcon("重新开始", theme.MediaReplayIcon(), func() {
		if c := v.bound(); c != nil {
			if err := c.OnRestart(); err != nil {
				log.Warn("restart failed", "err", err)
			}
		}
	})
	v.restartButton.Importance = widget.MediumImportance
	v.restartButton.Disable()

	v.flagButton = widget.NewButtonWithIcon("计次", theme.ContentAddIcon(), func() {
		if c := v.bound(); c != nil {
			if err := c.OnFlag(); err != nil {
				log.Warn("lap failed", "err", err)
			}
		}
	})
	v.flagButton.Importance = widget.MediumImportance
	v.flagButton.Disable()

	v.placeholder = canvas.NewText(placeholderText, placeholderColor)
	v.placeholder.TextSize = 12
	v.placeholder.Alignment = fyne.TextAlignCenter

	v.lapBox = container.NewVBox(v.placeholder)
	v.lapScroll = container.NewVScroll(v.lapBox)
	v.lapScroll.SetMinSize(fyne.NewSize(0, 240))

	// 创建控制按钮容器
	controls := container.NewGridWithColumns(3,
		v.toggleButton,
		v.restartButton,
		v.flagButton,
	)

	v.container = container.NewBorder(
		container.NewVBox(
			container.NewPadded(v.timeLabel),
			controls,
			widget.NewSeparator(),
		),
		nil, nil, nil,
		v.lapScroll,
	)
	return v
}

// Bind 绑定命令处理方
func (v *StopwatchView) Bind(commands Commands) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.commands = commands
}

// SetOnLapsChanged 设置计次列表变化回调，在界面线程中调用
func (v *StopwatchView) SetOnLapsChanged(callback func([]models.LapEntry)) {
	v.onLaps = callback
}

func (v *StopwatchView) bound() Commands {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.commands
}

func (v *StopwatchView) Container() *fyne.Container {
	return v.container
}

func (v *StopwatchView) SetTimeText(text string) {
	fyne.Do(func() {
		v.timeLabel.Text = text
		v.timeLabel.Refresh()
	})
}

func (v *StopwatchView) SetLapList(laps []models.LapEntry) {
	laps = append([]models.LapEntry(nil), laps...)
	fyne.Do(func() {
		v.renderLaps(laps)
		if v.onLaps != nil {
			v.onLaps(laps)
		}
	})
}

func (v *StopwatchView) renderLaps(laps []models.LapEntry) {
	objects := make([]fyne.CanvasObject, 0, len(laps)+1)
	if v.placeholderVisible() {
		objects = append(objects, v.placeholder)
	}
	for _, lap := range laps {
		index := lap.Index
		objects = append(objects, newLapRow(lap.Label(), func() {
			if c := v.bound(); c != nil {
				if err := c.OnDeleteLap(index); err != nil {
					log.Warn("delete lap failed", "index", index, "err", err)
				}
			}
		}))
	}
	v.lapBox.Objects = objects
	v.lapBox.Refresh()
	v.lapScroll.ScrollToBottom()
}

func (v *StopwatchView) placeholderVisible() bool {
	return len(v.lapBox.Objects) > 0 && v.lapBox.Objects[0] == v.placeholder
}

func (v *StopwatchView) ShowPlaceholder() {
	fyne.Do(func() {
		if v.placeholderVisible() {
			return
		}
		v.lapBox.Objects = append([]fyne.CanvasObject{v.placeholder}, v.lapBox.Objects...)
		v.lapBox.Refresh()
	})
}

func (v *StopwatchView) HidePlaceholder() {
	fyne.Do(func() {
		if !v.placeholderVisible() {
			return
		}
		v.lapBox.Objects = v.lapBox.Objects[1:]
		v.lapBox.Refresh()
	})
}

func (v *StopwatchView) SetControlEnabled(control stopwatch.Control, enabled bool) {
	var button *widget.Button
	switch control {
	case stopwatch.ControlToggle:
		button = v.toggleButton
	case stopwatch.ControlRestart:
		button = v.restartButton
	case stopwatch.ControlFlag:
		button = v.flagButton
	default:
		return
	}

	fyne.Do(func() {
		if enabled {
			button.Enable()
		} else {
			button.Disable()
		}
	})
}

func (v *StopwatchView) SetRunning(running bool) {
	fyne.Do(func() {
		if running {
			v.toggleButton.SetIcon(theme.MediaPauseIcon())
			v.toggleButton.SetText("暂停")
		} else {
			v.toggleButton.SetIcon(theme.MediaPlayIcon())
			v.toggleButton.SetText("开始")
		}
	})
}

// lapRow 双击即删除的计次行
type lapRow struct {
	widget.Label
	onDelete func()
}

var _ fyne.DoubleTappable = (*lapRow)(nil)

func newLapRow(text string, onDelete func()) *lapRow {
	row := &lapRow{onDelete: onDelete}
	row.ExtendBaseWidget(row)
	row.TextStyle = fyne.TextStyle{Monospace: true}
	row.SetText(text)
	return row
}

func (r *lapRow) DoubleTapped(*fyne.PointEvent) {
	if r.onDelete != nil {
		r.onDelete()
	}
}
