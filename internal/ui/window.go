package ui

import (
	"Stopwatch/internal/config"
	"Stopwatch/internal/models"
	"Stopwatch/internal/stopwatch"
	"Stopwatch/internal/storage"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/charmbracelet/log"
)

type MainWindow struct {
	window    fyne.Window
	view      *StopwatchView
	stats     *StatsView
	stopwatch *stopwatch.Stopwatch
	sound     *LapSound
}

func NewMainWindow(app fyne.App, cfg *config.Config, store storage.KeyValueStore) *MainWindow {
	w := &MainWindow{
		window: app.NewWindow(cfg.App.Name),
		view:   NewStopwatchView(),
		stats:  NewStatsView(),
	}

	w.stopwatch = stopwatch.New(w.view, store, cfg.Stopwatch.TickInterval)
	w.view.Bind(w.stopwatch)
	w.view.SetOnLapsChanged(w.stats.Update)

	if path := cfg.Stopwatch.LapSound; path != "" {
		sound, err := LoadLapSound(path, cfg.Stopwatch.Volume)
		if err != nil {
			log.Warn("lap sound disabled", "path", path, "err", err)
		} else {
			w.sound = sound
			w.stopwatch.SetOnLap(func(models.LapEntry) { w.sound.Play() })
		}
	}

	w.setup()
	w.stopwatch.Load()
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup() {
	tabs := container.NewAppTabs(
		container.NewTabItem("秒表", w.view.Container()),
		container.NewTabItem("统计", w.stats.Container()),
	)

	w.window.SetContent(tabs)
	w.window.Resize(fyne.NewSize(360, 520))
}

// Show 显示窗口并阻塞到窗口关闭
func (w *MainWindow) Show() {
	w.window.ShowAndRun()
	w.stopwatch.Close()
}
