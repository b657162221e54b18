package ui

import (
	"fmt"

	"Stopwatch/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatsView struct {
	container *fyne.Container
	lapStats  *widget.Label
}

func NewStatsView() *StatsView {
	sv := &StatsView{
		lapStats: widget.NewLabel(""),
	}
	sv.setup()
	return sv
}

func (sv *StatsView) setup() {
	title := widget.NewLabelWithStyle("计次统计", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	sv.lapStats.TextStyle = fyne.TextStyle{Monospace: true}
	sv.container = container.NewVBox(
		title,
		sv.lapStats,
	)
	sv.Update(nil)
}

// Update 根据当前计次刷新统计，需在界面线程调用
func (sv *StatsView) Update(laps []models.LapEntry) {
	sv.lapStats.SetText(formatLapStats(models.ComputeLapStats(laps)))
}

func formatLapStats(stats models.LapStats) string {
	if stats.Count == 0 {
		return "暂无计次"
	}
	return fmt.Sprintf(
		"计次数量: %d\n"+
			"最快: %s\n"+
			"最慢: %s\n"+
			"平均: %s\n"+
			"最后计次: %s",
		stats.Count,
		stats.Fastest,
		stats.Slowest,
		stats.Average,
		stats.Total,
	)
}

func (sv *StatsView) Container() *fyne.Container {
	return sv.container
}
