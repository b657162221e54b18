package ui

import (
	"testing"

	"Stopwatch/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type fakeCommands struct {
	toggles  int
	restarts int
	flags    int
	deleted  []int
}

func (f *fakeCommands) OnToggleStartPause() { f.toggles++ }

func (f *fakeCommands) OnRestart() error {
	f.restarts++
	return errors.New("running")
}

func (f *fakeCommands) OnFlag() error {
	f.flags++
	return nil
}

func (f *fakeCommands) OnDeleteLap(index int) error {
	f.deleted = append(f.deleted, index)
	return nil
}

func TestStopwatchViewButtons(t *testing.T) {
	test.NewTempApp(t)

	v := NewStopwatchView()
	commands := &fakeCommands{}

	// 未绑定时点击不做任何事
	test.Tap(v.toggleButton)
	assert.Equal(t, 0, commands.toggles)

	v.Bind(commands)
	test.Tap(v.toggleButton)
	assert.Equal(t, 1, commands.toggles)

	// 初始状态下重新开始和计次都不可用
	test.Tap(v.restartButton)
	test.Tap(v.flagButton)
	assert.Equal(t, 0, commands.restarts)
	assert.Equal(t, 0, commands.flags)

	v.restartButton.Enable()
	v.flagButton.Enable()
	test.Tap(v.restartButton)
	test.Tap(v.flagButton)
	assert.Equal(t, 1, commands.restarts)
	assert.Equal(t, 1, commands.flags)
}

func TestStopwatchViewInitialState(t *testing.T) {
	test.NewTempApp(t)

	v := NewStopwatchView()
	assert.Equal(t, "00:00:00:00", v.timeLabel.Text)
	assert.True(t, v.placeholderVisible())
	assert.NotNil(t, v.Container())
}

func TestLapRowDoubleTap(t *testing.T) {
	test.NewTempApp(t)

	var deleted bool
	row := newLapRow("1. 00:00:01:50 (00:00:01:50)", func() { deleted = true })
	assert.Equal(t, "1. 00:00:01:50 (00:00:01:50)", row.Text)

	test.DoubleTap(row)
	assert.True(t, deleted)
}

func TestFormatLapStats(t *testing.T) {
	assert.Equal(t, "暂无计次", formatLapStats(models.LapStats{}))

	stats := models.ComputeLapStats([]models.LapEntry{
		{Index: 0, Absolute: models.FromCentiseconds(150), Delta: models.FromCentiseconds(150)},
		{Index: 1, Absolute: models.FromCentiseconds(200), Delta: models.FromCentiseconds(50)},
	})
	assert.Equal(t,
		"计次数量: 2\n最快: 00:00:00:50\n最慢: 00:00:01:50\n平均: 00:00:01:00\n最后计次: 00:00:02:00",
		formatLapStats(stats))
}

func TestLoadLapSoundMissingFile(t *testing.T) {
	_, err := LoadLapSound("does-not-exist.wav", 0)
	assert.Error(t, err)

	// nil 提示音可以安全播放
	var sound *LapSound
	sound.Play()
}
