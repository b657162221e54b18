package ui

import (
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// speaker 只能初始化一次
var speakerOnce sync.Once

// LapSound 计次提示音
type LapSound struct {
	buffer *beep.Buffer
	volume float64
}

// LoadLapSound 读取 wav 文件并初始化音频输出
func LoadLapSound(path string, volume float64) (*LapSound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open lap sound")
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode lap sound")
	}
	defer streamer.Close()

	var initErr error
	speakerOnce.Do(func() {
		initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return nil, errors.Wrap(initErr, "init speaker")
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &LapSound{buffer: buffer, volume: volume}, nil
}

// Play 异步播放，不阻塞调用方
func (s *LapSound) Play() {
	if s == nil || s.buffer.Len() == 0 {
		return
	}
	streamer := s.buffer.Streamer(0, s.buffer.Len())

	// 创建音量控制器
	speaker.Play(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   s.volume,
		Silent:   false,
	})
}
