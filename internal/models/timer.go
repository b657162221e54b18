package models

import (
	"fmt"
)

type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
	StatePaused
)

func (s TimerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// 各字段换算成厘秒的倍数
const (
	CentisecondsPerSecond = 100
	CentisecondsPerMinute = 60 * CentisecondsPerSecond
	CentisecondsPerHour   = 60 * CentisecondsPerMinute
)

// TimeValue 秒表读数，始终保持归一化（小时不设上限）
type TimeValue struct {
	Centiseconds int `json:"centiseconds"`
	Seconds      int `json:"seconds"`
	Minutes      int `json:"minutes"`
	Hours        int `json:"hours"`
}

// FromCentiseconds 将厘秒总数拆分为时/分/秒/厘秒，负数按 0 处理
func FromCentiseconds(total int64) TimeValue {
	if total < 0 {
		return TimeValue{}
	}
	hours := total / CentisecondsPerHour
	total -= hours * CentisecondsPerHour
	minutes := total / CentisecondsPerMinute
	total -= minutes * CentisecondsPerMinute
	seconds := total / CentisecondsPerSecond
	total -= seconds * CentisecondsPerSecond
	return TimeValue{
		Centiseconds: int(total),
		Seconds:      int(seconds),
		Minutes:      int(minutes),
		Hours:        int(hours),
	}
}

// Total 返回厘秒总数
func (v TimeValue) Total() int64 {
	return int64(v.Centiseconds) +
		int64(v.Seconds)*CentisecondsPerSecond +
		int64(v.Minutes)*CentisecondsPerMinute +
		int64(v.Hours)*CentisecondsPerHour
}

// Normalized 判断各字段是否都在取值范围内
func (v TimeValue) Normalized() bool {
	return v.Hours >= 0 &&
		v.Minutes >= 0 && v.Minutes < 60 &&
		v.Seconds >= 0 && v.Seconds < 60 &&
		v.Centiseconds >= 0 && v.Centiseconds < 100
}

// Advance 前进一个厘秒，逐级进位
func (v TimeValue) Advance() TimeValue {
	v.Centiseconds++
	if v.Centiseconds >= 100 {
		v.Centiseconds = 0
		v.Seconds++
	}
	if v.Seconds >= 60 {
		v.Seconds = 0
		v.Minutes++
	}
	if v.Minutes >= 60 {
		v.Minutes = 0
		v.Hours++
	}
	return v
}

// Sub 返回 v - other，结果可能为负，由调用方决定如何处理
func (v TimeValue) Sub(other TimeValue) int64 {
	return v.Total() - other.Total()
}

func (v TimeValue) IsZero() bool {
	return v == TimeValue{}
}

// String 格式化为 HH:MM:SS:CC，小时超过两位时不截断
func (v TimeValue) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", v.Hours, v.Minutes, v.Seconds, v.Centiseconds)
}
