package models

import (
	"encoding/json"
	"fmt"
)

// LapEntry 一次计次记录
type LapEntry struct {
	Index    int       // 显示序号（从 0 开始），删除其他记录后保持不变
	Absolute TimeValue // 自开始以来的时间
	Delta    TimeValue // 与上一条仍存在的记录之差
}

// Label 计次在列表中的显示文本
func (e LapEntry) Label() string {
	return fmt.Sprintf("%d. %s (%s)", e.Index+1, e.Absolute, e.Delta)
}

// EncodeLaps 序列化计次列表，nil 表示已删除的位置
func EncodeLaps(laps []*TimeValue) (string, error) {
	if laps == nil {
		laps = []*TimeValue{}
	}
	data, err := json.Marshal(laps)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeLaps 解析持久化的计次列表；空字符串视为空列表
func DecodeLaps(data string) ([]*TimeValue, error) {
	if data == "" {
		return nil, nil
	}
	var laps []*TimeValue
	if err := json.Unmarshal([]byte(data), &laps); err != nil {
		return nil, err
	}
	for i, lap := range laps {
		if lap != nil && !lap.Normalized() {
			return nil, fmt.Errorf("lap %d is not a valid time: %+v", i, *lap)
		}
	}
	return laps, nil
}
