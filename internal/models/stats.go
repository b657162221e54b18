package models

type LapStats struct {
	Count   int
	Fastest TimeValue
	Slowest TimeValue
	Average TimeValue
	Total   TimeValue // 最后一条计次的绝对时间
}

// ComputeLapStats 根据仍存在的计次计算统计信息
func ComputeLapStats(laps []LapEntry) LapStats {
	stats := LapStats{Count: len(laps)}
	if len(laps) == 0 {
		return stats
	}

	fastest, slowest := laps[0].Delta.Total(), laps[0].Delta.Total()
	var sum int64
	for _, lap := range laps {
		d := lap.Delta.Total()
		sum += d
		if d < fastest {
			fastest = d
		}
		if d > slowest {
			slowest = d
		}
	}

	stats.Fastest = FromCentiseconds(fastest)
	stats.Slowest = FromCentiseconds(slowest)
	stats.Average = FromCentiseconds(sum / int64(len(laps)))
	stats.Total = laps[len(laps)-1].Absolute
	return stats
}
