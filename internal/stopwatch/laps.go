package stopwatch

import (
	"Stopwatch/internal/models"
	"Stopwatch/internal/storage"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// LapRecorder 维护计次列表。
// 删除的计次在 slots 中留下 nil，保证其他计次的序号与持久化位置一致。
type LapRecorder struct {
	slots    []*models.LapEntry
	lastFlag *models.TimeValue // 最后一条仍存在的计次时间
	locked   bool              // 计次后到下一次 tick 之前不允许再计次
	display  Display
	store    storage.KeyValueStore
}

func NewLapRecorder(display Display, store storage.KeyValueStore) *LapRecorder {
	return &LapRecorder{
		locked:  true,
		display: display,
		store:   store,
	}
}

// RecordLap 在末尾追加一条计次并保存
func (r *LapRecorder) RecordLap(current models.TimeValue) (models.LapEntry, error) {
	if r.locked {
		return models.LapEntry{}, ErrFlagLocked
	}

	entry, err := r.RecordLapAt(current, len(r.slots))
	if err != nil {
		return entry, err
	}
	return entry, r.persist()
}

// RecordLapAt 在指定序号处记录计次，不写入存储。
// 用于按原顺序重放已保存的计次。
func (r *LapRecorder) RecordLapAt(current models.TimeValue, index int) (models.LapEntry, error) {
	if index < 0 {
		return models.LapEntry{}, errors.Wrapf(ErrNoSuchLap, "index %d", index)
	}
	for _, slot := range r.slots {
		if slot != nil && slot.Absolute.String() == current.String() {
			return models.LapEntry{}, ErrDuplicateLap
		}
	}

	delta := current
	if r.lastFlag != nil {
		d := current.Sub(*r.lastFlag)
		if d < 0 {
			return models.LapEntry{}, errors.Wrapf(ErrNonMonotonicLap, "%s before %s", current, r.lastFlag)
		}
		delta = models.FromCentiseconds(d)
	}

	entry := models.LapEntry{
		Index:    index,
		Absolute: current,
		Delta:    delta,
	}
	for len(r.slots) <= index {
		r.slots = append(r.slots, nil)
	}
	r.slots[index] = &entry
	r.lastFlag = &entry.Absolute
	r.Lock()
	r.refresh()
	return entry, nil
}

// DeleteLap 删除一条计次，其位置在存储中标记为 null
func (r *LapRecorder) DeleteLap(index int) error {
	if index < 0 || index >= len(r.slots) || r.slots[index] == nil {
		return errors.Wrapf(ErrNoSuchLap, "index %d", index)
	}
	r.slots[index] = nil

	r.lastFlag = nil
	for i := len(r.slots) - 1; i >= 0; i-- {
		if r.slots[i] != nil {
			r.lastFlag = &r.slots[i].Absolute
			break
		}
	}

	r.refresh()
	return r.persist()
}

// Restore 读取已保存的计次并按序号顺序重放
func (r *LapRecorder) Restore() {
	raw, ok, err := r.store.GetString(storage.KeyFlags)
	if err != nil {
		log.Warn("failed to read saved laps", "err", err)
		r.refresh()
		return
	}
	var saved []*models.TimeValue
	if ok {
		saved, err = models.DecodeLaps(raw)
		if err != nil {
			log.Warn("ignoring malformed saved laps", "err", err)
			saved = nil
		}
	}
	r.RestoreFromPersisted(saved)
}

// RestoreFromPersisted 按序号递增顺序重放计次，跳过已删除的位置
func (r *LapRecorder) RestoreFromPersisted(saved []*models.TimeValue) {
	r.slots = make([]*models.LapEntry, len(saved))
	r.lastFlag = nil

	for i, value := range saved {
		if value == nil {
			continue
		}
		if _, err := r.RecordLapAt(*value, i); err != nil {
			log.Warn("skipping saved lap", "index", i, "time", value.String(), "err", err)
		}
	}
	r.refresh()
}

// Clear 清空所有计次
func (r *LapRecorder) Clear() error {
	r.slots = nil
	r.lastFlag = nil
	r.Lock()
	r.refresh()
	return r.persist()
}

// Lock 禁止计次直到下一次 Unlock
func (r *LapRecorder) Lock() {
	r.locked = true
	r.display.SetControlEnabled(ControlFlag, false)
}

// Unlock 允许计次，每次 tick 时调用
func (r *LapRecorder) Unlock() {
	r.locked = false
	r.display.SetControlEnabled(ControlFlag, true)
}

func (r *LapRecorder) Locked() bool {
	return r.locked
}

// Laps 返回仍存在的计次，按序号排列
func (r *LapRecorder) Laps() []models.LapEntry {
	laps := make([]models.LapEntry, 0, len(r.slots))
	for _, slot := range r.slots {
		if slot != nil {
			laps = append(laps, *slot)
		}
	}
	return laps
}

// LastFlag 返回最后一条计次的时间
func (r *LapRecorder) LastFlag() (models.TimeValue, bool) {
	if r.lastFlag == nil {
		return models.TimeValue{}, false
	}
	return *r.lastFlag, true
}

// Saved 返回持久化格式的计次列表
func (r *LapRecorder) Saved() []*models.TimeValue {
	saved := make([]*models.TimeValue, len(r.slots))
	for i, slot := range r.slots {
		if slot != nil {
			value := slot.Absolute
			saved[i] = &value
		}
	}
	return saved
}

func (r *LapRecorder) refresh() {
	laps := r.Laps()
	r.display.SetLapList(laps)
	if len(laps) == 0 {
		r.display.ShowPlaceholder()
	} else {
		r.display.HidePlaceholder()
	}
}

func (r *LapRecorder) persist() error {
	data, err := models.EncodeLaps(r.Saved())
	if err != nil {
		return errors.Wrap(err, "encode laps")
	}
	return errors.Wrap(r.store.SetString(storage.KeyFlags, data), "save laps")
}
