package scheduler

import (
	"time"

	"github.com/julianstephens/tempo/internal/models"
)

// GenerateSlots lays out the focus and break slots of day's working hours.
//
// The cursor starts at the work start time. A cursor inside the lunch window
// is pushed forward by the lunch duration without emitting a slot. Otherwise
// ShortBreakInterval focus slots are emitted, followed by one break. A break
// reached with the counter exactly at the interval is a long break. The last
// slot is not clipped and may end after the work end time.
func GenerateSlots(cfg models.TimeConfiguration, day time.Time) ([]models.Slot, error) {
	wd, err := resolveWorkDay(cfg, day)
	if err != nil {
		return nil, err
	}

	var slots []models.Slot
	cursor := wd.workStart
	focusSessionCount := 0

	for cursor.Before(wd.workEnd) {
		if wd.inLunch(cursor) {
			cursor = cursor.Add(minutes(cfg.LunchDuration))
			continue
		}

		if focusSessionCount < cfg.ShortBreakInterval {
			end := cursor.Add(minutes(cfg.PomodoroDuration))
			slots = append(slots, models.Slot{Start: cursor, End: end, IsFocusTime: true})
			cursor = end
			focusSessionCount++
			continue
		}

		length := cfg.BreakDuration
		if focusSessionCount == cfg.ShortBreakInterval {
			length = cfg.LongBreakDuration
		}
		end := cursor.Add(minutes(length))
		slots = append(slots, models.Slot{Start: cursor, End: end, IsBreak: true})
		cursor = end
		focusSessionCount = 0
	}

	return slots, nil
}
