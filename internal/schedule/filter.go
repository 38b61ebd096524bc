package schedule

import (
	"time"

	"github.com/Freeeeeet/campus_bot/internal/formatting"
	"github.com/Freeeeeet/campus_bot/internal/model"
)

// Портал публикует двухнедельное расписание: дни 1..7 и 8..14.
const (
	firstHalfStart  = 1
	firstHalfEnd    = 7
	secondHalfStart = 8
	secondHalfEnd   = 14
)

// IsEvenWeek чётность недели по номеру ISO
func IsEvenWeek(t time.Time) bool {
	_, week := t.ISOWeek()
	return week%2 == 0
}

// IsDayInCurrentWeek решает, относится ли индекс дня портала к текущей неделе.
// Нечётная неделя -> 8..14, чётная -> 1..7: так нумерует портал.
func IsDayInCurrentWeek(dayIndex int, isEvenWeek bool) bool {
	if !isEvenWeek {
		return dayIndex >= secondHalfStart && dayIndex <= secondHalfEnd
	}
	return dayIndex >= firstHalfStart && dayIndex <= firstHalfEnd
}

// IsToday сообщает, совпадает ли день недели записи с сегодняшним.
// Нераспознанное название дня никогда не совпадает.
func IsToday(record model.DayRecord, now time.Time) bool {
	n, ok := formatting.WeekdayNumber(record.WeekdayLabel())
	if !ok {
		return false
	}
	return n == formatting.ISOWeekday(now)
}

// Filter отбирает дни для вывода
type Filter struct {
	Week bool // только дни текущей недели
	Day  bool // только сегодняшний день недели
	Now  func() time.Time
}

// TodayFilter дни текущей недели, совпадающие с сегодняшним днём
func TodayFilter(now func() time.Time) Filter {
	return Filter{Week: true, Day: true, Now: now}
}

// WeekFilter все дни текущей недели
func WeekFilter(now func() time.Time) Filter {
	return Filter{Week: true, Now: now}
}

func (f Filter) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Keep применяет фильтр к одному дню
func (f Filter) Keep(dayIndex int, record model.DayRecord) bool {
	if !f.Week && !f.Day {
		return true
	}

	now := f.now()
	if f.Week && !IsDayInCurrentWeek(dayIndex, IsEvenWeek(now)) {
		return false
	}
	if f.Day && !IsToday(record, now) {
		return false
	}
	return true
}

// Apply возвращает новое расписание только с подходящими днями
func (f Filter) Apply(s model.Schedule) model.Schedule {
	out := make(model.Schedule, len(s))
	for idx, day := range s {
		if f.Keep(idx, day) {
			out[idx] = day
		}
	}
	return out
}
