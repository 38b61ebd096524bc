package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

// 19.10.2026 - понедельник 43-й (нечётной) недели, 26.10.2026 - понедельник 44-й
var (
	oddMonday  = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	evenMonday = time.Date(2026, time.October, 26, 10, 0, 0, 0, time.UTC)
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIsEvenWeek(t *testing.T) {
	assert.False(t, IsEvenWeek(oddMonday))
	assert.True(t, IsEvenWeek(evenMonday))
	// воскресенье относится к той же ISO-неделе, что и понедельник перед ним
	assert.False(t, IsEvenWeek(oddMonday.AddDate(0, 0, 6)))
}

func TestIsDayInCurrentWeek(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		even     bool
		expected bool
	}{
		{"odd week second half start", 8, false, true},
		{"odd week second half end", 14, false, true},
		{"odd week first half", 1, false, false},
		{"even week first half", 1, true, true},
		{"even week first half end", 7, true, true},
		{"even week second half", 8, true, false},
		{"out of range", 15, false, false},
		{"zero index", 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDayInCurrentWeek(tt.index, tt.even))
		})
	}
}

func TestIsToday(t *testing.T) {
	monday := model.DayRecord{Date: "2026-10-19", WeekDay: "Понедельник"}
	tuesday := model.DayRecord{Date: "2026-10-20", WeekDay: "Вторник"}
	unknown := model.DayRecord{Date: "2026-10-19", WeekDay: "Monday"}

	assert.True(t, IsToday(monday, oddMonday))
	assert.False(t, IsToday(tuesday, oddMonday))
	assert.False(t, IsToday(unknown, oddMonday))
}

func TestFilter_Keep(t *testing.T) {
	monday := model.DayRecord{Date: "2026-10-19", WeekDay: "Понедельник"}
	tuesday := model.DayRecord{Date: "2026-10-20", WeekDay: "Вторник"}

	none := Filter{}
	assert.True(t, none.Keep(1, monday))
	assert.True(t, none.Keep(13, tuesday))

	week := WeekFilter(fixedClock(oddMonday))
	assert.True(t, week.Keep(8, monday))
	assert.True(t, week.Keep(9, tuesday))
	assert.False(t, week.Keep(1, monday))

	today := TodayFilter(fixedClock(oddMonday))
	assert.True(t, today.Keep(8, monday))
	assert.False(t, today.Keep(9, tuesday))
	assert.False(t, today.Keep(1, monday))

	evenToday := TodayFilter(fixedClock(evenMonday))
	assert.True(t, evenToday.Keep(1, monday))
	assert.False(t, evenToday.Keep(8, monday))
}

func TestFilter_Apply(t *testing.T) {
	s := model.Schedule{
		1: {Date: "2026-10-12", WeekDay: "Понедельник"},
		8: {Date: "2026-10-19", WeekDay: "Понедельник"},
		9: {Date: "2026-10-20", WeekDay: "Вторник"},
	}

	got := WeekFilter(fixedClock(oddMonday)).Apply(s)

	assert.Len(t, got, 2)
	assert.Contains(t, got, 8)
	assert.Contains(t, got, 9)
	assert.Len(t, s, 3)
}
