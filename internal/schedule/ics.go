package schedule

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	ics "github.com/arran4/golang-ical"
)

const portalTimeLayout = "2006-01-02T15:04:05"

// LessonTimes возвращает начало и конец пары в указанной временной зоне
func LessonTimes(day model.DayRecord, slot model.LessonSlot, loc *time.Location) (time.Time, time.Time, bool) {
	start, ok := lessonTime(day.Date, slot.DateBegin, loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := lessonTime(day.Date, slot.DateEnd, loc)
	if !ok || !end.After(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// lessonTime у некоторых пар в DateBegin стоит нулевая дата, тогда берём дату дня
func lessonTime(dayDate, timestamp string, loc *time.Location) (time.Time, bool) {
	clock := TimeOfDay(timestamp)
	if clock == "" {
		return time.Time{}, false
	}

	date := ""
	if i := strings.Index(timestamp, "T"); i > 0 && !strings.HasPrefix(timestamp, model.NoClassesDate) {
		date = timestamp[:i]
	} else if i := strings.Index(dayDate, "T"); i > 0 {
		date = dayDate[:i]
	} else {
		date = dayDate
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// GenerateICS пишет все занятия расписания в календарь iCalendar
func GenerateICS(s model.Schedule, groupName string, loc *time.Location, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//campus_bot//schedule//RU")
	if groupName != "" {
		cal.SetXWRCalName("Расписание " + groupName)
	}

	now := time.Now()
	for _, idx := range SortedDays(s) {
		day := s[idx]
		for slotIdx, slot := range day.ScheduleCell {
			start, end, ok := LessonTimes(day, slot, loc)
			if !ok {
				continue
			}

			for entryIdx, entry := range slot.Subgroup {
				if !entry.HasDiscipline() {
					continue
				}

				event := cal.AddEvent(fmt.Sprintf("%s-%d-%d-%d@campus_bot", start.UTC().Format("20060102T150405Z"), idx, slotIdx, entryIdx))
				event.SetDtStampTime(now)
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetSummary(entry.Discipline)
				if entry.Classroom != "" {
					event.SetLocation(entry.Classroom)
				}

				description := ShortLessonType(entry.TypeLesson)
				if teacher := entry.MainTeacher(); teacher != "" {
					description += "\n" + teacher
				}
				event.SetDescription(strings.TrimSpace(description))
			}
		}
	}

	return cal.SerializeTo(w)
}
