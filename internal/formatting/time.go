package formatting

import (
	"fmt"
	"time"
)

var weekdayNumbers = map[string]int{
	"Понедельник": 1,
	"Вторник":     2,
	"Среда":       3,
	"Четверг":     4,
	"Пятница":     5,
	"Суббота":     6,
	"Воскресенье": 7,
}

var weekdayShortNames = map[string]string{
	"Понедельник": "ПН",
	"Вторник":     "ВТ",
	"Среда":       "СР",
	"Четверг":     "ЧТ",
	"Пятница":     "ПТ",
	"Суббота":     "СБ",
	"Воскресенье": "ВС",
}

var weekdayNames = []string{
	"Понедельник",
	"Вторник",
	"Среда",
	"Четверг",
	"Пятница",
	"Суббота",
	"Воскресенье",
}

// WeekdayNumber переводит русское название дня недели в номер ISO (1=Пн..7=Вс)
func WeekdayNumber(name string) (int, bool) {
	n, ok := weekdayNumbers[name]
	return n, ok
}

// WeekdayShortName возвращает сокращение дня недели, либо само название
func WeekdayShortName(name string) string {
	if short, ok := weekdayShortNames[name]; ok {
		return short
	}
	return name
}

// WeekdayName возвращает название дня по номеру ISO
func WeekdayName(isoWeekday int) string {
	if isoWeekday >= 1 && isoWeekday <= len(weekdayNames) {
		return weekdayNames[isoWeekday-1]
	}
	return "Неизвестно"
}

// ISOWeekday номер дня недели по ISO: 1=понедельник..7=воскресенье
func ISOWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// GetMonthName возвращает название месяца в родительном падеже
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return names[month]
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	default:
		return start + "-" + end
	}
}

// FormatDayMonth форматирует дату как "19 октября"
func FormatDayMonth(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), GetMonthName(t.Month()))
}
