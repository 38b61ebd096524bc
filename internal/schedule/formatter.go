package schedule

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/campus_bot/internal/formatting"
	"github.com/Freeeeeet/campus_bot/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Сообщения для пользователя, когда показывать нечего
const (
	MessageNotFound = "📅 Расписание не найдено"
	MessageEmpty    = "📅 Расписание пустое"
)

const separatorWidth = 30

var lessonTypes = map[string]string{
	"Лекционные занятия":   "Лекция",
	"Практические занятия": "Практика",
	"Лабораторные занятия": "Лабораторная",
}

var upperRu = cases.Upper(language.Russian)

// Formatter превращает записи дней в текст с HTML-разметкой Telegram
type Formatter struct {
	Filter Filter
}

// Format форматирует расписание. Пустой вход и пустой результат фильтрации
// дают разные сообщения.
func (f Formatter) Format(s model.Schedule) string {
	if len(s) == 0 {
		return MessageNotFound
	}

	var output []string
	for _, idx := range SortedDays(s) {
		day := s[idx]
		if !f.Filter.Keep(idx, day) {
			continue
		}

		section, ok := formatDay(day)
		if !ok {
			continue
		}
		output = append(output, section...)
	}

	if len(output) == 0 {
		return MessageEmpty
	}

	return strings.TrimSpace(strings.Join(output, "\n"))
}

// formatDay заголовок дня и все занятия всех пар
func formatDay(day model.DayRecord) ([]string, bool) {
	if _, ok := day.FirstLesson(); !ok {
		return nil, false
	}

	weekday := day.WeekdayLabel()
	if weekday == "" {
		weekday = "День"
	}

	header := "\n<b>📆 " + html.EscapeString(weekday) + " (" + html.EscapeString(formatting.WeekdayShortName(weekday)) + ")</b>"
	if date, ok := ParseDate(day.Date); ok {
		header += " <i>" + formatting.FormatDayMonth(date) + "</i>"
	}

	lines := []string{header, strings.Repeat("─", separatorWidth)}
	for _, slot := range day.ScheduleCell {
		start := TimeOfDay(slot.DateBegin)
		end := TimeOfDay(slot.DateEnd)

		for _, entry := range slot.Subgroup {
			if !entry.HasDiscipline() {
				continue
			}
			lines = append(lines, FormatLesson(entry, start, end))
		}
	}
	return lines, true
}

// FormatLesson одно занятие: дисциплина, время и тип, преподаватель и аудитория.
// Текст портала экранируется под HTML-разметку Telegram.
func FormatLesson(entry model.LessonEntry, start, end string) string {
	var b strings.Builder
	b.WriteString("\n<b>")
	b.WriteString(html.EscapeString(entry.Discipline))
	b.WriteString("</b>\n")

	timeRange := html.EscapeString(formatting.FormatTimeRange(start, end))
	lessonType := html.EscapeString(ShortLessonType(entry.TypeLesson))
	b.WriteString("🕐 ")
	b.WriteString(joinNonEmpty(" | ", timeRange, lessonType))

	teacher := AbbreviateTeacher(entry.MainTeacher())
	if teacher != "" {
		teacher = "👨‍🏫 " + html.EscapeString(teacher)
	}
	classroom := entry.Classroom
	if classroom != "" {
		classroom = "🚪 " + html.EscapeString(classroom)
	}
	if tail := joinNonEmpty(" | ", teacher, classroom); tail != "" {
		b.WriteString("\n")
		b.WriteString(tail)
	}

	return b.String()
}

// TimeOfDay "2024-09-02T08:00:00" -> "08:00"; без разделителя T - пустая строка
func TimeOfDay(timestamp string) string {
	i := strings.Index(timestamp, "T")
	if i < 0 {
		return ""
	}
	clock := timestamp[i+1:]
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return clock
}

// ShortLessonType сокращает тип занятия; неизвестный тип обрезается до трёх букв
func ShortLessonType(lessonType string) string {
	if short, ok := lessonTypes[lessonType]; ok {
		return short
	}
	return firstRunes(lessonType, 3)
}

// AbbreviateTeacher "Иванов Иван Иванович" -> "Иванов.И.И.".
// Инициалы берутся из двух последних слов после фамилии.
// Если инициалов нет, остаётся только фамилия с точкой.
func AbbreviateTeacher(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(tokens[0])
	b.WriteString(".")

	from := len(tokens) - 2
	if from < 1 {
		from = 1
	}
	for _, token := range tokens[from:] {
		b.WriteString(upperRu.String(firstRunes(token, 1)))
		b.WriteString(".")
	}
	return b.String()
}

// ParseDate разбирает дату дня из формата портала
func ParseDate(value string) (time.Time, bool) {
	if len(value) < len("2006-01-02") {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value[:len("2006-01-02")])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
