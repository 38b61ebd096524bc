package schedule

import (
	"os"
	"strings"
	"testing"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_NotFoundAndEmptyDiffer(t *testing.T) {
	require.NotEqual(t, MessageNotFound, MessageEmpty)

	assert.Equal(t, MessageNotFound, Formatter{}.Format(nil))
	assert.Equal(t, MessageNotFound, Formatter{}.Format(model.Schedule{}))

	onlyFirstHalf := model.Schedule{
		1: {
			Date:    "2026-10-12T00:00:00",
			WeekDay: "Понедельник",
			ScheduleCell: []model.LessonSlot{{
				DateBegin: "2026-10-12T08:00:00",
				DateEnd:   "2026-10-12T09:35:00",
				Subgroup:  []model.LessonEntry{{Discipline: "Физика", WeekDay: "Понедельник"}},
			}},
		},
	}
	f := Formatter{Filter: WeekFilter(fixedClock(oddMonday))}
	assert.Equal(t, MessageEmpty, f.Format(onlyFirstHalf))
}

func TestFormat_DayWithoutDisciplinesIsEmpty(t *testing.T) {
	s := model.Schedule{
		3: {
			Date:    "2026-10-14T00:00:00",
			WeekDay: "Среда",
			ScheduleCell: []model.LessonSlot{{
				DateBegin: "2026-10-14T08:00:00",
				Subgroup:  []model.LessonEntry{{TypeLesson: "Лекционные занятия"}},
			}},
		},
	}

	assert.Equal(t, MessageEmpty, Formatter{}.Format(s))
}

func TestFormat_EndToEndFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/schedule.html")
	require.NoError(t, err)

	got := Formatter{}.Format(ParseSchedule(string(data)))

	assert.Equal(t, strings.TrimSpace(got), got)
	assert.True(t, strings.HasPrefix(got, "<b>📆 Понедельник (ПН)</b> <i>19 октября</i>"), got)
	assert.NotContains(t, got, "Призрачная дисциплина")

	first := "<b>Математический анализ</b>\n🕐 08:00-09:35 | Лекция\n👨‍🏫 Иванов.И.И. | 🚪 а.301"
	second := "<b>Физика</b>\n🕐 09:50-11:25 | Лабораторная\n👨‍🏫 Петров.С."
	require.Contains(t, got, first)
	require.Contains(t, got, second)
	assert.Less(t, strings.Index(got, first), strings.Index(got, second))
	assert.Equal(t, 1, strings.Count(got, "📆"))
}

func TestFormat_EmitsEverySubgroup(t *testing.T) {
	s := model.Schedule{
		9: {
			Date: "2026-10-20T00:00:00",
			ScheduleCell: []model.LessonSlot{{
				DateBegin: "2026-10-20T11:40:00",
				DateEnd:   "2026-10-20T13:15:00",
				Subgroup: []model.LessonEntry{
					{Discipline: "Программирование", TypeLesson: "Лабораторные занятия", Classroom: "а.410", WeekDay: "Вторник"},
					{Discipline: "Базы данных", TypeLesson: "Лабораторные занятия", Classroom: "а.412", WeekDay: "Вторник"},
				},
			}},
		},
	}

	got := Formatter{}.Format(s)

	assert.Contains(t, got, "<b>📆 Вторник (ВТ)</b>")
	assert.Contains(t, got, "<b>Программирование</b>\n🕐 11:40-13:15 | Лабораторная\n🚪 а.410")
	assert.Contains(t, got, "<b>Базы данных</b>\n🕐 11:40-13:15 | Лабораторная\n🚪 а.412")
}

func TestFormat_TodayFilter(t *testing.T) {
	data, err := os.ReadFile("testdata/schedule.html")
	require.NoError(t, err)
	s := ParseSchedule(string(data))

	onMonday := Formatter{Filter: TodayFilter(fixedClock(oddMonday))}.Format(s)
	assert.Contains(t, onMonday, "Математический анализ")

	onTuesday := Formatter{Filter: TodayFilter(fixedClock(oddMonday.AddDate(0, 0, 1)))}.Format(s)
	assert.Equal(t, MessageEmpty, onTuesday)
}

func TestAbbreviateTeacher(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"full name", "Иванов Иван Иванович", "Иванов.И.И."},
		{"lowercase initials", "петрова анна сергеевна", "петрова.А.С."},
		{"no patronymic", "Петров Сергей", "Петров.С."},
		{"surname only", "Иванов", "Иванов."},
		{"extra spaces", "  Смирнов   Олег   Петрович  ", "Смирнов.О.П."},
		{"blank", "   ", ""},
		{"initials from last two tokens", "Оглы Мамедов Али Рза", "Оглы.А.Р."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AbbreviateTeacher(tt.input))
		})
	}
}

func TestShortLessonType(t *testing.T) {
	assert.Equal(t, "Лекция", ShortLessonType("Лекционные занятия"))
	assert.Equal(t, "Практика", ShortLessonType("Практические занятия"))
	assert.Equal(t, "Лабораторная", ShortLessonType("Лабораторные занятия"))
	assert.Equal(t, "Сем", ShortLessonType("Семинар"))
	assert.Equal(t, "Эк", ShortLessonType("Эк"))
	assert.Equal(t, "", ShortLessonType(""))
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "09:00", TimeOfDay("2026-10-19T09:00:00"))
	assert.Equal(t, "13:45", TimeOfDay("0001-01-01T13:45"))
	assert.Equal(t, "8:00", TimeOfDay("T8:00"))
	assert.Equal(t, "", TimeOfDay("09:00"))
	assert.Equal(t, "", TimeOfDay(""))
}

func TestFormatLesson_Separators(t *testing.T) {
	entry := model.LessonEntry{Discipline: "История", TypeLesson: "Лекционные занятия", Teacher: []string{"Орлов Павел"}}
	assert.Equal(t, "\n<b>История</b>\n🕐 10:00-11:35 | Лекция\n👨‍🏫 Орлов.П.", FormatLesson(entry, "10:00", "11:35"))

	entry = model.LessonEntry{Discipline: "История", Classroom: "а.1"}
	assert.Equal(t, "\n<b>История</b>\n🕐 10:00-11:35\n🚪 а.1", FormatLesson(entry, "10:00", "11:35"))
}

func TestFormatLesson_EscapesPortalText(t *testing.T) {
	entry := model.LessonEntry{
		Discipline: "Физика <ч.1> & практикум",
		TypeLesson: "Лекционные занятия",
		Teacher:    []string{"Иванов Иван Иванович"},
		Classroom:  "а<301>",
	}

	got := FormatLesson(entry, "08:00", "09:35")

	assert.Contains(t, got, "<b>Физика &lt;ч.1&gt; &amp; практикум</b>")
	assert.Contains(t, got, "🚪 а&lt;301&gt;")
	assert.NotContains(t, got, "<ч.1>")
	assert.NotContains(t, got, "<301>")
}

func TestFormat_EscapesWeekdayHeader(t *testing.T) {
	s := model.Schedule{
		2: {
			Date:    "2026-10-13T00:00:00",
			WeekDay: "Вт<орник>",
			ScheduleCell: []model.LessonSlot{{
				DateBegin: "2026-10-13T08:00:00",
				DateEnd:   "2026-10-13T09:35:00",
				Subgroup:  []model.LessonEntry{{Discipline: "Химия & биология"}},
			}},
		},
	}

	got := Formatter{}.Format(s)

	assert.Contains(t, got, "Вт&lt;орник&gt;")
	assert.Contains(t, got, "<b>Химия &amp; биология</b>")
}
