package keyboard

import (
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Форматы callback data
const (
	SelectGroupPrefix = "select_group:" // select_group:531:ИКС-432
	SchedulePrefix    = "schedule:"     // schedule:today
	Noop              = "noop"
)

// Виды расписания
const (
	ViewToday    = "today"
	ViewWeek     = "week"
	ViewImage    = "image"
	ViewCalendar = "calendar"
)

// Telegram ограничивает callback data 64 байтами
const maxCallbackData = 64

// maxGroupButtons столько вариантов группы показываем за раз
const maxGroupButtons = 10

// SelectGroupData callback data выбора группы; название обрезается, если не помещается
func SelectGroupData(g model.GroupResult) string {
	data := SelectGroupPrefix + g.ID.String() + ":" + g.Name
	for len(data) > maxCallbackData {
		_, size := utf8.DecodeLastRuneInString(data)
		data = data[:len(data)-size]
	}
	return data
}

// ParseSelectGroup разбирает callback data выбора группы
func ParseSelectGroup(data string) (model.GroupResult, bool) {
	rest, ok := strings.CutPrefix(data, SelectGroupPrefix)
	if !ok {
		return model.GroupResult{}, false
	}

	id, name, _ := strings.Cut(rest, ":")
	if id == "" {
		return model.GroupResult{}, false
	}
	if name == "" {
		name = id
	}
	return model.GroupResult{ID: model.GroupID(id), Name: name}, true
}

// ParseScheduleView разбирает callback data кнопок расписания
func ParseScheduleView(data string) (string, bool) {
	view, ok := strings.CutPrefix(data, SchedulePrefix)
	if !ok {
		return "", false
	}
	switch view {
	case ViewToday, ViewWeek, ViewImage, ViewCalendar:
		return view, true
	}
	return "", false
}

// Groups клавиатура с найденными группами, по одной в ряд
func Groups(groups []model.GroupResult) *models.InlineKeyboardMarkup {
	kb := NewBuilder()
	for i, g := range groups {
		if i == maxGroupButtons {
			break
		}
		kb.Row(Button(g.Name, SelectGroupData(g)))
	}
	return kb.Build()
}

// ScheduleViews кнопки переключения вида расписания
func ScheduleViews() *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("📅 Сегодня", SchedulePrefix+ViewToday),
			Button("🗓 Неделя", SchedulePrefix+ViewWeek),
		).
		Row(
			Button("🖼 Картинка", SchedulePrefix+ViewImage),
			Button("📥 Календарь", SchedulePrefix+ViewCalendar),
		).
		Build()
}
