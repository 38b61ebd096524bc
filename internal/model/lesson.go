package model

import (
	"encoding/json"
	"strings"
)

// NoClassesDate помечает день без занятий в данных портала
const NoClassesDate = "0001-01-01"

// Schedule - записи дней по индексу дня портала (1..14)
type Schedule map[int]DayRecord

// DayRecord один день расписания в том виде, как его публикует портал
type DayRecord struct {
	Date         string       `json:"Date"`
	WeekDay      string       `json:"WeekDay"`
	ScheduleCell []LessonSlot `json:"ScheduleCell"`
}

// IsEmpty сообщает, что день помечен порталом как пустой
func (d DayRecord) IsEmpty() bool {
	return d.Date == "" || strings.HasPrefix(d.Date, NoClassesDate)
}

// FirstLesson возвращает первое занятие дня с указанной дисциплиной
func (d DayRecord) FirstLesson() (LessonEntry, bool) {
	for _, slot := range d.ScheduleCell {
		for _, entry := range slot.Subgroup {
			if entry.HasDiscipline() {
				return entry, true
			}
		}
	}
	return LessonEntry{}, false
}

// WeekdayLabel возвращает название дня недели: из первого занятия, иначе из записи дня
func (d DayRecord) WeekdayLabel() string {
	if lesson, ok := d.FirstLesson(); ok && lesson.WeekDay != "" {
		return lesson.WeekDay
	}
	return d.WeekDay
}

// LessonSlot пара - временной интервал, который может быть разбит по подгруппам
type LessonSlot struct {
	DateBegin string        `json:"DateBegin"`
	DateEnd   string        `json:"DateEnd"`
	Subgroup  []LessonEntry `json:"Subgroup"`
}

// LessonEntry занятие конкретной подгруппы
type LessonEntry struct {
	Discipline string   `json:"DISCIPLINE"`
	TypeLesson string   `json:"TYPE_LESSON"`
	Teacher    []string `json:"TEACHER"`
	Classroom  string   `json:"CLASSROOM"`
	WeekDay    string   `json:"WEEK_DAY"`
}

// UnmarshalJSON принимает как ключи портала (TYPE_LESSON), так и CamelCase (TypeLesson)
func (e *LessonEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Discipline    string          `json:"DISCIPLINE"`
		TypeLesson    string          `json:"TYPE_LESSON"`
		TypeLessonAlt string          `json:"TypeLesson"`
		Teacher       json.RawMessage `json:"TEACHER"`
		Classroom     string          `json:"CLASSROOM"`
		WeekDay       string          `json:"WEEK_DAY"`
		WeekDayAlt    string          `json:"WeekDay"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Discipline = strings.TrimSpace(raw.Discipline)
	e.TypeLesson = firstNonEmpty(raw.TypeLesson, raw.TypeLessonAlt)
	e.Classroom = strings.TrimSpace(raw.Classroom)
	e.WeekDay = firstNonEmpty(raw.WeekDay, raw.WeekDayAlt)
	e.Teacher = decodeTeachers(raw.Teacher)
	return nil
}

// HasDiscipline сообщает, что у занятия есть название дисциплины
func (e LessonEntry) HasDiscipline() bool {
	return e.Discipline != ""
}

// MainTeacher возвращает первого преподавателя из списка
func (e LessonEntry) MainTeacher() string {
	if len(e.Teacher) == 0 {
		return ""
	}
	return strings.TrimSpace(e.Teacher[0])
}

// decodeTeachers портал присылает либо массив имён, либо одну строку
func decodeTeachers(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
