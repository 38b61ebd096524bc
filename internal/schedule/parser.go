package schedule

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"

	"github.com/Freeeeeet/campus_bot/internal/model"
)

// dayPattern строки вида days[3] = '{"Date":"..."}' во встроенных скриптах страницы
var dayPattern = regexp.MustCompile(`days\[(\d+)\]\s*=\s*'([^']+)'`)

// ParseSchedule извлекает записи дней из сырого текста страницы расписания.
// Битый JSON и пустые дни (0001-01-01) пропускаются.
func ParseSchedule(html string) model.Schedule {
	result := make(model.Schedule)

	for _, match := range dayPattern.FindAllStringSubmatch(html, -1) {
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		var day model.DayRecord
		if err := json.Unmarshal([]byte(match[2]), &day); err != nil {
			continue
		}

		if day.IsEmpty() {
			continue
		}

		result[index] = day
	}

	return result
}

// SortedDays возвращает индексы дней по возрастанию
func SortedDays(s model.Schedule) []int {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// CountLessons число занятий с названием дисциплины во всех днях
func CountLessons(s model.Schedule) int {
	n := 0
	for _, day := range s {
		for _, slot := range day.ScheduleCell {
			for _, entry := range slot.Subgroup {
				if entry.HasDiscipline() {
					n++
				}
			}
		}
	}
	return n
}
