package formatting

// PluralizeLessons возвращает правильное склонение слова "пара"
func PluralizeLessons(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "пара"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "пары"
	}
	return "пар"
}

// PluralizeGroups возвращает правильное склонение слова "группа"
func PluralizeGroups(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "группа"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "группы"
	}
	return "групп"
}
