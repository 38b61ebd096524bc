package weather

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/formatting"
	"github.com/Freeeeeet/campus_bot/internal/model"
)

var weatherCodes = map[int]string{
	0:  "Ясно",
	1:  "Преимущественно ясно",
	2:  "Переменная облачность",
	3:  "Пасмурно",
	45: "Туман",
	48: "Иней, туман с наледью",
	51: "Лёгкая морось",
	53: "Умеренная морось",
	55: "Сильная морось",
	56: "Лёгкая ледяная морось",
	57: "Сильная ледяная морось",
	61: "Лёгкий дождь",
	63: "Умеренный дождь",
	65: "Сильный дождь",
	66: "Лёд: лёгкий дождь",
	67: "Лёд: сильный дождь",
	71: "Лёгкий снег",
	73: "Умеренный снег",
	75: "Сильный снег",
	77: "Снежные крупинки",
	80: "Лёгкий ливень",
	81: "Умеренный ливень",
	82: "Сильный ливень",
	85: "Лёгкий снежный ливень",
	86: "Сильный снежный ливень",
	95: "Лёгкая/умеренная гроза",
	96: "Лёгкая гроза с градом",
	99: "Сильная гроза с градом",
}

// Description описание погоды по коду WMO
func Description(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Неизвестно"
}

// Format текст сводки погоды; now - момент проверки
func Format(w *model.Weather, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<u>Температура сейчас:</u> %s°C\n", formatDegrees(w.CurrentTemp))
	fmt.Fprintf(&b, "<b>Температура сегодня:</b> от %s°C до %s°C\n", formatDegrees(w.TempMin), formatDegrees(w.TempMax))
	fmt.Fprintf(&b, "<b>Ветер:</b> %s м/с\n", formatDegrees(w.CurrentWind))
	fmt.Fprintf(&b, "<b>Состояние:</b> %s\n", Description(w.Code))
	fmt.Fprintf(&b, "<i>Данные на:</i> %s, %s\n", w.ObservedAt.Format("15:04"), formatting.FormatDayMonth(w.ObservedAt))
	fmt.Fprintf(&b, "<i>Проверено в:</i> %s, %s", now.Format("15:04:05"), formatting.FormatDayMonth(now))
	return b.String()
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
