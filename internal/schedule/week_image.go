package schedule

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/formatting"
	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 6
	minLessonHeight  = 8.0
	lessonRadius     = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 18
	lessonTitleRunes = 18
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 18.0
	lessonFontSize     = 15.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	lectureColor  = color.RGBA{120, 170, 230, 230}
	practiceColor = color.RGBA{133, 193, 85, 220}
	labColor      = color.RGBA{245, 190, 90, 230}
	otherColor    = color.RGBA{200, 200, 200, 220}

	lessonTextColor   = color.RGBA{20, 24, 28, 230}
	lessonShadowColor = color.RGBA{0, 0, 0, 20}
	legendItemColor   = color.RGBA{70, 74, 78, 220}
)

type fontStyle int

const (
	fontRegular fontStyle = iota
	fontBold
)

var (
	fontsOnce   sync.Once
	parsedFonts map[fontStyle]*opentype.Font
)

// weekLesson одно занятие, размещённое на сетке недели
type weekLesson struct {
	weekday int
	start   time.Time
	end     time.Time
	title   string
	kind    string
}

type hourRange struct {
	start int
	end   int
	total int
}

// WeekImage рисует PNG с занятиями недели, в которую попадает now
func WeekImage(s model.Schedule, now time.Time, loc *time.Location) ([]byte, error) {
	now = now.In(loc)
	monday := startOfWeek(now)
	lessons := collectWeekLessons(s, loc)
	hours := calculateHourRange(lessons)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, monday)
	drawHourLabels(dc, hours, cellHeight)

	today := formatting.ISOWeekday(now)
	for i := 0; i < totalDaysInWeek; i++ {
		x := float64(leftLabelsWidth + i*dayWidth)
		y := float64(headerHeight)
		weekday := i + 1

		drawDayBackground(dc, x, y, dayWidth, dayHeight, i, weekday == today)
		drawDayHeader(dc, monday.AddDate(0, 0, i), x, y, dayWidth)
		drawHourLines(dc, x, y, dayWidth, hours, cellHeight)

		for _, lesson := range lessons {
			if lesson.weekday == weekday {
				drawLesson(dc, lesson, x, y, dayWidth, hours, cellHeight)
			}
		}
	}

	drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth, today)
	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func startOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(formatting.ISOWeekday(day) - 1))
}

// collectWeekLessons раскладывает занятия по дням недели; день берётся из названия,
// а если оно не распознано - из даты
func collectWeekLessons(s model.Schedule, loc *time.Location) []weekLesson {
	var lessons []weekLesson
	for _, idx := range SortedDays(s) {
		day := s[idx]

		weekday, ok := formatting.WeekdayNumber(day.WeekdayLabel())
		if !ok {
			date, ok := ParseDate(day.Date)
			if !ok {
				continue
			}
			weekday = formatting.ISOWeekday(date)
		}

		for _, slot := range day.ScheduleCell {
			start, end, ok := LessonTimes(day, slot, loc)
			if !ok {
				continue
			}
			for _, entry := range slot.Subgroup {
				if !entry.HasDiscipline() {
					continue
				}
				lessons = append(lessons, weekLesson{
					weekday: weekday,
					start:   start,
					end:     end,
					title:   entry.Discipline,
					kind:    ShortLessonType(entry.TypeLesson),
				})
			}
		}
	}
	return lessons
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(lessons []weekLesson) hourRange {
	minHour := 24
	maxHour := 0

	for _, l := range lessons {
		startH := l.start.Hour()
		endH := l.end.Hour()
		if l.end.Minute() > 0 {
			endH++
		}
		if startH < minHour {
			minHour = startH
		}
		if endH > maxHour {
			maxHour = endH
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 23 {
		endHour = 23
	}

	return hourRange{start: startHour, end: endHour, total: endHour - startHour + 1}
}

func loadFont(dc *gg.Context, size float64, style fontStyle) {
	fontsOnce.Do(func() {
		parsedFonts = make(map[fontStyle]*opentype.Font)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFonts[fontRegular] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			parsedFonts[fontBold] = f
		}
	})

	parsed, ok := parsedFonts[style]
	if !ok {
		parsed, ok = parsedFonts[fontRegular]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// drawHeader заголовок с диапазоном дат недели
func drawHeader(dc *gg.Context, monday time.Time) {
	sunday := monday.AddDate(0, 0, 6)
	title := formatting.FormatDayMonth(monday) + " - " + formatting.FormatDayMonth(sunday)
	if IsEvenWeek(monday) {
		title += " (чётная неделя)"
	} else {
		title += " (нечётная неделя)"
	}

	loadFont(dc, titleFontSize, fontBold)
	dc.SetColor(textColor)
	_, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels колонка с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, fontRegular)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx < hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	short := formatting.WeekdayShortName(formatting.WeekdayName(formatting.ISOWeekday(date)))

	loadFont(dc, dayFontSize, fontBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(short, x+float64(dayWidth)/2, y, 0.5, -0.2)
}

func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// drawLesson рисует один блок занятия
func drawLesson(dc *gg.Context, lesson weekLesson, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour := float64(lesson.start.Hour()) + float64(lesson.start.Minute())/60.0
	endHour := float64(lesson.end.Hour()) + float64(lesson.end.Minute())/60.0

	lessonY := y + (startHour-float64(hours.start))*cellHeight
	height := (endHour - startHour) * cellHeight
	if height < minLessonHeight {
		height = minLessonHeight
	}

	fill := lessonColor(lesson.kind)
	width := float64(dayWidth) - float64(dayPaddingX*2)

	dc.SetColor(lessonShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, lessonY+2+shadowOffset, width, height-4, lessonRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), lessonY+2, width, height-4, lessonRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), lessonY+2, width, height-4, lessonRadius)
	dc.Stroke()

	loadFont(dc, lessonFontSize, fontBold)
	dc.SetColor(lessonTextColor)
	txtX := x + float64(dayPaddingX) + 6
	txtY := lessonY + 18
	dc.DrawStringAnchored(lesson.start.Format("15:04")+" "+lesson.kind, txtX, txtY, 0, 0)

	if height > 40 {
		title := lesson.title
		if len([]rune(title)) > lessonTitleRunes {
			title = firstRunes(title, lessonTitleRunes-1) + "…"
		}
		loadFont(dc, lessonFontSize-2, fontRegular)
		dc.DrawStringAnchored(title, txtX, txtY+17, 0, 0)
	}
}

func lessonColor(kind string) color.RGBA {
	switch kind {
	case "Лекция":
		return lectureColor
	case "Практика":
		return practiceColor
	case "Лабораторная":
		return labColor
	default:
		return otherColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine красная линия текущего времени в колонке сегодняшнего дня
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth, today int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	x := float64(leftLabelsWidth + (today-1)*dayWidth)
	y := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(x, y, x+float64(dayWidth), y)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 140.0

	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Лекция", lectureColor},
		{"Практика", practiceColor},
		{"Лабораторная", labColor},
		{"Другое", otherColor},
	}

	boxW := 20.0
	boxH := 14.0
	liY := legendY + 22

	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, fontRegular)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

func formatHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}
