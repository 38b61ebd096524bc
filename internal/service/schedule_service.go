package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/Freeeeeet/campus_bot/internal/schedule"
	"go.uber.org/zap"
)

// ScheduleSource источник страницы расписания
type ScheduleSource interface {
	FetchScheduleHTML(ctx context.Context, groupID string) (string, error)
}

// ScheduleService проверка сессии -> загрузка -> разбор -> форматирование.
// Расписание не кэшируется: каждый запрос идёт на портал.
type ScheduleService struct {
	source ScheduleSource
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewScheduleService(source ScheduleSource, loc *time.Location, logger *zap.Logger) *ScheduleService {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleService{
		source: source,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// WithClock подменяет часы сервиса
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

func (s *ScheduleService) clock() time.Time {
	return s.now().In(s.loc)
}

// Fetch загружает и разбирает расписание группы
func (s *ScheduleService) Fetch(ctx context.Context, groupID string) (model.Schedule, error) {
	html, err := s.source.FetchScheduleHTML(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule for group %s: %w", groupID, err)
	}

	days := schedule.ParseSchedule(html)

	s.logger.Debug("Schedule parsed",
		zap.String("group_id", groupID),
		zap.Int("days", len(days)),
	)

	return days, nil
}

// Today занятия на сегодня
func (s *ScheduleService) Today(ctx context.Context, groupID string) (string, error) {
	return s.format(ctx, groupID, schedule.TodayFilter(s.clock))
}

// Week занятия текущей недели
func (s *ScheduleService) Week(ctx context.Context, groupID string) (string, error) {
	return s.format(ctx, groupID, schedule.WeekFilter(s.clock))
}

// All все опубликованные дни без фильтров
func (s *ScheduleService) All(ctx context.Context, groupID string) (string, error) {
	return s.format(ctx, groupID, schedule.Filter{})
}

func (s *ScheduleService) format(ctx context.Context, groupID string, filter schedule.Filter) (string, error) {
	days, err := s.Fetch(ctx, groupID)
	if err != nil {
		return "", err
	}
	return schedule.Formatter{Filter: filter}.Format(days), nil
}

// Calendar ICS-файл со всеми опубликованными занятиями и число занятий в нём
func (s *ScheduleService) Calendar(ctx context.Context, groupID, groupName string) ([]byte, int, error) {
	days, err := s.Fetch(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}

	lessons := schedule.CountLessons(days)
	if lessons == 0 {
		return nil, 0, ErrScheduleNotFound
	}

	var buf bytes.Buffer
	if err := schedule.GenerateICS(days, groupName, s.loc, &buf); err != nil {
		return nil, 0, fmt.Errorf("generate calendar: %w", err)
	}
	return buf.Bytes(), lessons, nil
}

// WeekImage PNG с занятиями текущей недели
func (s *ScheduleService) WeekImage(ctx context.Context, groupID string) ([]byte, error) {
	days, err := s.Fetch(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrScheduleNotFound
	}

	now := s.clock()
	image, err := schedule.WeekImage(schedule.WeekFilter(s.clock).Apply(days), now, s.loc)
	if err != nil {
		return nil, fmt.Errorf("render week image: %w", err)
	}
	return image, nil
}
