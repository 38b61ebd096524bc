package service

import (
	"errors"

	"github.com/Freeeeeet/campus_bot/internal/portal"
	"github.com/Freeeeeet/campus_bot/internal/schedule"
)

// Ошибки сервисного слоя
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrGroupNotSet      = errors.New("group is not set")
	ErrInvalidGroupName = errors.New("invalid group name")
	ErrGroupNotFound    = errors.New("group not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrGroupNotSet):
		return "❌ Группа не выбрана. Используйте /setgroup"
	case errors.Is(err, ErrInvalidGroupName):
		return "❌ Неверный формат группы. Пример: ИКС-432"
	case errors.Is(err, ErrGroupNotFound):
		return "❌ Группа не найдена"
	case errors.Is(err, ErrScheduleNotFound):
		return schedule.MessageNotFound
	case errors.Is(err, portal.ErrTokenNotFound), errors.Is(err, portal.ErrAuthFailure):
		return "❌ Не удалось войти на портал университета. Попробуйте позже"
	case errors.Is(err, portal.ErrFetchFailure):
		return "❌ Портал университета недоступен. Попробуйте позже"
	default:
		return "❌ Произошла ошибка"
	}
}
