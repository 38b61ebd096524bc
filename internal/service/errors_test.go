package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/campus_bot/internal/portal"
	"github.com/Freeeeeet/campus_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      error
		contains string
	}{
		{ErrGroupNotSet, "/setgroup"},
		{ErrUserNotFound, "/start"},
		{ErrInvalidGroupName, "ИКС-432"},
		{fmt.Errorf("wrapped: %w", portal.ErrFetchFailure), "недоступен"},
		{portal.ErrTokenNotFound, "войти"},
		{errors.New("anything"), "Произошла ошибка"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Contains(t, ErrorMessage(tt.err), tt.contains)
		})
	}

	assert.Equal(t, schedule.MessageNotFound, ErrorMessage(ErrScheduleNotFound))
}
