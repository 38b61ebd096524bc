package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/Freeeeeet/campus_bot/internal/repository"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService() *UserService {
	store := repository.NewYAMLUserRepository(afero.NewMemMapFs(), "data/users.yaml")
	return NewUserService(store, zap.NewNop())
}

func TestUserService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	user, err := svc.RegisterUser(ctx, 42, "ivanov", "Иван", "Иванов")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	again, err := svc.RegisterUser(ctx, 42, "ivanov_new", "Иван", "Иванов")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	stored, err := svc.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ivanov_new", stored.Username)
}

func TestUserService_SetGroup(t *testing.T) {
	ctx := context.Background()
	svc := newUserService()

	_, err := svc.RequireGroup(ctx, 7)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.SetGroup(ctx, 7, model.GroupResult{ID: "531", Name: "ИКС-432"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.RegisterUser(ctx, 7, "", "Пётр", "")
	require.NoError(t, err)

	_, err = svc.RequireGroup(ctx, 7)
	assert.ErrorIs(t, err, ErrGroupNotSet)

	require.NoError(t, svc.SetGroup(ctx, 7, model.GroupResult{ID: "531", Name: "ИКС-432"}))

	user, err := svc.RequireGroup(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "531", user.GroupID)
	assert.Equal(t, "ИКС-432", user.GroupName)
}
