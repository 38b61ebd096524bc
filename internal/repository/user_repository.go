package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/Freeeeeet/campus_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUserNotFound обновление пользователя, которого нет в хранилище
var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, telegram_id, username, first_name, last_name, group_id, group_name, created_at`

// UserRepository хранит пользователей в PostgreSQL
type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, first_name, last_name, group_id, group_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.GroupID,
		user.GroupName,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	var user model.User
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.GroupID,
		&user.GroupName,
		&user.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// Update обновляет профиль пользователя
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $1, first_name = $2, last_name = $3
		WHERE telegram_id = $4
	`

	affected, err := r.ExecAffected(ctx, query, user.Username, user.FirstName, user.LastName, user.TelegramID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// SetGroup сохраняет выбранную группу
func (r *UserRepository) SetGroup(ctx context.Context, telegramID int64, groupID, groupName string) error {
	query := `
		UPDATE users
		SET group_id = $1, group_name = $2
		WHERE telegram_id = $3
	`

	affected, err := r.ExecAffected(ctx, query, groupID, groupName, telegramID)
	if err != nil {
		return fmt.Errorf("set user group: %w", err)
	}

	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
