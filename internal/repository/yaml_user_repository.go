package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// usersFile структура YAML-файла с пользователями
type usersFile struct {
	NextID int64         `yaml:"next_id"`
	Users  []*model.User `yaml:"users"`
}

// YAMLUserRepository хранит пользователей в YAML-файле, когда база не настроена
type YAMLUserRepository struct {
	fs       afero.Fs
	filename string
	mutex    sync.RWMutex
}

// NewYAMLUserRepository создаёт репозиторий поверх файловой системы fs
func NewYAMLUserRepository(fs afero.Fs, filename string) *YAMLUserRepository {
	return &YAMLUserRepository{
		fs:       fs,
		filename: filename,
	}
}

// GetByTelegramID получает пользователя по Telegram ID; nil, если его нет
func (r *YAMLUserRepository) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	data, err := r.loadUnsafe()
	if err != nil {
		return nil, err
	}

	for _, u := range data.Users {
		if u.TelegramID == telegramID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

// Create добавляет пользователя и проставляет ему ID и время создания
func (r *YAMLUserRepository) Create(_ context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := r.loadUnsafe()
	if err != nil {
		return err
	}

	for _, u := range data.Users {
		if u.TelegramID == user.TelegramID {
			return fmt.Errorf("create user: telegram id %d already exists", user.TelegramID)
		}
	}

	data.NextID++
	user.ID = data.NextID
	user.CreatedAt = time.Now().UTC()

	stored := *user
	data.Users = append(data.Users, &stored)

	return r.saveUnsafe(data)
}

// Update обновляет профиль пользователя
func (r *YAMLUserRepository) Update(_ context.Context, user *model.User) error {
	return r.modify(user.TelegramID, func(u *model.User) {
		u.Username = user.Username
		u.FirstName = user.FirstName
		u.LastName = user.LastName
	})
}

// SetGroup сохраняет выбранную группу
func (r *YAMLUserRepository) SetGroup(_ context.Context, telegramID int64, groupID, groupName string) error {
	return r.modify(telegramID, func(u *model.User) {
		u.GroupID = groupID
		u.GroupName = groupName
	})
}

func (r *YAMLUserRepository) modify(telegramID int64, apply func(*model.User)) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := r.loadUnsafe()
	if err != nil {
		return err
	}

	for _, u := range data.Users {
		if u.TelegramID == telegramID {
			apply(u)
			return r.saveUnsafe(data)
		}
	}
	return ErrUserNotFound
}

// loadUnsafe читает файл без блокировки; отсутствующий файл - пустой список
func (r *YAMLUserRepository) loadUnsafe() (*usersFile, error) {
	raw, err := afero.ReadFile(r.fs, r.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return &usersFile{}, nil
		}
		return nil, fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	var data usersFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("не удалось распарсить YAML: %w", err)
	}
	return &data, nil
}

// saveUnsafe пишет во временный файл и переименовывает его
func (r *YAMLUserRepository) saveUnsafe(data *usersFile) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать YAML: %w", err)
	}

	if dir := filepath.Dir(r.filename); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("не удалось создать каталог: %w", err)
		}
	}

	tmp := r.filename + ".tmp"
	if err := afero.WriteFile(r.fs, tmp, raw, 0o644); err != nil {
		return fmt.Errorf("не удалось записать файл: %w", err)
	}
	return r.fs.Rename(tmp, r.filename)
}
