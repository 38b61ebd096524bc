package model

import "time"

type User struct {
	ID         int64     `json:"id" yaml:"id"`
	TelegramID int64     `json:"telegram_id" yaml:"telegram_id"`
	Username   string    `json:"username" yaml:"username,omitempty"`
	FirstName  string    `json:"first_name" yaml:"first_name,omitempty"`
	LastName   string    `json:"last_name" yaml:"last_name,omitempty"`
	GroupID    string    `json:"group_id" yaml:"group_id,omitempty"`     // Идентификатор группы на портале
	GroupName  string    `json:"group_name" yaml:"group_name,omitempty"` // Отображаемое название группы
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// HasGroup сообщает, выбрал ли пользователь группу
func (u *User) HasGroup() bool {
	return u != nil && u.GroupID != ""
}

// DisplayName возвращает имя для приветствия
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return "@" + u.Username
	default:
		return "студент"
	}
}
