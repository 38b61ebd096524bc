package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Пользователь вводит название группы после /setgroup
	StateEnteringGroupName UserState = "entering_group_name"
)

// UserData хранит состояние диалога и время его последнего изменения
type UserData struct {
	State     UserState
	UpdatedAt time.Time
}
