package state

import (
	"sync"
	"time"
)

// DefaultTTL через столько брошенный диалог забывается
const DefaultTTL = 15 * time.Minute

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	userData, exists := sm.states[telegramID]
	sm.mu.RUnlock()

	if !exists {
		return StateNone
	}

	if sm.ttl > 0 && sm.now().Sub(userData.UpdatedAt) > sm.ttl {
		sm.ClearState(telegramID)
		return StateNone
	}
	return userData.State
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		// Если состояние None, удаляем запись
		delete(sm.states, telegramID)
		return
	}

	sm.states[telegramID] = &UserData{
		State:     state,
		UpdatedAt: sm.now(),
	}
}

// ClearState очищает состояние пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
