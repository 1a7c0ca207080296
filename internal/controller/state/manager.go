package state

import (
	"sync"
	"time"
)

// Manager хранит сессии регистрации по telegram ID. Сообщения одного
// участника приходят последовательно, блокировка нужна только для
// независимых участников, пишущих одновременно.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Begin начинает новую сессию, затирая незавершённую, если она была
func (m *Manager) Begin(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.sessions[telegramID] = &Session{
		Step:      StepFullname,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Step возвращает текущий шаг участника
func (m *Manager) Step(telegramID int64) Step {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sess, exists := m.sessions[telegramID]; exists {
		return sess.Step
	}
	return StepNone
}

// Snapshot возвращает копию сессии
func (m *Manager) Snapshot(telegramID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if sess, exists := m.sessions[telegramID]; exists {
		return *sess, true
	}
	return Session{}, false
}

// SaveAnswer записывает текстовый ответ в поле текущего шага и переводит
// сессию на следующий шаг. На шаге чека и без сессии текст не принимается —
// шаг остаётся прежним.
func (m *Manager) SaveAnswer(telegramID int64, value string) Step {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[telegramID]
	if !exists {
		return StepNone
	}

	switch sess.Step {
	case StepFullname:
		sess.Fullname = value
		sess.Step = StepPhone
	case StepPhone:
		sess.Phone = value
		sess.Step = StepBirthdate
	case StepBirthdate:
		sess.Birthdate = value
		sess.Step = StepAddress
	case StepAddress:
		sess.Address = value
		sess.Step = StepReceipt
	default:
		return sess.Step
	}

	sess.UpdatedAt = time.Now()
	return sess.Step
}

// Clear удаляет сессию участника
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, telegramID)
}

// PruneStale удаляет сессии, к которым не прикасались дольше ttl,
// и возвращает число удалённых
func (m *Manager) PruneStale(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	deadline := time.Now().Add(-ttl)
	pruned := 0
	for telegramID, sess := range m.sessions {
		if sess.UpdatedAt.Before(deadline) {
			delete(m.sessions, telegramID)
			pruned++
		}
	}
	return pruned
}

// Len возвращает число активных сессий
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}
