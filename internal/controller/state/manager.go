package state

import (
	"sync"
)

// Slot независимый слот данных экрана; у каждого своя последовательность запросов
type Slot string

const (
	SlotRoster    Slot = "roster"
	SlotScreen    Slot = "screen"
	SlotAssistant Slot = "assistant"
)

// Token выдаётся при старте запроса. Результат применяется, только если
// после него в тот же слот не был выдан более новый токен.
type Token struct {
	Slot Slot
	Seq  uint64
}

type entry struct {
	data   UserData
	tokens map[Slot]uint64
}

// Manager управляет состояниями чатов
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*entry // chatID -> состояние
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*entry),
	}
}

// Get возвращает копию состояния чата
func (sm *Manager) Get(chatID int64) UserData {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if e, exists := sm.states[chatID]; exists {
		return e.data.clone()
	}
	return NewUserData()
}

// Dispatch применяет переход и возвращает новое состояние
func (sm *Manager) Dispatch(chatID int64, action Action) UserData {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	e := sm.entry(chatID)
	e.data = Reduce(e.data, action)
	return e.data.clone()
}

// BeginFetch выдаёт токен нового запроса в слот, делая предыдущие устаревшими
func (sm *Manager) BeginFetch(chatID int64, slot Slot) Token {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	e := sm.entry(chatID)
	e.tokens[slot]++
	return Token{Slot: slot, Seq: e.tokens[slot]}
}

// IsCurrent проверяет, что токен последний выданный в своём слоте
func (sm *Manager) IsCurrent(chatID int64, token Token) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	e, exists := sm.states[chatID]
	return exists && e.tokens[token.Slot] == token.Seq
}

// Commit применяет переход, только если токен всё ещё актуален.
// Проверка и применение выполняются под одной блокировкой.
func (sm *Manager) Commit(chatID int64, token Token, action Action) (UserData, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	e, exists := sm.states[chatID]
	if !exists || e.tokens[token.Slot] != token.Seq {
		return UserData{}, false
	}
	e.data = Reduce(e.data, action)
	return e.data.clone(), true
}

// GetState получает текущий диалог чата
func (sm *Manager) GetState(chatID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if e, exists := sm.states[chatID]; exists {
		return e.data.State
	}
	return StateNone
}

// GetData получает временные данные диалога
func (sm *Manager) GetData(chatID int64, key string) (any, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if e, exists := sm.states[chatID]; exists {
		value, ok := e.data.Data[key]
		return value, ok
	}
	return nil, false
}

// GetString получает строковые данные диалога
func (sm *Manager) GetString(chatID int64, key string) string {
	v, _ := sm.GetData(chatID, key)
	s, _ := v.(string)
	return s
}

// ClearState удаляет всё состояние чата
func (sm *Manager) ClearState(chatID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, chatID)
}

func (sm *Manager) entry(chatID int64) *entry {
	e, exists := sm.states[chatID]
	if !exists {
		e = &entry{
			data:   NewUserData(),
			tokens: make(map[Slot]uint64),
		}
		sm.states[chatID] = e
	}
	return e
}
