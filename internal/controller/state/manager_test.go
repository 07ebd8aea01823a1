package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/sampark_kvk/internal/navigation"
)

func TestManager_DispatchAndGet(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, NewUserData(), sm.Get(1))

	sm.Dispatch(1, Navigate{View: navigation.ViewSchedule})
	assert.Equal(t, navigation.ViewSchedule, sm.Get(1).View)
	assert.Equal(t, navigation.DefaultView, sm.Get(2).View)

	got := sm.Get(1)
	got.View = navigation.ViewAcademics
	assert.Equal(t, navigation.ViewSchedule, sm.Get(1).View)
}

func TestManager_DialogData(t *testing.T) {
	sm := NewManager()

	sm.Dispatch(7, StartDialog{State: StateSignUpEmail, Data: map[string]any{KeySignUpRole: "parent"}})
	sm.Dispatch(7, SetDialogData{Key: KeyEmail, Value: "a@x.com"})

	assert.Equal(t, StateSignUpEmail, sm.GetState(7))
	assert.Equal(t, "parent", sm.GetString(7, KeySignUpRole))
	assert.Equal(t, "a@x.com", sm.GetString(7, KeyEmail))
	assert.Empty(t, sm.GetString(7, "missing"))

	sm.ClearState(7)
	assert.Equal(t, StateNone, sm.GetState(7))
}

func TestManager_LastIssuedTokenWins(t *testing.T) {
	sm := NewManager()

	first := sm.BeginFetch(1, SlotRoster)
	second := sm.BeginFetch(1, SlotRoster)
	other := sm.BeginFetch(1, SlotScreen)

	// второй запрос завершился первым
	_, ok := sm.Commit(1, second, SelectClass{Class: "X-B"})
	require.True(t, ok)

	// устаревший результат отбрасывается
	_, ok = sm.Commit(1, first, SelectClass{Class: "X-A"})
	assert.False(t, ok)
	assert.Equal(t, "X-B", sm.Get(1).SelectedClass)

	assert.True(t, sm.IsCurrent(1, other))
	assert.False(t, sm.IsCurrent(1, first))
}

func TestManager_CommitAfterClear(t *testing.T) {
	sm := NewManager()

	tok := sm.BeginFetch(1, SlotScreen)
	sm.ClearState(1)

	_, ok := sm.Commit(1, tok, ClearDialog{})
	assert.False(t, ok)
}

func TestManager_Concurrent(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			tok := sm.BeginFetch(chat%5, SlotRoster)
			sm.Commit(chat%5, tok, ToggleAttendance{StudentID: "S101"})
			sm.Get(chat % 5)
		}(int64(i))
	}
	wg.Wait()

	for chat := range int64(5) {
		assert.NotNil(t, sm.Get(chat).Attendance)
	}
}
