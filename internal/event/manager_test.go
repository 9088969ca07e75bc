package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_DispatchInSubscriptionOrder(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeHistoryChanged, func(e Event) bool {
		got = append(got, "first")
		data := e.Data.(HistoryChangedData)
		assert.True(t, data.CanUndo)
		return false
	})
	m.Subscribe(TypeHistoryChanged, func(e Event) bool {
		got = append(got, "second")
		return false
	})
	m.Subscribe(TypeEntityMoved, func(e Event) bool {
		got = append(got, "other type")
		return false
	})

	m.Dispatch(TypeHistoryChanged, HistoryChangedData{CanUndo: true})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestManager_ConsumedStopsPropagation(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeKeyPressed, func(Event) bool { calls++; return true })
	m.Subscribe(TypeKeyPressed, func(Event) bool { calls++; return false })

	m.Dispatch(TypeKeyPressed, KeyPressedData{})
	assert.Equal(t, 1, calls)
}

func TestManager_NoHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() { m.Dispatch(TypeAppQuit, AppQuitData{}) })
}

func TestManager_SubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	late := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		m.Subscribe(TypeAppReady, func(Event) bool { late++; return false })
		return false
	})

	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 0, late, "handlers added mid-dispatch wait for the next event")
	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 1, late)
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "LookupFailed", TypeLookupFailed.String())
	assert.Equal(t, "Unknown", Type(99).String())
}
