package eventbus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New[string]()
	var received string

	bus.Subscribe(func(s string) error {
		received = s
		return nil
	})

	require.NoError(t, bus.Publish("hello"))
	assert.Equal(t, "hello", received)
}

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := New[int]()
	var order []int

	for i := range 4 {
		bus.Subscribe(func(int) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, bus.Publish(0))
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New[string]()
	called := false

	unsub := bus.Subscribe(func(string) error {
		called = true
		return nil
	})
	unsub()
	unsub()

	require.NoError(t, bus.Publish("test"))
	assert.False(t, called, "handler should not be called after unsubscribe")
	assert.Equal(t, 0, bus.Count())
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	bus := New[int]()
	calls := 0

	var unsub func()
	unsub = bus.Subscribe(func(int) error {
		calls++
		unsub()
		return nil
	})
	bus.Subscribe(func(int) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(1))
	require.NoError(t, bus.Publish(2))
	assert.Equal(t, 3, calls)
}

func TestBus_JoinsHandlerErrors(t *testing.T) {
	bus := New[int]()
	errA := errors.New("a")
	errB := errors.New("b")
	reached := false

	bus.Subscribe(func(int) error { return errA })
	bus.Subscribe(func(int) error {
		reached = true
		return errB
	})

	err := bus.Publish(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.True(t, reached, "an error must not stop delivery")
}

func TestBus_Count(t *testing.T) {
	bus := New[int]()

	unsub1 := bus.Subscribe(func(int) error { return nil })
	bus.Subscribe(func(int) error { return nil })
	assert.Equal(t, 2, bus.Count())

	unsub1()
	assert.Equal(t, 1, bus.Count())
}
