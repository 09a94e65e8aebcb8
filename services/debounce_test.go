package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerLastWriteWins(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var calls []string
	record := func(value string) func(uint64) {
		return func(uint64) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, value)
		}
	}

	d.Trigger(record("p"))
	d.Trigger(record("py"))
	d.Trigger(record("pyt"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	// give superseded timers a chance to misfire
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"pyt"}, calls)
}

func TestDebouncerTickets(t *testing.T) {
	d := NewDebouncer(time.Hour)

	first := d.Trigger(func(uint64) {})
	assert.True(t, d.IsCurrent(first))

	second := d.Trigger(func(uint64) {})
	assert.False(t, d.IsCurrent(first))
	assert.True(t, d.IsCurrent(second))

	d.Stop()
	assert.False(t, d.IsCurrent(second))
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func(uint64) { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNewDebouncerDefaultWindow(t *testing.T) {
	assert.Equal(t, DefaultSearchDebounce, NewDebouncer(0).Window())
	assert.Equal(t, time.Second, NewDebouncer(time.Second).Window())
}
