package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FiresAfterDelay(t *testing.T) {
	r := New()
	fired := 0
	r.Schedule(3, func() { fired++ })

	r.AdvanceBy(2)
	assert.Equal(t, 0, fired)

	r.Advance()
	assert.Equal(t, 1, fired)
	assert.Equal(t, uint64(3), r.Now())

	// at-most-once
	r.AdvanceBy(10)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ZeroDelayRunsNextTick(t *testing.T) {
	r := New()
	fired := false
	r.Schedule(0, func() { fired = true })
	assert.False(t, fired)

	r.Advance()
	assert.True(t, fired)
}

func TestRegistry_Cancel(t *testing.T) {
	r := New()
	fired := false
	h := r.Schedule(5, func() { fired = true })
	require.True(t, r.Pending(h))

	r.Cancel(h)
	assert.False(t, r.Pending(h))

	r.AdvanceBy(10)
	assert.False(t, fired)
}

func TestRegistry_CancelIsIdempotent(t *testing.T) {
	r := New()
	h := r.Schedule(1, func() {})
	r.Advance()

	// Уже сработавший и неизвестный handle: no-op
	r.Cancel(h)
	r.Cancel(h)
	r.Cancel(Handle(9999))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_OrderWithinTick(t *testing.T) {
	r := New()
	var order []int
	r.Schedule(2, func() { order = append(order, 1) })
	r.Schedule(1, func() { order = append(order, 0) })
	r.Schedule(2, func() { order = append(order, 2) })

	r.AdvanceBy(2)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestRegistry_CallbackSchedulesAndCancels(t *testing.T) {
	r := New()
	var later Handle
	laterFired := false
	childFired := false

	r.Schedule(1, func() {
		r.Schedule(1, func() { childFired = true })
		r.Cancel(later)
	})
	later = r.Schedule(2, func() { laterFired = true })

	r.Advance()
	assert.False(t, childFired, "child scheduled during Advance must wait for the next tick")

	r.Advance()
	assert.True(t, childFired)
	assert.False(t, laterFired)
}

func TestRegistry_PanickingCallbackIsIsolated(t *testing.T) {
	r := New()
	fired := false
	r.Schedule(1, func() { panic("boom") })
	r.Schedule(1, func() { fired = true })

	assert.NotPanics(t, func() { r.Advance() })
	assert.True(t, fired)
}
