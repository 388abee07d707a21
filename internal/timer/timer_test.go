package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_FiresAtDeadline(t *testing.T) {
	c := NewFake()
	var fired int
	c.AfterFunc(2*time.Second, func() { fired++ })

	c.Advance(1999 * time.Millisecond)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, c.Pending())

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, c.Pending())

	c.Advance(time.Hour)
	assert.Equal(t, 1, fired, "fires once")
}

func TestFake_StopPreventsCallback(t *testing.T) {
	c := NewFake()
	var fired bool
	tm := c.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second stop reports false")

	c.Advance(time.Minute)
	assert.False(t, fired)
}

func TestFake_StopAfterFire(t *testing.T) {
	c := NewFake()
	tm := c.AfterFunc(time.Second, func() {})
	c.Advance(time.Second)
	assert.False(t, tm.Stop())
}

func TestFake_Order(t *testing.T) {
	c := NewFake()
	var order []string
	c.AfterFunc(3*time.Second, func() { order = append(order, "c") })
	c.AfterFunc(time.Second, func() { order = append(order, "a") })
	c.AfterFunc(time.Second, func() { order = append(order, "b") })

	c.Advance(5 * time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSystem_AfterFunc(t *testing.T) {
	var fired atomic.Bool
	System{}.AfterFunc(10*time.Millisecond, func() { fired.Store(true) })

	assert.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
}

func TestSystem_Stop(t *testing.T) {
	var fired atomic.Bool
	tm := System{}.AfterFunc(50*time.Millisecond, func() { fired.Store(true) })

	assert.True(t, tm.Stop())
	time.Sleep(100 * time.Millisecond)
	assert.False(t, fired.Load())
}
