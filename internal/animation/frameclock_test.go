package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameClock_FiresInRegistrationOrder(t *testing.T) {
	c := NewFrameClock()
	var order []string
	c.Register(func() { order = append(order, "a") })
	c.Register(func() { order = append(order, "b") })

	assert.Equal(t, 2, c.Fire())
	assert.Equal(t, 2, c.Fire())
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

func TestFrameClock_Unregister(t *testing.T) {
	c := NewFrameClock()
	calls := 0
	id := c.Register(func() { calls++ })

	c.Fire()
	c.Unregister(id)
	c.Unregister(id)
	c.Fire()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, c.Pending())
}

func TestFrameClock_UnregisterDuringFire(t *testing.T) {
	c := NewFrameClock()
	var second FrameID
	ran := 0
	c.Register(func() {
		ran++
		c.Unregister(second)
	})
	second = c.Register(func() { ran++ })

	assert.Equal(t, 1, c.Fire())
	assert.Equal(t, 1, ran)
}

func TestFrameClock_RegisterDuringFireWaitsForNextFrame(t *testing.T) {
	c := NewFrameClock()
	late := 0
	c.Register(func() {
		if late == 0 {
			c.Register(func() { late++ })
		}
	})

	c.Fire()
	assert.Equal(t, 0, late)
	c.Fire()
	assert.Equal(t, 1, late)
}
