package animation

import "sort"

// FrameID identifies a registered frame callback
type FrameID uint64

// FrameScheduler delivers a callback once per frame until it is unregistered.
type FrameScheduler interface {
	Register(fn func()) FrameID
	Unregister(id FrameID)
}

// FrameClock is a cooperative FrameScheduler: callbacks run only when its
// owner calls Fire, on the owner's goroutine. It is not safe for concurrent
// use.
type FrameClock struct {
	next      FrameID
	callbacks map[FrameID]func()
}

// NewFrameClock creates an empty FrameClock.
func NewFrameClock() *FrameClock {
	return &FrameClock{callbacks: make(map[FrameID]func())}
}

// Register adds fn to every subsequent frame.
func (c *FrameClock) Register(fn func()) FrameID {
	c.next++
	c.callbacks[c.next] = fn
	return c.next
}

// Unregister removes a callback. Unknown IDs are ignored.
func (c *FrameClock) Unregister(id FrameID) {
	delete(c.callbacks, id)
}

// Pending reports how many callbacks are registered.
func (c *FrameClock) Pending() int {
	return len(c.callbacks)
}

// Fire runs one frame: every callback registered when Fire was called, in
// registration order. A callback unregistered by an earlier one in the same
// frame is skipped. It returns the number of callbacks run.
func (c *FrameClock) Fire() int {
	if len(c.callbacks) == 0 {
		return 0
	}
	ids := make([]FrameID, 0, len(c.callbacks))
	for id := range c.callbacks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := c.callbacks[id]
		if !ok {
			continue
		}
		fn()
		ran++
	}
	return ran
}
