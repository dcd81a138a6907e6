package animation

import (
	"fmt"
	"math"
	"testing"

	"github.com/simaogato/invoicedesk-backend/internal/svgpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockScheduler is a mock implementation of FrameScheduler
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Register(fn func()) FrameID {
	args := m.Called(fn)
	return args.Get(0).(FrameID)
}

func (m *MockScheduler) Unregister(id FrameID) {
	m.Called(id)
}

// recordingFactory builds labelled interpolators and remembers each start shape.
type recordingFactory struct {
	starts []string
}

func (f *recordingFactory) build(from, to string) svgpath.Interpolator {
	f.starts = append(f.starts, from)
	return func(t float64) string {
		if t >= 1 {
			return to
		}
		return fmt.Sprintf("%s>%s@%.2f", from, to, t)
	}
}

func TestNew(t *testing.T) {
	a := New("M0,0L1,1")

	assert.Equal(t, State{Phase: Waiting, Current: "M0,0L1,1", Target: "M0,0L1,1"}, a.State())
	assert.Equal(t, 50, a.MaxTicks())
}

func TestStartAnimation_SameTargetIsNoop(t *testing.T) {
	sched := new(MockScheduler)
	a := New("M0,0L1,1", WithScheduler(sched))

	assert.False(t, a.StartAnimation("M0,0L1,1"))
	assert.False(t, a.StartAnimation("M0,0L1,1"))

	assert.Equal(t, Waiting, a.Phase())
	assert.Equal(t, "M0,0L1,1", a.Current())
	sched.AssertNotCalled(t, "Register", mock.Anything)
}

func TestStartAnimation_FromWaiting(t *testing.T) {
	sched := new(MockScheduler)
	sched.On("Register", mock.Anything).Return(FrameID(7)).Once()
	f := &recordingFactory{}
	a := New("A", WithScheduler(sched), WithInterpolator(f.build))

	require.True(t, a.StartAnimation("B"))

	assert.Equal(t, State{Phase: Transitioning, Current: "A", Target: "B", Progress: 0}, a.State())
	assert.Equal(t, []string{"A"}, f.starts)
	sched.AssertExpectations(t)
}

func TestStartAnimation_DuplicateWhileTransitioning(t *testing.T) {
	f := &recordingFactory{}
	a := New("A", WithInterpolator(f.build), WithRate(0.25))

	a.StartAnimation("B")
	a.Tick()
	before := a.State()

	assert.False(t, a.StartAnimation("B"))
	assert.Equal(t, before, a.State())
	assert.Len(t, f.starts, 1)
}

func TestStartAnimation_InterruptionStartsFromLiveShape(t *testing.T) {
	sched := new(MockScheduler)
	sched.On("Register", mock.Anything).Return(FrameID(1)).Once()
	f := &recordingFactory{}
	a := New("A", WithScheduler(sched), WithInterpolator(f.build), WithRate(0.25))

	a.StartAnimation("B")
	a.Tick()
	a.Tick()
	live := a.Current()
	require.Equal(t, "A>B@0.50", live)

	require.True(t, a.StartAnimation("C"))

	assert.Equal(t, Transitioning, a.Phase())
	assert.Equal(t, "C", a.Target())
	assert.Equal(t, 0.0, a.Progress())
	assert.Equal(t, live, a.Current())
	assert.Equal(t, []string{"A", live}, f.starts, "new transition must start at the live shape")

	a.Tick()
	assert.Equal(t, "A>B@0.50>C@0.25", a.Current())

	// still a single registration for the whole run
	sched.AssertNumberOfCalls(t, "Register", 1)
	sched.AssertNotCalled(t, "Unregister", mock.Anything)
}

func TestTick_WhileWaitingIsNoop(t *testing.T) {
	a := New("A")
	a.Tick()
	assert.Equal(t, State{Phase: Waiting, Current: "A", Target: "A"}, a.State())
}

func TestTick_Convergence(t *testing.T) {
	rates := []float64{DefaultRate, 0.1, 0.3, 1.0 / 3.0, 0.07, 1}

	for _, rate := range rates {
		t.Run(fmt.Sprintf("rate %.4f", rate), func(t *testing.T) {
			sched := new(MockScheduler)
			sched.On("Register", mock.Anything).Return(FrameID(3)).Once()
			sched.On("Unregister", FrameID(3)).Return().Once()

			a := New("M0,0L10,10", WithScheduler(sched), WithRate(rate))
			a.StartAnimation("M0,0L20,40L30,0")

			limit := int(math.Ceil(1 / rate))
			ticks := 0
			for a.Phase() == Transitioning && ticks < limit {
				a.Tick()
				ticks++
				assert.GreaterOrEqual(t, a.Progress(), 0.0)
				assert.LessOrEqual(t, a.Progress(), 1.0)
			}

			assert.Equal(t, Waiting, a.Phase())
			assert.Equal(t, 1.0, a.Progress())
			assert.Equal(t, "M0,0L20,40L30,0", a.Current())
			assert.LessOrEqual(t, ticks, limit)
			sched.AssertExpectations(t)
		})
	}
}

func TestTick_ProgressIsMonotonic(t *testing.T) {
	a := New("A", WithInterpolator((&recordingFactory{}).build))
	a.StartAnimation("B")

	last := 0.0
	for a.Phase() == Transitioning {
		a.Tick()
		assert.Greater(t, a.Progress(), last)
		last = a.Progress()
	}
	assert.Equal(t, 1.0, last)
}

func TestClose(t *testing.T) {
	sched := new(MockScheduler)
	sched.On("Register", mock.Anything).Return(FrameID(9)).Once()
	sched.On("Unregister", FrameID(9)).Return().Once()
	a := New("A", WithScheduler(sched), WithInterpolator((&recordingFactory{}).build), WithRate(0.25))

	a.StartAnimation("B")
	a.Tick()
	before := a.State()

	a.Close()
	a.Tick()
	a.Close()

	assert.Equal(t, before, a.State())
	assert.False(t, a.StartAnimation("C"))
	sched.AssertExpectations(t)
}

func TestClose_WhileWaiting(t *testing.T) {
	sched := new(MockScheduler)
	a := New("A", WithScheduler(sched))

	a.Close()

	sched.AssertNotCalled(t, "Unregister", mock.Anything)
}

func TestAnimator_WithFrameClock(t *testing.T) {
	clock := NewFrameClock()
	a := New("M0,0L10,10", WithScheduler(clock), WithRate(0.5))

	a.StartAnimation("M0,0L20,20")
	assert.Equal(t, 1, clock.Pending())

	clock.Fire()
	assert.Equal(t, "M0,0C5,5,10,10,15,15", a.Current())

	clock.Fire()
	assert.Equal(t, "M0,0L20,20", a.Current())
	assert.Equal(t, Waiting, a.Phase())
	assert.Equal(t, 0, clock.Pending())

	assert.Equal(t, 0, clock.Fire())
}

func TestAnimator_MalformedPathPanics(t *testing.T) {
	a := New("M0,0L1,1")
	assert.Panics(t, func() { a.StartAnimation("not a path") })
}

func TestWithRate_IgnoresInvalid(t *testing.T) {
	for _, r := range []float64{0, -1, 1.5, math.NaN()} {
		a := New("A", WithRate(r))
		assert.Equal(t, 50, a.MaxTicks())
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "waiting", Waiting.String())
	assert.Equal(t, "transitioning", Transitioning.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
