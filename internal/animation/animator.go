// Package animation morphs the deposit chart's path from its previous shape
// to a new one over a series of frame ticks.
//
// An Animator is a two-phase state machine. StartAnimation moves it to
// Transitioning (or restarts a running transition from the shape currently
// on screen), and each Tick advances the morph until it lands exactly on the
// target and returns to Waiting. An Animator is owned by a single goroutine.
package animation

import (
	"math"

	"github.com/simaogato/invoicedesk-backend/internal/svgpath"
)

// DefaultRate is the share of the morph covered per tick
const DefaultRate = 0.02

// progress within this distance of 1 is treated as complete
const epsilon = 1e-9

// Phase is the animator's state
type Phase int

const (
	Waiting Phase = iota
	Transitioning
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// InterpolatorFactory builds the interpolator between two paths. It may panic
// on malformed input.
type InterpolatorFactory func(from, to string) svgpath.Interpolator

// State is a snapshot of an Animator
type State struct {
	Phase    Phase
	Current  string
	Target   string
	Progress float64
}

// Option configures an Animator
type Option func(*Animator)

// WithRate sets the progress added per tick. Values outside (0, 1] are ignored.
func WithRate(rate float64) Option {
	return func(a *Animator) {
		if rate > 0 && rate <= 1 {
			a.rate = rate
		}
	}
}

// WithScheduler has the animator register its Tick with s while
// transitioning. Without a scheduler the owner calls Tick directly.
func WithScheduler(s FrameScheduler) Option {
	return func(a *Animator) {
		a.scheduler = s
	}
}

// WithInterpolator replaces the path interpolator.
func WithInterpolator(f InterpolatorFactory) Option {
	return func(a *Animator) {
		if f != nil {
			a.newInterpolator = f
		}
	}
}

// Animator morphs a displayed path toward its most recent target
type Animator struct {
	phase    Phase
	current  string
	target   string
	progress float64
	ticks    int
	rate     float64

	interpolate     svgpath.Interpolator
	newInterpolator InterpolatorFactory

	scheduler  FrameScheduler
	frame      FrameID
	registered bool
	closed     bool
}

// New creates an animator at rest showing initial.
func New(initial string, opts ...Option) *Animator {
	a := &Animator{
		phase:           Waiting,
		current:         initial,
		target:          initial,
		rate:            DefaultRate,
		newInterpolator: svgpath.MustInterpolator,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns a snapshot of the animator.
func (a *Animator) State() State {
	return State{
		Phase:    a.phase,
		Current:  a.current,
		Target:   a.target,
		Progress: a.progress,
	}
}

// Current returns the path to display now.
func (a *Animator) Current() string { return a.current }

// Target returns the path the animator is heading to.
func (a *Animator) Target() string { return a.target }

// Phase returns the current phase.
func (a *Animator) Phase() Phase { return a.phase }

// Progress returns how far the running transition has come, in [0, 1].
func (a *Animator) Progress() float64 { return a.progress }

// MaxTicks returns the number of ticks a transition takes to complete.
func (a *Animator) MaxTicks() int {
	return int(math.Ceil(1/a.rate - epsilon))
}

// StartAnimation begins morphing toward next. It does nothing when next is
// already the target or the animator is closed, and reports whether a new
// transition was started.
//
// A transition already running is restarted from the shape currently
// displayed, so the path never jumps back to where the interrupted transition
// began.
func (a *Animator) StartAnimation(next string) bool {
	if a.closed || next == a.target {
		return false
	}

	a.target = next
	a.progress = 0
	a.ticks = 0
	a.interpolate = a.newInterpolator(a.current, next)

	if a.phase == Waiting {
		a.phase = Transitioning
		a.register()
	}
	return true
}

// Tick advances a running transition by one step. It does nothing while
// Waiting. When progress reaches 1 the displayed path becomes exactly the
// target and the animator returns to Waiting.
func (a *Animator) Tick() {
	if a.closed || a.phase != Transitioning {
		return
	}

	a.ticks++
	p := float64(a.ticks) * a.rate
	if p >= 1-epsilon {
		p = 1
	}
	a.progress = p

	if p < 1 {
		a.current = a.interpolate(p)
		return
	}

	a.current = a.target
	a.phase = Waiting
	a.interpolate = nil
	a.unregister()
}

// Close tears the animator down. A running transition stops where it is and
// no further ticks are applied.
func (a *Animator) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.unregister()
}

func (a *Animator) register() {
	if a.scheduler == nil || a.registered {
		return
	}
	a.frame = a.scheduler.Register(a.Tick)
	a.registered = true
}

func (a *Animator) unregister() {
	if a.scheduler == nil || !a.registered {
		return
	}
	a.scheduler.Unregister(a.frame)
	a.registered = false
}
