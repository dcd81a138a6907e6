// Package chartfeed serves deposit charts and streams their animated updates.
package chartfeed

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/animation"
	"github.com/simaogato/invoicedesk-backend/internal/chart"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
)

// Subscriber provides the deposit events of one invoice
type Subscriber interface {
	Subscribe(invoiceID uuid.UUID) (<-chan domain.DepositCreated, func())
}

// Frame is one rendered state of a live chart
type Frame struct {
	Path      string        `json:"path"`
	Progress  float64       `json:"progress"`
	Phase     string        `json:"phase"`
	Labels    []chart.Label `json:"labels"`
	SVGWidth  float64       `json:"svgWidth"`
	SVGHeight float64       `json:"svgHeight"`
}

// SessionConfig tunes a Session
type SessionConfig struct {
	FrameInterval time.Duration
	AnimationRate float64
}

// Session animates one viewer's chart of one invoice. Every animator
// transition happens on the goroutine running Run.
type Session struct {
	charts    *ChartService
	events    Subscriber
	invoiceID uuid.UUID
	cfg       SessionConfig

	anim  *animation.Animator
	clock *animation.FrameClock

	// shown annotates the path on screen; pending replaces it once the
	// running transition lands.
	shown   chartView
	pending *chartView
}

// chartView is the part of a chart that is swapped rather than morphed
type chartView struct {
	labels []chart.Label
	width  float64
	height float64
}

func viewOf(c *chart.DepositChart) chartView {
	return chartView{labels: c.Labels, width: c.SVGWidth, height: c.SVGHeight}
}

func (v chartView) equal(o chartView) bool {
	return v.width == o.width && v.height == o.height && slices.Equal(v.labels, o.labels)
}

// NewSession creates a Session. Zero config values fall back to a 16ms frame
// interval and the animator's default rate.
func NewSession(charts *ChartService, events Subscriber, invoiceID uuid.UUID, cfg SessionConfig) *Session {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 16 * time.Millisecond
	}
	if cfg.AnimationRate <= 0 {
		cfg.AnimationRate = animation.DefaultRate
	}
	return &Session{
		charts:    charts,
		events:    events,
		invoiceID: invoiceID,
		cfg:       cfg,
		clock:     animation.NewFrameClock(),
	}
}

// Run emits the current chart, then a frame each time the displayed path
// changes, until ctx ends, the event stream closes or emit fails. The
// animator is torn down on return. Until the invoice has two deposit dates
// nothing is emitted.
func (s *Session) Run(ctx context.Context, emit func(Frame) error) error {
	events, unsubscribe := s.events.Subscribe(s.invoiceID)
	defer unsubscribe()
	defer s.close()

	log := logger.FromContext(ctx).With(zap.String("invoice_id", s.invoiceID.String()))

	c, err := s.charts.DepositChart(ctx, s.invoiceID)
	if err != nil {
		return err
	}
	if c != nil {
		s.mount(c)
		if err := emit(s.frame()); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(s.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-events:
			if !ok {
				return nil
			}
			c, err := s.charts.DepositChart(ctx, s.invoiceID)
			if err != nil {
				return err
			}
			if c == nil {
				continue
			}
			if s.anim == nil {
				s.mount(c)
				if err := emit(s.frame()); err != nil {
					return err
				}
				continue
			}
			next := viewOf(c)
			switch {
			case s.anim.StartAnimation(c.Path):
				s.pending = &next
				log.Debug("Chart transition started", zap.Int("points", len(c.Series)))
			case s.anim.Phase() == animation.Transitioning:
				// already heading for this path
				s.pending = &next
			case !next.equal(s.shown):
				// same curve, new annotations
				s.shown = next
				if err := emit(s.frame()); err != nil {
					return err
				}
			}

		case <-ticker.C:
			if s.anim == nil || s.clock.Pending() == 0 {
				continue
			}
			before := s.anim.Current()
			s.clock.Fire()
			landed := s.anim.Phase() == animation.Waiting
			if landed && s.pending != nil {
				s.shown, s.pending = *s.pending, nil
			}
			if s.anim.Current() == before && !landed {
				continue
			}
			if err := emit(s.frame()); err != nil {
				return err
			}
		}
	}
}

func (s *Session) mount(c *chart.DepositChart) {
	s.anim = animation.New(c.Path,
		animation.WithScheduler(s.clock),
		animation.WithRate(s.cfg.AnimationRate),
	)
	s.shown = viewOf(c)
	s.pending = nil
}

func (s *Session) close() {
	if s.anim != nil {
		s.anim.Close()
	}
}

func (s *Session) frame() Frame {
	st := s.anim.State()
	return Frame{
		Path:      st.Current,
		Progress:  st.Progress,
		Phase:     st.Phase.String(),
		Labels:    s.shown.labels,
		SVGWidth:  s.shown.width,
		SVGHeight: s.shown.height,
	}
}
