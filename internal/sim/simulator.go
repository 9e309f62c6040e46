package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/resize"
)

// Runner drives a widget on a headless host through scripted steps.
type Runner struct {
	metrics   []Metric
	observers []Observer
}

func New() *Runner {
	return &Runner{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// session is the live state of one run.
type session struct {
	cfg    Config
	host   *Host
	signal *resize.Signal
	widget *pan.Widget

	clock   time.Duration
	pending *resize.Pending
	due     time.Duration
}

func (r *Runner) Run(ctx context.Context, cfg Config, steps []Step) (*Result, error) {
	if err := r.validate(cfg, steps); err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := newSession(cfg)
	result := &Result{
		Samples: make([]Sample, 0, totalFrames(steps)),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for i, step := range steps {
		s.apply(step)

		for f := 0; f < step.Frames; f++ {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			default:
			}

			if s.host.Frame() == 0 {
				result.Errors = append(result.Errors, SimError{Step: i, Frame: result.Frames, Message: "render loop not scheduled"})
			}
			s.tick()

			sample := s.sample(result.Frames)
			result.Frames++
			result.Samples = append(result.Samples, sample)

			for _, m := range r.metrics {
				m.Observe(sample)
			}
			for _, obs := range r.observers {
				obs.OnFrame(sample)
			}
		}
	}

	result.Bounds = s.widget.Bounds()
	if strip := s.host.Strip(s.cfg.ContentSelector); strip != nil {
		result.Writes = strip.Writes()
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) validate(cfg Config, steps []Step) error {
	if cfg.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", cfg.FrameRate)
	}
	if cfg.ContainerWidth < 0 {
		return fmt.Errorf("container width must not be negative, got %f", cfg.ContainerWidth)
	}
	if cfg.ContentWidth < 0 {
		return fmt.Errorf("content width must not be negative, got %f", cfg.ContentWidth)
	}
	for i, step := range steps {
		if step.Frames < 0 {
			return fmt.Errorf("step %d: frames must not be negative, got %d", i, step.Frames)
		}
	}
	return nil
}

func newSession(cfg Config) *session {
	if cfg.ContentSelector == "" {
		cfg.ContentSelector = pan.DefaultContainer
	}
	host := NewHost(cfg.ContainerLeft, cfg.ContainerWidth)
	host.SetContent(cfg.ContentSelector, cfg.ContentWidth)
	host.SetTouch(cfg.Touch)

	signal := resize.New(cfg.ResizeWindow)
	s := &session{
		cfg:    cfg,
		host:   host,
		signal: signal,
	}
	s.widget = pan.New(host, signal, cfg.Options)
	return s
}

func (s *session) apply(step Step) {
	left, width := s.host.ContainerLeft(), s.host.ContainerWidth()
	geometryChanged := false
	if step.ContainerLeft != nil {
		left, geometryChanged = *step.ContainerLeft, true
	}
	if step.ContainerWidth != nil {
		width, geometryChanged = *step.ContainerWidth, true
	}
	if step.ContentWidth != nil {
		s.host.SetContent(s.cfg.ContentSelector, *step.ContentWidth)
		geometryChanged = true
	}
	if geometryChanged {
		s.host.SetGeometry(left, width)
		p := s.signal.Raw()
		s.pending, s.due = &p, s.clock+p.Delay
	}

	if step.Options != nil {
		s.widget.Option(step.Options)
	}
	if step.Reinit {
		s.widget.Init()
	}
	if step.Hover != nil {
		if *step.Hover {
			s.host.Enter()
		} else {
			s.host.Leave()
		}
	}
	if step.PointerX != nil {
		s.host.MovePointer(*step.PointerX)
	}
	if step.Cancel {
		s.widget.Cancel()
	}
	if step.Before {
		s.widget.Before()
	}
	if step.End {
		s.widget.End()
	}
}

// tick advances the virtual clock by one frame and settles a due resize.
func (s *session) tick() {
	s.clock += time.Second / time.Duration(s.cfg.FrameRate)
	if s.pending != nil && s.clock >= s.due {
		s.signal.Settle(s.pending.Gen)
		s.pending = nil
	}
}

func (s *session) sample(frame int) Sample {
	st := s.widget.State()
	return Sample{
		Frame:   frame,
		Time:    s.clock.Seconds(),
		Target:  st.TargetOffset,
		Running: st.RunningOffset,
		Speed:   st.Speed,
		Playing: st.Playing,
	}
}

func totalFrames(steps []Step) int {
	n := 0
	for _, s := range steps {
		n += s.Frames
	}
	return n
}
