package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/griddlepan/internal/metrics"
	"github.com/san-kum/griddlepan/internal/sim"
)

// Config describes a step input: the offset starts at 0 and the target
// jumps to Target on the first frame.
type Config struct {
	ContainerWidth float64
	Target         float64
	Frames         int
	FPS            int
	Tolerance      float64
}

func DefaultConfig() Config {
	return Config{
		ContainerWidth: 200,
		Target:         -400,
		Frames:         300,
		FPS:            60,
		Tolerance:      metrics.DefaultTolerance,
	}
}

type Experiment struct {
	cfg       Config
	easer     Easer
	metrics   []sim.Metric
	observers []sim.Observer
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(easer Easer, ms []sim.Metric) error {
	if easer == nil {
		return fmt.Errorf("experiment needs an easer")
	}
	e.easer = easer
	e.metrics = ms
	return nil
}

func (e *Experiment) AddObserver(o sim.Observer) { e.observers = append(e.observers, o) }

// Run feeds the step input through the easer and returns one sample per
// frame.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.easer == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.cfg.Frames <= 0 || e.cfg.FPS <= 0 {
		return nil, fmt.Errorf("frames and fps must be positive, got %d and %d", e.cfg.Frames, e.cfg.FPS)
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	e.easer.Reset(e.cfg.ContainerWidth)

	result := &sim.Result{
		Samples: make([]sim.Sample, 0, e.cfg.Frames),
		Metrics: make(map[string]float64),
	}

	dt := 1.0 / float64(e.cfg.FPS)
	running := 0.0
	for f := 0; f < e.cfg.Frames; f++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		running = e.easer.Step(running, e.cfg.Target)
		s := sim.Sample{
			Frame:   f,
			Time:    float64(f+1) * dt,
			Target:  e.cfg.Target,
			Running: running,
			Playing: true,
		}
		result.Samples = append(result.Samples, s)
		result.Frames++

		for _, m := range e.metrics {
			m.Observe(s)
		}
		for _, o := range e.observers {
			o.OnFrame(s)
		}
	}

	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Comparison summarizes one easer's response to the step input.
type Comparison struct {
	Name         string
	SettleFrames float64
	Overshoot    float64
	Final        float64
}

// Compare runs each named easer against the same step input.
func Compare(ctx context.Context, r *Registry, names []string, cfg Config) ([]Comparison, error) {
	out := make([]Comparison, 0, len(names))
	for _, name := range names {
		easer, err := r.GetEaser(name, cfg.FPS)
		if err != nil {
			return out, err
		}

		settle := metrics.NewSettleFrames(cfg.Tolerance)
		over := metrics.NewOvershoot()

		exp := New(cfg)
		if err := exp.Setup(easer, []sim.Metric{settle, over}); err != nil {
			return out, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return out, fmt.Errorf("%s: %w", name, err)
		}

		out = append(out, Comparison{
			Name:         name,
			SettleFrames: result.Metrics[settle.Name()],
			Overshoot:    result.Metrics[over.Name()],
			Final:        result.Samples[len(result.Samples)-1].Running,
		})
	}
	return out, nil
}
