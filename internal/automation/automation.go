package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/griddlepan/internal/config"
	"github.com/san-kum/griddlepan/internal/metrics"
	"github.com/san-kum/griddlepan/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted pan session
type Scenario struct {
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	ContainerLeft  float64           `yaml:"container_left"`
	ContainerWidth float64           `yaml:"container_width"`
	ContentWidth   float64           `yaml:"content_width"`
	Content        string            `yaml:"content"`
	Touch          bool              `yaml:"touch"`
	FPS            int               `yaml:"fps"`
	ResizeWindowMs int               `yaml:"resize_window_ms"`
	Options        config.PanOptions `yaml:"options"`
	Steps          []ScenarioStep    `yaml:"steps"`
}

// ScenarioStep changes the host and then runs Frames frames
type ScenarioStep struct {
	Frames         int                `yaml:"frames"`
	PointerX       *float64           `yaml:"pointer_x"`
	Hover          *bool              `yaml:"hover"`
	ContainerLeft  *float64           `yaml:"container_left"`
	ContainerWidth *float64           `yaml:"container_width"`
	ContentWidth   *float64           `yaml:"content_width"`
	Options        *config.PanOptions `yaml:"options"`
	Reinit         bool               `yaml:"reinit"`
	Cancel         bool               `yaml:"cancel"`
	Before         bool               `yaml:"before"`
	End            bool               `yaml:"end"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario, filling geometry defaults
func ParseScenario(data []byte) (*Scenario, error) {
	def := sim.DefaultConfig()
	scenario := Scenario{
		ContainerWidth: def.ContainerWidth,
		ContentWidth:   def.ContentWidth,
		Content:        def.ContentSelector,
		FPS:            def.FrameRate,
	}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config converts the scenario header into a runner config
func (s *Scenario) Config() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Options = s.Options.Override()
	cfg.ContainerLeft = s.ContainerLeft
	cfg.ContainerWidth = s.ContainerWidth
	cfg.ContentWidth = s.ContentWidth
	cfg.Touch = s.Touch
	if s.Content != "" {
		cfg.ContentSelector = s.Content
	}
	if s.FPS != 0 {
		cfg.FrameRate = s.FPS
	}
	if s.ResizeWindowMs > 0 {
		cfg.ResizeWindow = time.Duration(s.ResizeWindowMs) * time.Millisecond
	}
	return cfg
}

// RunnerSteps converts the scenario steps into runner steps
func (s *Scenario) RunnerSteps() []sim.Step {
	steps := make([]sim.Step, 0, len(s.Steps))
	for _, st := range s.Steps {
		step := sim.Step{
			Frames:         st.Frames,
			PointerX:       st.PointerX,
			Hover:          st.Hover,
			ContainerLeft:  st.ContainerLeft,
			ContainerWidth: st.ContainerWidth,
			ContentWidth:   st.ContentWidth,
			Reinit:         st.Reinit,
			Cancel:         st.Cancel,
			Before:         st.Before,
			End:            st.End,
		}
		if st.Options != nil {
			step.Options = st.Options.Override()
		}
		steps = append(steps, step)
	}
	return steps
}

// RunScenario executes every step of a scenario in one session
func RunScenario(ctx context.Context, scenario *Scenario, ms []sim.Metric, observers ...sim.Observer) (*sim.Result, error) {
	r := sim.New()
	for _, m := range ms {
		r.AddMetric(m)
	}
	for _, o := range observers {
		r.AddObserver(o)
	}

	result, err := r.Run(ctx, scenario.Config(), scenario.RunnerSteps())
	if err != nil {
		return result, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, nil
}

// PointerSweep runs one session per pointer position across the container
type PointerSweep struct {
	Config   sim.Config
	From     float64
	To       float64
	NumSteps int
	Frames   int
}

// SweepResult holds the outcome of one sweep position
type SweepResult struct {
	PointerX     float64
	Target       float64
	Final        float64
	SettleFrames float64
	Overshoot    float64
}

// RunSweep executes a pointer sweep concurrently
func RunSweep(ctx context.Context, sweep *PointerSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	cfg := sweep.Config
	if cfg.Options == nil {
		cfg.Options = config.PanOptions{PauseOnMouseOut: boolPtr(false)}.Override()
	}

	stride := (sweep.To - sweep.From) / float64(sweep.NumSteps-1)
	jobs := make([]sim.Job, sweep.NumSteps)
	for i := range jobs {
		x := sweep.From + float64(i)*stride
		jobs[i] = sim.Job{
			Name:   fmt.Sprintf("x=%.1f", x),
			Config: cfg,
			Steps:  []sim.Step{{Frames: sweep.Frames, PointerX: &x}},
		}
	}

	e := sim.NewEnsemble(func() []sim.Metric {
		return []sim.Metric{metrics.NewSettleFrames(metrics.DefaultTolerance), metrics.NewOvershoot()}
	})
	results, err := e.Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(results))
	for i, res := range results {
		sr := SweepResult{
			PointerX:     *jobs[i].Steps[0].PointerX,
			SettleFrames: res.Metrics["settle_frames"],
			Overshoot:    res.Metrics["overshoot"],
		}
		if n := len(res.Samples); n > 0 {
			sr.Target = res.Samples[n-1].Target
			sr.Final = res.Samples[n-1].Running
		}
		out[i] = sr
	}
	return out, nil
}

// JitterConfig drives random pointer walks over a container
type JitterConfig struct {
	Config        sim.Config
	Moves         int
	FramesPerMove int
	NumTrials     int
	Seed          int64
}

// JitterResult holds statistics from one random walk
type JitterResult struct {
	TrialID   int
	Overshoot float64
	Bounded   bool
}

// RunJitter moves the pointer to random positions and checks that the
// running offset never leaves the content range
func RunJitter(ctx context.Context, cfg *JitterConfig) ([]JitterResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	base := cfg.Config
	if base.Options == nil {
		base.Options = config.PanOptions{PauseOnMouseOut: boolPtr(false)}.Override()
	}
	overflow := base.ContentWidth - base.ContainerWidth

	results := make([]JitterResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		steps := make([]sim.Step, cfg.Moves)
		for i := range steps {
			x := base.ContainerLeft + rng.Float64()*base.ContainerWidth
			steps[i] = sim.Step{Frames: cfg.FramesPerMove, PointerX: &x}
		}

		r := sim.New()
		over := metrics.NewOvershoot()
		r.AddMetric(over)
		result, err := r.Run(ctx, base, steps)
		if err != nil {
			return results, err
		}

		bounded := true
		for _, s := range result.Samples {
			if s.Running > 0 || s.Running < -overflow {
				bounded = false
				break
			}
		}

		results = append(results, JitterResult{
			TrialID:   trial,
			Overshoot: over.Value(),
			Bounded:   bounded,
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("Jitter: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// JitterStats counts bounded and escaped trials
func JitterStats(results []JitterResult) (boundedCount int, escapedCount int) {
	for _, r := range results {
		if r.Bounded {
			boundedCount++
		} else {
			escapedCount++
		}
	}
	return
}

func boolPtr(b bool) *bool { return &b }
