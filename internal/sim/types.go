package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/griddlepan/internal/pan"
)

// Sample is the widget state observed after one frame.
type Sample struct {
	Frame   int
	Time    float64
	Target  float64
	Running float64
	Speed   float64
	Playing bool
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s Sample)
}

// Config describes the scripted host a run starts from.
type Config struct {
	Options         *pan.Override
	ContainerLeft   float64
	ContainerWidth  float64
	ContentWidth    float64
	ContentSelector string
	Touch           bool
	FrameRate       int
	ResizeWindow    time.Duration
}

func DefaultConfig() Config {
	return Config{
		ContainerWidth:  200,
		ContentWidth:    600,
		ContentSelector: pan.DefaultContainer,
		FrameRate:       60,
		ResizeWindow:    100 * time.Millisecond,
	}
}

// Step changes the host, then runs Frames frames. Nil fields are left alone.
type Step struct {
	Frames         int
	PointerX       *float64
	Hover          *bool
	ContainerLeft  *float64
	ContainerWidth *float64
	ContentWidth   *float64
	Options        *pan.Override
	Reinit         bool
	Cancel         bool
	Before         bool
	End            bool
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Frames  int
	Writes  int
	Bounds  pan.Bounds
	Errors  []error
}

type SimError struct {
	Step    int
	Frame   int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (frame %d): %s", e.Step, e.Frame, e.Message)
}
