package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/griddlepan/internal/sim"
)

// ExportSample is a sim.Sample with non-finite offsets encoded as null.
type ExportSample struct {
	Frame   int      `json:"frame"`
	Time    float64  `json:"time"`
	Target  *float64 `json:"target"`
	Running *float64 `json:"running"`
	Speed   float64  `json:"speed"`
	Playing bool     `json:"playing"`
}

type ExportData struct {
	Scenario string              `json:"scenario"`
	FPS      int                 `json:"fps"`
	Options  RunOptions          `json:"options"`
	Frames   int                 `json:"frames"`
	Samples  []ExportSample      `json:"samples"`
	Metrics  map[string]*float64 `json:"metrics"`
}

func exportData(info RunInfo, samples []sim.Sample, metrics map[string]float64) ExportData {
	data := ExportData{
		Scenario: info.Scenario,
		FPS:      info.FPS,
		Options:  info.Options,
		Frames:   len(samples),
		Samples:  make([]ExportSample, len(samples)),
		Metrics:  make(map[string]*float64, len(metrics)),
	}

	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Frame:   s.Frame,
			Time:    s.Time,
			Target:  finite(s.Target),
			Running: finite(s.Running),
			Speed:   s.Speed,
			Playing: s.Playing,
		}
	}
	for k, v := range metrics {
		data.Metrics[k] = finite(v)
	}

	return data
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func ExportJSON(path string, info RunInfo, samples []sim.Sample, metrics map[string]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, info, samples, metrics)
}

func ExportJSONStdout(info RunInfo, samples []sim.Sample, metrics map[string]float64) error {
	return WriteJSON(os.Stdout, info, samples, metrics)
}

func WriteJSON(w io.Writer, info RunInfo, samples []sim.Sample, metrics map[string]float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(info, samples, metrics))
}
