package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{"frame", "time", "target", "running", "speed", "playing"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunOptions is the serializable part of pan.Options.
type RunOptions struct {
	Container       string `json:"container"`
	PauseOnMouseOut bool   `json:"pause_on_mouse_out"`
	IsResizable     bool   `json:"is_resizable"`
}

func OptionsOf(o pan.Options) RunOptions {
	return RunOptions{
		Container:       o.Container,
		PauseOnMouseOut: o.PauseOnMouseOut,
		IsResizable:     o.IsResizable,
	}
}

// RunInfo describes how a run was produced.
type RunInfo struct {
	Scenario       string     `json:"scenario"`
	FPS            int        `json:"fps"`
	ContainerWidth float64    `json:"container_width"`
	ContentWidth   float64    `json:"content_width"`
	Touch          bool       `json:"touch"`
	Options        RunOptions `json:"options"`
}

type RunMetadata struct {
	RunInfo
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Frames    int                `json:"frames"`
	Writes    int                `json:"writes"`
	Metrics   map[string]float64 `json:"metrics"`
	// NonFinite lists metrics whose value was NaN or infinite and so could
	// not be stored in Metrics.
	NonFinite []string `json:"non_finite,omitempty"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	name := info.Scenario
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d_%s", name, time.Now().Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		RunInfo:   info,
		ID:        runID,
		Timestamp: time.Now(),
		Frames:    result.Frames,
		Writes:    result.Writes,
		Metrics:   make(map[string]float64, len(result.Metrics)),
	}
	for k, v := range result.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			meta.NonFinite = append(meta.NonFinite, k)
			continue
		}
		meta.Metrics[k] = v
	}
	sort.Strings(meta.NonFinite)

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, smp := range result.Samples {
		if err := w.Write(sampleRow(smp)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func sampleRow(s sim.Sample) []string {
	return []string{
		strconv.Itoa(s.Frame),
		strconv.FormatFloat(s.Time, 'f', 6, 64),
		strconv.FormatFloat(s.Target, 'g', -1, 64),
		strconv.FormatFloat(s.Running, 'g', -1, 64),
		strconv.FormatFloat(s.Speed, 'g', -1, 64),
		strconv.FormatBool(s.Playing),
	}
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads the per-frame samples of a run. Malformed rows are
// skipped.
func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		smp, ok := parseRow(record)
		if !ok {
			continue
		}
		samples = append(samples, smp)
	}

	return samples, nil
}

func parseRow(record []string) (sim.Sample, bool) {
	if len(record) != len(sampleHeader) {
		return sim.Sample{}, false
	}

	frame, err := strconv.Atoi(record[0])
	if err != nil {
		return sim.Sample{}, false
	}
	var vals [4]float64
	for i := range vals {
		v, err := strconv.ParseFloat(record[i+1], 64)
		if err != nil {
			return sim.Sample{}, false
		}
		vals[i] = v
	}
	playing, err := strconv.ParseBool(record[5])
	if err != nil {
		return sim.Sample{}, false
	}

	return sim.Sample{
		Frame:   frame,
		Time:    vals[0],
		Target:  vals[1],
		Running: vals[2],
		Speed:   vals[3],
		Playing: playing,
	}, true
}
