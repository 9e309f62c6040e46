package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/griddlepan/internal/pan"
	"github.com/san-kum/griddlepan/internal/sim"
)

func testInfo() RunInfo {
	return RunInfo{
		Scenario:       "test",
		FPS:            60,
		ContainerWidth: 200,
		ContentWidth:   600,
		Options:        OptionsOf(pan.DefaultOptions()),
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := &sim.Result{
		Samples: []sim.Sample{
			{Frame: 0, Time: 1.0 / 60, Target: -400, Running: -4.081632653061225, Speed: 98, Playing: true},
			{Frame: 1, Time: 2.0 / 60, Target: -400, Running: -8.080808080808081, Speed: 96, Playing: false},
		},
		Frames: 2,
		Writes: 1,
		Metrics: map[string]float64{
			"overshoot": 0,
			"speed":     96,
		},
	}

	runID, err := st.Save(testInfo(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "test_") {
		t.Errorf("expected run id prefixed with scenario, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "test" {
		t.Errorf("expected scenario 'test', got '%s'", meta.Scenario)
	}
	if meta.Frames != 2 || meta.Writes != 1 {
		t.Errorf("expected 2 frames and 1 write, got %d/%d", meta.Frames, meta.Writes)
	}
	if !meta.Options.PauseOnMouseOut || meta.Options.Container != ".items" {
		t.Errorf("unexpected options %+v", meta.Options)
	}
	if meta.Metrics["speed"] != 96 {
		t.Errorf("expected speed 96, got %f", meta.Metrics["speed"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Running != result.Samples[0].Running {
		t.Errorf("expected running offset to round-trip exactly, got %v", samples[0].Running)
	}
	if samples[1].Playing {
		t.Error("expected playing=false on frame 1")
	}
}

func TestStoreNonFinite(t *testing.T) {
	st := New(t.TempDir())

	result := &sim.Result{
		Samples: []sim.Sample{{Frame: 0, Target: math.NaN(), Running: math.NaN(), Playing: true}},
		Frames:  1,
		Metrics: map[string]float64{"settle_frames": 1, "overshoot": math.NaN()},
	}

	runID, err := st.Save(testInfo(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(meta.NonFinite) != 1 || meta.NonFinite[0] != "overshoot" {
		t.Errorf("expected overshoot listed as non-finite, got %v", meta.NonFinite)
	}
	if _, ok := meta.Metrics["overshoot"]; ok {
		t.Error("expected non-finite metric left out of metrics")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 1 || !math.IsNaN(samples[0].Running) {
		t.Errorf("expected NaN running offset to round-trip, got %+v", samples)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	result := &sim.Result{Samples: []sim.Sample{{}}, Metrics: map[string]float64{}}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(testInfo(), result); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs with distinct ids, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunInfo{}, &sim.Result{Metrics: map[string]float64{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("expected default run prefix, got %q", runID)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "samples.csv")); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}

func TestWriteJSON(t *testing.T) {
	samples := []sim.Sample{
		{Frame: 0, Target: -100, Running: -1, Speed: 98, Playing: true},
		{Frame: 1, Target: math.NaN(), Running: math.Inf(-1), Speed: 96, Playing: true},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, testInfo(), samples, map[string]float64{"non_finite": 1, "overshoot": math.NaN()}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got.Frames != 2 || len(got.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got.Samples))
	}
	if got.Samples[0].Target == nil || *got.Samples[0].Target != -100 {
		t.Errorf("expected finite target to survive, got %v", got.Samples[0].Target)
	}
	if got.Samples[1].Target != nil || got.Samples[1].Running != nil {
		t.Error("expected non-finite offsets encoded as null")
	}
	if got.Metrics["overshoot"] != nil {
		t.Error("expected NaN metric encoded as null")
	}
	if got.Metrics["non_finite"] == nil || *got.Metrics["non_finite"] != 1 {
		t.Error("expected non_finite metric 1")
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, testInfo(), []sim.Sample{{Frame: 0}}, nil); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"scenario": "test"`) {
		t.Errorf("expected scenario in export, got %s", data)
	}
}
