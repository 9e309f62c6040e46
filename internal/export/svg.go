package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/griddlepan/internal/sim"
)

// Series is one named line of an offset plot.
type Series struct {
	Name   string
	Color  string
	Values []float64
}

// OffsetSeries splits samples into target and running lines.
func OffsetSeries(samples []sim.Sample) []Series {
	target := make([]float64, len(samples))
	running := make([]float64, len(samples))
	for i, s := range samples {
		target[i] = s.Target
		running[i] = s.Running
	}
	return []Series{
		{Name: "target", Color: "#ff00ff", Values: target},
		{Name: "running", Color: "#00ffff", Values: running},
	}
}

// SeriesToSVG plots every series against the frame index. Non-finite
// values break the line instead of being drawn.
func SeriesToSVG(series []Series, width, height int) string {
	frames := 0
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if len(s.Values) > frames {
			frames = len(s.Values)
		}
		for _, v := range s.Values {
			if !isFinite(v) {
				continue
			}
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if frames < 2 || math.IsInf(minY, 1) {
		return ""
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(frames - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range series {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" data-name="%s" d="`, s.Color, s.Name))

		pen := false
		for i, v := range s.Values {
			if !isFinite(v) {
				pen = false
				continue
			}
			x := float64(i) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)

			if pen {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
				pen = true
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SamplesToSVG plots the target and running offsets of a run.
func SamplesToSVG(samples []sim.Sample, width, height int) string {
	return SeriesToSVG(OffsetSeries(samples), width, height)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
