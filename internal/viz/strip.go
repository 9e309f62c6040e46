package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/san-kum/griddlepan/internal/config"
)

// StripHeight is the number of terminal rows a card occupies.
const StripHeight = 5

// Strip is the pre-rendered content of the panned element, one string per
// terminal row. Width is in cells.
type Strip struct {
	Rows  []string
	Width int
}

// BuildStrip renders cfg.Cards bordered cards side by side. The same seed
// always yields the same strip.
func BuildStrip(cfg config.StripConfig, theme Theme) Strip {
	cards, cw, gap := cfg.Cards, cfg.CardWidth, cfg.Gap
	if cards <= 0 {
		cards = config.DefaultCards
	}
	if cw < 6 {
		cw = config.DefaultCardWidth
	}
	if gap < 0 {
		gap = 0
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	rows := make([]strings.Builder, StripHeight)
	spacer := strings.Repeat(" ", gap)

	for i := 0; i < cards; i++ {
		color := theme.Cards[rng.Intn(len(theme.Cards))]
		fill := 1 + rng.Intn(cw-4)

		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Foreground(theme.Text).
			Width(cw - 2).
			Align(lipgloss.Center)

		body := strings.Join([]string{
			fmt.Sprintf("#%02d", i+1),
			lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▇", fill)),
			lipgloss.NewStyle().Foreground(theme.Muted).Render(fmt.Sprintf("%d%%", fill*100/(cw-4))),
		}, "\n")

		lines := strings.Split(style.Render(body), "\n")
		for r := range rows {
			line := strings.Repeat(" ", cw)
			if r < len(lines) {
				line = lines[r]
			}
			rows[r].WriteString(line)
			rows[r].WriteString(spacer)
		}
	}

	s := Strip{
		Rows:  make([]string, StripHeight),
		Width: cards * (cw + gap),
	}
	for r := range rows {
		s.Rows[r] = rows[r].String()
	}
	return s
}

// Window returns the rows visible through a container of width cells when
// the content is translated by offset. A non-finite offset shows the start.
func (s Strip) Window(offset float64, width int) []string {
	left := 0
	if isFinite(offset) {
		left = int(math.Round(-offset))
	}
	left = max(0, min(left, s.Width-width))
	left = max(0, left)

	out := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		cut := ansi.Cut(row, left, left+width)
		if pad := width - ansi.StringWidth(cut); pad > 0 {
			cut += strings.Repeat(" ", pad)
		}
		out[i] = cut
	}
	return out
}
