package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/pitch-sense/internal/game"
)

const (
	logPanelWidth = 340
	logMaxEntries = 80
	logLineHeight = 11
)

// DecisionLog is a ring buffer of SimLog entries rendered on-screen.
type DecisionLog struct {
	entries []game.SimLogEntry
	head    int
	count   int
	fed     int // SimLog entries already consumed
}

// NewDecisionLog creates a decision log with a fixed capacity.
func NewDecisionLog() *DecisionLog {
	return &DecisionLog{
		entries: make([]game.SimLogEntry, logMaxEntries),
	}
}

// Add appends an entry to the log.
func (dl *DecisionLog) Add(e game.SimLogEntry) {
	dl.entries[dl.head] = e
	dl.head = (dl.head + 1) % logMaxEntries
	if dl.count < logMaxEntries {
		dl.count++
	}
}

// Feed copies entries the log has not seen yet. Position noise is skipped.
func (dl *DecisionLog) Feed(sl *game.SimLog) int {
	all := sl.Entries()
	added := 0
	for _, e := range all[dl.fed:] {
		if e.Category == "move" {
			continue
		}
		dl.Add(e)
		added++
	}
	dl.fed = len(all)
	return added
}

// Recent returns entries in chronological order (oldest first).
func (dl *DecisionLog) Recent() []game.SimLogEntry {
	result := make([]game.SimLogEntry, dl.count)
	for i := 0; i < dl.count; i++ {
		idx := (dl.head - dl.count + i + logMaxEntries) % logMaxEntries
		result[i] = dl.entries[idx]
	}
	return result
}

func categoryColor(category string) color.RGBA {
	switch category {
	case "block":
		return color.RGBA{R: 240, G: 200, B: 60, A: 255}
	case "ball":
		return color.RGBA{R: 240, G: 240, B: 240, A: 255}
	case "intercept":
		return color.RGBA{R: 90, G: 200, B: 240, A: 255}
	default:
		return color.RGBA{R: 120, G: 150, B: 120, A: 255}
	}
}

// Draw renders the log panel on the right side of the screen.
func (dl *DecisionLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "DECISION LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := dl.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)
		line := fmt.Sprintf("%4d [%s] %s", e.Cycle, e.Agent, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
