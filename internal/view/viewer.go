// Package view renders a running game.Sim with ebiten: the pitch, both
// teams, the predicted dribble path, the chosen block point and the
// decision log.
package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/pitch-sense/internal/game"
)

// borderWidth is the pixel gap between the window edge and the pitch.
const borderWidth = 24

// pixelsPerMetre scales pitch coordinates to screen pixels.
const pixelsPerMetre = 10.0

// framesPerCycle paces the sim at 10 cycles per second at 60 TPS.
const framesPerCycle = 6

var (
	grassColor  = color.RGBA{R: 28, G: 74, B: 36, A: 255}
	lineColor   = color.RGBA{R: 200, G: 220, B: 200, A: 200}
	oursColor   = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	theirsColor = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	ballColor   = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	pathColor   = color.RGBA{R: 240, G: 200, B: 60, A: 150}
	blockColor  = color.RGBA{R: 255, G: 220, B: 40, A: 255}
)

// Viewer implements ebiten.Game for a Sim.
type Viewer struct {
	opts      []game.SimOption
	maxCycles int

	sim    *game.Sim
	log    *DecisionLog
	face   text.Face
	paused bool
	frame  int
	status string

	width     int
	height    int
	pitchW    int
	pitchH    int
	clipboard func(string) error
}

// New creates a viewer that runs a Sim built from opts for at most
// maxCycles cycles. R rebuilds the sim from the same options.
func New(opts []game.SimOption, maxCycles int) *Viewer {
	pw := int(2 * game.PitchHalfLength * pixelsPerMetre)
	ph := int(2 * game.PitchHalfWidth * pixelsPerMetre)
	v := &Viewer{
		opts:      opts,
		maxCycles: maxCycles,
		face:      text.NewGoXFace(basicfont.Face7x13),
		pitchW:    pw,
		pitchH:    ph,
		width:     borderWidth + pw + borderWidth + logPanelWidth,
		height:    borderWidth + ph + borderWidth,
		clipboard: clipboard.WriteAll,
	}
	v.restart()
	return v
}

// Size returns the window size the viewer lays out for.
func (v *Viewer) Size() (int, int) {
	return v.width, v.height
}

// Sim returns the running simulation.
func (v *Viewer) Sim() *game.Sim {
	return v.sim
}

func (v *Viewer) restart() {
	v.sim = game.NewSim(v.opts...)
	v.log = NewDecisionLog()
	v.frame = 0
	v.status = ""
}

func (v *Viewer) finished() bool {
	return v.sim.Cycle() >= v.maxCycles || v.sim.Conceded()
}

// stepSim advances one cycle and feeds the decision log.
func (v *Viewer) stepSim() {
	if v.finished() {
		return
	}
	v.sim.Step()
	v.log.Feed(v.sim.SimLog)
}

func (v *Viewer) Update() error {
	v.handleInput()
	if v.paused {
		return nil
	}
	v.frame++
	if v.frame%framesPerCycle == 0 {
		v.stepSim()
	}
	return nil
}

// handleInput: Space pauses, '.' steps one cycle, C copies the report,
// R restarts.
func (v *Viewer) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		v.paused = true
		v.stepSim()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copyReport()
	}
}

func (v *Viewer) copyReport() {
	if err := v.clipboard(v.ReportText()); err != nil {
		v.status = fmt.Sprintf("copy failed: %v", err)
		return
	}
	v.status = fmt.Sprintf("report for cycle %d copied", v.sim.Cycle())
}

// ReportText renders the run summary and every agent's current assignment.
func (v *Viewer) ReportText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Block Report ===\ncycle=%d possession=%s conceded=%v\n",
		v.sim.Cycle(), v.sim.Possession(), v.sim.Conceded())
	sb.WriteString(v.sim.Reporter.Summary().Format())
	for _, p := range v.sim.Ours {
		if p == nil {
			continue
		}
		fmt.Fprintf(&sb, "%s %-9s", p.State.Label(), p.Decision.Action.Behavior)
		if a := p.Decision.Assignment; a != nil {
			fmt.Fprintf(&sb, " %s", a)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// toScreen maps pitch metres to screen pixels. The pitch centre is the
// centre of the playfield.
func (v *Viewer) toScreen(p game.Vec2) (float32, float32) {
	x := float64(borderWidth) + (p.X+game.PitchHalfLength)*pixelsPerMetre
	y := float64(borderWidth) + (p.Y+game.PitchHalfWidth)*pixelsPerMetre
	return float32(x), float32(y)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	v.drawPitch(screen)
	v.drawAssignment(screen)
	v.drawPlayers(screen)

	bx, by := v.toScreen(v.sim.Ball.Pos)
	vector.DrawFilledCircle(screen, bx, by, 4, ballColor, true)

	v.log.Draw(screen, borderWidth+v.pitchW+borderWidth, v.height)
	v.drawHUD(screen)
}

func (v *Viewer) drawPitch(screen *ebiten.Image) {
	ox, oy := float32(borderWidth), float32(borderWidth)
	pw, ph := float32(v.pitchW), float32(v.pitchH)
	vector.FillRect(screen, ox, oy, pw, ph, grassColor, false)
	vector.StrokeRect(screen, ox, oy, pw, ph, 2, lineColor, false)
	cx, cy := v.toScreen(game.V(0, 0))
	vector.StrokeLine(screen, cx, oy, cx, oy+ph, 1, lineColor, false)
	vector.StrokeCircle(screen, cx, cy, float32(9.15*pixelsPerMetre), 1, lineColor, true)

	// Penalty boxes and goals.
	boxW, boxH := float32(16.5*pixelsPerMetre), float32(40.3*pixelsPerMetre)
	vector.StrokeRect(screen, ox, cy-boxH/2, boxW, boxH, 1, lineColor, false)
	vector.StrokeRect(screen, ox+pw-boxW, cy-boxH/2, boxW, boxH, 1, lineColor, false)
	goalH := float32(14.02 * pixelsPerMetre)
	vector.FillRect(screen, ox-6, cy-goalH/2, 6, goalH, lineColor, false)
	vector.FillRect(screen, ox+pw, cy-goalH/2, 6, goalH, lineColor, false)
}

// drawAssignment shows the dribble samples and the chosen block point from
// the blocker's own view, or from the first agent that planned.
func (v *Viewer) drawAssignment(screen *ebiten.Image) {
	var a *game.Assignment
	for _, p := range v.sim.Ours {
		if p == nil || p.Decision.Assignment == nil {
			continue
		}
		if a == nil || p.Decision.Assignment.IsBlocker(p.State.Unum) {
			a = p.Decision.Assignment
		}
	}
	if a == nil {
		return
	}
	for _, c := range a.Candidates {
		x, y := v.toScreen(c.Pos)
		vector.DrawFilledCircle(screen, x, y, 1.5, pathColor, true)
	}
	target, ok := a.Target()
	if !ok {
		return
	}
	tx, ty := v.toScreen(target)
	vector.StrokeCircle(screen, tx, ty, 6, 2, blockColor, true)
	if bp := v.sim.Player(game.SideOurs, a.Blocker); bp != nil {
		px, py := v.toScreen(bp.State.Pos)
		vector.StrokeLine(screen, px, py, tx, ty, 1, blockColor, true)
	}
}

func (v *Viewer) drawPlayers(screen *ebiten.Image) {
	for _, team := range [][]*game.SimPlayer{v.sim.Ours, v.sim.Theirs} {
		for _, p := range team {
			if p == nil {
				continue
			}
			col := oursColor
			if p.State.Side == game.SideTheirs {
				col = theirsColor
			}
			x, y := v.toScreen(p.State.Pos)
			r := float32(p.State.Type.KickableArea * pixelsPerMetre / 2)
			vector.DrawFilledCircle(screen, x, y, r, col, true)
			if p.Decision.Action.Behavior == game.BehaviorBlock {
				vector.StrokeCircle(screen, x, y, r+2, 1.5, blockColor, true)
			}
			// Body direction tick.
			nose := p.State.Pos.Add(game.Polar(1.2, p.State.Body))
			nx, ny := v.toScreen(nose)
			vector.StrokeLine(screen, x, y, nx, ny, 1.5, lineColor, true)

			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(x)+float64(r)+2, float64(y)-float64(r)-10)
			op.ColorScale.ScaleWithColor(col)
			text.Draw(screen, fmt.Sprintf("%d", p.State.Unum), v.face, op)
		}
	}
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	state := "RUN"
	if v.paused {
		state = "PAUSED"
	}
	lines := []string{
		fmt.Sprintf("cycle %d/%d  %s  possession=%s", v.sim.Cycle(), v.maxCycles, state, v.sim.Possession()),
		"Space=pause  .=step  C=copy report  R=restart",
	}
	if v.status != "" {
		lines = append(lines, v.status)
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, borderWidth+6, borderWidth+6+i*14)
	}
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
