// Package view draws arena snapshots on a terminal and turns mouse clicks
// into barrier placements.
package view

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/system"
)

// statusRows are reserved at the top of the screen for the status line and
// the message line.
const statusRows = 2

var (
	styleGrid     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleBarrier  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDepleted = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTarget   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBee      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStunned  = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

// Terminal renders into a tcell screen. Draw runs on the game loop;
// HandleEvent runs on the event goroutine. Selection state is shared and
// guarded by mu.
type Terminal struct {
	screen tcell.Screen
	rules  *data.Rules
	out    chan<- system.Placement

	mu       sync.Mutex
	selected *arena.GridPoint
	message  string
	pressed  bool

	quit     chan struct{}
	quitOnce sync.Once
}

func New(screen tcell.Screen, rules *data.Rules, out chan<- system.Placement) *Terminal {
	return &Terminal{
		screen: screen,
		rules:  rules,
		out:    out,
		quit:   make(chan struct{}),
	}
}

// Quit is closed when the player asks to leave.
func (t *Terminal) Quit() <-chan struct{} { return t.quit }

// Run polls screen events until the screen is finalized or the player quits.
func (t *Terminal) Run() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if !t.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent processes one screen event and reports whether to keep
// polling.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			t.quitOnce.Do(func() { close(t.quit) })
			return false
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		t.mu.Lock()
		click := down && !t.pressed
		t.pressed = down
		t.mu.Unlock()
		if click {
			x, y := ev.Position()
			t.click(x, y)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// click snaps a screen cell to the lattice. The first click selects a
// point; the second proposes a barrier between the two.
func (t *Terminal) click(cx, cy int) {
	px, py, ok := t.cellToPixel(cx, cy)
	if !ok {
		return
	}
	col, row, ok := t.rules.SnapToGrid(px, py)
	t.mu.Lock()
	defer t.mu.Unlock()
	if !ok {
		t.selected = nil
		return
	}
	p := arena.GridPoint{Col: col, Row: row}
	if t.selected == nil {
		t.selected = &p
		t.message = fmt.Sprintf("from %d,%d", col, row)
		return
	}
	from := *t.selected
	t.selected = nil
	if from == p {
		t.message = ""
		return
	}
	select {
	case t.out <- system.Placement{From: from, To: p}:
		t.message = fmt.Sprintf("barrier %d,%d to %d,%d", from.Col, from.Row, p.Col, p.Row)
	default:
		t.message = "input queue full"
	}
}

// scale returns field pixels per screen cell on each axis.
func (t *Terminal) scale() (sx, sy float64, ok bool) {
	w, h := t.screen.Size()
	h -= statusRows
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return t.rules.FieldWidth() / float64(w), t.rules.FieldHeight() / float64(h), true
}

func (t *Terminal) cellToPixel(cx, cy int) (float64, float64, bool) {
	sx, sy, ok := t.scale()
	if !ok || cy < statusRows {
		return 0, 0, false
	}
	return (float64(cx) + 0.5) * sx, (float64(cy-statusRows) + 0.5) * sy, true
}

func (t *Terminal) pixelToCell(x, y float64) (int, int) {
	sx, sy, _ := t.scale()
	return int(math.Floor(x / sx)), int(math.Floor(y/sy)) + statusRows
}

func (t *Terminal) put(x, y float64, r rune, st tcell.Style) {
	cx, cy := t.pixelToCell(x, y)
	w, h := t.screen.Size()
	if cx < 0 || cy < statusRows || cx >= w || cy >= h {
		return
	}
	t.screen.SetContent(cx, cy, r, nil, st)
}

func (t *Terminal) text(x, y int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, st)
	}
}

// Draw renders one snapshot.
func (t *Terminal) Draw(snap arena.Snapshot) {
	t.screen.Clear()
	if _, _, ok := t.scale(); !ok {
		t.screen.Show()
		return
	}

	g := t.rules.Grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x, y := t.rules.GridPixel(col, row)
			t.put(x, y, '·', styleGrid)
		}
	}

	for _, b := range snap.Barriers {
		st, r := styleBarrier, '#'
		if b.Health <= 0 {
			st, r = styleDepleted, '.'
		}
		t.line(b.From.X, b.From.Y, b.To.X, b.To.Y, r, st)
	}

	tg := snap.Target
	t.fill(tg.Pos.X, tg.Pos.Y, tg.Size, 'D', styleTarget)

	for _, a := range snap.Aggressors {
		st, r := styleBee, 'B'
		if a.State == arena.Stunned {
			st, r = styleStunned, '*'
		}
		half := snap.AggressorSize / 2
		t.put(a.Pos.X+half, a.Pos.Y+half, r, st)
	}

	t.mu.Lock()
	sel, msg := t.selected, t.message
	t.mu.Unlock()
	if sel != nil {
		x, y := t.rules.GridPixel(sel.Col, sel.Row)
		t.put(x, y, 'X', styleSelected)
	}

	t.status(snap, msg)
	t.screen.Show()
}

func (t *Terminal) status(snap arena.Snapshot, msg string) {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	var line string
	switch snap.Phase {
	case arena.PhaseCountdown:
		line = fmt.Sprintf(" Countdown: %d", snap.Countdown)
	default:
		line = fmt.Sprintf(" Wave %d/%d  Survived %d", snap.WavesStarted, snap.TotalWaves, snap.SurvivalTicks)
	}
	line += fmt.Sprintf("  Blocks Left: %d  HP Left: %d  Bees: %d", snap.Budget, snap.Target.Health, len(snap.Aggressors))
	t.text(0, 0, line, styleStatus)

	if o := snap.Outcome; o != nil {
		if o.Phase == arena.PhaseWon {
			msg = fmt.Sprintf("You won! The dog is safe. +%d reward. Press q to exit.", o.Reward)
		} else {
			msg = "The dog has been stung too many times! Game over. Press q to exit."
		}
	}
	t.text(1, 1, msg, tcell.StyleDefault)
}

// line plots a segment by sampling one point per cell along its longer axis.
func (t *Terminal) line(x0, y0, x1, y1 float64, r rune, st tcell.Style) {
	sx, sy, _ := t.scale()
	steps := int(math.Max(math.Abs(x1-x0)/sx, math.Abs(y1-y0)/sy)) + 1
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		t.put(x0+(x1-x0)*f, y0+(y1-y0)*f, r, st)
	}
}

func (t *Terminal) fill(x, y, size float64, r rune, st tcell.Style) {
	c0, r0 := t.pixelToCell(x, y)
	c1, r1 := t.pixelToCell(x+size-1, y+size-1)
	w, h := t.screen.Size()
	for cy := max(r0, statusRows); cy <= min(r1, h-1); cy++ {
		for cx := max(c0, 0); cx <= min(c1, w-1); cx++ {
			t.screen.SetContent(cx, cy, r, nil, st)
		}
	}
}
