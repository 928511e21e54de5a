package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/geom"
	"github.com/xpathfinder/savethedogs/internal/profile"
	"github.com/xpathfinder/savethedogs/internal/system"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(96, 26)
	t.Cleanup(s.Fini)
	return s
}

func contents(s tcell.SimulationScreen) (string, []string) {
	cells, w, h := s.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			b.Write(cells[y*w+x].Bytes)
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n"), rows
}

func TestDrawSnapshot(t *testing.T) {
	scr := newScreen(t)
	rules := data.DefaultRules()
	sess, err := arena.NewSession(arena.Params{
		Rules:     rules,
		RNG:       arena.NewRNG(1),
		Profile:   profile.Default(),
		TargetPos: &geom.Vec2{X: 200, Y: 200},
	})
	require.NoError(t, err)
	require.NoError(t, sess.ProposeBarrier(arena.GridPoint{Col: 30, Row: 2}, arena.GridPoint{Col: 30, Row: 10}))

	term := New(scr, rules, make(chan system.Placement, 1))
	term.Draw(sess.Snapshot())

	all, rows := contents(scr)
	assert.Contains(t, rows[0], "Countdown: 10")
	assert.Contains(t, rows[0], "Blocks Left:")
	assert.Greater(t, strings.Count(all, "D"), 10, "target box is filled")
	assert.GreaterOrEqual(t, strings.Count(all, "#"), 8, "barrier is drawn")
	assert.Contains(t, all, "·")
}

func TestDrawOutcomeMessage(t *testing.T) {
	scr := newScreen(t)
	term := New(scr, data.DefaultRules(), nil)
	term.Draw(arena.Snapshot{
		Phase:   arena.PhaseWon,
		Outcome: &arena.Outcome{Phase: arena.PhaseWon, Reward: 123},
	})
	_, rows := contents(scr)
	assert.Contains(t, rows[1], "You won! The dog is safe. +123 reward.")
}

func TestClicksProposeBarrier(t *testing.T) {
	scr := newScreen(t)
	out := make(chan system.Placement, 1)
	term := New(scr, data.DefaultRules(), out)

	assert.True(t, term.HandleEvent(tcell.NewEventMouse(21, 7, tcell.Button1, tcell.ModNone)))
	assert.True(t, term.HandleEvent(tcell.NewEventMouse(21, 7, tcell.Button1, tcell.ModNone)), "held button is one click")
	assert.True(t, term.HandleEvent(tcell.NewEventMouse(21, 7, tcell.ButtonNone, tcell.ModNone)))
	assert.Empty(t, out)

	term.HandleEvent(tcell.NewEventMouse(21, 11, tcell.Button1, tcell.ModNone))
	require.Len(t, out, 1)
	p := <-out
	assert.Equal(t, arena.GridPoint{Col: 10, Row: 5}, p.From)
	assert.Equal(t, arena.GridPoint{Col: 10, Row: 9}, p.To)
}

func TestClickOnStatusRowIgnored(t *testing.T) {
	scr := newScreen(t)
	out := make(chan system.Placement, 1)
	term := New(scr, data.DefaultRules(), out)

	term.HandleEvent(tcell.NewEventMouse(21, 0, tcell.Button1, tcell.ModNone))
	assert.Nil(t, term.selected)
}

func TestQuitKey(t *testing.T) {
	term := New(newScreen(t), data.DefaultRules(), nil)
	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	select {
	case <-term.Quit():
	default:
		t.Fatal("quit channel not closed")
	}
	assert.False(t, term.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)), "second quit does not panic")
}
