package system

import (
	"time"

	"github.com/xpathfinder/savethedogs/internal/arena"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
)

// Renderer draws one snapshot. Implementations must not keep references
// into the session; Snapshot already owns its slices.
type Renderer interface {
	Draw(arena.Snapshot)
}

// RenderSystem hands a fresh snapshot to the view every base tick.
// Phase 4 (Output).
type RenderSystem struct {
	sess *arena.Session
	view Renderer
}

func NewRenderSystem(sess *arena.Session, view Renderer) *RenderSystem {
	return &RenderSystem{sess: sess, view: view}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) {
	s.view.Draw(s.sess.Snapshot())
}
