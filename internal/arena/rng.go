package arena

import (
	"math/rand"

	"github.com/xpathfinder/savethedogs/internal/data"
)

// RNG is the single seeded source behind every random decision in a
// session. Two sessions built from the same seed and fed the same
// placements produce identical outcomes.
type RNG struct {
	r *rand.Rand
}

func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [lo, hi]. It returns lo when the
// interval is empty.
func (g *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.r.Intn(hi-lo+1)
}

// Roll samples a rules range.
func (g *RNG) Roll(rg data.Range) int {
	return g.IntRange(rg.Min, rg.Max)
}
