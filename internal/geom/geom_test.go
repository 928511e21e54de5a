package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentIntersects(t *testing.T) {
	cases := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"crossing", Segment{Vec2{0, 0}, Vec2{10, 10}}, Segment{Vec2{0, 10}, Vec2{10, 0}}, true},
		{"touching endpoint", Segment{Vec2{0, 0}, Vec2{10, 0}}, Segment{Vec2{10, 0}, Vec2{10, 10}}, true},
		{"short of each other", Segment{Vec2{0, 0}, Vec2{4, 4}}, Segment{Vec2{0, 10}, Vec2{10, 0}}, false},
		{"parallel", Segment{Vec2{0, 0}, Vec2{10, 0}}, Segment{Vec2{0, 1}, Vec2{10, 1}}, false},
		{"collinear overlap", Segment{Vec2{0, 0}, Vec2{10, 0}}, Segment{Vec2{5, 0}, Vec2{15, 0}}, false},
		{"degenerate point", Segment{Vec2{5, 5}, Vec2{5, 5}}, Segment{Vec2{0, 0}, Vec2{10, 10}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Intersects(tc.b))
			assert.Equal(t, tc.want, tc.b.Intersects(tc.a))
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 64, H: 64}

	assert.True(t, r.Overlaps(Rect{X: 32, Y: 32, W: 128, H: 128}))
	assert.True(t, r.Overlaps(Rect{X: 10, Y: 10, W: 5, H: 5}), "contained box overlaps")
	assert.False(t, r.Overlaps(Rect{X: 64, Y: 0, W: 10, H: 10}), "shared edge is not overlap")
	assert.False(t, r.Overlaps(Rect{X: 0, Y: 100, W: 10, H: 10}))
}

func TestRectTouchesSegment(t *testing.T) {
	r := NewRect(Vec2{X: 100, Y: 100}, 64, 64)

	assert.True(t, r.TouchesSegment(Segment{Vec2{80, 130}, Vec2{200, 130}}), "horizontal line through box")
	assert.True(t, r.TouchesSegment(Segment{Vec2{130, 0}, Vec2{130, 120}}), "line ending inside box crosses top edge")
	assert.False(t, r.TouchesSegment(Segment{Vec2{110, 110}, Vec2{150, 150}}), "line fully inside crosses no edge")
	assert.False(t, r.TouchesSegment(Segment{Vec2{0, 0}, Vec2{50, 50}}))
}

func TestNormZero(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Norm())

	n := Vec2{X: 3, Y: 4}.Norm()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(15, 0, 10))
	assert.Equal(t, 7.0, Clamp(7, 0, 10))
}
