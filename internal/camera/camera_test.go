package camera

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/podviz/internal/anim"
)

func TestFlatViewIsIdentity(t *testing.T) {
	c := &Camera{State: Flat}
	x, y, depth := c.Project(Vec3{1, 2, 3})
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)
	assert.InDelta(t, 3, depth, 1e-9)
}

func TestProjectionPreservesLengthInPlane(t *testing.T) {
	c := New(Deg(70), Deg(30))
	right, up, view := c.basis()
	for _, v := range []Vec3{right, up, view} {
		assert.InDelta(t, 1, v.Len(), 1e-9)
	}
	assert.InDelta(t, 0, right.Dot(up), 1e-9)
	assert.InDelta(t, 0, right.Dot(view), 1e-9)
	assert.InDelta(t, 0, up.Dot(view), 1e-9)
}

func TestAmbientRotation(t *testing.T) {
	c := New(Deg(70), Deg(30))
	c.AmbientRate = 0.15
	for i := 0; i < 30; i++ {
		c.Advance(1.0 / 30)
	}
	assert.InDelta(t, Deg(30)+0.15, c.Theta, 1e-9)
}

func TestMoveTo(t *testing.T) {
	c := New(Deg(70), Deg(30))
	a := c.MoveTo(Flat)
	a.Begin(anim.NewStage(gg.RGB(0, 0, 0)))
	a.Apply(1)
	require.InDelta(t, 0, c.Phi, 1e-9)
	assert.InDelta(t, -math.Pi/2, c.Theta, 1e-9)
}
