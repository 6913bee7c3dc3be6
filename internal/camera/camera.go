// Package camera projects 3D scene points onto the 2D viewport.
//
// Orientation follows the spherical convention used for mathematical
// animation: phi is the polar angle measured from +z, theta the azimuth of
// the camera around z. phi=0, theta=-90deg looks straight down with +x to
// the right and +y up, which is the plain 2D view.
package camera

import (
	"math"

	"github.com/ivlev/podviz/internal/anim"
)

// Vec3 is a point or direction in scene units.
type Vec3 struct{ X, Y, Z float64 }

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Mul(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{a.Y*b.Z - a.Z*b.Y, a.Z*b.X - a.X*b.Z, a.X*b.Y - a.Y*b.X}
}

func FromSlice(v []float64) Vec3 { return Vec3{v[0], v[1], v[2]} }

func Deg(d float64) float64 { return d * math.Pi / 180 }

// State is a camera orientation.
type State struct {
	Phi, Theta float64
	Zoom       float64
}

// Flat is the 2D view.
var Flat = State{Phi: 0, Theta: Deg(-90), Zoom: 1}

// Camera is an orthographic camera with an optional ambient rotation.
type Camera struct {
	State
	// AmbientRate rotates theta in radians per second while Advance runs.
	AmbientRate float64
}

func New(phi, theta float64) *Camera {
	return &Camera{State: State{Phi: phi, Theta: theta, Zoom: 1}}
}

// Advance moves the ambient rotation by dt seconds.
func (c *Camera) Advance(dt float64) {
	c.Theta += c.AmbientRate * dt
}

// basis returns the screen right, screen up and view (towards camera) axes.
func (c *Camera) basis() (right, up, view Vec3) {
	sp, cp := math.Sin(c.Phi), math.Cos(c.Phi)
	st, ct := math.Sin(c.Theta), math.Cos(c.Theta)
	view = Vec3{sp * ct, sp * st, cp}
	right = Vec3{-st, ct, 0}
	up = view.Cross(right)
	return right, up, view
}

// Project maps a scene point to 2D scene coordinates plus a depth value;
// larger depth is closer to the camera.
func (c *Camera) Project(p Vec3) (x, y, depth float64) {
	right, up, view := c.basis()
	z := c.Zoom
	if z == 0 {
		z = 1
	}
	return p.Dot(right) * z, p.Dot(up) * z, p.Dot(view)
}

// ProjectPx maps straight to pixels.
func (c *Camera) ProjectPx(vp anim.Viewport, p Vec3) (float64, float64) {
	x, y, _ := c.Project(p)
	return vp.P(x, y)
}

// MoveTo animates the orientation to target.
func (c *Camera) MoveTo(target State) anim.Animation {
	var from State
	return anim.Tween(func() { from = c.State }, func(t float64) {
		c.Phi = anim.Lerp(from.Phi, target.Phi, t)
		c.Theta = anim.Lerp(from.Theta, target.Theta, t)
		if target.Zoom != 0 {
			c.Zoom = anim.Lerp(from.Zoom, target.Zoom, t)
		}
	})
}
