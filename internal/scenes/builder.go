// Package scenes builds the narrative of the animation on top of the anim
// timeline. Each scene is a method on Builder; the registry fixes their
// order and part.
package scenes

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/camera"
	"github.com/ivlev/podviz/internal/pod"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/typeset"
)

// Builder carries what the scenes of one part share: the timeline, fonts,
// formulas, parameters and the objects a scene hands to the next one.
type Builder struct {
	Scene   *anim.Scene
	Fonts   *typeset.Fonts
	Sheet   *typeset.Sheet
	Board   *storyboard.Storyboard
	Palette Palette
	Camera  *camera.Camera
	QRURL   string

	cloud      *pod.Cloud
	reveal     *anim.ValueTracker
	axes       *anim.Layer
	dots       *anim.Layer
	mode1      *anim.Layer
	mode2      *anim.Layer
	mode1Angle float64
}

func NewBuilder(sc *anim.Scene, fonts *typeset.Fonts, sheet *typeset.Sheet, board *storyboard.Storyboard) *Builder {
	return &Builder{
		Scene:   sc,
		Fonts:   fonts,
		Sheet:   sheet,
		Board:   board,
		Palette: DefaultPalette(),
		Camera:  &camera.Camera{State: camera.Flat},
	}
}

// Run plays one scene, stretched to its storyboard duration.
func (b *Builder) Run(e Entry) error {
	b.Scene.TimeScale = b.Board.TimeScale(e.ID)
	defer func() { b.Scene.TimeScale = 1 }()
	if err := e.build(b); err != nil {
		return fmt.Errorf("scene %s: %w", e.ID, err)
	}
	return nil
}

// RunAll plays the scenes in order and flushes last-frame sinks.
func (b *Builder) RunAll(entries []Entry) error {
	for _, e := range entries {
		if err := b.Run(e); err != nil {
			return err
		}
	}
	return b.Scene.Flush()
}

func (b *Builder) caption(key, def string) string {
	return b.Board.Caption(key, def)
}

// face scales a font size authored for 720p to the output height.
func (b *Builder) face(size float64, w typeset.Weight) text.Face {
	px := size * float64(b.Scene.Viewport.Height) / 720 * 0.85
	return b.Fonts.Face(math.Max(4, math.Round(px*2)/2), w)
}

// px scales a stroke width authored for 720p.
func (b *Builder) px(w float64) float64 {
	return w * float64(b.Scene.Viewport.Height) / 720
}

func (b *Builder) text(name, s string, size float64, col gg.RGBA, x, y float64, anchor [2]float64) *anim.Layer {
	return anim.NewLayer(name, col, anim.Text(b.face(size, typeset.Regular), s, x, y, anchor))
}

func (b *Builder) title(name, s string, size float64, col gg.RGBA, x, y float64) *anim.Layer {
	return anim.NewLayer(name, col, anim.Text(b.face(size, typeset.Bold), s, x, y, anim.AnchorCenter))
}

// formula draws a sheet image when one was supplied, its Unicode form
// otherwise. size is the font size the formula should match.
func (b *Builder) formula(id string, size float64, col gg.RGBA, x, y float64) *anim.Layer {
	if img, ok := b.Sheet.Image(id); ok {
		bounds := img.Bounds()
		h := size / 48
		w := h * float64(bounds.Dx()) / float64(bounds.Dy())
		return anim.NewLayer("formula:"+id, col, anim.Image(img, x, y, w))
	}
	return b.text("formula:"+id, b.Sheet.Text(id), size, col, x, y, anim.AnchorCenter)
}

func present(layers ...*anim.Layer) []*anim.Layer {
	out := layers[:0:0]
	for _, l := range layers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

// plane maps data coordinates into the scene, like a scaled and shifted
// pair of axes.
type plane struct{ ox, oy, k float64 }

// dataPlane is the 8x8 axes of the 2D part scaled to 0.8 and lowered.
var dataPlane = plane{ox: 0, oy: -0.5, k: 0.8}

func (p plane) at(x, y float64) (float64, float64) {
	return p.ox + p.k*x, p.oy + p.k*y
}

func (b *Builder) axesDraw(p plane, lim float64) anim.DrawFunc {
	width := b.px(2)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		x1, y1 := p.at(-lim, 0)
		x2, y2 := p.at(lim, 0)
		anim.Segment(dc, vp, l, x1, y1, x2, y2, width)
		x1, y1 = p.at(0, -lim)
		x2, y2 = p.at(0, lim)
		anim.Segment(dc, vp, l, x1, y1, x2, y2, width)
		for v := -lim; v <= lim; v++ {
			if v == 0 {
				continue
			}
			tx, ty := p.at(v, 0)
			anim.Segment(dc, vp, l, tx, ty-0.08, tx, ty+0.08, width)
			tx, ty = p.at(0, v)
			anim.Segment(dc, vp, l, tx-0.08, ty, tx+0.08, ty, width)
		}
	}
}

// cloudDraw paints a point cloud whose points appear one after another as
// reveal goes from 0 to 1. project returns scene coordinates and a depth;
// points are painted far to near.
func cloudDraw(pts [][]float64, reveal *anim.ValueTracker, lag, radius, alpha float64, project func(p []float64) (x, y, depth float64)) anim.DrawFunc {
	n := len(pts)
	order := make([]int, n)
	depth := make([]float64, n)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		for i, p := range pts {
			order[i] = i
			_, _, depth[i] = project(p)
		}
		sortByDepth(order, depth)
		r := vp.Len(radius)
		for _, i := range order {
			a := anim.LagProgress(i, n, lag, reveal.Value)
			if a <= 0 {
				continue
			}
			x, y, _ := project(pts[i])
			px, py := vp.P(x, y)
			c := l.Fade(withAlpha(l.Color, alpha*a))
			dc.SetRGBA(c.R, c.G, c.B, c.A)
			dc.DrawCircle(px, py, r)
			dc.Fill()
		}
	}
}

func sortByDepth(order []int, depth []float64) {
	// insertion sort keeps equal depths in index order and is quick on the
	// nearly sorted input successive frames produce
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && depth[order[j]] < depth[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
}

// vectorDraw draws a faint full-length line through the origin, an arrow
// and a label, all along the direction angle() of the data plane.
func (b *Builder) vectorDraw(angle func() float64, lineLen, arrowLen, labelAt float64, label string) anim.DrawFunc {
	face := b.face(36, typeset.Regular)
	lineW, arrowW := b.px(3), b.px(4)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		a := angle()
		dx, dy := math.Cos(a), math.Sin(a)
		faint := *l
		faint.Color = withAlpha(l.Color, 0.5)
		x1, y1 := dataPlane.at(-lineLen*dx, -lineLen*dy)
		x2, y2 := dataPlane.at(lineLen*dx, lineLen*dy)
		anim.Segment(dc, vp, &faint, x1, y1, x2, y2, lineW)

		ox, oy := dataPlane.at(0, 0)
		ax, ay := dataPlane.at(arrowLen*dx, arrowLen*dy)
		anim.ArrowTo(dc, vp, l, ox, oy, ax, ay, arrowW)

		lx, ly := dataPlane.at(labelAt*dx, labelAt*dy)
		anim.TextAt(dc, vp, l, face, label, lx, ly, anim.AnchorCenter)
	}
}

// ensureCloud2D samples the 2D cloud once per part.
func (b *Builder) ensureCloud2D() error {
	if b.cloud != nil && b.cloud.Dim == 2 {
		return nil
	}
	spec := b.Board.Cloud2D
	cloud, err := pod.Sample(spec.Covariance, spec.Points, spec.Seed)
	if err != nil {
		return fmt.Errorf("sample 2d cloud: %w", err)
	}
	b.cloud = cloud
	b.reveal = &anim.ValueTracker{}
	b.axes = anim.NewLayer("axes", b.Palette.Gray, b.axesDraw(dataPlane, 4))
	b.dots = anim.NewLayer("cloud", b.Palette.Blue, cloudDraw(cloud.Points, b.reveal, 0.02, 0.06, 0.7,
		func(p []float64) (float64, float64, float64) {
			x, y := dataPlane.at(p[0], p[1])
			return x, y, 0
		}))
	return nil
}

// ensurePlane puts the axes and the full cloud on stage when a scene runs
// without the ones before it.
func (b *Builder) ensurePlane() error {
	if err := b.ensureCloud2D(); err != nil {
		return err
	}
	if !b.Scene.Stage.Has(b.axes) {
		b.reveal.Value = 1
		b.Scene.Add(b.axes, b.dots)
	}
	return nil
}

// ensureMode1 locks the first mode at the maximum-energy angle when the
// energy search did not run.
func (b *Builder) ensureMode1() error {
	if err := b.ensurePlane(); err != nil {
		return err
	}
	if b.mode1 == nil {
		b.mode1Angle = pod.MaxEnergyAngle(b.cloud, 720)
		b.mode1 = b.modeLayer("mode1", b.Palette.Green, b.mode1Angle, 3.5, "φ₁")
		b.Scene.Add(b.mode1)
	}
	return nil
}

func (b *Builder) modeLayer(name string, col gg.RGBA, angle, lineLen float64, label string) *anim.Layer {
	return anim.NewLayer(name, col, b.vectorDraw(func() float64 { return angle }, lineLen, 2.5, 3, label))
}
