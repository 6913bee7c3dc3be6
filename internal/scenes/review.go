package scenes

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/pod"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/typeset"
)

// reviewPlane is the number plane of the review scene.
var reviewPlane = plane{ox: 0, oy: 0, k: 0.95}

// review recaps POD as constrained optimisation: a principal arrow sweeps
// an elliptical cloud while a meter shows the share of energy it captures.
func (b *Builder) review() error {
	sc, pal := b.Scene, b.Palette
	prevBG := sc.Stage.Background
	sc.Stage.Background = pal.Navy
	defer func() { sc.Stage.Background = prevBG }()

	spec := b.Board.Ellipse
	cloud := pod.SampleEllipse(spec.Width/2, spec.Height/2, spec.Samples, spec.Seed)

	header := anim.NewLayer("header", pal.Text,
		anim.Text(b.face(30, typeset.Bold), b.caption("review.header", "Scene 1 · POD review"), -6.6, 3.45, anim.AnchorLeft))
	subheader := b.text("subheader", b.caption("review.subheader", "Constrained optimum → eigenvalue intuition"),
		22, pal.Dim, -6.6, 3.0, anim.AnchorLeft)
	if err := sc.Play(1, anim.FadeIn(header, subheader)); err != nil {
		return err
	}

	grid := anim.NewLayer("number_plane", pal.Grid, b.numberPlaneDraw(reviewPlane, 4.5, 3))
	intro := b.text("review_intro", b.caption("review.intro", "POD: find the direction that captures the most energy"),
		30, pal.Text, 1.5, 3.3, anim.AnchorCenter)
	if err := sc.Play(1, anim.FadeIn(grid), anim.Write(intro)); err != nil {
		return err
	}

	ellipse := anim.NewLayer("ellipse", withAlpha(pal.Text, 0.5), b.ellipseDraw(spec.Width/2, spec.Height/2))
	if err := sc.Play(0.8, anim.FadeIn(ellipse)); err != nil {
		return err
	}

	reveal := &anim.ValueTracker{}
	dots := anim.NewLayer("review_cloud", pal.Cloud, cloudDraw(cloud.Points, reveal, 0.01, 0.04, 1,
		func(p []float64) (float64, float64, float64) { return p[0], p[1], 0 }))
	sc.Add(dots)
	if err := sc.Play(1.4, reveal.To(1)); err != nil {
		return err
	}

	angle := &anim.ValueTracker{Value: -math.Pi / 4}
	arrow := anim.NewLayer("principal", pal.Primary, b.principalDraw(angle, 3.5))
	if err := sc.Play(1, anim.FadeIn(arrow)); err != nil {
		return err
	}
	if err := sc.Wait(0.8); err != nil {
		return err
	}

	meter := anim.NewLayer("energy_meter", pal.Text, b.meterDraw(cloud, angle, 3.6, 2.0))
	if err := sc.Play(1, anim.FadeIn(meter), anim.FadeOut(intro)); err != nil {
		return err
	}

	if err := sc.Play(3.5, angle.To(math.Pi/2)); err != nil {
		return err
	}
	if err := sc.Wait(1.2); err != nil {
		return err
	}
	if err := sc.Play(4, anim.WithRate(angle.To(-math.Pi/3), anim.ThereAndBack)); err != nil {
		return err
	}
	if err := sc.Wait(0.8); err != nil {
		return err
	}

	hint := b.text("hint", b.caption("review.hint", "Maximum projected energy = principal mode"), 28, pal.Text, 0, -3.3, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(hint)); err != nil {
		return err
	}
	if err := sc.Wait(1.8); err != nil {
		return err
	}

	formula := b.formula(typeset.FormulaPODProblem, 28, pal.Text, 4.4, -2.5)
	if err := sc.Play(1, anim.Write(formula)); err != nil {
		return err
	}
	if err := sc.Wait(1.2); err != nil {
		return err
	}

	card := anim.NewLayer("question_card", pal.Primary, anim.Box(-4.5, -2.2, 4.6, 1.5, 0.2, b.px(2.5), withAlpha(pal.Navy, 0.85)))
	line1 := b.text("question1", b.caption("review.question1", "Why does the constrained problem"), 24, pal.Text, -4.5, -1.95, anim.AnchorCenter)
	line2 := b.text("question2", b.caption("review.question2", "become an eigenvalue problem?"), 24, pal.Text, -4.5, -2.45, anim.AnchorCenter)
	if err := sc.Play(0.8, anim.FadeIn(card, line1, line2)); err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.Review); err != nil {
		return err
	}
	if err := sc.Wait(3.5); err != nil {
		return err
	}

	if err := sc.Play(1, anim.FadeOut(grid, ellipse, dots, arrow, meter, formula, hint, card, line1, line2)); err != nil {
		return err
	}
	return sc.Play(0.5, anim.FadeOut(header, subheader))
}

func (b *Builder) numberPlaneDraw(p plane, xLim, yLim float64) anim.DrawFunc {
	thin, thick := b.px(1), b.px(2)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		faint := *l
		faint.Color = withAlpha(l.Color, 0.6)
		for x := -math.Floor(xLim); x <= xLim; x++ {
			x1, y1 := p.at(x, -yLim)
			x2, y2 := p.at(x, yLim)
			anim.Segment(dc, vp, &faint, x1, y1, x2, y2, thin)
		}
		for y := -math.Floor(yLim); y <= yLim; y++ {
			x1, y1 := p.at(-xLim, y)
			x2, y2 := p.at(xLim, y)
			anim.Segment(dc, vp, &faint, x1, y1, x2, y2, thin)
		}
		x1, y1 := p.at(-xLim, 0)
		x2, y2 := p.at(xLim, 0)
		anim.Segment(dc, vp, l, x1, y1, x2, y2, thick)
		x1, y1 = p.at(0, -yLim)
		x2, y2 = p.at(0, yLim)
		anim.Segment(dc, vp, l, x1, y1, x2, y2, thick)
	}
}

func (b *Builder) ellipseDraw(rx, ry float64) anim.DrawFunc {
	width := b.px(2.5)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		cx, cy := vp.P(0, 0)
		c := l.Fade(l.Color)
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.SetLineWidth(width)
		dc.DrawEllipse(cx, cy, vp.Len(rx), vp.Len(ry))
		dc.Stroke()
	}
}

// principalDraw is the rotating arrow u with its label past the tip.
func (b *Builder) principalDraw(angle *anim.ValueTracker, length float64) anim.DrawFunc {
	face := b.face(32, typeset.Regular)
	width := b.px(5)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		dx, dy := math.Cos(angle.Value), math.Sin(angle.Value)
		anim.ArrowTo(dc, vp, l, 0, 0, length*dx, length*dy, width)
		anim.TextAt(dc, vp, l, face, "u", (length+0.35)*dx, (length+0.35)*dy, anim.AnchorCenter)
	}
}

// energyShare is the fraction of the cloud's total energy captured by
// the direction at angle.
func energyShare(c *pod.Cloud, angle float64) float64 {
	var total float64
	for _, p := range c.Points {
		total += p[0]*p[0] + p[1]*p[1]
	}
	share := pod.EnergyAt(c, angle) / (total + 1e-6)
	return math.Max(0, math.Min(1, share))
}

// meterDraw is the energy HUD: a label, a bar filled by the captured share
// and the share in percent, centred on (cx, cy).
func (b *Builder) meterDraw(c *pod.Cloud, angle *anim.ValueTracker, cx, cy float64) anim.DrawFunc {
	const w, h = 3.6, 0.6
	labelFace := b.face(26, typeset.Regular)
	valueFace := b.face(30, typeset.Bold)
	stroke := b.px(2)
	pal := b.Palette
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		share := energyShare(c, angle.Value)

		dim := *l
		dim.Color = pal.Dim
		anim.TextAt(dc, vp, &dim, labelFace, b.caption("review.meter", "Energy projection"), cx, cy+h/2+0.3, anim.AnchorCenter)

		anim.Box(cx, cy, w, h, 0.15, stroke, withAlpha(pal.Navy, 0.6))(dc, vp, l)

		barW := math.Max(0.02, share*(w-0.12))
		x, y := vp.P(cx-w/2+0.06, cy+(h-0.08)/2)
		c := l.Fade(pal.Primary)
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.DrawRoundedRectangle(x, y, vp.Len(barW), vp.Len(h-0.08), vp.Len(0.1))
		dc.Fill()

		anim.TextAt(dc, vp, l, valueFace, fmt.Sprintf("%.0f%%", share*100), cx+w/2+0.2, cy, anim.AnchorLeft)
	}
}
