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

// energySearch sweeps a direction phi around the cloud, showing the
// projections and the energy they carry, then locks the maximum as Mode 1.
func (b *Builder) energySearch() error {
	if err := b.ensurePlane(); err != nil {
		return err
	}
	sc, pal := b.Scene, b.Palette

	idea := b.title("idea", b.caption("energy.idea", "The core idea of POD: find the direction of maximum energy"),
		32, pal.Yellow, 0, 3.45)
	if err := sc.Play(1, anim.Write(idea)); err != nil {
		return err
	}
	if err := sc.Wait(1.5); err != nil {
		return err
	}

	theta := &anim.ValueTracker{}
	angle := func() float64 { return theta.Value }
	scan := anim.NewLayer("scan", pal.Yellow, b.vectorDraw(angle, 3.5, 2.5, 3, "φ"))
	projections := anim.NewLayer("projections", withAlpha(pal.Orange, 0.4), b.projectionDraw(angle))

	label := b.text("energy_label", b.caption("energy.label", "Projected energy E:"), 28, pal.Orange, 4.6, 1.9, anim.AnchorCenter)
	value := anim.NewLayer("energy_value", pal.Red, b.energyValueDraw(angle, 4.6, 1.25))
	formula := b.formula("energy", 32, pal.Text, 4.6, 0.45)
	legendU := b.text("legend_u", b.caption("energy.legend_u", "u: data point"), 20, pal.Blue, 3.7, -0.3, anim.AnchorLeft)
	legendPhi := b.text("legend_phi", b.caption("energy.legend_phi", "φ: scan direction"), 20, pal.Yellow, 3.7, -0.7, anim.AnchorLeft)

	if err := sc.Play(1, anim.Create(scan)); err != nil {
		return err
	}
	sc.Add(projections)
	if err := sc.Play(2, anim.Write(label, value, formula, legendU, legendPhi)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	searching := b.text("searching", b.caption("energy.searching", "Rotating to search for the maximum-energy direction..."),
		24, pal.Teal, 0, 2.95, anim.AnchorCenter)
	if err := sc.Play(1, anim.FadeIn(searching)); err != nil {
		return err
	}
	if err := sc.PlayRate(6, anim.Linear, theta.To(2*math.Pi)); err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.EnergySearch); err != nil {
		return err
	}
	if err := sc.Wait(0.5); err != nil {
		return err
	}

	target := settleAngle(pod.MaxEnergyAngle(b.cloud, 720), 2*math.Pi)
	if err := sc.Play(1.5, theta.To(target)); err != nil {
		return err
	}

	found := b.text("found", b.caption("energy.found", "Found it! The first mode (Mode 1)"), 32, pal.Green, 0, 2.95, anim.AnchorCenter)
	if err := sc.Play(1.5, anim.FadeOut(searching), anim.Write(found), anim.Recolor(pal.Green, scan)); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}

	sc.Remove(projections, scan)
	b.mode1Angle = target
	b.mode1 = b.modeLayer("mode1", pal.Green, target, 3.5, "φ₁")
	sc.Add(b.mode1)

	return sc.Play(1, anim.FadeOut(idea, found, label, value, formula, legendU, legendPhi))
}

// settleAngle picks the representative of the unsigned direction best
// (in [0, pi)) closest to from, so the sweep does not unwind.
func settleAngle(best, from float64) float64 {
	k := math.Round((from - best) / math.Pi)
	return best + k*math.Pi
}

// projectionDraw drops a dashed line from every point to its projection on
// the current direction.
func (b *Builder) projectionDraw(angle func() float64) anim.DrawFunc {
	width := b.px(1.5)
	dash := b.px(5)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		a := angle()
		dx, dy := math.Cos(a), math.Sin(a)
		dc.SetDash(dash, dash)
		for _, p := range b.cloud.Points {
			d := p[0]*dx + p[1]*dy
			x1, y1 := dataPlane.at(p[0], p[1])
			x2, y2 := dataPlane.at(d*dx, d*dy)
			anim.Segment(dc, vp, l, x1, y1, x2, y2, width)
		}
		dc.SetDash()
	}
}

// energyValueDraw prints E for the current direction.
func (b *Builder) energyValueDraw(angle func() float64, x, y float64) anim.DrawFunc {
	face := b.face(40, typeset.Bold)
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		e := pod.EnergyAt(b.cloud, angle())
		anim.TextAt(dc, vp, l, face, fmt.Sprintf("%.1f", e), x, y, anim.AnchorCenter)
	}
}
