package scenes

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/typeset"
)

// introduction opens on the title, sets up the two-sensor experiment and
// scatters the sampled cloud over a pair of axes.
func (b *Builder) introduction() error {
	if err := b.ensureCloud2D(); err != nil {
		return err
	}
	sc, pal := b.Scene, b.Palette

	// The title block shrinks to the top edge, so it is drawn from a tracker
	// rather than a fixed text layer.
	lift := &anim.ValueTracker{}
	title := anim.NewLayer("title", pal.Yellow, b.liftingText(
		b.caption("intro.title", "POD: Finding the Essential Direction of Data"),
		lift, 48, 29, 0.3, 3.45, typeset.Bold))
	subtitle := anim.NewLayer("subtitle", pal.Gray, b.liftingText(
		b.caption("intro.subtitle", "Proper Orthogonal Decomposition"),
		lift, 28, 17, -0.5, 2.95, typeset.Regular))

	if err := sc.Play(1.5, anim.Write(title)); err != nil {
		return err
	}
	if err := sc.Play(1, anim.FadeIn(subtitle)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}
	if err := sc.Play(1, lift.To(1)); err != nil {
		return err
	}

	experiment := b.text("experiment", b.caption("intro.experiment", "Setting: two sensors in a physics experiment"),
		32, pal.Text, 0, 2, anim.AnchorCenter)
	sensorA := b.text("sensor_a", b.caption("intro.sensor_a", "Sensor A (temperature)"), 24, pal.Blue, -1.8, 1.1, anim.AnchorLeft)
	sensorB := b.text("sensor_b", b.caption("intro.sensor_b", "Sensor B (pressure)"), 24, pal.Green, -1.8, 0.6, anim.AnchorLeft)
	if err := sc.Play(1, anim.FadeIn(experiment)); err != nil {
		return err
	}
	if err := sc.Play(1.5, anim.Write(sensorA, sensorB)); err != nil {
		return err
	}
	if err := sc.Wait(1.5); err != nil {
		return err
	}

	collecting := b.text("collecting",
		b.caption("intro.collecting", fmt.Sprintf("Collecting %d data points...", len(b.cloud.Points))),
		28, pal.Teal, 0, -0.6, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(collecting)); err != nil {
		return err
	}

	lx, ly := dataPlane.at(4.25, 0)
	xLabel := b.text("x_label", b.caption("intro.x_label", "Sensor A"), 20, pal.Text, lx, ly, anim.AnchorLeft)
	lx, ly = dataPlane.at(0, 4.3)
	yLabel := b.text("y_label", b.caption("intro.y_label", "Sensor B"), 20, pal.Text, lx, ly, anim.AnchorCenter)

	if err := sc.Play(0.8, anim.FadeOut(experiment, sensorA, sensorB, collecting, title, subtitle)); err != nil {
		return err
	}
	if err := sc.Play(1.5, anim.Create(b.axes), anim.Write(xLabel, yLabel)); err != nil {
		return err
	}

	b.reveal.Value = 0
	sc.Add(b.dots)
	if err := sc.Play(2, b.reveal.To(1)); err != nil {
		return err
	}

	observation := b.text("observation",
		b.caption("intro.observation", "The data form an ellipse: plain X-Y axes are not the best description"),
		24, pal.Yellow, 0, -3.55, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(observation)); err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.Introduction); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}
	return sc.Play(1, anim.FadeOut(observation, xLabel, yLabel))
}

// liftingText draws s moving from (0, y0) at size s0 to (0, y1) at size s1
// as lift goes from 0 to 1.
func (b *Builder) liftingText(s string, lift *anim.ValueTracker, s0, s1, y0, y1 float64, w typeset.Weight) anim.DrawFunc {
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		t := lift.Value
		face := b.face(anim.Lerp(s0, s1, t), w)
		anim.TextAt(dc, vp, l, face, s, 0, anim.Lerp(y0, y1, t), anim.AnchorCenter)
	}
}
