package scenes

import (
	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/pod"
	"github.com/ivlev/podviz/internal/storyboard"
)

// orthogonalMode2 adds the second mode at a right angle to the first.
func (b *Builder) orthogonalMode2() error {
	if err := b.ensureMode1(); err != nil {
		return err
	}
	sc, pal := b.Scene, b.Palette

	heading := b.title("ortho_title", b.caption("ortho.title", "The second mode must be orthogonal to the first"),
		32, pal.Yellow, 0, 3.45)
	if err := sc.Play(1, anim.Write(heading)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	constraint := b.text("constraint", b.caption("ortho.constraint", "Constraint: φ₁ ⊥ φ₂"), 28, pal.Orange, 5, 2.4, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(constraint)); err != nil {
		return err
	}

	b.mode2 = b.modeLayer("mode2", pal.Red, pod.Orthogonal(b.mode1Angle), 3, "φ₂")
	if err := sc.Play(2, anim.Create(b.mode2)); err != nil {
		return err
	}

	ox, oy := dataPlane.at(0, 0)
	marker := anim.NewLayer("right_angle", pal.Text, anim.RightAngle(ox, oy, b.mode1Angle, 0.3, b.px(2)))
	if err := sc.Play(1, anim.Create(marker)); err != nil {
		return err
	}

	label1 := b.text("mode1_label", b.caption("ortho.mode1", "Mode 1 (maximum energy)"), 24, pal.Green, -6.6, 1.6, anim.AnchorLeft)
	label2 := b.text("mode2_label", b.caption("ortho.mode2", "Mode 2 (second largest energy)"), 24, pal.Red, -6.6, 1.1, anim.AnchorLeft)
	if err := sc.Play(1, anim.Write(label1, label2)); err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.OrthogonalMode2); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}
	return sc.Play(1, anim.FadeOut(heading, constraint, label1, label2, marker))
}
