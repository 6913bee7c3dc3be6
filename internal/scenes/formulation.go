package scenes

import (
	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/storyboard"
	"github.com/ivlev/podviz/internal/typeset"
)

// mathFormulation clears the plane and walks through data matrix,
// covariance and eigenproblem.
func (b *Builder) mathFormulation() error {
	sc, pal := b.Scene, b.Palette

	if err := sc.Play(1, anim.FadeOut(present(b.dots, b.axes, b.mode1, b.mode2)...)); err != nil {
		return err
	}

	heading := b.title("math_title", b.caption("math.title", "The Mathematics of POD"), 40, pal.Yellow, 0, 3.45)
	if err := sc.Play(1, anim.Write(heading)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	step := b.text("step1", b.caption("math.step1", "Step 1: build the data matrix"), 28, pal.Blue, 0, 2, anim.AnchorCenter)
	eq := b.formula(typeset.FormulaDataMatrix, 36, pal.Text, 0, 1.2)
	explain := b.text("explain1", b.caption("math.explain1", "Each column is one data point"), 22, pal.Gray, 0, 0.45, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(step)); err != nil {
		return err
	}
	if err := sc.Play(1, anim.Write(eq, explain)); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}

	step2 := b.text("step2", b.caption("math.step2", "Step 2: compute the covariance matrix"), 28, pal.Blue, 0, 2, anim.AnchorCenter)
	eq2 := b.formula(typeset.FormulaCovariance, 36, pal.Text, 0, 1.2)
	explain2 := b.text("explain2", b.caption("math.explain2", "It describes how the data spread in every direction"),
		22, pal.Gray, 0, 0.45, anim.AnchorCenter)
	if err := sc.Play(1, crossFade(step, step2), crossFade(eq, eq2), crossFade(explain, explain2)); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}

	step3 := b.text("step3", b.caption("math.step3", "Step 3: eigendecomposition"), 28, pal.Blue, 0, 2, anim.AnchorCenter)
	eq3 := b.formula(typeset.FormulaEigen, 40, pal.Text, 0, 1.2)
	if err := sc.Play(1, crossFade(step2, step3), crossFade(eq2, eq3), anim.FadeOut(explain2)); err != nil {
		return err
	}

	parts := []*anim.Layer{
		b.text("phi_i", "φᵢ:", 28, pal.Yellow, -2.3, -0.1, anim.AnchorRight),
		b.text("phi_i_desc", b.caption("math.phi_i", "the i-th mode (eigenvector)"), 24, pal.Text, -2.1, -0.1, anim.AnchorLeft),
		b.text("lambda_i", "λᵢ:", 28, pal.Red, -2.3, -0.7, anim.AnchorRight),
		b.text("lambda_i_desc", b.caption("math.lambda_i", "the energy of that mode (eigenvalue)"), 24, pal.Text, -2.1, -0.7, anim.AnchorLeft),
	}
	if err := sc.Play(1, anim.Write(parts...)); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}

	box := anim.NewLayer("sort_box", pal.Yellow, anim.Box(0, 1.2, 4.2, 0.9, 0.08, b.px(2.5), withAlpha(pal.Yellow, 0)))
	order := b.text("order", b.caption("math.order", "Ordered by energy: λ₁ > λ₂ > λ₃ > ..."), 28, pal.Green, 0, -1.6, anim.AnchorCenter)
	if err := sc.Play(1, anim.Create(box)); err != nil {
		return err
	}
	if err := sc.Play(1, anim.Write(order)); err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.MathFormulation); err != nil {
		return err
	}
	if err := sc.Wait(3); err != nil {
		return err
	}

	next := b.text("next", b.caption("math.next", "2D part complete! The 3D extension comes next..."), 32, pal.Teal, 0, -3.45, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(next)); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}
	all := append([]*anim.Layer{heading, step3, eq3, box, order, next}, parts...)
	return sc.Play(1, anim.FadeOut(all...))
}

// crossFade stands in for a morph: the old layer fades out while the new
// one fades in at the same place.
func crossFade(from, to *anim.Layer) anim.Animation {
	return anim.Lagged(0, anim.FadeOut(from), anim.FadeIn(to))
}
