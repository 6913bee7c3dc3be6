package scenes

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/camera"
	"github.com/ivlev/podviz/internal/pod"
	"github.com/ivlev/podviz/internal/storyboard"
)

// View of the 3D part.
var (
	viewPhi     = camera.Deg(70)
	viewTheta   = camera.Deg(30)
	ambientRate = 0.15
)

// extension3D repeats the search in three dimensions, with modes taken
// from the eigendecomposition of the sampled cloud.
func (b *Builder) extension3D() error {
	spec := b.Board.Cloud3D
	cloud, err := pod.Sample(spec.Covariance, spec.Points, spec.Seed)
	if err != nil {
		return fmt.Errorf("sample 3d cloud: %w", err)
	}
	modes, err := pod.Decompose(cloud)
	if err != nil {
		return err
	}
	if len(modes) < 3 {
		return fmt.Errorf("3d cloud yields %d modes", len(modes))
	}
	sc, pal, cam := b.Scene, b.Palette, b.Camera

	heading := b.title("title_3d", b.caption("ext.title", "From 2D to 3D"), 36, pal.Yellow, 0, 3.45)
	if err := sc.Play(1, anim.Write(heading)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	cam.State = camera.State{Phi: viewPhi, Theta: viewTheta, Zoom: 1}
	axes := anim.NewLayer("axes_3d", pal.Gray, b.axes3DDraw(3))
	if err := sc.Play(2, anim.Create(axes)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	reveal := &anim.ValueTracker{}
	dots := anim.NewLayer("cloud_3d", pal.Blue, cloudDraw(cloud.Points, reveal, 0.01, 0.05, 0.85,
		func(p []float64) (float64, float64, float64) {
			return cam.Project(camera.FromSlice(p))
		}))
	sc.Add(dots)
	cloudLabel := b.text("cloud_label", b.caption("ext.cloud", "3D point cloud"), 24, pal.Blue, -6.6, 1.45, anim.AnchorLeft)
	if err := sc.Play(2.5, reveal.To(1), anim.Write(cloudLabel)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	computing := b.text("computing", b.caption("ext.computing", "Computing the covariance matrix of the data..."),
		24, pal.Yellow, 4.4, 2.45, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(computing)); err != nil {
		return err
	}
	if err := sc.Wait(1.5); err != nil {
		return err
	}

	dir := func(i int) camera.Vec3 { return camera.FromSlice(modes[i].Direction) }
	share := func(i int) string {
		return fmt.Sprintf(b.caption("ext.mode_share", "Mode %d: %.1f%% of the energy"), i+1, modes[i].Ratio*100)
	}

	arrow1 := anim.NewLayer("mode1_3d", pal.Green, b.arrow3DDraw(dir(0).Mul(3)))
	text1 := b.text("mode1_text", share(0), 24, pal.Green, 4.4, 2.45, anim.AnchorCenter)
	if err := sc.Play(1, anim.FadeOut(computing), anim.Create(arrow1), anim.Write(text1)); err != nil {
		return err
	}
	if err := sc.Wait(1.5); err != nil {
		return err
	}

	searching := b.text("plane_desc", b.caption("ext.plane", "Searching for Mode 2 in the orthogonal space..."),
		22, pal.Yellow, 4.4, 1.95, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(searching)); err != nil {
		return err
	}
	v2, v3 := dir(1), dir(2)
	corners := []camera.Vec3{
		v2.Mul(2.5).Add(v3.Mul(2.5)),
		v2.Mul(-2.5).Add(v3.Mul(2.5)),
		v2.Mul(-2.5).Add(v3.Mul(-2.5)),
		v2.Mul(2.5).Add(v3.Mul(-2.5)),
	}
	orthoPlane := anim.NewLayer("ortho_plane", pal.Blue, b.polygon3DDraw(corners, withAlpha(pal.Blue, 0.3)))
	if err := sc.Play(1, anim.Create(orthoPlane)); err != nil {
		return err
	}
	if err := sc.Wait(1.5); err != nil {
		return err
	}

	arrow2 := anim.NewLayer("mode2_3d", pal.Red, b.arrow3DDraw(v2.Mul(2.5)))
	text2 := b.text("mode2_text", share(1), 24, pal.Red, 4.4, 0.75, anim.AnchorCenter)
	if err := sc.Play(1, anim.FadeOut(searching), anim.Create(arrow2), anim.Write(text2)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	arrow3 := anim.NewLayer("mode3_3d", pal.Orange, b.arrow3DDraw(v3.Mul(2)))
	text3 := b.text("mode3_text", share(2), 22, pal.Orange, 4.4, 0.25, anim.AnchorCenter)
	if err := sc.Play(1, anim.FadeOut(orthoPlane), anim.Create(arrow3), anim.Write(text3)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	rotating := b.text("rotate_text", b.caption("ext.orthogonal", "The three modes are mutually orthogonal"),
		28, pal.Yellow, 0, -3.45, anim.AnchorCenter)
	if err := sc.Play(1, anim.Write(rotating)); err != nil {
		return err
	}

	cam.AmbientRate = ambientRate
	spin := sc.AddUpdater(func(_, dt float64) { cam.Advance(dt) })
	err = sc.Wait(5)
	sc.RemoveUpdater(spin)
	cam.AmbientRate = 0
	if err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.Extension3D); err != nil {
		return err
	}

	return sc.Play(1.5, anim.FadeOut(dots, axes, arrow1, arrow2, arrow3,
		heading, cloudLabel, text1, text2, text3, rotating))
}

func (b *Builder) axes3DDraw(lim float64) anim.DrawFunc {
	width := b.px(2)
	cam := b.Camera
	axes := []camera.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		for _, a := range axes {
			x1, y1, _ := cam.Project(a.Mul(-lim))
			x2, y2, _ := cam.Project(a.Mul(lim))
			anim.ArrowTo(dc, vp, l, x1, y1, x2, y2, width)
		}
	}
}

func (b *Builder) arrow3DDraw(tip camera.Vec3) anim.DrawFunc {
	width := b.px(4)
	cam := b.Camera
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		x1, y1, _ := cam.Project(camera.Vec3{})
		x2, y2, _ := cam.Project(tip)
		anim.ArrowTo(dc, vp, l, x1, y1, x2, y2, width)
	}
}

func (b *Builder) polygon3DDraw(corners []camera.Vec3, fill gg.RGBA) anim.DrawFunc {
	width := b.px(1)
	cam := b.Camera
	pts := make([][2]float64, len(corners))
	return func(dc *gg.Context, vp anim.Viewport, l *anim.Layer) {
		for i, c := range corners {
			x, y, _ := cam.Project(c)
			pts[i] = [2]float64{x, y}
		}
		anim.Polygon(pts, fill, width)(dc, vp, l)
	}
}
