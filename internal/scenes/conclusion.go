package scenes

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/skip2/go-qrcode"

	"github.com/ivlev/podviz/internal/anim"
	"github.com/ivlev/podviz/internal/camera"
	"github.com/ivlev/podviz/internal/storyboard"
)

// conclusion returns to the flat view, lists the key points and closes
// with a QR code pointing to further reading.
func (b *Builder) conclusion() error {
	sc, pal := b.Scene, b.Palette

	if err := sc.Play(1, b.Camera.MoveTo(camera.Flat)); err != nil {
		return err
	}

	heading := b.title("conclusion_title", b.caption("end.title", "Key Points of POD"), 48, pal.Yellow, 0, 3.45)
	if err := sc.Play(1, anim.Write(heading)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}

	texts := []struct {
		key, def string
		col      gg.RGBA
	}{
		{"end.point1", "1. Modes are ranked by energy, largest first", pal.Green},
		{"end.point2", "2. All modes are mutually orthogonal", pal.Red},
		{"end.point3", "3. The fewest dimensions capture the most information", pal.Blue},
		{"end.point4", "4. At heart it is an eigendecomposition of the covariance matrix", pal.Orange},
	}
	points := make([]*anim.Layer, len(texts))
	fades := make([]anim.Animation, len(texts))
	for i, t := range texts {
		points[i] = b.text(fmt.Sprintf("point%d", i+1), b.caption(t.key, t.def), 32, t.col, -5.2, 1.8-0.8*float64(i), anim.AnchorLeft)
		fades[i] = anim.FadeIn(points[i])
	}
	if err := sc.Play(4, anim.Lagged(0.4, fades...)); err != nil {
		return err
	}
	if err := sc.Wait(2); err != nil {
		return err
	}

	summary := b.title("summary", b.caption("end.summary", "POD = the optimal orthogonal coordinate system of the data"),
		40, pal.Yellow, 0, -3.2)
	if err := sc.Play(1, anim.Write(summary)); err != nil {
		return err
	}
	if err := sc.Checkpoint(storyboard.Conclusion); err != nil {
		return err
	}
	if err := sc.Wait(3); err != nil {
		return err
	}
	if err := sc.Play(2, anim.FadeOut(append([]*anim.Layer{heading, summary}, points...)...)); err != nil {
		return err
	}
	if err := sc.Wait(1); err != nil {
		return err
	}
	return b.endCard()
}

// endCard shows the reference URL as a QR code. Without a URL the card's
// time is held on the empty frame so the scene length does not change.
func (b *Builder) endCard() error {
	sc, pal := b.Scene, b.Palette
	url := b.QRURL
	if b.Board.QRURL != "" {
		url = b.Board.QRURL
	}
	if url == "" {
		return sc.Wait(5)
	}

	img, err := qrImage(url, pal.Text, pal.Background, 512)
	if err != nil {
		return err
	}
	code := anim.NewLayer("qr", pal.Text, anim.Image(img, 0, 0.5, 3))
	heading := b.text("qr_caption", b.caption("end.further", "Further reading"), 24, pal.Dim, 0, -1.5, anim.AnchorCenter)
	link := b.text("qr_url", url, 18, pal.Dim, 0, -2, anim.AnchorCenter)

	if err := sc.Play(1, anim.FadeIn(code, heading, link)); err != nil {
		return err
	}
	if err := sc.Checkpoint("end_card"); err != nil {
		return err
	}
	if err := sc.Wait(3); err != nil {
		return err
	}
	return sc.Play(1, anim.FadeOut(code, heading, link))
}

// qrImage encodes url with medium error correction in the given colours.
func qrImage(url string, fg, bg gg.RGBA, size int) (image.Image, error) {
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	q.ForegroundColor = toNRGBA(fg)
	q.BackgroundColor = toNRGBA(bg)
	return q.Image(size), nil
}

func toNRGBA(c gg.RGBA) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
