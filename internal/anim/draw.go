package anim

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Anchor positions for text, as fractions of the measured box.
var (
	AnchorCenter = [2]float64{0.5, 0.5}
	AnchorLeft   = [2]float64{0, 0.5}
	AnchorRight  = [2]float64{1, 0.5}
)

func setColor(dc *gg.Context, c gg.RGBA) {
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

// Dot is a filled disc of radius r (scene units) at (x, y).
func Dot(x, y, r float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		px, py := vp.P(x, y)
		setColor(dc, l.Fade(l.Color))
		dc.DrawCircle(px, py, vp.Len(r)*math.Max(l.Progress, 0.2))
		dc.Fill()
	}
}

// Segment draws the part of the segment revealed by l.Progress.
func Segment(dc *gg.Context, vp Viewport, l *Layer, x1, y1, x2, y2, width float64) {
	x2 = Lerp(x1, x2, l.Progress)
	y2 = Lerp(y1, y2, l.Progress)
	ax, ay := vp.P(x1, y1)
	bx, by := vp.P(x2, y2)
	setColor(dc, l.Fade(l.Color))
	dc.SetLineWidth(width)
	dc.DrawLine(ax, ay, bx, by)
	dc.Stroke()
}

// Line is a static segment.
func Line(x1, y1, x2, y2, width float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		Segment(dc, vp, l, x1, y1, x2, y2, width)
	}
}

// DashedLine is a segment stroked with the given dash pattern in pixels.
func DashedLine(x1, y1, x2, y2, width float64, dash ...float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		dc.SetDash(dash...)
		Segment(dc, vp, l, x1, y1, x2, y2, width)
		dc.SetDash()
	}
}

// ArrowTo draws a shaft with a filled triangular tip, both in pixels.
func ArrowTo(dc *gg.Context, vp Viewport, l *Layer, x1, y1, x2, y2, width float64) {
	x2 = Lerp(x1, x2, l.Progress)
	y2 = Lerp(y1, y2, l.Progress)
	ax, ay := vp.P(x1, y1)
	bx, by := vp.P(x2, y2)
	length := math.Hypot(bx-ax, by-ay)
	if length < 1 {
		return
	}
	ux, uy := (bx-ax)/length, (by-ay)/length
	head := math.Min(width*4, length*0.35)
	baseX, baseY := bx-ux*head, by-uy*head

	setColor(dc, l.Fade(l.Color))
	dc.SetLineWidth(width)
	dc.DrawLine(ax, ay, baseX, baseY)
	dc.Stroke()

	dc.MoveTo(bx, by)
	dc.LineTo(baseX-uy*head*0.5, baseY+ux*head*0.5)
	dc.LineTo(baseX+uy*head*0.5, baseY-ux*head*0.5)
	dc.ClosePath()
	dc.Fill()
}

func Arrow(x1, y1, x2, y2, width float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		ArrowTo(dc, vp, l, x1, y1, x2, y2, width)
	}
}

// TextAt draws s with the given face, revealing runes as Progress grows.
func TextAt(dc *gg.Context, vp Viewport, l *Layer, face text.Face, s string, x, y float64, anchor [2]float64) {
	if face == nil {
		return
	}
	runes := []rune(s)
	shown := int(math.Ceil(float64(len(runes)) * l.Progress))
	if shown <= 0 {
		return
	}
	dc.SetFont(face)
	px, py := vp.P(x, y)
	// Anchor against the full string so text does not drift while writing.
	w, h := dc.MeasureString(s)
	px -= w * anchor[0]
	py += h * (anchor[1] - 0.25)
	setColor(dc, l.Fade(l.Color))
	dc.DrawString(string(runes[:shown]), px, py)
}

func Text(face text.Face, s string, x, y float64, anchor [2]float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		TextAt(dc, vp, l, face, s, x, y, anchor)
	}
}

// Axes draws x and y axes with unit ticks over the given ranges.
func Axes(xMin, xMax, yMin, yMax, width float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		Segment(dc, vp, l, xMin, 0, xMax, 0, width)
		Segment(dc, vp, l, 0, yMin, 0, yMax, width)
		tick := 0.08
		for x := math.Ceil(xMin); x <= xMax; x++ {
			if x != 0 {
				Segment(dc, vp, l, x, -tick, x, tick, width)
			}
		}
		for y := math.Ceil(yMin); y <= yMax; y++ {
			if y != 0 {
				Segment(dc, vp, l, -tick, y, tick, y, width)
			}
		}
	}
}

// RightAngle draws the square corner marker between directions at angle
// and angle+90 degrees around (cx, cy).
func RightAngle(cx, cy, angle, size, width float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		ux, uy := math.Cos(angle)*size, math.Sin(angle)*size
		vx, vy := -uy, ux
		Segment(dc, vp, l, cx+ux, cy+uy, cx+ux+vx, cy+uy+vy, width)
		Segment(dc, vp, l, cx+ux+vx, cy+uy+vy, cx+vx, cy+vy, width)
	}
}

// Box outlines a rounded rectangle centred on (cx, cy).
func Box(cx, cy, w, h, radius, width float64, fill gg.RGBA) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		x, y := vp.P(cx-w/2, cy+h/2)
		pw, ph := vp.Len(w)*l.Progress, vp.Len(h)
		if fill.A > 0 {
			setColor(dc, l.Fade(fill))
			dc.DrawRoundedRectangle(x, y, pw, ph, vp.Len(radius))
			dc.Fill()
		}
		setColor(dc, l.Fade(l.Color))
		dc.SetLineWidth(width)
		dc.DrawRoundedRectangle(x, y, pw, ph, vp.Len(radius))
		dc.Stroke()
	}
}

// Polygon fills and outlines a closed polygon of scene points.
func Polygon(pts [][2]float64, fill gg.RGBA, width float64) DrawFunc {
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		if len(pts) < 3 {
			return
		}
		for i, p := range pts {
			x, y := vp.P(p[0], p[1])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		f := fill
		f.A *= l.Progress
		setColor(dc, l.Fade(f))
		dc.FillPreserve()
		setColor(dc, l.Fade(l.Color))
		dc.SetLineWidth(width)
		dc.Stroke()
	}
}

// Image places img centred on (cx, cy), scaled to width w scene units.
func Image(img image.Image, cx, cy, w float64) DrawFunc {
	buf := gg.ImageBufFromImage(img)
	b := img.Bounds()
	aspect := float64(b.Dy()) / float64(b.Dx())
	return func(dc *gg.Context, vp Viewport, l *Layer) {
		pw := vp.Len(w)
		ph := pw * aspect
		x, y := vp.P(cx, cy)
		dc.DrawImageEx(buf, gg.DrawImageOptions{
			X:         x - pw/2,
			Y:         y - ph/2,
			DstWidth:  pw,
			DstHeight: ph,
			Opacity:   l.Opacity * l.Progress,
		})
	}
}
