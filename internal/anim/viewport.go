package anim

// FrameHeight is the visible height of the scene in scene units. Width
// follows from the output aspect ratio.
const FrameHeight = 8.0

// Viewport maps scene units (origin at centre, y up) to canvas pixels.
type Viewport struct {
	Width, Height int
}

// Unit is the number of pixels per scene unit.
func (v Viewport) Unit() float64 {
	return float64(v.Height) / FrameHeight
}

// FrameWidth is the visible width in scene units.
func (v Viewport) FrameWidth() float64 {
	return float64(v.Width) / v.Unit()
}

// P converts a scene point to pixel coordinates.
func (v Viewport) P(x, y float64) (float64, float64) {
	u := v.Unit()
	return float64(v.Width)/2 + x*u, float64(v.Height)/2 - y*u
}

// Len converts a scene length to pixels.
func (v Viewport) Len(l float64) float64 {
	return l * v.Unit()
}
