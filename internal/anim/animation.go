package anim

import "github.com/gogpu/gg"

// Animation changes layer state over the run time of a Play call.
// Begin runs before the first frame, Apply with eased progress in [0,1] on
// every frame, End after the last one.
type Animation interface {
	Begin(s *Stage)
	Apply(t float64)
	End(s *Stage)
}

type fadeIn struct{ layers []*Layer }

// FadeIn adds the layers at zero opacity and raises them to fully visible.
func FadeIn(layers ...*Layer) Animation { return &fadeIn{layers} }

func (a *fadeIn) Begin(s *Stage) {
	for _, l := range a.layers {
		l.Opacity, l.Progress = 0, 1
		s.Add(l)
	}
}

func (a *fadeIn) Apply(t float64) {
	for _, l := range a.layers {
		l.Opacity = t
	}
}

func (a *fadeIn) End(*Stage) {}

type fadeOut struct {
	layers []*Layer
	start  []float64
}

// FadeOut lowers the layers to transparent and takes them off stage.
func FadeOut(layers ...*Layer) Animation { return &fadeOut{layers: layers} }

func (a *fadeOut) Begin(*Stage) {
	a.start = make([]float64, len(a.layers))
	for i, l := range a.layers {
		a.start[i] = l.Opacity
	}
}

func (a *fadeOut) Apply(t float64) {
	for i, l := range a.layers {
		l.Opacity = a.start[i] * (1 - t)
	}
}

func (a *fadeOut) End(s *Stage) {
	s.Remove(a.layers...)
}

type create struct{ layers []*Layer }

// Create draws the layers progressively, the way a pen would.
func Create(layers ...*Layer) Animation { return &create{layers} }

// Write is Create for text.
func Write(layers ...*Layer) Animation { return &create{layers} }

func (a *create) Begin(s *Stage) {
	for _, l := range a.layers {
		l.Opacity, l.Progress = 1, 0
		s.Add(l)
	}
}

func (a *create) Apply(t float64) {
	for _, l := range a.layers {
		l.Progress = t
	}
}

func (a *create) End(*Stage) {}

type tween struct {
	begin func()
	apply func(t float64)
}

// Tween drives an arbitrary value. begin may be nil.
func Tween(begin func(), apply func(t float64)) Animation {
	return &tween{begin: begin, apply: apply}
}

func (a *tween) Begin(*Stage) {
	if a.begin != nil {
		a.begin()
	}
}

func (a *tween) Apply(t float64) { a.apply(t) }
func (a *tween) End(*Stage)      {}

// ValueTracker is a scalar animated by Tween and read by draw funcs.
type ValueTracker struct {
	Value float64
}

// To animates the tracker from its value at Begin to target.
func (v *ValueTracker) To(target float64) Animation {
	var from float64
	return Tween(func() { from = v.Value }, func(t float64) { v.Value = Lerp(from, target, t) })
}

type recolor struct {
	layers []*Layer
	to     gg.RGBA
	from   []gg.RGBA
}

// Recolor blends the layers' colour towards to.
func Recolor(to gg.RGBA, layers ...*Layer) Animation {
	return &recolor{layers: layers, to: to}
}

func (a *recolor) Begin(*Stage) {
	a.from = make([]gg.RGBA, len(a.layers))
	for i, l := range a.layers {
		a.from[i] = l.Color
	}
}

func (a *recolor) Apply(t float64) {
	for i, l := range a.layers {
		l.Color = a.from[i].Lerp(a.to, t)
	}
}

func (a *recolor) End(*Stage) {}

type lagged struct {
	anims []Animation
	lag   float64
}

// Lagged staggers the animations: each starts lag of a single animation's
// length after the previous one.
func Lagged(lag float64, anims ...Animation) Animation {
	return &lagged{anims: anims, lag: lag}
}

func (a *lagged) Begin(s *Stage) {
	for _, an := range a.anims {
		an.Begin(s)
		an.Apply(0)
	}
}

func (a *lagged) Apply(t float64) {
	for i, an := range a.anims {
		an.Apply(LagProgress(i, len(a.anims), a.lag, t))
	}
}

// LagProgress is the progress of item i of n when n equal animations are
// staggered by lag and the whole group is at t.
func LagProgress(i, n int, lag, t float64) float64 {
	span := 1 + lag*float64(n-1)
	start := float64(i) * lag / span
	end := (float64(i)*lag + 1) / span
	return clamp01((t - start) / (end - start))
}

func (a *lagged) End(s *Stage) {
	for _, an := range a.anims {
		an.End(s)
	}
}

type rated struct {
	Animation
	rate RateFunc
}

// WithRate overrides the rate function of one animation inside a Play call.
func WithRate(a Animation, rate RateFunc) Animation {
	return &rated{Animation: a, rate: rate}
}

func (a *rated) Apply(t float64) { a.Animation.Apply(a.rate(t)) }
