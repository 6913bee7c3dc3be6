package anim

import (
	"context"
	"math"

	"github.com/gogpu/gg"
)

// Updater runs once per frame with the scene clock, like a per-frame hook
// on a mobject.
type Updater func(sceneTime, dt float64)

// Scene plays animations against a stage and streams frames to a sink.
type Scene struct {
	Stage    *Stage
	Viewport Viewport
	FPS      int
	// TimeScale stretches every Play and Wait. Storyboard timings set it.
	TimeScale float64

	ctx      context.Context
	dc       *gg.Context
	sink     FrameSink
	lastOnly bool
	updaters []updater
	nextID   int
	elapsed  float64
	frames   int
}

type updater struct {
	id int
	fn Updater
}

func NewScene(ctx context.Context, dc *gg.Context, fps int, bg gg.RGBA, sink FrameSink) *Scene {
	s := &Scene{
		Stage:     NewStage(bg),
		Viewport:  Viewport{Width: dc.Width(), Height: dc.Height()},
		FPS:       fps,
		TimeScale: 1,
		ctx:       ctx,
		dc:        dc,
		sink:      sink,
	}
	if lf, ok := sink.(LastFrameSink); ok {
		s.lastOnly = lf.LastFrameOnly()
	}
	return s
}

// Elapsed is the scene clock in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Frames is the number of frames emitted so far.
func (s *Scene) Frames() int { return s.frames }

func (s *Scene) Add(layers ...*Layer)    { s.Stage.Add(layers...) }
func (s *Scene) Remove(layers ...*Layer) { s.Stage.Remove(layers...) }

// AddUpdater registers fn and returns a handle for RemoveUpdater.
func (s *Scene) AddUpdater(fn Updater) int {
	s.nextID++
	s.updaters = append(s.updaters, updater{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *Scene) RemoveUpdater(id int) {
	for i, u := range s.updaters {
		if u.id == id {
			s.updaters = append(s.updaters[:i], s.updaters[i+1:]...)
			return
		}
	}
}

func (s *Scene) ClearUpdaters() {
	s.updaters = nil
}

// FrameCount is the number of frames a span of d seconds occupies.
func FrameCount(d float64, fps int) int {
	if d <= 0 {
		return 0
	}
	n := int(math.Round(d * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

// Play runs the animations together over runTime seconds with Smooth easing.
func (s *Scene) Play(runTime float64, anims ...Animation) error {
	return s.PlayRate(runTime, Smooth, anims...)
}

// PlayRate is Play with an explicit rate function. Animations wrapped with
// WithRate keep their own.
func (s *Scene) PlayRate(runTime float64, rate RateFunc, anims ...Animation) error {
	driven := make([]Animation, len(anims))
	for i, a := range anims {
		if _, ok := a.(*rated); ok {
			driven[i] = a
		} else {
			driven[i] = WithRate(a, rate)
		}
		driven[i].Begin(s.Stage)
	}

	n := FrameCount(runTime*s.TimeScale, s.FPS)
	if n == 0 {
		for _, a := range driven {
			a.Apply(1)
		}
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		for _, a := range driven {
			a.Apply(t)
		}
		if err := s.tick(); err != nil {
			return err
		}
	}
	for _, a := range driven {
		a.End(s.Stage)
	}
	return nil
}

// Wait holds the current state for d seconds while updaters keep running.
func (s *Scene) Wait(d float64) error {
	n := FrameCount(d*s.TimeScale, s.FPS)
	for i := 0; i < n; i++ {
		if err := s.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) tick() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	dt := 1 / float64(s.FPS)
	s.elapsed += dt
	for _, u := range s.updaters {
		u.fn(s.elapsed, dt)
	}
	s.frames++
	if s.lastOnly {
		return nil
	}
	return s.emit()
}

func (s *Scene) emit() error {
	s.Stage.Render(s.dc, s.Viewport)
	return s.sink.WriteFrame(s.dc.Image())
}

// Checkpoint hands the current state to sinks that collect stills, so a
// last-frame preview still shows each narrative beat.
func (s *Scene) Checkpoint(label string) error {
	cp, ok := s.sink.(Checkpointer)
	if !ok {
		return nil
	}
	s.Stage.Render(s.dc, s.Viewport)
	return cp.Checkpoint(label, s.dc.Image())
}

// Flush writes the final state to a last-frame sink. Streaming sinks
// already have every frame.
func (s *Scene) Flush() error {
	if !s.lastOnly {
		return nil
	}
	return s.emit()
}
