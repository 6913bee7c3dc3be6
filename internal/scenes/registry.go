package scenes

import (
	"fmt"

	"github.com/ivlev/podviz/internal/config"
	"github.com/ivlev/podviz/internal/storyboard"
)

// Entry is one scene of the animation.
type Entry struct {
	ID    string
	Part  config.Part
	Title string
	// Standalone scenes only render when asked for by id.
	Standalone bool
	build      func(*Builder) error
}

// Duration is the authored length in seconds.
func (e Entry) Duration() float64 {
	return storyboard.Nominal(e.ID)
}

var registry = []Entry{
	{ID: storyboard.Introduction, Part: config.Part2D, Title: "Introduction", build: (*Builder).introduction},
	{ID: storyboard.EnergySearch, Part: config.Part2D, Title: "Energy search", build: (*Builder).energySearch},
	{ID: storyboard.OrthogonalMode2, Part: config.Part2D, Title: "Orthogonal mode 2", build: (*Builder).orthogonalMode2},
	{ID: storyboard.MathFormulation, Part: config.Part2D, Title: "Mathematical formulation", build: (*Builder).mathFormulation},
	{ID: storyboard.Extension3D, Part: config.Part3D, Title: "3D extension", build: (*Builder).extension3D},
	{ID: storyboard.Conclusion, Part: config.Part3D, Title: "Conclusion", build: (*Builder).conclusion},
	{ID: storyboard.Review, Part: config.Part2D, Title: "POD review", Standalone: true, build: (*Builder).review},
}

// All returns the registry in narrative order.
func All() []Entry {
	return append([]Entry(nil), registry...)
}

func Lookup(id string) (Entry, bool) {
	for _, e := range registry {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Select returns the scenes of part in narrative order. With no ids every
// non-standalone scene of the part is returned; otherwise only the named
// ones, and ids belonging to the other part are skipped.
func Select(part config.Part, ids []string) ([]Entry, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := Lookup(id); !ok {
			return nil, fmt.Errorf("unknown scene %q", id)
		}
		want[id] = true
	}

	var out []Entry
	for _, e := range registry {
		if e.Part != part {
			continue
		}
		if (len(ids) == 0 && !e.Standalone) || want[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}
