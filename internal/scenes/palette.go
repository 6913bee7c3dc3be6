package scenes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/gg"
)

// Palette names every colour the scenes use.
type Palette struct {
	Background gg.RGBA
	Navy       gg.RGBA
	Text       gg.RGBA
	Dim        gg.RGBA
	Gray       gg.RGBA
	Yellow     gg.RGBA
	Blue       gg.RGBA
	Green      gg.RGBA
	Red        gg.RGBA
	Orange     gg.RGBA
	Teal       gg.RGBA
	Cloud      gg.RGBA
	Primary    gg.RGBA
	Grid       gg.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Background: gg.Hex("#000000"),
		Navy:       gg.Hex("#050C1D"),
		Text:       gg.Hex("#F4F4F5"),
		Dim:        gg.Hex("#A2A7B4"),
		Gray:       gg.Hex("#888888"),
		Yellow:     gg.Hex("#FFFF00"),
		Blue:       gg.Hex("#58C4DD"),
		Green:      gg.Hex("#83C167"),
		Red:        gg.Hex("#FC6255"),
		Orange:     gg.Hex("#FF862F"),
		Teal:       gg.Hex("#5CD0B3"),
		Cloud:      gg.Hex("#9FD8FF"),
		Primary:    gg.Hex("#F45B69"),
		Grid:       gg.Hex("#1D2433"),
	}
}

func (p *Palette) fields() map[string]*gg.RGBA {
	return map[string]*gg.RGBA{
		"background": &p.Background,
		"navy":       &p.Navy,
		"text":       &p.Text,
		"dim":        &p.Dim,
		"gray":       &p.Gray,
		"yellow":     &p.Yellow,
		"blue":       &p.Blue,
		"green":      &p.Green,
		"red":        &p.Red,
		"orange":     &p.Orange,
		"teal":       &p.Teal,
		"cloud":      &p.Cloud,
		"primary":    &p.Primary,
		"grid":       &p.Grid,
	}
}

// Apply replaces colours by name with hex values from a storyboard.
func (p *Palette) Apply(overrides map[string]string) error {
	fields := p.fields()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dst, ok := fields[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown palette colour %q", name)
		}
		*dst = gg.Hex(overrides[name])
	}
	return nil
}

func withAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A *= a
	return c
}
