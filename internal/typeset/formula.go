package typeset

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/ivlev/podviz/internal/source"
)

// Formula ids, in the page order a formula sheet is expected to follow.
const (
	FormulaEnergy     = "energy"
	FormulaDataMatrix = "data_matrix"
	FormulaCovariance = "covariance"
	FormulaEigen      = "eigen"
	FormulaPODProblem = "pod_problem"
)

var FormulaIDs = []string{
	FormulaEnergy,
	FormulaDataMatrix,
	FormulaCovariance,
	FormulaEigen,
	FormulaPODProblem,
}

var plainFormulas = map[string]string{
	FormulaEnergy:     "E = Σᵢ |uᵢ · φ|²",
	FormulaDataMatrix: "A = [u₁, u₂, …, uₙ]",
	FormulaCovariance: "C = AAᵀ = Σᵢ uᵢuᵢᵀ",
	FormulaEigen:      "Cφᵢ = λᵢφᵢ",
	FormulaPODProblem: "max uᵀCu   s.t.  ‖u‖ = 1",
}

// Sheet holds formula images by id. Ids without an image are drawn from
// their plain Unicode rendering.
type Sheet struct {
	images map[string]image.Image
}

// LoadSheet rasterizes the sheet at path (PDF or image directory) at dpi
// and tints the ink. An empty path yields a sheet with no images. Extra
// pages are ignored and missing ones fall back to text.
func LoadSheet(path string, dpi int, tint gg.RGBA) (*Sheet, error) {
	s := &Sheet{images: make(map[string]image.Image)}
	if path == "" {
		return s, nil
	}
	src, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	n := min(src.PageCount(), len(FormulaIDs))
	for i := 0; i < n; i++ {
		page, err := src.RenderPage(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("render formula %s: %w", FormulaIDs[i], err)
		}
		s.images[FormulaIDs[i]] = Glyph(page, tint, 4)
	}
	return s, nil
}

// Image returns the rendered formula, if the sheet provided one.
func (s *Sheet) Image(id string) (image.Image, bool) {
	if s == nil {
		return nil, false
	}
	img, ok := s.images[id]
	return img, ok
}

// Text is the Unicode rendering of a formula.
func (s *Sheet) Text(id string) string {
	return plainFormulas[id]
}

// Len is the number of formulas backed by images.
func (s *Sheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.images)
}
