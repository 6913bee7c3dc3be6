package pod

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Covariance is a small symmetric table (2x2 or 3x3) shaping a point cloud.
type Covariance [][]float64

var (
	// Cov2D stretches the cloud along the 45 degree diagonal.
	Cov2D = Covariance{
		{2.5, 2.0},
		{2.0, 2.5},
	}
	Cov3D = Covariance{
		{3.0, 2.5, 0.5},
		{2.5, 3.0, 0.5},
		{0.5, 0.5, 1.0},
	}
)

var ErrNotPSD = errors.New("covariance is not positive semi-definite")

func (c Covariance) Dim() int { return len(c) }

func (c Covariance) sym() *mat.SymDense {
	n := len(c)
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, c[i][j])
		}
	}
	return s
}

// Validate checks shape, symmetry and positive semi-definiteness.
func (c Covariance) Validate() error {
	n := len(c)
	if n != 2 && n != 3 {
		return fmt.Errorf("covariance must be 2x2 or 3x3, got %d rows", n)
	}
	for i, row := range c {
		if len(row) != n {
			return fmt.Errorf("covariance row %d has %d columns, want %d", i, len(row), n)
		}
		for j := range row {
			if math.Abs(c[i][j]-c[j][i]) > 1e-9 {
				return fmt.Errorf("covariance not symmetric at (%d,%d)", i, j)
			}
		}
	}
	var es mat.EigenSym
	if !es.Factorize(c.sym(), false) {
		return fmt.Errorf("covariance eigendecomposition failed")
	}
	for _, v := range es.Values(nil) {
		if v < -1e-9 {
			return ErrNotPSD
		}
	}
	return nil
}

// Cloud is an ordered set of sampled coordinate tuples.
type Cloud struct {
	Dim    int
	Points [][]float64
}

// Sample draws n points from a zero-mean normal with covariance cov. The
// same seed always yields the same cloud. Singular covariances are allowed;
// their points lie in the range of cov.
func Sample(cov Covariance, n int, seed uint64) (*Cloud, error) {
	d := cov.Dim()
	l, err := factor(cov)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	cloud := &Cloud{Dim: d, Points: make([][]float64, n)}
	z := make([]float64, d)
	for i := range cloud.Points {
		for k := range z {
			z[k] = rng.NormFloat64()
		}
		p := make([]float64, d)
		for r := 0; r < d; r++ {
			for k := 0; k < d; k++ {
				p[r] += l.At(r, k) * z[k]
			}
		}
		cloud.Points[i] = p
	}
	return cloud, nil
}

// factor returns L with L·Lᵀ = cov. Positive definite tables use the
// Cholesky factor; the rest fall back to V·diag(√max(λ,0)) from the
// eigendecomposition, which clamps tiny negative eigenvalues to zero.
func factor(cov Covariance) (mat.Matrix, error) {
	var chol mat.Cholesky
	if chol.Factorize(cov.sym()) {
		var l mat.TriDense
		chol.LTo(&l)
		return &l, nil
	}

	var es mat.EigenSym
	if !es.Factorize(cov.sym(), true) {
		return nil, fmt.Errorf("covariance eigendecomposition failed")
	}
	var v mat.Dense
	es.VectorsTo(&v)
	vals := es.Values(nil)
	d := len(vals)
	l := mat.NewDense(d, d, nil)
	for c, lambda := range vals {
		s := math.Sqrt(math.Max(lambda, 0))
		for r := 0; r < d; r++ {
			l.Set(r, c, v.At(r, c)*s)
		}
	}
	return l, nil
}

// SampleEllipse scatters n points inside an axis-aligned ellipse with the
// given semi-axes, at radii in [0.35, 0.95] of the boundary.
func SampleEllipse(a, b float64, n int, seed uint64) *Cloud {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	cloud := &Cloud{Dim: 2, Points: make([][]float64, n)}
	for i := range cloud.Points {
		theta := rng.Float64() * 2 * math.Pi
		r := 0.35 + 0.6*rng.Float64()
		cloud.Points[i] = []float64{a * r * math.Cos(theta), b * r * math.Sin(theta)}
	}
	return cloud
}

// Bounds returns the per-axis absolute maximum, useful for fitting axes.
func (c *Cloud) Bounds() []float64 {
	out := make([]float64, c.Dim)
	for _, p := range c.Points {
		for i, v := range p {
			out[i] = math.Max(out[i], math.Abs(v))
		}
	}
	return out
}
