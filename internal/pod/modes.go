package pod

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Mode is one orthogonal direction found by the decomposition.
type Mode struct {
	Direction []float64
	Energy    float64 // eigenvalue
	Ratio     float64 // share of total energy
}

// Energy is the projection energy E = sum |u_i . phi|^2 of the cloud onto dir.
func Energy(c *Cloud, dir []float64) float64 {
	var e float64
	for _, p := range c.Points {
		var dot float64
		for i := range dir {
			dot += p[i] * dir[i]
		}
		e += dot * dot
	}
	return e
}

// EnergyAt is Energy for a planar direction given by its angle.
func EnergyAt(c *Cloud, angle float64) float64 {
	return Energy(c, []float64{math.Cos(angle), math.Sin(angle)})
}

// MaxEnergyAngle sweeps [0, pi) in the given number of steps and returns the
// angle capturing the most energy. Directions are unsigned, so half a turn
// covers every candidate.
func MaxEnergyAngle(c *Cloud, steps int) float64 {
	if steps < 1 {
		steps = 1
	}
	best, bestE := 0.0, -1.0
	for i := 0; i < steps; i++ {
		a := math.Pi * float64(i) / float64(steps)
		if e := EnergyAt(c, a); e > bestE {
			best, bestE = a, e
		}
	}
	return best
}

// PrincipalAngle is the closed-form major-axis angle of a 2x2 covariance.
func PrincipalAngle(cov Covariance) float64 {
	a, b, d := cov[0][0], cov[0][1], cov[1][1]
	return 0.5 * math.Atan2(2*b, a-d)
}

// Orthogonal returns the in-plane angle perpendicular to angle.
func Orthogonal(angle float64) float64 {
	return angle + math.Pi/2
}

// SampleCovariance estimates the covariance of the cloud.
func SampleCovariance(c *Cloud) *mat.SymDense {
	data := make([]float64, 0, len(c.Points)*c.Dim)
	for _, p := range c.Points {
		data = append(data, p...)
	}
	x := mat.NewDense(len(c.Points), c.Dim, data)
	cov := mat.NewSymDense(c.Dim, nil)
	stat.CovarianceMatrix(cov, x, nil)
	return cov
}

// Decompose computes the modes of the cloud ordered by descending energy.
func Decompose(c *Cloud) ([]Mode, error) {
	if len(c.Points) < 2 {
		return nil, fmt.Errorf("need at least 2 points, got %d", len(c.Points))
	}
	var es mat.EigenSym
	if !es.Factorize(SampleCovariance(c), true) {
		return nil, fmt.Errorf("eigendecomposition did not converge")
	}
	values := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	var total float64
	for _, v := range values {
		total += v
	}

	modes := make([]Mode, len(values))
	for i, v := range values {
		dir := make([]float64, c.Dim)
		for r := 0; r < c.Dim; r++ {
			dir[r] = vecs.At(r, i)
		}
		canonicalSign(dir)
		ratio := 0.0
		if total > 0 {
			ratio = v / total
		}
		modes[i] = Mode{Direction: dir, Energy: v, Ratio: ratio}
	}
	sort.SliceStable(modes, func(i, j int) bool { return modes[i].Energy > modes[j].Energy })
	return modes, nil
}

// canonicalSign flips dir so its largest component is positive, which keeps
// arrows pointing the same way across runs.
func canonicalSign(dir []float64) {
	k := 0
	for i := range dir {
		if math.Abs(dir[i]) > math.Abs(dir[k]) {
			k = i
		}
	}
	if dir[k] < 0 {
		for i := range dir {
			dir[i] = -dir[i]
		}
	}
}

// Angle of a planar mode direction.
func (m Mode) Angle() float64 {
	return math.Atan2(m.Direction[1], m.Direction[0])
}
