package pod

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleDeterministic(t *testing.T) {
	a, err := Sample(Cov2D, 100, 42)
	require.NoError(t, err)
	b, err := Sample(Cov2D, 100, 42)
	require.NoError(t, err)

	require.Len(t, a.Points, 100)
	assert.Equal(t, a.Points, b.Points)
}

func TestDecomposeModesOrderedAndOrthogonal(t *testing.T) {
	cloud, err := Sample(Cov3D, 2000, 123)
	require.NoError(t, err)

	modes, err := Decompose(cloud)
	require.NoError(t, err)
	require.Len(t, modes, 3)

	var ratios float64
	for i, m := range modes {
		ratios += m.Ratio
		var norm float64
		for _, v := range m.Direction {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-9, "mode %d not unit length", i)
		if i > 0 {
			assert.GreaterOrEqual(t, modes[i-1].Energy, m.Energy)
		}
	}
	assert.InDelta(t, 1.0, ratios, 1e-9)

	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			var dot float64
			for k := 0; k < 3; k++ {
				dot += modes[i].Direction[k] * modes[j].Direction[k]
			}
			assert.InDelta(t, 0, dot, 1e-9, "modes %d and %d not orthogonal", i, j)
		}
	}
}

func TestEnergySweepFindsDiagonal(t *testing.T) {
	cloud, err := Sample(Cov2D, 2000, 42)
	require.NoError(t, err)

	angle := MaxEnergyAngle(cloud, 360)
	assert.InDelta(t, math.Pi/4, angle, 0.1)
	assert.InDelta(t, math.Pi/4, PrincipalAngle(Cov2D), 1e-12)

	assert.Greater(t, EnergyAt(cloud, angle), EnergyAt(cloud, Orthogonal(angle)))
}

// Swapping the covariance reshapes the cloud without touching its size.
func TestCovarianceSwapChangesShape(t *testing.T) {
	tilted, err := Sample(Cov2D, 500, 42)
	require.NoError(t, err)
	flat, err := Sample(Covariance{{4, 0}, {0, 0.5}}, 500, 42)
	require.NoError(t, err)

	assert.Len(t, flat.Points, len(tilted.Points))

	tm, err := Decompose(tilted)
	require.NoError(t, err)
	fm, err := Decompose(flat)
	require.NoError(t, err)

	assert.InDelta(t, math.Pi/4, math.Abs(tm[0].Angle()), 0.15)
	assert.InDelta(t, 0, math.Abs(math.Sin(fm[0].Angle())), 0.1)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Cov2D.Validate())
	assert.NoError(t, Cov3D.Validate())
	assert.ErrorIs(t, Covariance{{1, 2}, {2, 1}}.Validate(), ErrNotPSD)
	assert.Error(t, Covariance{{1, 0.5}, {0, 1}}.Validate())
	assert.Error(t, Covariance{{1}}.Validate())
}

func TestSampleSingularCovariance(t *testing.T) {
	singular := Covariance{{1, 1}, {1, 1}}
	require.NoError(t, singular.Validate())

	c, err := Sample(singular, 50, 1)
	require.NoError(t, err)
	require.Len(t, c.Points, 50)
	spread := 0.0
	for _, p := range c.Points {
		assert.InDelta(t, p[0], p[1], 1e-6)
		spread += math.Abs(p[0])
	}
	assert.Greater(t, spread, 0.0)

	again, err := Sample(singular, 50, 1)
	require.NoError(t, err)
	assert.Equal(t, c.Points, again.Points)
}

func TestSampleDoesNotValidate(t *testing.T) {
	_, err := Sample(Covariance{{1, 2}, {2, 1}}, 10, 1)
	assert.NoError(t, err)
}

func TestSampleEllipseInside(t *testing.T) {
	c := SampleEllipse(4, 2.1, 160, 8)
	require.Len(t, c.Points, 160)
	for _, p := range c.Points {
		r := p[0]*p[0]/16 + p[1]*p[1]/(2.1*2.1)
		assert.LessOrEqual(t, r, 0.95*0.95+1e-9)
	}
}
