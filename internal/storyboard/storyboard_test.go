package storyboard

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/podviz/internal/pod"
)

func TestDefaultLintsClean(t *testing.T) {
	assert.NoError(t, Lint(Default()))
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards", "sb.yaml")
	sb := Default()
	sb.Timing[EnergySearch] = 40
	sb.Captions = map[string]string{"intro.title": "POD"}
	require.NoError(t, Write(sb, path))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, sb, got)
	assert.InDelta(t, 2.0, got.TimeScale(EnergySearch), 1e-9)
	assert.Equal(t, "POD", got.Caption("intro.title", "x"))
	assert.Equal(t, "x", got.Caption("missing", "x"))
}

func TestReadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\ncloud_2d:\n  covariance: [[2.5, -2.0], [-2.0, 2.5]]\n  seed: 42\n  points: 100\n"), 0644))

	sb, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, pod.Covariance{{2.5, -2.0}, {-2.0, 2.5}}, sb.Cloud2D.Covariance)
	assert.Equal(t, 150, sb.Cloud3D.Points)
	assert.InDelta(t, 1.0, sb.TimeScale(Introduction), 1e-9)
}

func TestLintReportsEveryProblem(t *testing.T) {
	sb := Default()
	sb.Timing["outro"] = 3
	sb.Timing[Conclusion] = 0
	sb.Cloud2D.Covariance = pod.Covariance{{1, 2}, {2, 1}}
	sb.Cloud3D.Covariance = pod.Covariance{{1, 0}, {0, 1}}
	sb.Palette = map[string]string{"primary": "#GG0000"}

	err := Lint(sb)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `unknown scene "outro"`)
	assert.Contains(t, msg, "conclusion has non-positive duration")
	assert.Contains(t, msg, "cloud_2d: covariance is not positive semi-definite")
	assert.Contains(t, msg, "cloud_3d: covariance must be 3x3")
	assert.Contains(t, msg, "palette: primary")
	assert.ErrorIs(t, err, pod.ErrNotPSD)
}

func TestDurationFallsBackToNominal(t *testing.T) {
	sb := Default()
	delete(sb.Timing, Review)
	assert.InDelta(t, Nominal(Review), sb.Duration(Review), 1e-9)
	assert.InDelta(t, 1.0, sb.TimeScale("unknown"), 1e-9)
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"storyboard_a.yaml", "storyboard_b.yaml", "storyboard_c.yml"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0644))
		mod := time.Now().Add(time.Duration(i-5) * time.Hour)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

	latest, err := FindLatest(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "storyboard_c.yml"), latest)

	_, err = FindLatest(t.TempDir())
	assert.Error(t, err)
}

func TestGeneratePath(t *testing.T) {
	path := GeneratePath("boards")
	assert.Equal(t, "boards", filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "storyboard_")
}
