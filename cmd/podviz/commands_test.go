package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/podviz/internal/storyboard"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestScenesListsRegistry(t *testing.T) {
	out, err := execute(t, "scenes")
	require.NoError(t, err)
	assert.Contains(t, out, "introduction")
	assert.Contains(t, out, "extension_3d")
	assert.Contains(t, out, "(on request)")
}

func TestStoryboardInitThenLint(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "storyboard", "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Storyboard written")

	out, err = execute(t, "storyboard", "lint", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestStoryboardLintReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	sb := storyboard.Default()
	sb.Timing["introduction"] = -1
	require.NoError(t, storyboard.Write(sb, path))

	_, err := execute(t, "storyboard", "lint", path)
	assert.ErrorContains(t, err, "introduction")
}

func TestConcatRejectsMissingParts(t *testing.T) {
	_, err := execute(t, "concat", "low", "--output", t.TempDir())
	require.Error(t, err)
}

func TestConcatAcceptsJoinFlags(t *testing.T) {
	_, err := execute(t, "concat", "low", "--output", t.TempDir(),
		"--transition", "fade", "--fade", "0.8", "--encoder", "libx264", "--crf", "20")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "unknown flag")
	assert.Equal(t, "fade", cfg.TransitionType)
	assert.InDelta(t, 0.8, cfg.FadeDuration, 1e-9)
	assert.Equal(t, "libx264", cfg.VideoEncoder)
	assert.Equal(t, 20, cfg.CRF)
}

func TestRootRejectsUnknownKeyword(t *testing.T) {
	_, err := execute(t, "4d")
	assert.ErrorContains(t, err, "unrecognized argument")
}
