package system

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickEncoder(t *testing.T) {
	listing := ` V....D libx264              libx264 H.264 / AVC
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder`
	assert.Equal(t, "h264_nvenc", pickEncoder(listing))
	assert.Equal(t, "libx264", pickEncoder(" V....D libx264  libx264 H.264"))
}

func TestFramePoolReusesBySize(t *testing.T) {
	p := NewFramePool()
	img := p.Get(image.Rect(0, 0, 8, 4))
	assert.Equal(t, 8*4*4, len(img.Pix))
	p.Put(img)

	other := p.Get(image.Rect(0, 0, 4, 8))
	assert.Equal(t, image.Rect(0, 0, 4, 8), other.Rect)
	assert.Equal(t, 16, other.Stride)
}

func TestFrameBudgetGrowsWithResolution(t *testing.T) {
	assert.Greater(t, FrameBudget(1920, 1080), FrameBudget(854, 480))
}

func TestCheckMemoryAcceptsSmallFrames(t *testing.T) {
	assert.NoError(t, CheckMemory(1, 16, 9))
}

func TestDefaultWorkersIsPositive(t *testing.T) {
	assert.GreaterOrEqual(t, DefaultWorkers(), 1)
}
