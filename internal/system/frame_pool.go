package system

import (
	"image"
	"sync"
)

// FramePool reuses RGBA buffers of a given size across frames so format
// conversion does not allocate per frame.
type FramePool struct {
	mu    sync.RWMutex
	pools map[image.Point]*sync.Pool
}

var frames = NewFramePool()

func NewFramePool() *FramePool {
	return &FramePool{pools: make(map[image.Point]*sync.Pool)}
}

// GetImage returns a buffer covering rect from the shared pool. Its
// contents are undefined.
func GetImage(rect image.Rectangle) *image.RGBA {
	return frames.Get(rect)
}

// PutImage hands a buffer back to the shared pool.
func PutImage(img *image.RGBA) {
	frames.Put(img)
}

func (p *FramePool) pool(size image.Point) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[size]
	p.mu.RUnlock()
	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pool, ok = p.pools[size]; ok {
		return pool
	}
	pool = &sync.Pool{New: func() any {
		return image.NewRGBA(image.Rectangle{Max: size})
	}}
	p.pools[size] = pool
	return pool
}

func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	img := p.pool(rect.Size()).Get().(*image.RGBA)
	img.Rect = rect
	return img
}

func (p *FramePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	img.Rect = image.Rectangle{Max: img.Rect.Size()}
	p.pool(img.Rect.Size()).Put(img)
}
