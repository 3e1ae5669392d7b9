package system

import (
	"image"
	"sync"
)

// ImagePool recycles poster buffers between documents of the same size.
// Each size gets its own sync.Pool.
type ImagePool struct {
	sizes sync.Map // image.Rectangle -> *sync.Pool
}

var posterPool = NewImagePool()

// NewImagePool returns an empty pool.
func NewImagePool() *ImagePool {
	return &ImagePool{}
}

// GetImage returns a pooled image for rect. Its pixels are not cleared.
func GetImage(rect image.Rectangle) *image.RGBA {
	return posterPool.Get(rect)
}

// PutImage hands img back for reuse.
func PutImage(img *image.RGBA) {
	posterPool.Put(img)
}

func (p *ImagePool) Get(rect image.Rectangle) *image.RGBA {
	v, ok := p.sizes.Load(rect)
	if !ok {
		v, _ = p.sizes.LoadOrStore(rect, &sync.Pool{
			New: func() any { return image.NewRGBA(rect) },
		})
	}
	return v.(*sync.Pool).Get().(*image.RGBA)
}

// Put ignores images whose size was never requested through Get.
func (p *ImagePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	if v, ok := p.sizes.Load(img.Rect); ok {
		v.(*sync.Pool).Put(img)
	}
}
