package raster

import (
	"errors"
	"image"
	"sync"
)

// ErrReleased is returned when an image handle is released twice.
var ErrReleased = errors.New("raster: image already released")

// Image is an owned raster handle. The backing pixel buffer comes from the
// renderer's pool; Release returns it so the next render can reuse it.
type Image struct {
	rgba     *image.RGBA
	pool     *bufferPool
	released bool
}

// NewImage wraps an existing pixel buffer in a handle. Used by renderers
// that manage their own allocation.
func NewImage(rgba *image.RGBA) *Image {
	return &Image{rgba: rgba}
}

// RGBA exposes the pixels. Nil after Release.
func (im *Image) RGBA() *image.RGBA { return im.rgba }

// Bounds returns the pixel bounds, or the zero rectangle after Release.
func (im *Image) Bounds() image.Rectangle {
	if im.rgba == nil {
		return image.Rectangle{}
	}
	return im.rgba.Bounds()
}

// Release returns the backing buffer to the pool. The handle must not be
// used afterwards.
func (im *Image) Release() error {
	if im.released {
		return ErrReleased
	}
	im.released = true
	if im.pool != nil && im.rgba != nil {
		im.pool.put(im.rgba.Pix)
	}
	im.rgba = nil
	return nil
}

// bufferPool recycles pixel buffers between renders.
type bufferPool struct {
	p sync.Pool
}

// get returns a zeroed buffer of length n.
func (bp *bufferPool) get(n int) []uint8 {
	if v := bp.p.Get(); v != nil {
		buf := v.([]uint8)
		if cap(buf) >= n {
			buf = buf[:n]
			clear(buf)
			return buf
		}
	}
	return make([]uint8, n)
}

func (bp *bufferPool) put(buf []uint8) {
	bp.p.Put(buf[:cap(buf)])
}
