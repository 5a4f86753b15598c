// Package raster turns SVG source bytes into pixel images.
// It wraps the oksvg parser and the rasterx scanline rasterizer.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxDim bounds the rendered raster so a huge scale factor cannot
// exhaust memory.
const maxDim = 8192

var errNoViewBox = errors.New("raster: document has no drawable area")

// Renderer produces an image from SVG source at a given scale factor.
// Implementations are safe for use from a background goroutine.
type Renderer interface {
	Render(src []byte, scale float32) (*Image, error)
}

// SVG is the production Renderer backed by oksvg and rasterx.
type SVG struct {
	buffers bufferPool
}

// NewSVG returns a ready renderer.
func NewSVG() *SVG {
	return &SVG{}
}

// Render parses src and rasterizes it at scale times its natural size.
func (r *SVG) Render(src []byte, scale float32) (*Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(src), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		return nil, errNoViewBox
	}

	dw := scaleDim(w, scale)
	dh := scaleDim(h, scale)

	pix := r.buffers.get(4 * dw * dh)
	rgba := &image.RGBA{
		Pix:    pix,
		Stride: 4 * dw,
		Rect:   image.Rect(0, 0, dw, dh),
	}

	scanner := rasterx.NewScannerGV(dw, dh, rgba, rgba.Bounds())
	icon.SetTarget(0, 0, float64(dw), float64(dh))
	icon.Draw(rasterx.NewDasher(dw, dh, scanner), 1.0)

	return &Image{rgba: rgba, pool: &r.buffers}, nil
}

func scaleDim(v float64, scale float32) int {
	d := int(math.Ceil(v * float64(scale)))
	if d < 1 {
		d = 1
	}
	if d > maxDim {
		d = maxDim
	}
	return d
}
