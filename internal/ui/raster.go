package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/svglens/svglens/internal/preview"
)

// halfBlock paints two vertically stacked pixels per terminal cell: the
// foreground colors the upper half, the background the lower.
const halfBlock = "▀"

// pixelsPerCellY is the vertical pixel density of a cell.
const pixelsPerCellY = 2

type rgb struct {
	r, g, b uint8
}

// rasterView draws img into a cols x rows cell grid. In fit mode the image
// is downscaled to the pane and centered; otherwise pixels map 1:1 onto
// half cells, placed at the pan offset and clipped at the pane edges.
// Transparent pixels show a checkerboard.
func (m *Model) rasterView(img image.Image, cols, rows int, pan preview.Point, fit bool) string {
	var (
		sample  func(x, y int) (rgb, uint8, bool)
		offX    int
		offY    int
		canvas  = parseHex(string(m.theme.canvas))
		alt     = parseHex(string(m.theme.canvasAlt))
		builder strings.Builder
	)

	if fit {
		fitted := imaging.Fit(img, cols, rows*pixelsPerCellY, imaging.Lanczos)
		sample = nrgbaSampler(fitted)
		offX = (cols - fitted.Rect.Dx()) / 2
		offY = (rows*pixelsPerCellY - fitted.Rect.Dy()) / 2
	} else {
		sample = imageSampler(img)
		offX = int(pan.X)
		offY = int(pan.Y) * pixelsPerCellY
	}

	styles := make(map[[2]rgb]lipgloss.Style)
	for row := 0; row < rows; row++ {
		if row > 0 {
			builder.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			checker := canvas
			if (col/4+row/2)%2 == 1 {
				checker = alt
			}
			top := blendAt(sample, col-offX, row*pixelsPerCellY-offY, checker)
			bot := blendAt(sample, col-offX, row*pixelsPerCellY+1-offY, checker)

			key := [2]rgb{top, bot}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(top.hex())).
					Background(lipgloss.Color(bot.hex()))
				styles[key] = style
			}
			builder.WriteString(style.Render(halfBlock))
		}
	}
	return builder.String()
}

// blendAt composites the pixel at (x, y) over the backdrop color. Out of
// bounds pixels are pure backdrop.
func blendAt(sample func(int, int) (rgb, uint8, bool), x, y int, backdrop rgb) rgb {
	src, alpha, ok := sample(x, y)
	if !ok || alpha == 0 {
		return backdrop
	}
	if alpha == 0xff {
		return src
	}
	inv := uint32(0xff - alpha)
	return rgb{
		r: uint8(uint32(src.r) + uint32(backdrop.r)*inv/0xff),
		g: uint8(uint32(src.g) + uint32(backdrop.g)*inv/0xff),
		b: uint8(uint32(src.b) + uint32(backdrop.b)*inv/0xff),
	}
}

// imageSampler reads alpha-premultiplied color out of an arbitrary image.
func imageSampler(img image.Image) func(int, int) (rgb, uint8, bool) {
	bounds := img.Bounds()
	return func(x, y int) (rgb, uint8, bool) {
		x += bounds.Min.X
		y += bounds.Min.Y
		if !image.Pt(x, y).In(bounds) {
			return rgb{}, 0, false
		}
		r, g, b, a := img.At(x, y).RGBA()
		return rgb{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}, uint8(a >> 8), true
	}
}

// nrgbaSampler reads straight-alpha pixels and premultiplies them so
// blendAt can treat both paths the same.
func nrgbaSampler(img *image.NRGBA) func(int, int) (rgb, uint8, bool) {
	return func(x, y int) (rgb, uint8, bool) {
		if !image.Pt(x, y).In(img.Rect) {
			return rgb{}, 0, false
		}
		i := img.PixOffset(x+img.Rect.Min.X, y+img.Rect.Min.Y)
		r, g, b, a := uint32(img.Pix[i]), uint32(img.Pix[i+1]), uint32(img.Pix[i+2]), uint32(img.Pix[i+3])
		return rgb{
			r: uint8(r * a / 0xff),
			g: uint8(g * a / 0xff),
			b: uint8(b * a / 0xff),
		}, uint8(a), true
	}
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

func parseHex(s string) rgb {
	var c rgb
	if len(s) == 7 && s[0] == '#' {
		fmt.Sscanf(s[1:], "%02x%02x%02x", &c.r, &c.g, &c.b)
	}
	return c
}
