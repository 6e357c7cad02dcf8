package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/san-kum/synapse/internal/viz"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// Grays is a 16-step grayscale palette; the field is monochrome.
var Grays = func() color.Palette {
	p := make(color.Palette, 16)
	for i := range p {
		v := uint8(i * 17)
		p[i] = color.Gray{Y: v}
	}
	return p
}()

// Paletted converts a raster frame for GIF encoding.
func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, Grays)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)
	return dst
}

// CanvasImage paints a braille canvas as blocks of 8x16 pixels per cell,
// shading each dot by the cell level.
func CanvasImage(c *viz.Canvas) *image.Paletted {
	const charW, charH = 8, 16
	const dotW, dotH = charW / 2, charH / 4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), Grays)
	c.Dots(func(x, y int, level float64) {
		shade := uint8(1 + level*14)
		for py := 0; py < dotH; py++ {
			for px := 0; px < dotW; px++ {
				img.SetColorIndex(x*dotW+px, y*dotH+py, shade)
			}
		}
	})
	return img
}

// EncodeGIF writes a looping animation; delay is in 100ths of a second.
func EncodeGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
