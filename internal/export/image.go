package export

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSurface rasterizes field frames into an RGBA image.
type ImageSurface struct {
	Img        *image.RGBA
	Background color.RGBA
	Ink        color.RGBA
	face       font.Face
}

func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{
		Background: color.RGBA{0, 0, 0, 255},
		Ink:        color.RGBA{255, 255, 255, 255},
		face:       basicfont.Face7x13,
	}
	s.Resize(float64(w), float64(h))
	return s
}

func (s *ImageSurface) Size() (float64, float64) {
	b := s.Img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *ImageSurface) Resize(w, h float64) {
	s.Img = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	s.Clear()
}

func (s *ImageSurface) Clear() {
	draw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)
}

func (s *ImageSurface) blend(x, y int, alpha float64) {
	if !(image.Point{x, y}).In(s.Img.Bounds()) {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	if alpha <= 0 {
		return
	}
	dst := s.Img.RGBAAt(x, y)
	mix := func(d, i uint8) uint8 {
		return uint8(float64(d)*(1-alpha) + float64(i)*alpha + 0.5)
	}
	s.Img.SetRGBA(x, y, color.RGBA{
		R: mix(dst.R, s.Ink.R),
		G: mix(dst.G, s.Ink.G),
		B: mix(dst.B, s.Ink.B),
		A: 255,
	})
}

func (s *ImageSurface) Line(x0, y0, x1, y1, alpha float64) {
	ax, ay := int(x0+0.5), int(y0+0.5)
	bx, by := int(x1+0.5), int(y1+0.5)

	dx, dy := absInt(bx-ax), absInt(by-ay)
	sx, sy := -1, -1
	if ax < bx {
		sx = 1
	}
	if ay < by {
		sy = 1
	}
	err := dx - dy
	for {
		s.blend(ax, ay, alpha)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

func (s *ImageSurface) Circle(x, y, r, alpha float64) {
	minX, maxX := int(x-r), int(x+r+1)
	minY, maxY := int(y-r), int(y+r+1)
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			dx, dy := float64(px)+0.5-x, float64(py)+0.5-y
			if dx*dx+dy*dy <= r*r {
				s.blend(px, py, alpha)
			}
		}
	}
}

// Text draws s centred on (x, y).
func (s *ImageSurface) Text(x, y float64, text string, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	ink := color.NRGBA{R: s.Ink.R, G: s.Ink.G, B: s.Ink.B, A: uint8(alpha * 255)}
	d := &font.Drawer{
		Dst:  s.Img,
		Src:  image.NewUniform(ink),
		Face: s.face,
	}
	width := d.MeasureString(text)
	ascent := s.face.Metrics().Ascent
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(x)) - width/2,
		Y: fixed.I(int(y)) + ascent/2,
	}
	d.DrawString(text)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
