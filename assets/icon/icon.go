package icon

import (
	"image"
	"image/color"
)

// Theme colors from the app
var (
	leafGreen = color.RGBA{R: 0x46, G: 0x9C, B: 0x28, A: 0xFF}
	darkGreen = color.RGBA{R: 0x2E, G: 0x6E, B: 0x1A, A: 0xFF}
	darkBG    = color.RGBA{R: 0x12, G: 0x14, B: 0x12, A: 0xFF}
	white     = color.RGBA{R: 0xE4, G: 0xE4, B: 0xE0, A: 0xFF}
)

// Generate returns 64x64 and 32x32 icon images for use with ebiten.SetWindowIcon.
func Generate() []image.Image {
	return []image.Image{
		generate(64),
		generate(32),
	}
}

func generate(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	fillRect(img, 0, 0, s, s, darkBG)

	// TV body: rounded rect taking most of the canvas
	fillRoundedRect(img, s*0.08, s*0.14, s*0.84, s*0.58, s*0.10, leafGreen)
	// Screen inset
	fillRoundedRect(img, s*0.14, s*0.20, s*0.72, s*0.46, s*0.06, darkBG)

	// Play triangle centered on the screen
	drawTriangle(img, s*0.40, s*0.30, s*0.40, s*0.56, s*0.64, s*0.43, white)

	// TV stand
	fillRect(img, s*0.44, s*0.72, s*0.12, s*0.08, darkGreen)
	fillRoundedRect(img, s*0.28, s*0.80, s*0.44, s*0.07, s*0.03, darkGreen)

	return img
}

func fillRect(img *image.RGBA, x, y, w, h float64, c color.RGBA) {
	for py := int(y); py < int(y+h); py++ {
		for px := int(x); px < int(x+w); px++ {
			if image.Pt(px, py).In(img.Rect) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func fillRoundedRect(img *image.RGBA, x, y, w, h, r float64, c color.RGBA) {
	for py := int(y); py < int(y+h); py++ {
		for px := int(x); px < int(x+w); px++ {
			if !image.Pt(px, py).In(img.Rect) {
				continue
			}
			fx, fy := float64(px), float64(py)
			// Corner test
			cx, cy := fx, fy
			if fx < x+r {
				cx = x + r
			} else if fx > x+w-r {
				cx = x + w - r
			}
			if fy < y+r {
				cy = y + r
			} else if fy > y+h-r {
				cy = y + h - r
			}
			dx, dy := fx-cx, fy-cy
			if dx*dx+dy*dy <= r*r || (cx == fx && cy == fy) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

// drawTriangle rasterizes a filled triangle with vertices (x1,y1) (x2,y2) (x3,y3).
func drawTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3 float64, c color.RGBA) {
	minX, maxX := min3(x1, x2, x3), max3(x1, x2, x3)
	minY, maxY := min3(y1, y2, y3), max3(y1, y2, y3)
	for py := int(minY); py <= int(maxY); py++ {
		for px := int(minX); px <= int(maxX); px++ {
			if !image.Pt(px, py).In(img.Rect) {
				continue
			}
			fx, fy := float64(px)+0.5, float64(py)+0.5
			d1 := sign(fx, fy, x1, y1, x2, y2)
			d2 := sign(fx, fy, x2, y2, x3, y3)
			d3 := sign(fx, fy, x3, y3, x1, y1)
			hasNeg := d1 < 0 || d2 < 0 || d3 < 0
			hasPos := d1 > 0 || d2 > 0 || d3 > 0
			if !(hasNeg && hasPos) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func sign(px, py, ax, ay, bx, by float64) float64 {
	return (px-bx)*(ay-by) - (ax-bx)*(py-by)
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
