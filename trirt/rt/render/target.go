package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Target receives finished pixels. SetPixel is called exactly once per pixel
// per render, from any goroutine, never twice for the same pixel.
type Target interface {
	Width() int
	Height() int
	SetPixel(x, y int, c mgl32.Vec3)
}

// ImageTarget writes clamped 8-bit colors into an RGBA image.
type ImageTarget struct {
	Img *image.RGBA
}

func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{Img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (t *ImageTarget) Width() int  { return t.Img.Bounds().Dx() }
func (t *ImageTarget) Height() int { return t.Img.Bounds().Dy() }

func (t *ImageTarget) SetPixel(x, y int, c mgl32.Vec3) {
	b := t.Img.Bounds()
	t.Img.SetRGBA(b.Min.X+x, b.Min.Y+y, ToRGBA(c))
}

// ToRGBA clamps a linear color to [0,1] and quantizes it.
func ToRGBA(c mgl32.Vec3) color.RGBA {
	q := func(f float32) uint8 {
		return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: q(c[0]), G: q(c[1]), B: q(c[2]), A: 255}
}

// FloatTarget keeps unclamped colors.
type FloatTarget struct {
	W, H int
	Pix  []mgl32.Vec3
}

func NewFloatTarget(width, height int) *FloatTarget {
	return &FloatTarget{W: width, H: height, Pix: make([]mgl32.Vec3, width*height)}
}

func (t *FloatTarget) Width() int  { return t.W }
func (t *FloatTarget) Height() int { return t.H }

func (t *FloatTarget) SetPixel(x, y int, c mgl32.Vec3) {
	t.Pix[y*t.W+x] = c
}

func (t *FloatTarget) At(x, y int) mgl32.Vec3 {
	return t.Pix[y*t.W+x]
}

// RGBA converts the stored colors into an 8-bit image.
func (t *FloatTarget) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.W, t.H))
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			img.SetRGBA(x, y, ToRGBA(t.At(x, y)))
		}
	}
	return img
}
