package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const textPadding = 4

// TextRenderer draws stat overlays straight into an image.
type TextRenderer struct {
	Face       font.Face
	Color      color.Color
	Background color.Color
}

func NewTextRenderer(fontBytes []byte, fontSize float64) (*TextRenderer, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	return &TextRenderer{
		Face:       face,
		Color:      color.White,
		Background: color.RGBA{0, 0, 0, 160},
	}, nil
}

// NewDefaultTextRenderer uses the embedded Go Mono font.
func NewDefaultTextRenderer(fontSize float64) (*TextRenderer, error) {
	return NewTextRenderer(gomono.TTF, fontSize)
}

func (tr *TextRenderer) lineHeight() int {
	return tr.Face.Metrics().Height.Ceil()
}

// Measure returns the pixel size of lines including padding.
func (tr *TextRenderer) Measure(lines []string) image.Point {
	if len(lines) == 0 {
		return image.Point{}
	}
	var w fixed.Int26_6
	for _, l := range lines {
		w = max(w, font.MeasureString(tr.Face, l))
	}
	return image.Pt(w.Ceil()+2*textPadding, len(lines)*tr.lineHeight()+2*textPadding)
}

// DrawText draws lines with their top-left corner at at, over a translucent
// box. It returns the rectangle that was covered.
func (tr *TextRenderer) DrawText(dst draw.Image, at image.Point, lines []string) image.Rectangle {
	size := tr.Measure(lines)
	if size == (image.Point{}) {
		return image.Rectangle{}
	}
	box := image.Rectangle{Min: at, Max: at.Add(size)}.Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(tr.Background), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(tr.Color),
		Face: tr.Face,
	}
	ascent := tr.Face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		d.Dot = fixed.P(at.X+textPadding, at.Y+textPadding+ascent+i*tr.lineHeight())
		d.DrawString(l)
	}
	return box
}

func (tr *TextRenderer) Close() error {
	return tr.Face.Close()
}
