package certificate

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const sealSize = 360

var (
	sealGold = color.NRGBA{R: 0xC9, G: 0xA2, B: 0x27, A: 0xFF}
	sealDark = color.NRGBA{R: 0x7A, G: 0x5C, B: 0x10, A: 0xFF}
)

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

// drawSeal renders the rosette stamped on every certificate. The output is a
// pure function of label and face.
func drawSeal(label string, face font.Face) ([]byte, error) {
	dc := gg.NewContext(sealSize, sealSize)
	c := float64(sealSize) / 2

	// scalloped rim
	const points = 24
	dc.SetColor(sealGold)
	for i := 0; i < points; i++ {
		a := 2 * math.Pi * float64(i) / points
		dc.DrawCircle(c+math.Cos(a)*(c-28), c+math.Sin(a)*(c-28), 26)
	}
	dc.Fill()
	dc.DrawCircle(c, c, c-30)
	dc.Fill()

	dc.SetColor(sealDark)
	dc.SetLineWidth(4)
	dc.DrawCircle(c, c, c-48)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawCircle(c, c, c-60)
	dc.Stroke()

	// five point star
	dc.SetColor(color.White)
	dc.DrawRegularPolygon(5, c, c-18, 46, -math.Pi/2)
	dc.Fill()
	dc.NewSubPath()
	for i := 0; i < 10; i++ {
		r := 52.0
		if i%2 == 1 {
			r = 22
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		dc.LineTo(c+math.Cos(a)*r, c-18+math.Sin(a)*r)
	}
	dc.ClosePath()
	dc.SetColor(sealDark)
	dc.Fill()

	if face != nil {
		dc.SetFontFace(face)
	}
	dc.SetColor(sealDark)
	dc.DrawStringAnchored(label, c, c+62, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode seal PNG: %w", err)
	}
	return buf.Bytes(), nil
}
