package ecolor

import(
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// An HSV color has hue in degrees [0, 360), and saturation and value
// as fractions [0.0, 1.0]. Achromatic colors (greys, black) get a hue
// of 0.
type HSV struct {
	H, S, V float64
}

func (c HSV)String() string {
	return fmt.Sprintf("hsv[%6.2fdeg, %5.3f, %5.3f]", c.H, c.S, c.V)
}

// NewHSV8 converts an 8-bit per channel RGB sample.
func NewHSV8(r, g, b uint8) HSV {
	col := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, v := col.Hsv()
	return HSV{h, s, v}
}

// NewHSV ignores alpha; a fully transparent pixel keeps whatever
// (premultiplied) color it reports.
func NewHSV(col color.Color) HSV {
	r, g, b, _ := col.RGBA()
	return NewHSV8(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// CVToHSV maps OpenCV's 8-bit HSV units (H in [0,180], S and V in
// [0,255]) into degrees and fractions.
func CVToHSV(h, s, v int) HSV {
	return HSV{
		H: float64(h) * 2.0,
		S: float64(s) / 255.0,
		V: float64(v) / 255.0,
	}
}

// QuantizeCV rounds to the nearest OpenCV 8-bit unit (H to 2 degrees,
// S to 1/255), and back. V from an 8-bit sample is already exact.
func (c HSV)QuantizeCV() HSV {
	return HSV{
		H: math.Round(c.H / 2.0) * 2.0,
		S: math.Round(c.S * 255.0) / 255.0,
		V: math.Round(c.V * 255.0) / 255.0,
	}
}
