package trail

import(
	"fmt"

	"github.com/abworrall/starclean/pkg/emath"
)

// ExtractMask flags every pixel whose HSV color lies inside `band`
// (all three channels, inclusive). Alpha is ignored.
func ExtractMask(f Frame, band ColorBand) (emath.Mask, error) {
	if err := checkArea("extract mask", f); err != nil {
		return emath.Mask{}, err
	}

	m := emath.NewMask(f.Dx(), f.Dy())
	for y:=0; y<f.Dy(); y++ {
		for x:=0; x<f.Dx(); x++ {
			r, g, b, _ := f.RGBA8(x, y)
			if band.ContainsRGB8(r, g, b) {
				m.Set(x, y, true)
			}
		}
	}

	return m, nil
}

// ExtractMaskUnion flags pixels inside any of the bands. A trail whose
// hue straddles 0/360 needs two bands, one either side.
func ExtractMaskUnion(f Frame, bands ...ColorBand) (emath.Mask, error) {
	if len(bands) == 0 {
		return emath.Mask{}, fmt.Errorf("extract mask: no bands: %w", ErrInvalidInput)
	}

	out, err := ExtractMask(f, bands[0])
	if err != nil {
		return out, err
	}
	for _, band := range bands[1:] {
		m, err := ExtractMask(f, band)
		if err != nil {
			return out, err
		}
		if out, err = out.Or(m); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Dilate grows the mask by a square of side 2*radius+1, to soak up
// the anti-aliased fringe around the trail. radius 0 is a copy.
func Dilate(m emath.Mask, radius int) (emath.Mask, error) {
	if radius < 0 {
		return emath.Mask{}, fmt.Errorf("dilate: radius %d < 0: %w", radius, ErrInvalidInput)
	}
	return m.Dilate(radius), nil
}

// TrailMask is ExtractMask followed by Dilate.
func TrailMask(f Frame, band ColorBand, radius int) (emath.Mask, error) {
	m, err := ExtractMask(f, band)
	if err != nil {
		return m, err
	}
	return Dilate(m, radius)
}

func checkMaskSize(op string, f Frame, m emath.Mask) error {
	if f.Dx() != m.Dx() || f.Dy() != m.Dy() {
		return fmt.Errorf("%s: frame '%s' is %dx%d but mask is %dx%d: %w", op,
			f.Filename(), f.Dx(), f.Dy(), m.Dx(), m.Dy(), ErrDimensionMismatch)
	}
	return nil
}

// BurnMask returns a copy of `f` that is transparent (alpha 0) where
// the mask is set, and opaque everywhere else. Color is kept, so the
// compositor can still inspect it.
func BurnMask(f Frame, m emath.Mask) (Frame, error) {
	if err := checkMaskSize("burn mask", f, m); err != nil {
		return Frame{}, err
	}

	out := f.Clone(f.LoadFilename)
	for y:=0; y<out.Dy(); y++ {
		for x:=0; x<out.Dx(); x++ {
			r, g, b, _ := out.RGBA8(x, y)
			a := uint8(0xFF)
			if m.Get(x, y) { a = 0 }
			out.setRGBA8(x, y, r, g, b, a)
		}
	}
	return out, nil
}

// BlackOut is the older removal method: paint the masked pixels black
// on a copy of the image.
func BlackOut(f Frame, m emath.Mask) (Frame, error) {
	if err := checkMaskSize("black out", f, m); err != nil {
		return Frame{}, err
	}

	out := f.Clone(f.LoadFilename)
	for y:=0; y<out.Dy(); y++ {
		for x:=0; x<out.Dx(); x++ {
			if m.Get(x, y) {
				out.setRGBA8(x, y, 0, 0, 0, 0xFF)
			}
		}
	}
	return out, nil
}
