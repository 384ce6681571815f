package trail

import(
	"fmt"
	"strconv"
	"strings"

	"github.com/abworrall/starclean/pkg/ecolor"
)

// A ColorBand is an inclusive range in HSV space; pixels inside it are
// taken to be the artifact. Hue is in degrees [0,360], saturation and
// value are fractions [0,1].
//
// A band cannot wrap around hue 0/360. To match e.g. reds, use two
// bands with ExtractMaskUnion.
//
// A band built from OpenCV units has CVUnits set, and then pixels are
// rounded to those units before comparing, as OpenCV's inRange would.
// Without that, fringe colors like (255,254,174) (hue 59.3deg, which
// OpenCV rounds to H=30) fall just outside a band starting at H=30.
type ColorBand struct {
	HueMin, HueMax float64
	SatMin, SatMax float64
	ValMin, ValMax float64
	CVUnits        bool
}

func NewColorBand(hueMin, hueMax, satMin, satMax, valMin, valMax float64) (ColorBand, error) {
	b := ColorBand{HueMin:hueMin, HueMax:hueMax, SatMin:satMin, SatMax:satMax, ValMin:valMin, ValMax:valMax}
	return b, b.Validate()
}

// NewColorBandCV takes bounds in OpenCV 8-bit HSV units (H [0,180], S and V [0,255]).
func NewColorBandCV(lo, hi [3]int) (ColorBand, error) {
	l := ecolor.CVToHSV(lo[0], lo[1], lo[2])
	h := ecolor.CVToHSV(hi[0], hi[1], hi[2])
	b, err := NewColorBand(l.H, h.H, l.S, h.S, l.V, h.V)
	b.CVUnits = true
	return b, err
}

// ParseColorBandCV parses "h,s,v:h,s,v" in OpenCV units, e.g. "30,80,80:90,255,255".
func ParseColorBandCV(s string) (ColorBand, error) {
	halves := strings.Split(s, ":")
	if len(halves) != 2 {
		return ColorBand{}, fmt.Errorf("band '%s': want 'h,s,v:h,s,v': %w", s, ErrInvalidInput)
	}

	var triples [2][3]int
	for i, half := range halves {
		fields := strings.Split(half, ",")
		if len(fields) != 3 {
			return ColorBand{}, fmt.Errorf("band '%s': want three values in '%s': %w", s, half, ErrInvalidInput)
		}
		for j, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return ColorBand{}, fmt.Errorf("band '%s': %v: %w", s, err, ErrInvalidInput)
			}
			triples[i][j] = v
		}
	}

	return NewColorBandCV(triples[0], triples[1])
}

// Validate checks min <= max on every channel, and that bounds are in range.
func (b ColorBand)Validate() error {
	check := func(name string, min, max, limit float64) error {
		if min > max {
			return fmt.Errorf("band %s min %.3f > max %.3f: %w", name, min, max, ErrInvalidInput)
		}
		if min < 0.0 || max > limit {
			return fmt.Errorf("band %s [%.3f,%.3f] outside [0,%.0f]: %w", name, min, max, limit, ErrInvalidInput)
		}
		return nil
	}

	if err := check("hue", b.HueMin, b.HueMax, 360.0); err != nil {
		return err
	}
	if err := check("saturation", b.SatMin, b.SatMax, 1.0); err != nil {
		return err
	}
	return check("value", b.ValMin, b.ValMax, 1.0)
}

func (b ColorBand)Contains(c ecolor.HSV) bool {
	return c.H >= b.HueMin && c.H <= b.HueMax &&
		c.S >= b.SatMin && c.S <= b.SatMax &&
		c.V >= b.ValMin && c.V <= b.ValMax
}

func (b ColorBand)ContainsRGB8(r, g, bl uint8) bool {
	c := ecolor.NewHSV8(r, g, bl)
	if b.CVUnits {
		c = c.QuantizeCV()
	}
	return b.Contains(c)
}

func (b ColorBand)String() string {
	str := fmt.Sprintf("band[h %.1f-%.1fdeg, s %.3f-%.3f, v %.3f-%.3f]",
		b.HueMin, b.HueMax, b.SatMin, b.SatMax, b.ValMin, b.ValMax)
	if b.CVUnits {
		str += "(cv)"
	}
	return str
}
