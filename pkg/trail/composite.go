package trail

import(
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/starclean/pkg/emath"
)

// A Composite is the output of stacking. Alongside the 8-bit image, it
// keeps the unrounded result and how many frames fed each pixel.
type Composite struct {
	Frame                       // 8-bit, opaque
	HDR       CompositeHDR      // Unrounded channel values, scaled to [0.0, 1.0]
	Coverage  emath.FloatGrid   // Number of samples that were not excluded, per pixel
	NumFrames int
}

// NonBlackCount counts output pixels with any non-zero channel.
func (c Composite)NonBlackCount() int {
	n := 0
	for y:=0; y<c.Dy(); y++ {
		for x:=0; x<c.Dx(); x++ {
			if r, g, b, _ := c.RGBA8(x, y); r != 0 || g != 0 || b != 0 {
				n++
			}
		}
	}
	return n
}

func validateStack(op string, frames []Frame) error {
	if len(frames) == 0 {
		return fmt.Errorf("%s: no frames: %w", op, ErrInvalidInput)
	}
	if err := checkArea(op, frames[0]); err != nil {
		return err
	}
	return checkSameSize(op, frames)
}

// Why a sample gets left out of the aggregate. The empty string means it was used.
const(
	excludedByAlpha      = "alpha"
	excludedByBackground = "background"
)

// exclusionReason: a transparent pixel is trail; a pixel with every
// channel below the floor is empty sky.
func exclusionReason(r, g, b, a uint8, floor int) string {
	if a == 0 {
		return excludedByAlpha
	}
	if int(r) < floor && int(g) < floor && int(b) < floor {
		return excludedByBackground
	}
	return ""
}

// MaxStack takes the brightest value per channel across the stack. It
// keeps the trail as visible as possible, which makes it the reference
// image for scoring, not a way to remove anything.
func MaxStack(frames []Frame) (Frame, error) {
	if err := validateStack("max stack", frames); err != nil {
		return Frame{}, err
	}

	out := NewBlankFrame("max-stack", frames[0].Dx(), frames[0].Dy())
	for _, f := range frames {
		for y:=0; y<out.Dy(); y++ {
			for x:=0; x<out.Dx(); x++ {
				r, g, b, _ := f.RGBA8(x, y)
				r0, g0, b0, _ := out.RGBA8(x, y)
				if r > r0 { r0 = r }
				if g > g0 { g0 = g }
				if b > b0 { b0 = b }
				out.setRGBA8(x, y, r0, g0, b0, 0xFF)
			}
		}
	}

	return out, nil
}

func maxStackComposite(frames []Frame, floor int) (Composite, error) {
	f, err := MaxStack(frames)
	if err != nil {
		return Composite{}, err
	}

	c := Composite{
		Frame:     f,
		HDR:       NewCompositeHDR(f.Dx(), f.Dy()),
		Coverage:  emath.NewFloatGrid(f.Dx(), f.Dy()),
		NumFrames: len(frames),
	}
	for y:=0; y<f.Dy(); y++ {
		for x:=0; x<f.Dx(); x++ {
			r, g, b, _ := f.RGBA8(x, y)
			c.HDR.set(x, y, float64(r)/255.0, float64(g)/255.0, float64(b)/255.0)
			c.Coverage.Set(x, y, float64(len(frames)))
		}
	}
	return c, nil
}

// RobustStack takes the per-channel median across the stack, leaving
// out any sample that is transparent (the burned-in trail mask) or
// has all channels below `floor` (background sky). A pixel that every
// frame excluded comes out black.
func RobustStack(frames []Frame, floor int) (Composite, error) {
	return aggregateStack("robust stack", frames, floor, emath.Median)
}

// MeanStack has the same exclusion rules as RobustStack, but averages.
func MeanStack(frames []Frame, floor int) (Composite, error) {
	return aggregateStack("mean stack", frames, floor, func(vals []float64) float64 {
		return stat.Mean(vals, nil)
	})
}

func aggregateStack(op string, frames []Frame, floor int, reduce func([]float64) float64) (Composite, error) {
	if err := validateStack(op, frames); err != nil {
		return Composite{}, err
	}

	w, h := frames[0].Dx(), frames[0].Dy()
	c := Composite{
		Frame:     NewBlankFrame(op, w, h),
		HDR:       NewCompositeHDR(w, h),
		Coverage:  emath.NewFloatGrid(w, h),
		NumFrames: len(frames),
	}

	// Per-channel sample buffers, reused for every pixel
	samples := [3][]float64{}
	for ch:=0; ch<3; ch++ {
		samples[ch] = make([]float64, 0, len(frames))
	}

	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			for ch:=0; ch<3; ch++ {
				samples[ch] = samples[ch][:0]
			}

			for _, f := range frames {
				r, g, b, a := f.RGBA8(x, y)
				if exclusionReason(r, g, b, a, floor) != "" {
					continue
				}
				samples[0] = append(samples[0], float64(r))
				samples[1] = append(samples[1], float64(g))
				samples[2] = append(samples[2], float64(b))
			}

			n := len(samples[0])
			c.Coverage.Set(x, y, float64(n))
			if n == 0 {
				continue // Blank frame is already black; HDR already zero
			}

			var v [3]float64
			for ch:=0; ch<3; ch++ {
				v[ch] = reduce(samples[ch])
			}
			c.Frame.setRGBA8(x, y, emath.Clamp8(v[0]), emath.Clamp8(v[1]), emath.Clamp8(v[2]), 0xFF)
			c.HDR.set(x, y, v[0]/255.0, v[1]/255.0, v[2]/255.0)
		}
	}

	return c, nil
}
