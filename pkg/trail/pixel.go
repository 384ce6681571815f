package trail

import(
	"fmt"
	"image"
	"image/color"

	"github.com/abworrall/starclean/pkg/emath"
)

// A Pixel is everything the robust stack looked at for one output
// location. It is only built on demand, for debugging.
type Pixel struct {
	Pos        image.Point
	Inputs   []color.NRGBA
	Excluded []string     // per input; "" if the sample was used
	Output     color.NRGBA
	NumUsed    int
}

// InspectPixel repeats the RobustStack work for one pixel. The frames
// are assumed valid (same size, (x,y) inside them).
func InspectPixel(frames []Frame, floor int, x, y int) Pixel {
	p := Pixel{
		Pos:      image.Point{x, y},
		Inputs:   make([]color.NRGBA, len(frames)),
		Excluded: make([]string, len(frames)),
		Output:   color.NRGBA{A: 0xFF},
	}

	var samples [3][]float64
	for i, f := range frames {
		r, g, b, a := f.RGBA8(x, y)
		p.Inputs[i] = color.NRGBA{r, g, b, a}
		p.Excluded[i] = exclusionReason(r, g, b, a, floor)
		if p.Excluded[i] == "" {
			samples[0] = append(samples[0], float64(r))
			samples[1] = append(samples[1], float64(g))
			samples[2] = append(samples[2], float64(b))
		}
	}

	p.NumUsed = len(samples[0])
	if p.NumUsed > 0 {
		p.Output.R = emath.Clamp8(emath.Median(samples[0]))
		p.Output.G = emath.Clamp8(emath.Median(samples[1]))
		p.Output.B = emath.Clamp8(emath.Median(samples[2]))
	}

	return p
}

func (p Pixel)String() string {
	str := fmt.Sprintf("----- Pixel @(%d,%d)-----\n", p.Pos.X, p.Pos.Y)

	for i:=0; i<len(p.Inputs); i++ {
		in := p.Inputs[i]
		note := "used"
		if p.Excluded[i] != "" {
			note = "excluded: " + p.Excluded[i]
		}
		str += fmt.Sprintf("-- layer %d         : [%4d, %4d, %4d] a=%3d  %s\n", i, in.R, in.G, in.B, in.A, note)
	}

	str += fmt.Sprintf("Output(RGB32)      : [%4d, %4d, %4d] (%d of %d used)\n",
		p.Output.R, p.Output.G, p.Output.B, p.NumUsed, len(p.Inputs))

	return str
}
