package trail

import(
	"image"
	"image/color"
)

var (
	black = color.NRGBA{0, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	star  = color.NRGBA{200, 200, 200, 255}
)

// solidFrame is a w x h frame filled with one color.
func solidFrame(name string, w, h int, c color.NRGBA) Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return Frame{LoadFilename: name, NRGBA: img}
}

// paint sets the given pixels on a copy of f.
func paint(f Frame, c color.NRGBA, pts ...image.Point) Frame {
	out := f.Clone(f.LoadFilename)
	for _, p := range pts {
		out.SetNRGBA(p.X, p.Y, c)
	}
	return out
}

func rect(x0, y0, x1, y1 int) []image.Point {
	pts := []image.Point{}
	for y:=y0; y<y1; y++ {
		for x:=x0; x<x1; x++ {
			pts = append(pts, image.Point{x, y})
		}
	}
	return pts
}

func greenBand() ColorBand {
	b, err := NewColorBandCV([3]int{30, 80, 80}, [3]int{90, 255, 255})
	if err != nil {
		panic(err)
	}
	return b
}
