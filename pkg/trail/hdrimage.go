package trail

import(
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// CompositeHDR holds composite values before they were rounded to
// 8 bits. Implements hdr.Image, so it can be written out as RGBE.
type CompositeHDR struct {
	Rect image.Rectangle
	Pix  []hdrcolor.RGB
}

var _ hdr.Image = CompositeHDR{}

func NewCompositeHDR(w, h int) CompositeHDR {
	return CompositeHDR{
		Rect: image.Rectangle{Max:image.Point{w, h}},
		Pix:  make([]hdrcolor.RGB, w*h),
	}
}

// Implement image.Image
func (c CompositeHDR)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (c CompositeHDR)Bounds() image.Rectangle       { return c.Rect }
func (c CompositeHDR)At(x, y int) color.Color       { return c.HDRAt(x,y) }

// Implement hdr.Image
func (c CompositeHDR)HDRAt(x, y int) hdrcolor.Color { return c.Pix[y*c.Rect.Dx() + x] }
func (c CompositeHDR)Size() int                     { return c.Rect.Dx() * c.Rect.Dy() }

func (c CompositeHDR)set(x, y int, r, g, b float64) {
	c.Pix[y*c.Rect.Dx() + x] = hdrcolor.RGB{R: r, G: g, B: b}
}

// WriteHDR outputs a Radiance RGBE image. You can load this into photoshop or other HDR tools.
func WriteHDR(img hdr.Image, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("mkdir for '%s': %v", filename, err)
	}
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}
