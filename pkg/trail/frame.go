package trail

import(
	"fmt"
	"image"
	"path/filepath"
	"time"

	"golang.org/x/image/draw" // replace by "image/draw" at some point
)

// A Frame holds one photo from the capture run, as 8-bit NRGBA with
// its origin at (0,0). Frames are treated as immutable once built;
// every operation that changes pixels returns a new Frame.
type Frame struct {
	LoadFilename string
	CapturedAt   time.Time   // From EXIF, if the file had any

	*image.NRGBA
}

// NewFrame copies `img` into a fresh NRGBA buffer anchored at (0,0).
func NewFrame(name string, img image.Image) Frame {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rectangle{Max:image.Point{b.Dx(), b.Dy()}})
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return Frame{LoadFilename: name, NRGBA: dst}
}

// NewBlankFrame is fully opaque black.
func NewBlankFrame(name string, w, h int) Frame {
	img := image.NewNRGBA(image.Rectangle{Max:image.Point{w, h}})
	for i:=3; i<len(img.Pix); i+=4 {
		img.Pix[i] = 0xFF
	}
	return Frame{LoadFilename: name, NRGBA: img}
}

func (f Frame)String() string {
	str := fmt.Sprintf("%s: %dx%d", f.Filename(), f.Dx(), f.Dy())
	if !f.CapturedAt.IsZero() {
		str += fmt.Sprintf(", captured %s", f.CapturedAt.Format(time.RFC3339))
	}
	return str
}

func (f Frame)Filename() string { return filepath.Base(f.LoadFilename) }

func (f Frame)Dx() int {
	if f.NRGBA == nil { return 0 }
	return f.Rect.Dx()
}
func (f Frame)Dy() int {
	if f.NRGBA == nil { return 0 }
	return f.Rect.Dy()
}
func (f Frame)Area() int { return f.Dx() * f.Dy() }

func (f Frame)SameSize(f2 Frame) bool { return f.Dx() == f2.Dx() && f.Dy() == f2.Dy() }

// RGBA8 reads the raw (non-premultiplied) channels at (x,y), counted
// from the top left of the frame even if the image was a SubImage.
func (f Frame)RGBA8(x, y int) (r, g, b, a uint8) {
	i := f.PixOffset(f.Rect.Min.X+x, f.Rect.Min.Y+y)
	s := f.Pix[i:i+4:i+4]
	return s[0], s[1], s[2], s[3]
}

func (f Frame)setRGBA8(x, y int, r, g, b, a uint8) {
	i := f.PixOffset(f.Rect.Min.X+x, f.Rect.Min.Y+y)
	s := f.Pix[i:i+4:i+4]
	s[0], s[1], s[2], s[3] = r, g, b, a
}

// Clone makes a deep copy, under a new name, anchored at (0,0).
// Rows are copied byte for byte, so transparent pixels keep their color.
func (f Frame)Clone(name string) Frame {
	w, h := f.Dx(), f.Dy()
	img := image.NewNRGBA(image.Rectangle{Max:image.Point{w, h}})
	for y:=0; y<h; y++ {
		i := f.PixOffset(f.Rect.Min.X, f.Rect.Min.Y+y)
		copy(img.Pix[y*img.Stride:y*img.Stride+4*w], f.Pix[i:i+4*w])
	}
	return Frame{LoadFilename: name, CapturedAt: f.CapturedAt, NRGBA: img}
}

func checkArea(op string, f Frame) error {
	if f.Area() == 0 {
		return fmt.Errorf("%s: frame '%s' has zero area (%dx%d): %w", op, f.Filename(), f.Dx(), f.Dy(), ErrInvalidInput)
	}
	return nil
}

// checkSameSize fails on the first frame whose size differs from frames[0].
func checkSameSize(op string, frames []Frame) error {
	for i:=1; i<len(frames); i++ {
		if !frames[i].SameSize(frames[0]) {
			return fmt.Errorf("%s: '%s' is %dx%d, but '%s' is %dx%d: %w", op,
				frames[i].Filename(), frames[i].Dx(), frames[i].Dy(),
				frames[0].Filename(), frames[0].Dx(), frames[0].Dy(), ErrDimensionMismatch)
		}
	}
	return nil
}
