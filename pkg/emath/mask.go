package emath

import(
	"fmt"
	"image"
	"image/color"
)

// A Mask is a grid of booleans with the same layout as a FloatGrid;
// true means the pixel is flagged.
type Mask struct {
	stride int
	values []bool
}

func NewMask(w, h int) Mask {
	return Mask{
		stride: w,
		values: make([]bool, w*h),
	}
}

func (m *Mask)NewFromThis() Mask      { return NewMask(m.Dx(), m.Dy()) }
func (m *Mask)Set(x, y int, v bool)   { m.values[m.stride*y + x] = v }
func (m *Mask)Get(x, y int) bool      { return m.values[m.stride*y + x] }
func (m *Mask)Dx() int                { return m.stride }
func (m *Mask)Dy() int {
	if m.stride == 0 { return 0 }
	return len(m.values) / m.stride
}

func (m *Mask)Copy() Mask {
	m2 := Mask{stride: m.stride, values: make([]bool, len(m.values))}
	copy(m2.values, m.values)
	return m2
}

func (m Mask)String() string {
	return fmt.Sprintf("mask[%dx%d, %d set]", m.Dx(), m.Dy(), m.Count())
}

// Count returns how many pixels are flagged.
func (m *Mask)Count() int {
	n := 0
	for _, v := range m.values {
		if v { n++ }
	}
	return n
}

func (m *Mask)SameSize(m2 Mask) bool {
	return m.Dx() == m2.Dx() && m.Dy() == m2.Dy()
}

// And returns the intersection; both masks must be the same size.
func (m *Mask)And(m2 Mask) (Mask, error) {
	if !m.SameSize(m2) {
		return Mask{}, fmt.Errorf("mask AND: %dx%d vs %dx%d", m.Dx(), m.Dy(), m2.Dx(), m2.Dy())
	}
	out := m.NewFromThis()
	for i := range m.values {
		out.values[i] = m.values[i] && m2.values[i]
	}
	return out, nil
}

// Or returns the union; both masks must be the same size.
func (m *Mask)Or(m2 Mask) (Mask, error) {
	if !m.SameSize(m2) {
		return Mask{}, fmt.Errorf("mask OR: %dx%d vs %dx%d", m.Dx(), m.Dy(), m2.Dx(), m2.Dy())
	}
	out := m.NewFromThis()
	for i := range m.values {
		out.values[i] = m.values[i] || m2.values[i]
	}
	return out, nil
}

func (m *Mask)Equal(m2 Mask) bool {
	if !m.SameSize(m2) {
		return false
	}
	for i := range m.values {
		if m.values[i] != m2.values[i] {
			return false
		}
	}
	return true
}

// Contains reports whether every pixel flagged in m2 is also flagged in m.
func (m *Mask)Contains(m2 Mask) bool {
	if !m.SameSize(m2) {
		return false
	}
	for i := range m.values {
		if m2.values[i] && !m.values[i] {
			return false
		}
	}
	return true
}

// ToImg writes the mask as white-on-black.
func (m *Mask)ToImg(title, filename string) error {
	img := image.NewGray(image.Rectangle{Max:image.Point{m.Dx(), m.Dy()}})
	for y:=0; y<m.Dy(); y++ {
		for x:=0; x<m.Dx(); x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{0xFF})
			}
		}
	}
	return annotateAndSave(img, title, filename)
}

// Dilate expands the flagged region by a square structuring element
// of side 2*radius+1. Out-of-bounds neighbours never contribute.
// A radius <= 0 returns a copy. Done as two 1D passes (X into T, then
// Y out of T), which is equivalent for a square element.
func (m *Mask)Dilate(radius int) Mask {
	if radius <= 0 {
		return m.Copy()
	}

	width := m.Dx()
	height := m.Dy()
	T := m.NewFromThis()
	out := m.NewFromThis()

	//--- X pass, build up in T
	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			lo, hi := clampSpan(x, radius, width)
			for xx:=lo; xx<=hi; xx++ {
				if m.Get(xx, y) {
					T.Set(x, y, true)
					break
				}
			}
		}
	}

	//--- Y pass, read from T and generate output
	for x:=0; x<width; x++ {
		for y:=0; y<height; y++ {
			lo, hi := clampSpan(y, radius, height)
			for yy:=lo; yy<=hi; yy++ {
				if T.Get(x, yy) {
					out.Set(x, y, true)
					break
				}
			}
		}
	}

	return out
}

func clampSpan(center, radius, n int) (int, int) {
	lo, hi := center-radius, center+radius
	if lo < 0    { lo = 0 }
	if hi > n-1  { hi = n-1 }
	return lo, hi
}
