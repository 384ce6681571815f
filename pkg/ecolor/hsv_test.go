package ecolor

import(
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHSV8(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    HSV
	}{
		{"black", 0, 0, 0, HSV{0, 0, 0}},
		{"white", 255, 255, 255, HSV{0, 0, 1}},
		{"red", 255, 0, 0, HSV{0, 1, 1}},
		{"green", 0, 255, 0, HSV{120, 1, 1}},
		{"blue", 0, 0, 255, HSV{240, 1, 1}},
		{"dim green", 0, 128, 0, HSV{120, 1, 128.0 / 255.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewHSV8(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.want.H, got.H, 1e-9)
			assert.InDelta(t, tt.want.S, got.S, 1e-9)
			assert.InDelta(t, tt.want.V, got.V, 1e-9)
		})
	}
}

func TestNewHSVMatchesNewHSV8(t *testing.T) {
	c := color.NRGBA{R: 40, G: 200, B: 90, A: 255}
	assert.Equal(t, NewHSV8(40, 200, 90), NewHSV(c))
}

func TestCVToHSV(t *testing.T) {
	got := CVToHSV(30, 255, 51)
	assert.InDelta(t, 60.0, got.H, 1e-9)
	assert.InDelta(t, 1.0, got.S, 1e-9)
	assert.InDelta(t, 0.2, got.V, 1e-9)
}

func TestQuantizeCV(t *testing.T) {
	q := NewHSV8(255, 254, 174).QuantizeCV()
	assert.Equal(t, 60.0, q.H)
	assert.InDelta(t, 81.0/255.0, q.S, 1e-12)
	assert.Equal(t, 1.0, q.V)

	q = HSV{H: 359.5, S: 0.3134, V: 0.5}.QuantizeCV()
	assert.Equal(t, 360.0, q.H)
	assert.Equal(t, 80.0/255.0, q.S)
	assert.Equal(t, 128.0/255.0, q.V)
}
