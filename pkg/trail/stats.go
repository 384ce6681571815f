package trail

import(
	"fmt"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"

	"github.com/abworrall/starclean/pkg/ecolor"
	"github.com/abworrall/starclean/pkg/emath"
)

// CoverageSummary describes how many frames contributed to each pixel
// of a composite; lots of zeros means the floor or the mask is eating
// the image.
func CoverageSummary(c Composite) (string, error) {
	// The histogram can't take a min of zero, so every count is recorded +1
	h := hdrhistogram.New(1, int64(c.NumFrames)+2, 3)
	zeros := 0
	for _, v := range c.Coverage.Values() {
		if v == 0 {
			zeros++
		}
		if err := h.RecordValue(int64(v) + 1); err != nil {
			return "", fmt.Errorf("coverage %v is more than the %d frames: %w", v, c.NumFrames, ErrInvalidInput)
		}
	}

	return fmt.Sprintf("coverage over %d frames: min %d, median %d, p99 %d, max %d, mean %.2f; %d pixels had no samples",
		c.NumFrames, h.Min()-1, h.ValueAtQuantile(50)-1, h.ValueAtQuantile(99)-1, h.Max()-1, h.Mean()-1, zeros), nil
}

// HueHistogram buckets the hue (in whole degrees) of every flagged
// pixel. Useful when tuning a ColorBand to a new trail.
func HueHistogram(f Frame, m emath.Mask) (histogram.Histogram, error) {
	hist := histogram.Histogram{NumBuckets:36, ValMin:0, ValMax:360}
	if err := checkMaskSize("hue histogram", f, m); err != nil {
		return hist, err
	}

	for y:=0; y<f.Dy(); y++ {
		for x:=0; x<f.Dx(); x++ {
			if !m.Get(x, y) {
				continue
			}
			r, g, b, _ := f.RGBA8(x, y)
			hist.Add(histogram.ScalarVal(int(ecolor.NewHSV8(r, g, b).H)))
		}
	}

	return hist, nil
}
