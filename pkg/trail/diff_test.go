package trail

import(
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffGrid(t *testing.T) {
	reference := paint(solidFrame("trace.png", 3, 1, star), green, image.Point{0, 0}, image.Point{1, 0})
	candidate := paint(solidFrame("clean.png", 3, 1, star), green, image.Point{1, 0}, image.Point{2, 0})

	diff, err := DiffGrid(reference, candidate, greenBand())
	require.NoError(t, err)
	assert.Equal(t, []float64{diffRemoved, diffRemaining, diffUntouched}, diff.Values())

	_, err = DiffGrid(reference, solidFrame("x.png", 2, 1, star), greenBand())
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestWriteDiffs(t *testing.T) {
	reference := solidFrame("trace.png", 8, 8, green)
	candidates := []Frame{
		solidFrame("legacy.png", 8, 8, black),
		paint(reference, black, rect(0, 0, 4, 8)...),
	}
	candidates[1].LoadFilename = "half.png"

	a, err := Analyze(reference, candidates, greenBand())
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteDiffs(a, reference, candidates, dir))
	for _, f := range []string{"diff-legacy.png", "diff-half.png"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}
}
