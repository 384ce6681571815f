package trail

import(
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abworrall/starclean/pkg/emath"
)

// Values in the grid that DiffGrid builds
const(
	diffUntouched = 0.0
	diffRemoved   = 0.5
	diffRemaining = 1.0
)

// DiffGrid maps where the reference's trail went in a candidate:
// pixels still flagged are 1.0, pixels that were cleaned up are 0.5,
// and everything that was never trail is 0.0.
func DiffGrid(reference, candidate Frame, band ColorBand) (emath.FloatGrid, error) {
	if err := checkSameSize("diff", []Frame{reference, candidate}); err != nil {
		return emath.FloatGrid{}, err
	}
	orig, err := ExtractMask(reference, band)
	if err != nil {
		return emath.FloatGrid{}, err
	}
	m, err := ExtractMask(candidate, band)
	if err != nil {
		return emath.FloatGrid{}, err
	}

	diff := emath.NewFloatGrid(orig.Dx(), orig.Dy())
	for y:=0; y<diff.Dy(); y++ {
		for x:=0; x<diff.Dx(); x++ {
			switch {
			case !orig.Get(x, y): diff.Set(x, y, diffUntouched)
			case m.Get(x, y):     diff.Set(x, y, diffRemaining)
			default:              diff.Set(x, y, diffRemoved)
			}
		}
	}
	return diff, nil
}

// WriteDiffs saves one diff image per report, into dir, as
// diff-<candidate>.png; white is trail left behind.
func WriteDiffs(a Analysis, reference Frame, candidates []Frame, dir string) error {
	for i, c := range candidates {
		diff, err := DiffGrid(reference, c, a.Band)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(c.Filename(), filepath.Ext(c.Filename()))
		title := ""
		if i < len(a.Reports) {
			title = fmt.Sprintf("%s: %.2f%% removed", base, a.Reports[i].RemovalPercentage)
		}
		if err := diff.ToImg(title, filepath.Join(dir, "diff-" + base + ".png")); err != nil {
			return err
		}
	}
	return nil
}
