package trail

import(
	"fmt"
	"math"
	"sort"
	"strings"
)

// Two candidates whose removal percentages differ by less than this
// are reported as equally good.
const TieTolerance = 0.01

// A RemovalReport scores one candidate image against the reference.
type RemovalReport struct {
	Name              string
	OriginalCount     int     // trail pixels in the reference
	RemainingCount    int     // of those, how many are still trail-colored in the candidate
	RemovalPercentage float64
	Rank              int     // 1 is best; tied candidates share a rank
}

func (r RemovalReport)String() string {
	return fmt.Sprintf("#%d %s: %d of %d trail pixels remain, %.2f%% removed",
		r.Rank, r.Name, r.RemainingCount, r.OriginalCount, r.RemovalPercentage)
}

// An Analysis holds one report per candidate, in the order given.
type Analysis struct {
	Reference     string
	Band          ColorBand
	OriginalCount int
	Reports     []RemovalReport
}

// Analyze measures how much of the trail in `reference` is gone from
// each candidate. The trail is whatever `band` flags in the reference;
// a candidate pixel counts as remaining if it is flagged there too.
// Every image must be the same size. A reference with no flagged
// pixels gives ErrNoArtifactDetected, since there is nothing to score.
func Analyze(reference Frame, candidates []Frame, band ColorBand) (Analysis, error) {
	a := Analysis{Reference: reference.Filename(), Band: band}

	if err := band.Validate(); err != nil {
		return a, fmt.Errorf("analyze: %w", err)
	}
	if len(candidates) == 0 {
		return a, fmt.Errorf("analyze: no candidates: %w", ErrInvalidInput)
	}
	if err := checkArea("analyze", reference); err != nil {
		return a, err
	}
	if err := checkSameSize("analyze", append([]Frame{reference}, candidates...)); err != nil {
		return a, err
	}

	orig, err := ExtractMask(reference, band)
	if err != nil {
		return a, err
	}
	a.OriginalCount = orig.Count()
	if a.OriginalCount == 0 {
		return a, fmt.Errorf("analyze: reference '%s' has no pixels in %s: %w",
			reference.Filename(), band, ErrNoArtifactDetected)
	}

	for _, c := range candidates {
		m, err := ExtractMask(c, band)
		if err != nil {
			return a, err
		}
		remaining, err := orig.And(m)
		if err != nil {
			return a, fmt.Errorf("analyze '%s': %v: %w", c.Filename(), err, ErrDimensionMismatch)
		}

		r := RemovalReport{
			Name:           c.Filename(),
			OriginalCount:  a.OriginalCount,
			RemainingCount: remaining.Count(),
		}
		r.RemovalPercentage = (1.0 - float64(r.RemainingCount) / float64(r.OriginalCount)) * 100.0
		a.Reports = append(a.Reports, r)
	}

	a.assignRanks()
	return a, nil
}

// assignRanks walks the candidates best first; a candidate within
// TieTolerance of the one before it shares its rank.
func (a *Analysis)assignRanks() {
	order := a.rankOrder()
	for i, idx := range order {
		if i > 0 {
			prev := a.Reports[order[i-1]]
			if math.Abs(prev.RemovalPercentage - a.Reports[idx].RemovalPercentage) < TieTolerance {
				a.Reports[idx].Rank = prev.Rank
				continue
			}
		}
		a.Reports[idx].Rank = i + 1
	}
}

func (a Analysis)rankOrder() []int {
	order := make([]int, len(a.Reports))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return a.Reports[order[i]].RemovalPercentage > a.Reports[order[j]].RemovalPercentage
	})
	return order
}

// Ranked returns the reports best first; ties keep their input order.
func (a Analysis)Ranked() []RemovalReport {
	ret := []RemovalReport{}
	for _, idx := range a.rankOrder() {
		ret = append(ret, a.Reports[idx])
	}
	return ret
}

// Conclusion is a one line verdict.
func (a Analysis)Conclusion() string {
	ranked := a.Ranked()
	switch {
	case len(ranked) == 0:
		return "No candidates were analyzed."
	case len(ranked) == 1:
		return fmt.Sprintf("'%s' removed %.2f%% of the trail.", ranked[0].Name, ranked[0].RemovalPercentage)
	case ranked[1].Rank == ranked[0].Rank:
		tied := []string{}
		for _, r := range ranked {
			if r.Rank == ranked[0].Rank {
				tied = append(tied, fmt.Sprintf("'%s'", r.Name))
			}
		}
		return fmt.Sprintf("%s were equally effective at removing the trail.", strings.Join(tied, ", "))
	default:
		return fmt.Sprintf("'%s' was the most effective at removing the trail.", ranked[0].Name)
	}
}

func (a Analysis)String() string {
	str := fmt.Sprintf("Trail removal, reference '%s' has %d trail pixels (%s)\n", a.Reference, a.OriginalCount, a.Band)
	for _, r := range a.Ranked() {
		str += fmt.Sprintf("  %s\n", r)
	}
	return str + a.Conclusion() + "\n"
}
