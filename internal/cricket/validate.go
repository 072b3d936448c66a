package cricket

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// distTolerance is how far a run distribution may drift from summing to 1
// after normalization before we treat it as a defect.
const distTolerance = 1e-9

// mustValidDist panics when a distribution is malformed. A bad distribution
// is a bug in the model or its params, not a runtime condition to absorb;
// a silently wrong match is worse than a crash.
func mustValidDist(d RunDistribution) {
	sum := 0.0
	for _, p := range d {
		if err := validateProb(p); err != nil {
			panic(fmt.Sprintf("cricket: run distribution entry out of range: %v", d))
		}
		sum += p
	}
	if math.Abs(sum-1) > distTolerance {
		panic(fmt.Sprintf("cricket: run distribution sums to %v, want 1: %v", sum, d))
	}
}
