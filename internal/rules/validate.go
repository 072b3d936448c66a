package rules

import (
	"fmt"
	"strings"
)

// ValidateRaw checks the semantic constraints of a merged rules document.
// Resolution also runs MatchConfig.Validate afterwards; this catches the
// file-level mistakes with file-level wording.
func ValidateRaw(raw RawRules) error {
	var errs []string

	m := raw.Match
	if m.BallsPerOver != nil && *m.BallsPerOver <= 0 {
		errs = append(errs, "match.balls_per_over must be >= 1")
	}
	if m.BallsPerInnings != nil && *m.BallsPerInnings <= 0 {
		errs = append(errs, "match.balls_per_innings must be >= 1")
	}
	if m.TeamSize != nil && *m.TeamSize < 2 {
		errs = append(errs, "match.team_size must be >= 2")
	}
	if m.RetirementThreshold != nil && *m.RetirementThreshold < 0 {
		errs = append(errs, "match.retirement_threshold must be >= 0 (0 disables)")
	}
	if m.PenaltyProb != nil && (*m.PenaltyProb < 0 || *m.PenaltyProb >= 1) {
		errs = append(errs, "match.penalty_prob must be in [0,1)")
	}
	if m.MaxBowlers != nil && *m.MaxBowlers < 1 {
		errs = append(errs, "match.max_bowlers must be >= 1")
	}

	if mc := raw.Model; mc != nil {
		checkProb := func(name string, v *float64) {
			if v != nil && (*v < 0 || *v > 1) {
				errs = append(errs, fmt.Sprintf("model.%s must be in [0,1]", name))
			}
		}
		checkProb("neutral_bat_skill", mc.NeutralBatSkill)
		checkProb("default_wpb", mc.DefaultWPB)
		checkProb("wicket_base", mc.WicketBase)
		checkProb("wicket_floor", mc.WicketFloor)
		checkProb("wicket_ceil", mc.WicketCeil)
		checkProb("four_floor", mc.FourFloor)
		checkProb("six_floor", mc.SixFloor)
		checkProb("matchup_floor", mc.MatchupFloor)
		checkProb("matchup_ceil", mc.MatchupCeil)
		if mc.WicketFloor != nil && mc.WicketCeil != nil && *mc.WicketFloor > *mc.WicketCeil {
			errs = append(errs, "model.wicket_floor must not exceed model.wicket_ceil")
		}
		if mc.BaseSplit != nil {
			for i, share := range mc.BaseSplit {
				if share < 0 {
					errs = append(errs, fmt.Sprintf("model.base_split[%d] must be >= 0", i))
				}
			}
		}
		if mc.PressureCap != nil && *mc.PressureCap < 1 {
			errs = append(errs, "model.pressure_cap must be >= 1")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("rules validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
