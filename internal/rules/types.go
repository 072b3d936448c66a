package rules

// Raw rules document loaded from YAML. Scalar fields are pointers so a
// later layer only overrides what it actually sets.
type RawRules struct {
	Version string    `yaml:"version"`
	Match   MatchCfg  `yaml:"match"`
	Model   *ModelCfg `yaml:"model,omitempty"`
	Notes   string    `yaml:"notes,omitempty"`
}

// MatchCfg overrides the format preset.
type MatchCfg struct {
	BallsPerOver        *int     `yaml:"balls_per_over,omitempty"`
	BallsPerInnings     *int     `yaml:"balls_per_innings,omitempty"`
	TeamSize            *int     `yaml:"team_size,omitempty"`
	RetirementThreshold *int     `yaml:"retirement_threshold,omitempty"`
	PenaltyProb         *float64 `yaml:"penalty_prob,omitempty"`
	FreeHits            *bool    `yaml:"free_hits,omitempty"`
	LastBatterStands    *bool    `yaml:"last_batter_stands,omitempty"`
	MaxBowlers          *int     `yaml:"max_bowlers,omitempty"`
	Style               string   `yaml:"style,omitempty"`
	Mindset             string   `yaml:"mindset,omitempty"`
}

// ModelCfg overrides the commonly tuned probability knobs. Anything not
// set keeps the calibrated default.
type ModelCfg struct {
	NeutralBatSkill *float64    `yaml:"neutral_bat_skill,omitempty"`
	DefaultWPB      *float64    `yaml:"default_wpb,omitempty"`
	WicketBase      *float64    `yaml:"wicket_base,omitempty"`
	WicketBowlWt    *float64    `yaml:"wicket_bowl_weight,omitempty"`
	WicketBatWt     *float64    `yaml:"wicket_bat_weight,omitempty"`
	WicketFloor     *float64    `yaml:"wicket_floor,omitempty"`
	WicketCeil      *float64    `yaml:"wicket_ceil,omitempty"`
	FourFloor       *float64    `yaml:"four_floor,omitempty"`
	SixFloor        *float64    `yaml:"six_floor,omitempty"`
	FourScale       *float64    `yaml:"four_scale,omitempty"`
	SixScale        *float64    `yaml:"six_scale,omitempty"`
	BaseSplit       *[4]float64 `yaml:"base_split,omitempty"`
	MatchupFloor    *float64    `yaml:"matchup_floor,omitempty"`
	MatchupCeil     *float64    `yaml:"matchup_ceil,omitempty"`
	PressureCap     *float64    `yaml:"pressure_cap,omitempty"`
}
