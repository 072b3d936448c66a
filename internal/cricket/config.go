package cricket

import (
	"fmt"
	"strings"
)

// Simulation styles select which outcome model drives the match.
const (
	StyleDefault = "default" // simple skill-difference model
	StyleMatchup = "matchup" // runs-per-ball matchup model with live pressure
)

// Team mindsets are recognized and validated but currently apply no tilt to
// the run distribution. They are carried so a tilt can be wired in later
// without changing the config surface.
const (
	MindsetBalanced     = "balanced"
	MindsetConservative = "conservative"
	MindsetAggressive   = "aggressive"
	MindsetBrutal       = "brutal"
)

// MatchConfig holds the rules for one match. It is built once, validated
// at match start, and shared read-only for both innings.
type MatchConfig struct {
	MatchType       string  `yaml:"match_type"`
	BallsPerOver    int     `yaml:"balls_per_over"`
	BallsPerInnings int     `yaml:"balls_per_innings"`
	TeamSize        int     `yaml:"team_size"`

	// RetirementThreshold retires a batter when their runs reach it.
	// Zero disables the rule.
	RetirementThreshold int `yaml:"retirement_threshold"`

	// PenaltyProb is the per-delivery chance of a wide or no-ball.
	PenaltyProb float64 `yaml:"penalty_prob"`

	// FreeHits arms a free hit after a no-ball when true.
	FreeHits bool `yaml:"free_hits"`

	// LastBatterStands keeps the innings going with a single batter at the
	// crease (LMS). When false the innings closes at team_size-1 wickets.
	LastBatterStands bool `yaml:"last_batter_stands"`

	// MaxBowlers caps how many distinct bowlers are used in an innings.
	MaxBowlers int `yaml:"max_bowlers"`

	Style   string `yaml:"style"`
	Mindset string `yaml:"mindset"`
}

// Format presets. LMS is the house format: 5-ball overs, 8 a side, retire
// at 50, last batter stands.
func ConfigForType(matchType string) (MatchConfig, error) {
	cfg := MatchConfig{
		MatchType:   matchType,
		PenaltyProb: 0.04,
		FreeHits:    true,
		MaxBowlers:  8,
		Style:       StyleDefault,
		Mindset:     MindsetBalanced,
	}
	switch strings.ToUpper(matchType) {
	case "LMS":
		cfg.BallsPerOver = 5
		cfg.BallsPerInnings = 100
		cfg.TeamSize = 8
		cfg.RetirementThreshold = 50
		cfg.LastBatterStands = true
	case "T20":
		cfg.BallsPerOver = 6
		cfg.BallsPerInnings = 120
		cfg.TeamSize = 11
	case "OD":
		cfg.BallsPerOver = 6
		cfg.BallsPerInnings = 300
		cfg.TeamSize = 11
	default:
		return MatchConfig{}, fmt.Errorf("unknown match type: %s", matchType)
	}
	return cfg, nil
}

// Validate checks semantic constraints. Invalid configs are fatal at match
// start, never silently defaulted.
func (c MatchConfig) Validate() error {
	var errs []string

	if c.BallsPerOver <= 0 {
		errs = append(errs, "balls_per_over must be >= 1")
	}
	if c.BallsPerInnings <= 0 {
		errs = append(errs, "balls_per_innings must be >= 1")
	}
	if c.TeamSize < 2 {
		errs = append(errs, "team_size must be >= 2")
	}
	if c.RetirementThreshold < 0 {
		errs = append(errs, "retirement_threshold must be >= 0 (0 disables)")
	}
	if c.PenaltyProb < 0 || c.PenaltyProb >= 1 {
		errs = append(errs, "penalty_prob must be in [0,1)")
	}
	if c.MaxBowlers < 1 {
		errs = append(errs, "max_bowlers must be >= 1")
	}
	switch c.Style {
	case StyleDefault, StyleMatchup:
	default:
		errs = append(errs, "style must be one of: default, matchup")
	}
	switch c.Mindset {
	case MindsetBalanced, MindsetConservative, MindsetAggressive, MindsetBrutal:
	default:
		errs = append(errs, "mindset must be one of: balanced, conservative, aggressive, brutal")
	}

	if len(errs) > 0 {
		return fmt.Errorf("match config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// OversString converts a ball count to the usual overs display, e.g. 7
// legal balls with 5-ball overs prints as "1.2".
func (c MatchConfig) OversString(balls int) string {
	return fmt.Sprintf("%d.%d", balls/c.BallsPerOver, balls%c.BallsPerOver)
}
