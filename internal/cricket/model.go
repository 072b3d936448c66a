package cricket

import "fmt"

// RunValues is the outcome space of a legal, non-wicket delivery.
var RunValues = [6]int{0, 1, 2, 3, 4, 6}

// RunDistribution holds one probability per entry of RunValues.
type RunDistribution [6]float64

// Sample draws a run value from the distribution.
func (d RunDistribution) Sample(rng RandomSource) int {
	pick := rng.Float64()
	cum := 0.0
	for i, p := range d {
		cum += p
		if pick <= cum {
			return RunValues[i]
		}
	}
	// float tail; the last bucket absorbs it
	return RunValues[len(RunValues)-1]
}

// EvenOnly folds the odd-run mass into the even buckets. dotShare of the
// odd mass goes to the dot ball, the rest to two. Used in last-batter mode
// where there is nobody to run a single with.
func (d RunDistribution) EvenOnly(dotShare float64) RunDistribution {
	odd := d[1] + d[3]
	d[0] += odd * dotShare
	d[2] += odd * (1 - dotShare)
	d[1] = 0
	d[3] = 0
	return d
}

func (d RunDistribution) normalize() RunDistribution {
	sum := 0.0
	for _, p := range d {
		sum += p
	}
	if sum <= 0 {
		panic(fmt.Sprintf("cricket: run distribution has no mass: %v", d))
	}
	for i := range d {
		d[i] /= sum
	}
	mustValidDist(d)
	return d
}

// LiveForm is the striker's in-innings progress, used by the matchup model
// to apply pressure when a batter runs ahead of their historical rate.
type LiveForm struct {
	Runs  int
	Balls int
}

// OutcomeModel maps player histories (plus live form) to the per-ball
// wicket probability and run distribution. Implementations are pure: same
// inputs, same outputs, no hidden state.
type OutcomeModel interface {
	WicketProb(bat, bowl *PlayerStats, form LiveForm) float64
	RunDist(bat, bowl *PlayerStats, form LiveForm) RunDistribution
}

// ModelForStyle picks the outcome model once per match.
func ModelForStyle(style string, cfg MatchConfig, params ModelParams) (OutcomeModel, error) {
	switch style {
	case StyleDefault:
		return &baseModel{cfg: cfg, p: params}, nil
	case StyleMatchup:
		return &matchupModel{cfg: cfg, p: params}, nil
	default:
		return nil, fmt.Errorf("unknown simulation style: %s", style)
	}
}

// ModelParams is every tunable the models use, passed in explicitly so
// calibration runs can vary them without touching shared state.
type ModelParams struct {
	// skill mapping
	NeutralBatSkill float64 `yaml:"neutral_bat_skill"` // statless batter fallback
	BatSkillFloorSR float64 `yaml:"bat_skill_floor_sr"`
	BatSkillSpanSR  float64 `yaml:"bat_skill_span_sr"`
	DefaultWPB      float64 `yaml:"default_wpb"` // wickets per ball when no history
	BowlSkillFloor  float64 `yaml:"bowl_skill_floor"`
	BowlSkillSpan   float64 `yaml:"bowl_skill_span"`

	// base wicket formula: clamp(base + bowlW*bowl - batW*bat, floor, ceil)
	WicketBase       float64 `yaml:"wicket_base"`
	WicketBowlWeight float64 `yaml:"wicket_bowl_weight"`
	WicketBatWeight  float64 `yaml:"wicket_bat_weight"`
	WicketFloor      float64 `yaml:"wicket_floor"`
	WicketCeil       float64 `yaml:"wicket_ceil"`

	// run distribution
	FourFloor       float64    `yaml:"four_floor"`
	SixFloor        float64    `yaml:"six_floor"`
	FourScale       float64    `yaml:"four_scale"`
	SixScale        float64    `yaml:"six_scale"`
	DefaultFourRate float64    `yaml:"default_four_rate"`
	DefaultSixRate  float64    `yaml:"default_six_rate"`
	BaseSplit       [4]float64 `yaml:"base_split"` // {0,1,2,3} shares of the remainder
	AdvFourBoost    float64    `yaml:"adv_four_boost"`
	AdvSixBoost     float64    `yaml:"adv_six_boost"`

	// last-batter odd-mass redistribution: this share to 0, rest to 2
	LastBatterDotShare float64 `yaml:"last_batter_dot_share"`

	// penalty delivery split
	WideShare float64 `yaml:"wide_share"` // remainder is no-balls

	// run-out victim: chance the non-striker is the one out
	RunOutNonStriker float64 `yaml:"run_out_non_striker"`

	// matchup model
	DefaultBatRPB    float64 `yaml:"default_bat_rpb"`
	DefaultConceded  float64 `yaml:"default_conceded"`
	MatchupBase      float64 `yaml:"matchup_base"`
	MatchupSpread    float64 `yaml:"matchup_spread"`
	MatchupFloor     float64 `yaml:"matchup_floor"`
	MatchupCeil      float64 `yaml:"matchup_ceil"`
	ProtectDivisor   float64 `yaml:"protect_divisor"`
	BoostAvgPivot    float64 `yaml:"boost_avg_pivot"`
	BoostAvgDivisor  float64 `yaml:"boost_avg_divisor"`
	BoostWicketCap   float64 `yaml:"boost_wicket_cap"`
	BoostWicketSpan  float64 `yaml:"boost_wicket_span"`
	BoostClampHi     float64 `yaml:"boost_clamp_hi"`
	PressureHeadroom float64 `yaml:"pressure_headroom"` // live SR may exceed hist by this factor
	PressureCap      float64 `yaml:"pressure_cap"`
	PressureMinBalls int     `yaml:"pressure_min_balls"`
}

// DefaultModelParams returns the calibrated defaults.
func DefaultModelParams() ModelParams {
	return ModelParams{
		NeutralBatSkill: 0.30,
		BatSkillFloorSR: 70,
		BatSkillSpanSR:  90,
		DefaultWPB:      0.018,
		BowlSkillFloor:  0.01,
		BowlSkillSpan:   0.04,

		WicketBase:       0.02,
		WicketBowlWeight: 0.07,
		WicketBatWeight:  0.03,
		WicketFloor:      0.01,
		WicketCeil:       0.12,

		FourFloor:       0.05,
		SixFloor:        0.02,
		FourScale:       1.2,
		SixScale:        1.0,
		DefaultFourRate: 0.03,
		DefaultSixRate:  0.01,
		BaseSplit:       [4]float64{0.45, 0.35, 0.12, 0.08},
		AdvFourBoost:    0.20,
		AdvSixBoost:     0.12,

		LastBatterDotShare: 0.6,
		WideShare:          0.6,
		RunOutNonStriker:   0.3,

		DefaultBatRPB:    0.8,
		DefaultConceded:  10,
		MatchupBase:      0.008,
		MatchupSpread:    0.08,
		MatchupFloor:     0.003,
		MatchupCeil:      0.18,
		ProtectDivisor:   250,
		BoostAvgPivot:    50,
		BoostAvgDivisor:  120,
		BoostWicketCap:   200,
		BoostWicketSpan:  300,
		BoostClampHi:     2.0,
		PressureHeadroom: 1.08,
		PressureCap:      1.5,
		PressureMinBalls: 10,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BatSkill maps historical strike rate onto [0,1]. SR 70 is a 0.0 batter,
// SR 160 a 1.0 batter. A statless batter gets the neutral floor.
func BatSkill(s *PlayerStats, p ModelParams) float64 {
	if s == nil || s.StrikeRate == nil {
		if s != nil && s.BallsFaced > 0 {
			derived := s.Runs / s.BallsFaced * 100
			return clamp((derived-p.BatSkillFloorSR)/p.BatSkillSpanSR, 0, 1)
		}
		return p.NeutralBatSkill
	}
	return clamp((*s.StrikeRate-p.BatSkillFloorSR)/p.BatSkillSpanSR, 0, 1)
}

// BowlSkill maps a historical wickets-per-ball rate onto [0,1].
func BowlSkill(s *PlayerStats, ballsPerOver int, p ModelParams) float64 {
	wpb := p.DefaultWPB
	if s != nil && s.OversBowled > 0 {
		wpb = float64(s.Wickets) / (s.OversBowled * float64(ballsPerOver))
	}
	return clamp((wpb-p.BowlSkillFloor)/p.BowlSkillSpan, 0, 1)
}

// baseModel is the simple skill-difference model: the contract every
// format runs under unless the matchup style is selected.
type baseModel struct {
	cfg MatchConfig
	p   ModelParams
}

func (m *baseModel) WicketProb(bat, bowl *PlayerStats, _ LiveForm) float64 {
	bs := BatSkill(bat, m.p)
	bw := BowlSkill(bowl, m.cfg.BallsPerOver, m.p)
	pw := clamp(m.p.WicketBase+m.p.WicketBowlWeight*bw-m.p.WicketBatWeight*bs,
		m.p.WicketFloor, m.p.WicketCeil)
	if err := validateProb(pw); err != nil {
		panic(fmt.Sprintf("cricket: wicket probability %v out of range", pw))
	}
	return pw
}

func (m *baseModel) RunDist(bat, _ *PlayerStats, _ LiveForm) RunDistribution {
	return buildRunDist(bat, BatSkill(bat, m.p), m.p)
}

// buildRunDist is shared by both models: boundary floors from historical
// rates, the remainder split across {0,1,2,3}, an advantage boost above
// 0.5, then renormalized. Deterministic from (stats, advantage, params).
func buildRunDist(bat *PlayerStats, advantage float64, p ModelParams) RunDistribution {
	fourRate := p.DefaultFourRate
	sixRate := p.DefaultSixRate
	if bat != nil && bat.BallsFaced > 0 {
		fourRate = float64(bat.Fours) / bat.BallsFaced
		sixRate = float64(bat.Sixes) / bat.BallsFaced
	}

	p4 := fourRate * p.FourScale
	if p4 < p.FourFloor {
		p4 = p.FourFloor
	}
	p6 := sixRate * p.SixScale
	if p6 < p.SixFloor {
		p6 = p.SixFloor
	}

	rem := 1.0 - (p4 + p6)
	if rem < 0 {
		rem = 0
	}

	var d RunDistribution
	for i, share := range p.BaseSplit {
		d[i] = rem * share
	}
	d[4] = p4
	d[5] = p6

	if advantage > 0.5 {
		boost := advantage - 0.5
		d[4] += boost * p.AdvFourBoost
		d[5] += boost * p.AdvSixBoost
	}

	return d.normalize()
}
