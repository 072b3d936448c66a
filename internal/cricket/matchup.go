package cricket

import "fmt"

// matchupModel is the elaborate variant: wicket chance comes from the
// relative run potential of this batter against this bowler, shaped by the
// batter's average (protection), the bowler's record (boost) and how far
// the batter's live scoring runs ahead of their history (pressure). Each
// multiplier is clamped on its own before they are combined, and the final
// probability is clamped to a fixed floor and ceiling.
type matchupModel struct {
	cfg MatchConfig
	p   ModelParams
}

// batRPB is the batter's expected runs per ball: strike rate when known,
// career runs per ball otherwise, and a flat default for statless players.
func (m *matchupModel) batRPB(s *PlayerStats) float64 {
	if s == nil {
		return m.p.DefaultBatRPB
	}
	rpb := m.p.DefaultBatRPB
	switch {
	case s.StrikeRate != nil && *s.StrikeRate > 0:
		rpb = *s.StrikeRate / 100
	case s.BallsFaced > 0:
		rpb = s.Runs / s.BallsFaced
	}
	if s.BatAvg != nil {
		rpb *= 1 + clamp(*s.BatAvg, 0, 100)/300
	}
	return rpb
}

// bowlRPB is the bowler's expected runs conceded per ball.
func (m *matchupModel) bowlRPB(s *PlayerStats) float64 {
	bpo := float64(m.cfg.BallsPerOver)
	if s == nil {
		return m.p.DefaultConceded / bpo
	}
	if s.Economy != nil && *s.Economy > 0 {
		return *s.Economy / bpo
	}
	conceded := s.RunsConceded
	if conceded == 0 {
		conceded = m.p.DefaultConceded
	}
	overs := s.OversBowled
	if overs < 1 {
		overs = 1
	}
	return conceded / overs / bpo
}

// advantage is the batter's share of the combined run potential, in (0,1).
func (m *matchupModel) advantage(bat, bowl *PlayerStats) float64 {
	br := m.batRPB(bat)
	return br / (br + m.bowlRPB(bowl) + 1e-6)
}

func (m *matchupModel) WicketProb(bat, bowl *PlayerStats, form LiveForm) float64 {
	ba := m.advantage(bat, bowl)
	base := m.p.MatchupBase + (1-ba)*m.p.MatchupSpread

	protect := 1.0
	if bat != nil && bat.BatAvg != nil {
		protect = 1 - clamp(*bat.BatAvg, 0, 100)/m.p.ProtectDivisor
	}

	boost := 1.0
	if bowl != nil {
		if bowl.BowlAvg != nil {
			edge := (m.p.BoostAvgPivot - *bowl.BowlAvg) / m.p.BoostAvgDivisor
			if edge > 0 {
				boost += edge
			}
		}
		taken := float64(bowl.Wickets)
		if taken > m.p.BoostWicketCap {
			taken = m.p.BoostWicketCap
		}
		boost *= 1 + taken/m.p.BoostWicketSpan
	}
	boost = clamp(boost, 1, m.p.BoostClampHi)

	pw := base * boost * protect * m.pressure(bat, form)
	pw = clamp(pw, m.p.MatchupFloor, m.p.MatchupCeil)
	if err := validateProb(pw); err != nil {
		panic(fmt.Sprintf("cricket: matchup wicket probability %v out of range", pw))
	}
	return pw
}

// pressure rises once the batter has faced enough balls and is scoring
// faster than their historical strike rate allows for. Clamped to
// [1, PressureCap] before use.
func (m *matchupModel) pressure(bat *PlayerStats, form LiveForm) float64 {
	if bat == nil || bat.StrikeRate == nil || *bat.StrikeRate <= 0 {
		return 1
	}
	if form.Balls < m.p.PressureMinBalls {
		return 1
	}
	liveSR := float64(form.Runs) / float64(form.Balls) * 100
	ceiling := *bat.StrikeRate * m.p.PressureHeadroom
	if ceiling <= 0 {
		return 1
	}
	return clamp(liveSR/ceiling, 1, m.p.PressureCap)
}

func (m *matchupModel) RunDist(bat, bowl *PlayerStats, _ LiveForm) RunDistribution {
	return buildRunDist(bat, m.advantage(bat, bowl), m.p)
}
