package cricket

import "fmt"

// seqRNG replays a scripted value sequence, cycling when exhausted.
type seqRNG struct {
	vals []float64
	i    int
}

func (s *seqRNG) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// stubModel returns fixed probabilities, so the state machine can be
// tested without the real probability model in the way.
type stubModel struct {
	pw   float64
	dist RunDistribution
}

func (m stubModel) WicketProb(_, _ *PlayerStats, _ LiveForm) float64      { return m.pw }
func (m stubModel) RunDist(_, _ *PlayerStats, _ LiveForm) RunDistribution { return m.dist }

// alwaysRuns is a distribution with all mass on one run value.
func alwaysRuns(runs int) RunDistribution {
	var d RunDistribution
	for i, v := range RunValues {
		if v == runs {
			d[i] = 1
			return d
		}
	}
	panic(fmt.Sprintf("no run bucket for %d", runs))
}

func fptr(f float64) *float64 { return &f }

func testBatter(id, name string, sr float64) Player {
	return Player{ID: id, Name: name, Stats: PlayerStats{
		Matches: 20, Runs: 500, BallsFaced: 400, StrikeRate: fptr(sr),
		Fours: 40, Sixes: 10,
	}}
}

func testBowler(id, name string, overs float64, wickets int) Player {
	return Player{ID: id, Name: name, Stats: PlayerStats{
		Matches: 20, Runs: 100, BallsFaced: 150, StrikeRate: fptr(90),
		OversBowled: overs, RunsConceded: overs * 7, Wickets: wickets,
	}}
}

// testTeam builds a team of size n. Even slots bat, odd slots bowl, the
// last player keeps wicket.
func testTeam(name string, n int) *Team {
	t := &Team{Name: name}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s_%02d", name, i)
		pname := fmt.Sprintf("%s Player %d", name, i)
		if i%2 == 0 {
			t.Players = append(t.Players, testBatter(id, pname, 100+float64(i)*5))
		} else {
			t.Players = append(t.Players, testBowler(id, pname, 50-float64(i), 20-i))
		}
	}
	t.CaptainID = t.Players[0].ID
	t.KeeperID = t.Players[n-1].ID
	return t
}

func lmsConfig() MatchConfig {
	cfg, err := ConfigForType("LMS")
	if err != nil {
		panic(err)
	}
	return cfg
}
