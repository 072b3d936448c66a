package cricket

import (
	"fmt"
	"math"
	"sort"
)

// Stats summarizes a batch of integer samples.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"std_dev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// raw samples for callers that want histograms
	Samples []int `json:"-"`
}

func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	pct := func(p float64) float64 {
		if p <= 0 || n == 1 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     pct(0.50),
		P90:     pct(0.90),
		P99:     pct(0.99),
		Samples: xs,
	}
}

// BattingAggregate accumulates a player's batting output across a batch,
// for comparison against their historical figures.
type BattingAggregate struct {
	Name       string `json:"name"`
	Innings    int    `json:"innings"`
	Runs       int    `json:"runs"`
	Balls      int    `json:"balls"`
	Dismissals int    `json:"dismissals"`
}

// Average is runs per dismissal; not-out innings inflate it just like the
// real statistic.
func (a BattingAggregate) Average() float64 {
	if a.Dismissals == 0 {
		return float64(a.Runs)
	}
	return float64(a.Runs) / float64(a.Dismissals)
}

func (a BattingAggregate) StrikeRate() float64 {
	if a.Balls == 0 {
		return 0
	}
	return float64(a.Runs) / float64(a.Balls) * 100
}

// BowlingAggregate accumulates a player's bowling output across a batch.
type BowlingAggregate struct {
	Name     string `json:"name"`
	Innings  int    `json:"innings"`
	Balls    int    `json:"balls"`
	Conceded int    `json:"conceded"`
	Wickets  int    `json:"wickets"`
}

// Economy is runs conceded per over.
func (a BowlingAggregate) Economy(ballsPerOver int) float64 {
	if a.Balls == 0 {
		return 0
	}
	return float64(a.Conceded) / float64(a.Balls) * float64(ballsPerOver)
}

// BatchParams controls a calibration batch.
type BatchParams struct {
	Trials   int
	BaseSeed uint64
	// Alternate flips who bats first each match, cancelling the
	// bat-first edge out of the win counts.
	Alternate bool
}

// BatchResult is the aggregate of many independent matches.
type BatchResult struct {
	Matches int   `json:"matches"`
	WinsA   int   `json:"wins_a"`
	WinsB   int   `json:"wins_b"`
	Ties    int   `json:"ties"`
	TotalsA Stats `json:"totals_a"`
	TotalsB Stats `json:"totals_b"`

	BattingA map[string]*BattingAggregate `json:"batting_a"`
	BattingB map[string]*BattingAggregate `json:"batting_b"`
	BowlingA map[string]*BowlingAggregate `json:"bowling_a"`
	BowlingB map[string]*BowlingAggregate `json:"bowling_b"`
}

// RunBatch plays Trials independent matches on derived seeds and folds
// the innings into per-player aggregates. Each match gets its own RNG, so
// trials are independent and the whole batch replays from BaseSeed.
func RunBatch(teamA, teamB *Team, cfg MatchConfig, params ModelParams, bp BatchParams) (*BatchResult, error) {
	if bp.Trials <= 0 {
		return nil, fmt.Errorf("batch trials must be >= 1, got %d", bp.Trials)
	}

	res := &BatchResult{
		Matches:  bp.Trials,
		BattingA: make(map[string]*BattingAggregate),
		BattingB: make(map[string]*BattingAggregate),
		BowlingA: make(map[string]*BowlingAggregate),
		BowlingB: make(map[string]*BowlingAggregate),
	}
	var totalsA, totalsB []int

	opts := OutputOptions{} // no logs; batches only need the figures
	for i := 0; i < bp.Trials; i++ {
		home, away := teamA, teamB
		if bp.Alternate && i%2 == 1 {
			home, away = teamB, teamA
		}

		m, err := PlaySeededMatch(home, away, cfg, params, bp.BaseSeed+uint64(i), opts)
		if err != nil {
			return nil, err
		}

		for _, in := range []*Innings{m.First, m.Second} {
			if in.batting == teamA {
				totalsA = append(totalsA, in.Runs)
				foldInnings(res.BattingA, res.BowlingB, in)
			} else {
				totalsB = append(totalsB, in.Runs)
				foldInnings(res.BattingB, res.BowlingA, in)
			}
		}

		switch m.Result.Winner {
		case teamA.Name:
			res.WinsA++
		case teamB.Name:
			res.WinsB++
		default:
			res.Ties++
		}
	}

	res.TotalsA = calcStats(totalsA)
	res.TotalsB = calcStats(totalsB)
	return res, nil
}

// foldInnings accumulates one innings into the batting aggregates of the
// side that batted and the bowling aggregates of the side that bowled.
func foldInnings(batting map[string]*BattingAggregate, bowling map[string]*BowlingAggregate, in *Innings) {
	for i := range in.Batters {
		c := &in.Batters[i]
		if c.Balls == 0 && !c.Out {
			continue // did not bat
		}
		agg := batting[c.Player.ID]
		if agg == nil {
			agg = &BattingAggregate{Name: c.Name}
			batting[c.Player.ID] = agg
		}
		agg.Innings++
		agg.Runs += c.Runs
		agg.Balls += c.Balls
		if c.Out {
			agg.Dismissals++
		}
	}
	for i := range in.Bowlers {
		c := &in.Bowlers[i]
		if c.Balls == 0 {
			continue
		}
		agg := bowling[c.Player.ID]
		if agg == nil {
			agg = &BowlingAggregate{Name: c.Name}
			bowling[c.Player.ID] = agg
		}
		agg.Innings++
		agg.Balls += c.Balls
		agg.Conceded += c.Runs
		agg.Wickets += c.Wickets
	}
}
