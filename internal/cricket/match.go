package cricket

import "fmt"

// MatchResult is the final outcome of a two-innings match.
type MatchResult struct {
	Winner         string `json:"winner,omitempty"`
	Tie            bool   `json:"tie,omitempty"`
	MarginRuns     int    `json:"margin_runs,omitempty"`
	MarginWickets  int    `json:"margin_wickets,omitempty"`
	BallsRemaining int    `json:"balls_remaining,omitempty"`
	Text           string `json:"text"`
}

// Match holds the two completed innings snapshots and the result.
type Match struct {
	HomeTeam string       `json:"home_team"`
	AwayTeam string       `json:"away_team"`
	Seed     uint64       `json:"seed"`
	Target   int          `json:"target"`
	First    *Innings     `json:"-"`
	Second   *Innings     `json:"-"`
	Result   MatchResult  `json:"result"`
}

// PlayMatch simulates a full match: teamA bats first, teamB chases
// teamA's total plus one. The second innings stops the moment the chase
// succeeds; remaining deliveries are never resolved.
func PlayMatch(teamA, teamB *Team, cfg MatchConfig, params ModelParams, rng RandomSource, opts OutputOptions) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := ModelForStyle(cfg.Style, cfg, params)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}

	first, err := NewInnings(teamA, teamB, cfg, params, model, rng, 0, opts)
	if err != nil {
		return nil, err
	}
	if err := first.Play(); err != nil {
		return nil, err
	}

	target := first.Runs + 1
	second, err := NewInnings(teamB, teamA, cfg, params, model, rng, target, opts)
	if err != nil {
		return nil, err
	}
	if err := second.Play(); err != nil {
		return nil, err
	}

	m := &Match{
		HomeTeam: teamA.Name,
		AwayTeam: teamB.Name,
		Target:   target,
		First:    first,
		Second:   second,
	}
	m.Result = calculateResult(teamA, teamB, cfg, first, second)
	return m, nil
}

// PlaySeededMatch is PlayMatch with a fresh deterministic source. Same
// seed, teams and config reproduce the identical ball sequence.
func PlaySeededMatch(teamA, teamB *Team, cfg MatchConfig, params ModelParams, seed uint64, opts OutputOptions) (*Match, error) {
	m, err := PlayMatch(teamA, teamB, cfg, params, NewSeededRNG(seed), opts)
	if err != nil {
		return nil, err
	}
	m.Seed = seed
	return m, nil
}

func calculateResult(teamA, teamB *Team, cfg MatchConfig, first, second *Innings) MatchResult {
	switch {
	case first.Runs > second.Runs:
		margin := first.Runs - second.Runs
		return MatchResult{
			Winner:     teamA.Name,
			MarginRuns: margin,
			Text:       fmt.Sprintf("%s won by %d %s", teamA.Name, margin, plural(margin, "run")),
		}
	case second.Runs > first.Runs:
		// the last batter standing cannot be "in hand", hence the -1 for
		// formats that close at team_size-1 wickets
		inHand := cfg.TeamSize - second.Wickets
		if !cfg.LastBatterStands {
			inHand = cfg.TeamSize - 1 - second.Wickets
		}
		remaining := cfg.BallsPerInnings - second.LegalBalls
		return MatchResult{
			Winner:         teamB.Name,
			MarginWickets:  inHand,
			BallsRemaining: remaining,
			Text: fmt.Sprintf("%s won by %d %s with %d %s remaining",
				teamB.Name, inHand, plural(inHand, "wicket"), remaining, plural(remaining, "ball")),
		}
	default:
		return MatchResult{Tie: true, Text: "Match tied"}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
