package cricket

import "testing"

func newTestInnings(t *testing.T, cfg MatchConfig, model OutcomeModel, rng RandomSource, target int, opts OutputOptions) *Innings {
	t.Helper()
	batting := testTeam("HOME", cfg.TeamSize)
	bowling := testTeam("AWAY", cfg.TeamSize)
	in, err := NewInnings(batting, bowling, cfg, DefaultModelParams(), model, rng, target, opts)
	if err != nil {
		t.Fatal(err)
	}
	return in
}

func TestInningsRunsFullQuota(t *testing.T) {
	cfg := lmsConfig()
	cfg.RetirementThreshold = 0

	// no wickets, no penalties: the innings must use every legal ball
	cfg.PenaltyProb = 0
	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(0)}, NewSeededRNG(1), 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	if in.Phase() != PhaseComplete {
		t.Fatalf("phase %v, want complete", in.Phase())
	}
	if in.LegalBalls != cfg.BallsPerInnings {
		t.Fatalf("legal balls %d, want %d", in.LegalBalls, cfg.BallsPerInnings)
	}
	if in.Wickets != 0 || in.Runs != 0 {
		t.Fatalf("unexpected score %d/%d", in.Runs, in.Wickets)
	}
}

func TestInningsPenaltiesDoNotConsumeLegalBalls(t *testing.T) {
	cfg := lmsConfig()
	cfg.RetirementThreshold = 0
	cfg.PenaltyProb = 0.3
	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(0)}, NewSeededRNG(12), 0, OutputOptions{BallByBall: true})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}

	if in.LegalBalls != cfg.BallsPerInnings {
		t.Fatalf("legal balls %d, want %d", in.LegalBalls, cfg.BallsPerInnings)
	}
	penalties := 0
	for _, evt := range in.Log {
		if !evt.Outcome.Legal {
			penalties++
		}
	}
	if penalties == 0 {
		t.Fatal("seed produced no penalties; test needs a different seed")
	}
	if len(in.Log) != cfg.BallsPerInnings+penalties {
		t.Fatalf("log has %d entries, want %d legal + %d penalties", len(in.Log), cfg.BallsPerInnings, penalties)
	}
	if in.Runs == 0 {
		t.Fatal("penalty runs missing from the total")
	}

	// every penalty run landed on a bowler's card
	conceded := 0
	for _, b := range in.Bowlers {
		conceded += b.Runs
	}
	if conceded != in.Runs {
		t.Fatalf("bowlers conceded %d, innings total %d", conceded, in.Runs)
	}
}

func TestInningsChaseStopsAtTarget(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	cfg.RetirementThreshold = 0

	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(4)}, NewSeededRNG(1), 10, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	if in.Runs < 10 {
		t.Fatalf("chase fell short: %d", in.Runs)
	}
	if in.Runs != 12 || in.LegalBalls != 3 {
		t.Fatalf("got %d off %d balls, want 12 off 3", in.Runs, in.LegalBalls)
	}
}

func TestInningsAllOut(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	cfg.LastBatterStands = false

	// every ball a wicket: the innings closes after team_size-1 wickets
	in := newTestInnings(t, cfg, stubModel{pw: 1}, &seqRNG{vals: []float64{0.0, 0.1}}, 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	if in.Wickets != cfg.TeamSize-1 {
		t.Fatalf("wickets %d, want %d", in.Wickets, cfg.TeamSize-1)
	}
	if len(in.FOW) != in.Wickets {
		t.Fatalf("FOW has %d entries, want %d", len(in.FOW), in.Wickets)
	}
	for i, f := range in.FOW {
		if f.Wicket != i+1 {
			t.Fatalf("FOW %d numbered %d", i, f.Wicket)
		}
	}
}

func TestInningsLastBatterStands(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	if !cfg.LastBatterStands {
		t.Fatal("LMS preset should let the last batter stand")
	}

	in := newTestInnings(t, cfg, stubModel{pw: 1}, &seqRNG{vals: []float64{0.0, 0.1}}, 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	// the last batter bats alone and is finally dismissed too
	if in.Wickets != cfg.TeamSize {
		t.Fatalf("wickets %d, want all %d", in.Wickets, cfg.TeamSize)
	}
}

func TestInningsLastBatterScoresEvenOnly(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	cfg.RetirementThreshold = 0
	cfg.TeamSize = 2

	// one early wicket puts the survivor into last-batter mode; after
	// that only even runs may appear
	rng := &seqRNG{vals: []float64{
		0.0, 0.1, // ball 1: wicket, bowled
		0.9, 0.35, // then: no wicket, run roll
	}}
	dist := RunDistribution{0.2, 0.3, 0.1, 0.2, 0.1, 0.1}
	in := newTestInnings(t, cfg, stubModel{pw: 0.05, dist: dist}, rng, 0, OutputOptions{BallByBall: true})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}

	sawLastBatterBall := false
	pastWicket := false
	for _, evt := range in.Log {
		if evt.Outcome.Dismissal != nil {
			pastWicket = true
			continue
		}
		if pastWicket && evt.Outcome.Legal {
			sawLastBatterBall = true
			if evt.Outcome.Runs%2 == 1 {
				t.Fatalf("odd runs after the last batter was left alone: %+v", evt.Outcome)
			}
			if evt.Outcome.SwapStrike {
				t.Fatalf("strike swap in last-batter mode: %+v", evt.Outcome)
			}
		}
	}
	if !pastWicket || !sawLastBatterBall {
		t.Fatal("script never reached last-batter mode")
	}
}

func TestInningsRetirementCycle(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	cfg.RetirementThreshold = 8
	cfg.TeamSize = 3
	cfg.BallsPerInnings = 60

	// fours only: every batter retires at 8, comes back once everyone
	// else has batted, and never retires a second time
	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(4)}, NewSeededRNG(5), 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}

	retirees := 0
	for _, b := range in.Batters {
		if b.RetiredOnce {
			retirees++
		}
		if b.Runs >= cfg.RetirementThreshold+20 && !b.RetiredOnce {
			t.Fatalf("%s sailed past the threshold without retiring: %+v", b.Name, b)
		}
	}
	if retirees == 0 {
		t.Fatal("nobody retired")
	}
	if in.Wickets != 0 {
		t.Fatalf("wickets %d in a wicketless script", in.Wickets)
	}
	if in.LegalBalls != cfg.BallsPerInnings {
		t.Fatalf("legal balls %d, want %d", in.LegalBalls, cfg.BallsPerInnings)
	}
}

func TestKeeperNeverBowls(t *testing.T) {
	cfg := lmsConfig()
	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(1)}, NewSeededRNG(3), 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}

	keeperID := in.bowling.KeeperID
	for _, b := range in.Bowlers {
		if b.Player.ID == keeperID && b.Balls > 0 {
			t.Fatalf("keeper %s bowled %d balls", b.Name, b.Balls)
		}
	}
}

func TestBowlerRotationCap(t *testing.T) {
	cfg := lmsConfig()
	cfg.MaxBowlers = 3
	cfg.PenaltyProb = 0

	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(0)}, NewSeededRNG(3), 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}

	used := 0
	for _, b := range in.Bowlers {
		if b.Balls > 0 {
			used++
		}
	}
	if used != cfg.MaxBowlers {
		t.Fatalf("%d bowlers used, want exactly %d over a full innings", used, cfg.MaxBowlers)
	}
}

func TestRotationPrefersWorkhorses(t *testing.T) {
	team := testTeam("AWAY", 8)
	rotation, err := selectRotation(team, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(rotation) != 3 {
		t.Fatalf("rotation size %d, want 3", len(rotation))
	}
	for i := 1; i < len(rotation); i++ {
		prev := team.Players[rotation[i-1]].Stats.OversBowled
		cur := team.Players[rotation[i]].Stats.OversBowled
		if cur > prev {
			t.Fatalf("rotation not ordered by historical overs: %v", rotation)
		}
	}
	for _, idx := range rotation {
		if team.Players[idx].ID == team.KeeperID {
			t.Fatal("keeper selected to bowl")
		}
	}
}

func TestMaidenOvers(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	cfg.RetirementThreshold = 0
	cfg.BallsPerInnings = 10

	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(0)}, NewSeededRNG(1), 0, OutputOptions{})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}

	maidens := 0
	for _, b := range in.Bowlers {
		maidens += b.Maidens
	}
	if maidens != 2 {
		t.Fatalf("maidens %d, want 2 for two scoreless overs", maidens)
	}
}

func TestOverSummaryLabels(t *testing.T) {
	cfg := lmsConfig()
	cfg.PenaltyProb = 0
	cfg.RetirementThreshold = 0
	cfg.BallsPerInnings = 10

	// full quota: every over closes cleanly, no trailing partial
	in := newTestInnings(t, cfg, stubModel{dist: alwaysRuns(1)}, NewSeededRNG(1), 0, OutputOptions{OverByOver: true})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	if len(in.OverSummaries) != 2 {
		t.Fatalf("%d summaries, want 2", len(in.OverSummaries))
	}
	for _, s := range in.OverSummaries {
		if s.Label != "" {
			t.Fatalf("completed over labeled %q", s.Label)
		}
	}

	// chase decided mid-over: the trailing summary is partial
	in = newTestInnings(t, cfg, stubModel{dist: alwaysRuns(4)}, NewSeededRNG(1), 10, OutputOptions{OverByOver: true})
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	last := in.OverSummaries[len(in.OverSummaries)-1]
	if last.Label != "partial" {
		t.Fatalf("mid-over finish labeled %q, want partial", last.Label)
	}
}

func TestInningsRejectsBadConfig(t *testing.T) {
	cfg := lmsConfig()
	cfg.BallsPerOver = 0
	batting := testTeam("HOME", 8)
	bowling := testTeam("AWAY", 8)
	if _, err := NewInnings(batting, bowling, cfg, DefaultModelParams(), stubModel{}, NewSeededRNG(1), 0, OutputOptions{}); err == nil {
		t.Fatal("invalid config must fail before play")
	}
}
