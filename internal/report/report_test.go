package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/tbontb/cricket-sim/internal/cricket"
)

func TestOptionsForMode(t *testing.T) {
	opts, err := OptionsForMode("scorecard_only")
	if err != nil {
		t.Fatal(err)
	}
	if opts.BallByBall || opts.OverByOver || !opts.Scorecard {
		t.Fatalf("scorecard mode: %+v", opts)
	}

	opts, err = OptionsForMode(ModeOverByOver)
	if err != nil {
		t.Fatal(err)
	}
	if opts.BallByBall || !opts.OverByOver || !opts.Scorecard {
		t.Fatalf("over mode: %+v", opts)
	}

	opts, err = OptionsForMode(ModeBallByBall)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.BallByBall || !opts.OverByOver || !opts.Scorecard {
		t.Fatalf("ball mode: %+v", opts)
	}

	if _, err := OptionsForMode("VERBOSE"); err == nil {
		t.Fatal("unknown mode must fail")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		out  cricket.DeliveryOutcome
		want string
	}{
		{cricket.DeliveryOutcome{Legal: true, Runs: 0}, "no run"},
		{cricket.DeliveryOutcome{Legal: true, Runs: 1}, "1 run"},
		{cricket.DeliveryOutcome{Legal: true, Runs: 2}, "2 runs"},
		{cricket.DeliveryOutcome{Legal: true, Runs: 4}, "FOUR"},
		{cricket.DeliveryOutcome{Legal: true, Runs: 6}, "SIX"},
		{cricket.DeliveryOutcome{Penalty: cricket.PenaltyWide, PenaltyRuns: 1}, "WIDE, +1"},
		{cricket.DeliveryOutcome{Penalty: cricket.PenaltyNoBall, PenaltyRuns: 3, FreeHitArmed: true}, "NO BALL, +3, free hit coming"},
		{cricket.DeliveryOutcome{Legal: true, Dismissal: &cricket.Dismissal{Type: cricket.DismissalStumped}}, "OUT, Stumped"},
	}
	for _, c := range cases {
		if got := Describe(c.out); got != c.want {
			t.Fatalf("Describe(%+v)=%q, want %q", c.out, got, c.want)
		}
	}
}

// steadyModel never takes a wicket and scores a single every ball.
type steadyModel struct{}

func (steadyModel) WicketProb(_, _ *cricket.PlayerStats, _ cricket.LiveForm) float64 { return 0 }
func (steadyModel) RunDist(_, _ *cricket.PlayerStats, _ cricket.LiveForm) cricket.RunDistribution {
	return cricket.RunDistribution{0, 1, 0, 0, 0, 0}
}

func reportTeam(name string, n int) *cricket.Team {
	t := &cricket.Team{Name: name}
	for i := 0; i < n; i++ {
		t.Players = append(t.Players, cricket.Player{
			ID:   fmt.Sprintf("%s_%d", name, i),
			Name: fmt.Sprintf("%s %d", name, i),
		})
	}
	t.CaptainID = t.Players[0].ID
	t.KeeperID = t.Players[n-1].ID
	return t
}

func playedInnings(t *testing.T, cfg cricket.MatchConfig, opts cricket.OutputOptions) *cricket.Innings {
	t.Helper()
	in, err := cricket.NewInnings(reportTeam("Home", cfg.TeamSize), reportTeam("Away", cfg.TeamSize),
		cfg, cricket.DefaultModelParams(), steadyModel{}, cricket.NewSeededRNG(4), 0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := in.Play(); err != nil {
		t.Fatal(err)
	}
	return in
}

func shortConfig(t *testing.T) cricket.MatchConfig {
	t.Helper()
	cfg, err := cricket.ConfigForType("LMS")
	if err != nil {
		t.Fatal(err)
	}
	cfg.BallsPerInnings = 10
	cfg.PenaltyProb = 0
	cfg.RetirementThreshold = 0
	return cfg
}

func TestWriteBallByBall(t *testing.T) {
	cfg := shortConfig(t)
	in := playedInnings(t, cfg, cricket.OutputOptions{BallByBall: true, OverByOver: true})

	var buf bytes.Buffer
	WriteBallByBall(&buf, in, cfg)
	out := buf.String()

	for _, want := range []string{
		"Over 1:",
		"Over 2:",
		"End of Over 1:",
		"End of Over 2:",
		"0.1 - ",
		"1 run",
		"Batters: ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("ball-by-ball output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteOverSummariesSuppressedUnderBallByBall(t *testing.T) {
	cfg := shortConfig(t)
	opts := cricket.OutputOptions{BallByBall: true, OverByOver: true}
	in := playedInnings(t, cfg, opts)

	var buf bytes.Buffer
	WriteOverSummaries(&buf, in, cfg, opts)
	if buf.Len() != 0 {
		t.Fatalf("over summaries should defer to the ball-by-ball view:\n%s", buf.String())
	}

	opts = cricket.OutputOptions{OverByOver: true}
	buf.Reset()
	WriteOverSummaries(&buf, in, cfg, opts)
	if !strings.Contains(buf.String(), "Over 1: 5/0") {
		t.Fatalf("over view missing:\n%s", buf.String())
	}
}

func TestWriteInningsSummary(t *testing.T) {
	cfg := shortConfig(t)
	in := playedInnings(t, cfg, cricket.OutputOptions{Scorecard: true})

	var buf bytes.Buffer
	WriteInningsSummary(&buf, "Home", in, cfg)
	out := buf.String()

	if !strings.Contains(out, "Home innings: 10 / 0 (2.0 Overs)") {
		t.Fatalf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "BATTING:") || !strings.Contains(out, "BOWLING:") {
		t.Fatalf("sections missing:\n%s", out)
	}
	// openers carry a not-out star, the bench shows DNB
	if !strings.Contains(out, "* (") || !strings.Contains(out, "Not Out") {
		t.Fatalf("not-out line missing:\n%s", out)
	}
	if !strings.Contains(out, "DNB") {
		t.Fatalf("DNB line missing:\n%s", out)
	}
	// two overs, two bowlers; the rest stay off the card
	bowlingLines := strings.Split(strings.TrimRight(out[strings.Index(out, "BOWLING:"):], "\n"), "\n")
	if len(bowlingLines)-1 != 2 {
		t.Fatalf("bowling card has %d lines, want 2:\n%s", len(bowlingLines)-1, out)
	}
}
