// Package report renders completed innings for the terminal and exports
// matches as structured JSON. It only reads engine snapshots; all the
// numbers are decided before anything here runs.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/tbontb/cricket-sim/internal/cricket"
)

// Output modes, coarse to fine.
const (
	ModeScorecardOnly = "SCORECARD_ONLY"
	ModeOverByOver    = "OVER_BY_OVER"
	ModeBallByBall    = "BALL_BY_BALL"
)

// OptionsForMode maps a mode name onto the engine's output switches.
func OptionsForMode(mode string) (cricket.OutputOptions, error) {
	switch strings.ToUpper(mode) {
	case ModeScorecardOnly:
		return cricket.OutputOptions{Scorecard: true}, nil
	case ModeOverByOver:
		return cricket.OutputOptions{OverByOver: true, Scorecard: true}, nil
	case ModeBallByBall:
		return cricket.OutputOptions{BallByBall: true, OverByOver: true, Scorecard: true}, nil
	default:
		return cricket.OutputOptions{}, fmt.Errorf("unknown output mode: %s", mode)
	}
}

// Describe renders one delivery outcome as commentary text.
func Describe(out cricket.DeliveryOutcome) string {
	if !out.Legal {
		s := fmt.Sprintf("%s, +%d", strings.ToUpper(out.Penalty), out.PenaltyRuns)
		if out.FreeHitArmed {
			s += ", free hit coming"
		}
		return s
	}
	if out.Dismissal != nil {
		return fmt.Sprintf("OUT, %s", out.Dismissal.Type)
	}
	switch out.Runs {
	case 0:
		return "no run"
	case 1:
		return "1 run"
	case 4:
		return "FOUR"
	case 6:
		return "SIX"
	default:
		return fmt.Sprintf("%d runs", out.Runs)
	}
}

// WriteBallByBall prints the delivery log grouped by over, with an
// end-of-over footer from the stored summaries.
func WriteBallByBall(w io.Writer, in *cricket.Innings, cfg cricket.MatchConfig) {
	if len(in.Log) == 0 {
		return
	}
	summaries := make(map[int]cricket.OverSummary, len(in.OverSummaries))
	for _, s := range in.OverSummaries {
		summaries[s.Over] = s
	}

	current := -1
	for _, evt := range in.Log {
		var over int
		fmt.Sscanf(evt.Over, "%d.", &over)
		over++
		if over != current {
			if current > 0 {
				writeOverFooter(w, summaries, current, cfg)
			}
			fmt.Fprintf(w, "Over %d:\n", over)
			current = over
		}
		fmt.Fprintf(w, "%s - %s - to - %s - %s\n", evt.Over, evt.Bowler, evt.Batter, Describe(evt.Outcome))
	}
	if current > 0 {
		writeOverFooter(w, summaries, current, cfg)
	}
}

func writeOverFooter(w io.Writer, summaries map[int]cricket.OverSummary, over int, cfg cricket.MatchConfig) {
	s, ok := summaries[over]
	if !ok {
		return
	}
	fmt.Fprintf(w, "\nEnd of Over %d: %d/%d | %d %s | %d %s\n",
		over, s.Runs, s.Wickets,
		s.OverRuns, plural(s.OverRuns, "run"),
		s.OverWkts, plural(s.OverWkts, "wicket"))
	fmt.Fprintf(w, "Bowler: %s\n", bowlerLine(s.Bowler, cfg))
	writeCrease(w, s.Batters)
	writeFOW(w, s.FOW)
	fmt.Fprintln(w)
}

// WriteOverSummaries prints the over-by-over view. Suppressed when the
// ball-by-ball view is active, which already carries the same footers.
func WriteOverSummaries(w io.Writer, in *cricket.Innings, cfg cricket.MatchConfig, opts cricket.OutputOptions) {
	if !opts.OverByOver || opts.BallByBall {
		return
	}
	for _, s := range in.OverSummaries {
		label := ""
		if s.Label != "" {
			label = fmt.Sprintf(" (%s)", s.Label)
		}
		fmt.Fprintf(w, "Over %d%s: %d/%d\n", s.Over, label, s.Runs, s.Wickets)
		fmt.Fprintf(w, "Bowler: %s\n", bowlerLine(s.Bowler, cfg))
		writeCrease(w, s.Batters)
		writeFOW(w, s.FOW)
	}
}

func writeCrease(w io.Writer, crease []cricket.CreaseLine) {
	if len(crease) == 0 {
		return
	}
	lines := make([]string, len(crease))
	for i, c := range crease {
		lines[i] = fmt.Sprintf("%s %d* (%d)", c.Name, c.Runs, c.Balls)
	}
	fmt.Fprintf(w, "Batters: %s\n", strings.Join(lines, " | "))
}

func writeFOW(w io.Writer, fow []cricket.FallOfWicket) {
	if len(fow) == 0 {
		return
	}
	fmt.Fprintln(w, "FOW:")
	for _, f := range fow {
		fmt.Fprintf(w, "%s Wicket: %s %s %d(%d)\n", f.Over, f.Batter, f.How, f.Runs, f.Balls)
	}
}

func bowlerLine(b cricket.BowlerCard, cfg cricket.MatchConfig) string {
	return fmt.Sprintf("%s %s-%d-%d-%d", b.Name, b.Overs(cfg.BallsPerOver), b.Maidens, b.Runs, b.Wickets)
}

// WriteInningsSummary prints the scorecard for one innings.
func WriteInningsSummary(w io.Writer, teamName string, in *cricket.Innings, cfg cricket.MatchConfig) {
	fmt.Fprintf(w, "\n%s innings: %d / %d (%s Overs)\n", teamName, in.Runs, in.Wickets, in.Overs())

	fmt.Fprintln(w, "BATTING:")
	for _, b := range in.Batters {
		switch {
		case b.Out:
			fmt.Fprintf(w, "  %s: %d (%d) - %s\n", b.Name, b.Runs, b.Balls, b.Howout)
		case b.Balls > 0:
			status := "Not Out"
			if b.Retired {
				status = "Retired"
			}
			fmt.Fprintf(w, "  %s: %d* (%d) - %s\n", b.Name, b.Runs, b.Balls, status)
		default:
			fmt.Fprintf(w, "  %s: DNB\n", b.Name)
		}
	}

	fmt.Fprintln(w, "BOWLING:")
	for _, b := range in.Bowlers {
		if b.Balls == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s: %s-%d-%d-%d\n", b.Name, b.Overs(cfg.BallsPerOver), b.Maidens, b.Runs, b.Wickets)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
