package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tbontb/cricket-sim/internal/cricket"
)

// MatchExport is the structured boxscore written to disk. The ball log is
// only present when the simulation recorded one.
type MatchExport struct {
	MatchID string    `json:"match_id"`
	Date    time.Time `json:"date"`
	Seed    uint64    `json:"seed"`
	Target  int       `json:"target"`

	First  InningsExport       `json:"first_innings"`
	Second InningsExport       `json:"second_innings"`
	Result cricket.MatchResult `json:"result"`
}

type InningsExport struct {
	Team    string                 `json:"team"`
	Runs    int                    `json:"runs"`
	Wickets int                    `json:"wickets"`
	Balls   int                    `json:"balls"`
	Overs   string                 `json:"overs"`
	Batters []cricket.BatterCard   `json:"batsmen"`
	Bowlers []cricket.BowlerCard   `json:"bowlers"`
	FOW     []cricket.FallOfWicket `json:"fall_of_wickets,omitempty"`
	Balls_  []cricket.BallEvent    `json:"ball_by_ball,omitempty"`
}

// BuildExport flattens a completed match into the export schema.
func BuildExport(m *cricket.Match) MatchExport {
	return MatchExport{
		MatchID: uuid.NewString(),
		Date:    time.Now(),
		Seed:    m.Seed,
		Target:  m.Target,
		First:   buildInnings(m.HomeTeam, m.First),
		Second:  buildInnings(m.AwayTeam, m.Second),
		Result:  m.Result,
	}
}

func buildInnings(team string, in *cricket.Innings) InningsExport {
	exp := InningsExport{
		Team:    team,
		Runs:    in.Runs,
		Wickets: in.Wickets,
		Balls:   in.LegalBalls,
		Overs:   in.Overs(),
		Batters: in.Batters,
		FOW:     in.FOW,
		Balls_:  in.Log,
	}
	for _, b := range in.Bowlers {
		if b.Balls > 0 {
			exp.Bowlers = append(exp.Bowlers, b)
		}
	}
	return exp
}

// ExportMatch writes the match to dir with a timestamped filename and
// returns the full path.
func ExportMatch(dir string, m *cricket.Match) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	exp := BuildExport(m)
	name := fmt.Sprintf("match_%s_%s.json", exp.Date.Format("20060102_150405"), exp.MatchID[:8])
	path := filepath.Join(dir, name)

	b, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode match export: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write match export: %w", err)
	}
	return path, nil
}
