// Package roster loads player summaries and saved team files. The JSON
// comes from a scraped stats export, so parsing is deliberately forgiving:
// numbers may arrive as strings, carry stray '*' markers, or be missing
// entirely. Missing stats become nil fields, never zero sentinels.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tbontb/cricket-sim/internal/cricket"
)

// Pool is the loaded player universe, with a short-id index so "7" and
// "0007" both resolve to "TBONTB_0007".
type Pool struct {
	players map[string]cricket.Player
	short   map[string]string
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// Load reads a players-summary JSON file into a Pool.
func Load(path string) (*Pool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read players summary: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("parse players summary: %w", err)
	}

	pool := &Pool{
		players: make(map[string]cricket.Player, len(rows)),
		short:   make(map[string]string),
	}
	for _, r := range rows {
		p, ok := parseRow(r)
		if !ok {
			continue
		}
		pool.players[p.ID] = p

		if m := trailingDigits.FindString(p.ID); m != "" {
			pool.short[m] = p.ID
			if n, err := strconv.Atoi(m); err == nil {
				pool.short[strconv.Itoa(n)] = p.ID
			}
		}
		pool.short[p.ID] = p.ID
	}
	return pool, nil
}

func parseRow(r map[string]any) (cricket.Player, bool) {
	rawID, ok := r["player_id"]
	if !ok || rawID == nil {
		return cricket.Player{}, false
	}

	// canonical string id like TBONTB_0001
	var id string
	switch v := rawID.(type) {
	case float64:
		id = fmt.Sprintf("TBONTB_%04d", int(v))
	default:
		id = fmt.Sprint(v)
	}

	return cricket.Player{
		ID:   id,
		Name: str(r["player_name"]),
		Stats: cricket.PlayerStats{
			Matches:      num(r["matches"], r["matches_played"]),
			Runs:         numF(r["runs"]),
			BallsFaced:   numF(r["balls_faced"]),
			StrikeRate:   optF(r["strike_rate"]),
			BatAvg:       optF(r["bat_avg"]),
			Fours:        num(r["4s"], r["fours"]),
			Sixes:        num(r["6s"], r["sixes"]),
			OversBowled:  numF(r["overs_bowled"]),
			RunsConceded: numF(r["runs_conceded"]),
			Wickets:      num(r["wickets"]),
			Economy:      optF(r["economy"]),
			BowlAvg:      optF(r["bowl_avg"]),
		},
	}, true
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// parseFloat handles numeric JSON values plus stringly numbers with stray
// characters like "123.4*".
func parseFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, "*", ""))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// optF keeps absence distinct from zero.
func optF(v any) *float64 {
	if f, ok := parseFloat(v); ok {
		return &f
	}
	return nil
}

func numF(v any) float64 {
	f, _ := parseFloat(v)
	return f
}

// num takes the first key that parses; callers pass aliases like "4s"
// then "fours".
func num(vs ...any) int {
	for _, v := range vs {
		if f, ok := parseFloat(v); ok {
			return int(f)
		}
	}
	return 0
}

// Resolve looks a player up by full or short id.
func (p *Pool) Resolve(id string) (cricket.Player, bool) {
	full, ok := p.short[id]
	if !ok {
		return cricket.Player{}, false
	}
	pl, ok := p.players[full]
	return pl, ok
}

func (p *Pool) Size() int { return len(p.players) }

// List returns the players in id order, so demo team picks are stable
// for a given seed.
func (p *Pool) List() []cricket.Player {
	out := make([]cricket.Player, 0, len(p.players))
	for _, pl := range p.players {
		out = append(out, pl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// teamFile mirrors the saved team JSON schema.
type teamFile struct {
	TeamName string `json:"team_name"`
	Team     []struct {
		PlayerID string `json:"player_id"`
	} `json:"team"`
	Captain      string `json:"captain"`
	Wicketkeeper string `json:"wicketkeeper"`
}

// LoadTeam reads a saved team file and resolves its players against the
// pool. Players missing from the pool are an error: a partly resolved
// lineup would silently change the batting order.
func LoadTeam(path string, pool *Pool) (*cricket.Team, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team file: %w", err)
	}
	var tf teamFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("parse team file: %w", err)
	}

	name := tf.TeamName
	if name == "" {
		base := strings.TrimSuffix(strings.TrimSuffix(path, ".json"), "/")
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		name = base
	}

	team := &cricket.Team{Name: name}
	for _, entry := range tf.Team {
		pl, ok := pool.Resolve(entry.PlayerID)
		if !ok {
			return nil, fmt.Errorf("team %s references unknown player %s", name, entry.PlayerID)
		}
		team.Players = append(team.Players, pl)
	}
	if len(team.Players) < 2 {
		return nil, fmt.Errorf("team %s has %d players, need at least 2", name, len(team.Players))
	}

	if full, ok := pool.short[tf.Captain]; ok {
		team.CaptainID = full
	}
	if full, ok := pool.short[tf.Wicketkeeper]; ok {
		team.KeeperID = full
	}
	return team, nil
}
