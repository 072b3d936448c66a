package roster

import (
	"fmt"

	"github.com/tbontb/cricket-sim/internal/cricket"
)

// DemoTeams deals two non-overlapping teams from the pool, for demo
// matches and the HTTP API where nobody picked a lineup. The shuffle
// draws from the caller's source, so a seeded run deals the same teams.
func DemoTeams(pool *Pool, size int, rng cricket.RandomSource) (*cricket.Team, *cricket.Team, error) {
	players := pool.List()
	if len(players) < 2*size {
		return nil, nil, fmt.Errorf("pool has %d players, need %d for two teams", len(players), 2*size)
	}

	// Fisher-Yates on top of the deterministic id ordering
	for i := len(players) - 1; i > 0; i-- {
		j := int(rng.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		players[i], players[j] = players[j], players[i]
	}

	a := buildDemoTeam("Demo Home XI", players[:size])
	b := buildDemoTeam("Demo Away XI", players[size:2*size])
	return a, b, nil
}

func buildDemoTeam(name string, players []cricket.Player) *cricket.Team {
	t := &cricket.Team{Name: name, Players: append([]cricket.Player(nil), players...)}
	t.CaptainID = t.Players[0].ID

	// hand the gloves to whoever bowls least
	keeper := 0
	for i := range t.Players {
		if t.Players[i].Stats.OversBowled < t.Players[keeper].Stats.OversBowled {
			keeper = i
		}
	}
	t.KeeperID = t.Players[keeper].ID
	return t
}
