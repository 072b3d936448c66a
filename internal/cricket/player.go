package cricket

// PlayerStats is a player's immutable historical record. Rate stats are
// pointers: a nil field means the stat was never recorded, which is distinct
// from a recorded zero. A player with no meaningful history is "statless"
// and every derived quantity falls back to a documented constant instead of
// blowing up.
type PlayerStats struct {
	Matches    int      `json:"matches"`
	Runs       float64  `json:"runs"`
	BallsFaced float64  `json:"balls_faced"`
	StrikeRate *float64 `json:"strike_rate,omitempty"`
	BatAvg     *float64 `json:"bat_avg,omitempty"`
	Fours      int      `json:"fours"`
	Sixes      int      `json:"sixes"`

	OversBowled  float64  `json:"overs_bowled"`
	RunsConceded float64  `json:"runs_conceded"`
	Wickets      int      `json:"wickets"`
	Economy      *float64 `json:"economy,omitempty"`
	BowlAvg      *float64 `json:"bowl_avg,omitempty"`
}

// HasBowled reports whether the player has any recorded bowling history.
func (s PlayerStats) HasBowled() bool { return s.OversBowled > 0 }

type Player struct {
	ID    string      `json:"player_id"`
	Name  string      `json:"player_name"`
	Stats PlayerStats `json:"stats"`
}

// Team is an ordered batting lineup with a designated captain and keeper.
// The keeper never enters the bowling rotation and is credited for stumpings.
type Team struct {
	Name      string   `json:"team_name"`
	Players   []Player `json:"players"`
	CaptainID string   `json:"captain_id"`
	KeeperID  string   `json:"keeper_id"`
}

func (t *Team) Size() int { return len(t.Players) }

// ByID returns the player with the given id, or nil.
func (t *Team) ByID(id string) *Player {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}
