package cricket

// Penalty kinds. Only a no-ball arms the free hit.
const (
	PenaltyWide   = "wide"
	PenaltyNoBall = "no ball"
)

// DismissalType is the fixed taxonomy of ways a batter gets out.
type DismissalType string

const (
	DismissalBowled        DismissalType = "Bowled"
	DismissalCaught        DismissalType = "Caught"
	DismissalCaughtBowled  DismissalType = "Caught & Bowled"
	DismissalLBW           DismissalType = "LBW"
	DismissalStumped       DismissalType = "Stumped"
	DismissalRunOut        DismissalType = "Run Out"
)

// dismissalTable is the cumulative pick over the taxonomy.
// Caught-and-bowled and lbw take their share from bowled/caught.
var dismissalTable = []struct {
	upTo float64
	mode DismissalType
}{
	{0.30, DismissalBowled},
	{0.57, DismissalCaught},
	{0.62, DismissalCaughtBowled},
	{0.75, DismissalLBW},
	{0.88, DismissalStumped},
	{1.00, DismissalRunOut},
}

// Dismissal describes one wicket. BowlerID is empty for run-outs;
// FielderID is the keeper for stumpings.
type Dismissal struct {
	Type      DismissalType `json:"type"`
	BatterID  string        `json:"batter_id"`
	BowlerID  string        `json:"bowler_id,omitempty"`
	FielderID string        `json:"fielder_id,omitempty"`
}

// DeliveryOutcome is the immutable record of one resolved ball. The
// resolver produces it; the innings state machine applies it.
type DeliveryOutcome struct {
	Legal       bool       `json:"legal"`
	Penalty     string     `json:"penalty,omitempty"`
	PenaltyRuns int        `json:"penalty_runs,omitempty"`
	Runs        int        `json:"runs"`
	Dismissal   *Dismissal `json:"dismissal,omitempty"`

	// SwapStrike tells the state machine to rotate strike for this ball
	// (odd runs outside last-batter mode). Over-boundary rotation is the
	// state machine's own business.
	SwapStrike bool `json:"swap_strike,omitempty"`

	// FreeHitArmed means the next legal delivery is a free hit.
	FreeHitArmed bool `json:"free_hit_armed,omitempty"`
	// FreeHitUsed means this delivery consumed an armed free hit.
	FreeHitUsed bool `json:"free_hit_used,omitempty"`

	// RetireStriker marks the striker as reaching the retirement
	// threshold on this ball.
	RetireStriker bool `json:"retire_striker,omitempty"`
}

// BallFacts is the snapshot of innings state the resolver needs for one
// delivery. The state machine guarantees it is well formed; a missing
// striker or bowler here is a bug upstream.
type BallFacts struct {
	Striker        *Player
	StrikerRuns    int
	StrikerBalls   int
	AlreadyRetired bool
	NonStriker     *Player // nil in last-batter mode
	Bowler         *Player
	KeeperID       string
	FreeHit        bool
	OverPenalties  int // penalties already called this over
	FinalOver      bool
	LastBatter     bool
}

// Resolver decides what happens on each ball. It holds no mutable match
// state; everything it needs arrives in BallFacts and one seeded random
// source.
type Resolver struct {
	cfg    MatchConfig
	params ModelParams
	model  OutcomeModel
	rng    RandomSource
}

func NewResolver(cfg MatchConfig, params ModelParams, model OutcomeModel, rng RandomSource) *Resolver {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Resolver{cfg: cfg, params: params, model: model, rng: rng}
}

// Resolve decides exactly one delivery. Draw order is fixed (penalty,
// wicket, dismissal mode, runs) so a given seed replays byte-identically.
func (r *Resolver) Resolve(f BallFacts) DeliveryOutcome {
	if f.Striker == nil || f.Bowler == nil {
		panic("cricket: resolver called without striker or bowler")
	}

	// 1) penalty check: wide or no-ball
	if r.cfg.PenaltyProb > 0 && r.rng.Float64() < r.cfg.PenaltyProb {
		kind := PenaltyNoBall
		if r.rng.Float64() < r.params.WideShare {
			kind = PenaltyWide
		}
		runs := 3
		if f.OverPenalties == 0 || f.FinalOver {
			runs = 1
		}
		return DeliveryOutcome{
			Legal:        false,
			Penalty:      kind,
			PenaltyRuns:  runs,
			FreeHitArmed: kind == PenaltyNoBall && r.cfg.FreeHits,
		}
	}

	form := LiveForm{Runs: f.StrikerRuns, Balls: f.StrikerBalls}

	// 2) dismissal roll, skipped entirely on a free hit
	if !f.FreeHit {
		pw := r.model.WicketProb(&f.Striker.Stats, &f.Bowler.Stats, form)
		if r.rng.Float64() < pw {
			return DeliveryOutcome{Legal: true, Dismissal: r.pickDismissal(f)}
		}
	}

	// 3) run roll
	dist := r.model.RunDist(&f.Striker.Stats, &f.Bowler.Stats, form)
	if f.LastBatter {
		dist = dist.EvenOnly(r.params.LastBatterDotShare)
	}
	runs := dist.Sample(r.rng)

	out := DeliveryOutcome{
		Legal:       true,
		Runs:        runs,
		SwapStrike:  runs%2 == 1 && !f.LastBatter,
		FreeHitUsed: f.FreeHit,
	}

	// 4) retirement check: first threshold crossing only
	if t := r.cfg.RetirementThreshold; t > 0 && !f.AlreadyRetired && !f.LastBatter {
		if f.StrikerRuns+runs >= t {
			out.RetireStriker = true
		}
	}
	return out
}

func (r *Resolver) pickDismissal(f BallFacts) *Dismissal {
	pick := r.rng.Float64()
	mode := dismissalTable[len(dismissalTable)-1].mode
	for _, row := range dismissalTable {
		if pick < row.upTo {
			mode = row.mode
			break
		}
	}

	d := &Dismissal{Type: mode, BatterID: f.Striker.ID, BowlerID: f.Bowler.ID}
	switch mode {
	case DismissalStumped:
		d.FielderID = f.KeeperID
	case DismissalRunOut:
		d.BowlerID = ""
		if !f.LastBatter && f.NonStriker != nil && r.rng.Float64() < r.params.RunOutNonStriker {
			d.BatterID = f.NonStriker.ID
		}
	}
	return d
}
