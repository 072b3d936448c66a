package cricket

import (
	"errors"
	"fmt"
	"sort"
)

// Phase is the innings lifecycle: NotStarted -> InProgress -> Complete.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseComplete
)

// BatterCard is one batter's live figures.
type BatterCard struct {
	Player  *Player       `json:"-"`
	Name    string        `json:"name"`
	Runs    int           `json:"runs"`
	Balls   int           `json:"balls"`
	Fours   int           `json:"fours"`
	Sixes   int           `json:"sixes"`
	Out     bool          `json:"out"`
	Howout  DismissalType `json:"howout,omitempty"`
	Retired bool          `json:"retired,omitempty"`

	// RetiredOnce never flips back; a batter retires at most once.
	RetiredOnce bool `json:"retired_once,omitempty"`
}

// BowlerCard is one bowler's live figures. Balls counts legal deliveries
// only; penalty runs still land in Runs.
type BowlerCard struct {
	Player  *Player `json:"-"`
	Name    string  `json:"name"`
	Balls   int     `json:"balls"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Maidens int     `json:"maidens"`
}

// Overs renders the bowler's figures in overs form, e.g. "3.2".
func (c BowlerCard) Overs(ballsPerOver int) string {
	if c.Balls == 0 {
		return "0"
	}
	return fmt.Sprintf("%d.%d", c.Balls/ballsPerOver, c.Balls%ballsPerOver)
}

// FallOfWicket is one ordered entry of the FOW log.
type FallOfWicket struct {
	Wicket int           `json:"wicket"`
	Score  int           `json:"score"`
	Over   string        `json:"over"` // "over.ball" of the dismissal
	Batter string        `json:"batter"`
	Runs   int           `json:"runs"`
	Balls  int           `json:"balls"`
	How    DismissalType `json:"how"`
}

// BallEvent is one entry of the ball-by-ball log.
type BallEvent struct {
	Over    string          `json:"over"`
	Bowler  string          `json:"bowler"`
	Batter  string          `json:"batter"`
	Outcome DeliveryOutcome `json:"outcome"`
}

// CreaseLine is a batter-at-the-crease snapshot for over summaries.
type CreaseLine struct {
	Name  string `json:"name"`
	Runs  int    `json:"runs"`
	Balls int    `json:"balls"`
}

// OverSummary captures the state of play when an over closes (or the
// innings ends mid-over).
type OverSummary struct {
	Over     int            `json:"over"` // 1-based
	Label    string         `json:"label,omitempty"` // "", "partial", "end"
	Runs     int            `json:"runs"`
	Wickets  int            `json:"wickets"`
	OverRuns int            `json:"over_runs"`
	OverWkts int            `json:"over_wkts"`
	Bowler   BowlerCard     `json:"bowler"`
	Batters  []CreaseLine   `json:"batters"`
	FOW      []FallOfWicket `json:"fow,omitempty"`
}

// OutputOptions controls which logs the innings keeps. The engine only
// pays for detail the caller asked for.
type OutputOptions struct {
	BallByBall bool
	OverByOver bool
	Scorecard  bool
}

// Innings owns the mutable state for one innings and drives the resolver
// ball by ball. Nothing else writes to it.
type Innings struct {
	cfg      MatchConfig
	resolver *Resolver
	batting  *Team
	bowling  *Team
	target   int // 0 means no chase
	opts     OutputOptions

	phase      Phase
	Runs       int
	Wickets    int
	LegalBalls int

	overBall      int // legal balls so far in the current over
	overPenalties int
	freeHit       bool

	striker    int // index into Batters, -1 when innings over
	nonStriker int // -1 in last-batter mode
	toBat      []int
	retired    []int

	Batters  []BatterCard
	Bowlers  []BowlerCard
	rotation []int // indexes into Bowlers, over N is bowled by rotation[N % len]

	FOW           []FallOfWicket
	Log           []BallEvent
	OverSummaries []OverSummary

	// per-over markers for summaries and maiden detection
	overRunsStart    int
	overWktsStart    int
	overFOWStart     int
	bowlerRunsStart  int
	bowlerBallsStart int
}

// NewInnings validates the configuration and teams and sets up the
// opening pair and the bowling rotation. Config errors are fatal here,
// before a single ball is bowled.
func NewInnings(batting, bowling *Team, cfg MatchConfig, params ModelParams, model OutcomeModel, rng RandomSource, target int, opts OutputOptions) (*Innings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if batting == nil || bowling == nil {
		return nil, errors.New("cricket: both teams are required")
	}
	if batting.Size() < 2 {
		return nil, fmt.Errorf("cricket: batting side needs at least 2 players, got %d", batting.Size())
	}

	in := &Innings{
		cfg:      cfg,
		resolver: NewResolver(cfg, params, model, rng),
		batting:  batting,
		bowling:  bowling,
		target:   target,
		opts:     opts,
		phase:    PhaseNotStarted,
	}

	in.Batters = make([]BatterCard, batting.Size())
	for i := range batting.Players {
		in.Batters[i] = BatterCard{Player: &batting.Players[i], Name: batting.Players[i].Name}
	}
	in.Bowlers = make([]BowlerCard, bowling.Size())
	for i := range bowling.Players {
		in.Bowlers[i] = BowlerCard{Player: &bowling.Players[i], Name: bowling.Players[i].Name}
	}

	rotation, err := selectRotation(bowling, cfg.MaxBowlers)
	if err != nil {
		return nil, err
	}
	in.rotation = rotation

	in.striker = 0
	in.nonStriker = 1
	for i := 2; i < batting.Size(); i++ {
		in.toBat = append(in.toBat, i)
	}
	return in, nil
}

// selectRotation picks up to max bowlers, never the keeper, preferring
// players with bowling history (most historical overs first, batting order
// as the tie-break). The pick is deterministic so a seeded match replays.
func selectRotation(bowling *Team, max int) ([]int, error) {
	var idx []int
	for i := range bowling.Players {
		if bowling.Players[i].ID == bowling.KeeperID {
			continue
		}
		idx = append(idx, i)
	}
	if len(idx) == 0 {
		return nil, errors.New("cricket: no eligible bowlers")
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return bowling.Players[idx[a]].Stats.OversBowled > bowling.Players[idx[b]].Stats.OversBowled
	})
	if len(idx) > max {
		idx = idx[:max]
	}
	return idx, nil
}

func (in *Innings) Phase() Phase { return in.phase }

// Overs renders the innings progress, e.g. "13.4".
func (in *Innings) Overs() string { return in.cfg.OversString(in.LegalBalls) }

// Target returns the chase target, 0 for a first innings.
func (in *Innings) Target() int { return in.target }

// Play runs the innings to completion.
func (in *Innings) Play() error {
	if in.phase == PhaseComplete {
		return errors.New("cricket: innings already complete")
	}
	in.phase = PhaseInProgress
	in.markOverStart()
	for in.phase == PhaseInProgress {
		in.step()
	}
	if in.overBall > 0 {
		label := "partial"
		if len(in.notOutIndexes()) == 0 {
			label = "end"
		}
		in.recordOverSummary(label)
	}
	return nil
}

func (in *Innings) currentBowler() *BowlerCard {
	over := in.LegalBalls / in.cfg.BallsPerOver
	return &in.Bowlers[in.rotation[over%len(in.rotation)]]
}

func (in *Innings) markOverStart() {
	b := in.currentBowler()
	in.overRunsStart = in.Runs
	in.overWktsStart = in.Wickets
	in.overFOWStart = len(in.FOW)
	in.bowlerRunsStart = b.Runs
	in.bowlerBallsStart = b.Balls
}

// ballLabel is the "over.ball" position of the delivery about to be
// bowled, counting the in-progress ball.
func (in *Innings) ballLabel() string {
	return fmt.Sprintf("%d.%d", in.LegalBalls/in.cfg.BallsPerOver, in.overBall+1)
}

func (in *Innings) lastBatterMode() bool { return in.nonStriker < 0 }

// step resolves and applies exactly one delivery.
func (in *Innings) step() {
	bowler := in.currentBowler()
	striker := &in.Batters[in.striker]
	lastMode := in.lastBatterMode()

	facts := BallFacts{
		Striker:        striker.Player,
		StrikerRuns:    striker.Runs,
		StrikerBalls:   striker.Balls,
		AlreadyRetired: striker.RetiredOnce,
		Bowler:         bowler.Player,
		KeeperID:       in.bowling.KeeperID,
		FreeHit:        in.freeHit,
		OverPenalties:  in.overPenalties,
		FinalOver:      in.LegalBalls/in.cfg.BallsPerOver == in.cfg.BallsPerInnings/in.cfg.BallsPerOver-1,
		LastBatter:     lastMode,
	}
	if !lastMode {
		facts.NonStriker = in.Batters[in.nonStriker].Player
	}

	out := in.resolver.Resolve(facts)

	if in.opts.BallByBall {
		in.Log = append(in.Log, BallEvent{
			Over:    in.ballLabel(),
			Bowler:  bowler.Name,
			Batter:  striker.Name,
			Outcome: out,
		})
	}

	if !out.Legal {
		in.applyPenalty(striker, bowler, out)
		return
	}

	striker.Balls++
	bowler.Balls++
	if out.FreeHitUsed {
		in.freeHit = false
	}

	if out.Dismissal != nil {
		in.applyDismissal(bowler, out.Dismissal)
	} else {
		in.applyRuns(striker, bowler, out)
	}

	in.closeBall()
}

func (in *Innings) applyPenalty(striker *BatterCard, bowler *BowlerCard, out DeliveryOutcome) {
	in.Runs += out.PenaltyRuns
	bowler.Runs += out.PenaltyRuns
	// penalty runs count toward the batter's balls faced, never toward
	// the over's legal-ball quota
	striker.Balls++
	in.overPenalties++
	if out.FreeHitArmed {
		in.freeHit = true
	}
	if in.target > 0 && in.Runs >= in.target {
		in.finish()
	}
}

func (in *Innings) applyRuns(striker *BatterCard, bowler *BowlerCard, out DeliveryOutcome) {
	in.Runs += out.Runs
	striker.Runs += out.Runs
	switch out.Runs {
	case 4:
		striker.Fours++
	case 6:
		striker.Sixes++
	}
	bowler.Runs += out.Runs

	if out.RetireStriker && !striker.RetiredOnce {
		in.retireStriker()
	}
	if out.SwapStrike && !in.lastBatterMode() {
		in.striker, in.nonStriker = in.nonStriker, in.striker
	}
}

func (in *Innings) applyDismissal(bowler *BowlerCard, d *Dismissal) {
	in.Wickets++

	victim := in.striker
	if d.BatterID != in.Batters[in.striker].Player.ID && !in.lastBatterMode() {
		victim = in.nonStriker
	}
	card := &in.Batters[victim]
	card.Out = true
	card.Howout = d.Type

	if d.Type != DismissalRunOut {
		bowler.Wickets++
	}

	in.FOW = append(in.FOW, FallOfWicket{
		Wicket: in.Wickets,
		Score:  in.Runs,
		Over:   in.ballLabel(),
		Batter: card.Name,
		Runs:   card.Runs,
		Balls:  card.Balls,
		How:    d.Type,
	})

	if next, ok := in.nextBatter(); ok {
		if victim == in.striker {
			in.striker = next
		} else {
			in.nonStriker = next
		}
		return
	}

	// no replacement left
	survivors := in.notOutIndexes()
	switch {
	case len(survivors) == 1 && in.cfg.LastBatterStands && !in.lastBatterMode():
		in.striker = survivors[0]
		in.nonStriker = -1
	default:
		in.finish()
	}
}

// nextBatter pops the front of the yet-to-bat queue, falling back to the
// retired queue once everyone else has batted.
func (in *Innings) nextBatter() (int, bool) {
	if len(in.toBat) > 0 {
		next := in.toBat[0]
		in.toBat = in.toBat[1:]
		return next, true
	}
	if len(in.retired) > 0 {
		next := in.retired[0]
		in.retired = in.retired[1:]
		in.Batters[next].Retired = false
		return next, true
	}
	return -1, false
}

// retireStriker sends the striker to the back of the queue and brings in
// a replacement. If nobody can replace them the retirement is moot and
// they bat on; RetiredOnce still sticks so the rule never fires again.
func (in *Innings) retireStriker() {
	card := &in.Batters[in.striker]
	card.RetiredOnce = true

	var next int
	switch {
	case len(in.toBat) > 0:
		next = in.toBat[0]
		in.toBat = in.toBat[1:]
	case len(in.retired) > 0:
		next = in.retired[0]
		in.retired = in.retired[1:]
		in.Batters[next].Retired = false
	default:
		return
	}

	card.Retired = true
	in.retired = append(in.retired, in.striker)
	in.striker = next
}

// notOutIndexes lists every batter still available, retired included.
func (in *Innings) notOutIndexes() []int {
	var alive []int
	for i := range in.Batters {
		if !in.Batters[i].Out {
			alive = append(alive, i)
		}
	}
	return alive
}

// closeBall does the legal-ball accounting shared by run and wicket
// deliveries: the over quota, target short-circuit, and over rollover.
func (in *Innings) closeBall() {
	in.LegalBalls++
	in.overBall++

	if in.phase == PhaseComplete {
		// dismissal ended the innings; the closing summary is Play's job
		return
	}
	if in.target > 0 && in.Runs >= in.target {
		in.finish()
		return
	}
	if in.overBall == in.cfg.BallsPerOver {
		in.closeOver()
	}
	if in.LegalBalls >= in.cfg.BallsPerInnings {
		in.finish()
	}
}

func (in *Innings) closeOver() {
	bowler := in.currentBowlerForSummary()
	if bowler.Balls-in.bowlerBallsStart == in.cfg.BallsPerOver && bowler.Runs == in.bowlerRunsStart {
		bowler.Maidens++
	}
	in.recordOverSummary("")

	if !in.lastBatterMode() {
		in.striker, in.nonStriker = in.nonStriker, in.striker
	}

	in.overBall = 0
	in.overPenalties = 0
	in.markOverStart()
}

// currentBowlerForSummary is the bowler of the over just completed; the
// legal-ball counter has already moved on.
func (in *Innings) currentBowlerForSummary() *BowlerCard {
	over := (in.LegalBalls - 1) / in.cfg.BallsPerOver
	return &in.Bowlers[in.rotation[over%len(in.rotation)]]
}

func (in *Innings) finish() {
	in.phase = PhaseComplete
}

func (in *Innings) recordOverSummary(label string) {
	if !in.opts.OverByOver && !in.opts.BallByBall {
		return
	}
	over := (in.LegalBalls - 1) / in.cfg.BallsPerOver

	var crease []CreaseLine
	if in.striker >= 0 && !in.Batters[in.striker].Out {
		s := in.Batters[in.striker]
		crease = append(crease, CreaseLine{Name: s.Name, Runs: s.Runs, Balls: s.Balls})
	}
	if !in.lastBatterMode() && in.nonStriker >= 0 && !in.Batters[in.nonStriker].Out {
		ns := in.Batters[in.nonStriker]
		crease = append(crease, CreaseLine{Name: ns.Name, Runs: ns.Runs, Balls: ns.Balls})
	}

	in.OverSummaries = append(in.OverSummaries, OverSummary{
		Over:     over + 1,
		Label:    label,
		Runs:     in.Runs,
		Wickets:  in.Wickets,
		OverRuns: in.Runs - in.overRunsStart,
		OverWkts: in.Wickets - in.overWktsStart,
		Bowler:   *in.currentBowlerForSummary(),
		Batters:  crease,
		FOW:      append([]FallOfWicket(nil), in.FOW[in.overFOWStart:]...),
	})
}
