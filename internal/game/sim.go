package game

import (
	"fmt"
	"math/rand"
)

// Possession records which side controls the ball.
type Possession int

const (
	PossNone Possession = iota
	PossOurs
	PossTheirs
)

func (p Possession) String() string {
	switch p {
	case PossOurs:
		return "ours"
	case PossTheirs:
		return "theirs"
	default:
		return "loose"
	}
}

// SimPlayer is one player on the simulated pitch.
type SimPlayer struct {
	State    AgentState
	Memory   *Memory
	Decision Decision
	Command  Command

	mover *BasicMove
}

// Sim is a headless match fragment: our team defends against a dribbling
// opponent. Each of our players decides from its own snapshot.
type Sim struct {
	Params     Params
	Formation  FormationType
	Ball       Ball
	Ours       []*SimPlayer // slot per uniform number
	Theirs     []*SimPlayer
	OurGoal    Vec2
	Omniscient bool // skip perception; every snapshot sees everyone
	SimLog     *SimLog
	Reporter   *Reporter

	cycle      int
	rng        *rand.Rand
	jitter     float64
	types      map[int]PlayerType
	possession Possession
	conceded   bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // params, seed, verbose, player types; applied first
	simOptPlayer                      // add players and the ball
	simOptTune                        // per-player adjustments after everyone exists
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithParams replaces the default decision parameters.
func WithParams(p Params) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Params = p
	}}
}

// WithSeed sets the RNG seed used for position jitter.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation jitter
	}}
}

// WithJitter perturbs every starting position by up to m metres per axis.
func WithJitter(m float64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.jitter = m
	}}
}

// WithVerbose enables per-cycle verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.SimLog = NewSimLog(v)
	}}
}

// WithFormation sets our formation shape.
func WithFormation(ft FormationType) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Formation = ft
	}}
}

// WithOmniscient disables per-agent perception.
func WithOmniscient(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Omniscient = v
	}}
}

// WithPlayerType registers or overrides a heterogeneous player type.
func WithPlayerType(pt PlayerType) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.types[pt.ID] = pt
	}}
}

// WithBall places the ball.
func WithBall(x, y, vx, vy float64) SimOption {
	return SimOption{simOptPlayer, func(s *Sim) {
		s.Ball = Ball{Pos: V(x, y), Vel: V(vx, vy), Decay: defaultBallDecay}
	}}
}

// WithTeammate adds one of our players facing bodyDeg.
func WithTeammate(unum int, x, y, bodyDeg float64) SimOption {
	return SimOption{simOptPlayer, func(s *Sim) {
		s.addPlayer(SideOurs, unum, V(x, y), bodyDeg)
	}}
}

// WithOpponent adds an opposing player facing bodyDeg.
func WithOpponent(unum int, x, y, bodyDeg float64) SimOption {
	return SimOption{simOptPlayer, func(s *Sim) {
		s.addPlayer(SideTheirs, unum, V(x, y), bodyDeg)
	}}
}

// WithVelocity sets a player's starting velocity.
func WithVelocity(side Side, unum int, vx, vy float64) SimOption {
	return SimOption{simOptTune, func(s *Sim) {
		if p := s.Player(side, unum); p != nil {
			p.State.Vel = V(vx, vy)
		}
	}}
}

// WithType assigns a registered player type to a player.
func WithType(side Side, unum, typeID int) SimOption {
	return SimOption{simOptTune, func(s *Sim) {
		if p := s.Player(side, unum); p != nil {
			pt := s.playerType(typeID)
			p.State.Type = &pt
		}
	}}
}

// NewSim constructs a Sim from the given options in ordered passes:
//  1. Infrastructure (params, seed, verbose, player types)
//  2. Players and ball
//  3. Per-player tuning, then jitter
func NewSim(opts ...SimOption) *Sim {
	s := &Sim{
		Params:    DefaultParams(),
		Formation: Formation442,
		Ball:      Ball{Decay: defaultBallDecay},
		Ours:      make([]*SimPlayer, TeamSize),
		Theirs:    make([]*SimPlayer, TeamSize),
		OurGoal:   V(-PitchHalfLength, 0),
		SimLog:    NewSimLog(false),
		Reporter:  NewReporter(),
		rng:       rand.New(rand.NewSource(1)), // #nosec G404 -- simulation default
		types:     map[int]PlayerType{},
	}
	for id, pt := range playerTypes {
		s.types[id] = pt
	}
	for _, kind := range []simOptionKind{simOptInfra, simOptPlayer, simOptTune} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(s)
			}
		}
	}
	for _, p := range s.Ours {
		if p != nil {
			p.mover = NewBasicMove(s.Params, s.Formation)
		}
	}
	s.applyJitter()
	s.possession = s.currentPossession()
	return s
}

func (s *Sim) playerType(id int) PlayerType {
	if pt, ok := s.types[id]; ok {
		return pt
	}
	return DefaultPlayerType()
}

func (s *Sim) addPlayer(side Side, unum int, pos Vec2, bodyDeg float64) {
	if unum < 1 || unum > TeamSize {
		return
	}
	pt := s.playerType(0)
	p := &SimPlayer{
		State: AgentState{
			Unum: unum,
			Side: side,
			Pos:  pos,
			Body: normalizeAngle(deg2rad(bodyDeg)),
			Type: &pt,
		},
		Memory: NewMemory(),
	}
	if side == SideOurs {
		s.Ours[unum-1] = p
	} else {
		s.Theirs[unum-1] = p
	}
}

func (s *Sim) applyJitter() {
	if s.jitter <= 0 {
		return
	}
	for _, p := range s.players() {
		p.State.Pos.X += (s.rng.Float64()*2 - 1) * s.jitter
		p.State.Pos.Y += (s.rng.Float64()*2 - 1) * s.jitter
	}
}

// Player returns the player in the given slot, or nil.
func (s *Sim) Player(side Side, unum int) *SimPlayer {
	if unum < 1 || unum > TeamSize {
		return nil
	}
	if side == SideOurs {
		return s.Ours[unum-1]
	}
	return s.Theirs[unum-1]
}

// players returns every player, ours first, in uniform order.
func (s *Sim) players() []*SimPlayer {
	out := make([]*SimPlayer, 0, 2*TeamSize)
	for _, team := range [][]*SimPlayer{s.Ours, s.Theirs} {
		for _, p := range team {
			if p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// Cycle returns the current simulation cycle.
func (s *Sim) Cycle() int {
	return s.cycle
}

// Possession returns the side currently controlling the ball.
func (s *Sim) Possession() Possession {
	return s.possession
}

// SnapshotFor builds the snapshot our player unum decides from. Player
// states are copied; the core cannot reach back into the Sim.
func (s *Sim) SnapshotFor(unum int) Snapshot {
	snap := Snapshot{
		Cycle:         s.cycle,
		Self:          unum,
		Ball:          s.Ball,
		OurGoal:       s.OurGoal,
		OpponentReach: OpponentReachUnknown,
	}
	p := s.Player(SideOurs, unum)
	if s.Omniscient || p == nil {
		snap.Teammates = copySlots(s.Ours)
		snap.Opponents = copySlots(s.Theirs)
	} else {
		snap.Teammates = p.Memory.Slots(SideOurs)
		snap.Opponents = p.Memory.Slots(SideTheirs)
	}
	if p != nil {
		self := p.State
		snap.Teammates[unum-1] = &self
	}
	return snap
}

func copySlots(team []*SimPlayer) []*AgentState {
	slots := make([]*AgentState, TeamSize)
	for i, p := range team {
		if p != nil {
			st := p.State
			slots[i] = &st
		}
	}
	return slots
}

// RunCycles advances the simulation n cycles.
func (s *Sim) RunCycles(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// RunUntil advances up to maxCycles, stopping early if predicate returns
// true. Returns the cycle at which the predicate was satisfied, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxCycles int) int {
	for i := 0; i < maxCycles; i++ {
		s.Step()
		if predicate(s) {
			return s.cycle
		}
	}
	return -1
}

// Step runs one cycle: perceive, decide, act, move, resolve the ball.
func (s *Sim) Step() {
	s.cycle++
	cycle := s.cycle

	// 1. SENSE
	if !s.Omniscient {
		s.perceive()
	}

	// 2. THINK (ours, each from its own snapshot)
	var planned []ObservedAssignment
	for _, p := range s.Ours {
		if p == nil {
			continue
		}
		snap := s.SnapshotFor(p.State.Unum)
		prev := p.Decision.Action.Behavior
		p.Decision = p.mover.Decide(&snap)
		p.Command = Drive(&p.State, p.Decision.Action)
		s.logDecision(p, prev)
		if a := p.Decision.Assignment; a != nil {
			planned = append(planned, ObservedAssignment{
				Observer: p.State.Unum,
				Blocker:  a.Blocker,
				OppReach: a.Dribble.StartCycle,
			})
		}
	}
	s.decideOpponents()

	// 3. ACT
	s.resolveTackles()
	for _, p := range s.players() {
		ApplyCommand(&p.State, p.Command)
		StepAgent(&p.State)
		s.SimLog.AddVerbose(cycle, p.State.Label(), p.State.Side.String(), "move", "position",
			fmt.Sprintf("(%.2f,%.2f) %s", p.State.Pos.X, p.State.Pos.Y, p.Command.Kind), 0)
	}
	StepBall(&s.Ball)

	// 4. BALL
	s.updatePossession()

	s.Reporter.Observe(CycleReport{
		Cycle:       cycle,
		Assignments: planned,
		Possession:  s.possession,
	})
}

func (s *Sim) perceive() {
	all := s.players()
	for _, p := range s.Ours {
		if p == nil {
			continue
		}
		cone := NewViewCone(p.State.Body)
		var seen []AgentState
		for _, o := range all {
			if o == p {
				continue
			}
			if cone.Sees(p.State.Pos, o.State.Pos) {
				seen = append(seen, o.State)
			}
		}
		before := p.Memory.Slots(SideOurs)
		p.Memory.Observe(seen, s.cycle)
		after := p.Memory.Slots(SideOurs)
		s.SimLog.AddVerbose(s.cycle, p.State.Label(), "ours", "percept", "visible",
			fmt.Sprintf("%d players", len(seen)), float64(len(seen)))
		if s.cycle == 1 {
			continue
		}
		for i := range after {
			switch {
			case before[i] != nil && after[i] == nil:
				s.SimLog.Add(s.cycle, p.State.Label(), "ours", "percept", "lost",
					fmt.Sprintf("teammate %d dropped from memory", i+1), float64(i+1))
			case before[i] == nil && after[i] != nil:
				s.SimLog.Add(s.cycle, p.State.Label(), "ours", "percept", "regained",
					fmt.Sprintf("teammate %d in view", i+1), float64(i+1))
			}
		}
	}
}

func (s *Sim) logDecision(p *SimPlayer, prev Behavior) {
	label := p.State.Label()
	act := p.Decision.Action
	if act.Behavior != prev {
		s.SimLog.Add(s.cycle, label, "ours", "dispatch", "behavior",
			fmt.Sprintf("%s → %s", prev, act.Behavior), 0)
	}
	if act.Behavior == BehaviorIntercept {
		s.SimLog.AddVerbose(s.cycle, label, "ours", "intercept", "chase",
			fmt.Sprintf("self=%d mate=%d opp=%d", p.Decision.Table.Self, p.Decision.Table.Teammate, p.Decision.Table.Opponent),
			float64(p.Decision.Table.Self))
	}
	a := p.Decision.Assignment
	if a == nil {
		return
	}
	if act.Behavior == BehaviorBlock {
		e, _ := a.Entry(a.Blocker)
		s.SimLog.Add(s.cycle, label, "ours", "block", "assign", a.String(), float64(e.Cycle))
	} else if !a.HasBlocker() {
		s.SimLog.Add(s.cycle, label, "ours", "block", "none",
			fmt.Sprintf("opp reach %d, nobody in time", a.Dribble.StartCycle), 0)
	}
	if s.SimLog.Verbose() {
		for _, e := range a.Entries {
			if !e.Reachable() {
				continue
			}
			s.SimLog.AddVerbose(s.cycle, label, "ours", "block", "candidate",
				fmt.Sprintf("unum %d c=%d reach=%d at (%.1f,%.1f)", e.Unum, e.Cycle, e.Reach, e.Point.X, e.Point.Y),
				float64(e.Cycle))
		}
	}
}

// decideOpponents drives the opposition: the ball holder dribbles toward
// our goal at the assumed dribble speed, the fastest other opponent chases
// a loose ball, everyone else holds.
func (s *Sim) decideOpponents() {
	est := NewReachEstimator(s.Params)
	holder := s.holder(s.Theirs)
	chaser, best := (*SimPlayer)(nil), Unreachable
	if holder == nil && s.possession != PossOurs {
		for _, p := range s.Theirs {
			if p == nil {
				continue
			}
			if c := ballReachCycle(est, &p.State, s.Ball, s.Params.InterceptMaxCycle); c < best {
				chaser, best = p, c
			}
		}
	}
	for _, p := range s.Theirs {
		if p == nil {
			continue
		}
		switch {
		case p == holder && s.possession != PossOurs:
			heading := HeadingTo(s.Ball.Pos, s.OurGoal)
			s.Ball.Vel = Polar(s.Params.DribbleSpeed, heading)
			next := s.Ball.Pos.Add(s.Ball.Vel)
			p.Command, _ = goToPoint(&p.State, next, 0.3, maxDashPower, s.Params.TurnToleranceDeg)
		case p == chaser:
			p.Command, _ = goToPoint(&p.State, s.Ball.InertiaPoint(best), 0.5, maxDashPower, s.Params.TurnToleranceDeg)
		default:
			p.Command = Command{}
		}
	}
}

// resolveTackles gives us the ball if any of our tacklers is close enough.
func (s *Sim) resolveTackles() {
	for _, p := range s.Ours {
		if p == nil || p.Command.Kind != CmdTackle {
			continue
		}
		if p.State.Pos.Dist(s.Ball.Pos) <= s.Params.TackleDist {
			s.Ball.Pos = p.State.Pos
			s.Ball.Vel = Vec2{}
			s.SimLog.Add(s.cycle, p.State.Label(), "ours", "ball", "tackle",
				fmt.Sprintf("won at (%.1f,%.1f)", s.Ball.Pos.X, s.Ball.Pos.Y), 0)
			s.setPossession(PossOurs, p.State.Label())
			return
		}
	}
}

// holder returns the player of team closest to the ball among those who
// can kick it, or nil.
func (s *Sim) holder(team []*SimPlayer) *SimPlayer {
	var best *SimPlayer
	bestDist := 0.0
	for _, p := range team {
		if p == nil || !p.State.Kickable(s.Ball.Pos) {
			continue
		}
		d := p.State.Pos.Dist(s.Ball.Pos)
		if best == nil || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func (s *Sim) currentPossession() Possession {
	ours, theirs := s.holder(s.Ours), s.holder(s.Theirs)
	switch {
	case ours != nil && theirs == nil:
		return PossOurs
	case theirs != nil && ours == nil:
		return PossTheirs
	case ours == nil && theirs == nil:
		return PossNone
	}
	return s.possession
}

func (s *Sim) updatePossession() {
	if !s.conceded && s.Ball.Pos.X < -PitchHalfLength && s.Ball.Pos.Y > -7 && s.Ball.Pos.Y < 7 {
		s.conceded = true
		s.Ball.Vel = Vec2{}
		s.SimLog.Add(s.cycle, "--", "--", "ball", "conceded",
			fmt.Sprintf("ball crossed our line at y=%.1f", s.Ball.Pos.Y), 0)
	}
	next := s.currentPossession()
	if s.possession == PossOurs && next != PossTheirs {
		// Once won, the ball stays ours until an opponent has it alone.
		return
	}
	label := "--"
	if h := s.holder(s.Ours); next == PossOurs && h != nil {
		label = h.State.Label()
	} else if h := s.holder(s.Theirs); next == PossTheirs && h != nil {
		label = h.State.Label()
	}
	s.setPossession(next, label)
}

func (s *Sim) setPossession(next Possession, label string) {
	if next == s.possession {
		return
	}
	s.SimLog.Add(s.cycle, label, "--", "ball", "possession",
		fmt.Sprintf("%s → %s", s.possession, next), 0)
	s.possession = next
}

// BallWon reports whether our team has taken the ball.
func (s *Sim) BallWon() bool {
	return s.possession == PossOurs
}

// Conceded reports whether the ball has crossed our goal line.
func (s *Sim) Conceded() bool {
	return s.conceded
}
