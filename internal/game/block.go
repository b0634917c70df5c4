package game

import "fmt"

// BlockReason explains a teammate's entry in an Assignment.
type BlockReason int

const (
	ReasonReachable BlockReason = iota // a candidate is reachable in time
	ReasonMissing                      // slot empty or identity mismatch
	ReasonExcluded                     // configured out (goalkeeper)
	ReasonExhausted                    // no candidate within the horizon is reachable in time
)

func (r BlockReason) String() string {
	switch r {
	case ReasonReachable:
		return "reachable"
	case ReasonMissing:
		return "missing"
	case ReasonExcluded:
		return "excluded"
	case ReasonExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// BlockEntry is one teammate's earliest feasible block. Cycle is
// Unreachable unless Reason is ReasonReachable.
type BlockEntry struct {
	Unum   int
	Cycle  int
	Point  Vec2
	Reach  int // estimator result at Cycle
	Reason BlockReason
}

// Reachable reports whether the entry holds a feasible block.
func (e BlockEntry) Reachable() bool {
	return e.Reason == ReasonReachable
}

// Assignment is the full result of one planning pass. Nothing in it
// survives into the next cycle.
type Assignment struct {
	Cycle      int
	Dribble    DribblePrediction
	Candidates []Candidate
	Entries    []BlockEntry // Entries[i] is uniform number i+1
	Blocker    int          // 0 when no teammate can block
}

// HasBlocker reports whether a blocker was selected.
func (a Assignment) HasBlocker() bool {
	return a.Blocker != 0
}

// IsBlocker reports whether unum is the selected blocker.
func (a Assignment) IsBlocker(unum int) bool {
	return a.Blocker != 0 && a.Blocker == unum
}

// Entry returns the entry for unum.
func (a Assignment) Entry(unum int) (BlockEntry, bool) {
	if unum < 1 || unum > len(a.Entries) {
		return BlockEntry{}, false
	}
	return a.Entries[unum-1], true
}

// Target returns the selected blocker's intercept point.
func (a Assignment) Target() (Vec2, bool) {
	e, ok := a.Entry(a.Blocker)
	if !ok || !e.Reachable() {
		return Vec2{}, false
	}
	return e.Point, true
}

func (a Assignment) String() string {
	if !a.HasBlocker() {
		return fmt.Sprintf("cycle %d: no blocker (opp reach %d)", a.Cycle, a.Dribble.StartCycle)
	}
	e, _ := a.Entry(a.Blocker)
	return fmt.Sprintf("cycle %d: blocker %d at (%.1f,%.1f) c=%d (opp reach %d)",
		a.Cycle, a.Blocker, e.Point.X, e.Point.Y, e.Cycle, a.Dribble.StartCycle)
}

// BlockPlanner picks the single teammate that should step into the
// opponent's dribble path. Every teammate runs it on its own snapshot, so
// the result depends only on the snapshot and the parameters.
type BlockPlanner struct {
	Params    Params
	Estimator ReachEstimator
}

// NewBlockPlanner creates a planner for the given parameters.
func NewBlockPlanner(p Params) *BlockPlanner {
	return &BlockPlanner{Params: p, Estimator: NewReachEstimator(p)}
}

// Plan computes every teammate's earliest feasible block and selects the
// blocker. It never fails; an assignment without a blocker is a normal result.
func (bp *BlockPlanner) Plan(snap *Snapshot) Assignment {
	dribble := PredictDribble(snap, bp.Params)
	a := Assignment{
		Cycle:      snap.Cycle,
		Dribble:    dribble,
		Candidates: dribble.Candidates(bp.Params.Horizon),
		Entries:    make([]BlockEntry, TeamSize),
	}
	for unum := 1; unum <= TeamSize; unum++ {
		a.Entries[unum-1] = bp.blockEntry(snap, unum, a.Candidates)
	}
	a.Blocker = selectBlocker(a.Entries)
	return a
}

// blockEntry scans candidates in cycle order and keeps the first one the
// teammate reaches no later than the ball.
func (bp *BlockPlanner) blockEntry(snap *Snapshot, unum int, candidates []Candidate) BlockEntry {
	e := BlockEntry{Unum: unum, Cycle: Unreachable, Reach: Unreachable}
	if bp.Params.ExcludeGoalie && unum == bp.Params.GoalieUnum {
		e.Reason = ReasonExcluded
		return e
	}
	tm, ok := snap.Teammate(unum)
	if !ok {
		e.Reason = ReasonMissing
		return e
	}
	for _, c := range candidates {
		reach := bp.Estimator.Estimate(tm, c.Pos, c.Cycle)
		if reach <= c.Cycle {
			e.Cycle = c.Cycle
			e.Point = c.Pos
			e.Reach = reach
			e.Reason = ReasonReachable
			return e
		}
	}
	e.Reason = ReasonExhausted
	return e
}

// selectBlocker returns the reachable entry with the smallest cycle; ties
// go to the lowest uniform number. Zero means none.
func selectBlocker(entries []BlockEntry) int {
	best, blocker := Unreachable, 0
	for _, e := range entries {
		if e.Reachable() && e.Cycle < best {
			best = e.Cycle
			blocker = e.Unum
		}
	}
	return blocker
}

// Order returns the movement order for self if it is the blocker.
func (bp *BlockPlanner) Order(a Assignment, self int) (Action, bool) {
	if !a.IsBlocker(self) {
		return Action{}, false
	}
	target, ok := a.Target()
	if !ok {
		return Action{}, false
	}
	return Action{
		Behavior:        BehaviorBlock,
		Target:          target,
		Tolerance:       bp.Params.BlockArrivalTolerance,
		DashPower:       bp.Params.BlockDashPower,
		DirThresholdDeg: bp.Params.BlockDirThresholdDeg,
		Face:            target,
		Neck:            NeckTurnToBallOrScan,
	}, true
}
