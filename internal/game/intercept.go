package game

// InterceptTable holds the earliest cycle at which each side can control
// the ball along its current inertia path.
type InterceptTable struct {
	Self            int
	Teammate        int // fastest teammate other than self
	Opponent        int
	FastestTeammate int // unum, 0 if none
	FastestOpponent int // unum, 0 if none

	KickableTeammate bool // a teammate other than self controls the ball now
	KickableOpponent bool
}

// ComputeInterceptTable fills the table from the snapshot using the reach
// estimator against the ball's projected position at each cycle.
func ComputeInterceptTable(snap *Snapshot, est ReachEstimator, maxCycle int) InterceptTable {
	t := InterceptTable{Self: Unreachable, Teammate: Unreachable, Opponent: Unreachable}
	for unum := 1; unum <= len(snap.Teammates); unum++ {
		tm, ok := snap.Teammate(unum)
		if !ok {
			continue
		}
		c := ballReachCycle(est, tm, snap.Ball, maxCycle)
		if unum == snap.Self {
			t.Self = c
			continue
		}
		if tm.Kickable(snap.Ball.Pos) {
			t.KickableTeammate = true
		}
		if c < t.Teammate {
			t.Teammate = c
			t.FastestTeammate = unum
		}
	}
	for unum := 1; unum <= len(snap.Opponents); unum++ {
		opp, ok := snap.Opponent(unum)
		if !ok {
			continue
		}
		if opp.Kickable(snap.Ball.Pos) {
			t.KickableOpponent = true
		}
		c := ballReachCycle(est, opp, snap.Ball, maxCycle)
		if c < t.Opponent {
			t.Opponent = c
			t.FastestOpponent = unum
		}
	}
	return t
}

// ballReachCycle returns the first cycle at which a can control the ball,
// or Unreachable within maxCycle.
func ballReachCycle(est ReachEstimator, a *AgentState, ball Ball, maxCycle int) int {
	for c := 0; c <= maxCycle; c++ {
		if est.Estimate(a, ball.InertiaPoint(c), c) <= c {
			return c
		}
	}
	return Unreachable
}
