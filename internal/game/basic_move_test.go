package game

import (
	"math"
	"testing"
)

func opp(unum int, x, y, bodyDeg float64) *AgentState {
	a := mate(unum, x, y, bodyDeg)
	a.Side = SideTheirs
	return a
}

func moveSnapshot(self int, ball Vec2, mates []*AgentState, opps []*AgentState) *Snapshot {
	snap := blockSnapshot(OpponentReachUnknown, mates...)
	snap.Self = self
	snap.Ball = Ball{Pos: ball, Decay: defaultBallDecay}
	for _, o := range opps {
		snap.Opponents[o.Unum-1] = o
	}
	return snap
}

func TestComputeInterceptTable(t *testing.T) {
	snap := moveSnapshot(2, V(0, 0),
		[]*AgentState{mate(2, -10, 0, 0), mate(3, -5, 0, 0)},
		[]*AgentState{opp(9, 1, 0, 180)})
	table := ComputeInterceptTable(snap, NewReachEstimator(DefaultParams()), 50)

	if table.Self != 10 {
		t.Fatalf("expected self reach 10, got %d", table.Self)
	}
	if table.Teammate != 5 || table.FastestTeammate != 3 {
		t.Fatalf("expected teammate 3 at 5, got %d at %d", table.FastestTeammate, table.Teammate)
	}
	if table.Opponent != 0 || table.FastestOpponent != 9 || !table.KickableOpponent {
		t.Fatalf("expected kickable opponent 9 at 0, got %d at %d kickable=%v",
			table.FastestOpponent, table.Opponent, table.KickableOpponent)
	}
	if table.KickableTeammate {
		t.Fatal("no teammate controls the ball")
	}
}

func TestComputeInterceptTable_EmptySides(t *testing.T) {
	snap := moveSnapshot(2, V(0, 0), []*AgentState{mate(2, -10, 0, 0)}, nil)
	table := ComputeInterceptTable(snap, NewReachEstimator(DefaultParams()), 50)
	if table.Teammate != Unreachable || table.Opponent != Unreachable {
		t.Fatalf("absent players should leave sentinels, got mate=%d opp=%d", table.Teammate, table.Opponent)
	}
	if table.FastestTeammate != 0 || table.FastestOpponent != 0 {
		t.Fatal("no fastest player expected")
	}
}

func TestDecide_BlockerMovesToBlockPoint(t *testing.T) {
	bm := NewBasicMove(DefaultParams(), Formation442)
	snap := moveSnapshot(4, V(0, 0),
		[]*AgentState{mate(4, -4, 2, -90)},
		[]*AgentState{opp(9, 0.5, 0, 180)})

	d := bm.Decide(snap)
	if d.Action.Behavior != BehaviorBlock {
		t.Fatalf("expected block, got %s", d.Action.Behavior)
	}
	if d.Assignment == nil || d.Assignment.Blocker != 4 {
		t.Fatalf("expected self as blocker, got %+v", d.Assignment)
	}
	if d.Assignment.Dribble.StartCycle != 0 {
		t.Fatalf("opponent reach should come from the table, got %d", d.Assignment.Dribble.StartCycle)
	}
	if d.Action.Target.Dist(V(-3.2, 0)) > 1e-9 {
		t.Fatalf("expected block point (-3.2,0), got (%.3f,%.3f)", d.Action.Target.X, d.Action.Target.Y)
	}
}

func TestDecide_NoBlockerFallsBackToFormation(t *testing.T) {
	bm := NewBasicMove(DefaultParams(), Formation442)
	snap := moveSnapshot(2, V(0, 0),
		[]*AgentState{mate(2, -45, 30, 0)},
		[]*AgentState{opp(9, 0.5, 0, 180)})

	d := bm.Decide(snap)
	if d.Assignment == nil {
		t.Fatal("block branch should have been evaluated")
	}
	if d.Assignment.HasBlocker() {
		t.Fatalf("nobody should be in time, got blocker %d", d.Assignment.Blocker)
	}
	if d.Action.Behavior != BehaviorFormation {
		t.Fatalf("expected formation, got %s", d.Action.Behavior)
	}
	home := Formation442.HomePosition(2, V(0, 0))
	if d.Action.Target != home {
		t.Fatalf("expected home (%.1f,%.1f), got (%.1f,%.1f)", home.X, home.Y, d.Action.Target.X, d.Action.Target.Y)
	}
	wantTol := math.Hypot(45, 30) * 0.1
	if math.Abs(d.Action.Tolerance-wantTol) > 1e-9 {
		t.Fatalf("expected tolerance %.3f, got %.3f", wantTol, d.Action.Tolerance)
	}
	if d.Action.Neck != NeckTurnToBallOrScan {
		t.Fatalf("far from the ball the neck should scan, got %s", d.Action.Neck)
	}
}

func TestDecide_ChaseLooseBall(t *testing.T) {
	bm := NewBasicMove(DefaultParams(), Formation442)
	snap := moveSnapshot(5, V(0, 0), []*AgentState{mate(5, -2, 0, 0)}, nil)
	d := bm.Decide(snap)
	if d.Action.Behavior != BehaviorIntercept {
		t.Fatalf("expected intercept, got %s", d.Action.Behavior)
	}
	if d.Table.Self != 2 {
		t.Fatalf("expected self reach 2, got %d", d.Table.Self)
	}
	if d.Assignment != nil {
		t.Fatal("chasing should not evaluate the block branch")
	}
}

func TestDecide_TackleWhenOpponentHasBallClose(t *testing.T) {
	bm := NewBasicMove(DefaultParams(), Formation442)
	snap := moveSnapshot(6, V(0, 0),
		[]*AgentState{mate(6, -1.5, 0, 0)},
		[]*AgentState{opp(9, 0.5, 0, 180)})
	if d := bm.Decide(snap); d.Action.Behavior != BehaviorTackle {
		t.Fatalf("expected tackle, got %s", d.Action.Behavior)
	}
}

func TestDecide_KickableTeammateSuppressesChase(t *testing.T) {
	bm := NewBasicMove(DefaultParams(), Formation442)
	snap := moveSnapshot(2, V(0, 0), []*AgentState{mate(2, -2, 0, 0), mate(3, 0.3, 0, 0)}, nil)
	d := bm.Decide(snap)
	if d.Action.Behavior != BehaviorFormation {
		t.Fatalf("expected formation while a teammate has the ball, got %s", d.Action.Behavior)
	}
	if d.Assignment != nil {
		t.Fatal("no opponent can reach the ball, block should not be evaluated")
	}
}

func TestDecide_MissingSelf(t *testing.T) {
	bm := NewBasicMove(DefaultParams(), Formation442)
	snap := moveSnapshot(8, V(0, 0), []*AgentState{mate(2, -2, 0, 0)}, nil)
	if d := bm.Decide(snap); d.Action.Behavior != BehaviorNone {
		t.Fatalf("unknown self should do nothing, got %s", d.Action.Behavior)
	}
}

func TestDrive_TurnsThenDashes(t *testing.T) {
	a := mate(2, 0, 0, 90)
	act := Action{Behavior: BehaviorBlock, Target: V(10, 0), Tolerance: 0.1, DashPower: 100, DirThresholdDeg: 20, Face: V(10, 0)}
	cmd := Drive(a, act)
	if cmd.Kind != CmdTurn {
		t.Fatalf("facing away should turn first, got %s", cmd.Kind)
	}
	ApplyCommand(a, cmd)
	if diff := angleDiffDeg(a.Body, 0); diff > 1e-6 {
		t.Fatalf("turn at rest should face the target, off by %.4f deg", diff)
	}
	cmd = Drive(a, act)
	if cmd.Kind != CmdDash || cmd.Power != 100 {
		t.Fatalf("aligned agent should dash at full power, got %s %.0f", cmd.Kind, cmd.Power)
	}
	ApplyCommand(a, cmd)
	StepAgent(a)
	if a.Pos.X <= 0 {
		t.Fatalf("dash should move toward the target, at (%.3f,%.3f)", a.Pos.X, a.Pos.Y)
	}
}

func TestDrive_ArrivedFacesPoint(t *testing.T) {
	a := mate(2, 0, 0, 0)
	act := Action{Behavior: BehaviorFormation, Target: V(0.5, 0), Tolerance: 1, Face: V(0, 10), DirThresholdDeg: 15}
	cmd := Drive(a, act)
	if cmd.Kind != CmdTurn || cmd.Moment <= 0 {
		t.Fatalf("arrived agent should turn toward the face point, got %s %.1f", cmd.Kind, cmd.Moment)
	}
}
