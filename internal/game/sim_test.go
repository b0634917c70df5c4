package game

import "testing"

// backLineOptions sets up a dribbling opponent at the centre circle and
// seven of our players between it and our goal.
func backLineOptions(extra ...SimOption) []SimOption {
	opts := []SimOption{
		WithBall(9.5, 0, 0, 0),
		WithOpponent(9, 10, 0, 180),
		WithOpponent(10, 15, 12, 180),
		WithTeammate(1, -50, 0, 0),
		WithTeammate(2, -30, -15, 0),
		WithTeammate(3, -30, -5, 0),
		WithTeammate(4, -30, 5, 0),
		WithTeammate(5, -30, 15, 0),
		WithTeammate(6, -15, -10, 0),
		WithTeammate(7, -15, 0, 0),
	}
	return append(opts, extra...)
}

func TestSim_OmniscientTeamAgreesOnBlocker(t *testing.T) {
	s := NewSim(backLineOptions(WithOmniscient(true))...)
	s.RunCycles(60)

	sum := s.Reporter.Summary()
	if sum.PlannedCycles == 0 {
		t.Fatalf("expected the block branch to run at least once\n%s", s.SimLog.FormatRange(1, 10))
	}
	if sum.AgreementRatio() != 1.0 {
		t.Fatalf("identical snapshots must give identical blockers, agreement=%.2f", sum.AgreementRatio())
	}
	if !s.SimLog.HasEntry("block", "assign", "blocker") {
		t.Fatalf("expected a block assignment\n%s", s.SimLog.FormatRange(1, 10))
	}
	if sum.FirstBlockCycle != 1 {
		t.Fatalf("expected a blocker from cycle 1, got %d", sum.FirstBlockCycle)
	}
}

func TestSim_Deterministic(t *testing.T) {
	opts := backLineOptions(WithSeed(7), WithJitter(1.5))
	a := NewSim(opts...)
	b := NewSim(opts...)
	a.RunCycles(80)
	b.RunCycles(80)
	if a.SimLog.Format() != b.SimLog.Format() {
		t.Fatal("identical options should produce identical logs")
	}
	if a.Ball.Pos != b.Ball.Pos {
		t.Fatal("identical options should leave the ball in the same place")
	}
}

func TestSim_PerceptionHidesTeammateBehind(t *testing.T) {
	s := NewSim(
		WithBall(20, 0, 0, 0),
		WithOpponent(9, 20.5, 0, 180),
		WithTeammate(2, -30, 0, 0),
		WithTeammate(3, -40, 0, 0),
	)
	s.Step()

	snap2 := s.SnapshotFor(2)
	if _, ok := snap2.Teammate(3); ok {
		t.Fatal("unum 2 faces away from unum 3 and should not perceive it")
	}
	if _, ok := snap2.SelfState(); !ok {
		t.Fatal("an agent always knows itself")
	}
	snap3 := s.SnapshotFor(3)
	if _, ok := snap3.Teammate(2); !ok {
		t.Fatal("unum 3 faces unum 2 and should perceive it")
	}
}

func TestSim_TackleWinsBall(t *testing.T) {
	s := NewSim(
		WithBall(0, 0, 0, 0),
		WithOpponent(9, 0.5, 0, 180),
		WithTeammate(6, -1.5, 0, 0),
	)
	if s.Possession() != PossTheirs {
		t.Fatalf("opponent should start with the ball, got %s", s.Possession())
	}
	won := s.RunUntil(func(s *Sim) bool { return s.BallWon() }, 10)
	if won != 1 {
		t.Fatalf("expected the tackle to win the ball on cycle 1, got %d\n%s", won, s.SimLog.Format())
	}
	if !s.SimLog.HasEntry("ball", "tackle", "won") {
		t.Fatal("tackle should be logged")
	}
	if got := s.Reporter.Summary().BallWonCycle; got != 1 {
		t.Fatalf("report should mark ball won at 1, got %d", got)
	}
}

func TestSim_OptionsApplyInOrder(t *testing.T) {
	slow := DefaultPlayerType()
	slow.ID = 7
	slow.DashPowerRate = 0.003
	s := NewSim(
		WithType(SideOurs, 4, 7), // tune pass runs after players exist
		WithTeammate(4, -10, 0, 0),
		WithPlayerType(slow),
		WithVelocity(SideOurs, 4, 0.3, 0),
	)
	p := s.Player(SideOurs, 4)
	if p == nil {
		t.Fatal("teammate 4 missing")
	}
	if p.State.Type.ID != 7 || p.State.Type.DashPowerRate != 0.003 {
		t.Fatalf("expected custom type 7, got %+v", *p.State.Type)
	}
	if p.State.Vel != V(0.3, 0) {
		t.Fatalf("expected tuned velocity, got (%.2f,%.2f)", p.State.Vel.X, p.State.Vel.Y)
	}
}

func TestSim_VerboseLogsCandidates(t *testing.T) {
	s := NewSim(backLineOptions(WithOmniscient(true), WithVerbose(true))...)
	s.Step()
	if s.SimLog.CountCategory("block", "candidate") == 0 {
		t.Fatal("verbose mode should log per-teammate candidates")
	}
	if s.SimLog.CountCategory("move", "position") == 0 {
		t.Fatal("verbose mode should log positions")
	}
}
