package game

import (
	"strings"
	"testing"
)

func TestCycleReport_Consensus(t *testing.T) {
	cr := CycleReport{Assignments: []ObservedAssignment{
		{Observer: 2, Blocker: 4},
		{Observer: 3, Blocker: 4},
		{Observer: 4, Blocker: 6},
	}}
	blocker, agreed := cr.Consensus()
	if blocker != 4 || agreed {
		t.Fatalf("expected majority 4 without agreement, got %d agreed=%v", blocker, agreed)
	}

	tie := CycleReport{Assignments: []ObservedAssignment{
		{Observer: 2, Blocker: 7},
		{Observer: 3, Blocker: 5},
	}}
	if blocker, _ := tie.Consensus(); blocker != 5 {
		t.Fatalf("tie should go to the lower unum, got %d", blocker)
	}

	if blocker, agreed := (CycleReport{}).Consensus(); blocker != 0 || !agreed {
		t.Fatalf("empty cycle should be trivially agreed with no blocker, got %d %v", blocker, agreed)
	}
}

func TestReporter_Summary(t *testing.T) {
	r := NewReporter()
	r.Observe(CycleReport{Cycle: 1, Possession: PossTheirs})
	r.Observe(CycleReport{Cycle: 2, Possession: PossTheirs, Assignments: []ObservedAssignment{{Observer: 2, Blocker: 0}}})
	r.Observe(CycleReport{Cycle: 3, Possession: PossTheirs, Assignments: []ObservedAssignment{{Observer: 2, Blocker: 4}, {Observer: 4, Blocker: 4}}})
	r.Observe(CycleReport{Cycle: 4, Possession: PossTheirs, Assignments: []ObservedAssignment{{Observer: 2, Blocker: 3}, {Observer: 4, Blocker: 4}}})
	r.Observe(CycleReport{Cycle: 5, Possession: PossOurs})

	sum := r.Summary()
	if sum.Cycles != 5 || sum.PlannedCycles != 3 || sum.CyclesWithBlocker != 2 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.AgreedCycles != 2 {
		t.Fatalf("expected 2 agreed cycles, got %d", sum.AgreedCycles)
	}
	if sum.FirstBlockCycle != 3 || sum.BallWonCycle != 5 {
		t.Fatalf("unexpected phase markers: first_block=%d ball_won=%d", sum.FirstBlockCycle, sum.BallWonCycle)
	}
	if sum.BlockerChanges != 1 {
		t.Fatalf("expected one blocker change (4 → 3), got %d", sum.BlockerChanges)
	}
	out := sum.Format()
	if !strings.Contains(out, "first_block=3") || !strings.Contains(out, "3=1") {
		t.Fatalf("format missing fields:\n%s", out)
	}
	if last, ok := r.Last(); !ok || last.Cycle != 5 {
		t.Fatal("Last should return cycle 5")
	}
}

func TestSimLog_VerboseGate(t *testing.T) {
	quiet := NewSimLog(false)
	quiet.AddVerbose(1, "O2", "ours", "move", "position", "(0,0)", 0)
	quiet.Add(1, "O2", "ours", "block", "assign", "blocker 2", 2)
	if len(quiet.Entries()) != 1 {
		t.Fatalf("verbose entries should be dropped when quiet, got %d", len(quiet.Entries()))
	}
	if e, ok := quiet.LastOf("block", "assign"); !ok || e.NumVal != 2 {
		t.Fatal("LastOf should find the assignment")
	}
	if len(quiet.FilterAgent("O2")) != 1 || len(quiet.FilterAgent("O3")) != 0 {
		t.Fatal("FilterAgent mismatch")
	}
	if !strings.Contains(quiet.Format(), "[C=001] O2") {
		t.Fatalf("unexpected format: %q", quiet.Format())
	}
}
