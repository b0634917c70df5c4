package game

import (
	"fmt"
	"strings"
)

// ObservedAssignment is one agent's local block assignment in a cycle.
type ObservedAssignment struct {
	Observer int
	Blocker  int
	OppReach int
}

// CycleReport captures the team's block decisions at one cycle.
type CycleReport struct {
	Cycle       int
	Assignments []ObservedAssignment
	Possession  Possession
}

// Consensus returns the blocker named by most observers (lowest unum on a
// tie) and whether every observer agreed. Zero means no blocker.
func (cr CycleReport) Consensus() (int, bool) {
	if len(cr.Assignments) == 0 {
		return 0, true
	}
	votes := map[int]int{}
	agreed := true
	for _, a := range cr.Assignments {
		votes[a.Blocker]++
		if a.Blocker != cr.Assignments[0].Blocker {
			agreed = false
		}
	}
	best, bestVotes := 0, -1
	for unum := 0; unum <= TeamSize; unum++ {
		if v, ok := votes[unum]; ok && v > bestVotes {
			best, bestVotes = unum, v
		}
	}
	return best, agreed
}

// MatchSummary aggregates a run.
type MatchSummary struct {
	Cycles            int
	PlannedCycles     int // cycles in which at least one agent ran the planner
	CyclesWithBlocker int
	AgreedCycles      int
	BlockerChanges    int
	FirstBlockCycle   int // -1 if never
	BallWonCycle      int // -1 if never
	BlockerCycles     map[int]int
}

// AgreementRatio is the share of planned cycles in which every planning
// agent named the same blocker.
func (ms MatchSummary) AgreementRatio() float64 {
	if ms.PlannedCycles == 0 {
		return 0
	}
	return float64(ms.AgreedCycles) / float64(ms.PlannedCycles)
}

// Format renders the summary as report lines.
func (ms MatchSummary) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cycles=%d planned=%d with_blocker=%d agreement=%.2f blocker_changes=%d\n",
		ms.Cycles, ms.PlannedCycles, ms.CyclesWithBlocker, ms.AgreementRatio(), ms.BlockerChanges)
	fmt.Fprintf(&sb, "phase_markers: first_block=%d ball_won=%d\n", ms.FirstBlockCycle, ms.BallWonCycle)
	sb.WriteString("blocker_cycles:")
	for unum := 1; unum <= TeamSize; unum++ {
		if n := ms.BlockerCycles[unum]; n > 0 {
			fmt.Fprintf(&sb, " %d=%d", unum, n)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// Reporter collects a CycleReport per cycle.
type Reporter struct {
	samples []CycleReport
}

// NewReporter creates an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Observe records one cycle.
func (r *Reporter) Observe(cr CycleReport) {
	r.samples = append(r.samples, cr)
}

// Samples returns every recorded cycle.
func (r *Reporter) Samples() []CycleReport {
	return r.samples
}

// Last returns the most recent cycle, or false before the first cycle.
func (r *Reporter) Last() (CycleReport, bool) {
	if len(r.samples) == 0 {
		return CycleReport{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Summary aggregates every recorded cycle.
func (r *Reporter) Summary() MatchSummary {
	ms := MatchSummary{
		Cycles:          len(r.samples),
		FirstBlockCycle: -1,
		BallWonCycle:    -1,
		BlockerCycles:   map[int]int{},
	}
	last := 0
	for _, cr := range r.samples {
		if cr.Possession == PossOurs && ms.BallWonCycle < 0 {
			ms.BallWonCycle = cr.Cycle
		}
		if len(cr.Assignments) == 0 {
			continue
		}
		ms.PlannedCycles++
		blocker, agreed := cr.Consensus()
		if agreed {
			ms.AgreedCycles++
		}
		if blocker == 0 {
			continue
		}
		ms.CyclesWithBlocker++
		ms.BlockerCycles[blocker]++
		if ms.FirstBlockCycle < 0 {
			ms.FirstBlockCycle = cr.Cycle
		}
		if last != 0 && blocker != last {
			ms.BlockerChanges++
		}
		last = blocker
	}
	return ms
}
