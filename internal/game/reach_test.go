package game

import (
	"math"
	"testing"
)

func TestEstimate_ZeroInsideControlRadius(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	target := V(0.5, 0.3)
	for _, bodyDeg := range []float64{0, 90, 180, -135} {
		for _, vel := range []Vec2{{}, {X: 1, Y: 0}, {X: -0.5, Y: 0.7}} {
			a := mate(2, 0, 0, bodyDeg)
			a.Vel = vel
			for _, at := range []int{0, 1, 10} {
				if got := est.Estimate(a, target, at); got != 0 {
					t.Fatalf("body=%.0f vel=(%.1f,%.1f) at=%d: expected 0, got %d", bodyDeg, vel.X, vel.Y, at, got)
				}
			}
		}
	}
}

func TestEstimate_ZeroWhenDriftCarriesIntoRadius(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	a := mate(2, 0, 0, 90)
	a.Vel = V(1, 0)
	// Drift after 2 cycles is 1.0 + 0.4 = 1.4.
	if got := est.Estimate(a, V(1.5, 0), 2); got != 0 {
		t.Fatalf("forecast inside radius should cost 0, got %d", got)
	}
	if got := est.Estimate(a, V(1.5, 0), 0); got == 0 {
		t.Fatal("without drift the point is out of reach this cycle")
	}
}

func TestEstimate_MonotoneInDistance(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	a := mate(2, 0, 0, 0)
	prev := 0
	for d := 0.0; d <= 80; d += 0.25 {
		got := est.Estimate(a, V(d, 0), 0)
		if got < prev {
			t.Fatalf("estimate decreased at d=%.2f: %d < %d", d, got, prev)
		}
		prev = got
	}
	if prev <= dashTableCycles {
		t.Fatalf("80m should need more than %d cycles, got %d", dashTableCycles, prev)
	}
}

func TestEstimate_TurnCostIsAdditive(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	a := mate(2, 0, 0, 0)
	ahead := est.Estimate(a, V(20, 0), 0)
	behind := est.Estimate(a, V(-20, 0), 0)
	if behind != ahead+1 {
		t.Fatalf("about-turn at rest should add one cycle: ahead=%d behind=%d", ahead, behind)
	}
}

func TestTurnCycles_SlowerWhenMoving(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	pt := DefaultPlayerType()
	if n := est.turnCycles(pt, 0, math.Pi, 0); n != 1 {
		t.Fatalf("stationary about-turn should take 1 cycle, got %d", n)
	}
	// 180 → 150 (speed 1.0) → 90 (0.4) → -10 (0.16).
	if n := est.turnCycles(pt, 0, math.Pi, 1.0); n != 3 {
		t.Fatalf("moving about-turn should take 3 cycles, got %d", n)
	}
	if n := est.turnCycles(pt, 0, deg2rad(10), 1.0); n != 0 {
		t.Fatalf("within tolerance should need no turn, got %d", n)
	}
}

func TestTurnCycles_TerminatesForAllAnglesAndSpeeds(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	weak := DefaultPlayerType()
	weak.MaxMoment = 1e-6
	for _, pt := range []PlayerType{DefaultPlayerType(), weak} {
		for diff := 0.0; diff <= 180; diff += 5 {
			for speed := 0.0; speed <= 3.0; speed += 0.5 {
				n := est.turnCycles(pt, 0, deg2rad(diff), speed)
				if n < 0 || n > int(180/minTurnStep)+1 {
					t.Fatalf("moment=%.6f diff=%.0f speed=%.1f: turn cycles out of bounds: %d", pt.MaxMoment, diff, speed, n)
				}
			}
		}
	}
}

func TestEstimate_NilTypeUsesDefault(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	typed := mate(2, 0, 0, 0)
	untyped := &AgentState{Unum: 2, Pos: V(0, 0)}
	if est.Estimate(typed, V(12, 3), 4) != est.Estimate(untyped, V(12, 3), 4) {
		t.Fatal("nil player type should behave as the default type")
	}
}

func TestEstimate_NegativeCycleClamped(t *testing.T) {
	est := NewReachEstimator(DefaultParams())
	a := mate(2, 0, 0, 0)
	a.Vel = V(0.8, 0)
	if est.Estimate(a, V(10, 0), -3) != est.Estimate(a, V(10, 0), 0) {
		t.Fatal("negative atCycle should be treated as 0")
	}
}
