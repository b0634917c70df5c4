package game

// minTurnStep bounds the turning loop: at least this many degrees are
// removed per simulated turn cycle.
const minTurnStep = 1.0

// ReachEstimator estimates how many cycles an agent needs to turn toward
// and close on a point. It holds no state.
type ReachEstimator struct {
	TurnToleranceDeg float64
}

// NewReachEstimator builds an estimator from the planner parameters.
func NewReachEstimator(p Params) ReachEstimator {
	return ReachEstimator{TurnToleranceDeg: p.TurnToleranceDeg}
}

// Estimate returns the cycles needed for a to control target, assuming it
// drifts atCycle cycles under its current velocity and then turns and dashes.
// Turning and dashing costs are added, not interleaved.
func (e ReachEstimator) Estimate(a *AgentState, target Vec2, atCycle int) int {
	pt := a.playerType()
	if atCycle < 0 {
		atCycle = 0
	}

	radius := pt.KickableArea
	if a.Pos.Dist(target) <= radius {
		return 0
	}
	forecast := pt.InertiaPoint(a.Pos, a.Vel, atCycle)
	dist := forecast.Dist(target)
	if dist <= radius {
		return 0
	}

	dash := pt.CyclesToReachDistance(dist - radius)
	turn := e.turnCycles(pt, a.Body, HeadingTo(forecast, target), a.Vel.Len())
	if dash >= Unreachable-turn {
		return Unreachable
	}
	return dash + turn
}

// turnCycles counts turn commands until the body is within tolerance of
// bearing, decaying speed each cycle.
func (e ReachEstimator) turnCycles(pt PlayerType, body, bearing, speed float64) int {
	tol := e.TurnToleranceDeg
	if tol < 0 {
		tol = 0
	}
	diff := angleDiffDeg(bearing, body)
	n := 0
	for diff > tol {
		step := pt.EffectiveTurn(pt.MaxMoment, speed)
		if step < minTurnStep {
			step = minTurnStep
		}
		diff -= step
		speed *= pt.Decay
		n++
	}
	return n
}
