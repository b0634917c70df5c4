package game

import "math"

// Decision is one agent's output for a cycle.
type Decision struct {
	Action     Action
	Table      InterceptTable
	Assignment *Assignment // nil unless the block branch was evaluated
}

// BasicMove is the per-cycle dispatcher for a player without the ball:
// tackle, chase, block, or hold the formation position, in that order.
type BasicMove struct {
	Params    Params
	Formation FormationType
	Planner   *BlockPlanner
}

// NewBasicMove creates a dispatcher with its own block planner.
func NewBasicMove(p Params, ft FormationType) *BasicMove {
	return &BasicMove{Params: p, Formation: ft, Planner: NewBlockPlanner(p)}
}

// Decide picks this cycle's action for snap.Self.
func (bm *BasicMove) Decide(snap *Snapshot) Decision {
	self, ok := snap.SelfState()
	if !ok {
		return Decision{Action: Action{Behavior: BehaviorNone}}
	}
	p := bm.Params
	table := ComputeInterceptTable(snap, bm.Planner.Estimator, p.InterceptMaxCycle)
	d := Decision{Table: table}
	ballDist := self.Pos.Dist(snap.Ball.Pos)

	if table.KickableOpponent && ballDist <= p.TackleDist {
		d.Action = Action{
			Behavior: BehaviorTackle,
			Target:   snap.Ball.Pos,
			Face:     snap.Ball.Pos,
			Neck:     NeckTurnToBall,
		}
		return d
	}

	if bm.shouldChase(table) {
		target := snap.Ball.InertiaPoint(table.Self)
		d.Action = Action{
			Behavior:        BehaviorIntercept,
			Target:          target,
			Tolerance:       self.playerType().KickableArea * 0.5,
			DashPower:       maxDashPower,
			DirThresholdDeg: p.TurnToleranceDeg,
			Face:            snap.Ball.Pos,
			Neck:            NeckInterceptNeck,
		}
		return d
	}

	oppReach := snap.OpponentReach
	if oppReach < 0 {
		oppReach = table.Opponent
	}
	if oppReach != Unreachable && oppReach <= min(table.Self, table.Teammate) {
		local := *snap
		local.OpponentReach = oppReach
		a := bm.Planner.Plan(&local)
		d.Assignment = &a
		if act, ok := bm.Planner.Order(a, snap.Self); ok {
			return withAction(d, act)
		}
	}

	neck := NeckTurnToBallOrScan
	if table.KickableOpponent && ballDist < p.NeckBallDist {
		neck = NeckTurnToBall
	}
	d.Action = Action{
		Behavior:        BehaviorFormation,
		Target:          bm.Formation.HomePosition(snap.Self, snap.Ball.Pos),
		Tolerance:       math.Max(1.0, ballDist*0.1),
		DashPower:       p.NormalDashPower,
		DirThresholdDeg: p.TurnToleranceDeg,
		Face:            snap.Ball.Pos,
		Neck:            neck,
	}
	return d
}

// shouldChase mirrors the direct-interception rule: chase when nobody of
// ours has the ball and self is very close or the fastest of us and not
// clearly beaten by the opponent.
func (bm *BasicMove) shouldChase(t InterceptTable) bool {
	if t.KickableTeammate || t.Self == Unreachable {
		return false
	}
	if t.Self <= bm.Params.InterceptEagerCycle {
		return true
	}
	return t.Self <= t.Teammate && t.Self-bm.Params.InterceptOppMargin < t.Opponent
}

func withAction(d Decision, act Action) Decision {
	d.Action = act
	return d
}
