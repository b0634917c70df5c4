package game

import "fmt"

// Behavior is the branch the dispatcher chose for this cycle.
type Behavior int

const (
	BehaviorNone Behavior = iota
	BehaviorTackle
	BehaviorIntercept
	BehaviorBlock
	BehaviorFormation
)

func (b Behavior) String() string {
	switch b {
	case BehaviorNone:
		return "none"
	case BehaviorTackle:
		return "tackle"
	case BehaviorIntercept:
		return "intercept"
	case BehaviorBlock:
		return "block"
	case BehaviorFormation:
		return "formation"
	default:
		return "unknown"
	}
}

// NeckAction is the gaze hint attached to an action.
type NeckAction int

const (
	NeckTurnToBallOrScan NeckAction = iota
	NeckTurnToBall
	NeckInterceptNeck
)

func (n NeckAction) String() string {
	switch n {
	case NeckTurnToBallOrScan:
		return "ball_or_scan"
	case NeckTurnToBall:
		return "ball"
	case NeckInterceptNeck:
		return "intercept"
	default:
		return "unknown"
	}
}

// Action is what the decision layer hands to the motion controller: drive
// to Target until within Tolerance, otherwise face Face.
type Action struct {
	Behavior        Behavior
	Target          Vec2
	Tolerance       float64
	DashPower       float64
	DirThresholdDeg float64
	Face            Vec2
	Neck            NeckAction
}

func (a Action) String() string {
	return fmt.Sprintf("%s → (%.1f,%.1f) tol=%.2f power=%.0f", a.Behavior, a.Target.X, a.Target.Y, a.Tolerance, a.DashPower)
}
