package game

import "math"

// CommandKind is a low-level body command, one per cycle.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdTurn
	CmdDash
	CmdTackle
)

func (k CommandKind) String() string {
	switch k {
	case CmdNone:
		return "none"
	case CmdTurn:
		return "turn"
	case CmdDash:
		return "dash"
	case CmdTackle:
		return "tackle"
	default:
		return "unknown"
	}
}

// Command is the body command sent to the simulator.
type Command struct {
	Kind   CommandKind
	Moment float64 // degrees, for CmdTurn
	Power  float64 // for CmdDash
}

// Drive turns an action into this cycle's body command: go to the target,
// and once there (or unable to improve) face Action.Face.
func Drive(a *AgentState, act Action) Command {
	switch act.Behavior {
	case BehaviorNone:
		return Command{}
	case BehaviorTackle:
		return Command{Kind: CmdTackle}
	}
	if cmd, ok := goToPoint(a, act.Target, act.Tolerance, act.DashPower, act.DirThresholdDeg); ok {
		return cmd
	}
	return turnToPoint(a, act.Face)
}

// goToPoint returns false once the agent's next-cycle position is within tol.
func goToPoint(a *AgentState, target Vec2, tol, power, dirThrDeg float64) (Command, bool) {
	next := a.InertiaPoint(1)
	if next.Dist(target) <= tol {
		return Command{}, false
	}
	diff := rad2deg(normalizeAngle(HeadingTo(next, target) - a.Body))
	if math.Abs(diff) > dirThrDeg {
		return turnCommand(a, diff), true
	}
	return Command{Kind: CmdDash, Power: power}, true
}

func turnToPoint(a *AgentState, p Vec2) Command {
	diff := rad2deg(normalizeAngle(HeadingTo(a.InertiaPoint(1), p) - a.Body))
	if math.Abs(diff) < 1.0 {
		return Command{}
	}
	return turnCommand(a, diff)
}

// turnCommand asks for enough moment to cover diff degrees at the current
// speed, capped by the player's maximum.
func turnCommand(a *AgentState, diff float64) Command {
	pt := a.playerType()
	moment := diff * (1.0 + pt.InertiaMoment*a.Vel.Len())
	return Command{Kind: CmdTurn, Moment: clamp(moment, -pt.MaxMoment, pt.MaxMoment)}
}

// ApplyCommand applies a turn or dash to the agent's body state.
func ApplyCommand(a *AgentState, cmd Command) {
	pt := a.playerType()
	switch cmd.Kind {
	case CmdTurn:
		moment := clamp(cmd.Moment, -pt.MaxMoment, pt.MaxMoment)
		a.Body = normalizeAngle(a.Body + deg2rad(pt.EffectiveTurn(moment, a.Vel.Len())))
	case CmdDash:
		a.Vel = a.Vel.Add(Polar(pt.DashAccel(cmd.Power), a.Body))
		if s := a.Vel.Len(); s > pt.SpeedMax {
			a.Vel = a.Vel.Scale(pt.SpeedMax / s)
		}
	}
}

// StepAgent advances the agent one cycle: move by velocity, then decay.
func StepAgent(a *AgentState) {
	pt := a.playerType()
	a.Pos = a.Pos.Add(a.Vel)
	a.Vel = a.Vel.Scale(pt.Decay)
}

// StepBall advances the ball one cycle.
func StepBall(b *Ball) {
	decay := b.Decay
	if decay <= 0 {
		decay = defaultBallDecay
	}
	b.Pos = b.Pos.Add(b.Vel)
	b.Vel = b.Vel.Scale(decay)
}
