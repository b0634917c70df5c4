package game

import "fmt"

// TeamSize is the number of uniform numbers per side.
const TeamSize = 11

// OpponentReachUnknown asks the dispatcher to derive the opponent reach
// cycle from its own intercept table.
const OpponentReachUnknown = -1

// Side distinguishes our team from the opposition.
type Side int

const (
	SideOurs Side = iota
	SideTheirs
)

func (s Side) String() string {
	if s == SideOurs {
		return "ours"
	}
	return "theirs"
}

// AgentState is one perceived player at the start of a cycle. The core only
// reads it.
type AgentState struct {
	Unum int
	Side Side
	Pos  Vec2
	Vel  Vec2
	Body float64 // radians
	Type *PlayerType
}

// Label returns a short id such as "O4" or "T9".
func (a *AgentState) Label() string {
	prefix := "O"
	if a.Side == SideTheirs {
		prefix = "T"
	}
	return fmt.Sprintf("%s%d", prefix, a.Unum)
}

func (a *AgentState) playerType() PlayerType {
	if a.Type == nil {
		return DefaultPlayerType()
	}
	return *a.Type
}

// InertiaPoint projects the agent n cycles forward without dashing.
func (a *AgentState) InertiaPoint(n int) Vec2 {
	pt := a.playerType()
	return pt.InertiaPoint(a.Pos, a.Vel, n)
}

// Kickable reports whether p lies within the agent's control radius.
func (a *AgentState) Kickable(p Vec2) bool {
	return a.Pos.Dist(p) <= a.playerType().KickableArea
}

const defaultBallDecay = 0.94

// Ball is the perceived ball.
type Ball struct {
	Pos   Vec2
	Vel   Vec2
	Decay float64
}

// InertiaPoint projects the ball n cycles forward.
func (b Ball) InertiaPoint(n int) Vec2 {
	decay := b.Decay
	if decay <= 0 {
		decay = defaultBallDecay
	}
	return b.Pos.Add(b.Vel.Scale(inertiaSum(decay, n)))
}

// Snapshot is one agent's immutable view of the world for a single cycle.
// Teammates[i] is the slot for uniform number i+1; a nil slot is a player
// not currently perceived.
type Snapshot struct {
	Cycle         int
	Self          int
	Ball          Ball
	Teammates     []*AgentState
	Opponents     []*AgentState
	OpponentReach int
	OurGoal       Vec2
}

// Teammate returns the slot for unum. The second result is false when the
// slot is empty or holds a different uniform number.
func (s *Snapshot) Teammate(unum int) (*AgentState, bool) {
	return slot(s.Teammates, unum)
}

// Opponent returns the opponent slot for unum.
func (s *Snapshot) Opponent(unum int) (*AgentState, bool) {
	return slot(s.Opponents, unum)
}

// SelfState returns the observing agent.
func (s *Snapshot) SelfState() (*AgentState, bool) {
	return s.Teammate(s.Self)
}

func slot(players []*AgentState, unum int) (*AgentState, bool) {
	if unum < 1 || unum > len(players) {
		return nil, false
	}
	p := players[unum-1]
	if p == nil || p.Unum != unum {
		return nil, false
	}
	return p, true
}
