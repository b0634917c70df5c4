package game

import "math"

const (
	// Default perception parameters.
	defaultViewWidthDeg = 180.0
	defaultPlayerRange  = 60.0 // metres a player can be identified at
	defaultSenseRange   = 3.0  // players this close are felt even outside the cone

	memoryDecayPerCycle = 0.05
	memoryPresentThresh = 0.1
)

// ViewCone describes what an agent can see this cycle.
type ViewCone struct {
	Heading     float64 // radians
	Width       float64 // radians, total arc
	PlayerRange float64
	SenseRange  float64
}

// NewViewCone creates a cone with the default width and ranges.
func NewViewCone(heading float64) ViewCone {
	return ViewCone{
		Heading:     heading,
		Width:       deg2rad(defaultViewWidthDeg),
		PlayerRange: defaultPlayerRange,
		SenseRange:  defaultSenseRange,
	}
}

// Sees returns true if an observer at o can identify a player at p.
func (v ViewCone) Sees(o, p Vec2) bool {
	dist := o.Dist(p)
	if dist <= v.SenseRange {
		return true
	}
	if dist > v.PlayerRange {
		return false
	}
	diff := normalizeAngle(HeadingTo(o, p) - v.Heading)
	return math.Abs(diff) <= v.Width/2.0
}

// PlayerFact is a remembered player.
type PlayerFact struct {
	State      AgentState
	Confidence float64 // 0-1, decays while unseen
	LastCycle  int
	Visible    bool
}

// Memory is an agent's working memory of the other players on the pitch.
type Memory struct {
	facts map[playerKey]*PlayerFact
}

type playerKey struct {
	side Side
	unum int
}

// NewMemory creates an empty memory.
func NewMemory() *Memory {
	return &Memory{facts: map[playerKey]*PlayerFact{}}
}

// Observe refreshes seen players and decays the rest. Facts that reach
// zero confidence are dropped.
func (m *Memory) Observe(seen []AgentState, cycle int) {
	for _, f := range m.facts {
		f.Visible = false
	}
	for _, s := range seen {
		k := playerKey{side: s.Side, unum: s.Unum}
		f, ok := m.facts[k]
		if !ok {
			f = &PlayerFact{}
			m.facts[k] = f
		}
		f.State = s
		f.Confidence = 1.0
		f.LastCycle = cycle
		f.Visible = true
	}
	for k, f := range m.facts {
		if f.Visible {
			continue
		}
		f.Confidence -= memoryDecayPerCycle
		// An unseen player's velocity is unknown; hold it still.
		f.State.Vel = Vec2{}
		if f.Confidence <= 0 {
			delete(m.facts, k)
		}
	}
}

// Fact returns the remembered player, if any.
func (m *Memory) Fact(side Side, unum int) (PlayerFact, bool) {
	f, ok := m.facts[playerKey{side: side, unum: unum}]
	if !ok {
		return PlayerFact{}, false
	}
	return *f, true
}

// Slots returns TeamSize slots for one side, filled with players whose
// confidence is still above the presence threshold.
func (m *Memory) Slots(side Side) []*AgentState {
	slots := make([]*AgentState, TeamSize)
	for k, f := range m.facts {
		if k.side != side || k.unum < 1 || k.unum > TeamSize || f.Confidence <= memoryPresentThresh {
			continue
		}
		st := f.State
		slots[k.unum-1] = &st
	}
	return slots
}

// Len returns how many players are remembered.
func (m *Memory) Len() int {
	return len(m.facts)
}
