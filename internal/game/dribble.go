package game

// DribblePrediction is the assumed straight-line path of the ball once the
// fastest opponent gains control of it.
type DribblePrediction struct {
	StartCycle int     // opponent reach cycle
	Origin     Vec2    // ball position at StartCycle
	Heading    float64 // radians, toward our goal
	Speed      float64 // metres per cycle
}

// Candidate is one sampled block point on the dribble path.
type Candidate struct {
	Cycle int
	Pos   Vec2
}

// PredictDribble derives the dribble path from the snapshot's opponent
// reach cycle and the ball's current motion.
func PredictDribble(snap *Snapshot, p Params) DribblePrediction {
	start := snap.OpponentReach
	if start < 0 {
		start = 0
	}
	origin := snap.Ball.InertiaPoint(start)
	return DribblePrediction{
		StartCycle: start,
		Origin:     origin,
		Heading:    HeadingTo(origin, snap.OurGoal),
		Speed:      p.DribbleSpeed,
	}
}

// Candidates samples one point per cycle for cycles StartCycle+1 through
// StartCycle+horizon. Each point is the previous one advanced by the
// dribble velocity.
func (d DribblePrediction) Candidates(horizon int) []Candidate {
	if horizon <= 0 {
		return nil
	}
	vel := Polar(d.Speed, d.Heading)
	out := make([]Candidate, 0, horizon)
	kickPos := d.Origin
	for i := 1; i <= horizon; i++ {
		kickPos = kickPos.Add(vel)
		out = append(out, Candidate{Cycle: d.StartCycle + i, Pos: kickPos})
	}
	return out
}
