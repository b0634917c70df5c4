package game

import "fmt"

// FormationType identifies the team shape used for idle positioning.
type FormationType int

const (
	Formation442 FormationType = iota // flat back four, two banks of four
	Formation433                      // three forwards, narrow midfield
	Formation532                      // back five for deep defending
)

func (ft FormationType) String() string {
	switch ft {
	case Formation442:
		return "4-4-2"
	case Formation433:
		return "4-3-3"
	case Formation532:
		return "5-3-2"
	default:
		return "unknown"
	}
}

// ParseFormation accepts "442", "4-4-2" and the like.
func ParseFormation(s string) (FormationType, error) {
	switch s {
	case "", "442", "4-4-2":
		return Formation442, nil
	case "433", "4-3-3":
		return Formation433, nil
	case "532", "5-3-2":
		return Formation532, nil
	}
	return Formation442, fmt.Errorf("unknown formation %q", s)
}

// Ball-following weights: how far the whole shape slides with the ball.
const (
	formationShiftX = 0.5
	formationShiftY = 0.3
	goalieShiftY    = 0.1
)

// homeOffsets returns base positions for unums 1..11 with the ball on the
// centre spot. Slot 0 is the goalkeeper.
func homeOffsets(ft FormationType) [TeamSize]Vec2 {
	switch ft {
	case Formation433:
		return [TeamSize]Vec2{
			{-50, 0},
			{-32, -20}, {-35, -7}, {-35, 7}, {-32, 20},
			{-18, 0}, {-12, -12}, {-12, 12},
			{-2, -20}, {0, 0}, {-2, 20},
		}
	case Formation532:
		return [TeamSize]Vec2{
			{-50, 0},
			{-30, -24}, {-37, -10}, {-38, 0}, {-37, 10}, {-30, 24},
			{-18, -12}, {-20, 0}, {-18, 12},
			{-4, -6}, {-4, 6},
		}
	default:
		return [TeamSize]Vec2{
			{-50, 0},
			{-34, -20}, {-36, -7}, {-36, 7}, {-34, 20},
			{-18, -20}, {-20, -6}, {-20, 6}, {-18, 20},
			{-4, -6}, {-4, 6},
		}
	}
}

// HomePosition returns unum's formation position given the ball.
func (ft FormationType) HomePosition(unum int, ball Vec2) Vec2 {
	if unum < 1 || unum > TeamSize {
		return Vec2{}
	}
	base := homeOffsets(ft)[unum-1]
	if unum == 1 {
		return Vec2{X: base.X, Y: clamp(ball.Y*goalieShiftY, -6, 6)}
	}
	return Vec2{
		X: clamp(base.X+ball.X*formationShiftX, -PitchHalfLength+2, PitchHalfLength-2),
		Y: clamp(base.Y+ball.Y*formationShiftY, -PitchHalfWidth+2, PitchHalfWidth-2),
	}
}
