package game

import "fmt"

// Params holds the tunable constants of the per-cycle decision.
type Params struct {
	// Block assignment.
	Horizon               int     // candidate block points sampled past the opponent reach cycle
	TurnToleranceDeg      float64 // heading error accepted without a turn
	DribbleSpeed          float64 // assumed ball advance per cycle under dribble
	ExcludeGoalie         bool
	GoalieUnum            int
	BlockArrivalTolerance float64
	BlockDashPower        float64
	BlockDirThresholdDeg  float64

	// Dispatcher.
	InterceptMaxCycle   int
	InterceptEagerCycle int // self reach at or below this always chases
	InterceptOppMargin  int
	TackleDist          float64
	NormalDashPower     float64
	NeckBallDist        float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		Horizon:               30,
		TurnToleranceDeg:      15,
		DribbleSpeed:          0.8,
		ExcludeGoalie:         true,
		GoalieUnum:            1,
		BlockArrivalTolerance: 0.1,
		BlockDashPower:        100,
		BlockDirThresholdDeg:  20,

		InterceptMaxCycle:   50,
		InterceptEagerCycle: 3,
		InterceptOppMargin:  3,
		TackleDist:          2.0,
		NormalDashPower:     80,
		NeckBallDist:        18,
	}
}

// Validate rejects parameter sets the planner cannot run with.
func (p Params) Validate() error {
	switch {
	case p.Horizon <= 0:
		return fmt.Errorf("horizon must be > 0, got %d", p.Horizon)
	case p.TurnToleranceDeg < 0 || p.TurnToleranceDeg >= 180:
		return fmt.Errorf("turn_tolerance_deg must be in [0,180), got %.2f", p.TurnToleranceDeg)
	case p.DribbleSpeed < 0:
		return fmt.Errorf("dribble_speed must be >= 0, got %.2f", p.DribbleSpeed)
	case p.ExcludeGoalie && (p.GoalieUnum < 1 || p.GoalieUnum > TeamSize):
		return fmt.Errorf("goalie_unum must be in [1,%d], got %d", TeamSize, p.GoalieUnum)
	case p.BlockArrivalTolerance <= 0:
		return fmt.Errorf("block_arrival_tolerance must be > 0, got %.2f", p.BlockArrivalTolerance)
	case p.InterceptMaxCycle <= 0:
		return fmt.Errorf("intercept_max_cycle must be > 0, got %d", p.InterceptMaxCycle)
	}
	return nil
}
