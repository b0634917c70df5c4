package game

import (
	"fmt"
	"math"
)

const (
	maxDashPower    = 100.0
	dashTableCycles = 50 // simulated dash cycles before extrapolating at terminal speed

	// Unreachable is the reach-cycle sentinel for "not within the search horizon".
	Unreachable = math.MaxInt32
)

// PlayerType is the physical profile shared by players of one heterogeneous type.
type PlayerType struct {
	ID            int
	SpeedMax      float64 // metres per cycle cap
	Decay         float64 // per-cycle velocity retention
	InertiaMoment float64 // turn damping per unit speed
	DashPowerRate float64
	Effort        float64
	KickableArea  float64 // control radius
	MaxMoment     float64 // degrees of turn per command at rest
}

// playerTypes mirrors the server's heterogeneous type table. Type 0 is the default.
var playerTypes = map[int]PlayerType{
	0: {ID: 0, SpeedMax: 1.05, Decay: 0.4, InertiaMoment: 5.0, DashPowerRate: 0.006, Effort: 1.0, KickableArea: 1.085, MaxMoment: 180},
	1: {ID: 1, SpeedMax: 1.05, Decay: 0.45, InertiaMoment: 6.25, DashPowerRate: 0.0058, Effort: 0.95, KickableArea: 1.125, MaxMoment: 180},
	2: {ID: 2, SpeedMax: 1.05, Decay: 0.5, InertiaMoment: 7.5, DashPowerRate: 0.0055, Effort: 0.9, KickableArea: 1.185, MaxMoment: 180},
	3: {ID: 3, SpeedMax: 1.05, Decay: 0.35, InertiaMoment: 3.75, DashPowerRate: 0.0064, Effort: 1.0, KickableArea: 1.035, MaxMoment: 180},
}

// DefaultPlayerType returns the baseline type 0 profile.
func DefaultPlayerType() PlayerType {
	return playerTypes[0]
}

// PlayerTypeByID returns a built-in type, or false if the id is unknown.
func PlayerTypeByID(id int) (PlayerType, bool) {
	pt, ok := playerTypes[id]
	return pt, ok
}

// Validate reports profiles that would make the kinematic model degenerate.
func (pt PlayerType) Validate() error {
	switch {
	case pt.SpeedMax <= 0:
		return fmt.Errorf("player type %d: speed_max must be > 0, got %.3f", pt.ID, pt.SpeedMax)
	case pt.Decay < 0 || pt.Decay >= 1:
		return fmt.Errorf("player type %d: decay must be in [0,1), got %.3f", pt.ID, pt.Decay)
	case pt.InertiaMoment < 0:
		return fmt.Errorf("player type %d: inertia_moment must be >= 0, got %.3f", pt.ID, pt.InertiaMoment)
	case pt.DashPowerRate <= 0 || pt.Effort <= 0:
		return fmt.Errorf("player type %d: dash_power_rate and effort must be > 0", pt.ID)
	case pt.KickableArea <= 0:
		return fmt.Errorf("player type %d: kickable_area must be > 0, got %.3f", pt.ID, pt.KickableArea)
	case pt.MaxMoment <= 0:
		return fmt.Errorf("player type %d: max_moment must be > 0, got %.3f", pt.ID, pt.MaxMoment)
	}
	return nil
}

// DashAccel is the per-cycle acceleration of a dash at the given power.
func (pt PlayerType) DashAccel(power float64) float64 {
	return clamp(power, 0, maxDashPower) * pt.DashPowerRate * pt.Effort
}

// EffectiveTurn returns the body turn in degrees produced by a turn command
// of `moment` degrees while moving at `speed`.
func (pt PlayerType) EffectiveTurn(moment, speed float64) float64 {
	if speed < 0 {
		speed = 0
	}
	return moment / (1.0 + pt.InertiaMoment*speed)
}

// InertiaPoint projects pos forward n cycles under vel with no further dashes.
func (pt PlayerType) InertiaPoint(pos, vel Vec2, n int) Vec2 {
	return pos.Add(vel.Scale(inertiaSum(pt.Decay, n)))
}

// CyclesToReachDistance is the number of full-power dash cycles from rest
// needed to cover dist. It is non-decreasing in dist and zero for dist <= 0.
func (pt PlayerType) CyclesToReachDistance(dist float64) int {
	if dist <= 0 {
		return 0
	}
	accel := pt.DashAccel(maxDashPower)
	speed, covered := 0.0, 0.0
	for c := 1; c <= dashTableCycles; c++ {
		speed = math.Min(speed+accel, pt.SpeedMax)
		covered += speed
		if covered >= dist {
			return c
		}
		speed *= pt.Decay
	}
	step := math.Min(speed+accel, pt.SpeedMax)
	if step <= 0 {
		return Unreachable
	}
	extra := math.Ceil((dist - covered) / step)
	if extra >= float64(Unreachable-dashTableCycles) {
		return Unreachable
	}
	return dashTableCycles + int(extra)
}

// inertiaSum returns 1 + d + d^2 + ... + d^(n-1).
func inertiaSum(decay float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if decay >= 1 {
		return float64(n)
	}
	return (1 - math.Pow(decay, float64(n))) / (1 - decay)
}
