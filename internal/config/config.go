// Package config loads planner parameters, player types and match
// scenarios from YAML.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/pitch-sense/internal/game"
)

//go:embed default.yaml
var defaultYAML []byte

// File is the top-level YAML document.
type File struct {
	Params      ParamsYAML       `yaml:"params"`
	PlayerTypes []PlayerTypeYAML `yaml:"player_types"`
	Scenario    ScenarioYAML     `yaml:"scenario"`
}

// ParamsYAML mirrors game.Params. Omitted keys keep their defaults.
type ParamsYAML struct {
	Horizon               int     `yaml:"horizon"`
	TurnToleranceDeg      float64 `yaml:"turn_tolerance_deg"`
	DribbleSpeed          float64 `yaml:"dribble_speed"`
	ExcludeGoalie         bool    `yaml:"exclude_goalie"`
	GoalieUnum            int     `yaml:"goalie_unum"`
	BlockArrivalTolerance float64 `yaml:"block_arrival_tolerance"`
	BlockDashPower        float64 `yaml:"block_dash_power"`
	BlockDirThresholdDeg  float64 `yaml:"block_dir_threshold_deg"`
	InterceptMaxCycle     int     `yaml:"intercept_max_cycle"`
	InterceptEagerCycle   int     `yaml:"intercept_eager_cycle"`
	InterceptOppMargin    int     `yaml:"intercept_opp_margin"`
	TackleDist            float64 `yaml:"tackle_dist"`
	NormalDashPower       float64 `yaml:"normal_dash_power"`
	NeckBallDist          float64 `yaml:"neck_ball_dist"`
}

// PlayerTypeYAML registers or overrides a heterogeneous player type.
type PlayerTypeYAML struct {
	ID            int     `yaml:"id"`
	SpeedMax      float64 `yaml:"speed_max"`
	Decay         float64 `yaml:"decay"`
	InertiaMoment float64 `yaml:"inertia_moment"`
	DashPowerRate float64 `yaml:"dash_power_rate"`
	Effort        float64 `yaml:"effort"`
	KickableArea  float64 `yaml:"kickable_area"`
	MaxMoment     float64 `yaml:"max_moment"`
}

// BallYAML places the ball.
type BallYAML struct {
	Pos [2]float64 `yaml:"pos"`
	Vel [2]float64 `yaml:"vel"`
}

// PlayerYAML places one player.
type PlayerYAML struct {
	Unum    int        `yaml:"unum"`
	Pos     [2]float64 `yaml:"pos"`
	Vel     [2]float64 `yaml:"vel"`
	BodyDeg float64    `yaml:"body_deg"`
	Type    int        `yaml:"type"`
}

// ScenarioYAML describes a match fragment for the headless sim.
type ScenarioYAML struct {
	Name       string       `yaml:"name"`
	Cycles     int          `yaml:"cycles"`
	Formation  string       `yaml:"formation"`
	Perception bool         `yaml:"perception"` // false runs every agent omniscient
	Seed       int64        `yaml:"seed"`
	Jitter     float64      `yaml:"jitter"`
	Ball       BallYAML     `yaml:"ball"`
	Teammates  []PlayerYAML `yaml:"teammates"`
	Opponents  []PlayerYAML `yaml:"opponents"`
}

func paramsYAML(p game.Params) ParamsYAML {
	return ParamsYAML{
		Horizon:               p.Horizon,
		TurnToleranceDeg:      p.TurnToleranceDeg,
		DribbleSpeed:          p.DribbleSpeed,
		ExcludeGoalie:         p.ExcludeGoalie,
		GoalieUnum:            p.GoalieUnum,
		BlockArrivalTolerance: p.BlockArrivalTolerance,
		BlockDashPower:        p.BlockDashPower,
		BlockDirThresholdDeg:  p.BlockDirThresholdDeg,
		InterceptMaxCycle:     p.InterceptMaxCycle,
		InterceptEagerCycle:   p.InterceptEagerCycle,
		InterceptOppMargin:    p.InterceptOppMargin,
		TackleDist:            p.TackleDist,
		NormalDashPower:       p.NormalDashPower,
		NeckBallDist:          p.NeckBallDist,
	}
}

// GameParams converts the YAML block to game.Params.
func (f *File) GameParams() game.Params {
	p := f.Params
	return game.Params{
		Horizon:               p.Horizon,
		TurnToleranceDeg:      p.TurnToleranceDeg,
		DribbleSpeed:          p.DribbleSpeed,
		ExcludeGoalie:         p.ExcludeGoalie,
		GoalieUnum:            p.GoalieUnum,
		BlockArrivalTolerance: p.BlockArrivalTolerance,
		BlockDashPower:        p.BlockDashPower,
		BlockDirThresholdDeg:  p.BlockDirThresholdDeg,
		InterceptMaxCycle:     p.InterceptMaxCycle,
		InterceptEagerCycle:   p.InterceptEagerCycle,
		InterceptOppMargin:    p.InterceptOppMargin,
		TackleDist:            p.TackleDist,
		NormalDashPower:       p.NormalDashPower,
		NeckBallDist:          p.NeckBallDist,
	}
}

func (pt PlayerTypeYAML) playerType() game.PlayerType {
	return game.PlayerType{
		ID:            pt.ID,
		SpeedMax:      pt.SpeedMax,
		Decay:         pt.Decay,
		InertiaMoment: pt.InertiaMoment,
		DashPowerRate: pt.DashPowerRate,
		Effort:        pt.Effort,
		KickableArea:  pt.KickableArea,
		MaxMoment:     pt.MaxMoment,
	}
}

// Default returns the embedded default configuration.
func Default() (*File, error) {
	f, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded default config: %w", err)
	}
	return f, nil
}

// Load reads and validates a YAML config file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(b []byte) (*File, error) {
	f := &File{
		Params: paramsYAML(game.DefaultParams()),
		Scenario: ScenarioYAML{
			Name:       "unnamed",
			Cycles:     100,
			Formation:  "4-4-2",
			Perception: true,
			Seed:       1,
		},
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks parameters, player types and the scenario roster.
func (f *File) Validate() error {
	if err := f.GameParams().Validate(); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	for _, pt := range f.PlayerTypes {
		if err := pt.playerType().Validate(); err != nil {
			return err
		}
	}
	sc := f.Scenario
	if sc.Cycles <= 0 {
		return fmt.Errorf("scenario %q: cycles must be > 0, got %d", sc.Name, sc.Cycles)
	}
	if _, err := game.ParseFormation(sc.Formation); err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	if err := validateRoster("teammates", sc.Teammates); err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	if err := validateRoster("opponents", sc.Opponents); err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	return nil
}

func validateRoster(side string, players []PlayerYAML) error {
	seen := map[int]bool{}
	for _, p := range players {
		if p.Unum < 1 || p.Unum > game.TeamSize {
			return fmt.Errorf("%s: unum %d out of range 1..%d", side, p.Unum, game.TeamSize)
		}
		if seen[p.Unum] {
			return fmt.Errorf("%s: duplicate unum %d", side, p.Unum)
		}
		seen[p.Unum] = true
	}
	return nil
}

// SimOptions builds the options that reproduce the scenario in a game.Sim.
// Callers may append further options; later infra options win.
func (f *File) SimOptions() []game.SimOption {
	sc := f.Scenario
	ft, _ := game.ParseFormation(sc.Formation)
	opts := []game.SimOption{
		game.WithParams(f.GameParams()),
		game.WithFormation(ft),
		game.WithOmniscient(!sc.Perception),
		game.WithSeed(sc.Seed),
		game.WithJitter(sc.Jitter),
	}
	for _, pt := range f.PlayerTypes {
		opts = append(opts, game.WithPlayerType(pt.playerType()))
	}
	opts = append(opts, game.WithBall(sc.Ball.Pos[0], sc.Ball.Pos[1], sc.Ball.Vel[0], sc.Ball.Vel[1]))
	opts = appendRoster(opts, game.SideOurs, sc.Teammates)
	opts = appendRoster(opts, game.SideTheirs, sc.Opponents)
	return opts
}

func appendRoster(opts []game.SimOption, side game.Side, players []PlayerYAML) []game.SimOption {
	for _, p := range players {
		if side == game.SideOurs {
			opts = append(opts, game.WithTeammate(p.Unum, p.Pos[0], p.Pos[1], p.BodyDeg))
		} else {
			opts = append(opts, game.WithOpponent(p.Unum, p.Pos[0], p.Pos[1], p.BodyDeg))
		}
		if p.Vel != [2]float64{} {
			opts = append(opts, game.WithVelocity(side, p.Unum, p.Vel[0], p.Vel[1]))
		}
		if p.Type != 0 {
			opts = append(opts, game.WithType(side, p.Unum, p.Type))
		}
	}
	return opts
}
