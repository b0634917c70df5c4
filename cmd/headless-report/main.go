package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Garsondee/pitch-sense/internal/config"
	"github.com/Garsondee/pitch-sense/internal/game"
	"github.com/Garsondee/pitch-sense/internal/trace"
)

type runStats struct {
	runIndex int
	seed     int64
	cycles   int

	firstBlockCycle   int
	firstChaseCycle   int
	firstTackleCycle  int
	ballWonCycle      int
	concededCycle     int
	behaviorChanges   int
	blockAssigns      int
	noBlockerEvents   int
	possessionChanges int
	blockers          map[string]struct{}

	summary game.MatchSummary
	records int
}

type runConfig struct {
	cycles  int
	jitter  float64 // < 0 keeps the scenario's jitter
	verbose bool
}

func main() {
	var runs int
	var cycles int
	var seedBase int64
	var seedStep int64
	var jitter float64
	var configPath string
	var tracePath string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&cycles, "cycles", 0, "cycles per run (0 = scenario default)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&jitter, "jitter", -1, "start-position jitter in metres (<0 = scenario default)")
	flag.StringVar(&configPath, "config", "", "YAML scenario file (empty = built-in centre-dribble)")
	flag.StringVar(&tracePath, "trace", "", "write every agent's per-cycle assignment to this msgpack file")
	flag.BoolVar(&verbose, "verbose", false, "record per-candidate and per-position log entries")
	flag.Parse()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()

	if runs <= 0 {
		log.Error().Int("runs", runs).Msg("-runs must be > 0")
		os.Exit(2)
	}
	if cycles < 0 {
		log.Error().Int("cycles", cycles).Msg("-cycles must be >= 0")
		os.Exit(2)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Error().Err(err).Msg("load config")
		os.Exit(1)
	}
	rc := runConfig{cycles: cycles, jitter: jitter, verbose: verbose}
	if rc.cycles == 0 {
		rc.cycles = cfg.Scenario.Cycles
	}

	var tw *trace.Writer
	if tracePath != "" {
		f, err := os.Create(tracePath) // #nosec G304 -- path comes from the command line
		if err != nil {
			log.Error().Err(err).Str("path", tracePath).Msg("create trace")
			os.Exit(1)
		}
		defer f.Close()
		buf := bufio.NewWriter(f)
		defer func() {
			if err := buf.Flush(); err != nil {
				log.Error().Err(err).Str("path", tracePath).Msg("flush trace")
			}
		}()
		tw = trace.NewWriter(buf)
	}

	fmt.Printf("=== Headless Block Report ===\n")
	fmt.Printf("scenario=%s runs=%d cycles=%d seed_base=%d seed_step=%d perception=%v\n\n",
		cfg.Scenario.Name, runs, rc.cycles, seedBase, seedStep, cfg.Scenario.Perception)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		start := time.Now()
		rs, err := runScenario(cfg, rc, i+1, seed, tw)
		if err != nil {
			log.Error().Err(err).Int("run", i+1).Msg("run failed")
			os.Exit(1)
		}
		log.Debug().Int("run", i+1).Int64("seed", seed).Dur("took", time.Since(start)).
			Int("records", rs.records).Msg("run complete")
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
	if tw != nil {
		log.Info().Str("path", tracePath).Int("records", tw.Count()).Msg("trace written")
	}
}

func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func runScenario(cfg *config.File, rc runConfig, runIndex int, seed int64, tw *trace.Writer) (runStats, error) {
	opts := append(cfg.SimOptions(), game.WithSeed(seed), game.WithVerbose(rc.verbose))
	if rc.jitter >= 0 {
		opts = append(opts, game.WithJitter(rc.jitter))
	}
	s := game.NewSim(opts...)

	records := 0
	for s.Cycle() < rc.cycles && !s.Conceded() {
		s.Step()
		if tw == nil {
			continue
		}
		for _, rec := range trace.FromSim(s) {
			if err := tw.Write(rec); err != nil {
				return runStats{}, fmt.Errorf("run %d: %w", runIndex, err)
			}
			records++
		}
	}

	entries := s.SimLog.Entries()
	blockers := map[string]struct{}{}
	for _, e := range entries {
		if e.Category == "block" && e.Key == "assign" {
			blockers[e.Agent] = struct{}{}
		}
	}
	sum := s.Reporter.Summary()
	return runStats{
		runIndex:          runIndex,
		seed:              seed,
		cycles:            s.Cycle(),
		firstBlockCycle:   sum.FirstBlockCycle,
		firstChaseCycle:   firstCycle(entries, "dispatch", "behavior", "→ intercept"),
		firstTackleCycle:  firstCycle(entries, "ball", "tackle", ""),
		ballWonCycle:      sum.BallWonCycle,
		concededCycle:     firstCycle(entries, "ball", "conceded", ""),
		behaviorChanges:   s.SimLog.CountCategory("dispatch", "behavior"),
		blockAssigns:      s.SimLog.CountCategory("block", "assign"),
		noBlockerEvents:   s.SimLog.CountCategory("block", "none"),
		possessionChanges: s.SimLog.CountCategory("ball", "possession"),
		blockers:          blockers,
		summary:           sum,
		records:           records,
	}, nil
}

func firstCycle(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Cycle
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_block=%d first_chase=%d first_tackle=%d ball_won=%d conceded=%d\n",
		rs.firstBlockCycle, rs.firstChaseCycle, rs.firstTackleCycle, rs.ballWonCycle, rs.concededCycle)
	fmt.Printf("event_totals: behavior_change=%d block_assign=%d no_blocker=%d possession_change=%d\n",
		rs.behaviorChanges, rs.blockAssigns, rs.noBlockerEvents, rs.possessionChanges)
	fmt.Printf("blocker_labels: %s\n", joinSet(rs.blockers))
	fmt.Print(rs.summary.Format())
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalChanges := 0
	totalAssigns := 0
	totalNone := 0
	totalBlockerChanges := 0
	agreement := 0.0
	won := 0
	conceded := 0
	blockCycles := make([]int, 0, len(all))
	wonCycles := make([]int, 0, len(all))
	blockersGlobal := map[string]struct{}{}

	for _, rs := range all {
		totalChanges += rs.behaviorChanges
		totalAssigns += rs.blockAssigns
		totalNone += rs.noBlockerEvents
		totalBlockerChanges += rs.summary.BlockerChanges
		agreement += rs.summary.AgreementRatio()
		if rs.firstBlockCycle >= 0 {
			blockCycles = append(blockCycles, rs.firstBlockCycle)
		}
		if rs.ballWonCycle >= 0 {
			won++
			wonCycles = append(wonCycles, rs.ballWonCycle)
		}
		if rs.concededCycle >= 0 {
			conceded++
		}
		for k := range rs.blockers {
			blockersGlobal[k] = struct{}{}
		}
	}

	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("runs=%d ball_won=%d conceded=%d\n", len(all), won, conceded)
	fmt.Printf("avg_events_per_run: behavior_change=%.1f block_assign=%.1f no_blocker=%.1f blocker_changes=%.1f\n",
		avg(totalChanges, len(all)), avg(totalAssigns, len(all)), avg(totalNone, len(all)), avg(totalBlockerChanges, len(all)))
	fmt.Printf("avg_agreement=%.2f\n", agreement/float64(max(1, len(all))))
	fmt.Printf("phase_marker_avg_cycles: first_block=%s ball_won=%s\n",
		avgCycleString(blockCycles), avgCycleString(wonCycles))
	fmt.Printf("unique_blockers=%d [%s]\n", len(blockersGlobal), joinSet(blockersGlobal))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgCycleString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
