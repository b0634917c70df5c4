package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a simulation.
type SimLogEntry struct {
	Cycle    int
	Agent    string  // label e.g. "O4", "T9", or "--" for global events
	Side     string  // "ours", "theirs", or "--"
	Category string  // block, intercept, dispatch, move, ball, percept
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[C=042] O4   block     assign           blocker 4 at (-12.0,3.1) c=9
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[C=%03d] %-4s %-9s %-16s %s",
		e.Cycle, e.Agent, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. It is unbounded and machine-readable;
// the viewer's DecisionLog is the on-screen ring buffer.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-cycle position and
// per-candidate entries are recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether verbose entries are kept.
func (sl *SimLog) Verbose() bool {
	return sl.verbose
}

// Add records a new entry.
func (sl *SimLog) Add(cycle int, agent, side, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Cycle:    cycle,
		Agent:    agent,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(cycle int, agent, side, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(cycle, agent, side, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterAgent returns entries for a specific agent label.
func (sl *SimLog) FilterAgent(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Agent == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterCycleRange returns entries within [from, to] inclusive.
func (sl *SimLog) FilterCycleRange(from, to int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Cycle >= from && e.Cycle <= to {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a cycle range.
func (sl *SimLog) FormatRange(from, to int) string {
	var sb strings.Builder
	for _, e := range sl.FilterCycleRange(from, to) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
