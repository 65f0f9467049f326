// Package config holds the settings shared by the search strategies and the
// command line front end, together with the configuration error taxonomy.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidConfig is wrapped by every configuration error. Configuration
// errors are always reported before any worker is started.
var ErrInvalidConfig = errors.New("invalid configuration")

// WorkerCountError reports a worker count that is not a positive integer.
type WorkerCountError struct {
	Workers int
}

func (e *WorkerCountError) Error() string {
	return fmt.Sprintf("invalid worker count: %d (must be >= 1)", e.Workers)
}

func (e *WorkerCountError) Unwrap() error { return ErrInvalidConfig }

// UnknownValueError reports a setting name that does not match any known
// value.
type UnknownValueError struct {
	Setting string
	Value   string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Setting, e.Value)
}

func (e *UnknownValueError) Unwrap() error { return ErrInvalidConfig }

// ValidateWorkers returns a *WorkerCountError if workers < 1.
func ValidateWorkers(workers int) error {
	if workers < 1 {
		return &WorkerCountError{Workers: workers}
	}
	return nil
}

// Strategy selects how a search is parallelized.
type Strategy int

const (
	// Partitioned splits the array into one contiguous chunk per worker.
	Partitioned Strategy = iota
	// Cooperative runs one sequential loop and hands every probe
	// computation to a worker pool.
	Cooperative
	// Speculative is Partitioned, but stops the remaining workers once the
	// key has been found.
	Speculative
)

var strategyNames = []string{"partitioned", "cooperative", "speculative"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy maps a strategy name (case-insensitive) to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	return 0, &UnknownValueError{Setting: "strategy", Value: name}
}

// MergePolicy decides what happens when more than one worker finds the key,
// which is only possible when the key occurs more than once.
type MergePolicy int

const (
	// LastWriterWins keeps whichever hit was written last. Which index that
	// is depends on scheduling.
	LastWriterWins MergePolicy = iota
	// FirstWriterWins keeps the first hit written; later writes are no-ops.
	FirstWriterWins
	// LowestIndexWins keeps the smallest index written, which makes the
	// outcome independent of scheduling.
	LowestIndexWins
)

var mergePolicyNames = []string{"last", "first", "lowest"}

func (m MergePolicy) String() string {
	if m < 0 || int(m) >= len(mergePolicyNames) {
		return fmt.Sprintf("MergePolicy(%d)", int(m))
	}
	return mergePolicyNames[m]
}

// ParseMergePolicy maps a policy name (case-insensitive) to a MergePolicy.
func ParseMergePolicy(name string) (MergePolicy, error) {
	for i, n := range mergePolicyNames {
		if strings.EqualFold(n, name) {
			return MergePolicy(i), nil
		}
	}
	return 0, &UnknownValueError{Setting: "merge policy", Value: name}
}

const (
	DefaultInput = "number.txt"
	DefaultSize  = 100
	DefaultKey   = 77
)

// Config is the complete configuration of one search run.
type Config struct {
	Workers     int
	Key         int
	Input       string
	Size        int
	Strategy    Strategy
	MergePolicy MergePolicy
	LogLevel    slog.Level
	LogFormat   string
	MetricsAddr string
}

// Default returns a Config with the reference settings. Workers is left at
// zero and must be set by the caller.
func Default() Config {
	return Config{
		Key:         DefaultKey,
		Input:       DefaultInput,
		Size:        DefaultSize,
		Strategy:    Partitioned,
		MergePolicy: LastWriterWins,
		LogLevel:    slog.LevelInfo,
		LogFormat:   "text",
	}
}

// Validate checks the settings that can be checked without touching the
// input.
func (c Config) Validate() error {
	if err := ValidateWorkers(c.Workers); err != nil {
		return err
	}
	if c.Size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrInvalidConfig, c.Size)
	}
	if c.Input == "" {
		return fmt.Errorf("%w: empty input", ErrInvalidConfig)
	}
	if c.Strategy < Partitioned || c.Strategy > Speculative {
		return &UnknownValueError{Setting: "strategy", Value: c.Strategy.String()}
	}
	if c.MergePolicy < LastWriterWins || c.MergePolicy > LowestIndexWins {
		return &UnknownValueError{Setting: "merge policy", Value: c.MergePolicy.String()}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &UnknownValueError{Setting: "log format", Value: c.LogFormat}
	}
	return nil
}
