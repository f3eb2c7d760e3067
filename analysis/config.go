package analysis

import (
	"log/slog"
	"runtime"
)

// Defaults applied by NewModel to zero-valued Config fields
const (
	DefaultMaxIterations  = 30
	DefaultSingularityTol = 1e-14
)

// Config holds the analysis settings
type Config struct {
	// Cap on activation passes per load combination
	MaxIterations int
	// Number of load combinations solved concurrently
	Workers int
	// Reciprocal condition number below which the free-DOF stiffness is
	// treated as singular
	SingularityTol float64
	// Solver for the partitioned free-DOF system. Defaults to LUSolver.
	Solver LinearSolver

	Logger *slog.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.SingularityTol <= 0 {
		cfg.SingularityTol = DefaultSingularityTol
	}
	if cfg.Solver == nil {
		cfg.Solver = LUSolver{Tol: cfg.SingularityTol}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}
