package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/notargets/springfem/loads"
	"github.com/notargets/springfem/node"
	"golang.org/x/sync/errgroup"
)

// Run summarises one call to Analyze
type Run struct {
	ID           uuid.UUID
	Combinations []ComboResult
}

// ComboResult is the outcome of the activation iteration for one combination
type ComboResult struct {
	Combination string
	Iterations  int
	Converged   bool
	Inactive    []string // Springs and supports left inactive
	Err         error
}

// Result returns the outcome for a combination name, or nil
func (r *Run) Result(name string) *ComboResult {
	for i := range r.Combinations {
		if r.Combinations[i].Combination == name {
			return &r.Combinations[i]
		}
	}
	return nil
}

// Analyze solves the named load combinations, or all of them when none are
// named. Combinations run concurrently on up to Config.Workers goroutines.
// The returned error joins the failures of every combination; results of the
// others are stored regardless.
func (m *Model) Analyze(ctx context.Context, comboNames ...string) (*Run, error) {
	if err := m.prepare(); err != nil {
		return nil, err
	}

	refs := m.combos.Refs()
	if len(comboNames) > 0 {
		refs = refs[:0:0]
		for _, name := range comboNames {
			ref, err := m.combos.Resolve(name)
			if err != nil {
				return nil, err
			}
			refs = append(refs, ref)
		}
	}

	run := &Run{ID: uuid.New(), Combinations: make([]ComboResult, len(refs))}
	logger := m.cfg.Logger.With("run", run.ID.String())
	logger.Info("analysis started",
		"nodes", len(m.nodes), "springs", len(m.springs),
		"combinations", len(refs), "workers", m.cfg.Workers)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(m.cfg.Workers)
	for k, ref := range refs {
		g.Go(func() error {
			res := &run.Combinations[k]
			res.Combination = ref.Name
			if err := ctx.Err(); err != nil {
				res.Err = err
				return nil
			}
			m.analyzeCombination(ref, res, logger.With("combination", ref.Name))
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, res := range run.Combinations {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	logger.Info("analysis finished", "elapsed", time.Since(start), "failed", len(errs))
	return run, errors.Join(errs...)
}

// analyzeCombination runs the activation iteration for one combination slot
func (m *Model) analyzeCombination(ref loads.Ref, res *ComboResult, logger *slog.Logger) {
	m.initializeStates(ref)

	for res.Iterations < m.cfg.MaxIterations {
		res.Iterations++

		sol, err := m.solvePass(ref)
		if err != nil {
			res.Err = m.withCombination(ref, err)
			logger.Error("solve failed", "iteration", res.Iterations, "err", err)
			return
		}
		if err = m.store(ref, sol); err != nil {
			res.Err = err
			return
		}

		changed, err := m.updateStates(ref)
		if err != nil {
			res.Err = fmt.Errorf("load combination %q: %w", ref.Name, err)
			return
		}
		logger.Debug("activation pass", "iteration", res.Iterations, "changed", changed)
		if len(changed) == 0 {
			res.Converged = true
			res.Inactive = m.inactive(ref)
			return
		}

		if res.Iterations == m.cfg.MaxIterations {
			res.Inactive = m.inactive(ref)
			res.Err = &NonConvergenceError{
				Combination: ref.Name,
				Iterations:  res.Iterations,
				Changed:     changed,
			}
			logger.Warn("activation did not converge", "iterations", res.Iterations, "changed", changed)
		}
	}
}

func (m *Model) withCombination(ref loads.Ref, err error) error {
	var se *SingularSystemError
	if errors.As(err, &se) {
		return &SingularSystemError{Combination: ref.Name, Detail: se.Detail}
	}
	return fmt.Errorf("load combination %q: %w", ref.Name, err)
}

// inactive lists the springs and one-way supports not participating in ref
func (m *Model) inactive(ref loads.Ref) []string {
	var names []string
	for _, s := range m.springs {
		if !s.IsActive(ref) {
			names = append(names, s.Name())
		}
	}
	for _, nd := range m.nodes {
		for _, d := range node.DOFs {
			spring, ok := nd.Springs[d].Get()
			if ok && spring.IsOneWay() && nd.SpringState(ref, d) != node.Active {
				names = append(names, fmt.Sprintf("%s:%s", nd.Name, d))
			}
		}
	}
	return names
}
