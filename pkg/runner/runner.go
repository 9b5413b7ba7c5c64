package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Runner checks discovered files on a bounded set of goroutines.
type Runner struct {
	// Checker handles one file. Nil builds one from the run options.
	Checker *Checker
}

// New creates a Runner around checker.
func New(checker *Checker) *Runner {
	return &Runner{Checker: checker}
}

// Run discovers files under opts.Paths and checks at most opts.Jobs of them
// at a time. Outcomes keep discovery order whatever order checks finish in.
// A cancelled run returns the files finished so far with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	checker := r.Checker
	if checker == nil {
		checker = NewChecker(opts.Config, opts.Registry)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	finished := make([]bool, len(files))

	var group errgroup.Group
	group.SetLimit(min(jobs, len(files)))
	for idx, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[idx] = checkOne(ctx, checker, path)
			finished[idx] = true
			return nil
		})
	}
	// Per-file failures live in FileOutcome.Error; the group never fails.
	_ = group.Wait()

	for idx, outcome := range outcomes {
		if finished[idx] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func checkOne(ctx context.Context, checker *Checker, path string) FileOutcome {
	outcome := FileOutcome{Path: path}
	checked, err := checker.CheckFile(ctx, path)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = checked
	}
	return outcome
}
