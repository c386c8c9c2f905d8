package bgmask

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is a single input/output pair for ProcessBatch.
type Job struct {
	In  string
	Out string
}

// BatchOptions configures ProcessBatch.
type BatchOptions struct {
	Policy Policy
	// Workers bounds concurrent jobs. Zero means GOMAXPROCS.
	Workers int
}

// ProcessBatch runs ProcessFile for every job with bounded concurrency. Results
// are returned in job order. The first failure cancels jobs that have not
// started yet and is returned. Jobs sharing an output path, or writing over
// another job's input, are rejected before anything runs.
func ProcessBatch(ctx context.Context, jobs []Job, opts BatchOptions) ([]Result, error) {
	if !opts.Policy.Valid() {
		return nil, fmt.Errorf("invalid policy %v", opts.Policy)
	}
	if err := checkJobs(jobs); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ProcessFile(job.In, job.Out, opts.Policy)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkJobs(jobs []Job) error {
	inputs := make(map[string]string, len(jobs))
	for _, job := range jobs {
		inputs[filepath.Clean(job.In)] = job.In
	}

	outputs := make(map[string]string, len(jobs))
	for _, job := range jobs {
		out := filepath.Clean(job.Out)
		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, job.In, job.Out)
		}
		if in, ok := inputs[out]; ok {
			return fmt.Errorf("output of %s would overwrite input %s", job.In, in)
		}
		outputs[out] = job.In
	}
	return nil
}
