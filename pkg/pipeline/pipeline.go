// Package pipeline runs mass detection over a stream of scans with a pool of
// workers and hands results back in input order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/inambioinfo/mzmine2/internal/logger"
	"github.com/inambioinfo/mzmine2/pkg/core"
	"github.com/inambioinfo/mzmine2/pkg/filter"
	"github.com/inambioinfo/mzmine2/pkg/massdetection/exactmass"
)

// ErrSkipped marks a scan that was not detected because preprocessing or
// validation rejected it.
var ErrSkipped = errors.New("pipeline: scan skipped")

// Source yields scans one at a time. Both file readers satisfy it.
type Source interface {
	Next() bool
	Scan() *core.Scan
	Err() error
}

// Options configures a run. Detector must be set.
type Options struct {
	Detector *exactmass.Detector
	Filter   *filter.Config // nil or inactive means no preprocessing
	TopN     int            // keep the N most intense peaks per scan (0 = all)
	Threads  int            // worker count, values below 1 mean 1
}

// Result is the outcome for one scan.
//
// Err wrapping ErrSkipped means Peaks is empty. Err wrapping
// exactmass.ErrPeakModel means Peaks holds what the lateral pass kept before
// the model failed.
type Result struct {
	Index int
	Scan  *core.Scan
	Peaks []core.Peak
	Err   error
}

// Stats counts what a run did.
type Stats struct {
	Scans    int
	Peaks    int
	Skipped  int
	Degraded int
}

type job struct {
	idx  int
	scan *core.Scan
}

// Run reads src to the end, detecting each scan on opts.Threads workers, and
// calls emit once per scan in source order. Run stops at the first error
// returned by emit, by the source or by ctx.
func Run(ctx context.Context, src Source, opts Options, emit func(Result) error) (Stats, error) {
	if opts.Detector == nil {
		return Stats{}, errors.New("pipeline: no detector")
	}
	threads := max(opts.Threads, 1)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, threads)
	results := make(chan Result, threads)

	var wg sync.WaitGroup
	for range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := opts.process(j)
				select {
				case results <- r:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	var readErr error
	go func() {
		defer close(jobs)
		idx := 0
		for src.Next() {
			select {
			case jobs <- job{idx: idx, scan: src.Scan()}:
			case <-runCtx.Done():
				return
			}
			idx++
		}
		readErr = src.Err()
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		stats   Stats
		emitErr error
		next    int
		pending = make(map[int]Result)
	)
	for r := range results {
		if emitErr != nil {
			continue
		}
		pending[r.Index] = r
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			stats.add(ready)
			if err := emit(ready); err != nil {
				emitErr = err
				cancel()
				break
			}
		}
	}

	if emitErr != nil {
		return stats, emitErr
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	if readErr != nil {
		return stats, fmt.Errorf("failed to read scans: %w", readErr)
	}
	return stats, nil
}

func (s *Stats) add(r Result) {
	s.Scans++
	s.Peaks += len(r.Peaks)
	switch {
	case errors.Is(r.Err, ErrSkipped):
		s.Skipped++
	case errors.Is(r.Err, exactmass.ErrPeakModel):
		s.Degraded++
	}
}

// process runs preprocessing and detection for one scan.
func (o Options) process(j job) Result {
	r := Result{Index: j.idx, Scan: j.scan}
	scan := j.scan

	if o.Filter != nil && o.Filter.Active() {
		if err := o.Filter.Apply(scan); err != nil {
			r.Err = fmt.Errorf("%w: %s: %w", ErrSkipped, scan.Name(), err)
			return r
		}
	}

	// An empty scan is valid input and simply yields no peaks.
	if len(scan.Points) > 0 {
		if err := scan.Validate(); err != nil {
			r.Err = fmt.Errorf("%w: %w", ErrSkipped, err)
			return r
		}
	}

	peaks, err := o.Detector.DetectMasses(scan)
	r.Peaks = filter.TopN(peaks, o.TopN)
	r.Err = err
	logger.Debug("%s: %d points, %d peaks", scan.Name(), len(scan.Points), len(r.Peaks))
	return r
}
