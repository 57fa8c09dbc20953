package runner

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikidoc/internal/logging"
	"github.com/yaklabco/wikidoc/pkg/fsutil"
	"github.com/yaklabco/wikidoc/pkg/textdiff"
)

// Runner converts many files with one Converter.
type Runner struct {
	// Converter parses and renders each file.
	Converter *Converter
}

// New creates a new Runner with the given converter.
func New(converter *Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run converts every document Discover finds for opts on a pool of
// opts.Jobs workers. Outcomes are reported in path order regardless of
// completion order. On cancellation the partial result is returned with
// the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.OrDiscard(opts.Logger)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Target: r.Converter.Target().String(),
		Files:  make([]FileOutcome, 0, len(files)),
		Stats:  newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts, logger)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and sort afterwards.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker converts files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	opts Options,
	logger *log.Logger,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.convertFile(ctx, path, opts)
		if outcome.Error != nil {
			logger.Debug("conversion failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// convertFile converts one file and, unless in dry-run or diff mode,
// writes the output when it changed.
func (r *Runner) convertFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	text, _, err := fsutil.ReadText(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	out, src, err := r.Converter.Convert(ctx, path, text)
	outcome.Source = src.String()
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Bytes = len(out)

	outPath, err := OutputPath(path, opts.WorkingDir, opts.OutputDir, r.Converter.Target().Extension())
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.OutputPath = outPath

	content := []byte(out)

	if opts.writes() {
		written, err := fsutil.WriteAtomicIfChanged(ctx, outPath, content, 0)
		if err != nil {
			outcome.Error = fmt.Errorf("write %s: %w", outPath, err)
			return outcome
		}
		outcome.Changed = written
		outcome.Written = written
		return outcome
	}

	existing, exists, err := fsutil.ReadExisting(ctx, outPath)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Changed = !exists || !bytes.Equal(existing, content)

	if opts.Diff && outcome.Changed {
		if !exists {
			existing = nil
		} else if existing == nil {
			existing = []byte{}
		}
		outcome.Diff = textdiff.Generate(relativeTo(opts.WorkingDir, outPath), existing, content)
	}

	return outcome
}

func relativeTo(workDir, path string) string {
	if rel, err := filepath.Rel(workDir, path); err == nil && !escapes(rel) {
		return filepath.ToSlash(rel)
	}

	return filepath.ToSlash(path)
}
