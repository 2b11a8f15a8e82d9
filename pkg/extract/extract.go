// Package extract discovers utility-class candidates across an arbitrary set
// of source files and inline text.
//
// It is the candidate-extraction core of the sift build tool: content items
// are resolved to raw bytes, each buffer is scanned once for candidate
// substrings, and the per-buffer sets are merged into a single deduplicated
// result sorted ascending by byte value. Reading and scanning each run
// either sequentially or in parallel; the chosen combination never changes
// the output, only how fast it arrives.
package extract

import (
	"runtime"
	"sort"
	"sync"

	"github.com/harrison/siftcss/internal/scanner"
)

// Tracer receives diagnostic events from an Extractor. It is purely a side
// channel: tracing never affects the functional output. Implementations must
// be safe for concurrent use.
type Tracer interface {
	Tracef(format string, args ...interface{})
}

// noopTracer discards all events.
type noopTracer struct{}

func (noopTracer) Tracef(string, ...interface{}) {}

// Extractor runs candidate extraction with an injected tracer. The zero
// value is ready to use and traces nothing.
type Extractor struct {
	tracer Tracer
}

// NewExtractor creates an Extractor reporting diagnostics to tracer. A nil
// tracer disables tracing.
func NewExtractor(tracer Tracer) *Extractor {
	return &Extractor{tracer: tracer}
}

// Candidates extracts with the default strategy: parallel reads feeding
// parallel scans.
//
// The result contains every distinct candidate found across all items,
// sorted ascending by byte value. An empty item list yields an empty result.
func Candidates(items []ContentItem) ([]string, error) {
	return (&Extractor{}).Candidates(items)
}

// CandidatesWithStrategy extracts with an explicitly packed strategy byte:
// bits 0-1 select the IO axis, bits 2-3 the parsing axis. An undefined bit
// pattern in either field is rejected before any file is touched.
func CandidatesWithStrategy(items []ContentItem, options byte) ([]string, error) {
	return (&Extractor{}).CandidatesWithStrategy(items, options)
}

// Candidates extracts with the default strategy. See the package-level
// function of the same name.
func (e *Extractor) Candidates(items []ContentItem) ([]string, error) {
	return e.run(items, DefaultStrategy)
}

// CandidatesWithStrategy extracts with an explicitly packed strategy byte.
// See the package-level function of the same name.
func (e *Extractor) CandidatesWithStrategy(items []ContentItem, options byte) ([]string, error) {
	strategy, err := ParseStrategy(options)
	if err != nil {
		return nil, err
	}
	return e.run(items, strategy)
}

// run executes one extraction pass. Reading always completes in full before
// any scanning starts; the two axes compose orthogonally and the output is
// identical for every combination.
func (e *Extractor) run(items []ContentItem, strategy Strategy) ([]string, error) {
	tracer := e.tracer
	if tracer == nil {
		tracer = noopTracer{}
	}

	tracer.Tracef("reading %d content item(s) (%s IO)", len(items), strategy.IO)

	var (
		buffers [][]byte
		err     error
	)
	switch strategy.IO {
	case IOParallel:
		buffers, err = readAll(items)
	default:
		buffers, err = readAllSync(items)
	}
	if err != nil {
		return nil, err
	}

	tracer.Tracef("scanning %d buffer(s) (%s parsing)", len(buffers), strategy.Parsing)

	var merged map[string]struct{}
	switch strategy.Parsing {
	case ParsingParallel:
		merged = scanAll(buffers)
	default:
		merged = scanAllSync(buffers)
	}

	result := finalize(merged)
	tracer.Tracef("extracted %d distinct candidate(s)", len(result))
	return result, nil
}

// scanAllSync scans buffers in order, folding each per-buffer set into a
// running accumulator.
func scanAllSync(buffers [][]byte) map[string]struct{} {
	acc := make(map[string]struct{})
	for _, buf := range buffers {
		for candidate := range scanner.Scan(buf) {
			acc[candidate] = struct{}{}
		}
	}
	return acc
}

// scanAll scans buffers concurrently with a bounded worker pool. Each worker
// folds the per-buffer sets it produces into a worker-local accumulator; the
// locals are then unioned pairwise. Union is associative and commutative, so
// the merged set is independent of scheduling.
func scanAll(buffers [][]byte) map[string]struct{} {
	workers := runtime.NumCPU()
	if workers > len(buffers) {
		workers = len(buffers)
	}
	if workers <= 1 {
		return scanAllSync(buffers)
	}

	jobs := make(chan []byte)
	locals := make([]map[string]struct{}, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			acc := make(map[string]struct{})
			for buf := range jobs {
				for candidate := range scanner.Scan(buf) {
					acc[candidate] = struct{}{}
				}
			}
			locals[w] = acc
		}(w)
	}

	for _, buf := range buffers {
		jobs <- buf
	}
	close(jobs)
	wg.Wait()

	merged := locals[0]
	for _, local := range locals[1:] {
		for candidate := range local {
			merged[candidate] = struct{}{}
		}
	}
	return merged
}

// finalize materializes the merged set as a sorted slice. This is the single
// point imposing global ordering, which makes the output reproducible and
// usable as a comparison key downstream.
func finalize(set map[string]struct{}) []string {
	result := make([]string, 0, len(set))
	for candidate := range set {
		result = append(result, candidate)
	}
	sort.Strings(result)
	return result
}
