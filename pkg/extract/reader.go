package extract

import (
	"fmt"
	"os"
	"sync"
)

// ReadError reports a content item whose referenced file could not be read.
// The offending path is preserved so callers can point at the exact input.
type ReadError struct {
	Path string
	Err  error
}

// Error returns the formatted error message including the file path.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// resolve turns one content item into raw bytes: the referenced file read in
// full, the inline text's bytes, or an empty buffer when neither (or both)
// fields are populated.
func resolve(item ContentItem) ([]byte, error) {
	switch {
	case item.Path != "" && item.Content == "":
		data, err := os.ReadFile(item.Path)
		if err != nil {
			return nil, &ReadError{Path: item.Path, Err: err}
		}
		return data, nil
	case item.Path == "" && item.Content != "":
		return []byte(item.Content), nil
	default:
		return nil, nil
	}
}

// readAllSync resolves items strictly in order, one at a time, aborting on
// the first read failure.
func readAllSync(items []ContentItem) ([][]byte, error) {
	buffers := make([][]byte, len(items))
	for i, item := range items {
		data, err := resolve(item)
		if err != nil {
			return nil, err
		}
		buffers[i] = data
	}
	return buffers, nil
}

// readAll resolves all items concurrently, one goroutine per item. All reads
// run to completion before returning; if any item failed, the first error
// encountered (by item order) wins and no buffers are surfaced.
func readAll(items []ContentItem) ([][]byte, error) {
	buffers := make([][]byte, len(items))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		go func(i int, item ContentItem) {
			defer wg.Done()
			buffers[i], errs[i] = resolve(item)
		}(i, item)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return buffers, nil
}
