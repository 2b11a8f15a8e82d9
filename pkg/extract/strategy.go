package extract

import (
	"errors"
	"fmt"
)

// Errors returned when a packed strategy byte does not decode to a defined
// execution strategy. Both are rejected before any file I/O happens.
var (
	ErrUnknownIOStrategy      = errors.New("unknown IO strategy")
	ErrUnknownParsingStrategy = errors.New("unknown parsing strategy")
)

// IOStrategy selects how content items are read: one at a time in input
// order, or concurrently with one task per item.
type IOStrategy uint8

// IOStrategy values occupy bits 0-1 of the packed strategy byte.
const (
	IOSequential IOStrategy = 0b0001
	IOParallel   IOStrategy = 0b0010
)

// String returns a human-readable representation of the IO strategy.
func (s IOStrategy) String() string {
	switch s {
	case IOSequential:
		return "sequential"
	case IOParallel:
		return "parallel"
	default:
		return fmt.Sprintf("IOStrategy(0b%04b)", uint8(s))
	}
}

// ParsingStrategy selects how buffers are scanned: in order with a running
// accumulator, or concurrently with results merged by an associative union.
type ParsingStrategy uint8

// ParsingStrategy values occupy bits 2-3 of the packed strategy byte.
const (
	ParsingSequential ParsingStrategy = 0b0100
	ParsingParallel   ParsingStrategy = 0b1000
)

// String returns a human-readable representation of the parsing strategy.
func (s ParsingStrategy) String() string {
	switch s {
	case ParsingSequential:
		return "sequential"
	case ParsingParallel:
		return "parallel"
	default:
		return fmt.Sprintf("ParsingStrategy(0b%04b)", uint8(s))
	}
}

// Strategy pairs the two independent execution axes. The axes compose
// orthogonally: all four combinations produce the identical sorted result
// set and differ only in latency and throughput.
type Strategy struct {
	IO      IOStrategy
	Parsing ParsingStrategy
}

// DefaultStrategy is the common-case pipeline: parallel reads feeding
// parallel scans.
var DefaultStrategy = Strategy{IO: IOParallel, Parsing: ParsingParallel}

// Masks isolating each axis within the packed byte.
const (
	ioMask      = 0b0011
	parsingMask = 0b1100
)

// ParseStrategy decodes a packed strategy byte into its two axes. Any bit
// pattern outside the defined values for either field is a configuration
// error.
func ParseStrategy(options byte) (Strategy, error) {
	var s Strategy

	switch IOStrategy(options & ioMask) {
	case IOSequential:
		s.IO = IOSequential
	case IOParallel:
		s.IO = IOParallel
	default:
		return Strategy{}, fmt.Errorf("%w: 0b%04b", ErrUnknownIOStrategy, options&ioMask)
	}

	switch ParsingStrategy(options & parsingMask) {
	case ParsingSequential:
		s.Parsing = ParsingSequential
	case ParsingParallel:
		s.Parsing = ParsingParallel
	default:
		return Strategy{}, fmt.Errorf("%w: 0b%04b", ErrUnknownParsingStrategy, options&parsingMask)
	}

	return s, nil
}

// Byte repacks the strategy into the external single-byte representation.
func (s Strategy) Byte() byte {
	return byte(s.IO) | byte(s.Parsing)
}
