// Package scanner implements the single-pass candidate scanner at the heart
// of extraction.
//
// The scanner walks a raw byte buffer exactly once and collects every
// substring that is syntactically eligible to be a utility-class candidate:
// an optional chain of colon-terminated variants, a base utility token
// (identifier, bracketed arbitrary value, or bracketed arbitrary property),
// and an optional trailing modifier or importance marker. It is language
// agnostic: the buffer may hold HTML, JSX, templates, or any other text, and
// the scanner never attempts to parse the host language.
//
// Whether a candidate resolves to a real utility is decided downstream;
// here, syntactic eligibility suffices.
package scanner

import "fmt"

// Byte classification tables. Candidates may only begin and end at ASCII
// bytes; bytes >= 0x80 never open or close a candidate, so multi-byte
// sequences are always either fully inside or fully outside an emitted span.
func isStartByte(b byte) bool {
	return isIdentByte(b) || b == '-' || b == '!' || b == '['
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// isContinueByte reports whether b may extend a candidate outside any
// bracketed segment. Colons, bangs, and brackets are handled separately by
// the state machine.
func isContinueByte(b byte) bool {
	return isIdentByte(b) || b == '-' || b == '.' || b == '/' || b >= 0x80
}

// Scan walks buf left to right and returns the set of distinct candidate
// strings it contains. The pass is O(len(buf)); allocations are proportional
// to the number of distinct candidates, not to the buffer size.
//
// Malformed runs (unbalanced brackets, dangling variant colons, unterminated
// quotes) are never errors. They simply produce no candidate.
func Scan(buf []byte) map[string]struct{} {
	found := make(map[string]struct{})

	var (
		start     = -1    // candidate start offset, -1 when idle
		depth     = 0     // open [...] segments
		quote     byte    // active quote char inside a bracketed segment
		escaped   bool    // previous byte was an unconsumed backslash
		bang      bool    // an unescaped '!' has been seen
		wantIdent bool    // previous byte was a variant colon
	)

	reset := func() {
		start = -1
		depth = 0
		quote = 0
		escaped = false
		bang = false
		wantIdent = false
	}

	// emit records buf[start:end] if it forms a structurally complete
	// candidate, then returns the scanner to the idle state.
	emit := func(end int) {
		span := buf[start:end]
		reset()
		if len(span) == 0 {
			return
		}
		if b := span[0]; b >= 0x80 {
			// The start-byte table is ASCII-only, so this indicates a defect
			// in the cursor logic rather than bad input.
			panic(fmt.Sprintf("scanner: candidate starts at non-ASCII byte 0x%02x", b))
		}
		// A trailing variant colon or modifier slash means the grammar
		// position was never completed.
		switch span[len(span)-1] {
		case ':', '/':
			return
		}
		// Reject punctuation-only runs ("!", "--", "...") that carry no
		// identifier content at all.
		content := false
		for _, b := range span {
			if isIdentByte(b) || b == '[' || b >= 0x80 {
				content = true
				break
			}
		}
		if !content {
			return
		}
		if _, dup := found[string(span)]; !dup {
			found[string(span)] = struct{}{}
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if start == -1 {
			if isStartByte(b) {
				start = i
				switch b {
				case '[':
					depth = 1
				case '!':
					bang = true
				}
			}
			continue
		}

		if escaped {
			// Escaped bytes are literal and always extend the candidate.
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}

		if depth > 0 {
			// Inside an arbitrary value, property, or selector segment.
			if quote != 0 {
				switch b {
				case quote:
					quote = 0
				case '\n', '\r':
					// An unterminated quote never closes; discard the run.
					reset()
				}
				continue
			}
			switch b {
			case '\'', '"', '`':
				quote = b
			case '[':
				depth++
			case ']':
				depth--
			case ' ', '\t', '\n', '\r':
				// Whitespace inside an unquoted segment means the brackets
				// can no longer balance into a candidate.
				reset()
			}
			continue
		}

		// Outside any bracketed segment.
		switch {
		case b == '[':
			depth++
			wantIdent = false
		case b == ':':
			if wantIdent {
				// Empty variant segment ("md::flex"); nothing before the
				// second colon can form a candidate.
				reset()
				continue
			}
			wantIdent = true
		case b == '!':
			if bang {
				// A second importance marker terminates the span and may
				// itself begin the next candidate.
				emit(i)
				start = i
				bang = true
				continue
			}
			bang = true
		case isContinueByte(b):
			wantIdent = false
		default:
			emit(i)
		}
	}

	// A span still open at end of input is complete only if every bracket
	// closed; `bg-[red` stays unreported.
	if start != -1 && depth == 0 && quote == 0 {
		emit(len(buf))
	}

	return found
}
