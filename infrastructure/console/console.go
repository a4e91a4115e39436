// Package console reads a candidate from standard input and writes the
// program's literal to standard output.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ahrav/go-oracle/internal/domain"
)

// DefaultBitSize is the candidate width graders assume.
const DefaultBitSize = 32

// maxTokenSize caps how much of a single token is buffered.
const maxTokenSize = 4096

// ReadCandidate reads the first whitespace-delimited token from r and
// parses it as a base-10 integer that fits in bitSize bits.
//
// Anything after the first token is ignored. Failures are returned as a
// *domain.InputError wrapping domain.ErrEmptyInput,
// domain.ErrMalformedInput or domain.ErrCandidateOutOfRange.
func ReadCandidate(r io.Reader, bitSize int) (domain.Candidate, error) {
	if bitSize <= 0 || bitSize > 64 {
		return 0, fmt.Errorf("bit size %d: %w", bitSize, domain.ErrInvalidConfiguration)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return 0, domain.NewInputError("", domain.ErrMalformedInput)
			}
			return 0, domain.NewInputError("", fmt.Errorf("read: %w", err))
		}
		return 0, domain.NewInputError("", domain.ErrEmptyInput)
	}

	token := scanner.Text()
	n, err := strconv.ParseInt(token, 10, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, domain.NewInputError(token, domain.ErrCandidateOutOfRange)
		}
		return 0, domain.NewInputError(token, domain.ErrMalformedInput)
	}

	return domain.Candidate(n), nil
}

// WriteOutput writes literal to w, followed by a newline when
// trailingNewline is set.
func WriteOutput(w io.Writer, literal string, trailingNewline bool) error {
	if trailingNewline {
		literal += "\n"
	}
	if _, err := io.WriteString(w, literal); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
