// Package iorecord recovers complete logical records from a large
// record store using approximate byte offsets.
//
// Offsets come from an external coarse index (text-search byte
// positions) and are biased forward of the true record start by a
// small, bounded amount. The locator walks backward from the supplied
// offset until it sees the record opening tag, then reads the record
// line by line through its terminator.
package iorecord

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// ErrRecordNotFound is returned when no opening tag is found within
// the lookback bound. Callers log and skip the index entry without
// aborting the run.
var ErrRecordNotFound = errors.New("record not found within lookback bound")

const (
	openTag  = "<entry"
	closeTag = "</entr"

	// sequencePrefix opens the embedded sequence payload of a record.
	// Those lines are elided while accumulating: the payload can be
	// very large and nothing downstream depends on it.
	sequencePrefix = "  <seq"
)

// Locator reads records out of a single record store.
type Locator struct {
	rs       io.ReadSeeker
	lookback int
}

// New creates a Locator over the record store. lookback bounds the
// backward scan; non-positive values fall back to 500.
func New(rs io.ReadSeeker, lookback int) *Locator {
	if lookback <= 0 {
		lookback = 500
	}
	return &Locator{rs: rs, lookback: lookback}
}

// Locate recovers the record enclosing the approximate offset.
// It returns the record text from its opening tag line through its
// closing tag line inclusive, with sequence payload lines elided.
// Returns ErrRecordNotFound when no opening tag exists within the
// lookback bound.
func (l *Locator) Locate(approx int64) (string, error) {
	probe := make([]byte, len(openTag))

	for i := 0; i < l.lookback; i++ {
		pos := approx - int64(i)
		if pos < 0 {
			break
		}

		if _, err := l.rs.Seek(pos, io.SeekStart); err != nil {
			return "", err
		}
		n, err := io.ReadFull(l.rs, probe)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			if errors.Is(err, io.EOF) {
				continue
			}
			return "", err
		}
		if !bytes.Equal(probe[:n], []byte(openTag)) {
			continue
		}

		// Found the record start; read it through its terminator.
		if _, err = l.rs.Seek(pos, io.SeekStart); err != nil {
			return "", err
		}
		return l.accumulate()
	}

	return "", ErrRecordNotFound
}

// accumulate reads lines from the current position through the first
// closing tag line (inclusive), skipping sequence payload lines.
func (l *Locator) accumulate() (string, error) {
	var b strings.Builder
	r := bufio.NewReader(l.rs)

	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if !strings.HasPrefix(line, sequencePrefix) {
				b.WriteString(line)
			}
			if strings.HasPrefix(line, closeTag) {
				return b.String(), nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Truncated record; let the decomposer report it.
				return b.String(), nil
			}
			return "", err
		}
	}
}
