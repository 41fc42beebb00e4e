// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package srec

import (
	"bufio"
	"io"
)

// Scanner iterates over the S1 data records of a file in order, skipping
// header, terminator, and any lines too short to be a data record.
type Scanner struct {
	s    *bufio.Scanner
	rec  *Record
	line string
	err  error
}

// NewScanner returns a Scanner reading records from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next S1 record. It returns false at end of input or
// on the first malformed data record; Err tells the two apart.
func (sc *Scanner) Scan() bool {
	if sc.err != nil {
		return false
	}
	for sc.s.Scan() {
		line := sc.s.Text()
		if !IsData(line) {
			continue
		}
		rec, err := ParseData(line)
		if err != nil {
			sc.err = err
			return false
		}
		sc.rec = rec
		sc.line = trimLine(line)
		return true
	}
	sc.err = sc.s.Err()
	return false
}

// Record returns the record read by the last successful Scan.
func (sc *Scanner) Record() *Record {
	return sc.rec
}

// Text returns the raw line of the record read by the last successful Scan.
func (sc *Scanner) Text() string {
	return sc.line
}

// Err returns the first error encountered while scanning, if any.
func (sc *Scanner) Err() error {
	return sc.err
}
