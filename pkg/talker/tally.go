// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import "fmt"

// Tally accumulates the outcome of byte-for-byte verification: bytes that
// matched, bytes that differed, and bytes excluded from comparison. One
// tally is kept per S-record line and another across the whole run.
type Tally struct {
	Matched    int
	Mismatched int
	Ignored    int
}

// Record compares one byte pair. When verifyConfig is off and the byte sits
// at the CONFIG register, the comparison is skipped and counted as ignored
// regardless of the actual values.
func (t *Tally) Record(addr uint16, got, want byte, verifyConfig bool) {
	switch {
	case !verifyConfig && addr == ConfigAddr:
		t.Ignored++
	case got == want:
		t.Matched++
	default:
		t.Mismatched++
	}
}

// Add folds a per-line tally into the cumulative one.
func (t *Tally) Add(line Tally) {
	t.Matched += line.Matched
	t.Mismatched += line.Mismatched
	t.Ignored += line.Ignored
}

// Total returns the number of bytes accounted for.
func (t Tally) Total() int {
	return t.Matched + t.Mismatched + t.Ignored
}

// Passed reports whether no byte mismatched.
func (t Tally) Passed() bool {
	return t.Mismatched == 0
}

// Describe renders a per-line result such as "16 matched" or
// "2 mismatched, 1 ignored".
func (t Tally) Describe() string {
	switch {
	case t.Mismatched > 0 && t.Ignored > 0:
		return fmt.Sprintf("%d mismatched, %d ignored", t.Mismatched, t.Ignored)
	case t.Mismatched > 0:
		return fmt.Sprintf("%d mismatched", t.Mismatched)
	case t.Matched == 0 && t.Ignored > 0:
		return fmt.Sprintf("%d ignored", t.Ignored)
	case t.Ignored > 0:
		return fmt.Sprintf("%d matched, %d ignored", t.Matched, t.Ignored)
	default:
		return fmt.Sprintf("%d matched", t.Matched)
	}
}

// Summary renders the aggregate PASSED/FAILED line for a whole run.
func (t Tally) Summary() string {
	if !t.Passed() {
		if t.Ignored > 0 {
			return fmt.Sprintf("FAILED! %d total bytes, %d mismatched, %d ignored",
				t.Total(), t.Mismatched, t.Ignored)
		}
		return fmt.Sprintf("FAILED! %d total bytes, %d mismatched", t.Total(), t.Mismatched)
	}
	if t.Ignored > 0 {
		return fmt.Sprintf("PASSED. %d total bytes, %d matched, %d ignored",
			t.Total(), t.Matched, t.Ignored)
	}
	return fmt.Sprintf("PASSED. %d total bytes, %d matched", t.Total(), t.Matched)
}
