// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import "fmt"

// TransmitError indicates the transport accepted fewer bytes than requested.
type TransmitError struct {
	Requested int
	Written   int
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("transmit failed: wrote %d of %d bytes", e.Written, e.Requested)
}

// ReceiveError indicates the transport delivered fewer bytes than requested,
// which on a configured port means the read timed out.
type ReceiveError struct {
	Requested int
	Read      int
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("receive failed: read %d of %d bytes", e.Read, e.Requested)
}

// EchoMismatchError indicates the device echoed a different byte than the
// active echo mode expects. Offset is relative to the start of the transfer.
type EchoMismatchError struct {
	Offset   int
	Expected byte
	Actual   byte
}

func (e *EchoMismatchError) Error() string {
	return fmt.Sprintf("echo mismatch at offset %d: expected 0x%02X, got 0x%02X",
		e.Offset, e.Expected, e.Actual)
}

// CommandRejectedError indicates the opcode handshake failed: the device did
// not return the expected echo for the command byte.
type CommandRejectedError struct {
	Command Command
	Err     error
}

func (e *CommandRejectedError) Error() string {
	return fmt.Sprintf("command %s rejected: %v", e.Command, e.Err)
}

func (e *CommandRejectedError) Unwrap() error {
	return e.Err
}

// ProgramTooLargeError indicates a talker image exceeds the bootstrap RAM
// capacity.
type ProgramTooLargeError struct {
	Capacity int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("control program exceeds the %d byte bootstrap capacity", e.Capacity)
}

// VerifyError is the aggregate result of a verification run that found
// mismatched bytes. Individual mismatches are tallied, not fatal; the run as
// a whole still fails.
type VerifyError struct {
	Tally Tally
}

func (e *VerifyError) Error() string {
	return "verification failed: " + e.Tally.Summary()
}
