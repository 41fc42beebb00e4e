package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/truhy/tru11/pkg/talker"
)

func TestExitCode(t *testing.T) {
	echoErr := &talker.EchoMismatchError{Offset: 0, Expected: 0x01, Actual: 0x02}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "generic", err: errors.New("no such port"), want: exitGeneral},
		{name: "transmit", err: &talker.TransmitError{Requested: 4, Written: 2}, want: exitTransmit},
		{name: "receive", err: &talker.ReceiveError{Requested: 4, Read: 0}, want: exitReceive},
		{name: "echo mismatch", err: echoErr, want: exitEcho},
		{name: "rejected command", err: &talker.CommandRejectedError{Command: talker.CmdReadMemory, Err: echoErr}, want: exitRejected},
		{name: "program too large", err: &talker.ProgramTooLargeError{Capacity: 256}, want: exitTooLarge},
		{name: "verification", err: &talker.VerifyError{Tally: talker.Tally{Mismatched: 1}}, want: exitVerify},
		{name: "wrapped", err: fmt.Errorf("write: %w", &talker.TransmitError{Requested: 1}), want: exitTransmit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
