// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy
//
// Tru11 - 68HC11 talker host controller
//
// A CLI tool for bootstrapping 68HC11 series microcontrollers over serial:
// it downloads a talker control program through the boot ROM and then uses
// the talker command protocol to read, write and program MCU memory, with
// memory images stored as Motorola S-record files.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/truhy/tru11/cmd"
	"github.com/truhy/tru11/pkg/talker"
)

// Exit codes, one per protocol failure class, so scripts can tell a wiring
// problem from a verification failure.
const (
	exitGeneral = 1 + iota
	exitTransmit
	exitReceive
	exitEcho
	exitRejected
	exitTooLarge
	exitVerify
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var (
		rejected *talker.CommandRejectedError
		echo     *talker.EchoMismatchError
		transmit *talker.TransmitError
		receive  *talker.ReceiveError
		tooLarge *talker.ProgramTooLargeError
		verify   *talker.VerifyError
	)

	// A rejected command wraps the echo or receive failure that caused it,
	// so it must be matched first.
	switch {
	case errors.As(err, &rejected):
		return exitRejected
	case errors.As(err, &echo):
		return exitEcho
	case errors.As(err, &transmit):
		return exitTransmit
	case errors.As(err, &receive):
		return exitReceive
	case errors.As(err, &tooLarge):
		return exitTooLarge
	case errors.As(err, &verify):
		return exitVerify
	default:
		return exitGeneral
	}
}
