// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package cmd

import (
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/truhy/tru11/pkg/talker"
)

var (
	// Serial connection flags
	portName string

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Protocol flags
	legacyTalker bool
	timeoutMS    int
	txChunk      int
	rxChunk      int
	progChunk    int
	verifyConfig bool
	eraseDelayMS int

	// Output flags
	debug bool
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "tru11",
	Short: "68HC11 talker host controller",
	Long: `Tru11 - read, write and program 68HC11 series microcontrollers over serial.

The MCU must be started in bootstrap mode (MODA and MODB tied low, 8MHz
crystal). upload-talker downloads the talker firmware into MCU RAM through
the boot ROM; the remaining commands then drive the talker's command
protocol to read memory, write RAM, and program EEPROM or EPROM, with
memory images stored as Motorola S-record files.

Connection modes:
  Serial:    --port /dev/ttyUSB0
  WebSocket: --url ws://host/path [--username user]  (remote serial bridge)

For WebSocket authentication, the password is read from the TRU11_PASSWORD
environment variable, or prompted interactively if not set. The --password
flag is intentionally not provided to avoid leaking credentials in shell
history.

The --legacy flag selects the JBug11-style talker command set, whose
command bytes are echoed back inverted and whose EEPROM/EPROM programming
runs through the on-chip control registers.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Serial connection flags
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL of a serial bridge (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	// Protocol flags
	rootCmd.PersistentFlags().BoolVar(&legacyTalker, "legacy", false, "Target the legacy JBug11-style talker")
	rootCmd.PersistentFlags().IntVar(&timeoutMS, "timeout", 1000, "Serial read timeout in milliseconds")
	rootCmd.PersistentFlags().IntVar(&txChunk, "tx-chunk", 256, "Transmit chunk size (lower to 2 or 1 for unbuffered MCUs)")
	rootCmd.PersistentFlags().IntVar(&rxChunk, "rx-chunk", 256, "Receive chunk size (lower to 2 or 1 for unbuffered MCUs)")
	rootCmd.PersistentFlags().IntVar(&progChunk, "prog-chunk", 2, "Transmit chunk size during EEPROM/EPROM programming")
	rootCmd.PersistentFlags().BoolVar(&verifyConfig, "verify-config", false, "Include the CONFIG register in verification")
	rootCmd.PersistentFlags().IntVar(&eraseDelayMS, "erase-delay", 0, "Erase/program settle time in milliseconds (legacy programming)")

	// Output flags
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newLogger creates a logger honoring the debug and quiet flags.
func newLogger() *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// newSession builds the per-invocation talker session from the flags.
func newSession() *talker.Session {
	s := talker.NewSession()
	if legacyTalker {
		s.Variant = talker.VariantJBug
	}
	s.TxChunk = txChunk
	s.RxChunk = rxChunk
	s.ProgChunk = progChunk
	s.Timeout = time.Duration(timeoutMS) * time.Millisecond
	s.VerifyConfig = verifyConfig
	s.EraseProgramDelay = time.Duration(eraseDelayMS) * time.Millisecond
	return s
}
