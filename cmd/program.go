// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package cmd

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/truhy/tru11/pkg/talker"
)

var (
	programFile string
	programYes  bool
)

var writeEEPROMCmd = &cobra.Command{
	Use:   "write-eeprom",
	Short: "Program an S-record file into EEPROM",
	Long: `Erase and program on-chip EEPROM from a Motorola S-record file.

Each byte is erased and programmed through the talker and read back for
verification. The CONFIG register (0x103F) is bulk erased when targeted
and excluded from verification unless --verify-config is set.

With --legacy the programming runs through the on-chip control registers
(BPROT, PPROG) one byte at a time; use --erase-delay to add settle time
between the erase and program steps on slow parts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgram(talker.CmdWriteEEPROM)
	},
}

var writeEPROMCmd = &cobra.Command{
	Use:   "write-eprom",
	Short: "Program an S-record file into EPROM",
	Long: `Program on-chip EPROM from a Motorola S-record file.

EPROM cells cannot be erased electrically, only programmed from the
erased (0xFF) state. The programming voltage (12V) must be applied to
the VPPE pin for the duration of the operation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgram(talker.CmdWriteEPROM)
	},
}

var writeEPROME20Cmd = &cobra.Command{
	Use:   "write-eprom-e20",
	Short: "Program an S-record file into EPROM (E20 parts)",
	Long: `Program on-chip EPROM from a Motorola S-record file using the E20
programming sequence. The programming voltage (12V) must be applied to
the VPPE pin for the duration of the operation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProgram(talker.CmdWriteEPROME20)
	},
}

func init() {
	for _, c := range []*cobra.Command{writeEEPROMCmd, writeEPROMCmd, writeEPROME20Cmd} {
		c.Flags().StringVarP(&programFile, "file", "f", "", "S-record file to program (required)")
		c.MarkFlagRequired("file")
		c.Flags().BoolVarP(&programYes, "yes", "y", false, "Skip the confirmation prompt")
		rootCmd.AddCommand(c)
	}
}

func runProgram(command talker.Command) error {
	logger := newLogger()

	ok, err := confirmProgramming(command, programYes)
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Aborted")
		return nil
	}

	f, err := os.Open(programFile)
	if err != nil {
		return fmt.Errorf("failed to open S-record file: %v", err)
	}
	defer f.Close()

	driver, conn, connInfo, err := openTalker()
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("Programming",
		log.String("connection", connInfo),
		log.String("file", programFile),
		log.Stringer("command", command),
		log.Stringer("variant", driver.Session().Variant))

	if driver.Session().Variant == talker.VariantJBug {
		err = runProgramLegacy(driver, f, command)
	} else {
		var tally talker.Tally
		tally, err = driver.WriteFile(f, os.Stdout, command)
		if err == nil && !tally.Passed() {
			err = &talker.VerifyError{Tally: tally}
		}
	}
	if err != nil {
		return err
	}

	if command == talker.CmdWriteEPROM || command == talker.CmdWriteEPROME20 {
		logger.Info("Remove the programming voltage (12V) now, before powering off the MCU")
	}

	logger.Info("Programming completed successfully")
	return nil
}

// runProgramLegacy programs through the control registers. Block protect is
// cleared for the duration and restored afterwards, even on failure.
func runProgramLegacy(driver *talker.Driver, f *os.File, command talker.Command) error {
	if command == talker.CmdWriteEEPROM {
		if err := driver.SetBlockProtect(false); err != nil {
			return err
		}
		defer driver.SetBlockProtect(true)
	}

	return driver.ProgramFile(f, os.Stdout, command)
}
