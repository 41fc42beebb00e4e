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
	writeFile string

	writeHexAddr   string
	writeHexData   string
	writeHexEEPROM bool
	writeHexYes    bool
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write an S-record file to MCU RAM",
	Long: `Write the contents of a Motorola S-record file to MCU memory.

Each record's bytes are written through the talker and read back for
verification. This writes plain memory and cannot program EEPROM or
EPROM cells, use the write-eeprom and write-eprom commands for those.
Exits nonzero when any byte fails to verify.`,
	RunE: runWrite,
}

var writeHexCmd = &cobra.Command{
	Use:   "write-hex",
	Short: "Write a hex byte string to MCU memory",
	Long: `Write an inline string of hex bytes to MCU memory.

The data is given as a hex string such as 3F0A12. An odd number of
digits is padded with a leading zero. With --eeprom the bytes are
programmed into EEPROM instead of written to RAM.`,
	RunE: runWriteHex,
}

func init() {
	writeCmd.Flags().StringVarP(&writeFile, "file", "f", "", "S-record file to write (required)")
	writeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(writeCmd)

	writeHexCmd.Flags().StringVar(&writeHexAddr, "addr", "", "Target address (hex, required)")
	writeHexCmd.Flags().StringVar(&writeHexData, "data", "", "Hex byte string to write (required)")
	writeHexCmd.Flags().BoolVar(&writeHexEEPROM, "eeprom", false, "Program the bytes into EEPROM")
	writeHexCmd.Flags().BoolVarP(&writeHexYes, "yes", "y", false, "Skip the EEPROM confirmation prompt")
	writeHexCmd.MarkFlagRequired("addr")
	writeHexCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(writeHexCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	f, err := os.Open(writeFile)
	if err != nil {
		return fmt.Errorf("failed to open S-record file: %v", err)
	}
	defer f.Close()

	driver, conn, connInfo, err := openTalker()
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("Writing memory",
		log.String("connection", connInfo),
		log.String("file", writeFile))

	tally, err := driver.WriteFile(f, os.Stdout, talker.CmdWriteMemory)
	if err != nil {
		return err
	}

	// The legacy talker runs with block protect cleared, restore it so a
	// stray write cannot corrupt the EEPROM.
	if driver.Session().Variant == talker.VariantJBug {
		if err := driver.SetBlockProtect(true); err != nil {
			return err
		}
	}

	if !tally.Passed() {
		return &talker.VerifyError{Tally: tally}
	}
	return nil
}

func runWriteHex(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	addr, err := parseAddr(writeHexAddr)
	if err != nil {
		return err
	}

	command := talker.CmdWriteMemory
	if writeHexEEPROM {
		command = talker.CmdWriteEEPROM

		ok, err := confirmProgramming(command, writeHexYes)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("Aborted")
			return nil
		}
	}

	driver, conn, connInfo, err := openTalker()
	if err != nil {
		return err
	}
	defer conn.Close()

	if writeHexEEPROM && driver.Session().Variant == talker.VariantJBug {
		return fmt.Errorf("the legacy talker does not support hex string EEPROM programming, use write-eeprom with an S-record file")
	}

	logger.Info("Writing bytes",
		log.String("connection", connInfo),
		log.Uint16("addr", addr),
		log.Stringer("command", command))

	return driver.WriteHex(os.Stdout, command, addr, writeHexData)
}
