// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/truhy/tru11/pkg/talker"
)

var (
	talkerFile string
	fastBaud   bool
)

var upTalkerCmd = &cobra.Command{
	Use:   "upload-talker",
	Short: "Download the talker firmware into MCU RAM",
	Long: `Download a talker control program into MCU RAM through the boot ROM.

The MCU must be reset into bootstrap mode first. The boot ROM expects a
0xFF synchronization byte at 1200 baud (or 7618 baud on fast parts,
see --fast) followed by exactly 256 bytes, which it loads at address
0x0000 and jumps to. The talker image is read from a Motorola S-record
file and zero padded to 256 bytes.

After the download the line is switched to the 9600 baud talker rate.
With --legacy the MCU is additionally put into special test mode so the
JBug11-style talker can reach the control registers.`,
	RunE: runUpTalker,
}

func init() {
	upTalkerCmd.Flags().StringVarP(&talkerFile, "talker", "t", "talker.s19", "Talker S-record file to download")
	upTalkerCmd.Flags().BoolVar(&fastBaud, "fast", false, "Use the 7618 baud bootstrap rate (8MHz E-clock parts)")
	rootCmd.AddCommand(upTalkerCmd)
}

func runUpTalker(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	session := newSession()

	f, err := os.Open(talkerFile)
	if err != nil {
		return fmt.Errorf("failed to open talker file: %v", err)
	}
	defer f.Close()

	program, err := talker.LoadControlProgram(f)
	if err != nil {
		return err
	}

	bootBaud := talker.BootstrapBaud
	if fastBaud {
		bootBaud = talker.BootstrapBaudFast
	}

	conn, connInfo, err := OpenConnection(bootBaud, session.Timeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	logger.Info("Downloading talker",
		log.String("file", talkerFile),
		log.String("connection", connInfo),
		log.Stringer("variant", session.Variant))

	if err := conn.Purge(); err != nil {
		return fmt.Errorf("failed to purge input: %v", err)
	}

	link := talker.NewLink(conn, session)
	if err := talker.Upload(link, program); err != nil {
		return err
	}

	logger.Info("Download completed successfully")

	// Let the MCU start the talker before touching the line again.
	time.Sleep(75 * time.Millisecond)

	if err := conn.Reconfigure(talker.TalkerBaud); err != nil {
		return err
	}

	if session.Variant == talker.VariantJBug {
		logger.Info("Switching MCU to special test mode")
		driver := talker.New(conn, session)
		if err := driver.EnterTestMode(); err != nil {
			return err
		}
	}

	logger.Info("Talker is running", log.String("baud", "9600"))
	return nil
}
