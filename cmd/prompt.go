// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/truhy/tru11/pkg/talker"
)

// confirmProgramming asks the user to acknowledge a destructive programming
// operation. Returns true when the user answered yes, or when skipPrompt is
// set. Refuses non-interactive runs without skipPrompt so a script cannot
// erase an EEPROM by accident.
func confirmProgramming(command talker.Command, skipPrompt bool) (bool, error) {
	if skipPrompt {
		return true, nil
	}

	switch command {
	case talker.CmdWriteEEPROM:
		fmt.Println("WARNING: this will erase and reprogram EEPROM bytes, existing data at")
		fmt.Println("the target addresses will be lost.")
	case talker.CmdWriteEPROM, talker.CmdWriteEPROME20:
		fmt.Println("WARNING: EPROM programming requires the programming voltage (12V) to be")
		fmt.Println("applied to the VPPE pin. Make sure it is connected before continuing.")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("refusing to program without a terminal, pass --yes to confirm")
	}

	fmt.Print("Continue? (y/n): ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %v", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
