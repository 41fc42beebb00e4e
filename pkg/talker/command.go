// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import "fmt"

// EchoMode selects how received bytes are checked against transmitted ones.
type EchoMode uint8

const (
	// EchoNone performs no verification; the received bytes are data, not
	// echoes.
	EchoNone EchoMode = iota

	// EchoDirect expects every received byte to equal the transmitted byte.
	EchoDirect

	// EchoInverted expects every received byte to be the one's complement
	// of the transmitted byte.
	EchoInverted
)

// Variant identifies which talker firmware generation is loaded, and with it
// the command numbering scheme. A session resolves its variant once; the two
// schemes are never mixed.
type Variant uint8

const (
	// VariantTru is the current talker: one opcode per operation including
	// the EEPROM/EPROM programming commands, and the device echoes each
	// command byte unchanged.
	VariantTru Variant = iota

	// VariantJBug is the legacy JBug11-style talker: read and write only,
	// command bytes echoed inverted, and EEPROM/EPROM programming done by
	// the host through writes to the on-chip control registers.
	VariantJBug
)

func (v Variant) String() string {
	switch v {
	case VariantTru:
		return "tru"
	case VariantJBug:
		return "jbug"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// Command is one of the talker memory operations.
type Command uint8

const (
	CmdReadMemory Command = iota
	CmdWriteMemory
	CmdWriteEEPROM
	CmdWriteEPROM
	CmdWriteEPROME20
)

func (c Command) String() string {
	switch c {
	case CmdReadMemory:
		return "read"
	case CmdWriteMemory:
		return "write"
	case CmdWriteEEPROM:
		return "write-eeprom"
	case CmdWriteEPROM:
		return "write-eprom"
	case CmdWriteEPROME20:
		return "write-eprom-e20"
	default:
		return fmt.Sprintf("Command(%d)", uint8(c))
	}
}

// IsProgramming reports whether the command persists bytes through the
// device's erase/program circuitry rather than plain memory stores.
func (c Command) IsProgramming() bool {
	switch c {
	case CmdWriteEEPROM, CmdWriteEPROM, CmdWriteEPROME20:
		return true
	default:
		return false
	}
}

// opcodeSpec is one entry of a variant's command table: the wire opcode and
// the echo the device answers the command byte with.
type opcodeSpec struct {
	opcode byte
	echo   EchoMode
}

var truOpcodes = map[Command]opcodeSpec{
	CmdReadMemory:    {opcode: 0x01, echo: EchoDirect},
	CmdWriteMemory:   {opcode: 0x02, echo: EchoDirect},
	CmdWriteEEPROM:   {opcode: 0x03, echo: EchoDirect},
	CmdWriteEPROM:    {opcode: 0x04, echo: EchoDirect},
	CmdWriteEPROME20: {opcode: 0x05, echo: EchoDirect},
}

var jbugOpcodes = map[Command]opcodeSpec{
	CmdReadMemory:  {opcode: 0x01, echo: EchoInverted},
	CmdWriteMemory: {opcode: 0x41, echo: EchoInverted},
}

// opcode looks up the wire encoding of c under variant v. Programming
// commands have no opcode on the legacy talker; they are carried out through
// register writes instead.
func (v Variant) opcode(c Command) (opcodeSpec, error) {
	var table map[Command]opcodeSpec
	switch v {
	case VariantTru:
		table = truOpcodes
	case VariantJBug:
		table = jbugOpcodes
	default:
		return opcodeSpec{}, fmt.Errorf("unknown protocol variant %d", uint8(v))
	}

	spec, ok := table[c]
	if !ok {
		return opcodeSpec{}, fmt.Errorf("command %s has no opcode on the %s talker", c, v)
	}
	return spec, nil
}
