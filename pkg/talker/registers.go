// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import "time"

// On-chip control registers used by the legacy talker, which has no
// programming opcodes: the host sequences the EEPROM/EPROM charge pump
// itself through plain writes.
const (
	regBPROT = 0x1035 // block protect
	regEPROG = 0x1036 // EPROM programming control (MC68HC711E20)
	regPPROG = 0x103B // EEPROM/EPROM programming control
	regHPRIO = 0x103C // mode control
)

// PPROG/EPROG bits: LAT enables the address/data latches, PGM turns on the
// programming voltage, ERASE selects erase mode, BYTE/ROW narrow the erase.
const (
	eeLatch      = 0x02
	eeProgram    = 0x03
	eeBulkErase  = 0x06
	eeBulkStart  = 0x07
	eeByteErase  = 0x16
	eeByteStart  = 0x17
	epromLatch   = 0x20
	epromProgram = 0x21
	progOff      = 0x00
)

// EnterTestMode switches the MCU from bootstrap to special test mode
// (RBOOT=0, IRV=0), which unlocks CONFIG programming and external memory.
// The legacy flow does this right after uploading the talker.
func (d *Driver) EnterTestMode() error {
	return d.WriteByte(regHPRIO, 0x66)
}

// SetBlockProtect toggles the BPROT register. Programming the EEPROM on
// MC68HC811E2 parts requires dropping the protection first; it is restored
// when programming finishes.
func (d *Driver) SetBlockProtect(enabled bool) error {
	if enabled {
		return d.WriteByte(regBPROT, 0x1F)
	}
	return d.WriteByte(regBPROT, 0x00)
}

// ProgramEEPROMByte erases and programs one EEPROM cell through the PPROG
// register. The CONFIG register is bulk erased for compatibility with the
// A1/A8/A2 series; everything else gets a byte erase.
func (d *Driver) ProgramEEPROMByte(addr uint16, value byte) error {
	if addr == ConfigAddr {
		if err := d.latchSequence(regPPROG, eeBulkErase, eeBulkStart, addr, value); err != nil {
			return err
		}
	} else {
		if err := d.latchSequence(regPPROG, eeByteErase, eeByteStart, addr, value); err != nil {
			return err
		}
	}
	return d.latchSequence(regPPROG, eeLatch, eeProgram, addr, value)
}

// ProgramEPROMByte programs one EPROM cell through PPROG. The cell must be
// unwritten (0xFF); programmed zero bits are permanent.
func (d *Driver) ProgramEPROMByte(addr uint16, value byte) error {
	return d.latchSequence(regPPROG, epromLatch, epromProgram, addr, value)
}

// ProgramEPROME20Byte programs one EPROM cell on the MC68HC711E20, which
// uses the separate EPROG register and 12V on the VPPE pin.
func (d *Driver) ProgramEPROME20Byte(addr uint16, value byte) error {
	return d.latchSequence(regEPROG, epromLatch, epromProgram, addr, value)
}

// latchSequence runs one latch/store/start/settle/stop cycle on a
// programming control register: enable the latches, store the data byte to
// toggle the cell circuit, turn on the programming voltage, wait the
// configured settle time, and switch everything off again. The erase
// variants pass the value only as a dummy store.
func (d *Driver) latchSequence(ctrl uint16, enable, start byte, addr uint16, value byte) error {
	if err := d.WriteByte(ctrl, enable); err != nil {
		return err
	}
	if err := d.WriteByte(addr, value); err != nil {
		return err
	}
	if err := d.WriteByte(ctrl, start); err != nil {
		return err
	}
	if d.cfg.EraseProgramDelay > 0 {
		time.Sleep(d.cfg.EraseProgramDelay)
	}
	return d.WriteByte(ctrl, progOff)
}
