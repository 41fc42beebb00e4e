// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

// Package talker drives the command protocol of the 68HC11 talker firmware:
// bootstrap upload of the talker itself, then chunked, echo-verified read,
// write, and EEPROM/EPROM programming operations over a serial byte stream.
package talker

import "fmt"

// Driver runs talker commands over a Link. Each command is a strict linear
// sequence (opcode, parameters, data phase); commands are never pipelined,
// and the port belongs to the driver for the lifetime of the invocation.
type Driver struct {
	link *Link
	cfg  *Session
}

// New returns a Driver speaking the session's protocol variant over port.
func New(port Port, cfg *Session) *Driver {
	return &Driver{link: NewLink(port, cfg), cfg: cfg}
}

// Session returns the session parameters the driver was built with.
func (d *Driver) Session() *Session {
	return d.cfg
}

// ReadMemory fills buf with len(buf) bytes of target memory starting at
// addr. The received bytes are memory contents, not echoes, so no
// verification happens after the data phase. The legacy talker wants an ack
// byte from the host per data byte; zeros are transmitted ahead chunk-wise,
// reusing driver buffering instead of alternating single bytes.
func (d *Driver) ReadMemory(addr uint16, buf []byte) error {
	if err := d.sendCommand(CmdReadMemory); err != nil {
		return err
	}
	if err := d.sendParams(len(buf), addr); err != nil {
		return err
	}

	switch d.cfg.Variant {
	case VariantJBug:
		ack := make([]byte, len(buf))
		return d.link.TransmitReceive(ack, buf, EchoNone)
	default:
		return d.link.Receive(buf)
	}
}

// WriteMemory transmits data to addr under cmd and returns the bytes the
// talker sent back. For plain writes the return is a straight re-read of the
// written cells; callers tally mismatches rather than failing the transfer.
// Programming opcodes run with the smaller programming chunk size because
// the device-side erase/program latency limits how much may be in flight.
func (d *Driver) WriteMemory(cmd Command, addr uint16, data []byte) ([]byte, error) {
	if err := d.sendCommand(cmd); err != nil {
		return nil, err
	}
	if err := d.sendParams(len(data), addr); err != nil {
		return nil, err
	}

	chunk := d.cfg.TxChunk
	if cmd.IsProgramming() {
		chunk = d.cfg.ProgChunk
	}
	readback := make([]byte, len(data))
	if err := d.link.transmitReceive(data, readback, chunk, EchoNone); err != nil {
		return nil, err
	}
	return readback, nil
}

// WriteByte writes a single byte through the plain write command and
// verifies the talker's direct echo of the data byte. The legacy programming
// sequences are built from these and any echo disagreement there is fatal.
func (d *Driver) WriteByte(addr uint16, value byte) error {
	if err := d.sendCommand(CmdWriteMemory); err != nil {
		return err
	}
	if err := d.sendParams(1, addr); err != nil {
		return err
	}
	rx := make([]byte, 1)
	return d.link.TransmitReceive([]byte{value}, rx, EchoDirect)
}

// sendCommand transmits the opcode byte for cmd and checks the single-byte
// echo per the variant's command table.
func (d *Driver) sendCommand(cmd Command) error {
	spec, err := d.cfg.Variant.opcode(cmd)
	if err != nil {
		return err
	}
	rx := make([]byte, 1)
	if err := d.link.TransmitReceive([]byte{spec.opcode}, rx, spec.echo); err != nil {
		return &CommandRejectedError{Command: cmd, Err: err}
	}
	return nil
}

// sendParams transmits the parameter block: byte count (0 encodes 256)
// followed by the big-endian address. The block is not echoed.
func (d *Driver) sendParams(count int, addr uint16) error {
	if count < 1 || count > MaxTransfer {
		return fmt.Errorf("byte count %d outside 1..%d", count, MaxTransfer)
	}
	return d.link.Transmit([]byte{byte(count), byte(addr >> 8), byte(addr)})
}
