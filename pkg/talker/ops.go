// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/truhy/tru11/pkg/srec"
)

// Dump reads the inclusive address range [from, to] out of the target and
// writes it as S-records to file, echoing the bytes to console in DataLen
// groups. A nil file dumps to the console only.
func (d *Driver) Dump(file io.Writer, console io.Writer, from, to uint16) error {
	total := int(to) - int(from) + 1
	if total <= 0 {
		return fmt.Errorf("invalid address range 0x%04X-0x%04X", from, to)
	}

	var sw *srec.Writer
	if file != nil {
		sw = srec.NewWriter(file, from, d.cfg.DataLen)
	}

	buf := make([]byte, MaxTransfer)
	addr := from
	col := 0
	for remaining := total; remaining > 0; {
		chunk := buf[:min(remaining, MaxTransfer)]
		if err := d.ReadMemory(addr, chunk); err != nil {
			return err
		}
		if sw != nil {
			if _, err := sw.Write(chunk); err != nil {
				return err
			}
		}

		for _, b := range chunk {
			if col == 0 {
				fmt.Fprintf(console, "%04X:", addr)
			}
			fmt.Fprintf(console, "%02X", b)
			col++
			if col == d.cfg.DataLen {
				fmt.Fprintln(console)
				col = 0
			}
			addr++
		}
		remaining -= len(chunk)
	}
	if col != 0 {
		fmt.Fprintln(console)
	}

	if sw != nil {
		return sw.Close()
	}
	return nil
}

// VerifyFile reads back every S1 record's address range from the target and
// tallies it against the record's data. Content mismatches are recovered
// locally: counted, reported per line, and summarized; only transport and
// handshake failures abort. Record checksums are validated on the way but
// never halt processing.
func (d *Driver) VerifyFile(src io.Reader, console io.Writer) (Tally, error) {
	var total Tally

	sc := srec.NewScanner(src)
	for sc.Scan() {
		rec := sc.Record()
		fmt.Fprintf(console, "File: %s\n", sc.Text())
		if !rec.ChecksumOK() {
			fmt.Fprintf(console, "Warn: stored checksum 0x%02X, computed 0x%02X\n",
				rec.Checksum, srec.Checksum(rec.Address, rec.Data))
		}
		if len(rec.Data) == 0 {
			continue
		}

		buf := make([]byte, len(rec.Data))
		if err := d.ReadMemory(rec.Address, buf); err != nil {
			return total, err
		}

		var line Tally
		for i, b := range buf {
			line.Record(rec.Address+uint16(i), b, rec.Data[i], d.cfg.VerifyConfig)
		}
		fmt.Fprintf(console, "Rx  :         %02X = %s\n", buf, line.Describe())
		total.Add(line)
	}
	if err := sc.Err(); err != nil {
		return total, err
	}

	fmt.Fprintln(console, total.Summary())
	return total, nil
}

// WriteFile writes every S1 record to the target under cmd and tallies the
// talker's re-read of each byte against what was sent. Used for plain
// writes on both variants and for the current talker's programming opcodes;
// the legacy talker programs through ProgramFile instead.
func (d *Driver) WriteFile(src io.Reader, console io.Writer, cmd Command) (Tally, error) {
	var total Tally

	sc := srec.NewScanner(src)
	for sc.Scan() {
		rec := sc.Record()
		if len(rec.Data) == 0 {
			continue
		}

		readback, err := d.WriteMemory(cmd, rec.Address, rec.Data)
		if err != nil {
			return total, err
		}

		var line Tally
		for i, b := range readback {
			line.Record(rec.Address+uint16(i), b, rec.Data[i], d.cfg.VerifyConfig)
		}
		fmt.Fprintf(console, "%04X:%02X = %s\n", rec.Address, rec.Data, line.Describe())
		total.Add(line)
	}
	if err := sc.Err(); err != nil {
		return total, err
	}

	fmt.Fprintln(console, total.Summary())
	return total, nil
}

// ProgramFile persists every S1 record byte by byte through the legacy
// register sequences. There is no wire-level readback; each register write
// is already echo-verified.
func (d *Driver) ProgramFile(src io.Reader, console io.Writer, cmd Command) error {
	program, err := d.programByteFunc(cmd)
	if err != nil {
		return err
	}

	sc := srec.NewScanner(src)
	for sc.Scan() {
		rec := sc.Record()
		if len(rec.Data) == 0 {
			continue
		}

		fmt.Fprintf(console, "%04X:%02X\n", rec.Address, rec.Data)
		for i, b := range rec.Data {
			if err := program(rec.Address+uint16(i), b); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

// WriteHex writes a hex string payload starting at addr. An odd-length
// string gets a leading zero digit, as if the first byte had been typed
// without its high nibble.
func (d *Driver) WriteHex(console io.Writer, cmd Command, addr uint16, data string) error {
	if len(data)%2 == 1 {
		data = "0" + data
	}
	payload, err := hex.DecodeString(data)
	if err != nil {
		return fmt.Errorf("hex data: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}

	fmt.Fprintf(console, "%04X:%s\n", addr, strings.ToUpper(data))

	for len(payload) > 0 {
		n := min(len(payload), MaxTransfer)
		if _, err := d.WriteMemory(cmd, addr, payload[:n]); err != nil {
			return err
		}
		addr += uint16(n)
		payload = payload[n:]
	}
	return nil
}

func (d *Driver) programByteFunc(cmd Command) (func(uint16, byte) error, error) {
	switch cmd {
	case CmdWriteEEPROM:
		return d.ProgramEEPROMByte, nil
	case CmdWriteEPROM:
		return d.ProgramEPROMByte, nil
	case CmdWriteEPROME20:
		return d.ProgramEPROME20Byte, nil
	default:
		return nil, fmt.Errorf("command %s is not a programming command", cmd)
	}
}
