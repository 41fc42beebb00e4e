// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

// Package srec implements the Motorola S-record subset used by the 68HC11
// talker tools: the fixed S0 header, S1 data records with 16-bit addresses,
// and the S9 terminator.
package srec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// HeaderLine is the fixed S0 record emitted before the first data record.
	HeaderLine = "S0030000FC"

	// TerminatorLine is the fixed S9 record emitted after the last data record.
	TerminatorLine = "S9030000FC"

	// DefaultDataLen is the conventional number of data bytes per S1 record.
	DefaultDataLen = 16

	// recordOverhead is the part of the byte count that is not payload:
	// two address bytes plus the checksum byte.
	recordOverhead = 3

	// minLineLen is the shortest string that can hold an S1 record:
	// "S1" + count + address gives 8 characters before any payload.
	minLineLen = 8
)

// Record is a decoded S1 data record.
type Record struct {
	Address  uint16
	Data     []byte
	Checksum byte // checksum as stored in the line
}

// ChecksumOK reports whether the stored checksum matches the recomputed one.
func (r *Record) ChecksumOK() bool {
	return Checksum(r.Address, r.Data) == r.Checksum
}

// IsData reports whether line qualifies as an S1 data record. Only the
// marker and minimum length are checked; ParseData validates the rest.
func IsData(line string) bool {
	line = trimLine(line)
	return len(line) >= minLineLen && strings.HasPrefix(line, "S1")
}

// ParseData decodes an S1 data record line. The line must qualify per IsData
// and carry the full payload and checksum its byte count declares.
func ParseData(line string) (*Record, error) {
	line = trimLine(line)
	if !IsData(line) {
		return nil, fmt.Errorf("not an S1 record: %q", line)
	}

	count, err := hexByte(line[2:4])
	if err != nil {
		return nil, fmt.Errorf("byte count: %w", err)
	}
	if count < recordOverhead {
		return nil, fmt.Errorf("byte count %d below record overhead", count)
	}
	if len(line) < 4+2*int(count) {
		return nil, fmt.Errorf("record truncated: count %d needs %d characters, have %d",
			count, 4+2*int(count), len(line))
	}

	addrHi, err := hexByte(line[4:6])
	if err != nil {
		return nil, fmt.Errorf("address: %w", err)
	}
	addrLo, err := hexByte(line[6:8])
	if err != nil {
		return nil, fmt.Errorf("address: %w", err)
	}

	dataEnd := 8 + 2*(int(count)-recordOverhead)
	data, err := hex.DecodeString(line[8:dataEnd])
	if err != nil {
		return nil, fmt.Errorf("data bytes: %w", err)
	}

	sum, err := hexByte(line[dataEnd : dataEnd+2])
	if err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}

	return &Record{
		Address:  uint16(addrHi)<<8 | uint16(addrLo),
		Data:     data,
		Checksum: sum,
	}, nil
}

// Checksum computes the S1 record checksum for an address and payload:
// the one's complement of (byte count + address high + address low + sum of
// data bytes) modulo 256.
func Checksum(addr uint16, data []byte) byte {
	sum := byte(len(data)+recordOverhead) + byte(addr>>8) + byte(addr)
	for _, b := range data {
		sum += b
	}
	return ^sum
}

// EncodeData builds an S1 record line for addr and data, without the line
// terminator. The checksum is always freshly computed.
func EncodeData(addr uint16, data []byte) string {
	var sb strings.Builder
	sb.Grow(minLineLen + 2*len(data) + 2)
	fmt.Fprintf(&sb, "S1%02X%04X", len(data)+recordOverhead, addr)
	fmt.Fprintf(&sb, "%02X", data)
	fmt.Fprintf(&sb, "%02X", Checksum(addr, data))
	return sb.String()
}

func trimLine(line string) string {
	return strings.TrimRight(line, "\r\n \t")
}

func hexByte(s string) (byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}
