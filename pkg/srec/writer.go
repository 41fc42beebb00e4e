// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package srec

import (
	"fmt"
	"io"
)

// Writer emits a well-formed S-record file: the fixed S0 header, S1 data
// records of at most dataLen payload bytes each, and the fixed S9 terminator.
// Record boundaries depend only on the byte count, never on the address.
// Lines are terminated with CRLF.
type Writer struct {
	w           io.Writer
	dataLen     int
	addr        uint16 // address of the first buffered byte
	buf         []byte
	wroteHeader bool
	closed      bool
}

// NewWriter returns a Writer emitting records starting at addr. A dataLen
// of zero or less selects DefaultDataLen.
func NewWriter(w io.Writer, addr uint16, dataLen int) *Writer {
	if dataLen <= 0 {
		dataLen = DefaultDataLen
	}
	return &Writer{
		w:       w,
		dataLen: dataLen,
		addr:    addr,
		buf:     make([]byte, 0, dataLen),
	}
}

// Write buffers p and flushes a complete S1 record each time dataLen payload
// bytes have accumulated. Addresses advance by one per byte written.
func (sw *Writer) Write(p []byte) (int, error) {
	if sw.closed {
		return 0, fmt.Errorf("srec: write after Close")
	}
	if err := sw.writeHeader(); err != nil {
		return 0, err
	}

	for n, b := range p {
		sw.buf = append(sw.buf, b)
		if len(sw.buf) == sw.dataLen {
			if err := sw.flush(); err != nil {
				return n, err
			}
		}
	}
	return len(p), nil
}

// Close flushes any partial record and writes the S9 terminator. The
// underlying writer is not closed.
func (sw *Writer) Close() error {
	if sw.closed {
		return nil
	}
	sw.closed = true

	if err := sw.writeHeader(); err != nil {
		return err
	}
	if len(sw.buf) > 0 {
		if err := sw.flush(); err != nil {
			return err
		}
	}
	return sw.writeLine(TerminatorLine)
}

func (sw *Writer) writeHeader() error {
	if sw.wroteHeader {
		return nil
	}
	sw.wroteHeader = true
	return sw.writeLine(HeaderLine)
}

func (sw *Writer) flush() error {
	line := EncodeData(sw.addr, sw.buf)
	sw.addr += uint16(len(sw.buf))
	sw.buf = sw.buf[:0]
	return sw.writeLine(line)
}

func (sw *Writer) writeLine(line string) error {
	_, err := io.WriteString(sw.w, line+"\r\n")
	return err
}
