// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import (
	"fmt"
	"io"
)

// Port is the duplex byte stream the protocol runs over. The transport owns
// opening, baud configuration, and timeouts; the engine only reads and
// writes. A short count is the sole failure signal the engine relies on.
type Port interface {
	io.Reader
	io.Writer
}

// Link moves arbitrary-length byte sequences across a Port whose single
// operation capacity is bounded by the session's chunk sizes.
type Link struct {
	port Port
	cfg  *Session
}

// NewLink returns a Link over port using the session's chunk sizes.
func NewLink(port Port, cfg *Session) *Link {
	return &Link{port: port, cfg: cfg}
}

// Transmit writes all of buf in chunks of at most the transmit chunk size.
func (l *Link) Transmit(buf []byte) error {
	for len(buf) > 0 {
		n := min(len(buf), l.cfg.TxChunk)
		if err := l.writeChunk(buf[:n]); err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// Receive fills all of buf in chunks of at most the receive chunk size.
func (l *Link) Receive(buf []byte) error {
	for len(buf) > 0 {
		n := min(len(buf), l.cfg.RxChunk)
		if err := l.readChunk(buf[:n]); err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// TransmitReceive writes tx and reads the same amount back into rx, chunk by
// chunk, verifying each chunk per echo. Writing a whole chunk before reading
// it back exploits driver buffering for a large speedup over byte-at-a-time
// exchanges.
func (l *Link) TransmitReceive(tx, rx []byte, echo EchoMode) error {
	return l.transmitReceive(tx, rx, l.cfg.TxChunk, echo)
}

// ReceiveTransmit reads a chunk and then transmits the corresponding chunk
// of tx. This is the conservative fallback ordering for drivers that cannot
// buffer ahead; TransmitReceive is the default path.
func (l *Link) ReceiveTransmit(rx, tx []byte) error {
	if len(tx) != len(rx) {
		return fmt.Errorf("receive/transmit length mismatch: %d != %d", len(rx), len(tx))
	}
	for len(rx) > 0 {
		n := min(len(rx), l.cfg.RxChunk)
		if err := l.readChunk(rx[:n]); err != nil {
			return err
		}
		if err := l.Transmit(tx[:n]); err != nil {
			return err
		}
		rx = rx[n:]
		tx = tx[n:]
	}
	return nil
}

// TransmitReceiveBootstrap is the combined transfer used only for the
// bootstrap download. With no flow control and the boot ROM's baud scheme,
// some USB TTL adapters never deliver the echo of the very last byte, so the
// echo of that one byte is attempted and any failure discarded. Every other
// byte is verified as a direct echo.
func (l *Link) TransmitReceiveBootstrap(tx, rx []byte) error {
	if len(tx) != len(rx) {
		return fmt.Errorf("transmit/receive length mismatch: %d != %d", len(tx), len(rx))
	}

	offset := 0
	for offset < len(tx) {
		n := min(len(tx)-offset, l.cfg.TxChunk)
		txc := tx[offset : offset+n]
		rxc := rx[offset : offset+n]
		last := offset+n == len(tx)

		if err := l.writeChunk(txc); err != nil {
			return err
		}

		switch {
		case !last:
			if err := l.Receive(rxc); err != nil {
				return err
			}
			if err := verifyEcho(txc, rxc, EchoDirect, offset); err != nil {
				return err
			}
		case n == 1:
			l.swallowLastEcho(txc, rxc)
		default:
			if err := l.Receive(rxc[:n-1]); err != nil {
				return err
			}
			if err := verifyEcho(txc[:n-1], rxc[:n-1], EchoDirect, offset); err != nil {
				return err
			}
			l.swallowLastEcho(txc[n-1:], rxc[n-1:])
		}

		offset += n
	}
	return nil
}

// swallowLastEcho tries to read and verify the echo of the final byte and
// deliberately discards any failure. This is the only place an echo or
// receive error is non-fatal.
func (l *Link) swallowLastEcho(txc, rxc []byte) {
	if err := l.readChunk(rxc); err != nil {
		return
	}
	_ = verifyEcho(txc, rxc, EchoDirect, 0)
}

func (l *Link) transmitReceive(tx, rx []byte, chunkSize int, echo EchoMode) error {
	if len(tx) != len(rx) {
		return fmt.Errorf("transmit/receive length mismatch: %d != %d", len(tx), len(rx))
	}
	offset := 0
	for offset < len(tx) {
		n := min(len(tx)-offset, chunkSize)
		txc := tx[offset : offset+n]
		rxc := rx[offset : offset+n]

		if err := l.writeChunk(txc); err != nil {
			return err
		}
		if err := l.Receive(rxc); err != nil {
			return err
		}
		if err := verifyEcho(txc, rxc, echo, offset); err != nil {
			return err
		}
		offset += n
	}
	return nil
}

// writeChunk writes one chunk, which must already fit the transmit bound.
func (l *Link) writeChunk(chunk []byte) error {
	n, err := l.port.Write(chunk)
	if err != nil {
		return fmt.Errorf("transmit: %w", err)
	}
	if n != len(chunk) {
		return &TransmitError{Requested: len(chunk), Written: n}
	}
	return nil
}

// readChunk fills one chunk. The port returns zero bytes on timeout; any
// short delivery surfaces as a ReceiveError.
func (l *Link) readChunk(chunk []byte) error {
	got := 0
	for got < len(chunk) {
		n, err := l.port.Read(chunk[got:])
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}
		if n == 0 {
			return &ReceiveError{Requested: len(chunk), Read: got}
		}
		got += n
	}
	return nil
}

// verifyEcho checks rx against tx under mode. base is the offset of tx
// within the whole transfer, for error reporting.
func verifyEcho(tx, rx []byte, mode EchoMode, base int) error {
	if mode == EchoNone {
		return nil
	}
	for i := range tx {
		expected := tx[i]
		if mode == EchoInverted {
			expected = ^tx[i]
		}
		if rx[i] != expected {
			return &EchoMismatchError{Offset: base + i, Expected: expected, Actual: rx[i]}
		}
	}
	return nil
}
