// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import "time"

// Session carries the runtime parameters for one invocation. It is built
// once from the command line and never modified afterwards.
//
// The 68HC11 SCI has a single-byte receive buffer, so on hosts whose serial
// driver does not buffer, the chunk sizes must be lowered to 2 or 1.
// Programming EEPROM/EPROM needs a device-side delay per byte, which defeats
// read-ahead buffering on some drivers; the programming path therefore uses
// its own, much smaller transmit chunk size.
type Session struct {
	// Variant selects the talker command set in use.
	Variant Variant

	// TxChunk and RxChunk bound how many bytes a single transport write or
	// read may move.
	TxChunk int
	RxChunk int

	// ProgChunk bounds transmit chunks while an EEPROM/EPROM opcode is
	// programming.
	ProgChunk int

	// Timeout is the transport read/write timeout. The session itself never
	// sleeps on it; the transport layer applies it.
	Timeout time.Duration

	// DataLen is the number of payload bytes per emitted S1 record.
	DataLen int

	// VerifyConfig includes the CONFIG register in mismatch verification.
	// Off by default: the register reads back its pre-programming value
	// until the MCU is reset.
	VerifyConfig bool

	// EraseProgramDelay is the settle time between enabling and disabling
	// programming in the legacy register sequences. The talker round trips
	// are slow enough that zero works on stock parts, but adapter and chip
	// revisions vary.
	EraseProgramDelay time.Duration
}

// NewSession returns a Session with the defaults for a buffering serial
// driver.
func NewSession() *Session {
	return &Session{
		Variant:   VariantTru,
		TxChunk:   256,
		RxChunk:   256,
		ProgChunk: 2,
		Timeout:   time.Second,
		DataLen:   16,
	}
}
