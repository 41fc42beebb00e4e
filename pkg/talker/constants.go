// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

const (
	// BootstrapCapacity is the fixed size of the RAM image the bootstrap ROM
	// accepts. Every 68HC11 variant has at least this much RAM.
	BootstrapCapacity = 256

	// MaxTransfer is the largest byte count a single talker command can
	// carry; a count byte of 0 encodes it on the wire.
	MaxTransfer = 256

	// SyncByte is transmitted once before the bootstrap download to let the
	// boot ROM measure the host baud rate. It is never echoed.
	SyncByte = 0xFF

	// ConfigAddr is the CONFIG register. A freshly programmed value cannot
	// be read back until the MCU is reset, so verification excludes this
	// address unless explicitly requested.
	ConfigAddr = 0x103F
)

// Serial rates for the two phases of a session. The bootstrap ROM listens at
// 1200 baud with an 8MHz crystal (7618 with the ROM's fast handshake); the
// talker runs at 9600.
const (
	BootstrapBaud     = 1200
	BootstrapBaudFast = 7618
	TalkerBaud        = 9600
)
