// SPDX-License-Identifier: MIT
// Copyright (c) 2024 Truong Hy

package talker

import (
	"io"

	"github.com/truhy/tru11/pkg/srec"
)

// LoadControlProgram reads a talker image from an S-record source and
// returns the bootstrap RAM image: all S1 payload bytes in file order,
// zero-padded to the fixed bootstrap capacity. A source carrying more than
// the capacity fails with ProgramTooLargeError.
func LoadControlProgram(r io.Reader) ([]byte, error) {
	buf := make([]byte, 0, BootstrapCapacity)

	sc := srec.NewScanner(r)
	for sc.Scan() {
		data := sc.Record().Data
		if len(buf)+len(data) > BootstrapCapacity {
			return nil, &ProgramTooLargeError{Capacity: BootstrapCapacity}
		}
		buf = append(buf, data...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for len(buf) < BootstrapCapacity {
		buf = append(buf, 0x00)
	}
	return buf, nil
}

// Upload downloads a control program into the bootstrap ROM's RAM image.
// A single 0xFF sync byte establishes the boot ROM's timing first; it is
// never echoed. The program bytes then go out through the bootstrap
// transfer, which tolerates a lost echo of the final byte. After Upload
// returns, the caller must give the downloaded program tens of milliseconds
// to initialize before switching the port to the talker baud rate.
func Upload(link *Link, program []byte) error {
	if len(program) > BootstrapCapacity {
		return &ProgramTooLargeError{Capacity: BootstrapCapacity}
	}

	if err := link.Transmit([]byte{SyncByte}); err != nil {
		return err
	}

	rx := make([]byte, len(program))
	return link.TransmitReceiveBootstrap(program, rx)
}
