package talker

import "bytes"

// fakePort is a scripted duplex byte stream. Everything the host writes is
// recorded in tx; reads drain the rx queue. An optional echo function queues
// one reply byte per written byte, emulating a device that echoes its input.
type fakePort struct {
	tx         bytes.Buffer
	rx         []byte
	rxPos      int
	echo       func(byte) byte
	writeSizes []int
	readMax    int   // cap bytes delivered per Read call, 0 for no cap
	writeMax   int   // cap bytes accepted per Write call, 0 for no cap
	writeErr   error // returned by every Write when set
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	n := len(b)
	if p.writeMax > 0 && n > p.writeMax {
		n = p.writeMax
	}
	p.tx.Write(b[:n])
	p.writeSizes = append(p.writeSizes, n)
	if p.echo != nil {
		for _, c := range b[:n] {
			p.rx = append(p.rx, p.echo(c))
		}
	}
	return n, nil
}

// Read delivers queued bytes and returns a zero count once the queue is
// drained, like a serial port read timing out.
func (p *fakePort) Read(b []byte) (int, error) {
	avail := len(p.rx) - p.rxPos
	if avail == 0 {
		return 0, nil
	}
	n := len(b)
	if n > avail {
		n = avail
	}
	if p.readMax > 0 && n > p.readMax {
		n = p.readMax
	}
	copy(b, p.rx[p.rxPos:p.rxPos+n])
	p.rxPos += n
	return n, nil
}

func (p *fakePort) queue(b ...byte) {
	p.rx = append(p.rx, b...)
}

func directEcho(b byte) byte   { return b }
func invertedEcho(b byte) byte { return ^b }

// deviceWrite is one expected single-byte write operation against the
// legacy talker, used to script register programming sequences.
type deviceWrite struct {
	addr  uint16
	value byte
}

// scriptWrites queues the legacy talker's replies for a sequence of
// single-byte writes and returns the byte stream the host is expected to
// transmit for it.
func scriptWrites(p *fakePort, writes []deviceWrite) []byte {
	var tx []byte
	for _, w := range writes {
		tx = append(tx, 0x41, 0x01, byte(w.addr>>8), byte(w.addr), w.value)
		p.queue(^byte(0x41), w.value)
	}
	return tx
}
