package talker

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/truhy/tru11/pkg/srec"
)

func TestLoadControlProgram(t *testing.T) {
	t.Run("pads to bootstrap capacity", func(t *testing.T) {
		input := srec.HeaderLine + "\r\n" +
			srec.EncodeData(0x0000, []byte{0x8E, 0x00, 0xFF}) + "\r\n" +
			srec.EncodeData(0x0003, []byte{0x86, 0x0C}) + "\r\n" +
			srec.TerminatorLine + "\r\n"

		program, err := LoadControlProgram(strings.NewReader(input))
		assert.NoError(t, err)
		assert.Len(t, program, BootstrapCapacity)
		assert.Equal(t, []byte{0x8E, 0x00, 0xFF, 0x86, 0x0C}, program[:5])
		for _, b := range program[5:] {
			assert.Equal(t, byte(0x00), b)
		}
	})

	t.Run("exact capacity", func(t *testing.T) {
		data := make([]byte, BootstrapCapacity)
		var sb strings.Builder
		for off := 0; off < len(data); off += 32 {
			sb.WriteString(srec.EncodeData(uint16(off), data[off:off+32]) + "\r\n")
		}

		program, err := LoadControlProgram(strings.NewReader(sb.String()))
		assert.NoError(t, err)
		assert.Len(t, program, BootstrapCapacity)
	})

	t.Run("too large", func(t *testing.T) {
		data := make([]byte, BootstrapCapacity)
		var sb strings.Builder
		for off := 0; off < len(data); off += 32 {
			sb.WriteString(srec.EncodeData(uint16(off), data[off:off+32]) + "\r\n")
		}
		sb.WriteString(srec.EncodeData(0x0100, []byte{0x00}) + "\r\n")

		_, err := LoadControlProgram(strings.NewReader(sb.String()))
		var sizeErr *ProgramTooLargeError
		assert.True(t, errors.As(err, &sizeErr))
		assert.Equal(t, BootstrapCapacity, sizeErr.Capacity)
	})

	t.Run("malformed record", func(t *testing.T) {
		_, err := LoadControlProgram(strings.NewReader("S1130000AABB\r\n"))
		assert.Error(t, err)
	})
}

func TestUpload(t *testing.T) {
	t.Run("sync byte then program", func(t *testing.T) {
		program := make([]byte, BootstrapCapacity)
		for i := range program {
			program[i] = byte(i)
		}

		port := &fakePort{}
		// The boot ROM does not echo the sync byte, only the program.
		port.queue(program...)
		link := newTestLink(port)

		assert.NoError(t, Upload(link, program))

		sent := port.tx.Bytes()
		assert.Len(t, sent, 1+BootstrapCapacity)
		assert.Equal(t, byte(SyncByte), sent[0])
		assert.Equal(t, program, sent[1:])
	})

	t.Run("lost final echo tolerated", func(t *testing.T) {
		program := make([]byte, BootstrapCapacity)
		port := &fakePort{}
		port.queue(program[:BootstrapCapacity-1]...)
		link := newTestLink(port)

		assert.NoError(t, Upload(link, program))
	})

	t.Run("oversized program", func(t *testing.T) {
		err := Upload(newTestLink(&fakePort{}), make([]byte, BootstrapCapacity+1))
		var sizeErr *ProgramTooLargeError
		assert.True(t, errors.As(err, &sizeErr))
	})
}
