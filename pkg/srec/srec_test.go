package srec

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		addr uint16
		data []byte
		want byte
	}{
		{name: "empty payload", addr: 0x0000, data: nil, want: 0xFC},
		{name: "single byte", addr: 0x0000, data: []byte{0x00}, want: 0xFB},
		{name: "sixteen bytes", addr: 0x0000, data: []byte{
			0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
		}, want: 0x74},
		{name: "address contributes", addr: 0xB600, data: []byte{0xAA}, want: 0x9B},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Checksum(tt.addr, tt.data))
		})
	}
}

func TestIsData(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{name: "data record", line: "S1130000000102030405060708090A0B0C0D0E0F74", want: true},
		{name: "minimum length", line: "S1030000", want: true},
		{name: "header", line: "S0030000FC", want: false},
		{name: "terminator", line: "S9030000FC", want: false},
		{name: "too short", line: "S10300", want: false},
		{name: "empty", line: "", want: false},
		{name: "trailing whitespace", line: "S1040000AA51\r", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsData(tt.line))
		})
	}
}

func TestParseData(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		rec, err := ParseData("S1130000000102030405060708090A0B0C0D0E0F74")
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x0000), rec.Address)
		assert.Len(t, rec.Data, 16)
		assert.Equal(t, byte(0x0F), rec.Data[15])
		assert.Equal(t, byte(0x74), rec.Checksum)
		assert.True(t, rec.ChecksumOK())
	})

	t.Run("nonzero address", func(t *testing.T) {
		rec, err := ParseData(EncodeData(0xB600, []byte{0xAA, 0x55}))
		assert.NoError(t, err)
		assert.Equal(t, uint16(0xB600), rec.Address)
		assert.Equal(t, []byte{0xAA, 0x55}, rec.Data)
		assert.True(t, rec.ChecksumOK())
	})

	t.Run("stored checksum preserved", func(t *testing.T) {
		// Wrong checksum parses fine, ChecksumOK flags it.
		rec, err := ParseData("S1040000AAFF")
		assert.NoError(t, err)
		assert.Equal(t, byte(0xFF), rec.Checksum)
		assert.False(t, rec.ChecksumOK())
	})

	tests := []struct {
		name string
		line string
	}{
		{name: "not a data record", line: "S9030000FC"},
		{name: "truncated payload", line: "S1130000AABB"},
		{name: "count below overhead", line: "S1020000FD"},
		{name: "bad hex in count", line: "S1XX0000AA"},
		{name: "bad hex in data", line: "S1040000ZZ51"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseData(tt.line)
			assert.Error(t, err)
		})
	}
}

func TestEncodeData(t *testing.T) {
	tests := []struct {
		name string
		addr uint16
		data []byte
		want string
	}{
		{name: "single byte", addr: 0x0000, data: []byte{0xAA}, want: "S1040000AA51"},
		{name: "sixteen bytes", addr: 0x0000, data: []byte{
			0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
			0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
		}, want: "S1130000000102030405060708090A0B0C0D0E0F74"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeData(tt.addr, tt.data))
		})
	}

	t.Run("round trip", func(t *testing.T) {
		data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		rec, err := ParseData(EncodeData(0x2000, data))
		assert.NoError(t, err)
		assert.Equal(t, uint16(0x2000), rec.Address)
		assert.Equal(t, data, rec.Data)
		assert.True(t, rec.ChecksumOK())
	})
}
