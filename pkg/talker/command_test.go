package talker

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestVariantOpcode(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		command Command
		opcode  byte
		echo    EchoMode
		wantErr bool
	}{
		{name: "tru read", variant: VariantTru, command: CmdReadMemory, opcode: 0x01, echo: EchoDirect},
		{name: "tru write", variant: VariantTru, command: CmdWriteMemory, opcode: 0x02, echo: EchoDirect},
		{name: "tru write eeprom", variant: VariantTru, command: CmdWriteEEPROM, opcode: 0x03, echo: EchoDirect},
		{name: "tru write eprom", variant: VariantTru, command: CmdWriteEPROM, opcode: 0x04, echo: EchoDirect},
		{name: "tru write eprom e20", variant: VariantTru, command: CmdWriteEPROME20, opcode: 0x05, echo: EchoDirect},
		{name: "jbug read", variant: VariantJBug, command: CmdReadMemory, opcode: 0x01, echo: EchoInverted},
		{name: "jbug write", variant: VariantJBug, command: CmdWriteMemory, opcode: 0x41, echo: EchoInverted},
		{name: "jbug write eeprom", variant: VariantJBug, command: CmdWriteEEPROM, wantErr: true},
		{name: "jbug write eprom", variant: VariantJBug, command: CmdWriteEPROM, wantErr: true},
		{name: "jbug write eprom e20", variant: VariantJBug, command: CmdWriteEPROME20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := tt.variant.opcode(tt.command)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.opcode, spec.opcode)
			assert.Equal(t, tt.echo, spec.echo)
		})
	}
}

func TestCommandIsProgramming(t *testing.T) {
	assert.False(t, CmdReadMemory.IsProgramming())
	assert.False(t, CmdWriteMemory.IsProgramming())
	assert.True(t, CmdWriteEEPROM.IsProgramming())
	assert.True(t, CmdWriteEPROM.IsProgramming())
	assert.True(t, CmdWriteEPROME20.IsProgramming())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "read", CmdReadMemory.String())
	assert.Equal(t, "write-eprom-e20", CmdWriteEPROME20.String())
	assert.Equal(t, "tru", VariantTru.String())
	assert.Equal(t, "jbug", VariantJBug.String())
}
