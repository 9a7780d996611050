package scte35

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpliceCommandNoBody(t *testing.T) {
	for _, commandType := range []uint8{SpliceCommandTypeSpliceNull, SpliceCommandTypeBandwidthReservation} {
		ir := newBitsIterator(nil)
		c, err := parseSpliceCommand(ir, commandType, 0)
		assert.NoError(t, err)
		assert.Equal(t, &SpliceCommand{Type: commandType}, c)
		assert.Equal(t, 0, ir.Offset())
	}
}

func TestParseSpliceCommandUnknownType(t *testing.T) {
	_, err := parseSpliceCommand(newBitsIterator(nil), 0x01, 0)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, ParseErrorKindUnknownSpliceCommandType, pe.Kind)
	assert.Equal(t, uint64(0x01), pe.Value)
}

func TestParseTimeSignal(t *testing.T) {
	c, err := parseSpliceCommand(newBitsIterator(spliceTimeSpecifiedBytes()), SpliceCommandTypeTimeSignal, 5)
	assert.NoError(t, err)
	assert.Equal(t, &SpliceCommand{
		Type:       SpliceCommandTypeTimeSignal,
		TimeSignal: &TimeSignal{SpliceTime: spliceTimeSpecified},
	}, c)
	assert.False(t, c.TimeSignal.IsImmediate())
}

func TestParseTimeSignalImmediate(t *testing.T) {
	c, err := parseSpliceCommand(newBitsIterator([]byte{0x7f}), SpliceCommandTypeTimeSignal, 1)
	assert.NoError(t, err)
	assert.Nil(t, c.TimeSignal.SpliceTime.PTSTime)
	assert.True(t, c.TimeSignal.IsImmediate())
}

func TestParsePrivateCommand(t *testing.T) {
	bs := append([]byte("DISC"), 0x01, 0x02, 0x03)
	c, err := parsePrivateCommand(newBitsIterator(bs), 7)
	assert.NoError(t, err)
	assert.Equal(t, &PrivateCommand{Identifier: "DISC", PrivateBytes: []byte{0x01, 0x02, 0x03}}, c)
}

func TestParsePrivateCommandUnusableLength(t *testing.T) {
	for _, commandLength := range []uint16{spliceCommandLengthNotSpecified, 3} {
		_, err := parsePrivateCommand(newBitsIterator([]byte("DISC")), commandLength)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
		assert.Equal(t, ParseErrorKindInvalidSectionLength, pe.Kind)
	}
}
