package scte35

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"
	"github.com/stretchr/testify/assert"
)

var spliceTimeSpecified = &SpliceTime{PTSTime: uint64Ptr(0x72bd0050)}

func spliceTimeSpecifiedBytes() []byte {
	buf := &bytes.Buffer{}
	w := bitio.NewWriter(buf)
	writeBinary(w, "1")      // Time specified flag
	writeBinary(w, "111111") // Reserved
	w.TryWriteBits(0x72bd0050, 33)
	w.Close()
	return buf.Bytes()
}

func TestParseSpliceTime(t *testing.T) {
	st, err := parseSpliceTime(newBitsIterator(spliceTimeSpecifiedBytes()))
	assert.NoError(t, err)
	assert.Equal(t, spliceTimeSpecified, st)
}

func TestParseSpliceTimeNotSpecified(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitio.NewWriter(buf)
	writeBinary(w, "0")       // Time specified flag
	writeBinary(w, "1111111") // Reserved
	w.Close()
	st, err := parseSpliceTime(newBitsIterator(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, &SpliceTime{}, st)
}

func TestParseBreakDuration(t *testing.T) {
	buf := &bytes.Buffer{}
	w := bitio.NewWriter(buf)
	writeBinary(w, "1")      // Auto return
	writeBinary(w, "111111") // Reserved
	w.TryWriteBits(5400000, 33)
	w.Close()
	bd, err := parseBreakDuration(newBitsIterator(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, &BreakDuration{AutoReturn: true, Duration: 5400000}, bd)
}
