package scte35

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsIterator(t *testing.T) {
	ir := newBitsIterator([]byte{0xa6, 0x5d})
	v, err := ir.NextBits(3)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x5), v)
	b, err := ir.NextBool()
	assert.NoError(t, err)
	assert.False(t, b)
	v, err = ir.NextBits(4)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x6), v)
	assert.Equal(t, 8, ir.Offset())
	assert.Equal(t, 8, ir.RemainingBits())
	by, err := ir.NextByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x5d), by)
	assert.False(t, ir.HasBitsLeft(1))
}

func TestBitsIteratorEndOfData(t *testing.T) {
	ir := newBitsIterator([]byte{0xff})
	_, err := ir.NextBits(9)
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, ParseErrorKindUnexpectedEndOfData, pe.Kind)
	assert.Equal(t, 9, pe.ExpectedBits)
	assert.Equal(t, 8, pe.ActualBits)
	// a failed read does not advance
	assert.Equal(t, 8, ir.RemainingBits())
	assert.Error(t, ir.Skip(9))
	_, err = ir.NextBytes(2)
	assert.Error(t, err)
}

func TestBitsIteratorBitCount(t *testing.T) {
	ir := newBitsIterator([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	for _, n := range []int{0, 65, -1} {
		_, err := ir.NextBits(n)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe))
		assert.Equal(t, ParseErrorKindInvalidBitCount, pe.Kind)
		assert.Equal(t, n, pe.ExpectedBits)
	}
	assert.Equal(t, 0, ir.Offset())
	v, err := ir.NextBits(64)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0xffffffffffffffff), v)
}

func TestBitsIteratorNextBytes(t *testing.T) {
	ir := newBitsIterator([]byte{0x12, 0x34, 0x56})
	assert.NoError(t, ir.Skip(4))
	bs, err := ir.NextBytes(2)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x23, 0x45}, bs)
	assert.Equal(t, 4, ir.RemainingBits())
}

func TestBitsIteratorNextString(t *testing.T) {
	ir := newBitsIterator([]byte("CUEI"))
	s, err := ir.NextString(4)
	assert.NoError(t, err)
	assert.Equal(t, "CUEI", s)
}

func TestBitsIteratorSeek(t *testing.T) {
	ir := newBitsIterator([]byte{0x12, 0x34})
	ir.Seek(8)
	assert.Equal(t, 8, ir.Offset())
	by, err := ir.NextByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x34), by)
}
