package scte35

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const timeSignalSectionHex = "fc3034000000000000fffff00506fe72bd0050001e021c435545494800008e7fcf0001a599b00808000000002ca0a18a3402009ac9d17e"

func TestComputeCRC32(t *testing.T) {
	bs := hexBytes(t, timeSignalSectionHex)
	assert.Equal(t, uint32(0x9ac9d17e), computeCRC32(bs[:len(bs)-4]))
}

func TestUpdateCRC32(t *testing.T) {
	bs := hexBytes(t, timeSignalSectionHex)
	iCrc := updateCRC32(crc32InitialValue, bs[:20])
	iCrc = updateCRC32(iCrc, bs[20:])
	assert.Equal(t, computeCRC32(bs), iCrc)
}

func TestVerifyCRC32(t *testing.T) {
	bs := hexBytes(t, timeSignalSectionHex)
	assert.True(t, VerifyCRC32(bs))
	bs[10] ^= 0x01
	assert.False(t, VerifyCRC32(bs))
}
