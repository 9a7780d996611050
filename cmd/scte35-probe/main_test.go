package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/theRealRobG/scte35"
)

func TestDescriptorToStringDegradedDescriptor(t *testing.T) {
	// an avail descriptor declaring 5 body bytes but carrying only 4
	// degrades to private bytes with a nil Avail
	s, err := scte35.ParseSpliceInfoSectionHexString("0xFC301800000000000000FFF000000007000543554549AADEADBEEF")
	assert.NoError(t, err)
	assert.Len(t, s.NonFatalErrors, 1)
	assert.Len(t, s.SpliceDescriptors, 1)
	d := s.SpliceDescriptors[0]
	assert.Nil(t, d.Avail)
	assert.Equal(t, []byte{0xaa}, d.Private)
	assert.Equal(t, "[Private] tag: 0x00 | 1 private bytes", descriptorToString(d))
	assert.NotEmpty(t, sectionToString(s))
}

func TestDescriptorToStringUnknownTag(t *testing.T) {
	d := &scte35.SpliceDescriptor{Tag: 0xf0, Length: 6, Identifier: 0x43554549, Private: []byte{0x01, 0x02}}
	assert.Equal(t, "[Private] tag: 0xf0 | 2 private bytes", descriptorToString(d))
}

func TestIsHexMessage(t *testing.T) {
	assert.True(t, isHexMessage("0xfc3018"))
	assert.True(t, isHexMessage("FC3018"))
	assert.False(t, isHexMessage("0xfc301"))
	assert.False(t, isHexMessage("/DAWAAAAAAAAAP/wBQb+AKpFLgAAx4oV"))
}
