package scte35

import (
	"bytes"
	"testing"

	"github.com/asticode/go-astikit"
	"github.com/stretchr/testify/assert"
)

var spliceSchedule = &SpliceSchedule{
	Events: []*SpliceScheduleEvent{
		{EventID: 100},
		{
			EventID: 101,
			ScheduledEvent: &SpliceScheduleScheduledEvent{
				OutOfNetworkIndicator: true,
				Program:               &SpliceScheduleProgram{UTCSpliceTime: 1136073600},
				BreakDuration:         &BreakDuration{AutoReturn: true, Duration: 2700000},
				UniqueProgramID:       0x2b,
				AvailNum:              1,
				AvailsExpected:        4,
			},
		},
	},
}

func spliceScheduleBytes() []byte {
	buf := &bytes.Buffer{}
	w := astikit.NewBitsWriter(astikit.BitsWriterOptions{Writer: buf})
	w.Write(uint8(2))            // Splice count
	w.Write(uint32(100))         // Splice event id
	w.Write("1")                 // Splice event cancel indicator
	w.Write("1111111")           // Reserved
	w.Write(uint32(101))         // Splice event id
	w.Write("0")                 // Splice event cancel indicator
	w.Write("1111111")           // Reserved
	w.Write("1")                 // Out of network indicator
	w.Write("1")                 // Program splice flag
	w.Write("1")                 // Duration flag
	w.Write("11111")             // Reserved
	w.Write(uint32(1136073600))  // UTC splice time
	w.Write("1")                 // Auto return
	w.Write("111111")            // Reserved
	w.WriteN(uint64(2700000), 33) // Break duration
	w.Write(uint16(0x2b))        // Unique program id
	w.Write(uint8(1))            // Avail num
	w.Write(uint8(4))            // Avails expected
	return buf.Bytes()
}

func TestParseSpliceSchedule(t *testing.T) {
	s, err := parseSpliceSchedule(newBitsIterator(spliceScheduleBytes()))
	assert.NoError(t, err)
	assert.Equal(t, spliceSchedule, s)
	assert.True(t, s.Events[0].IsCancelled())
	assert.False(t, s.Events[1].IsCancelled())
}

func TestParseSpliceScheduleComponentSplices(t *testing.T) {
	buf := &bytes.Buffer{}
	w := astikit.NewBitsWriter(astikit.BitsWriterOptions{Writer: buf})
	w.Write(uint8(1))           // Splice count
	w.Write(uint32(102))        // Splice event id
	w.Write("0")                // Splice event cancel indicator
	w.Write("1111111")          // Reserved
	w.Write("0")                // Out of network indicator
	w.Write("0")                // Program splice flag
	w.Write("0")                // Duration flag
	w.Write("11111")            // Reserved
	w.Write(uint8(1))           // Component count
	w.Write(uint8(3))           // Component tag
	w.Write(uint32(1136073600)) // UTC splice time
	w.Write(uint16(0))          // Unique program id
	w.Write(uint8(0))           // Avail num
	w.Write(uint8(0))           // Avails expected
	s, err := parseSpliceSchedule(newBitsIterator(buf.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, &SpliceSchedule{
		Events: []*SpliceScheduleEvent{{
			EventID: 102,
			ScheduledEvent: &SpliceScheduleScheduledEvent{
				ComponentSplices: []*SpliceScheduleComponentSplice{
					{ComponentTag: 3, UTCSpliceTime: 1136073600},
				},
			},
		}},
	}, s)
}
