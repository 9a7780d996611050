package scte35

import "github.com/pkg/errors"

// SpliceSchedule represents a splice_schedule command, splice events
// scheduled against wall clock time.
// Chapter: 9.7.2 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type SpliceSchedule struct {
	Events []*SpliceScheduleEvent
}

// SpliceScheduleEvent represents one event of a splice_schedule
type SpliceScheduleEvent struct {
	// EventID is the unique splice_event_id
	EventID uint32
	// ScheduledEvent is nil when the event was cancelled
	ScheduledEvent *SpliceScheduleScheduledEvent
}

// IsCancelled indicates whether the splice event was cancelled
func (e *SpliceScheduleEvent) IsCancelled() bool {
	return e.ScheduledEvent == nil
}

// SpliceScheduleScheduledEvent represents the body of a splice_schedule event
// that was not cancelled
type SpliceScheduleScheduledEvent struct {
	// OutOfNetworkIndicator indicates an opportunity to exit from the
	// network feed rather than return to it
	OutOfNetworkIndicator bool
	// Program is set in program splice mode
	Program *SpliceScheduleProgram
	// ComponentSplices is set in component splice mode
	ComponentSplices []*SpliceScheduleComponentSplice
	// BreakDuration is the optional duration of the break
	BreakDuration *BreakDuration
	// UniqueProgramID identifies a viewing event within the service
	UniqueProgramID uint16
	// AvailNum identifies the avail within the current viewing event
	AvailNum uint8
	// AvailsExpected is the number of avails within the current viewing event
	AvailsExpected uint8
}

// SpliceScheduleProgram represents the program splice mode payload
type SpliceScheduleProgram struct {
	// UTCSpliceTime is the splice time in seconds since 00:00:00 UTC January
	// 6th 1980, with the count of intervening leap seconds included
	UTCSpliceTime uint32
}

// SpliceScheduleComponentSplice represents one component splice mode entry
type SpliceScheduleComponentSplice struct {
	// ComponentTag identifies the elementary stream
	ComponentTag uint8
	// UTCSpliceTime is the splice time in seconds since 00:00:00 UTC January
	// 6th 1980, with the count of intervening leap seconds included
	UTCSpliceTime uint32
}

func parseSpliceSchedule(ir *bitsIterator) (s *SpliceSchedule, err error) {
	s = &SpliceSchedule{}
	var spliceCount uint64
	if spliceCount, err = ir.NextBits(8); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_count failed")
		return
	}
	for idx := uint64(0); idx < spliceCount; idx++ {
		var e *SpliceScheduleEvent
		if e, err = parseSpliceScheduleEvent(ir); err != nil {
			return
		}
		s.Events = append(s.Events, e)
	}
	return
}

func parseSpliceScheduleEvent(ir *bitsIterator) (e *SpliceScheduleEvent, err error) {
	e = &SpliceScheduleEvent{}
	var v uint64
	if v, err = ir.NextBits(32); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_event_id failed")
		return
	}
	e.EventID = uint32(v)
	var cancelled bool
	if cancelled, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_event_cancel_indicator failed")
		return
	}
	// 7 reserved bits
	if err = ir.Skip(7); err != nil {
		err = errors.Wrap(err, "scte35: skipping splice_schedule reserved bits failed")
		return
	}
	if cancelled {
		return
	}
	se := &SpliceScheduleScheduledEvent{}
	if se.OutOfNetworkIndicator, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading out_of_network_indicator failed")
		return
	}
	var programSpliceFlag, durationFlag bool
	if programSpliceFlag, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading program_splice_flag failed")
		return
	}
	if durationFlag, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading duration_flag failed")
		return
	}
	// 5 reserved bits
	if err = ir.Skip(5); err != nil {
		err = errors.Wrap(err, "scte35: skipping splice_schedule reserved bits failed")
		return
	}
	if programSpliceFlag {
		if v, err = ir.NextBits(32); err != nil {
			err = errors.Wrap(err, "scte35: reading utc_splice_time failed")
			return
		}
		se.Program = &SpliceScheduleProgram{UTCSpliceTime: uint32(v)}
	} else {
		var componentCount uint64
		if componentCount, err = ir.NextBits(8); err != nil {
			err = errors.Wrap(err, "scte35: reading component_count failed")
			return
		}
		for idx := uint64(0); idx < componentCount; idx++ {
			c := &SpliceScheduleComponentSplice{}
			if c.ComponentTag, err = ir.NextByte(); err != nil {
				err = errors.Wrap(err, "scte35: reading component_tag failed")
				return
			}
			if v, err = ir.NextBits(32); err != nil {
				err = errors.Wrap(err, "scte35: reading utc_splice_time failed")
				return
			}
			c.UTCSpliceTime = uint32(v)
			se.ComponentSplices = append(se.ComponentSplices, c)
		}
	}
	if durationFlag {
		if se.BreakDuration, err = parseBreakDuration(ir); err != nil {
			return
		}
	}
	if v, err = ir.NextBits(16); err != nil {
		err = errors.Wrap(err, "scte35: reading unique_program_id failed")
		return
	}
	se.UniqueProgramID = uint16(v)
	if se.AvailNum, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading avail_num failed")
		return
	}
	if se.AvailsExpected, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading avails_expected failed")
		return
	}
	e.ScheduledEvent = se
	return
}
