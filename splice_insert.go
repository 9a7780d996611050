package scte35

import "github.com/pkg/errors"

// SpliceInsert represents a splice_insert command, an insertion of a splice
// event into a program.
// Chapter: 9.7.3 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type SpliceInsert struct {
	// EventID is the unique splice_event_id
	EventID uint32
	// ScheduledEvent is nil when the event was cancelled
	ScheduledEvent *SpliceInsertScheduledEvent
}

// IsCancelled indicates whether the splice event was cancelled
func (i *SpliceInsert) IsCancelled() bool {
	return i.ScheduledEvent == nil
}

// SpliceInsertScheduledEvent represents the body of a splice_insert that was
// not cancelled
type SpliceInsertScheduledEvent struct {
	// OutOfNetworkIndicator indicates an opportunity to exit from the
	// network feed rather than return to it
	OutOfNetworkIndicator bool
	// IsImmediateSplice indicates the splice should happen at the earliest
	// opportunity rather than at a carried splice time
	IsImmediateSplice bool
	// ProgramSplice is set in program splice mode, where the whole program
	// splices at once
	ProgramSplice *SpliceInsertProgramSplice
	// ComponentSplices is set in component splice mode, where each listed
	// elementary stream splices on its own time
	ComponentSplices []*SpliceInsertComponentSplice
	// BreakDuration is the optional duration of the break
	BreakDuration *BreakDuration
	// UniqueProgramID identifies a viewing event within the service
	UniqueProgramID uint16
	// AvailNum identifies the avail within the current viewing event
	AvailNum uint8
	// AvailsExpected is the number of avails within the current viewing event
	AvailsExpected uint8
}

// SpliceInsertProgramSplice represents the program splice mode payload. The
// splice time is nil when the splice is immediate.
type SpliceInsertProgramSplice struct {
	SpliceTime *SpliceTime
}

// SpliceInsertComponentSplice represents one component splice mode entry
type SpliceInsertComponentSplice struct {
	// ComponentTag identifies the elementary stream
	ComponentTag uint8
	// SpliceTime is nil when the splice is immediate
	SpliceTime *SpliceTime
}

func parseSpliceInsert(ir *bitsIterator) (i *SpliceInsert, err error) {
	i = &SpliceInsert{}
	var v uint64
	if v, err = ir.NextBits(32); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_event_id failed")
		return
	}
	i.EventID = uint32(v)
	var cancelled bool
	if cancelled, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_event_cancel_indicator failed")
		return
	}
	// 7 reserved bits
	if err = ir.Skip(7); err != nil {
		err = errors.Wrap(err, "scte35: skipping splice_insert reserved bits failed")
		return
	}
	if cancelled {
		return
	}
	e := &SpliceInsertScheduledEvent{}
	if e.OutOfNetworkIndicator, err = ir.NextBool(); err != nil {
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
	if e.IsImmediateSplice, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_immediate_flag failed")
		return
	}
	// 4 reserved bits
	if err = ir.Skip(4); err != nil {
		err = errors.Wrap(err, "scte35: skipping splice_insert reserved bits failed")
		return
	}
	if programSpliceFlag {
		e.ProgramSplice = &SpliceInsertProgramSplice{}
		if !e.IsImmediateSplice {
			if e.ProgramSplice.SpliceTime, err = parseSpliceTime(ir); err != nil {
				return
			}
		}
	} else {
		var componentCount uint64
		if componentCount, err = ir.NextBits(8); err != nil {
			err = errors.Wrap(err, "scte35: reading component_count failed")
			return
		}
		for idx := uint64(0); idx < componentCount; idx++ {
			c := &SpliceInsertComponentSplice{}
			if c.ComponentTag, err = ir.NextByte(); err != nil {
				err = errors.Wrap(err, "scte35: reading component_tag failed")
				return
			}
			if !e.IsImmediateSplice {
				if c.SpliceTime, err = parseSpliceTime(ir); err != nil {
					return
				}
			}
			e.ComponentSplices = append(e.ComponentSplices, c)
		}
	}
	if durationFlag {
		if e.BreakDuration, err = parseBreakDuration(ir); err != nil {
			return
		}
	}
	if v, err = ir.NextBits(16); err != nil {
		err = errors.Wrap(err, "scte35: reading unique_program_id failed")
		return
	}
	e.UniqueProgramID = uint16(v)
	if e.AvailNum, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading avail_num failed")
		return
	}
	if e.AvailsExpected, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading avails_expected failed")
		return
	}
	i.ScheduledEvent = e
	return
}
