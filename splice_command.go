package scte35

import "github.com/pkg/errors"

// Splice command types
// Chapter: 9.7 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
const (
	SpliceCommandTypeSpliceNull           = uint8(0x00)
	SpliceCommandTypeSpliceSchedule       = uint8(0x04)
	SpliceCommandTypeSpliceInsert         = uint8(0x05)
	SpliceCommandTypeTimeSignal           = uint8(0x06)
	SpliceCommandTypeBandwidthReservation = uint8(0x07)
	SpliceCommandTypePrivateCommand       = uint8(0xff)
)

// spliceCommandLengthNotSpecified is the legacy splice_command_length value
// some encoders still emit to mean "length not provided"
const spliceCommandLengthNotSpecified = uint16(0xfff)

// SpliceCommand represents the one splice command a splice_info_section
// carries. Type is always set, and exactly one of the pointers matching it is
// set, except for splice_null and bandwidth_reservation which carry no body.
type SpliceCommand struct {
	// Type is the splice_command_type value
	Type uint8
	// SpliceSchedule is set when Type is 0x04
	SpliceSchedule *SpliceSchedule
	// SpliceInsert is set when Type is 0x05
	SpliceInsert *SpliceInsert
	// TimeSignal is set when Type is 0x06
	TimeSignal *TimeSignal
	// PrivateCommand is set when Type is 0xff
	PrivateCommand *PrivateCommand
}

// TimeSignal represents a time_signal command, a splice_time that provides a
// reference point for the descriptors that follow.
// Chapter: 9.7.4 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type TimeSignal struct {
	SpliceTime *SpliceTime
}

// IsImmediate indicates whether the time signal carries no pts_time
func (t *TimeSignal) IsImmediate() bool {
	return t.SpliceTime == nil || t.SpliceTime.PTSTime == nil
}

// PrivateCommand represents a private_command, an opaque body scoped by a
// registered identifier.
// Chapter: 9.7.6 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type PrivateCommand struct {
	// Identifier is the 32-bit registered identifier, kept as its 4
	// character representation
	Identifier string
	// PrivateBytes is the opaque command body
	PrivateBytes []byte
}

func parseSpliceCommand(ir *bitsIterator, commandType uint8, commandLength uint16) (c *SpliceCommand, err error) {
	c = &SpliceCommand{Type: commandType}
	switch commandType {
	case SpliceCommandTypeSpliceNull, SpliceCommandTypeBandwidthReservation:
		// no body
	case SpliceCommandTypeSpliceSchedule:
		if c.SpliceSchedule, err = parseSpliceSchedule(ir); err != nil {
			err = errors.Wrap(err, "scte35: parsing splice_schedule failed")
		}
	case SpliceCommandTypeSpliceInsert:
		if c.SpliceInsert, err = parseSpliceInsert(ir); err != nil {
			err = errors.Wrap(err, "scte35: parsing splice_insert failed")
		}
	case SpliceCommandTypeTimeSignal:
		c.TimeSignal = &TimeSignal{}
		if c.TimeSignal.SpliceTime, err = parseSpliceTime(ir); err != nil {
			err = errors.Wrap(err, "scte35: parsing time_signal failed")
		}
	case SpliceCommandTypePrivateCommand:
		if c.PrivateCommand, err = parsePrivateCommand(ir, commandLength); err != nil {
			err = errors.Wrap(err, "scte35: parsing private_command failed")
		}
	default:
		err = &ParseError{Kind: ParseErrorKindUnknownSpliceCommandType, Value: uint64(commandType)}
	}
	return
}

func parsePrivateCommand(ir *bitsIterator, commandLength uint16) (c *PrivateCommand, err error) {
	// a private command payload can only be sized through the declared
	// splice_command_length
	if commandLength == spliceCommandLengthNotSpecified || commandLength < 4 {
		err = &ParseError{Kind: ParseErrorKindInvalidSectionLength, Field: "splice_command_length", Value: uint64(commandLength)}
		return
	}
	c = &PrivateCommand{}
	if c.Identifier, err = ir.NextString(4); err != nil {
		err = errors.Wrap(err, "scte35: reading private command identifier failed")
		return
	}
	if c.PrivateBytes, err = ir.NextBytes(int(commandLength) - 4); err != nil {
		err = errors.Wrap(err, "scte35: reading private command bytes failed")
	}
	return
}

func spliceCommandName(commandType uint8) string {
	switch commandType {
	case SpliceCommandTypeSpliceNull:
		return "splice_null"
	case SpliceCommandTypeSpliceSchedule:
		return "splice_schedule"
	case SpliceCommandTypeSpliceInsert:
		return "splice_insert"
	case SpliceCommandTypeTimeSignal:
		return "time_signal"
	case SpliceCommandTypeBandwidthReservation:
		return "bandwidth_reservation"
	case SpliceCommandTypePrivateCommand:
		return "private_command"
	}
	return "unknown"
}
