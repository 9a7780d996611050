package scte35

import "fmt"

// ParseErrorKind represents the reason a decode was aborted
type ParseErrorKind int

// Parse error kinds
const (
	ParseErrorKindUnexpectedEndOfData ParseErrorKind = iota
	ParseErrorKindUnexpectedTableID
	ParseErrorKindUnknownSpliceCommandType
	ParseErrorKindInvalidSectionLength
	ParseErrorKindInvalidEncoding
	ParseErrorKindInvalidBitCount
)

// ParseError represents a fatal decode failure. No SpliceInfoSection is
// produced when one is returned.
type ParseError struct {
	// Kind is the reason the decode was aborted
	Kind ParseErrorKind
	// Field is the name of the field being read when the decode was aborted
	Field string
	// ExpectedBits is the number of bits the aborted read needed
	ExpectedBits int
	// ActualBits is the number of bits that were left
	ActualBits int
	// Value is the offending value for table id and splice command type kinds
	Value uint64
}

// Error implements the error interface
func (e *ParseError) Error() string {
	switch e.Kind {
	case ParseErrorKindUnexpectedEndOfData:
		if e.Field != "" {
			return fmt.Sprintf("unexpected end of data reading %s: needed %d bits but %d were left", e.Field, e.ExpectedBits, e.ActualBits)
		}
		return fmt.Sprintf("unexpected end of data: needed %d bits but %d were left", e.ExpectedBits, e.ActualBits)
	case ParseErrorKindUnexpectedTableID:
		return fmt.Sprintf("unexpected table id 0x%x, expected 0x%x", e.Value, SpliceInfoSectionTableID)
	case ParseErrorKindUnknownSpliceCommandType:
		return fmt.Sprintf("unknown splice command type 0x%x", e.Value)
	case ParseErrorKindInvalidSectionLength:
		if e.Field != "" {
			return fmt.Sprintf("invalid %s value %d", e.Field, e.Value)
		}
		return fmt.Sprintf("invalid section length %d", e.Value)
	case ParseErrorKindInvalidEncoding:
		return fmt.Sprintf("invalid %s encoding", e.Field)
	case ParseErrorKindInvalidBitCount:
		return fmt.Sprintf("invalid bit read of %d bits, reads are limited to 1 through 64", e.ExpectedBits)
	}
	return "parse error"
}

// NonFatalErrorKind represents an inconsistency that did not prevent the
// decode from completing
type NonFatalErrorKind int

// Non fatal error kinds
const (
	NonFatalErrorKindSpliceCommandLengthMismatch NonFatalErrorKind = iota
	NonFatalErrorKindSpliceDescriptorLengthMismatch
	NonFatalErrorKindSegmentationUPIDLengthMismatch
	NonFatalErrorKindUnknownSpliceDescriptorTag
	NonFatalErrorKindUnknownSegmentationTypeID
	NonFatalErrorKindUnknownSegmentationUPIDType
)

// NonFatalError represents a recoverable inconsistency found while decoding a
// message. The decode carries on, and all inconsistencies are reported on the
// resulting SpliceInfoSection.
type NonFatalError struct {
	// Kind is the nature of the inconsistency
	Kind NonFatalErrorKind
	// Context names the structure the inconsistency was found in, e.g.
	// "splice_insert" or "segmentation_upid"
	Context string
	// Offset is the bit offset, from the start of the decoded buffer, of the
	// structure or field the inconsistency concerns
	Offset int
	// Declared is the value the message declared: a length in bits for
	// command and descriptor mismatches, a length in bytes for upid
	// mismatches, and the offending code for unknown tag and type kinds
	Declared uint64
	// Actual is the counterpart of Declared: the number of bits actually
	// consumed for command and descriptor mismatches, and the expected
	// length in bytes for upid mismatches
	Actual uint64
}

// Error implements the error interface
func (e *NonFatalError) Error() string {
	switch e.Kind {
	case NonFatalErrorKindSpliceCommandLengthMismatch:
		return fmt.Sprintf("%s at bit %d: declared splice command length of %d bits but %d bits were consumed", e.Context, e.Offset, e.Declared, e.Actual)
	case NonFatalErrorKindSpliceDescriptorLengthMismatch:
		return fmt.Sprintf("%s at bit %d: declared descriptor length of %d bits but %d bits were consumed", e.Context, e.Offset, e.Declared, e.Actual)
	case NonFatalErrorKindSegmentationUPIDLengthMismatch:
		return fmt.Sprintf("%s at bit %d: declared upid length of %d bytes but %d bytes were expected", e.Context, e.Offset, e.Declared, e.Actual)
	case NonFatalErrorKindUnknownSpliceDescriptorTag:
		return fmt.Sprintf("%s at bit %d: unknown splice descriptor tag 0x%x", e.Context, e.Offset, e.Declared)
	case NonFatalErrorKindUnknownSegmentationTypeID:
		return fmt.Sprintf("%s at bit %d: unknown segmentation type id 0x%x", e.Context, e.Offset, e.Declared)
	case NonFatalErrorKindUnknownSegmentationUPIDType:
		return fmt.Sprintf("%s at bit %d: unknown segmentation upid type 0x%x", e.Context, e.Offset, e.Declared)
	}
	return "non fatal error"
}

// nonFatalErrors accumulates recoverable inconsistencies during one decode
type nonFatalErrors struct {
	errs []*NonFatalError
}

func (n *nonFatalErrors) push(e *NonFatalError) {
	n.errs = append(n.errs, e)
}
