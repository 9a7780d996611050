package scte35

import (
	"fmt"
	"strings"
)

// Segmentation upid types
// Table: 22 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
const (
	SegmentationUPIDTypeNotUsed               = uint8(0x00)
	SegmentationUPIDTypeUserDefined           = uint8(0x01)
	SegmentationUPIDTypeISCI                  = uint8(0x02)
	SegmentationUPIDTypeAdID                  = uint8(0x03)
	SegmentationUPIDTypeUMID                  = uint8(0x04)
	SegmentationUPIDTypeISANDeprecated        = uint8(0x05)
	SegmentationUPIDTypeISAN                  = uint8(0x06)
	SegmentationUPIDTypeTID                   = uint8(0x07)
	SegmentationUPIDTypeTI                    = uint8(0x08)
	SegmentationUPIDTypeADI                   = uint8(0x09)
	SegmentationUPIDTypeEIDR                  = uint8(0x0a)
	SegmentationUPIDTypeATSCContentIdentifier = uint8(0x0b)
	SegmentationUPIDTypeMPU                   = uint8(0x0c)
	SegmentationUPIDTypeMID                   = uint8(0x0d)
	SegmentationUPIDTypeADSInformation        = uint8(0x0e)
	SegmentationUPIDTypeURI                   = uint8(0x0f)
	SegmentationUPIDTypeUUID                  = uint8(0x10)
	SegmentationUPIDTypeSCR                   = uint8(0x11)
)

// SegmentationUPID represents a segmentation_upid, the unique identifier of
// the content a segmentation_descriptor applies to. Type is always set.
// Textual types and the types with a canonical string form carry their value
// in Value; ATSC, MPU and MID carry theirs in the matching typed field.
// Reserved holds the raw bytes of unrecognized types and of bodies whose
// length did not fit their declared type.
type SegmentationUPID struct {
	// Type is the segmentation_upid_type value
	Type uint8
	// Value is the textual or canonically formatted form of the upid
	Value string
	// ATSC is set when Type is 0x0b
	ATSC *ATSCContentIdentifier
	// MPU is set when Type is 0x0c
	MPU *ManagedPrivateUPID
	// MID is set when Type is 0x0d, each entry being a upid of its own
	MID []*SegmentationUPID
	// Reserved holds the raw bytes when no other representation applies
	Reserved []byte
}

// ManagedPrivateUPID represents an MPU upid body, private data scoped by a
// format specifier
type ManagedPrivateUPID struct {
	// FormatSpecifier is the 4 character format identifier
	FormatSpecifier string
	// PrivateData is the opaque private body
	PrivateData []byte
}

// fixed byte widths declared by table 22, -1 meaning variable
var segmentationUPIDLengths = map[uint8]int{
	SegmentationUPIDTypeNotUsed:        0,
	SegmentationUPIDTypeISCI:           8,
	SegmentationUPIDTypeAdID:           12,
	SegmentationUPIDTypeUMID:           32,
	SegmentationUPIDTypeISANDeprecated: 8,
	SegmentationUPIDTypeISAN:           12,
	SegmentationUPIDTypeTID:            12,
	SegmentationUPIDTypeTI:             8,
	SegmentationUPIDTypeEIDR:           12,
	SegmentationUPIDTypeUUID:           16,
}

// parseSegmentationUPID decodes one upid out of exactly bs, its declared
// length delimited body. It never fails: a body that does not fit its
// declared type degrades to raw bytes with a non fatal error.
func parseSegmentationUPID(upidType uint8, bs []byte, base int, nf *nonFatalErrors) (u *SegmentationUPID) {
	if expected, ok := segmentationUPIDLengths[upidType]; ok && expected != len(bs) {
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSegmentationUPIDLengthMismatch,
			Context:  "segmentation_upid",
			Offset:   base,
			Declared: uint64(len(bs)),
			Actual:   uint64(expected),
		})
		return &SegmentationUPID{Type: upidType, Reserved: bs}
	}
	u = &SegmentationUPID{Type: upidType}
	switch upidType {
	case SegmentationUPIDTypeNotUsed:
		// empty by definition
	case SegmentationUPIDTypeUserDefined, SegmentationUPIDTypeISCI,
		SegmentationUPIDTypeAdID, SegmentationUPIDTypeTID,
		SegmentationUPIDTypeADI, SegmentationUPIDTypeADSInformation,
		SegmentationUPIDTypeURI, SegmentationUPIDTypeSCR:
		u.Value = string(bs)
	case SegmentationUPIDTypeUMID:
		u.Value = formatUMID(bs)
	case SegmentationUPIDTypeISANDeprecated:
		u.Value = formatISANDeprecated(bs)
	case SegmentationUPIDTypeISAN:
		u.Value = formatISAN(bs)
	case SegmentationUPIDTypeTI:
		u.Value = "0x" + hexUpper(bs)
	case SegmentationUPIDTypeEIDR:
		u.Value = formatEIDR(bs)
	case SegmentationUPIDTypeATSCContentIdentifier:
		var ok bool
		if u.ATSC, ok = parseATSCContentIdentifier(bs); !ok {
			nf.push(&NonFatalError{
				Kind:     NonFatalErrorKindSegmentationUPIDLengthMismatch,
				Context:  "atsc_content_identifier",
				Offset:   base,
				Declared: uint64(len(bs)),
				Actual:   4,
			})
			u.Reserved = bs
		}
	case SegmentationUPIDTypeMPU:
		if len(bs) < 4 {
			nf.push(&NonFatalError{
				Kind:     NonFatalErrorKindSegmentationUPIDLengthMismatch,
				Context:  "managed_private_upid",
				Offset:   base,
				Declared: uint64(len(bs)),
				Actual:   4,
			})
			u.Reserved = bs
			return
		}
		u.MPU = &ManagedPrivateUPID{FormatSpecifier: string(bs[:4]), PrivateData: bs[4:]}
	case SegmentationUPIDTypeMID:
		u.MID = parseMIDSegmentationUPIDs(bs, base, nf)
	case SegmentationUPIDTypeUUID:
		u.Value = formatUUID(bs)
	default:
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindUnknownSegmentationUPIDType,
			Context:  "segmentation_upid",
			Offset:   base,
			Declared: uint64(upidType),
		})
		u.Reserved = bs
	}
	return
}

func parseMIDSegmentationUPIDs(bs []byte, base int, nf *nonFatalErrors) (us []*SegmentationUPID) {
	ir := newBitsIterator(bs)
	for ir.HasBitsLeft(16) {
		upidType, _ := ir.NextByte()
		length, _ := ir.NextByte()
		bodyStart := base + ir.Offset()
		if !ir.HasBitsLeft(int(length) * 8) {
			nf.push(&NonFatalError{
				Kind:     NonFatalErrorKindSegmentationUPIDLengthMismatch,
				Context:  "segmentation_upid",
				Offset:   bodyStart,
				Declared: uint64(length),
				Actual:   uint64(ir.RemainingBits() / 8),
			})
			body, _ := ir.NextBytes(ir.RemainingBits() / 8)
			us = append(us, &SegmentationUPID{Type: upidType, Reserved: body})
			return
		}
		body, _ := ir.NextBytes(int(length))
		us = append(us, parseSegmentationUPID(upidType, body, bodyStart, nf))
	}
	if ir.RemainingBits() > 0 {
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSegmentationUPIDLengthMismatch,
			Context:  "segmentation_upid",
			Offset:   base + ir.Offset(),
			Declared: 2,
			Actual:   uint64(ir.RemainingBits() / 8),
		})
	}
	return
}

func hexUpper(bs []byte) string {
	var b strings.Builder
	for _, v := range bs {
		fmt.Fprintf(&b, "%02X", v)
	}
	return b.String()
}

// formatUMID renders a SMPTE 330 UMID as 8 dot separated groups of 4 bytes,
// e.g. "060A2B34.01010105.01010D20.13000000.D2C9036C.8F195343.AB7014D2.D718BFDA"
func formatUMID(bs []byte) string {
	groups := make([]string, 0, len(bs)/4)
	for i := 0; i+4 <= len(bs); i += 4 {
		groups = append(groups, hexUpper(bs[i:i+4]))
	}
	return strings.Join(groups, ".")
}

// formatISANDeprecated renders an 8 byte ISAN root as 4 dash separated
// groups of 4 hex digits followed by the ISO 7064 check character, e.g.
// "0000-0000-3A8D-0000-Z"
func formatISANDeprecated(bs []byte) string {
	digits := hexUpper(bs)
	return strings.Join([]string{
		digits[0:4], digits[4:8], digits[8:12], digits[12:16],
		string(checkChar(digits)),
	}, "-")
}

// formatISAN renders a 12 byte ISAN as root, root check character, version
// and full check character, e.g. "0000-0000-3A8D-0000-Z-0000-0000-6"
func formatISAN(bs []byte) string {
	digits := hexUpper(bs)
	return strings.Join([]string{
		digits[0:4], digits[4:8], digits[8:12], digits[12:16],
		string(checkChar(digits[0:16])),
		digits[16:20], digits[20:24],
		string(checkChar(digits)),
	}, "-")
}

// formatEIDR renders a 12 byte compact EIDR as its DOI form, the 2 byte
// sub-prefix followed by the 10 byte suffix and its ISO 7064 check
// character, e.g. "10.5240/F85A-E100-B068-5B8F-B1C8-T"
func formatEIDR(bs []byte) string {
	subPrefix := uint16(bs[0])<<8 | uint16(bs[1])
	digits := hexUpper(bs[2:])
	return fmt.Sprintf("10.%d/", subPrefix) + strings.Join([]string{
		digits[0:4], digits[4:8], digits[8:12], digits[12:16], digits[16:20],
		string(checkChar(digits)),
	}, "-")
}

// formatUUID renders 16 bytes in the canonical lowercase 8-4-4-4-12 form
func formatUUID(bs []byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", bs[0:4], bs[4:6], bs[6:8], bs[8:10], bs[10:16])
}

const checkCharAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// checkChar computes the ISO 7064 MOD 37,36 check character over a string of
// base 36 digits, as used by ISAN and EIDR identifiers
func checkChar(digits string) byte {
	p := 36
	for _, c := range digits {
		v := strings.IndexRune(checkCharAlphabet, c)
		if v < 0 {
			continue
		}
		p += v
		if p > 36 {
			p -= 36
		}
		p *= 2
		if p >= 37 {
			p -= 37
		}
	}
	return checkCharAlphabet[(37-p)%36]
}
