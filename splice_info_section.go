package scte35

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// SpliceInfoSectionTableID is the one table id a splice_info_section may
// carry
const SpliceInfoSectionTableID = uint8(0xfc)

// SAP types
const (
	SAPType1           = uint8(0x00)
	SAPType2           = uint8(0x01)
	SAPType3           = uint8(0x02)
	SAPTypeUnspecified = uint8(0x03)
)

// Encryption algorithms
const (
	EncryptionAlgorithmNone      = uint8(0x00)
	EncryptionAlgorithmDESECB    = uint8(0x01)
	EncryptionAlgorithmDESCBC    = uint8(0x02)
	EncryptionAlgorithmTripleDES = uint8(0x03)
)

// SpliceInfoSection represents a splice_info_section, the top level
// structure of an SCTE-35 cueing message.
// Chapter: 9.6 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type SpliceInfoSection struct {
	// TableID is always 0xfc for well formed messages
	TableID uint8
	// SAPType is the 2-bit stream access point type, SAPTypeUnspecified
	// when the message does not signal one
	SAPType uint8
	// ProtocolVersion is 0 for the versions of the specification covered
	// here
	ProtocolVersion uint8
	// EncryptedPacket is nil when the message is not encrypted
	EncryptedPacket *EncryptedPacket
	// PTSAdjustment is the 33-bit offset to add to every carried pts_time,
	// in 90kHz ticks
	PTSAdjustment uint64
	// Tier is the 12-bit authorization tier
	Tier uint16
	// SpliceCommand is the one command the section carries
	SpliceCommand *SpliceCommand
	// SpliceDescriptors is the descriptor loop
	SpliceDescriptors []*SpliceDescriptor
	// CRC32 is the stored CRC_32 value
	CRC32 uint32
	// NonFatalErrors lists the recoverable inconsistencies found while
	// decoding the message
	NonFatalErrors []*NonFatalError
}

// EncryptedPacket represents the encryption fields of an encrypted
// splice_info_section
type EncryptedPacket struct {
	// EncryptionAlgorithm is the 6-bit algorithm code, values over
	// EncryptionAlgorithmTripleDES being reserved or user private
	EncryptionAlgorithm uint8
	// CWIndex selects the control word to decrypt with
	CWIndex uint8
	// ECRC32 is the stored E_CRC_32 value computed over the decrypted
	// section
	ECRC32 uint32
}

// ParseSpliceInfoSection parses a splice_info_section out of bs. The decode
// is strict about structure but lenient about declared lengths: structural
// failures abort with a ParseError while length inconsistencies are reported
// through the NonFatalErrors field of the result.
func ParseSpliceInfoSection(bs []byte) (*SpliceInfoSection, error) {
	s, err := parseSpliceInfoSection(bs)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parseSpliceInfoSection(bs []byte) (s *SpliceInfoSection, err error) {
	ir := newBitsIterator(bs)
	nf := &nonFatalErrors{}
	s = &SpliceInfoSection{}
	var v uint64
	if v, err = ir.NextBits(8); err != nil {
		err = errors.Wrap(err, "scte35: reading table_id failed")
		return
	}
	if uint8(v) != SpliceInfoSectionTableID {
		err = &ParseError{Kind: ParseErrorKindUnexpectedTableID, Value: v}
		return
	}
	s.TableID = uint8(v)
	// section_syntax_indicator and private_indicator
	if err = ir.Skip(2); err != nil {
		err = errors.Wrap(err, "scte35: skipping splice_info_section indicator bits failed")
		return
	}
	if v, err = ir.NextBits(2); err != nil {
		err = errors.Wrap(err, "scte35: reading sap_type failed")
		return
	}
	s.SAPType = uint8(v)
	// section_length is informative here, reads are bounded by the buffer
	if _, err = ir.NextBits(12); err != nil {
		err = errors.Wrap(err, "scte35: reading section_length failed")
		return
	}
	if s.ProtocolVersion, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading protocol_version failed")
		return
	}
	var encrypted bool
	if encrypted, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading encrypted_packet failed")
		return
	}
	var algorithm uint64
	if algorithm, err = ir.NextBits(6); err != nil {
		err = errors.Wrap(err, "scte35: reading encryption_algorithm failed")
		return
	}
	if s.PTSAdjustment, err = ir.NextBits(33); err != nil {
		err = errors.Wrap(err, "scte35: reading pts_adjustment failed")
		return
	}
	var cwIndex uint8
	if cwIndex, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading cw_index failed")
		return
	}
	if encrypted {
		s.EncryptedPacket = &EncryptedPacket{
			EncryptionAlgorithm: uint8(algorithm),
			CWIndex:             cwIndex,
		}
	}
	if v, err = ir.NextBits(12); err != nil {
		err = errors.Wrap(err, "scte35: reading tier failed")
		return
	}
	s.Tier = uint16(v)
	var commandLength uint16
	if v, err = ir.NextBits(12); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_command_length failed")
		return
	}
	commandLength = uint16(v)
	var commandType uint8
	if commandType, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading splice_command_type failed")
		return
	}
	commandStart := ir.Offset()
	if s.SpliceCommand, err = parseSpliceCommand(ir, commandType, commandLength); err != nil {
		return
	}
	consumed := ir.Offset() - commandStart
	declared := int(commandLength) * 8
	if consumed != declared {
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSpliceCommandLengthMismatch,
			Context:  spliceCommandName(commandType),
			Offset:   commandStart,
			Declared: uint64(declared),
			Actual:   uint64(consumed),
		})
		// 0xfff is the legacy "length not provided" value, in which case
		// the actual position is the only usable one. Any other declared
		// length is authoritative for locating the descriptor loop.
		if commandLength != spliceCommandLengthNotSpecified {
			if commandStart+declared > len(bs)*8 {
				err = &ParseError{Kind: ParseErrorKindInvalidSectionLength, Field: "splice_command_length", Value: uint64(commandLength)}
				return
			}
			ir.Seek(commandStart + declared)
		}
	}
	if v, err = ir.NextBits(16); err != nil {
		err = errors.Wrap(err, "scte35: reading descriptor_loop_length failed")
		return
	}
	loopStart := ir.Offset()
	var loopBytes []byte
	if loopBytes, err = ir.NextBytes(int(v)); err != nil {
		err = errors.Wrap(err, "scte35: reading splice descriptor loop failed")
		return
	}
	s.SpliceDescriptors = parseSpliceDescriptors(loopBytes, loopStart, nf)
	// alignment stuffing runs up to the trailing CRC fields
	trailer := 32
	if encrypted {
		trailer = 64
	}
	if stuffing := ir.RemainingBits() - trailer; stuffing > 0 {
		if err = ir.Skip(stuffing); err != nil {
			err = errors.Wrap(err, "scte35: skipping alignment_stuffing failed")
			return
		}
	}
	if encrypted {
		if v, err = ir.NextBits(32); err != nil {
			err = errors.Wrap(err, "scte35: reading E_CRC_32 failed")
			return
		}
		s.EncryptedPacket.ECRC32 = uint32(v)
	}
	if v, err = ir.NextBits(32); err != nil {
		err = errors.Wrap(err, "scte35: reading CRC_32 failed")
		return
	}
	s.CRC32 = uint32(v)
	s.NonFatalErrors = nf.errs
	return
}

// ParseSpliceInfoSectionHexString parses a splice_info_section out of a hex
// string, with or without a leading "0x"
func ParseSpliceInfoSectionHexString(s string) (*SpliceInfoSection, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	bs, err := hex.DecodeString(t)
	if err != nil {
		return nil, errors.Wrap(&ParseError{Kind: ParseErrorKindInvalidEncoding, Field: "hex"}, err.Error())
	}
	return ParseSpliceInfoSection(bs)
}

// ParseSpliceInfoSectionBase64String parses a splice_info_section out of a
// standard encoding base64 string
func ParseSpliceInfoSectionBase64String(s string) (*SpliceInfoSection, error) {
	bs, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(&ParseError{Kind: ParseErrorKindInvalidEncoding, Field: "base64"}, err.Error())
	}
	return ParseSpliceInfoSection(bs)
}
