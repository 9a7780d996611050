package scte35

import "github.com/pkg/errors"

// Splice descriptor tags
// Chapter: 10.3 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
const (
	SpliceDescriptorTagAvail        = uint8(0x00)
	SpliceDescriptorTagDTMF         = uint8(0x01)
	SpliceDescriptorTagSegmentation = uint8(0x02)
	SpliceDescriptorTagTime         = uint8(0x03)
	SpliceDescriptorTagAudio        = uint8(0x04)
)

// SpliceDescriptor represents one entry of the splice descriptor loop. Tag,
// Length and Identifier are always set; at most one of the typed pointers
// matching Tag is set. Descriptors with an unrecognized tag, or a recognized
// tag whose body could not be decoded, keep their body in Private.
type SpliceDescriptor struct {
	// Tag is the splice_descriptor_tag value
	Tag uint8
	// Length is the descriptor_length value in bytes, identifier included
	Length uint8
	// Identifier is the 32-bit registered identifier scoping the descriptor,
	// 0x43554549 ("CUEI") for the descriptors of this package
	Identifier uint32
	// Avail is set when Tag is 0x00
	Avail *AvailDescriptor
	// DTMF is set when Tag is 0x01
	DTMF *DTMFDescriptor
	// Segmentation is set when Tag is 0x02
	Segmentation *SegmentationDescriptor
	// Time is set when Tag is 0x03
	Time *TimeDescriptor
	// Audio is set when Tag is 0x04
	Audio *AudioDescriptor
	// Private holds the body bytes following the identifier when no typed
	// decode was produced
	Private []byte
}

// AvailDescriptor represents an avail_descriptor, an authorization tie-in to
// the analog cue tone system.
// Chapter: 10.3.1 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type AvailDescriptor struct {
	ProviderAvailID uint32
}

// DTMFDescriptor represents a DTMF_descriptor, a legacy analog DTMF sequence
// an authorization device should emit.
// Chapter: 10.3.2 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type DTMFDescriptor struct {
	// Preroll is the time in tenths of seconds between the descriptor and
	// the DTMF emission
	Preroll uint8
	// DTMFChars holds the emitted characters, "0" to "9" plus "*" and "#"
	DTMFChars string
}

// TimeDescriptor represents a time_descriptor, a TAI wall clock sample.
// Chapter: 10.3.4 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type TimeDescriptor struct {
	// TAISeconds is the 48-bit TAI seconds value
	TAISeconds uint64
	// TAINanoseconds is the TAI nanoseconds value
	TAINanoseconds uint32
	// UTCOffset is the count of seconds to subtract from TAI to arrive at
	// UTC, 37 at publication time of the 2020 specification
	UTCOffset uint16
}

// AudioDescriptor represents an audio_descriptor, the audio components of an
// upcoming program.
// Chapter: 10.3.5 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type AudioDescriptor struct {
	Components []*AudioComponent
}

// AudioComponent represents one audio component entry of an audio_descriptor
type AudioComponent struct {
	// ComponentTag identifies the elementary stream
	ComponentTag uint8
	// ISOCode is the ISO 639-2 language code
	ISOCode uint32
	// BitStreamMode is the 3-bit ATSC A/52 bsmod value
	BitStreamMode uint8
	// IsMaxNumChannels indicates NumChannels carries a maximum channel count
	// code rather than an audio coding mode
	IsMaxNumChannels bool
	// NumChannels is the 3-bit channel layout, an ATSC A/52 acmod value when
	// IsMaxNumChannels is false
	NumChannels uint8
	// FullSrvcAudio indicates this is a full program mix rather than a
	// component to be combined with another
	FullSrvcAudio bool
}

// parseSpliceDescriptors parses the splice descriptor loop out of exactly bs,
// the descriptor_loop_length delimited region of a splice_info_section. base
// is the bit offset of the region within the decoded buffer, carried so
// non fatal errors locate their structure in the full message.
func parseSpliceDescriptors(bs []byte, base int, nf *nonFatalErrors) (ds []*SpliceDescriptor) {
	ir := newBitsIterator(bs)
	for ir.HasBitsLeft(16) {
		tag, _ := ir.NextByte()
		length, _ := ir.NextByte()
		bodyStart := base + ir.Offset()
		if !ir.HasBitsLeft(int(length) * 8) {
			// the loop boundary is authoritative, truncate the descriptor
			// to it
			nf.push(&NonFatalError{
				Kind:     NonFatalErrorKindSpliceDescriptorLengthMismatch,
				Context:  spliceDescriptorName(tag),
				Offset:   bodyStart,
				Declared: uint64(length) * 8,
				Actual:   uint64(ir.RemainingBits()),
			})
			body, _ := ir.NextBytes(ir.RemainingBits() / 8)
			ds = append(ds, newPrivateSpliceDescriptor(tag, length, body))
			return
		}
		body, _ := ir.NextBytes(int(length))
		ds = append(ds, parseSpliceDescriptor(tag, length, body, bodyStart, nf))
	}
	if ir.RemainingBits() > 0 {
		// a trailing fragment too small to hold a descriptor header
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSpliceDescriptorLengthMismatch,
			Context:  "splice_descriptor",
			Offset:   base + ir.Offset(),
			Declared: 0,
			Actual:   uint64(ir.RemainingBits()),
		})
	}
	return
}

// parseSpliceDescriptor parses one descriptor out of exactly bs, its
// descriptor_length delimited body. Descriptors are isolated from each other:
// a body that cannot be decoded degrades to Private with a non fatal error
// instead of failing the section.
func parseSpliceDescriptor(tag, length uint8, bs []byte, base int, nf *nonFatalErrors) (d *SpliceDescriptor) {
	ir := newBitsIterator(bs)
	d = &SpliceDescriptor{Tag: tag, Length: length}
	var identifier uint64
	var err error
	if identifier, err = ir.NextBits(32); err != nil {
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSpliceDescriptorLengthMismatch,
			Context:  spliceDescriptorName(tag),
			Offset:   base,
			Declared: uint64(length) * 8,
			Actual:   uint64(len(bs)) * 8,
		})
		d.Private = bs
		return
	}
	d.Identifier = uint32(identifier)
	switch tag {
	case SpliceDescriptorTagAvail:
		d.Avail, err = parseAvailDescriptor(ir)
	case SpliceDescriptorTagDTMF:
		d.DTMF, err = parseDTMFDescriptor(ir)
	case SpliceDescriptorTagSegmentation:
		d.Segmentation, err = parseSegmentationDescriptor(ir, base, nf)
	case SpliceDescriptorTagTime:
		d.Time, err = parseTimeDescriptor(ir)
	case SpliceDescriptorTagAudio:
		d.Audio, err = parseAudioDescriptor(ir)
	default:
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindUnknownSpliceDescriptorTag,
			Context:  "splice_descriptor",
			Offset:   base,
			Declared: uint64(tag),
		})
		d.Private = bs[4:]
		return
	}
	if err != nil {
		// the body overran the declared descriptor_length, keep the raw
		// bytes instead of a partial decode
		actual := uint64(length)*8 - uint64(ir.RemainingBits())
		var pe *ParseError
		if errors.As(err, &pe) {
			actual += uint64(pe.ExpectedBits)
		}
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSpliceDescriptorLengthMismatch,
			Context:  spliceDescriptorName(tag),
			Offset:   base,
			Declared: uint64(length) * 8,
			Actual:   actual,
		})
		*d = SpliceDescriptor{Tag: tag, Length: length, Identifier: uint32(identifier), Private: bs[4:]}
		return
	}
	if ir.RemainingBits() > 0 {
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindSpliceDescriptorLengthMismatch,
			Context:  spliceDescriptorName(tag),
			Offset:   base,
			Declared: uint64(length) * 8,
			Actual:   uint64(length)*8 - uint64(ir.RemainingBits()),
		})
	}
	return
}

func newPrivateSpliceDescriptor(tag, length uint8, bs []byte) (d *SpliceDescriptor) {
	d = &SpliceDescriptor{Tag: tag, Length: length}
	if len(bs) >= 4 {
		d.Identifier = uint32(bs[0])<<24 | uint32(bs[1])<<16 | uint32(bs[2])<<8 | uint32(bs[3])
		d.Private = bs[4:]
		return
	}
	d.Private = bs
	return
}

func parseAvailDescriptor(ir *bitsIterator) (d *AvailDescriptor, err error) {
	d = &AvailDescriptor{}
	var v uint64
	if v, err = ir.NextBits(32); err != nil {
		err = errors.Wrap(err, "scte35: reading provider_avail_id failed")
		return
	}
	d.ProviderAvailID = uint32(v)
	return
}

func parseDTMFDescriptor(ir *bitsIterator) (d *DTMFDescriptor, err error) {
	d = &DTMFDescriptor{}
	if d.Preroll, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading preroll failed")
		return
	}
	var count uint64
	if count, err = ir.NextBits(3); err != nil {
		err = errors.Wrap(err, "scte35: reading dtmf_count failed")
		return
	}
	// 5 reserved bits
	if err = ir.Skip(5); err != nil {
		err = errors.Wrap(err, "scte35: skipping DTMF_descriptor reserved bits failed")
		return
	}
	if d.DTMFChars, err = ir.NextString(int(count)); err != nil {
		err = errors.Wrap(err, "scte35: reading DTMF_char failed")
	}
	return
}

func parseTimeDescriptor(ir *bitsIterator) (d *TimeDescriptor, err error) {
	d = &TimeDescriptor{}
	if d.TAISeconds, err = ir.NextBits(48); err != nil {
		err = errors.Wrap(err, "scte35: reading TAI_seconds failed")
		return
	}
	var v uint64
	if v, err = ir.NextBits(32); err != nil {
		err = errors.Wrap(err, "scte35: reading TAI_ns failed")
		return
	}
	d.TAINanoseconds = uint32(v)
	if v, err = ir.NextBits(16); err != nil {
		err = errors.Wrap(err, "scte35: reading UTC_offset failed")
		return
	}
	d.UTCOffset = uint16(v)
	return
}

func parseAudioDescriptor(ir *bitsIterator) (d *AudioDescriptor, err error) {
	d = &AudioDescriptor{}
	var count uint64
	if count, err = ir.NextBits(4); err != nil {
		err = errors.Wrap(err, "scte35: reading audio_count failed")
		return
	}
	// 4 reserved bits
	if err = ir.Skip(4); err != nil {
		err = errors.Wrap(err, "scte35: skipping audio_descriptor reserved bits failed")
		return
	}
	for idx := uint64(0); idx < count; idx++ {
		c := &AudioComponent{}
		if c.ComponentTag, err = ir.NextByte(); err != nil {
			err = errors.Wrap(err, "scte35: reading component_tag failed")
			return
		}
		var v uint64
		if v, err = ir.NextBits(24); err != nil {
			err = errors.Wrap(err, "scte35: reading ISO_code failed")
			return
		}
		c.ISOCode = uint32(v)
		if v, err = ir.NextBits(3); err != nil {
			err = errors.Wrap(err, "scte35: reading bit_stream_mode failed")
			return
		}
		c.BitStreamMode = uint8(v)
		if c.IsMaxNumChannels, err = ir.NextBool(); err != nil {
			err = errors.Wrap(err, "scte35: reading num_channels mode failed")
			return
		}
		if v, err = ir.NextBits(3); err != nil {
			err = errors.Wrap(err, "scte35: reading num_channels failed")
			return
		}
		c.NumChannels = uint8(v)
		if c.FullSrvcAudio, err = ir.NextBool(); err != nil {
			err = errors.Wrap(err, "scte35: reading full_srvc_audio failed")
			return
		}
		d.Components = append(d.Components, c)
	}
	return
}

func spliceDescriptorName(tag uint8) string {
	switch tag {
	case SpliceDescriptorTagAvail:
		return "avail_descriptor"
	case SpliceDescriptorTagDTMF:
		return "DTMF_descriptor"
	case SpliceDescriptorTagSegmentation:
		return "segmentation_descriptor"
	case SpliceDescriptorTagTime:
		return "time_descriptor"
	case SpliceDescriptorTagAudio:
		return "audio_descriptor"
	}
	return "splice_descriptor"
}
