package scte35

// ATSCContentIdentifier represents an ATSC A/57B content identifier, carried
// as a segmentation upid body.
// Link: https://www.atsc.org/atsc-documents/a57b-content-identification-and-labeling-for-atsc-transport/
type ATSCContentIdentifier struct {
	// TSID is the 16-bit transport stream id of the originating broadcaster
	TSID uint16
	// EndOfDay is the 5-bit hour of the day the content_id ceases to be
	// unique on
	EndOfDay uint8
	// UniqueFor is the 9-bit count of days the content_id stays unique for
	// past end_of_day
	UniqueFor uint16
	// ContentID is the house identifier of the content
	ContentID string
}

func parseATSCContentIdentifier(bs []byte) (a *ATSCContentIdentifier, ok bool) {
	if len(bs) < 4 {
		return
	}
	a = &ATSCContentIdentifier{
		TSID: uint16(bs[0])<<8 | uint16(bs[1]),
		// 2 reserved bits
		EndOfDay:  bs[2] & 0x3e >> 1,
		UniqueFor: uint16(bs[2]&0x1)<<8 | uint16(bs[3]),
		ContentID: string(bs[4:]),
	}
	ok = true
	return
}

// ATSC A/52 bit stream modes
const (
	AudioBitStreamModeCompleteMain       = uint8(0x00)
	AudioBitStreamModeMusicAndEffects    = uint8(0x01)
	AudioBitStreamModeVisuallyImpaired   = uint8(0x02)
	AudioBitStreamModeHearingImpaired    = uint8(0x03)
	AudioBitStreamModeDialogue           = uint8(0x04)
	AudioBitStreamModeCommentary         = uint8(0x05)
	AudioBitStreamModeEmergency          = uint8(0x06)
	AudioBitStreamModeVoiceOverOrKaraoke = uint8(0x07)
)

// ATSC A/52 audio coding modes
const (
	AudioCodingModeOneAndOne       = uint8(0x00)
	AudioCodingModeMono            = uint8(0x01)
	AudioCodingModeTwoChannel      = uint8(0x02)
	AudioCodingModeThreeChannel    = uint8(0x03)
	AudioCodingModeTwoOneChannel   = uint8(0x04)
	AudioCodingModeThreeOneChannel = uint8(0x05)
	AudioCodingModeTwoTwoChannel   = uint8(0x06)
	AudioCodingModeThreeTwoChannel = uint8(0x07)
)
