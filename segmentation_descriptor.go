package scte35

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Segmentation type ids
// Table: 23 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
const (
	SegmentationTypeIDNotIndicated                                = uint8(0x00)
	SegmentationTypeIDContentIdentification                       = uint8(0x01)
	SegmentationTypeIDProgramStart                                = uint8(0x10)
	SegmentationTypeIDProgramEnd                                  = uint8(0x11)
	SegmentationTypeIDProgramEarlyTermination                     = uint8(0x12)
	SegmentationTypeIDProgramBreakaway                            = uint8(0x13)
	SegmentationTypeIDProgramResumption                           = uint8(0x14)
	SegmentationTypeIDProgramRunoverPlanned                       = uint8(0x15)
	SegmentationTypeIDProgramRunoverUnplanned                     = uint8(0x16)
	SegmentationTypeIDProgramOverlapStart                         = uint8(0x17)
	SegmentationTypeIDProgramBlackoutOverride                     = uint8(0x18)
	SegmentationTypeIDProgramJoin                                 = uint8(0x19)
	SegmentationTypeIDChapterStart                                = uint8(0x20)
	SegmentationTypeIDChapterEnd                                  = uint8(0x21)
	SegmentationTypeIDBreakStart                                  = uint8(0x22)
	SegmentationTypeIDBreakEnd                                    = uint8(0x23)
	SegmentationTypeIDOpeningCreditStart                          = uint8(0x24)
	SegmentationTypeIDOpeningCreditEnd                            = uint8(0x25)
	SegmentationTypeIDClosingCreditStart                          = uint8(0x26)
	SegmentationTypeIDClosingCreditEnd                            = uint8(0x27)
	SegmentationTypeIDProviderAdvertisementStart                  = uint8(0x30)
	SegmentationTypeIDProviderAdvertisementEnd                    = uint8(0x31)
	SegmentationTypeIDDistributorAdvertisementStart               = uint8(0x32)
	SegmentationTypeIDDistributorAdvertisementEnd                 = uint8(0x33)
	SegmentationTypeIDProviderPlacementOpportunityStart           = uint8(0x34)
	SegmentationTypeIDProviderPlacementOpportunityEnd             = uint8(0x35)
	SegmentationTypeIDDistributorPlacementOpportunityStart        = uint8(0x36)
	SegmentationTypeIDDistributorPlacementOpportunityEnd          = uint8(0x37)
	SegmentationTypeIDProviderOverlayPlacementOpportunityStart    = uint8(0x38)
	SegmentationTypeIDProviderOverlayPlacementOpportunityEnd      = uint8(0x39)
	SegmentationTypeIDDistributorOverlayPlacementOpportunityStart = uint8(0x3a)
	SegmentationTypeIDDistributorOverlayPlacementOpportunityEnd   = uint8(0x3b)
	SegmentationTypeIDProviderPromoStart                          = uint8(0x3c)
	SegmentationTypeIDProviderPromoEnd                            = uint8(0x3d)
	SegmentationTypeIDDistributorPromoStart                       = uint8(0x3e)
	SegmentationTypeIDDistributorPromoEnd                         = uint8(0x3f)
	SegmentationTypeIDUnscheduledEventStart                       = uint8(0x40)
	SegmentationTypeIDUnscheduledEventEnd                         = uint8(0x41)
	SegmentationTypeIDAlternateContentOpportunityStart            = uint8(0x42)
	SegmentationTypeIDAlternateContentOpportunityEnd              = uint8(0x43)
	SegmentationTypeIDProviderAdBlockStart                        = uint8(0x44)
	SegmentationTypeIDProviderAdBlockEnd                          = uint8(0x45)
	SegmentationTypeIDDistributorAdBlockStart                     = uint8(0x46)
	SegmentationTypeIDDistributorAdBlockEnd                       = uint8(0x47)
	SegmentationTypeIDNetworkStart                                = uint8(0x50)
	SegmentationTypeIDNetworkEnd                                  = uint8(0x51)
)

// Device restriction groups
const (
	DeviceRestrictionsGroup0 = uint8(0x00)
	DeviceRestrictionsGroup1 = uint8(0x01)
	DeviceRestrictionsGroup2 = uint8(0x02)
	DeviceRestrictionsNone   = uint8(0x03)
)

// segmentation type ids that may carry a sub segment pair
var subSegmentSegmentationTypeIDs = []uint8{
	SegmentationTypeIDProviderPlacementOpportunityStart,
	SegmentationTypeIDDistributorPlacementOpportunityStart,
	SegmentationTypeIDProviderOverlayPlacementOpportunityStart,
	SegmentationTypeIDDistributorOverlayPlacementOpportunityStart,
}

// SegmentationDescriptor represents a segmentation_descriptor, the timeline
// annotation signaling segment boundaries of a program.
// Chapter: 10.3.3 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type SegmentationDescriptor struct {
	// EventID is the unique segmentation_event_id
	EventID uint32
	// ScheduledEvent is nil when the event was cancelled
	ScheduledEvent *SegmentationScheduledEvent
}

// IsCancelled indicates whether the segmentation event was cancelled
func (d *SegmentationDescriptor) IsCancelled() bool {
	return d.ScheduledEvent == nil
}

// SegmentationScheduledEvent represents the body of a
// segmentation_descriptor that was not cancelled
type SegmentationScheduledEvent struct {
	// DeliveryRestrictions is nil when the delivery_not_restricted flag was
	// set
	DeliveryRestrictions *DeliveryRestrictions
	// ComponentSegments is set in component segmentation mode, where each
	// listed elementary stream gets its own pts offset
	ComponentSegments []*SegmentationComponentSegment
	// SegmentationDuration is the optional duration of the segment in 90kHz
	// ticks
	SegmentationDuration *uint64
	// SegmentationUPID identifies the content the segmentation applies to
	SegmentationUPID *SegmentationUPID
	// SegmentationTypeID is the segmentation_type_id value
	SegmentationTypeID uint8
	// SegmentNum numbers the segment within its collection
	SegmentNum uint8
	// SegmentsExpected is the count of segments within the collection
	SegmentsExpected uint8
	// SubSegment is only carried by some placement opportunity start types
	SubSegment *SubSegment
}

// DeliveryRestrictions represents the delivery restriction flags of a
// segmentation_descriptor
type DeliveryRestrictions struct {
	// WebDeliveryAllowed indicates there are no restrictions on web delivery
	WebDeliveryAllowed bool
	// NoRegionalBlackout indicates there are no regional blackouts
	NoRegionalBlackout bool
	// ArchiveAllowed indicates there are no restrictions on recording
	ArchiveAllowed bool
	// DeviceRestrictions is the 2-bit device restriction group
	DeviceRestrictions uint8
}

// SegmentationComponentSegment represents one component segmentation mode
// entry
type SegmentationComponentSegment struct {
	// ComponentTag identifies the elementary stream
	ComponentTag uint8
	// PTSOffset is the 33-bit offset to add to the splice time, in 90kHz
	// ticks
	PTSOffset uint64
}

// SubSegment represents the sub segment numbering some placement opportunity
// start types carry
type SubSegment struct {
	// SubSegmentNum numbers the sub segment within its collection
	SubSegmentNum uint8
	// SubSegmentsExpected is the count of sub segments within the collection
	SubSegmentsExpected uint8
}

func parseSegmentationDescriptor(ir *bitsIterator, base int, nf *nonFatalErrors) (d *SegmentationDescriptor, err error) {
	d = &SegmentationDescriptor{}
	var v uint64
	if v, err = ir.NextBits(32); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_event_id failed")
		return
	}
	d.EventID = uint32(v)
	var cancelled bool
	if cancelled, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_event_cancel_indicator failed")
		return
	}
	// 7 reserved bits
	if err = ir.Skip(7); err != nil {
		err = errors.Wrap(err, "scte35: skipping segmentation_descriptor reserved bits failed")
		return
	}
	if cancelled {
		return
	}
	e := &SegmentationScheduledEvent{}
	var programSegmentation, durationFlag, notRestricted bool
	if programSegmentation, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading program_segmentation_flag failed")
		return
	}
	if durationFlag, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_duration_flag failed")
		return
	}
	if notRestricted, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading delivery_not_restricted_flag failed")
		return
	}
	if !notRestricted {
		r := &DeliveryRestrictions{}
		if r.WebDeliveryAllowed, err = ir.NextBool(); err != nil {
			err = errors.Wrap(err, "scte35: reading web_delivery_allowed_flag failed")
			return
		}
		if r.NoRegionalBlackout, err = ir.NextBool(); err != nil {
			err = errors.Wrap(err, "scte35: reading no_regional_blackout_flag failed")
			return
		}
		if r.ArchiveAllowed, err = ir.NextBool(); err != nil {
			err = errors.Wrap(err, "scte35: reading archive_allowed_flag failed")
			return
		}
		if v, err = ir.NextBits(2); err != nil {
			err = errors.Wrap(err, "scte35: reading device_restrictions failed")
			return
		}
		r.DeviceRestrictions = uint8(v)
		e.DeliveryRestrictions = r
	} else {
		// 5 reserved bits
		if err = ir.Skip(5); err != nil {
			err = errors.Wrap(err, "scte35: skipping segmentation_descriptor reserved bits failed")
			return
		}
	}
	if !programSegmentation {
		var componentCount uint64
		if componentCount, err = ir.NextBits(8); err != nil {
			err = errors.Wrap(err, "scte35: reading component_count failed")
			return
		}
		for idx := uint64(0); idx < componentCount; idx++ {
			c := &SegmentationComponentSegment{}
			if c.ComponentTag, err = ir.NextByte(); err != nil {
				err = errors.Wrap(err, "scte35: reading component_tag failed")
				return
			}
			// 7 reserved bits
			if err = ir.Skip(7); err != nil {
				err = errors.Wrap(err, "scte35: skipping component reserved bits failed")
				return
			}
			if c.PTSOffset, err = ir.NextBits(33); err != nil {
				err = errors.Wrap(err, "scte35: reading pts_offset failed")
				return
			}
			e.ComponentSegments = append(e.ComponentSegments, c)
		}
	}
	if durationFlag {
		if v, err = ir.NextBits(40); err != nil {
			err = errors.Wrap(err, "scte35: reading segmentation_duration failed")
			return
		}
		duration := v
		e.SegmentationDuration = &duration
	}
	var upidType uint8
	if upidType, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_upid_type failed")
		return
	}
	var upidLength uint8
	if upidLength, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_upid_length failed")
		return
	}
	upidStart := base + ir.Offset()
	var upidBytes []byte
	if upidBytes, err = ir.NextBytes(int(upidLength)); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_upid failed")
		return
	}
	e.SegmentationUPID = parseSegmentationUPID(upidType, upidBytes, upidStart, nf)
	typeIDStart := base + ir.Offset()
	if e.SegmentationTypeID, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading segmentation_type_id failed")
		return
	}
	if !isKnownSegmentationTypeID(e.SegmentationTypeID) {
		nf.push(&NonFatalError{
			Kind:     NonFatalErrorKindUnknownSegmentationTypeID,
			Context:  "segmentation_descriptor",
			Offset:   typeIDStart,
			Declared: uint64(e.SegmentationTypeID),
		})
	}
	if e.SegmentNum, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading segment_num failed")
		return
	}
	if e.SegmentsExpected, err = ir.NextByte(); err != nil {
		err = errors.Wrap(err, "scte35: reading segments_expected failed")
		return
	}
	// the sub segment pair is only defined for some placement opportunity
	// start types, and even then older messages omit it
	if slices.Contains(subSegmentSegmentationTypeIDs, e.SegmentationTypeID) && ir.HasBitsLeft(16) {
		s := &SubSegment{}
		if s.SubSegmentNum, err = ir.NextByte(); err != nil {
			err = errors.Wrap(err, "scte35: reading sub_segment_num failed")
			return
		}
		if s.SubSegmentsExpected, err = ir.NextByte(); err != nil {
			err = errors.Wrap(err, "scte35: reading sub_segments_expected failed")
			return
		}
		e.SubSegment = s
	}
	d.ScheduledEvent = e
	return
}

func isKnownSegmentationTypeID(id uint8) bool {
	switch {
	case id <= SegmentationTypeIDContentIdentification:
		return true
	case id >= SegmentationTypeIDProgramStart && id <= SegmentationTypeIDProgramJoin:
		return true
	case id >= SegmentationTypeIDChapterStart && id <= SegmentationTypeIDClosingCreditEnd:
		return true
	case id >= SegmentationTypeIDProviderAdvertisementStart && id <= SegmentationTypeIDDistributorPromoEnd:
		return true
	case id >= SegmentationTypeIDUnscheduledEventStart && id <= SegmentationTypeIDDistributorAdBlockEnd:
		return true
	case id == SegmentationTypeIDNetworkStart || id == SegmentationTypeIDNetworkEnd:
		return true
	}
	return false
}
