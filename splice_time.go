package scte35

import "github.com/pkg/errors"

// SpliceTime represents a splice_time structure, the 90kHz presentation time
// a splice event should occur at.
// Chapter: 9.8.1 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type SpliceTime struct {
	// PTSTime is the 33-bit time in 90kHz ticks. Nil means the time is not
	// specified and the splice is immediate or provided elsewhere.
	PTSTime *uint64
}

// BreakDuration represents a break_duration structure, the duration of a
// commercial break.
// Chapter: 9.8.2 | Link: https://account.scte.org/standards/library/catalog/scte-35-digital-program-insertion-cueing-message/
type BreakDuration struct {
	// AutoReturn indicates that the duration shall be used by the splicing
	// device to return to the network feed without a separate back-in message
	AutoReturn bool
	// Duration is the 33-bit break duration in 90kHz ticks
	Duration uint64
}

func parseSpliceTime(ir *bitsIterator) (t *SpliceTime, err error) {
	t = &SpliceTime{}
	var specified bool
	if specified, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading time_specified_flag failed")
		return
	}
	if !specified {
		// 7 reserved bits
		if err = ir.Skip(7); err != nil {
			err = errors.Wrap(err, "scte35: skipping splice_time reserved bits failed")
		}
		return
	}
	// 6 reserved bits then the 33-bit pts_time
	if err = ir.Skip(6); err != nil {
		err = errors.Wrap(err, "scte35: skipping splice_time reserved bits failed")
		return
	}
	var pts uint64
	if pts, err = ir.NextBits(33); err != nil {
		err = errors.Wrap(err, "scte35: reading pts_time failed")
		return
	}
	t.PTSTime = &pts
	return
}

func parseBreakDuration(ir *bitsIterator) (d *BreakDuration, err error) {
	d = &BreakDuration{}
	if d.AutoReturn, err = ir.NextBool(); err != nil {
		err = errors.Wrap(err, "scte35: reading auto_return failed")
		return
	}
	// 6 reserved bits
	if err = ir.Skip(6); err != nil {
		err = errors.Wrap(err, "scte35: skipping break_duration reserved bits failed")
		return
	}
	if d.Duration, err = ir.NextBits(33); err != nil {
		err = errors.Wrap(err, "scte35: reading break duration failed")
	}
	return
}
