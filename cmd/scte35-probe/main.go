package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/asticode/go-astikit"
	"github.com/pkg/profile"
	"github.com/theRealRobG/scte35"
)

// Flags
var (
	cpuProfiling    = flag.Bool("cp", false, "if yes, cpu profiling is enabled")
	format          = flag.String("f", "", "the output format (json|text)")
	input           = flag.String("i", "", "the input, a hex or base64 message, a file path, or - for stdin")
	memoryProfiling = flag.Bool("mp", false, "if yes, memory profiling is enabled")
)

func main() {
	// Init
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s <crc|default>:\n", os.Args[0])
		flag.PrintDefaults()
	}
	cmd := astikit.FlagCmd()
	flag.Parse()

	// Start profiling
	if *cpuProfiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	} else if *memoryProfiling {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	// Get the message
	msg, err := readMessage()
	if err != nil {
		log.Fatal(fmt.Errorf("scte35: reading input failed: %w", err))
	}

	// Switch on command
	switch cmd {
	case "crc":
		// Check the stored CRC
		bs, err := messageBytes(msg)
		if err != nil {
			log.Fatal(fmt.Errorf("scte35: decoding input failed: %w", err))
		}
		if !scte35.VerifyCRC32(bs) {
			log.Fatal("scte35: CRC_32 mismatch")
		}
		fmt.Println("CRC_32 valid")
	default:
		// Decode the section
		s, err := parseMessage(msg)
		if err != nil {
			log.Fatal(fmt.Errorf("scte35: parsing message failed: %w", err))
		}

		// Print
		switch *format {
		case "json":
			e := json.NewEncoder(os.Stdout)
			e.SetIndent("", "  ")
			if err = e.Encode(s); err != nil {
				log.Fatal(fmt.Errorf("scte35: json encoding to stdout failed: %w", err))
			}
		default:
			fmt.Println(sectionToString(s))
		}
		for _, e := range s.NonFatalErrors {
			log.Printf("non fatal: %s\n", e)
		}
	}
}

func readMessage() (msg string, err error) {
	// Validate input
	if len(*input) <= 0 {
		err = errors.New("use -i to indicate an input")
		return
	}

	// The input is either the message itself, a file holding it, or stdin
	if *input == "-" {
		var bs []byte
		if bs, err = io.ReadAll(os.Stdin); err != nil {
			err = fmt.Errorf("scte35: reading stdin failed: %w", err)
			return
		}
		msg = string(bs)
	} else if bs, errRead := os.ReadFile(*input); errRead == nil {
		msg = string(bs)
	} else {
		msg = *input
	}
	msg = strings.TrimSpace(msg)
	return
}

// isHexMessage checks whether the message only holds hex digits, with or
// without a leading 0x. Base64 is the fallback.
func isHexMessage(msg string) bool {
	t := strings.TrimPrefix(strings.TrimPrefix(msg, "0x"), "0X")
	if len(t) == 0 || len(t)%2 != 0 {
		return false
	}
	for _, c := range t {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func parseMessage(msg string) (*scte35.SpliceInfoSection, error) {
	if isHexMessage(msg) {
		return scte35.ParseSpliceInfoSectionHexString(msg)
	}
	return scte35.ParseSpliceInfoSectionBase64String(msg)
}

func messageBytes(msg string) ([]byte, error) {
	if isHexMessage(msg) {
		return hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(msg, "0x"), "0X"))
	}
	return base64.StdEncoding.DecodeString(msg)
}

func sectionToString(s *scte35.SpliceInfoSection) (o string) {
	o = fmt.Sprintf("splice_info_section | sap: %s | pts adjustment: %d | tier: 0x%x", sapTypeToString(s.SAPType), s.PTSAdjustment, s.Tier)
	if s.EncryptedPacket != nil {
		o += fmt.Sprintf("\n* encrypted | algorithm: %d | cw index: %d", s.EncryptedPacket.EncryptionAlgorithm, s.EncryptedPacket.CWIndex)
	}
	o += "\n* " + commandToString(s.SpliceCommand)
	for _, d := range s.SpliceDescriptors {
		o += "\n* " + descriptorToString(d)
	}
	o += fmt.Sprintf("\n* crc: 0x%08x", s.CRC32)
	return
}

func sapTypeToString(t uint8) string {
	switch t {
	case scte35.SAPType1:
		return "type 1"
	case scte35.SAPType2:
		return "type 2"
	case scte35.SAPType3:
		return "type 3"
	}
	return "unspecified"
}

func commandToString(c *scte35.SpliceCommand) string {
	switch c.Type {
	case scte35.SpliceCommandTypeSpliceNull:
		return "[Splice null]"
	case scte35.SpliceCommandTypeSpliceSchedule:
		return fmt.Sprintf("[Splice schedule] events: %d", len(c.SpliceSchedule.Events))
	case scte35.SpliceCommandTypeSpliceInsert:
		s := fmt.Sprintf("[Splice insert] event id: %d", c.SpliceInsert.EventID)
		if c.SpliceInsert.IsCancelled() {
			return s + " | cancelled"
		}
		e := c.SpliceInsert.ScheduledEvent
		s += fmt.Sprintf(" | out of network: %v", e.OutOfNetworkIndicator)
		if e.ProgramSplice != nil && e.ProgramSplice.SpliceTime != nil && e.ProgramSplice.SpliceTime.PTSTime != nil {
			s += fmt.Sprintf(" | pts time: %d", *e.ProgramSplice.SpliceTime.PTSTime)
		}
		if e.BreakDuration != nil {
			s += fmt.Sprintf(" | duration: %d | auto return: %v", e.BreakDuration.Duration, e.BreakDuration.AutoReturn)
		}
		return s
	case scte35.SpliceCommandTypeTimeSignal:
		if c.TimeSignal.IsImmediate() {
			return "[Time signal] immediate"
		}
		return fmt.Sprintf("[Time signal] pts time: %d", *c.TimeSignal.SpliceTime.PTSTime)
	case scte35.SpliceCommandTypeBandwidthReservation:
		return "[Bandwidth reservation]"
	case scte35.SpliceCommandTypePrivateCommand:
		return fmt.Sprintf("[Private command] identifier: %s | bytes: %d", c.PrivateCommand.Identifier, len(c.PrivateCommand.PrivateBytes))
	}
	return fmt.Sprintf("unlisted splice command type 0x%x", c.Type)
}

func descriptorToString(d *scte35.SpliceDescriptor) string {
	// a known tag may still carry a nil typed body when it could not be
	// decoded and degraded to private bytes
	switch {
	case d.Tag == scte35.SpliceDescriptorTagAvail && d.Avail != nil:
		return fmt.Sprintf("[Avail] provider avail id: %d", d.Avail.ProviderAvailID)
	case d.Tag == scte35.SpliceDescriptorTagDTMF && d.DTMF != nil:
		return fmt.Sprintf("[DTMF] preroll: %d | chars: %s", d.DTMF.Preroll, d.DTMF.DTMFChars)
	case d.Tag == scte35.SpliceDescriptorTagSegmentation && d.Segmentation != nil:
		s := fmt.Sprintf("[Segmentation] event id: %d", d.Segmentation.EventID)
		if d.Segmentation.IsCancelled() {
			return s + " | cancelled"
		}
		e := d.Segmentation.ScheduledEvent
		s += fmt.Sprintf(" | type id: 0x%02x | segment: %d/%d", e.SegmentationTypeID, e.SegmentNum, e.SegmentsExpected)
		if e.SegmentationDuration != nil {
			s += fmt.Sprintf(" | duration: %d", *e.SegmentationDuration)
		}
		if u := e.SegmentationUPID; u != nil && u.Value != "" {
			s += fmt.Sprintf(" | upid: %s", u.Value)
		}
		return s
	case d.Tag == scte35.SpliceDescriptorTagTime && d.Time != nil:
		return fmt.Sprintf("[Time] tai seconds: %d | tai ns: %d | utc offset: %d", d.Time.TAISeconds, d.Time.TAINanoseconds, d.Time.UTCOffset)
	case d.Tag == scte35.SpliceDescriptorTagAudio && d.Audio != nil:
		return fmt.Sprintf("[Audio] components: %d", len(d.Audio.Components))
	}
	return fmt.Sprintf("[Private] tag: 0x%02x | %d private bytes", d.Tag, len(d.Private))
}
