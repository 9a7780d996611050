package scte35

const (
	crc32Polynomial   = uint32(0x04c11db7)
	crc32InitialValue = uint32(0xffffffff)
)

// this solution based on vlc implementation + static crc table (1kb additional memory on start, without reallocations)
// https://github.com/videolan/vlc/blob/master/modules/mux/mpeg/ps.c

var tableCRC32 [256]uint32

func init() {
	for i := uint32(0); i < 256; i++ {
		crc := i << 24
		for k := 0; k < 8; k++ {
			if crc&0x80000000 > 0 {
				crc = crc<<1 ^ crc32Polynomial
			} else {
				crc <<= 1
			}
		}
		tableCRC32[i] = crc
	}
}

func computeCRC32(bs []byte) uint32 {
	return updateCRC32(crc32InitialValue, bs)
}

func updateCRC32(iCrc uint32, bs []byte) uint32 {
	for _, b := range bs {
		iCrc = (iCrc << 8) ^ tableCRC32[((iCrc>>24)^uint32(b))&0xff]
	}
	return iCrc
}

// VerifyCRC32 checks the CRC_32 of a full splice_info_section, table_id
// through CRC_32 included. The MPEG CRC register ends up at zero when the
// stored CRC_32 matches the payload.
func VerifyCRC32(bs []byte) bool {
	return computeCRC32(bs) == 0
}
