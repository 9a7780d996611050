package scte35

// bitsIterator iterates sequentially and safely through a slice of bytes at
// bit granularity, most significant bit first. All reads check bounds so
// callers never need to guard against "index out of range" themselves: a read
// past the end returns a ParseError of kind unexpected end of data.
type bitsIterator struct {
	bs     []byte
	offset int
}

// newBitsIterator creates a new bitsIterator over bs
func newBitsIterator(bs []byte) *bitsIterator {
	return &bitsIterator{bs: bs}
}

// NextBits returns the next n bits as an unsigned integer, with 1 <= n <= 64.
// Reads outside that range fail without advancing, a wider read would
// overflow the result.
func (i *bitsIterator) NextBits(n int) (v uint64, err error) {
	if n < 1 || n > 64 {
		err = &ParseError{Kind: ParseErrorKindInvalidBitCount, ExpectedBits: n}
		return
	}
	if !i.HasBitsLeft(n) {
		err = &ParseError{
			Kind:         ParseErrorKindUnexpectedEndOfData,
			ExpectedBits: n,
			ActualBits:   i.RemainingBits(),
		}
		return
	}
	for k := 0; k < n; k++ {
		b := i.bs[i.offset>>3] >> (7 - uint(i.offset&0x7)) & 0x1
		v = v<<1 | uint64(b)
		i.offset++
	}
	return
}

// NextBool returns the next bit as a bool
func (i *bitsIterator) NextBool() (b bool, err error) {
	var v uint64
	if v, err = i.NextBits(1); err != nil {
		return
	}
	b = v == 1
	return
}

// NextByte returns the next 8 bits as a byte
func (i *bitsIterator) NextByte() (b byte, err error) {
	var v uint64
	if v, err = i.NextBits(8); err != nil {
		return
	}
	b = byte(v)
	return
}

// NextBytes returns the n next bytes
func (i *bitsIterator) NextBytes(n int) (bs []byte, err error) {
	if !i.HasBitsLeft(n * 8) {
		err = &ParseError{
			Kind:         ParseErrorKindUnexpectedEndOfData,
			ExpectedBits: n * 8,
			ActualBits:   i.RemainingBits(),
		}
		return
	}
	bs = make([]byte, n)
	if i.offset&0x7 == 0 {
		copy(bs, i.bs[i.offset>>3:i.offset>>3+n])
		i.offset += n * 8
		return
	}
	for k := 0; k < n; k++ {
		var v uint64
		if v, err = i.NextBits(8); err != nil {
			return
		}
		bs[k] = byte(v)
	}
	return
}

// NextString returns the n next bytes as a string
func (i *bitsIterator) NextString(n int) (s string, err error) {
	var bs []byte
	if bs, err = i.NextBytes(n); err != nil {
		return
	}
	s = string(bs)
	return
}

// Skip skips the n next bits
func (i *bitsIterator) Skip(n int) (err error) {
	if !i.HasBitsLeft(n) {
		return &ParseError{
			Kind:         ParseErrorKindUnexpectedEndOfData,
			ExpectedBits: n,
			ActualBits:   i.RemainingBits(),
		}
	}
	i.offset += n
	return
}

// Seek seeks to the nth bit
func (i *bitsIterator) Seek(n int) {
	i.offset = n
}

// Offset returns the offset in bits
func (i *bitsIterator) Offset() int {
	return i.offset
}

// RemainingBits returns the number of bits left
func (i *bitsIterator) RemainingBits() int {
	return len(i.bs)*8 - i.offset
}

// HasBitsLeft checks whether there are at least n bits left
func (i *bitsIterator) HasBitsLeft(n int) bool {
	return i.RemainingBits() >= n
}
