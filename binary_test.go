package scte35

import (
	"encoding/hex"
	"log"
	"testing"

	"github.com/icza/bitio"
)

func writeBinary(w *bitio.Writer, str string) {
	for _, r := range str {
		var err error
		switch r {
		case '1':
			err = w.WriteBool(true)
		case '0':
			err = w.WriteBool(false)
		default:
			log.Fatalf("invalid rune: %v", r)
		}
		if err != nil {
			log.Fatal(err)
		}
	}
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	bs, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return bs
}
