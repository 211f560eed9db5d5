package canm

import (
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"testing"
)

func isDecodeError(err error) bool {
	return errors.Is(err, ErrFormat) || errors.Is(err, ErrTruncated) || errors.Is(err, ErrIO)
}

func TestDecodeTruncatedPrefixes(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{bakedFixtureBytes, keyedFixtureBytes} {
		// The footer is never read, so only prefixes that cut the payload fail.
		payloadEnd := len(data) - len(footer)
		for n := 0; n < payloadEnd; n++ {
			_, err := Decode(data[:n])
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("prefix %d/%d: expected ErrTruncated, got %v", n, len(data), err)
			}
		}
		if _, err := Decode(data[:payloadEnd]); err != nil {
			t.Fatalf("decode without footer: %v", err)
		}
	}
}

func TestDecodeRejectsBadRecords(t *testing.T) {
	t.Parallel()

	patch := func(off int, v uint32) []byte {
		b := append([]byte(nil), keyedFixtureBytes...)
		binary.BigEndian.PutUint32(b[off:], v)
		return b
	}
	fovRecord := HeaderSize + 12*int(FieldOfView)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"negative start", patch(fovRecord+4, 0xFFFFFFFF), ErrTruncated},
		{"huge count", patch(fovRecord, 0x7FFFFFFF), ErrTruncated},
		{"start past end", patch(fovRecord+4, 0x00100000), ErrTruncated},
		{"offset past end", patch(0x1C, 0xFFFFFFF0), ErrTruncated},
		{"frame type", patch(4, 0), ErrInvalidFrameType},
		{"magic", patch(0, 0), ErrInvalidMagic},
	}
	for _, tc := range tests {
		_, err := Decode(tc.data)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
}

func TestDecodeNegativeCountIsEmpty(t *testing.T) {
	t.Parallel()

	b := append([]byte(nil), bakedFixtureBytes...)
	binary.BigEndian.PutUint32(b[HeaderSize+8*int(Roll):], 0xFFFFFFFE)
	a, err := Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(a.Tracks[Roll].Frames) != 0 {
		t.Fatalf("negative count decoded %d frames", len(a.Tracks[Roll].Frames))
	}
}

func TestDecodeRandomInput(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		var data []byte
		if i%2 == 0 {
			data = make([]byte, rng.IntN(256))
			for j := range data {
				data[j] = byte(rng.UintN(256))
			}
		} else {
			// Keep a valid header so the record and payload paths run.
			src := keyedFixtureBytes
			if i%4 == 1 {
				src = bakedFixtureBytes
			}
			data = append([]byte(nil), src...)
			for range 1 + rng.IntN(8) {
				data[HeaderSize+rng.IntN(len(data)-HeaderSize)] = byte(rng.UintN(256))
			}
			data = data[:rng.IntN(len(data)+1)]
		}
		a, err := Decode(data)
		if err != nil && !isDecodeError(err) {
			t.Fatalf("input %d: unexpected error kind: %v", i, err)
		}
		if err == nil && a == nil {
			t.Fatalf("input %d: nil animation without error", i)
		}
	}
}

func FuzzDecode(f *testing.F) {
	f.Add(bakedFixtureBytes)
	f.Add(keyedFixtureBytes)
	f.Add([]byte("ANDOCKAN"))

	f.Fuzz(func(t *testing.T, data []byte) {
		a, err := Decode(data)
		if err != nil {
			if !isDecodeError(err) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		enc, err := Encode(a)
		if err != nil {
			t.Fatalf("encode decoded animation: %v", err)
		}
		b, err := Decode(enc)
		if err != nil {
			t.Fatalf("decode re-encoded animation: %v", err)
		}
		if !a.Equal(b) {
			t.Fatalf("round trip mismatch")
		}
	})
}
