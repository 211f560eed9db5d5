package canm

import (
	"errors"
	"testing"
)

func TestHeaderMixedEndianness(t *testing.T) {
	t.Parallel()

	h := Header{
		Magic:      MagicANDO,
		FrameType:  FrameTypeCKAN,
		Unk1:       0x11223344,
		Unk2:       -1,
		Unk3:       0,
		Unk4:       0x01020304,
		FrameCount: 600,
		Offset:     0x60,
	}
	raw := appendHeader(nil, h)
	if len(raw) != HeaderSize {
		t.Fatalf("header size: got %d want %d", len(raw), HeaderSize)
	}
	if string(raw[0:8]) != "ANDOCKAN" {
		t.Fatalf("magic/frame type are not little-endian: %q", raw[0:8])
	}
	if raw[8] != 0x11 || raw[11] != 0x44 {
		t.Fatalf("unk1 is not big-endian: % X", raw[8:12])
	}
	if raw[31] != 0x60 || raw[28] != 0 {
		t.Fatalf("offset is not big-endian: % X", raw[28:32])
	}

	got, err := decodeHeader(raw, MagicANDO)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if got != h {
		t.Fatalf("header round-trip mismatch: got %+v want %+v", got, h)
	}
}

func TestDecodeHeaderErrors(t *testing.T) {
	t.Parallel()

	good := appendHeader(nil, Header{Magic: MagicANDO, FrameType: FrameTypeCANM})

	badMagic := append([]byte(nil), good...)
	copy(badMagic, "ODNA")

	badType := append([]byte(nil), good...)
	copy(badType[4:], "CAMN")

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"short", good[:31], ErrTruncated},
		{"magic", badMagic, ErrInvalidMagic},
		{"frame type", badType, ErrInvalidFrameType},
	}
	for _, tc := range tests {
		_, err := decodeHeader(tc.data, MagicANDO)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
	if _, err := decodeHeader(badMagic, MagicANDO); !errors.Is(err, ErrFormat) {
		t.Fatalf("bad magic should be a format error, got %v", err)
	}
}

func TestFrameType(t *testing.T) {
	t.Parallel()

	if FrameTypeFor(true) != FrameTypeCANM || FrameTypeFor(false) != FrameTypeCKAN {
		t.Fatalf("FrameTypeFor mapping is wrong")
	}
	for _, ft := range []FrameType{FrameTypeCANM, FrameTypeCKAN} {
		parsed, err := ParseFrameType(ft.String())
		if err != nil || parsed != ft {
			t.Fatalf("ParseFrameType(%q): got %v, %v", ft.String(), parsed, err)
		}
	}
	if _, err := ParseFrameType("CAMN"); !errors.Is(err, ErrInvalidFrameType) {
		t.Fatalf("expected ErrInvalidFrameType, got %v", err)
	}
	if FrameType(1).Valid() {
		t.Fatalf("unknown tag reported valid")
	}
	if got := FrameType(1).String(); got != "FrameType(0x00000001)" {
		t.Fatalf("unknown tag string: %q", got)
	}
}

func TestTrackSelectionMapping(t *testing.T) {
	t.Parallel()

	want := []string{"PositionX", "PositionY", "PositionZ", "TargetX", "TargetY", "TargetZ", "Roll", "FieldOfView"}
	for i, s := range TrackSelections() {
		if s.String() != want[i] {
			t.Fatalf("selection %d: got %s want %s", i, s, want[i])
		}
		byIndex, ok := TrackSelectionFromIndex(i)
		if !ok || byIndex != s {
			t.Fatalf("TrackSelectionFromIndex(%d): got %v, %v", i, byIndex, ok)
		}
		byName, ok := ParseTrackSelection(want[i])
		if !ok || byName != s {
			t.Fatalf("ParseTrackSelection(%q): got %v, %v", want[i], byName, ok)
		}
	}
	for _, i := range []int{-1, 8, 255} {
		if _, ok := TrackSelectionFromIndex(i); ok {
			t.Fatalf("index %d accepted", i)
		}
	}
	if _, ok := ParseTrackSelection("positionx"); ok {
		t.Fatalf("names are case-sensitive")
	}

	a := NewAnimation(true)
	if a.Track(TrackSelection(8)) != nil {
		t.Fatalf("out of range track returned")
	}
	if a.SetTrack(TrackSelection(8), Constant(1)) {
		t.Fatalf("out of range track accepted")
	}
}
