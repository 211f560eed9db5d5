package canm

import (
	"encoding/binary"
	"fmt"
)

// FrameType selects how track payloads are laid out.
type FrameType uint32

const (
	// FrameTypeCANM stores baked values, one per animation frame ("CANM").
	FrameTypeCANM FrameType = 0x4D4E4143
	// FrameTypeCKAN stores keyed spline control points ("CKAN").
	FrameTypeCKAN FrameType = 0x4E414B43
)

// FrameTypeFor returns the tag matching the baked/keyed mode.
func FrameTypeFor(fullFrames bool) FrameType {
	if fullFrames {
		return FrameTypeCANM
	}
	return FrameTypeCKAN
}

// Valid reports whether t is one of the two known tags.
func (t FrameType) Valid() bool {
	return t == FrameTypeCANM || t == FrameTypeCKAN
}

// FullFrames reports whether t selects baked mode.
func (t FrameType) FullFrames() bool {
	return t == FrameTypeCANM
}

func (t FrameType) String() string {
	switch t {
	case FrameTypeCANM:
		return "CANM"
	case FrameTypeCKAN:
		return "CKAN"
	default:
		return fmt.Sprintf("FrameType(0x%08X)", uint32(t))
	}
}

// ParseFrameType converts the tag name back to a FrameType.
func ParseFrameType(s string) (FrameType, error) {
	switch s {
	case "CANM":
		return FrameTypeCANM, nil
	case "CKAN":
		return FrameTypeCKAN, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrameType, s)
	}
}

// Header is the fixed 32-byte file header.
//
// Magic and FrameType are little-endian on disk; every other field is
// big-endian.
type Header struct {
	Magic      uint32
	FrameType  FrameType
	Unk1       int32
	Unk2       int32
	Unk3       int32
	Unk4       int32
	FrameCount int32
	Offset     uint32
}

// NewHeader returns a header for the default family in keyed mode.
func NewHeader() Header {
	return Header{Magic: MagicANDO, FrameType: FrameTypeCKAN}
}

func decodeHeader(b []byte, magic uint32) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(b))
	}
	h := Header{
		Magic:      binary.LittleEndian.Uint32(b[0:4]),
		FrameType:  FrameType(binary.LittleEndian.Uint32(b[4:8])),
		Unk1:       int32(binary.BigEndian.Uint32(b[8:12])),
		Unk2:       int32(binary.BigEndian.Uint32(b[12:16])),
		Unk3:       int32(binary.BigEndian.Uint32(b[16:20])),
		Unk4:       int32(binary.BigEndian.Uint32(b[20:24])),
		FrameCount: int32(binary.BigEndian.Uint32(b[24:28])),
		Offset:     binary.BigEndian.Uint32(b[28:32]),
	}
	if h.Magic != magic {
		return Header{}, fmt.Errorf("%w: got 0x%08X want 0x%08X", ErrInvalidMagic, h.Magic, magic)
	}
	if !h.FrameType.Valid() {
		return Header{}, fmt.Errorf("%w: 0x%08X", ErrInvalidFrameType, uint32(h.FrameType))
	}
	return h, nil
}

func appendHeader(b []byte, h Header) []byte {
	b = binary.LittleEndian.AppendUint32(b, h.Magic)
	b = binary.LittleEndian.AppendUint32(b, uint32(h.FrameType))
	b = binary.BigEndian.AppendUint32(b, uint32(h.Unk1))
	b = binary.BigEndian.AppendUint32(b, uint32(h.Unk2))
	b = binary.BigEndian.AppendUint32(b, uint32(h.Unk3))
	b = binary.BigEndian.AppendUint32(b, uint32(h.Unk4))
	b = binary.BigEndian.AppendUint32(b, uint32(h.FrameCount))
	b = binary.BigEndian.AppendUint32(b, h.Offset)
	return b
}
