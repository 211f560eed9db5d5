package canm

import (
	"encoding/binary"
	"math"
)

func words(vs ...uint32) []byte {
	out := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		out = binary.BigEndian.AppendUint32(out, v)
	}
	return out
}

func floats(vs ...float32) []byte {
	out := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		out = binary.BigEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func baked(vs ...float32) Track {
	t := Track{Frames: make([]Frame, len(vs))}
	for i, v := range vs {
		t.Frames[i] = Frame{FrameID: float32(i), Value: v}
	}
	return t
}

// bakedFixture exercises sharing between identical, constant, suffix and
// empty tracks.
func bakedFixture() *Animation {
	a := NewAnimation(true)
	a.Header.FrameCount = 3
	a.Tracks[PositionX] = baked(1, 2, 1)
	a.Tracks[PositionY] = baked(1, 2, 1)
	a.Tracks[PositionZ] = Constant(0)
	a.Tracks[TargetX] = Constant(2)
	a.Tracks[TargetY] = Track{}
	a.Tracks[TargetZ] = baked(2, 1)
	a.Tracks[Roll] = Constant(0)
	a.Tracks[FieldOfView] = baked(45, 45, 45)
	return a
}

var bakedFixtureBytes = concat(
	[]byte("ANDOCANM"),
	words(0, 0, 0, 0, 3, 0x40),
	words(
		3, 0,
		3, 0,
		1, 3,
		1, 1,
		0, 0,
		2, 1,
		1, 3,
		3, 4,
	),
	words(0x24),
	words(0x3F800000, 0x40000000, 0x3F800000, 0x00000000, 0x42340000, 0x42340000, 0x42340000),
	[]byte{0x3D, 0xCC, 0xCC, 0xCD, 0x4E, 0x6E, 0x6B, 0x28, 0xFF, 0xFF, 0xFF, 0xFF},
)

// keyedFixture mixes dual-slope, single-slope, constant and empty tracks.
func keyedFixture() *Animation {
	a := NewAnimation(false)
	a.Header.Unk1 = 7
	a.Header.FrameCount = 120
	a.Tracks[PositionX] = Track{Frames: []Frame{
		{FrameID: 0, Value: 1},
		{FrameID: 120, Value: 2, InSlope: 0.5, OutSlope: -1},
	}}
	a.Tracks[PositionY] = Track{UseSingleSlope: true, Frames: []Frame{
		{FrameID: 0, Value: 1},
		{FrameID: 120, Value: 2, InSlope: 0.5},
	}}
	a.Tracks[PositionZ] = Constant(1)
	a.Tracks[TargetX] = Track{}
	a.Tracks[TargetY] = Track{UseSingleSlope: true}
	a.Tracks[TargetZ] = Track{UseSingleSlope: true, Frames: []Frame{{Value: 0.5}}}
	a.Tracks[Roll] = Constant(0)
	a.Tracks[FieldOfView] = Track{Frames: []Frame{
		{FrameID: 0, Value: 45},
		{FrameID: 120, Value: 45},
	}}
	return a
}

var keyedFixtureBytes = concat(
	[]byte("ANDOCKAN"),
	words(7, 0, 0, 0, 120, 0x60),
	words(
		2, 0, 0,
		2, 8, 1,
		1, 1, 0,
		0, 0, 0,
		0, 0, 1,
		1, 6, 1,
		1, 0, 0,
		2, 14, 0,
	),
	words(0x60),
	floats(
		0, 1, 0, 0, 120, 2, 0.5, -1,
		0, 1, 0, 120, 2, 0.5,
		0, 45, 0, 0, 120, 45, 0, 0,
	),
	Footer(),
)

// legacyKeyedFixtureBytes is keyedFixture as early editor builds wrote it:
// each count field holds the pool length after that track registered.
var legacyKeyedFixtureBytes = concat(
	[]byte("ANDOCKAN"),
	words(7, 0, 0, 0, 120, 0x60),
	words(
		8, 0, 0,
		14, 8, 1,
		14, 1, 0,
		14, 0, 0,
		14, 0, 1,
		14, 6, 1,
		14, 0, 0,
		22, 14, 0,
	),
	words(0x60),
	floats(
		0, 1, 0, 0, 120, 2, 0.5, -1,
		0, 1, 0, 120, 2, 0.5,
		0, 45, 0, 0, 120, 45, 0, 0,
	),
	Footer(),
)
