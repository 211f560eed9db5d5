package canm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// TrackSelection names one of the eight camera channels. The numeric value
// is the channel's position in the file.
type TrackSelection uint8

const (
	PositionX TrackSelection = iota
	PositionY
	PositionZ
	TargetX
	TargetY
	TargetZ
	Roll
	FieldOfView
)

// TrackCount is the number of channels in every container.
const TrackCount = 8

var trackNames = [TrackCount]string{
	PositionX:   "PositionX",
	PositionY:   "PositionY",
	PositionZ:   "PositionZ",
	TargetX:     "TargetX",
	TargetY:     "TargetY",
	TargetZ:     "TargetZ",
	Roll:        "Roll",
	FieldOfView: "FieldOfView",
}

// TrackSelections returns all channels in file order.
func TrackSelections() [TrackCount]TrackSelection {
	var out [TrackCount]TrackSelection
	for i := range out {
		out[i] = TrackSelection(i)
	}
	return out
}

// TrackSelectionFromIndex maps a file position to its channel.
func TrackSelectionFromIndex(i int) (TrackSelection, bool) {
	if i < 0 || i >= TrackCount {
		return 0, false
	}
	return TrackSelection(i), true
}

// ParseTrackSelection maps a channel name to its channel.
func ParseTrackSelection(name string) (TrackSelection, bool) {
	for i, n := range trackNames {
		if n == name {
			return TrackSelection(i), true
		}
	}
	return 0, false
}

func (s TrackSelection) Valid() bool { return int(s) < TrackCount }

func (s TrackSelection) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TrackSelection(%d)", uint8(s))
	}
	return trackNames[s]
}

// Frame is one keyframe. In baked mode FrameID is the frame index and the
// slopes are unused.
type Frame struct {
	FrameID  float32
	Value    float32
	InSlope  float32
	OutSlope float32
}

// Track is the keyframe list of one channel.
//
// UseSingleSlope only matters in keyed mode: when set, control points carry
// InSlope alone and OutSlope is not stored.
type Track struct {
	Frames         []Frame
	UseSingleSlope bool
}

// Constant returns a single-frame track holding v.
func Constant(v float32) Track {
	return Track{Frames: []Frame{{Value: v}}}
}

// trackRecord is the on-disk track header: frame count, payload index into
// the data region and, for keyed tracks, the slope selector.
type trackRecord struct {
	Count    int32
	Start    int32
	Selector int32
}

// singleSlope reports whether a keyed record stores InSlope only. A zero
// selector means both slopes are stored.
func (r trackRecord) singleSlope(fullFrames bool) bool {
	return !fullFrames && r.Selector != 0
}

// slopeSelector is the keyed record selector for t.
func slopeSelector(t *Track) int32 {
	if t.UseSingleSlope {
		return 1
	}
	return 0
}

func trackRecordSize(fullFrames bool) int {
	if fullFrames {
		return 8
	}
	return 12
}

func readTrackRecord(c *cursor, fullFrames bool) (trackRecord, error) {
	var rec trackRecord
	var err error
	if rec.Count, err = c.int32(); err != nil {
		return rec, err
	}
	if rec.Start, err = c.int32(); err != nil {
		return rec, err
	}
	if !fullFrames {
		if rec.Selector, err = c.int32(); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func appendTrackRecord(b []byte, rec trackRecord, fullFrames bool) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(rec.Count))
	b = binary.BigEndian.AppendUint32(b, uint32(rec.Start))
	if !fullFrames {
		b = binary.BigEndian.AppendUint32(b, uint32(rec.Selector))
	}
	return b
}

// payloadLen is the number of f32 values a track with count frames occupies.
func payloadLen(count int64, fullFrames, singleSlope bool) int64 {
	switch {
	case count <= 0:
		return 0
	case count == 1, fullFrames:
		return count
	case singleSlope:
		return count * 3
	default:
		return count * 4
	}
}

// payloadOffset resolves a track's absolute payload position. The first
// word of the data region is the payload size, hence the extra 4 bytes.
func payloadOffset(anchor int64, start int32) (int64, error) {
	if start < 0 {
		return 0, fmt.Errorf("%w: negative payload index %d", ErrTruncated, start)
	}
	return anchor + 4 + 4*int64(start), nil
}

// trackSpan locates the payload described by rec and checks it lies within
// an input of dataLen bytes. n is the number of f32 values.
func trackSpan(anchor int64, rec trackRecord, fullFrames bool, dataLen int) (off, n int64, err error) {
	if rec.Count <= 0 {
		return 0, 0, nil
	}
	off, err = payloadOffset(anchor, rec.Start)
	if err != nil {
		return 0, 0, err
	}
	n = payloadLen(int64(rec.Count), fullFrames, rec.singleSlope(fullFrames))
	if end := off + 4*n; end > int64(dataLen) {
		return 0, 0, fmt.Errorf("%w: payload [%d,%d) past end of input (%d bytes)", ErrTruncated, off, end, dataLen)
	}
	return off, n, nil
}

// decodeTrack reads the payload described by rec. It never moves the record
// cursor; payloads are addressed absolutely within data.
func decodeTrack(data []byte, anchor int64, rec trackRecord, fullFrames bool) (Track, error) {
	t := Track{UseSingleSlope: rec.singleSlope(fullFrames)}
	off, n, err := trackSpan(anchor, rec, fullFrames, len(data))
	if err != nil {
		return Track{}, err
	}
	if n == 0 {
		return t, nil
	}

	p := &cursor{b: data, off: int(off)}
	t.Frames = make([]Frame, rec.Count)
	if rec.Count == 1 {
		t.Frames[0].Value = p.float32()
		return t, nil
	}
	for i := range t.Frames {
		f := &t.Frames[i]
		if fullFrames {
			f.FrameID = float32(i)
			f.Value = p.float32()
			continue
		}
		f.FrameID = p.float32()
		f.Value = p.float32()
		f.InSlope = p.float32()
		if !t.UseSingleSlope {
			f.OutSlope = p.float32()
		}
	}
	return t, nil
}

// flatten projects the frames onto the value sequence stored in the pool.
func (t *Track) flatten(fullFrames bool) []float32 {
	n := payloadLen(int64(len(t.Frames)), fullFrames, t.UseSingleSlope)
	out := make([]float32, 0, n)
	if len(t.Frames) == 1 {
		return append(out, t.Frames[0].Value)
	}
	for _, f := range t.Frames {
		if fullFrames {
			out = append(out, f.Value)
			continue
		}
		out = append(out, f.FrameID, f.Value, f.InSlope)
		if !t.UseSingleSlope {
			out = append(out, f.OutSlope)
		}
	}
	return out
}

// cursor reads big-endian words from an immutable byte slice.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) int32() (int32, error) {
	if c.off < 0 || len(c.b)-c.off < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d, have %d", ErrTruncated, c.off, max(len(c.b)-c.off, 0))
	}
	v := int32(binary.BigEndian.Uint32(c.b[c.off:]))
	c.off += 4
	return v, nil
}

// float32 assumes the caller has bounds-checked the whole run.
func (c *cursor) float32() float32 {
	v := math.Float32frombits(binary.BigEndian.Uint32(c.b[c.off:]))
	c.off += 4
	return v
}
