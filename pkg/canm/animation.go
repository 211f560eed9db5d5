package canm

// Animation is a decoded container: the header, one track per channel and
// the baked/keyed mode.
//
// FullFrames decides the frame type written on encode; Header.FrameType and
// Header.Offset are informational once decoded.
type Animation struct {
	Header     Header
	Tracks     [TrackCount]Track
	FullFrames bool
}

// NewAnimation returns an empty animation in the given mode.
func NewAnimation(fullFrames bool) *Animation {
	h := NewHeader()
	h.FrameType = FrameTypeFor(fullFrames)
	return &Animation{Header: h, FullFrames: fullFrames}
}

// Track returns the track of channel s, or nil if s is out of range.
func (a *Animation) Track(s TrackSelection) *Track {
	if !s.Valid() {
		return nil
	}
	return &a.Tracks[s]
}

// SetTrack replaces the track of channel s. Out of range channels are
// ignored and reported as false.
func (a *Animation) SetTrack(s TrackSelection, t Track) bool {
	if !s.Valid() {
		return false
	}
	a.Tracks[s] = t
	return true
}

// Equal reports whether a and b decode to the same content: header fields
// that survive an encode, mode, and per-track frames compared bit for bit.
func (a *Animation) Equal(b *Animation) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.FullFrames != b.FullFrames {
		return false
	}
	ha, hb := a.Header, b.Header
	if ha.Unk1 != hb.Unk1 || ha.Unk2 != hb.Unk2 || ha.Unk3 != hb.Unk3 || ha.Unk4 != hb.Unk4 || ha.FrameCount != hb.FrameCount {
		return false
	}
	for i := range a.Tracks {
		ta, tb := &a.Tracks[i], &b.Tracks[i]
		if len(ta.Frames) != len(tb.Frames) {
			return false
		}
		if !a.FullFrames && ta.UseSingleSlope != tb.UseSingleSlope {
			return false
		}
		for j := range ta.Frames {
			if !equalFrame(ta.Frames[j], tb.Frames[j]) {
				return false
			}
		}
	}
	return true
}

func equalFrame(a, b Frame) bool {
	return equalBits(
		[]float32{a.FrameID, a.Value, a.InSlope, a.OutSlope},
		[]float32{b.FrameID, b.Value, b.InSlope, b.OutSlope},
	)
}
