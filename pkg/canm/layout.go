package canm

import (
	"encoding/binary"
	"fmt"
)

// TrackLayout describes where one track's payload lives in a file.
type TrackLayout struct {
	Selection TrackSelection
	Count     int32
	Start     int32
	// Selector is the raw slope selector: nonzero for single-slope keyed
	// tracks, always 0 in baked files.
	Selector int32
	// Offset is the absolute payload position; Values the f32 count.
	Offset int64
	Values int64
	// SharedWith is the earliest track whose payload range overlaps this
	// one, if Shared is set.
	Shared     bool
	SharedWith TrackSelection
}

// Layout is the raw record view of a container, for inspection tools.
type Layout struct {
	Header     Header
	FullFrames bool
	Anchor     int64
	// PayloadSize is the size word at the start of the data region, or -1
	// if the data region starts past the end of input.
	PayloadSize int32
	Tracks      [TrackCount]TrackLayout
	FileSize    int
}

// ReadLayout parses the header and track records of data and locates every
// payload, failing the same way Decode would.
func ReadLayout(data []byte) (*Layout, error) {
	return defaultCodec.ReadLayout(data)
}

func (c *Codec) ReadLayout(data []byte) (*Layout, error) {
	h, recs, err := c.readRecords(data)
	if err != nil {
		return nil, err
	}
	l := &Layout{
		Header:      h,
		FullFrames:  h.FrameType.FullFrames(),
		Anchor:      dataAnchor(h),
		PayloadSize: -1,
		FileSize:    len(data),
	}
	if l.Anchor+4 <= int64(len(data)) {
		l.PayloadSize = int32(binary.BigEndian.Uint32(data[l.Anchor:]))
	}

	for _, s := range TrackSelections() {
		rec := recs[s]
		off, n, err := trackSpan(l.Anchor, rec, l.FullFrames, len(data))
		if err != nil {
			return nil, trackError(s, err)
		}
		tl := TrackLayout{
			Selection: s,
			Count:     rec.Count,
			Start:     rec.Start,
			Selector:  rec.Selector,
			Offset:    off,
			Values:    n,
		}
		for _, prev := range l.Tracks[:s] {
			if n > 0 && prev.Values > 0 && rangesOverlap(off, off+4*n, prev.Offset, prev.Offset+4*prev.Values) {
				tl.Shared = true
				tl.SharedWith = prev.Selection
				break
			}
		}
		l.Tracks[s] = tl
	}
	return l, nil
}

// PayloadValues counts the f32 values of tracks that do not reuse an
// earlier track's range.
func (l *Layout) PayloadValues() int64 {
	var total int64
	for _, t := range l.Tracks {
		if !t.Shared {
			total += t.Values
		}
	}
	return total
}

func (t TrackLayout) String() string {
	s := fmt.Sprintf("%-11s count=%d start=%d values=%d offset=0x%X", t.Selection, t.Count, t.Start, t.Values, t.Offset)
	if t.Shared {
		s += " shared=" + t.SharedWith.String()
	}
	return s
}

func rangesOverlap(a0, a1, b0, b1 int64) bool {
	// half-open ranges [a0,a1) and [b0,b1)
	return a0 < b1 && b0 < a1
}
