package canm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes a. The frame type and data offset are derived from
// a.FullFrames; a stale Header.FrameType or Header.Offset is ignored.
//
// Layout: header, eight track records, payload size word, pooled f32
// payload, footer.
func (c *Codec) Encode(a *Animation) ([]byte, error) {
	out, _, err := c.encode(a)
	return out, err
}

// EncodeStats reports how an encode pass laid out the payload.
type EncodeStats struct {
	PoolValues  int
	SharedRuns  int
	PayloadSize int
	FileSize    int
}

// EncodeWithStats is Encode plus a summary of the pooled payload.
func (c *Codec) EncodeWithStats(a *Animation) ([]byte, EncodeStats, error) {
	return c.encode(a)
}

func (c *Codec) encode(a *Animation) ([]byte, EncodeStats, error) {
	if a == nil {
		return nil, EncodeStats{}, fmt.Errorf("%w: nil animation", ErrFormat)
	}
	full := a.FullFrames

	h := a.Header
	h.Magic = c.Family.Magic
	h.FrameType = FrameTypeFor(full)
	h.Offset = DataOffsetKeyed
	if full {
		h.Offset = DataOffsetBaked
	}

	recBuf := make([]byte, 0, TrackCount*trackRecordSize(full))
	pool := NewFramePool()
	for _, s := range TrackSelections() {
		rec, err := c.registerTrack(pool, &a.Tracks[s], full)
		if err != nil {
			return nil, EncodeStats{}, trackError(s, err)
		}
		recBuf = appendTrackRecord(recBuf, rec, full)
	}

	payloadSize := (pool.Len() + 2) * 4
	if payloadSize > math.MaxInt32 {
		return nil, EncodeStats{}, fmt.Errorf("%w: payload of %d values too large", ErrFormat, pool.Len())
	}

	size := HeaderSize + len(recBuf) + 4 + 4*pool.Len() + len(footer)
	out := make([]byte, 0, size)
	out = appendHeader(out, h)
	out = append(out, recBuf...)
	out = binary.BigEndian.AppendUint32(out, uint32(payloadSize))
	for _, v := range pool.Values() {
		out = binary.BigEndian.AppendUint32(out, math.Float32bits(v))
	}
	out = append(out, footer[:]...)

	return out, EncodeStats{
		PoolValues:  pool.Len(),
		SharedRuns:  pool.Shared(),
		PayloadSize: payloadSize,
		FileSize:    len(out),
	}, nil
}

// registerTrack adds t's values to the pool and builds its record.
func (c *Codec) registerTrack(pool *FramePool, t *Track, fullFrames bool) (trackRecord, error) {
	if len(t.Frames) > math.MaxInt32 {
		return trackRecord{}, fmt.Errorf("%w: %d frames", ErrFormat, len(t.Frames))
	}
	start := pool.Register(t.flatten(fullFrames))
	if pool.Len() > math.MaxInt32 {
		return trackRecord{}, fmt.Errorf("%w: pool exceeds %d values", ErrFormat, math.MaxInt32)
	}

	rec := trackRecord{
		Count:    int32(len(t.Frames)),
		Start:    int32(start),
		Selector: slopeSelector(t),
	}
	if c.Options.LegacyTrackRecords {
		rec.Count = int32(pool.Len())
	}
	return rec, nil
}
