package canm

// Decode parses a container. data must start at the container header; the
// slice is only read, never retained.
func (c *Codec) Decode(data []byte) (*Animation, error) {
	h, recs, err := c.readRecords(data)
	if err != nil {
		return nil, err
	}

	a := &Animation{Header: h, FullFrames: h.FrameType.FullFrames()}
	anchor := dataAnchor(h)
	for _, s := range TrackSelections() {
		t, err := decodeTrack(data, anchor, recs[s], a.FullFrames)
		if err != nil {
			return nil, trackError(s, err)
		}
		a.Tracks[s] = t
	}
	return a, nil
}

// readRecords decodes the header and the eight track records that follow it.
func (c *Codec) readRecords(data []byte) (Header, [TrackCount]trackRecord, error) {
	var recs [TrackCount]trackRecord
	h, err := decodeHeader(data, c.Family.Magic)
	if err != nil {
		return Header{}, recs, err
	}

	full := h.FrameType.FullFrames()
	cur := &cursor{b: data, off: HeaderSize}
	for _, s := range TrackSelections() {
		rec, err := readTrackRecord(cur, full)
		if err != nil {
			return Header{}, recs, trackError(s, err)
		}
		recs[s] = rec
	}
	return h, recs, nil
}

// dataAnchor is the absolute position of the data region.
func dataAnchor(h Header) int64 {
	return HeaderSize + int64(h.Offset)
}
