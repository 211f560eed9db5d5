// Package document converts animations to and from the editable form used by
// the camera editor. Tracks are keyed by channel name; file order is restored
// from the channel, never from document order.
package document

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samcharles93/camkit/pkg/canm"
)

var ErrInvalidDocument = errors.New("document: invalid document")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown document format %q (want json or yaml)", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f, err == nil
}

type Document struct {
	Header       Header           `json:"header" yaml:"header"`
	Tracks       map[string]Track `json:"tracks" yaml:"tracks"`
	IsFullFrames bool             `json:"isfullframes" yaml:"isfullframes"`
}

type Header struct {
	Magic      string `json:"magic" yaml:"magic"`
	FrameType  string `json:"frame_type" yaml:"frame_type"`
	Unk1       int32  `json:"unk1" yaml:"unk1"`
	Unk2       int32  `json:"unk2" yaml:"unk2"`
	Unk3       int32  `json:"unk3" yaml:"unk3"`
	Unk4       int32  `json:"unk4" yaml:"unk4"`
	FrameCount int32  `json:"frame_count" yaml:"frame_count"`
	Offset     uint32 `json:"offset" yaml:"offset"`
}

type Track struct {
	Values         []Frame `json:"values" yaml:"values"`
	UseSingleScope bool    `json:"usesinglescope" yaml:"usesinglescope"`
}

type Frame struct {
	FrameID  float32 `json:"frameid" yaml:"frameid"`
	Value    float32 `json:"value" yaml:"value"`
	InSlope  float32 `json:"inslope" yaml:"inslope"`
	OutSlope float32 `json:"outslope" yaml:"outslope"`
}

// FromAnimation builds the document form of a. Every channel is present.
func FromAnimation(a *canm.Animation) Document {
	doc := Document{
		Header: Header{
			Magic:      magicString(a.Header.Magic),
			FrameType:  a.Header.FrameType.String(),
			Unk1:       a.Header.Unk1,
			Unk2:       a.Header.Unk2,
			Unk3:       a.Header.Unk3,
			Unk4:       a.Header.Unk4,
			FrameCount: a.Header.FrameCount,
			Offset:     a.Header.Offset,
		},
		Tracks:       make(map[string]Track, canm.TrackCount),
		IsFullFrames: a.FullFrames,
	}
	for _, s := range canm.TrackSelections() {
		t := a.Tracks[s]
		frames := make([]Frame, len(t.Frames))
		for i, f := range t.Frames {
			frames[i] = Frame(f)
		}
		doc.Tracks[s.String()] = Track{Values: frames, UseSingleScope: t.UseSingleSlope}
	}
	return doc
}

// Animation converts the document back. Unknown channel names are rejected;
// missing channels become empty tracks. IsFullFrames selects the mode; the
// header frame type is informational but must be a known tag when present.
func (d Document) Animation() (*canm.Animation, error) {
	a := canm.NewAnimation(d.IsFullFrames)
	if d.Header.Magic != "" {
		m, err := parseMagic(d.Header.Magic)
		if err != nil {
			return nil, err
		}
		a.Header.Magic = m
	}
	if d.Header.FrameType != "" {
		ft, err := canm.ParseFrameType(d.Header.FrameType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		a.Header.FrameType = ft
	}
	a.Header.Unk1 = d.Header.Unk1
	a.Header.Unk2 = d.Header.Unk2
	a.Header.Unk3 = d.Header.Unk3
	a.Header.Unk4 = d.Header.Unk4
	a.Header.FrameCount = d.Header.FrameCount
	a.Header.Offset = d.Header.Offset

	for name, t := range d.Tracks {
		s, ok := canm.ParseTrackSelection(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown track %q", ErrInvalidDocument, name)
		}
		var frames []canm.Frame
		if len(t.Values) > 0 {
			frames = make([]canm.Frame, len(t.Values))
			for i, f := range t.Values {
				frames[i] = canm.Frame(f)
			}
		}
		a.SetTrack(s, canm.Track{Frames: frames, UseSingleSlope: t.UseSingleScope})
	}
	return a, nil
}

// magicString renders the magic the way it reads on disk.
func magicString(m uint32) string {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], m)
	return string(b[:])
}

func parseMagic(s string) (uint32, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("%w: magic %q is not 4 bytes", ErrInvalidDocument, s)
	}
	return binary.LittleEndian.Uint32([]byte(s)), nil
}
