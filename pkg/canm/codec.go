package canm

// EncodeOptions tune the encoder output.
type EncodeOptions struct {
	// LegacyTrackRecords writes track records the way early editor builds
	// did: the frame count field holds the pool length after the track was
	// registered. Such files are accepted by those builds but do not decode
	// back to the same animation.
	LegacyTrackRecords bool
}

// Codec decodes and encodes containers of one family.
// A Codec holds no per-call state and is safe for concurrent use.
type Codec struct {
	Family  Family
	Options EncodeOptions
}

// NewCodec returns a codec for the given family.
func NewCodec(f Family, opts EncodeOptions) *Codec {
	return &Codec{Family: f, Options: opts}
}

var defaultCodec = Codec{Family: FamilyCANM}

// Decode parses a container of the default family.
func Decode(data []byte) (*Animation, error) {
	return defaultCodec.Decode(data)
}

// Encode serializes a into a container of the default family.
func Encode(a *Animation) ([]byte, error) {
	return defaultCodec.Encode(a)
}
