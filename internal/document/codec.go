package document

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/samcharles93/camkit/pkg/canm"
)

// Marshal renders a in the given format.
func Marshal(a *canm.Animation, f Format) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil animation", ErrInvalidDocument)
	}
	doc := FromAnimation(a)
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown document format %q", f)
	}
}

// Unmarshal parses a document and converts it to an animation. Unknown
// fields are rejected.
func Unmarshal(data []byte, f Format) (*canm.Animation, error) {
	var doc Document
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("unknown document format %q", f)
	}
	return doc.Animation()
}
