package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// For the fixed string-to-string metadata schema it is stable and portable;
// map keys are emitted in sorted order, so identical rows encode to identical
// bytes.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
