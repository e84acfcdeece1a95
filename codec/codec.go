// Package codec centralizes metadata payload encoding.
//
// Codec selection is a breaking-change boundary: persisted bytes created by
// one codec may not decode under another. Container files therefore store the
// codec name in their header and select the codec by name on open.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
//
// This is used by self-describing container formats that record the codec
// name in their header.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used for newly created container files.
var Default Codec = JSON{}
