// Package codec encodes the small self-describing documents the module
// persists, such as spool manifests.
//
// Every persisted document records the name of the codec that wrote it so that
// a reader can pick the matching codec with ByName.
package codec

// Appender is implemented by codecs that can encode directly onto an
// existing buffer.
type Appender interface {
	Append(dst []byte, v any) ([]byte, error)
}

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
