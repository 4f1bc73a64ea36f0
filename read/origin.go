package read

// Origin records where a string's bytes came from: a file path, or "bytes"
// for in-memory construction. It is shared across every read produced from
// the same source.
type Origin struct {
	Path    string
	IsBytes bool
}

// FileOrigin constructs an Origin for reads produced from path.
func FileOrigin(path string) *Origin { return &Origin{Path: path} }

// BytesOrigin is the shared Origin for reads constructed directly from byte
// buffers rather than a file.
var BytesOrigin = &Origin{IsBytes: true}

// String renders the origin for error messages and the debug dump.
func (o *Origin) String() string {
	if o == nil || o.IsBytes {
		return "bytes"
	}
	return o.Path
}
